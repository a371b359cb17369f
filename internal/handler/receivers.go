package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// ListReceivers возвращает постраничный список получателей.
func (h *Handler) ListReceivers(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r)

	receivers, total, err := h.service.ListReceivers(r.Context(), page)
	if err != nil {
		h.respondError(w, "list receivers error", err)
		return
	}

	h.respondList(w, receivers, model.NewPagination(page, total, r.URL.Path))
}

// GetReceiver возвращает получателя вместе с его отправлениями.
func (h *Handler) GetReceiver(w http.ResponseWriter, r *http.Request) {
	receiverID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid receiver id")
		return
	}

	receiver, err := h.service.GetReceiver(r.Context(), receiverID)
	if err != nil {
		h.respondError(w, "get receiver error", err)
		return
	}

	h.respondData(w, http.StatusOK, receiver)
}

// AddReceiver создаёт получателя.
func (h *Handler) AddReceiver(w http.ResponseWriter, r *http.Request) {
	var in model.ReceiverInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateReceiverInput(in); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	receiver, err := h.service.CreateReceiver(r.Context(), in)
	if err != nil {
		h.respondError(w, "create receiver error", err)
		return
	}

	h.respondCreated(w, "Receiver created successfully", receiver)
}

// EditReceiver частично обновляет получателя.
func (h *Handler) EditReceiver(w http.ResponseWriter, r *http.Request) {
	receiverID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid receiver id")
		return
	}

	var upd model.ReceiverUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateReceiverUpdate(upd); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	receiver, err := h.service.UpdateReceiver(r.Context(), receiverID, upd)
	if err != nil {
		h.respondError(w, "update receiver error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Receiver updated successfully",
		Data:    receiver,
	})
}

// SearchReceivers ищет получателей по подстроке имени, телефона, email,
// паспорта и по точному совпадению ИНН.
func (h *Handler) SearchReceivers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	innRaw := r.URL.Query().Get("inn")

	if q == "" && innRaw == "" {
		h.respondValidation(w, fieldErrors{"q": {"The q field is required when inn is not present."}})
		return
	}

	var inn *int64
	if innRaw != "" {
		n, err := strconv.ParseInt(innRaw, 10, 64)
		if err != nil {
			h.respondValidation(w, fieldErrors{"inn": {"The inn must be an integer."}})
			return
		}
		inn = &n
	}

	receivers, err := h.service.SearchReceivers(r.Context(), q, inn, perPageFromRequest(r))
	if err != nil {
		h.respondError(w, "search receivers error", err)
		return
	}

	h.respondData(w, http.StatusOK, receivers)
}
