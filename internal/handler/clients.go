package handler

import (
	"encoding/json"
	"net/http"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// ListClients возвращает постраничный список клиентов.
func (h *Handler) ListClients(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r)

	clients, total, err := h.service.ListClients(r.Context(), page)
	if err != nil {
		h.respondError(w, "list clients error", err)
		return
	}

	h.respondList(w, clients, model.NewPagination(page, total, r.URL.Path))
}

// GetClient возвращает клиента по идентификатору.
func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid client id")
		return
	}

	client, err := h.service.GetClient(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "get client error", err)
		return
	}

	h.respondData(w, http.StatusOK, client)
}

// AddClient создаёт нового клиента. Идентификатор и токен назначает сервер.
func (h *Handler) AddClient(w http.ResponseWriter, r *http.Request) {
	var in model.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateClientInput(in); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	client, err := h.service.CreateClient(r.Context(), in)
	if err != nil {
		h.respondError(w, "create client error", err)
		return
	}

	h.respondCreated(w, "Client created successfully", client)
}

// EditClient частично обновляет клиента: отсутствующие поля не меняются.
func (h *Handler) EditClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid client id")
		return
	}

	var upd model.ClientUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateClientUpdate(upd); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	client, err := h.service.UpdateClient(r.Context(), clientID, upd)
	if err != nil {
		h.respondError(w, "update client error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Client updated successfully",
		Data:    client,
	})
}

// RetokenClient выпускает клиенту новый токен взамен прежнего.
func (h *Handler) RetokenClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid client id")
		return
	}

	client, err := h.service.RegenerateClientToken(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "regenerate client token error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Client token regenerated successfully",
		Data:    client,
	})
}

// SearchClients ищет клиентов по подстроке имени, контакта, адреса, URL
// или по точному числовому идентификатору.
func (h *Handler) SearchClients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		h.respondValidation(w, fieldErrors{"q": {"The q field is required."}})
		return
	}

	clients, err := h.service.SearchClients(r.Context(), q, perPageFromRequest(r))
	if err != nil {
		h.respondError(w, "search clients error", err)
		return
	}

	h.respondData(w, http.StatusOK, clients)
}
