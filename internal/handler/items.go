package handler

import (
	"encoding/json"
	"net/http"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// ListItems возвращает постраничный список товарных позиций.
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r)

	items, total, err := h.service.ListItems(r.Context(), page)
	if err != nil {
		h.respondError(w, "list items error", err)
		return
	}

	h.respondList(w, items, model.NewPagination(page, total, r.URL.Path))
}

// GetItem возвращает товарную позицию вместе с её отправлением.
func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid item id")
		return
	}

	item, err := h.service.GetItem(r.Context(), itemID)
	if err != nil {
		h.respondError(w, "get item error", err)
		return
	}

	h.respondData(w, http.StatusOK, item)
}

// ItemsByParcel возвращает все позиции указанного отправления.
func (h *Handler) ItemsByParcel(w http.ResponseWriter, r *http.Request) {
	parcelID, ok := idParam(r, "parcelId")
	if !ok {
		h.respondBadRequest(w, "invalid parcel id")
		return
	}

	items, err := h.service.ItemsByParcel(r.Context(), parcelID)
	if err != nil {
		h.respondError(w, "list parcel items error", err)
		return
	}

	h.respondData(w, http.StatusOK, items)
}

// AddItem создаёт товарную позицию.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	var in model.ItemInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateItemInput(in); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	item, err := h.service.CreateItem(r.Context(), in)
	if err != nil {
		h.respondError(w, "create item error", err)
		return
	}

	h.respondCreated(w, "Item created successfully", item)
}

// EditItem частично обновляет товарную позицию.
func (h *Handler) EditItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid item id")
		return
	}

	var upd model.ItemUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateItemUpdate(upd); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), itemID, upd)
	if err != nil {
		h.respondError(w, "update item error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Item updated successfully",
		Data:    item,
	})
}
