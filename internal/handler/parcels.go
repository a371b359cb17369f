package handler

import (
	"encoding/json"
	"net/http"

	"github.com/parceltrack/parcel-tracker/internal/model"
)

// ListParcels возвращает постраничный список отправлений с вложениями,
// клиентом и получателем.
func (h *Handler) ListParcels(w http.ResponseWriter, r *http.Request) {
	page := pageFromRequest(r)

	parcels, total, err := h.service.ListParcels(r.Context(), page)
	if err != nil {
		h.respondError(w, "list parcels error", err)
		return
	}

	h.respondList(w, parcels, model.NewPagination(page, total, r.URL.Path))
}

// GetParcel возвращает отправление по идентификатору.
func (h *Handler) GetParcel(w http.ResponseWriter, r *http.Request) {
	parcelID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid parcel id")
		return
	}

	parcel, err := h.service.GetParcel(r.Context(), parcelID)
	if err != nil {
		h.respondError(w, "get parcel error", err)
		return
	}

	h.respondData(w, http.StatusOK, parcel)
}

// ParcelsByClient возвращает все отправления указанного клиента.
func (h *Handler) ParcelsByClient(w http.ResponseWriter, r *http.Request) {
	clientID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid client id")
		return
	}

	parcels, err := h.service.ParcelsByClient(r.Context(), clientID)
	if err != nil {
		h.respondError(w, "list client parcels error", err)
		return
	}

	h.respondData(w, http.StatusOK, parcels)
}

// AddParcel создаёт отправление.
func (h *Handler) AddParcel(w http.ResponseWriter, r *http.Request) {
	var in model.ParcelInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateParcelInput(in); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	parcel, err := h.service.CreateParcel(r.Context(), in)
	if err != nil {
		h.respondError(w, "create parcel error", err)
		return
	}

	h.respondCreated(w, "Parcel created successfully", parcel)
}

// EditParcel частично обновляет отправление.
func (h *Handler) EditParcel(w http.ResponseWriter, r *http.Request) {
	parcelID, ok := idParam(r, "id")
	if !ok {
		h.respondBadRequest(w, "invalid parcel id")
		return
	}

	var upd model.ParcelUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	if errs := validateParcelUpdate(upd); !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	parcel, err := h.service.UpdateParcel(r.Context(), parcelID, upd)
	if err != nil {
		h.respondError(w, "update parcel error", err)
		return
	}

	h.writeJSON(w, http.StatusOK, envelope{
		Status:  "success",
		Message: "Parcel updated successfully",
		Data:    parcel,
	})
}
