package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
	"github.com/parceltrack/parcel-tracker/internal/service"
)

// envelope — единый формат JSON-ответа API.
type envelope struct {
	Status     string              `json:"status"`
	Message    string              `json:"message,omitempty"`
	Data       any                 `json:"data,omitempty"`
	Errors     map[string][]string `json:"errors,omitempty"`
	Pagination *model.Pagination   `json:"pagination,omitempty"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, env envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		h.logger.Error("encode response error", zap.Error(err))
	}
}

func (h *Handler) respondData(w http.ResponseWriter, status int, data any) {
	h.writeJSON(w, status, envelope{Status: "success", Data: data})
}

func (h *Handler) respondList(w http.ResponseWriter, data any, pg model.Pagination) {
	h.writeJSON(w, http.StatusOK, envelope{Status: "success", Data: data, Pagination: &pg})
}

func (h *Handler) respondCreated(w http.ResponseWriter, message string, data any) {
	h.writeJSON(w, http.StatusCreated, envelope{Status: "success", Message: message, Data: data})
}

func (h *Handler) respondMessage(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusOK, envelope{Status: "success", Message: message})
}

// respondValidation возвращает 422 с сообщениями по каждому полю.
func (h *Handler) respondValidation(w http.ResponseWriter, errs fieldErrors) {
	h.writeJSON(w, http.StatusUnprocessableEntity, envelope{
		Status:  "error",
		Message: "Validation failed",
		Errors:  errs,
	})
}

func (h *Handler) respondBadRequest(w http.ResponseWriter, message string) {
	h.writeJSON(w, http.StatusBadRequest, envelope{Status: "error", Message: message})
}

// notFoundErrors перечисляет ошибки, которые транслируются в 404.
var notFoundErrors = []error{
	repository.ErrClientNotFound,
	repository.ErrParcelNotFound,
	repository.ErrReceiverNotFound,
	repository.ErrItemNotFound,
	repository.ErrUserNotFound,
}

// respondError — единая точка трансляции ошибок в HTTP-статус и конверт.
// Детали неожиданных ошибок остаются в логе и не попадают в ответ.
func (h *Handler) respondError(w http.ResponseWriter, op string, err error, fields ...zap.Field) {
	for _, notFound := range notFoundErrors {
		if errors.Is(err, notFound) {
			h.writeJSON(w, http.StatusNotFound, envelope{Status: "error", Message: notFound.Error()})
			return
		}
	}

	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		h.respondValidation(w, fieldErrors{
			"email": {"The provided credentials are incorrect."},
		})
	case errors.Is(err, repository.ErrEmailExists):
		h.respondValidation(w, fieldErrors{
			"email": {"The email has already been taken."},
		})
	case errors.Is(err, repository.ErrAuthTokenNotFound):
		h.writeJSON(w, http.StatusUnauthorized, envelope{Status: "error", Message: "unauthenticated"})
	default:
		fields = append(fields, zap.Error(err))
		h.logger.Error(op, fields...)
		h.writeJSON(w, http.StatusInternalServerError, envelope{
			Status:  "error",
			Message: "internal server error",
		})
	}
}
