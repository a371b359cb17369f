package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/parceltrack/parcel-tracker/internal/middleware"
	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/service"
)

const minPasswordLength = 8

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	Type                 string `json:"type"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Register обрабатывает регистрацию нового пользователя и выдаёт bearer-токен.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	errs := fieldErrors{}
	errs.required("name", req.Name)
	errs.maxLen("name", req.Name, 255)
	errs.required("email", req.Email)
	errs.maxLen("email", req.Email, 255)
	errs.validEmail("email", req.Email)
	errs.required("password", req.Password)
	if req.Password != "" && len(req.Password) < minPasswordLength {
		errs.add("password", "The password must be at least 8 characters.")
	}
	if req.Password != req.PasswordConfirmation {
		errs.add("password", "The password confirmation does not match.")
	}
	if req.Type != "" && req.Type != model.UserTypeAdmin && req.Type != model.UserTypeUser {
		errs.add("type", "The selected type is invalid.")
	}
	if !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	user, token, err := h.service.Register(r.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Type:     req.Type,
	})
	if err != nil {
		h.respondError(w, "register user error", err)
		return
	}

	h.writeJSON(w, http.StatusCreated, envelope{
		Status:  "success",
		Message: "User registered successfully",
		Data:    authResponse{Token: token, User: user},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login выполняет аутентификацию пользователя и выдаёт bearer-токен.
// Неизвестный email и неверный пароль дают одинаковый ответ.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondBadRequest(w, "invalid request body")
		return
	}

	errs := fieldErrors{}
	errs.required("email", req.Email)
	errs.validEmail("email", req.Email)
	errs.required("password", req.Password)
	if !errs.empty() {
		h.respondValidation(w, errs)
		return
	}

	user, token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(w, "login user error", err)
		return
	}

	h.respondData(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Logout отзывает предъявленный bearer-токен.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.GetTokenFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, envelope{Status: "error", Message: "unauthenticated"})
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		h.respondError(w, "logout error", err)
		return
	}

	h.respondMessage(w, "Logged out successfully")
}

type meResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Me возвращает данные аутентифицированного пользователя.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, envelope{Status: "error", Message: "unauthenticated"})
		return
	}

	h.respondData(w, http.StatusOK, meResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
