package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/service"
)

func TestLogin_GenericMessageForAnyCredentialFailure(t *testing.T) {
	svc := &stubService{
		loginFn: func(_ context.Context, email, _ string) (*model.User, string, error) {
			return nil, "", service.ErrInvalidCredentials
		},
	}
	h := newTestHandler(svc, nil)

	bodies := []struct {
		name string
		body string
	}{
		{"unknown email", `{"email":"nobody@example.com","password":"secret-pass"}`},
		{"wrong password", `{"email":"admin@example.com","password":"wrong-pass"}`},
	}

	var responses []string
	for _, tt := range bodies {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("POST", "/api/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.Login(w, r)

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
			}
			if !strings.Contains(w.Body.String(), "The provided credentials are incorrect.") {
				t.Fatalf("unexpected body: %s", w.Body.String())
			}
			responses = append(responses, w.Body.String())
		})
	}

	// Ответ не должен выдавать, существует ли email.
	if len(responses) == 2 && responses[0] != responses[1] {
		t.Fatalf("responses differ:\n%s\n%s", responses[0], responses[1])
	}
}

func TestLogin_ValidationBeforeService(t *testing.T) {
	h := newTestHandler(&stubService{}, nil)

	r := httptest.NewRequest("POST", "/api/login", strings.NewReader(`{"email":"","password":""}`))
	w := httptest.NewRecorder()
	h.Login(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestRegister_PasswordConfirmationMismatch(t *testing.T) {
	h := newTestHandler(&stubService{}, nil)

	body := `{"name":"Admin","email":"admin@example.com","password":"secret-pass","password_confirmation":"other-pass"}`
	r := httptest.NewRequest("POST", "/api/register", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Register(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(w.Body.String(), "The password confirmation does not match.") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
