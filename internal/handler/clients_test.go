package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/parceltrack/parcel-tracker/internal/model"
	"github.com/parceltrack/parcel-tracker/internal/repository"
)

func TestListClients(t *testing.T) {
	svc := &stubService{
		listClientsFn: func(_ context.Context, page model.Page) ([]model.Client, int64, error) {
			if page.Number != 2 || page.PerPage != 10 {
				t.Fatalf("unexpected page: %+v", page)
			}
			return []model.Client{
				{ClientID: 300, Name: "Acme"},
				{ClientID: 305, Name: "Globex"},
			}, 25, nil
		},
	}
	h := newTestHandler(svc, nil)

	r := httptest.NewRequest("GET", "/api/clients?page=2&per_page=10", nil)
	w := httptest.NewRecorder()
	h.ListClients(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp struct {
		Status     string           `json:"status"`
		Data       []model.Client   `json:"data"`
		Pagination model.Pagination `json:"pagination"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "success" {
		t.Fatalf("status field = %q, want success", resp.Status)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("clients = %d, want 2", len(resp.Data))
	}
	if resp.Pagination.Total != 25 || resp.Pagination.LastPage != 3 {
		t.Fatalf("unexpected pagination: %+v", resp.Pagination)
	}
	if resp.Pagination.From != 11 || resp.Pagination.To != 20 {
		t.Fatalf("unexpected from/to: %+v", resp.Pagination)
	}
	if resp.Pagination.NextPageURL == nil || !strings.Contains(*resp.Pagination.NextPageURL, "page=3") {
		t.Fatalf("unexpected next page url: %v", resp.Pagination.NextPageURL)
	}
}

func TestGetClient_NotFound(t *testing.T) {
	svc := &stubService{
		getClientFn: func(_ context.Context, _ int64) (*model.Client, error) {
			return nil, repository.ErrClientNotFound
		},
	}
	h := newTestHandler(svc, nil)

	r := withURLParam(httptest.NewRequest("GET", "/api/clients/999", nil), "id", "999")
	w := httptest.NewRecorder()
	h.GetClient(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAddClient_ValidationFailed(t *testing.T) {
	h := newTestHandler(&stubService{}, nil)

	body := `{"name":"","contact":"John","country_code":"RU","address":"Moscow","url":"not a url"}`
	r := httptest.NewRequest("POST", "/api/clients/add", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddClient(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}

	var resp struct {
		Status string              `json:"status"`
		Errors map[string][]string `json:"errors"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "error" {
		t.Fatalf("status field = %q, want error", resp.Status)
	}
	if len(resp.Errors["name"]) == 0 {
		t.Fatalf("expected name error, got %v", resp.Errors)
	}
	if len(resp.Errors["url"]) == 0 {
		t.Fatalf("expected url error, got %v", resp.Errors)
	}
}

func TestAddClient_Success(t *testing.T) {
	webhook := "https://hooks.example.com/parcels"
	svc := &stubService{
		createClientFn: func(_ context.Context, in model.ClientInput) (*model.Client, error) {
			return &model.Client{
				ClientID:    300,
				Name:        in.Name,
				Contact:     in.Contact,
				CountryCode: in.CountryCode,
				Address:     in.Address,
				URL:         in.URL,
				Webhook:     in.Webhook,
				Token:       "qwertyuiopasdfghjklz",
			}, nil
		},
	}
	h := newTestHandler(svc, nil)

	body := `{"name":"Acme","contact":"John","country_code":"RU","address":"Moscow, Tverskaya 1","url":"https://acme.example.com","webhook":"` + webhook + `"}`
	r := httptest.NewRequest("POST", "/api/clients/add", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddClient(w, r)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp struct {
		Status string       `json:"status"`
		Data   model.Client `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ClientID != 300 {
		t.Fatalf("client_id = %d, want 300", resp.Data.ClientID)
	}
	if len(resp.Data.Token) != 20 {
		t.Fatalf("token length = %d, want 20", len(resp.Data.Token))
	}
}

func TestAddClient_AllocationExhausted(t *testing.T) {
	svc := &stubService{
		createClientFn: func(_ context.Context, _ model.ClientInput) (*model.Client, error) {
			return nil, errors.New("allocation attempts exhausted")
		},
	}
	h := newTestHandler(svc, nil)

	body := `{"name":"Acme","contact":"John","country_code":"RU","address":"Moscow","url":"https://acme.example.com"}`
	r := httptest.NewRequest("POST", "/api/clients/add", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.AddClient(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Fatalf("expected opaque message, got %s", w.Body.String())
	}
	if strings.Contains(w.Body.String(), "allocation") {
		t.Fatalf("internal details leaked: %s", w.Body.String())
	}
}

func TestSearchClients_RequiresQuery(t *testing.T) {
	h := newTestHandler(&stubService{}, nil)

	r := httptest.NewRequest("GET", "/api/clients/search", nil)
	w := httptest.NewRecorder()
	h.SearchClients(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestSearchClients_ClampsLimit(t *testing.T) {
	var gotLimit int
	svc := &stubService{
		searchClientsFn: func(_ context.Context, q string, limit int) ([]model.Client, error) {
			if q != "acme" {
				t.Fatalf("q = %q, want acme", q)
			}
			gotLimit = limit
			return []model.Client{{ClientID: 300, Name: "Acme"}}, nil
		},
	}
	h := newTestHandler(svc, nil)

	r := httptest.NewRequest("GET", "/api/clients/search?q=acme&per_page=500", nil)
	w := httptest.NewRecorder()
	h.SearchClients(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotLimit != model.MaxPerPage {
		t.Fatalf("limit = %d, want %d", gotLimit, model.MaxPerPage)
	}
}

func TestEditClient_PartialUpdate(t *testing.T) {
	var gotUpd model.ClientUpdate
	svc := &stubService{
		updateClientFn: func(_ context.Context, clientID int64, upd model.ClientUpdate) (*model.Client, error) {
			if clientID != 305 {
				t.Fatalf("clientID = %d, want 305", clientID)
			}
			gotUpd = upd
			return &model.Client{
				ClientID: 305,
				Name:     "Acme",
				Contact:  *upd.Contact,
				Address:  "Moscow, Tverskaya 1",
			}, nil
		},
	}
	h := newTestHandler(svc, nil)

	// Передано только поле contact: остальные поля не должны затрагиваться.
	r := withURLParam(
		httptest.NewRequest("POST", "/api/clients/305/edit", strings.NewReader(`{"contact":"Maria"}`)),
		"id", "305",
	)
	w := httptest.NewRecorder()
	h.EditClient(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if gotUpd.Contact == nil || *gotUpd.Contact != "Maria" {
		t.Fatalf("contact = %v, want Maria", gotUpd.Contact)
	}
	if gotUpd.Name != nil {
		t.Fatalf("name must stay untouched, got %q", *gotUpd.Name)
	}
	if gotUpd.CountryCode != nil || gotUpd.Address != nil || gotUpd.URL != nil || gotUpd.Webhook != nil {
		t.Fatalf("absent fields must stay nil: %+v", gotUpd)
	}

	var resp struct {
		Data model.Client `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.Name != "Acme" || resp.Data.Contact != "Maria" {
		t.Fatalf("unexpected client in response: %+v", resp.Data)
	}
}

func TestEditClient_ValidationFailed(t *testing.T) {
	h := newTestHandler(&stubService{}, nil)

	// Явно переданное пустое имя отклоняется, хотя отсутствующее поле допустимо.
	r := withURLParam(
		httptest.NewRequest("POST", "/api/clients/305/edit", strings.NewReader(`{"name":""}`)),
		"id", "305",
	)
	w := httptest.NewRecorder()
	h.EditClient(w, r)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
	}
}

func TestRetokenClient(t *testing.T) {
	svc := &stubService{
		retokenFn: func(_ context.Context, clientID int64) (*model.Client, error) {
			if clientID != 305 {
				t.Fatalf("clientID = %d, want 305", clientID)
			}
			return &model.Client{ClientID: 305, Token: "zxcvbnmasdfghjklqwer"}, nil
		},
	}
	h := newTestHandler(svc, nil)

	r := withURLParam(httptest.NewRequest("POST", "/api/clients/305/retoken", nil), "id", "305")
	w := httptest.NewRecorder()
	h.RetokenClient(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "zxcvbnmasdfghjklqwer") {
		t.Fatalf("expected new token in response, got %s", w.Body.String())
	}
}
