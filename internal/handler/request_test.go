package handler

import (
	"net/http/httptest"
	"testing"
)

func TestPageFromRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
	}{
		{
			name:        "defaults",
			query:       "",
			wantPage:    1,
			wantPerPage: 20,
		},
		{
			name:        "per_page zero clamps to minimum",
			query:       "?per_page=0",
			wantPage:    1,
			wantPerPage: 1,
		},
		{
			name:        "per_page one stays",
			query:       "?per_page=1",
			wantPage:    1,
			wantPerPage: 1,
		},
		{
			name:        "per_page hundred stays",
			query:       "?per_page=100",
			wantPage:    1,
			wantPerPage: 100,
		},
		{
			name:        "per_page above maximum clamps",
			query:       "?per_page=101",
			wantPage:    1,
			wantPerPage: 100,
		},
		{
			name:        "per_page non numeric falls back to default",
			query:       "?per_page=abc",
			wantPage:    1,
			wantPerPage: 20,
		},
		{
			name:        "negative page clamps to first",
			query:       "?page=-3&per_page=50",
			wantPage:    1,
			wantPerPage: 50,
		},
		{
			name:        "explicit page kept",
			query:       "?page=7&per_page=10",
			wantPage:    7,
			wantPerPage: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/api/clients"+tt.query, nil)

			page := pageFromRequest(r)
			if page.Number != tt.wantPage {
				t.Fatalf("page number = %d, want %d", page.Number, tt.wantPage)
			}
			if page.PerPage != tt.wantPerPage {
				t.Fatalf("per page = %d, want %d", page.PerPage, tt.wantPerPage)
			}
		})
	}
}

func TestIDParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/clients/abc", nil)

	if _, ok := idParam(r, "id"); ok {
		t.Fatalf("expected non numeric id to be rejected")
	}
}
