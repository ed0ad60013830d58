package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/apperr"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperr.Validation("bad input"), http.StatusUnprocessableEntity},
		{"authorization", apperr.Authorization("no"), http.StatusForbidden},
		{"not found", apperr.NotFound("gone"), http.StatusNotFound},
		{"conflict", apperr.Conflict("already"), http.StatusConflict},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
			respondError(rec, req, tt.err)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
				t.Errorf("content type = %q", ct)
			}
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	respondError(rec, req, context.DeadlineExceeded)
	if strings.Contains(rec.Body.String(), "deadline") {
		t.Errorf("internal error detail leaked: %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "internal server error") {
		t.Errorf("expected generic message, got %s", rec.Body.String())
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(`{"content":"hi","bogus":1}`))
	var dst commentUpdateRequest
	if decodeJSON(rec, req, &dst) {
		t.Fatal("expected decode failure for unknown field")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestDecodeJSONValidates(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(`{"content":""}`))
	var dst commentUpdateRequest
	if decodeJSON(rec, req, &dst) {
		t.Fatal("expected validation failure for empty content")
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestDecodeJSONAccepts(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/test", strings.NewReader(`{"content":"looks good"}`))
	var dst commentUpdateRequest
	if !decodeJSON(rec, req, &dst) {
		t.Fatalf("unexpected decode failure: %s", rec.Body.String())
	}
	if dst.Content != "looks good" {
		t.Errorf("content = %q", dst.Content)
	}
}

func TestUUIDParamRejectsGarbage(t *testing.T) {
	r := chi.NewRouter()
	var called bool
	r.Get("/articles/{id}", func(w http.ResponseWriter, req *http.Request) {
		_, ok := uuidParam(w, req, "id")
		called = ok
	})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles/not-a-uuid", nil))
	if called {
		t.Error("handler proceeded with invalid uuid")
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/test?page=3&limit=abc", nil)
	if got := queryInt(req, "page", 1); got != 3 {
		t.Errorf("page = %d, want 3", got)
	}
	if got := queryInt(req, "limit", 20); got != 20 {
		t.Errorf("limit fallback = %d, want 20", got)
	}
	if got := queryInt(req, "missing", 7); got != 7 {
		t.Errorf("missing fallback = %d, want 7", got)
	}
}
