// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/models"
	"inkwell/internal/token"
)

func testToken(t *testing.T, issuer *token.Issuer, role models.Role) string {
	t.Helper()
	tok, err := issuer.Issue(&models.User{ID: uuid.New(), Username: "tester", Role: role})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

func claimsEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromCtx(r.Context()) != nil {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	handler := Authenticate(issuer)(claimsEcho(t))

	t.Run("no token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want 204", rr.Code)
		}
	})

	t.Run("valid bearer token sets claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t, issuer, models.RoleViewer))
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("cookie token sets claims", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.AddCookie(&http.Cookie{Name: "inkwell_token", Value: testToken(t, issuer, models.RoleViewer)})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusOK {
			t.Errorf("status: got %d, want 200", rr.Code)
		}
	})

	t.Run("garbage token is anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Errorf("status: got %d, want 204", rr.Code)
		}
	})
}

func TestRequireAuth(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	handler := Authenticate(issuer)(RequireAuth(claimsEcho(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("anonymous: got %d, want 401", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, issuer, models.RoleViewer))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("authenticated: got %d, want 200", rr.Code)
	}
}

func TestRequireRole(t *testing.T) {
	issuer := token.NewIssuer("test-secret", time.Hour)
	handler := Authenticate(issuer)(RequireRole(models.RoleAdmin)(claimsEcho(t)))

	req := httptest.NewRequest(http.MethodGet, "/api/moderation/reports", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, issuer, models.RoleViewer))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Errorf("viewer on admin route: got %d, want 403", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/moderation/reports", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t, issuer, models.RoleAdmin))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Errorf("admin on admin route: got %d, want 200", rr.Code)
	}
}
