package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/service"
	"github.com/heronet/sellnet/internal/infrastructure/refdata"
)

const routerSecret = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// The router registers Prometheus collectors, so it is built once.
func TestRouter(t *testing.T) {
	tokens, err := service.NewTokenService(routerSecret)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	e := NewRouter(Deps{
		Locations: refdata.Default(),
		Tokens:    tokens,
		Logger:    zerolog.Nop(),
	})

	memberToken, err := tokens.Issue(&domain.Supplier{ID: "s1", UserName: "jane@x.com"}, []string{domain.RoleMember})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	cases := []struct {
		name   string
		method string
		target string
		token  string
		code   int
		errMsg string
	}{
		{"welcome", http.MethodGet, "/", "", http.StatusOK, ""},
		{"liveness", http.MethodGet, "/health", "", http.StatusOK, ""},
		{"locations are public", http.MethodGet, "/api/utilities/locations", "", http.StatusOK, ""},
		{"refresh needs a token", http.MethodPost, "/api/account/refresh", "", http.StatusUnauthorized, "missing authorization header"},
		{"refresh rejects bad token", http.MethodPost, "/api/account/refresh", "garbage", http.StatusUnauthorized, "invalid token"},
		{"admin register needs admin", http.MethodPost, "/api/admin/register", memberToken, http.StatusForbidden, "forbidden"},
		{"suppliers need admin", http.MethodGet, "/api/suppliers/all", memberToken, http.StatusForbidden, "forbidden"},
		{"supplier delete needs admin", http.MethodDelete, "/api/suppliers/s2", memberToken, http.StatusForbidden, "forbidden"},
		{"product create needs a token", http.MethodPost, "/api/products", "", http.StatusUnauthorized, "missing authorization header"},
		{"unknown route", http.MethodGet, "/api/nope", "", http.StatusNotFound, "Not Found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d: %s", tc.code, rec.Code, rec.Body.String())
			}
			if tc.errMsg == "" {
				return
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp.Error != tc.errMsg {
				t.Fatalf("expected error %q, got %q", tc.errMsg, resp.Error)
			}
		})
	}

	t.Run("welcome text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if !strings.Contains(rec.Body.String(), "Welcome to Sellnet API") {
			t.Fatalf("unexpected body %q", rec.Body.String())
		}
	})
}
