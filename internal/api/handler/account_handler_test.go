package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

func expectHTTPError(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != code {
		t.Fatalf("expected http error %d, got %v", code, err)
	}
}

func TestAccountHandler_Register_Success(t *testing.T) {
	stub := &stubAccountService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Jane" || in.Email != "JANE@X.COM" || in.City != "Dhaka" || in.Division != "Dhaka" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{ID: "sup-1", Name: "Jane", Token: "tkn", Roles: []string{domain.RoleMember}}, nil
		},
	}
	handler := NewAccountHandler(stub)

	body := strings.NewReader(`{"name":"Jane","email":"JANE@X.COM","password":"abcd","phone":"0171","city":"Dhaka","division":"Dhaka"}`)
	c, rec := newContext(http.MethodPost, "/api/account/register", body, echo.MIMEApplicationJSON)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["id"] != "sup-1" || resp["name"] != "Jane" || resp["token"] != "tkn" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	roles, _ := resp["roles"].([]any)
	if len(roles) != 1 || roles[0] != "Member" {
		t.Fatalf("unexpected roles: %+v", resp["roles"])
	}
}

func TestAccountHandler_Register_TrimsEmailBeforeValidation(t *testing.T) {
	var got string
	handler := NewAccountHandler(&stubAccountService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			got = in.Email
			return &ports.AuthResult{ID: "sup-1", Name: "Jane", Token: "tkn", Roles: []string{domain.RoleMember}}, nil
		},
	})

	body := strings.NewReader(`{"name":"Jane","email":"  JANE@X.COM ","password":"abcd","city":"Dhaka","division":"Dhaka"}`)
	c, rec := newContext(http.MethodPost, "/api/account/register", body, echo.MIMEApplicationJSON)

	if err := handler.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got != "JANE@X.COM" {
		t.Fatalf("expected trimmed email, got %q", got)
	}
}

func TestAccountHandler_Register_Validation(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("service must not be called")
			return nil, nil
		},
	})

	c, _ := newContext(http.MethodPost, "/api/account/register", strings.NewReader(`{"name":"Jane","email":"not-an-email","password":"abcd"}`), echo.MIMEApplicationJSON)
	expectHTTPError(t, handler.Register(c), http.StatusBadRequest)

	c, _ = newContext(http.MethodPost, "/api/account/register", strings.NewReader(`{bad json`), echo.MIMEApplicationJSON)
	expectHTTPError(t, handler.Register(c), http.StatusBadRequest)
}

func TestAccountHandler_Register_ServiceError(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCity
		},
	})

	body := strings.NewReader(`{"name":"Jane","email":"jane@x.com","password":"abcd","city":"Gotham","division":"Dhaka"}`)
	c, _ := newContext(http.MethodPost, "/api/account/register", body, echo.MIMEApplicationJSON)

	if err := handler.Register(c); !errors.Is(err, domain.ErrInvalidCity) {
		t.Fatalf("expected ErrInvalidCity, got %v", err)
	}
}

func TestAccountHandler_Login(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if password != "abcd" {
				return nil, domain.ErrInvalidCredentials
			}
			return &ports.AuthResult{ID: "sup-1", Name: "Jane", Token: "tkn"}, nil
		},
	})

	c, rec := newContext(http.MethodPost, "/api/account/login", strings.NewReader(`{"email":"jane@x.com","password":"abcd"}`), echo.MIMEApplicationJSON)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"roles":[]`) {
		t.Fatalf("expected empty roles array, got %s", rec.Body.String())
	}

	c, _ = newContext(http.MethodPost, "/api/account/login", strings.NewReader(`{"email":"jane@x.com","password":"nope"}`), echo.MIMEApplicationJSON)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountHandler_Refresh_UsesTokenIdentity(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		refreshFn: func(ctx context.Context, supplierID string) (*ports.AuthResult, error) {
			if supplierID != "sup-1" {
				t.Fatalf("unexpected supplier id: %s", supplierID)
			}
			return &ports.AuthResult{ID: "sup-1", Name: "Jane", Token: "fresh"}, nil
		},
	})

	// The body is ignored; identity comes from the token.
	c, rec := newContext(http.MethodPost, "/api/account/refresh", strings.NewReader(`{"id":"someone-else"}`), echo.MIMEApplicationJSON)
	authenticate(c, "sup-1", domain.RoleMember)

	if err := handler.Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "fresh") {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_Refresh_RequiresIdentity(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{})

	c, _ := newContext(http.MethodPost, "/api/account/refresh", nil, "")
	expectHTTPError(t, handler.Refresh(c), http.StatusUnauthorized)
}

func TestAccountHandler_RegisterAdmin(t *testing.T) {
	handler := NewAccountHandler(&stubAccountService{
		registerAdminFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.City != "" || in.Division != "" {
				t.Fatalf("admin input must not carry a location: %+v", in)
			}
			if in.Email != "ops@x.com" {
				t.Fatalf("expected trimmed email, got %q", in.Email)
			}
			return &ports.AuthResult{ID: "adm-2", Name: "ops", Token: "tkn", Roles: []string{domain.RoleAdmin}}, nil
		},
	})

	body := strings.NewReader(`{"name":"Ops","email":" ops@x.com\t","password":"abcd","city":"Dhaka"}`)
	c, rec := newContext(http.MethodPost, "/api/admin/register", body, echo.MIMEApplicationJSON)
	authenticate(c, "adm-1", domain.RoleAdmin)

	if err := handler.RegisterAdmin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"Admin"`) {
		t.Fatalf("unexpected response %d %s", rec.Code, rec.Body.String())
	}
}

func TestUtilityHandler_Locations(t *testing.T) {
	c, rec := newContext(http.MethodGet, "/api/utilities/locations", nil, "")

	if err := NewUtilityHandler(stubLocations{}).Locations(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp locationsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Cities) != 2 || len(resp.Divisions) != 1 {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
