package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/api/middleware"
	"github.com/heronet/sellnet/internal/core/ports"
)

type stubAccountService struct {
	registerFn      func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	registerAdminFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn         func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn       func(ctx context.Context, supplierID string) (*ports.AuthResult, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerAdminFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Refresh(ctx context.Context, supplierID string) (*ports.AuthResult, error) {
	return s.refreshFn(ctx, supplierID)
}

type stubProductService struct {
	listFn   func(ctx context.Context, in ports.ListProductsInput) (*ports.ProductPage, error)
	getFn    func(ctx context.Context, id string) (*ports.ProductView, error)
	createFn func(ctx context.Context, in ports.CreateProductInput) (*ports.CreateProductResult, error)
	deleteFn func(ctx context.Context, callerID, productID string) error
}

func (s *stubProductService) ListProducts(ctx context.Context, in ports.ListProductsInput) (*ports.ProductPage, error) {
	return s.listFn(ctx, in)
}

func (s *stubProductService) GetProduct(ctx context.Context, id string) (*ports.ProductView, error) {
	return s.getFn(ctx, id)
}

func (s *stubProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*ports.CreateProductResult, error) {
	return s.createFn(ctx, in)
}

func (s *stubProductService) DeleteProduct(ctx context.Context, callerID, productID string) error {
	return s.deleteFn(ctx, callerID, productID)
}

type stubSupplierService struct {
	findFn   func(ctx context.Context, searchBy, query string) (*ports.SupplierInfo, error)
	listFn   func(ctx context.Context, callerID string, pageSize, pageCount int) (*ports.SupplierPage, error)
	deleteFn func(ctx context.Context, callerID, supplierID string) error
}

func (s *stubSupplierService) FindSupplier(ctx context.Context, searchBy, query string) (*ports.SupplierInfo, error) {
	return s.findFn(ctx, searchBy, query)
}

func (s *stubSupplierService) ListSuppliers(ctx context.Context, callerID string, pageSize, pageCount int) (*ports.SupplierPage, error) {
	return s.listFn(ctx, callerID, pageSize, pageCount)
}

func (s *stubSupplierService) DeleteSupplier(ctx context.Context, callerID, supplierID string) error {
	return s.deleteFn(ctx, callerID, supplierID)
}

type stubLocations struct{}

func (stubLocations) Cities() []string                      { return []string{"Dhaka", "Sylhet"} }
func (stubLocations) Divisions() []string                   { return []string{"Dhaka"} }
func (stubLocations) ResolveCity(string) (string, bool)     { return "", false }
func (stubLocations) ResolveDivision(string) (string, bool) { return "", false }

// newContext builds an echo context with the validator installed, as the
// router does.
func newContext(method, target string, body io.Reader, contentType string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, supplierID string, roles ...string) {
	c.Set(middleware.KeySupplierID, supplierID)
	c.Set(middleware.KeyRoles, roles)
}
