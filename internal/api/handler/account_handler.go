package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/api/metrics"
	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Register creates a Member supplier and signs it in.
//
// @Summary      Register a supplier
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Supplier registration details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(domain.RoleMember).Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Login authenticates a supplier and returns a JWT token.
//
// @Summary      Login
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// Refresh re-issues a token for the bearer with its current roles.
//
// @Summary      Refresh token
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/account/refresh [post]
func (h *AccountHandler) Refresh(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	res, err := h.accounts.Refresh(c.Request().Context(), id)
	if err != nil {
		return err
	}

	metrics.TokensRefreshedTotal.Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}

// RegisterAdmin creates another administrator. Only reachable by admins.
//
// @Summary      Register an administrator
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      adminRegisterRequest  true  "Administrator details"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/admin/register [post]
func (h *AccountHandler) RegisterAdmin(c echo.Context) error {
	var req adminRegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.accounts.RegisterAdmin(c.Request().Context(), toAdminRegisterInput(req))
	if err != nil {
		return err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(domain.RoleAdmin).Inc()
	return c.JSON(http.StatusOK, toAuthResponse(res))
}
