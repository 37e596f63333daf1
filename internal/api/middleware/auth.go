package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

// Context keys set by Auth.
const (
	KeySupplierID = "supplier_id"
	KeyUserName   = "username"
	KeyRoles      = "roles"
)

// Auth validates the bearer token and injects its claims into context.
func Auth(tokens ports.TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				if errors.Is(err, domain.ErrTokenExpired) {
					return echo.NewHTTPError(http.StatusUnauthorized, "token expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(KeySupplierID, claims.SupplierID)
			c.Set(KeyUserName, claims.UserName)
			c.Set(KeyRoles, claims.Roles)

			return next(c)
		}
	}
}
