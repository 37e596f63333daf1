package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/core/domain"
)

// RBAC lets the request through when the token carries at least one of the
// allowed roles. Must run after Auth.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[domain.NormalizeRole(r)] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get(KeyRoles).([]string)
			for _, r := range roles {
				if _, ok := allowed[domain.NormalizeRole(r)]; ok {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
		}
	}
}
