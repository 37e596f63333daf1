package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/api/middleware"
)

// callerID returns the supplier id injected by the Auth middleware.
func callerID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.KeySupplierID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
