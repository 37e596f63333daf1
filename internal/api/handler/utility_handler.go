package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/core/ports"
)

type UtilityHandler struct {
	locations ports.LocationProvider
}

func NewUtilityHandler(locations ports.LocationProvider) *UtilityHandler {
	return &UtilityHandler{locations: locations}
}

// Locations lists the cities and divisions accepted at registration.
//
// @Summary      Cities and divisions
// @Tags         utilities
// @Produce      json
// @Success      200  {object}  locationsResponse
// @Router       /api/utilities/locations [get]
func (h *UtilityHandler) Locations(c echo.Context) error {
	return c.JSON(http.StatusOK, locationsResponse{
		Cities:    h.locations.Cities(),
		Divisions: h.locations.Divisions(),
	})
}
