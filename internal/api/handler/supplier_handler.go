package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/api/metrics"
	"github.com/heronet/sellnet/internal/core/ports"
)

// SupplierHandler exposes supplier administration to admins.
type SupplierHandler struct {
	service ports.SupplierService
}

func NewSupplierHandler(service ports.SupplierService) *SupplierHandler {
	return &SupplierHandler{service: service}
}

// Find handles GET /api/suppliers.
//
// @Summary      Find a supplier
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        searchBy  query     string  true  "email or username"
// @Param        query     query     string  true  "Value to look for"
// @Success      200       {object}  supplierResponse
// @Failure      400       {object}  errorResponse
// @Failure      401       {object}  errorResponse
// @Failure      403       {object}  errorResponse
// @Router       /api/suppliers [get]
func (h *SupplierHandler) Find(c echo.Context) error {
	var q findSupplierQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	info, err := h.service.FindSupplier(c.Request().Context(), q.SearchBy, q.Query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSupplierResponse(*info))
}

// List handles GET /api/suppliers/all.
//
// @Summary      List suppliers
// @Tags         suppliers
// @Produce      json
// @Security     BearerAuth
// @Param        pageSize   query     int  false  "Page size (default 100)"
// @Param        pageCount  query     int  false  "1-based page number"
// @Success      200        {object}  pageResponse[supplierResponse]
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /api/suppliers/all [get]
func (h *SupplierHandler) List(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var q listSuppliersQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.service.ListSuppliers(c.Request().Context(), id, q.PageSize, q.PageCount)
	if err != nil {
		return err
	}

	data := make([]supplierResponse, 0, len(page.Items))
	for _, s := range page.Items {
		data = append(data, toSupplierResponse(s))
	}
	return c.JSON(http.StatusOK, pageResponse[supplierResponse]{Data: data, Size: page.Total})
}

// Delete handles DELETE /api/suppliers/:id.
//
// @Summary      Delete a supplier
// @Tags         suppliers
// @Security     BearerAuth
// @Param        id   path  string  true  "Supplier id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSupplier(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}

	metrics.SuppliersDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
