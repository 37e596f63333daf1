package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/heronet/sellnet/internal/api/metrics"
	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	photosField    = "photos"
	maxPhotoBytes  = 5 << 20
	idempotencyKey = "Idempotency-Key"
)

// ProductHandler handles HTTP requests for product listings.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /api/products/all.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Param        name        query     string  false  "Case-insensitive name substring"
// @Param        category    query     string  false  "Category"
// @Param        city        query     string  false  "Supplier city"
// @Param        division    query     string  false  "Supplier division"
// @Param        sortParam   query     string  false  "price: low to high | price: high to low | date: old to new | date: new to old"
// @Param        pageSize    query     int     false  "Page size (default 10, max 100)"
// @Param        pageNumber  query     int     false  "1-based page number"
// @Success      200         {object}  pageResponse[productResponse]
// @Failure      400         {object}  errorResponse
// @Router       /api/products/all [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	page, err := h.service.ListProducts(c.Request().Context(), toListProductsInput(q))
	if err != nil {
		return err
	}

	data := make([]productResponse, 0, len(page.Items))
	for _, p := range page.Items {
		data = append(data, toProductResponse(p))
	}
	return c.JSON(http.StatusOK, pageResponse[productResponse]{Data: data, Size: page.Total})
}

// Get handles GET /api/products/:id.
//
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	view, err := h.service.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProductResponse(*view))
}

// Create handles POST /api/products.
//
// @Summary      Add a product
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string  false  "Idempotency key to prevent duplicate submissions"
// @Param        name             formData  string  true   "Product name"
// @Param        price            formData  number  true   "Price"
// @Param        category         formData  string  true   "Category"
// @Param        sub_category     formData  string  false  "Sub category"
// @Param        description      formData  string  false  "Description"
// @Param        brand            formData  string  false  "Brand"
// @Param        photos           formData  file    true   "1 to 5 photos"
// @Success      201              {object}  createProductResponse
// @Success      200              {object}  createProductResponse  "Idempotent replay"
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	var form createProductForm
	if err := bindAndValidate(c, &form); err != nil {
		return err
	}

	photos, err := readPhotos(c)
	if err != nil {
		return err
	}

	res, err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		SupplierID:     id,
		Name:           form.Name,
		Price:          form.Price,
		Category:       form.Category,
		SubCategory:    form.SubCategory,
		Description:    form.Description,
		Brand:          form.Brand,
		Photos:         photos,
		IdempotencyKey: c.Request().Header.Get(idempotencyKey),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if res.AlreadyExisted {
		status = http.StatusOK
		metrics.ProductsCreatedTotal.WithLabelValues("replayed").Inc()
	} else {
		metrics.ProductsCreatedTotal.WithLabelValues("created").Inc()
	}

	c.Response().Header().Set(echo.HeaderLocation, "/api/products/"+res.ProductID)
	return c.JSON(status, createProductResponse{ID: res.ProductID, Response: res.Message})
}

// Delete handles DELETE /api/products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), id, c.Param("id")); err != nil {
		return err
	}

	metrics.ProductsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Product deleted successfully"})
}

// readPhotos loads the uploaded files in form order. The count is checked
// before any file is read.
func readPhotos(c echo.Context) ([]ports.PhotoUpload, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "expected multipart form")
	}

	files := form.File[photosField]
	if len(files) == 0 {
		return nil, domain.ErrNoPhotos
	}
	if len(files) > domain.MaxProductPhotos {
		return nil, domain.ErrTooManyPhotos
	}

	photos := make([]ports.PhotoUpload, 0, len(files))
	for _, fh := range files {
		data, err := readPhoto(fh)
		if err != nil {
			return nil, err
		}
		photos = append(photos, ports.PhotoUpload{Filename: fh.Filename, Data: data})
	}
	return photos, nil
}

func readPhoto(fh *multipart.FileHeader) ([]byte, error) {
	if fh.Size == 0 {
		return nil, domain.ErrEmptyPhoto
	}
	if fh.Size > maxPhotoBytes {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("photo %q is larger than %d MB", fh.Filename, maxPhotoBytes>>20))
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open photo %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxPhotoBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read photo %q: %w", fh.Filename, err)
	}
	return data, nil
}
