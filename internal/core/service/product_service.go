package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100

	idempotencyScopeProduct = "product"
)

var (
	// photoPreset is applied to every uploaded product photo.
	photoPreset = ports.Transformation{Width: 500, Height: 500, Quality: 50}
	// thumbnailPreset is applied to the first photo to build the thumbnail.
	thumbnailPreset = ports.Transformation{Width: 200, Height: 200, Quality: 20}
)

// IdempotencyStore remembers which product an Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, scope, key string) (string, bool, error)
	Remember(ctx context.Context, scope, key, value string) error
}

type ProductService struct {
	products    ports.ProductRepository
	categories  ports.CategoryRepository
	suppliers   ports.CredentialStore
	photos      ports.PhotoHost
	cleaner     ports.PhotoCleaner
	idempotency IdempotencyStore
	logger      zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	suppliers ports.CredentialStore,
	photos ports.PhotoHost,
	cleaner ports.PhotoCleaner,
	idempotency IdempotencyStore,
	logger zerolog.Logger,
) *ProductService {
	return &ProductService{
		products:    products,
		categories:  categories,
		suppliers:   suppliers,
		photos:      photos,
		cleaner:     cleaner,
		idempotency: idempotency,
		logger:      logger,
	}
}

// ListProducts returns one page of products matching the query.
func (s *ProductService) ListProducts(ctx context.Context, in ports.ListProductsInput) (*ports.ProductPage, error) {
	page, size := normalizePage(in.PageNumber, in.PageSize, defaultPageSize)

	items, total, err := s.products.List(ctx, ports.ProductListFilter{
		Name:     normalizeFilter(in.Name),
		Category: normalizeFilter(in.Category),
		City:     normalizeFilter(in.City),
		Division: normalizeFilter(in.Division),
		Sort:     domain.ParseProductSort(strings.ToLower(strings.TrimSpace(in.SortParam))),
		Page:     page,
		PageSize: size,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	out := &ports.ProductPage{Items: make([]ports.ProductView, 0, len(items)), Total: total}
	for _, p := range items {
		out.Items = append(out.Items, toProductView(p))
	}
	return out, nil
}

// GetProduct returns a single product together with its supplier.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*ports.ProductView, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := toProductView(p)
	supplier, err := s.suppliers.FindByID(ctx, p.SupplierID)
	switch {
	case err == nil:
		view.Supplier = &ports.SupplierInfo{
			ID:    supplier.ID,
			Name:  supplier.Name,
			Email: supplier.Email,
			Phone: supplier.Phone,
		}
	case isNotFound(err):
		s.logger.Warn().Str("product_id", p.ID).Str("supplier_id", p.SupplierID).Msg("product without supplier")
	default:
		return nil, fmt.Errorf("get product supplier: %w", err)
	}
	return &view, nil
}

// CreateProduct uploads the photos, builds the thumbnail from the first one and
// stores the listing. If an idempotency key is provided and already seen, the
// earlier product is returned without side effects.
func (s *ProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*ports.CreateProductResult, error) {
	supplier, err := s.suppliers.FindByID(ctx, in.SupplierID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrLoginRequired
		}
		return nil, fmt.Errorf("create product: %w", err)
	}

	if res := s.replay(ctx, supplier, in.IdempotencyKey); res != nil {
		return res, nil
	}

	if len(in.Photos) == 0 {
		return nil, domain.ErrNoPhotos
	}
	if len(in.Photos) > domain.MaxProductPhotos {
		return nil, domain.ErrTooManyPhotos
	}

	productID := uuid.NewString()
	uploaded := make([]domain.Photo, 0, len(in.Photos))
	for _, ph := range in.Photos {
		res, err := s.photos.Upload(ctx, ph, photoPreset)
		if err != nil {
			s.discard(productID, uploaded)
			return nil, &domain.PhotoUploadError{Filename: ph.Filename, Err: err}
		}
		uploaded = append(uploaded, domain.Photo{ImageURL: res.URL, PublicID: res.PublicID})
	}

	thumb, err := s.photos.Upload(ctx, in.Photos[0], thumbnailPreset)
	if err != nil {
		s.discard(productID, uploaded)
		return nil, &domain.PhotoUploadError{Filename: in.Photos[0].Filename, Err: err}
	}
	thumbnail := domain.Photo{ImageURL: thumb.URL, PublicID: thumb.PublicID}

	category, err := s.categories.GetOrCreate(ctx, normalizeFilter(in.Category))
	if err != nil {
		s.discard(productID, append(uploaded, thumbnail))
		return nil, fmt.Errorf("create product: category: %w", err)
	}

	product := &domain.Product{
		ID:               productID,
		SupplierID:       supplier.ID,
		SupplierName:     supplier.Name,
		SupplierCity:     supplier.City,
		SupplierDivision: supplier.Division,
		CategoryID:       category.ID,
		CategoryName:     category.Name,
		SubCategory:      in.SubCategory,
		Name:             strings.TrimSpace(in.Name),
		Price:            in.Price,
		Description:      in.Description,
		Brand:            in.Brand,
		Thumbnail:        thumbnail,
		Photos:           uploaded,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.products.Create(ctx, product); err != nil {
		s.discard(productID, append(uploaded, thumbnail))
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, fmt.Errorf("create product: %w", err)
	}

	if in.IdempotencyKey != "" {
		if err := s.idempotency.Remember(ctx, idempotencyScope(supplier.ID), in.IdempotencyKey, product.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to store idempotency key")
		}
	}

	s.logger.Info().Str("product_id", product.ID).Str("supplier_id", supplier.ID).Msg("product created")

	return &ports.CreateProductResult{
		ProductID: product.ID,
		Message:   addedMessage(supplier),
	}, nil
}

// replay returns the earlier result for a repeated idempotency key, or nil.
// Store failures are logged and treated as a miss.
func (s *ProductService) replay(ctx context.Context, supplier *domain.Supplier, key string) *ports.CreateProductResult {
	if key == "" {
		return nil
	}

	productID, ok, err := s.idempotency.Lookup(ctx, idempotencyScope(supplier.ID), key)
	if err != nil {
		s.logger.Warn().Err(err).Str("idempotency_key", key).Msg("idempotency lookup failed, creating anyway")
		return nil
	}
	if !ok {
		return nil
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return nil
	}

	s.logger.Info().Str("idempotency_key", key).Str("product_id", productID).Msg("idempotent replay")
	return &ports.CreateProductResult{
		ProductID:      productID,
		Message:        addedMessage(supplier),
		AlreadyExisted: true,
	}
}

// DeleteProduct removes a product if callerID owns it. Its images are removed
// in the background.
func (s *ProductService) DeleteProduct(ctx context.Context, callerID, productID string) error {
	caller, err := s.suppliers.FindByID(ctx, callerID)
	if err != nil {
		if isNotFound(err) {
			return domain.ErrCannotDeleteProduct
		}
		return fmt.Errorf("delete product: %w", err)
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	if product.SupplierID != caller.ID {
		return domain.ErrCannotDeleteProduct
	}

	if err := s.products.Delete(ctx, product.ID); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cleaner.Enqueue(ports.PhotoCleanupJob{ProductID: product.ID, PublicIDs: product.PublicIDs()})
	s.logger.Info().Str("product_id", product.ID).Str("supplier_id", caller.ID).Msg("product deleted")
	return nil
}

// discard schedules removal of images uploaded for a product that was never
// stored.
func (s *ProductService) discard(productID string, photos []domain.Photo) {
	if len(photos) == 0 {
		return
	}
	ids := make([]string, 0, len(photos))
	for _, p := range photos {
		ids = append(ids, p.PublicID)
	}
	s.cleaner.Enqueue(ports.PhotoCleanupJob{ProductID: productID, PublicIDs: ids})
}

func toProductView(p *domain.Product) ports.ProductView {
	photos := make([]ports.PhotoView, len(p.Photos))
	for i, ph := range p.Photos {
		photos[i] = ports.PhotoView{ImageURL: ph.ImageURL, PublicID: ph.PublicID}
	}
	return ports.ProductView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.CategoryName,
		SubCategory: p.SubCategory,
		CategoryID:  p.CategoryID,
		BuyersCount: p.BuyersCount,
		CreatedAt:   p.CreatedAt,
		City:        p.SupplierCity,
		Division:    p.SupplierDivision,
		Price:       p.Price,
		Brand:       p.Brand,
		Thumbnail:   ports.PhotoView{ImageURL: p.Thumbnail.ImageURL, PublicID: p.Thumbnail.PublicID},
		Photos:      photos,
	}
}

func addedMessage(s *domain.Supplier) string {
	return fmt.Sprintf("Successfully added product by %s", s.Name)
}

func idempotencyScope(supplierID string) string {
	return idempotencyScopeProduct + ":" + supplierID
}

func normalizeFilter(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizePage applies the 1-based page default and clamps the page size.
func normalizePage(page, size, def int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = def
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size
}
