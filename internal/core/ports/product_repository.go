package ports

import (
	"context"

	"github.com/heronet/sellnet/internal/core/domain"
)

// ProductListFilter carries the listing query. String filters are already
// normalized (trimmed, lower-cased) by the service; empty means no filter.
type ProductListFilter struct {
	Name     string // case-insensitive substring
	Category string
	City     string
	Division string
	Sort     domain.ProductSort
	Page     int // 1-based
	PageSize int
}

// ProductRepository defines persistence operations for products.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, filter ProductListFilter) ([]*domain.Product, int64, error)
	Delete(ctx context.Context, id string) error
	// DeleteBySupplier removes every product owned by the supplier and
	// returns what was removed.
	DeleteBySupplier(ctx context.Context, supplierID string) ([]*domain.Product, error)
}

// CategoryRepository stores product categories.
type CategoryRepository interface {
	// GetOrCreate returns the category with the given (normalized) name,
	// creating it when missing.
	GetOrCreate(ctx context.Context, name string) (*domain.Category, error)
}
