package ports

import (
	"context"
	"time"
)

// ListProductsInput carries the raw listing query parameters.
type ListProductsInput struct {
	Name       string
	Category   string
	City       string
	Division   string
	SortParam  string
	PageSize   int
	PageNumber int
}

// PhotoView is an image reference in a product view.
type PhotoView struct {
	ImageURL string
	PublicID string
}

// SupplierInfo is the public view of a supplier.
type SupplierInfo struct {
	ID    string
	Name  string
	Email string
	Phone string
	Roles []string
}

// ProductView is a product as listed to clients.
type ProductView struct {
	ID          string
	Name        string
	Description string
	Category    string
	SubCategory string
	CategoryID  string
	BuyersCount int
	CreatedAt   time.Time
	City        string
	Division    string
	Price       float64
	Brand       string
	Thumbnail   PhotoView
	Photos      []PhotoView
	Supplier    *SupplierInfo // only set on single-product reads
}

// ProductPage is one page of a listing plus the total match count.
type ProductPage struct {
	Items []ProductView
	Total int64
}

// CreateProductInput carries a new listing.
type CreateProductInput struct {
	SupplierID     string
	Name           string
	Price          float64
	Category       string
	SubCategory    string
	Description    string
	Brand          string
	Photos         []PhotoUpload
	IdempotencyKey string
}

// CreateProductResult is returned after a listing is stored.
type CreateProductResult struct {
	ProductID string
	Message   string
	// AlreadyExisted is true when the Idempotency-Key matched an earlier create.
	AlreadyExisted bool
}

// ProductService defines the listing use cases.
type ProductService interface {
	ListProducts(ctx context.Context, in ListProductsInput) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*ProductView, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*CreateProductResult, error)
	// DeleteProduct removes a product owned by callerID.
	DeleteProduct(ctx context.Context, callerID, productID string) error
}
