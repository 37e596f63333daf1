package ports

import (
	"context"

	"github.com/heronet/sellnet/internal/core/domain"
)

// SupplierListFilter selects a page of suppliers.
type SupplierListFilter struct {
	ExcludeID string // the caller; never listed
	Page      int    // 1-based
	PageSize  int
}

// SupplierRepository persists suppliers and their role assignments.
type SupplierRepository interface {
	// Create inserts a supplier. Unique violations map to
	// domain.ErrDuplicateEmail or domain.ErrDuplicateUserName.
	Create(ctx context.Context, s *domain.Supplier) error
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	FindByEmail(ctx context.Context, email string) (*domain.Supplier, error)
	FindByUserName(ctx context.Context, userName string) (*domain.Supplier, error)
	List(ctx context.Context, filter SupplierListFilter) ([]*domain.Supplier, int64, error)
	// Delete removes the supplier and its role assignments.
	Delete(ctx context.Context, id string) error

	AddToRole(ctx context.Context, supplierID, role string) error
	GetRoles(ctx context.Context, supplierID string) ([]string, error)
}

// CredentialStore owns supplier identities: password policy, hashing and
// verification on top of a SupplierRepository.
type CredentialStore interface {
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	FindByEmail(ctx context.Context, email string) (*domain.Supplier, error)
	FindByUserName(ctx context.Context, userName string) (*domain.Supplier, error)
	List(ctx context.Context, filter SupplierListFilter) ([]*domain.Supplier, int64, error)
	Create(ctx context.Context, s *domain.Supplier, password string) error
	CheckPassword(s *domain.Supplier, password string) bool
	Delete(ctx context.Context, id string) error
	AddToRole(ctx context.Context, supplierID, role string) error
	GetRoles(ctx context.Context, supplierID string) ([]string, error)
}

// RoleRegistry stores the named roles suppliers can be assigned to.
type RoleRegistry interface {
	// Ensure creates the role unless it already exists. Concurrent calls for
	// the same name must all succeed.
	Ensure(ctx context.Context, name string) error
}

// LocationProvider is the reference data registration validates against.
type LocationProvider interface {
	Cities() []string
	Divisions() []string
	// ResolveCity returns the canonical spelling of a city, matched
	// case-insensitively after trimming.
	ResolveCity(name string) (string, bool)
	ResolveDivision(name string) (string, bool)
}
