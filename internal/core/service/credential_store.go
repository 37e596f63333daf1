package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

// MinPasswordLength is the only password rule; no character classes are
// required.
const MinPasswordLength = 4

// CredentialStore implements ports.CredentialStore over a SupplierRepository.
type CredentialStore struct {
	repo ports.SupplierRepository
	cost int
}

func NewCredentialStore(repo ports.SupplierRepository) *CredentialStore {
	return &CredentialStore{repo: repo, cost: bcrypt.DefaultCost}
}

// Create validates the password, hashes it and persists the supplier. The
// supplier's ID and CreatedAt are filled in on success.
func (s *CredentialStore) Create(ctx context.Context, supplier *domain.Supplier, password string) error {
	if supplier.Email == "" || supplier.UserName == "" {
		return domain.ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if supplier.ID == "" {
		supplier.ID = uuid.NewString()
	}
	supplier.PasswordHash = string(hash)
	supplier.CreatedAt = time.Now().UTC()

	return s.repo.Create(ctx, supplier)
}

// CheckPassword compares in constant time. An empty hash never matches.
func (s *CredentialStore) CheckPassword(supplier *domain.Supplier, password string) bool {
	if supplier == nil || supplier.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(supplier.PasswordHash), []byte(password)) == nil
}

func (s *CredentialStore) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	if id == "" {
		return nil, domain.ErrSupplierNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*domain.Supplier, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrSupplierNotFound
	}
	return s.repo.FindByEmail(ctx, email)
}

func (s *CredentialStore) FindByUserName(ctx context.Context, userName string) (*domain.Supplier, error) {
	userName = domain.NormalizeEmail(userName)
	if userName == "" {
		return nil, domain.ErrSupplierNotFound
	}
	return s.repo.FindByUserName(ctx, userName)
}

func (s *CredentialStore) List(ctx context.Context, filter ports.SupplierListFilter) ([]*domain.Supplier, int64, error) {
	return s.repo.List(ctx, filter)
}

func (s *CredentialStore) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *CredentialStore) AddToRole(ctx context.Context, supplierID, role string) error {
	return s.repo.AddToRole(ctx, supplierID, role)
}

func (s *CredentialStore) GetRoles(ctx context.Context, supplierID string) ([]string, error) {
	roles, err := s.repo.GetRoles(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("get roles: %w", err)
	}
	return roles, nil
}

// ensureRole makes sure a role exists before anyone is assigned to it.
// Ensure is create-or-ignore, so two registrations racing on a missing role
// both succeed.
func ensureRole(ctx context.Context, registry ports.RoleRegistry, name string) error {
	if err := registry.Ensure(ctx, name); err != nil {
		return &domain.RoleCreationError{Role: name, Err: err}
	}
	return nil
}

// isNotFound reports whether err is a not-found of any kind.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
