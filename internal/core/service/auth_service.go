package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

// AccountService implements registration, login and token refresh.
type AccountService struct {
	store     ports.CredentialStore
	roles     ports.RoleRegistry
	tokens    ports.TokenIssuer
	locations ports.LocationProvider
	log       zerolog.Logger
}

func NewAccountService(
	store ports.CredentialStore,
	roles ports.RoleRegistry,
	tokens ports.TokenIssuer,
	locations ports.LocationProvider,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		store:     store,
		roles:     roles,
		tokens:    tokens,
		locations: locations,
		log:       log,
	}
}

// Register creates a Member supplier. City and division must appear in the
// reference data; the name keeps its case.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := ensureRole(ctx, s.roles, domain.RoleMember); err != nil {
		return nil, err
	}

	city, ok := s.locations.ResolveCity(in.City)
	if !ok {
		return nil, domain.ErrInvalidCity
	}
	division, ok := s.locations.ResolveDivision(in.Division)
	if !ok {
		return nil, domain.ErrInvalidDivision
	}

	email := domain.NormalizeEmail(in.Email)
	supplier := &domain.Supplier{
		Name:     strings.TrimSpace(in.Name),
		UserName: email,
		Email:    email,
		Phone:    in.Phone,
		City:     strings.ToLower(city),
		Division: strings.ToLower(division),
	}

	return s.createWithRole(ctx, supplier, in.Password, domain.RoleMember)
}

// RegisterAdmin creates an Admin supplier. Unlike Register the name is
// lower-cased and no location is recorded.
func (s *AccountService) RegisterAdmin(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := ensureRole(ctx, s.roles, domain.RoleAdmin); err != nil {
		return nil, err
	}

	email := domain.NormalizeEmail(in.Email)
	supplier := &domain.Supplier{
		Name:     strings.ToLower(strings.TrimSpace(in.Name)),
		UserName: email,
		Email:    email,
		Phone:    in.Phone,
	}

	return s.createWithRole(ctx, supplier, in.Password, domain.RoleAdmin)
}

// createWithRole persists the supplier then assigns the role. There is no
// rollback: if the assignment fails the supplier stays without a role.
func (s *AccountService) createWithRole(ctx context.Context, supplier *domain.Supplier, password, role string) (*ports.AuthResult, error) {
	if err := s.store.Create(ctx, supplier, password); err != nil {
		return nil, &domain.UserCreationError{Err: err}
	}

	if err := s.store.AddToRole(ctx, supplier.ID, role); err != nil {
		s.log.Error().Err(err).
			Str("supplier_id", supplier.ID).
			Str("role", role).
			Msg("supplier created without role")
		return nil, &domain.RoleAssignmentError{SupplierID: supplier.ID, Role: role, Err: err}
	}

	s.log.Info().Str("supplier_id", supplier.ID).Str("role", role).Msg("supplier registered")
	return s.authResult(ctx, supplier)
}

// Login verifies the password of the supplier registered under email.
func (s *AccountService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	supplier, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrUnknownEmail
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.store.CheckPassword(supplier, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return s.authResult(ctx, supplier)
}

// Refresh re-issues a token for an already authenticated supplier with the
// roles it holds now.
func (s *AccountService) Refresh(ctx context.Context, supplierID string) (*ports.AuthResult, error) {
	supplier, err := s.store.FindByID(ctx, supplierID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return s.authResult(ctx, supplier)
}

func (s *AccountService) authResult(ctx context.Context, supplier *domain.Supplier) (*ports.AuthResult, error) {
	roles, err := s.store.GetRoles(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(supplier, roles)
	if err != nil {
		return nil, errors.Join(domain.ErrUpstream, err)
	}

	return &ports.AuthResult{
		ID:    supplier.ID,
		Name:  supplier.Name,
		Token: token,
		Roles: roles,
	}, nil
}
