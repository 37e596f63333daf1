package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

const defaultSupplierPageSize = 100

type SupplierService struct {
	store    ports.CredentialStore
	products ports.ProductRepository
	cleaner  ports.PhotoCleaner
	logger   zerolog.Logger
}

func NewSupplierService(
	store ports.CredentialStore,
	products ports.ProductRepository,
	cleaner ports.PhotoCleaner,
	logger zerolog.Logger,
) *SupplierService {
	return &SupplierService{store: store, products: products, cleaner: cleaner, logger: logger}
}

func (s *SupplierService) FindSupplier(ctx context.Context, searchBy, query string) (*ports.SupplierInfo, error) {
	var (
		supplier *domain.Supplier
		err      error
	)
	switch strings.ToLower(strings.TrimSpace(searchBy)) {
	case "email":
		supplier, err = s.store.FindByEmail(ctx, query)
	case "username":
		supplier, err = s.store.FindByUserName(ctx, query)
	default:
		return nil, domain.ErrInvalidQuery
	}
	if err != nil {
		return nil, err
	}

	return s.info(ctx, supplier)
}

// ListSuppliers pages through every supplier except the caller.
func (s *SupplierService) ListSuppliers(ctx context.Context, callerID string, pageSize, pageCount int) (*ports.SupplierPage, error) {
	page, size := normalizePage(pageCount, pageSize, defaultSupplierPageSize)

	suppliers, total, err := s.store.List(ctx, ports.SupplierListFilter{
		ExcludeID: callerID,
		Page:      page,
		PageSize:  size,
	})
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}

	out := &ports.SupplierPage{Items: make([]ports.SupplierInfo, 0, len(suppliers)), Total: total}
	for _, sup := range suppliers {
		info, err := s.info(ctx, sup)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *info)
	}
	return out, nil
}

// DeleteSupplier removes the supplier, its role assignments and every product
// it owns. Product images are removed in the background.
func (s *SupplierService) DeleteSupplier(ctx context.Context, callerID, supplierID string) error {
	if callerID == supplierID {
		return domain.ErrCannotDeleteSelf
	}

	supplier, err := s.store.FindByID(ctx, supplierID)
	if err != nil {
		return err
	}

	removed, err := s.products.DeleteBySupplier(ctx, supplier.ID)
	if err != nil {
		return fmt.Errorf("delete supplier products: %w", err)
	}
	for _, p := range removed {
		s.cleaner.Enqueue(ports.PhotoCleanupJob{ProductID: p.ID, PublicIDs: p.PublicIDs()})
	}

	if err := s.store.Delete(ctx, supplier.ID); err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}

	s.logger.Info().
		Str("supplier_id", supplier.ID).
		Str("deleted_by", callerID).
		Int("products", len(removed)).
		Msg("supplier deleted")
	return nil
}

func (s *SupplierService) info(ctx context.Context, supplier *domain.Supplier) (*ports.SupplierInfo, error) {
	roles, err := s.store.GetRoles(ctx, supplier.ID)
	if err != nil {
		return nil, err
	}
	return &ports.SupplierInfo{
		ID:    supplier.ID,
		Name:  supplier.Name,
		Email: supplier.Email,
		Phone: supplier.Phone,
		Roles: roles,
	}, nil
}
