package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/heronet/sellnet/internal/core/domain"
)

func newTestSupplierService(t *testing.T) (*SupplierService, *stubSupplierRepo, *stubProductRepo, *recordingCleaner) {
	t.Helper()
	repo := newStubSupplierRepo()
	products := newStubProductRepo()
	cleaner := &recordingCleaner{}

	_ = repo.Ensure(context.Background(), domain.RoleAdmin)
	_ = repo.Ensure(context.Background(), domain.RoleMember)
	seed := []*domain.Supplier{
		{ID: "admin", Name: "root", UserName: "admin@x.com", Email: "admin@x.com"},
		{ID: "s1", Name: "Jane", UserName: "jane@x.com", Email: "jane@x.com"},
		{ID: "s2", Name: "Karim", UserName: "karim@x.com", Email: "karim@x.com"},
	}
	for _, s := range seed {
		if err := repo.Create(context.Background(), s); err != nil {
			t.Fatalf("seed supplier: %v", err)
		}
	}
	_ = repo.AddToRole(context.Background(), "admin", domain.RoleAdmin)
	_ = repo.AddToRole(context.Background(), "s1", domain.RoleMember)

	svc := NewSupplierService(newTestCredentialStore(repo), products, cleaner, zerolog.Nop())
	return svc, repo, products, cleaner
}

func TestSupplierService_FindSupplier(t *testing.T) {
	svc, _, _, _ := newTestSupplierService(t)

	info, err := svc.FindSupplier(context.Background(), "email", "JANE@x.com")
	if err != nil {
		t.Fatalf("FindSupplier returned error: %v", err)
	}
	if info.ID != "s1" || len(info.Roles) != 1 || info.Roles[0] != domain.RoleMember {
		t.Fatalf("unexpected supplier: %+v", info)
	}

	if _, err := svc.FindSupplier(context.Background(), "UserName", "karim@x.com"); err != nil {
		t.Fatalf("FindSupplier by username returned error: %v", err)
	}
	if _, err := svc.FindSupplier(context.Background(), "phone", "0171"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
	if _, err := svc.FindSupplier(context.Background(), "email", "nobody@x.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestSupplierService_ListSuppliers_ExcludesCaller(t *testing.T) {
	svc, _, _, _ := newTestSupplierService(t)

	page, err := svc.ListSuppliers(context.Background(), "admin", 0, 0)
	if err != nil {
		t.Fatalf("ListSuppliers returned error: %v", err)
	}
	if page.Total != 2 || len(page.Items) != 2 {
		t.Fatalf("expected two suppliers, got total=%d items=%d", page.Total, len(page.Items))
	}
	for _, it := range page.Items {
		if it.ID == "admin" {
			t.Fatalf("caller should not be listed")
		}
	}

	page, err = svc.ListSuppliers(context.Background(), "admin", 1, 2)
	if err != nil {
		t.Fatalf("ListSuppliers returned error: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].ID != "s2" {
		t.Fatalf("unexpected second page: %+v", page.Items)
	}
}

func TestSupplierService_DeleteSupplier(t *testing.T) {
	svc, repo, products, cleaner := newTestSupplierService(t)
	_ = products.Create(context.Background(), &domain.Product{ID: "p1", SupplierID: "s1", Thumbnail: domain.Photo{PublicID: "t1"}})
	_ = products.Create(context.Background(), &domain.Product{ID: "p2", SupplierID: "s1", Thumbnail: domain.Photo{PublicID: "t2"}})
	_ = products.Create(context.Background(), &domain.Product{ID: "p3", SupplierID: "s2"})

	if err := svc.DeleteSupplier(context.Background(), "admin", "admin"); !errors.Is(err, domain.ErrCannotDeleteSelf) {
		t.Fatalf("expected ErrCannotDeleteSelf, got %v", err)
	}
	if err := svc.DeleteSupplier(context.Background(), "admin", "missing"); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Fatalf("expected ErrSupplierNotFound, got %v", err)
	}

	if err := svc.DeleteSupplier(context.Background(), "admin", "s1"); err != nil {
		t.Fatalf("DeleteSupplier returned error: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), "s1"); !errors.Is(err, domain.ErrSupplierNotFound) {
		t.Fatalf("supplier should be gone, got %v", err)
	}
	if roles, _ := repo.GetRoles(context.Background(), "s1"); len(roles) != 0 {
		t.Fatalf("role assignments should be gone, got %v", roles)
	}
	if len(products.byID) != 1 {
		t.Fatalf("expected only the other supplier's product to remain, got %d", len(products.byID))
	}
	if len(cleaner.jobs) != 2 {
		t.Fatalf("expected a cleanup job per removed product, got %d", len(cleaner.jobs))
	}
}
