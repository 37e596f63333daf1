package ports

import "context"

// SupplierPage is one page of suppliers plus the total count.
type SupplierPage struct {
	Items []SupplierInfo
	Total int64
}

// SupplierService holds the administrator operations on suppliers.
type SupplierService interface {
	// FindSupplier looks a supplier up by "email" or "username".
	FindSupplier(ctx context.Context, searchBy, query string) (*SupplierInfo, error)
	ListSuppliers(ctx context.Context, callerID string, pageSize, pageCount int) (*SupplierPage, error)
	// DeleteSupplier removes a supplier with its products. Callers cannot
	// delete themselves.
	DeleteSupplier(ctx context.Context, callerID, supplierID string) error
}
