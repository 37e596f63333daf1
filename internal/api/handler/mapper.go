package handler

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heronet/sellnet/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		City:     req.City,
		Division: req.Division,
	}
}

func toAdminRegisterInput(req adminRegisterRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	}
}

func toListProductsInput(q listProductsQuery) ports.ListProductsInput {
	return ports.ListProductsInput{
		Name:       q.Name,
		Category:   q.Category,
		City:       q.City,
		Division:   q.Division,
		SortParam:  q.SortParam,
		PageSize:   q.PageSize,
		PageNumber: q.PageNumber,
	}
}

// --- Service result → HTTP response ---

func toAuthResponse(r *ports.AuthResult) authResponse {
	roles := r.Roles
	if roles == nil {
		roles = []string{}
	}
	return authResponse{ID: r.ID, Name: r.Name, Token: r.Token, Roles: roles}
}

func toSupplierResponse(s ports.SupplierInfo) supplierResponse {
	return supplierResponse{ID: s.ID, Name: s.Name, Email: s.Email, Phone: s.Phone, Roles: s.Roles}
}

// toProductResponse title-cases the fields stored lower-cased.
func toProductResponse(p ports.ProductView) productResponse {
	// A Caser keeps state and must not be shared between goroutines.
	title := cases.Title(language.Und)

	photos := make([]photoResponse, len(p.Photos))
	for i, ph := range p.Photos {
		photos[i] = photoResponse{ImageURL: ph.ImageURL, PublicID: ph.PublicID}
	}

	resp := productResponse{
		ID:          p.ID,
		Name:        title.String(p.Name),
		Description: p.Description,
		Category:    title.String(p.Category),
		SubCategory: p.SubCategory,
		CategoryID:  p.CategoryID,
		BuyersCount: p.BuyersCount,
		CreatedAt:   p.CreatedAt.UTC(),
		City:        title.String(p.City),
		Division:    title.String(p.Division),
		Price:       p.Price,
		Brand:       p.Brand,
		Thumbnail:   photoResponse{ImageURL: p.Thumbnail.ImageURL, PublicID: p.Thumbnail.PublicID},
		Photos:      photos,
	}
	if p.Supplier != nil {
		s := toSupplierResponse(*p.Supplier)
		resp.Supplier = &s
	}
	return resp
}
