package handler

import (
	"strings"
	"time"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Account ---

type registerRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"    validate:"max=30"`
	City     string `json:"city"`
	Division string `json:"division"`
}

func (r *registerRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

type adminRegisterRequest struct {
	Name     string `json:"name"     validate:"required,max=100"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone"    validate:"max=30"`
}

func (r *adminRegisterRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() { r.Email = strings.TrimSpace(r.Email) }

type authResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// --- Utilities ---

type locationsResponse struct {
	Cities    []string `json:"cities"`
	Divisions []string `json:"divisions"`
}

// --- Products ---

type listProductsQuery struct {
	Name       string `query:"name"`
	Category   string `query:"category"`
	City       string `query:"city"`
	Division   string `query:"division"`
	SortParam  string `query:"sortParam"`
	PageSize   int    `query:"pageSize"   validate:"gte=0"`
	PageNumber int    `query:"pageNumber" validate:"gte=0"`
}

type createProductForm struct {
	Name        string  `form:"name"         validate:"required,max=200"`
	Price       float64 `form:"price"        validate:"gt=0"`
	Category    string  `form:"category"     validate:"required,max=100"`
	SubCategory string  `form:"sub_category" validate:"max=100"`
	Description string  `form:"description"  validate:"max=5000"`
	Brand       string  `form:"brand"        validate:"max=100"`
}

type photoResponse struct {
	ImageURL string `json:"image_url"`
	PublicID string `json:"public_id"`
}

type supplierResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Phone string   `json:"phone"`
	Roles []string `json:"roles,omitempty"`
}

type productResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Category    string            `json:"category"`
	SubCategory string            `json:"sub_category"`
	CategoryID  string            `json:"category_id"`
	BuyersCount int               `json:"buyers_count"`
	CreatedAt   time.Time         `json:"created_at"`
	City        string            `json:"city"`
	Division    string            `json:"division"`
	Price       float64           `json:"price"`
	Brand       string            `json:"brand"`
	Thumbnail   photoResponse     `json:"thumbnail"`
	Photos      []photoResponse   `json:"photos"`
	Supplier    *supplierResponse `json:"supplier,omitempty"`
}

type createProductResponse struct {
	ID       string `json:"id"`
	Response string `json:"response"`
}

// --- Suppliers ---

type findSupplierQuery struct {
	SearchBy string `query:"searchBy" validate:"required"`
	Query    string `query:"query"    validate:"required"`
}

type listSuppliersQuery struct {
	PageSize  int `query:"pageSize"  validate:"gte=0"`
	PageCount int `query:"pageCount" validate:"gte=0"`
}

// pageResponse wraps one page of a listing with the total number of matches.
type pageResponse[T any] struct {
	Data []T   `json:"data"`
	Size int64 `json:"size"`
}
