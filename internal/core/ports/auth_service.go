package ports

import (
	"context"
	"time"

	"github.com/heronet/sellnet/internal/core/domain"
)

// RegisterInput is the registration payload shared by the member and admin
// flows. The admin flow ignores City and Division.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	City     string
	Division string
}

// AuthResult is returned by every flow that issues a token.
type AuthResult struct {
	ID    string
	Name  string
	Token string
	Roles []string
}

// TokenClaims is the identity asserted by a verified token.
type TokenClaims struct {
	SupplierID string
	UserName   string
	Roles      []string
	IssuedAt   time.Time
	ExpiresAt  time.Time
}

// TokenIssuer mints signed identity tokens.
type TokenIssuer interface {
	Issue(s *domain.Supplier, roles []string) (string, error)
}

// TokenParser verifies tokens minted by a TokenIssuer.
type TokenParser interface {
	Parse(token string) (*TokenClaims, error)
}

// AccountService orchestrates registration, login and token refresh.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	RegisterAdmin(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, supplierID string) (*AuthResult, error)
}
