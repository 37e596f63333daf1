package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/heronet/sellnet/internal/core/domain"
	"github.com/heronet/sellnet/internal/core/ports"
)

// TokenTTL is the validity window of every issued token.
const TokenTTL = 3 * 24 * time.Hour

// MinSecretLength is the HMAC-SHA-512 block size; shorter keys are refused.
const MinSecretLength = 64

// ErrSigningSecret is returned at construction when the secret is unusable.
var ErrSigningSecret = fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)

// tokenClaims is the JWT body. Roles are carried as a list of role names.
type tokenClaims struct {
	NameID     string   `json:"nameid"`
	UniqueName string   `json:"unique_name"`
	Roles      []string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS512 identity tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService validates the secret once so signing never fails per request.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrSigningSecret
	}
	return &TokenService{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// Issue mints a token for the supplier with the roles it holds right now.
// Later role changes are not reflected until a new token is issued.
func (s *TokenService) Issue(supplier *domain.Supplier, roles []string) (string, error) {
	now := s.now().UTC()
	claims := tokenClaims{
		NameID:     supplier.ID,
		UniqueName: supplier.UserName,
		Roles:      append([]string(nil), roles...),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   supplier.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, algorithm and validity window.
func (s *TokenService) Parse(token string) (*ports.TokenClaims, error) {
	var claims tokenClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)

	tkn, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", domain.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid || claims.NameID == "" {
		return nil, domain.ErrInvalidToken
	}

	out := &ports.TokenClaims{
		SupplierID: claims.NameID,
		UserName:   claims.UniqueName,
		Roles:      claims.Roles,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
