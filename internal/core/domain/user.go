package domain

import (
	"strings"
	"time"
)

const (
	RoleMember = "Member"
	RoleAdmin  = "Admin"
)

// Supplier is a registered marketplace account. UserName always mirrors Email.
type Supplier struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	UserName     string    `json:"user_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone,omitempty"`
	City         string    `json:"city,omitempty"`
	Division     string    `json:"division,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// NormalizeEmail lower-cases and trims an email or username.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRole returns the case-insensitive key a role is stored under.
func NormalizeRole(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
