package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the core unwraps to exactly one of
// these so the transport layer can map it without knowing the details.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrUpstream     = errors.New("upstream failure")
)

// kindError is a sentinel with its own message that still matches its kind
// through errors.Is.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func newError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	ErrInvalidCity        = newError(ErrInvalidInput, "invalid city")
	ErrInvalidDivision    = newError(ErrInvalidInput, "invalid division")
	ErrInvalidCredentials = newError(ErrInvalidInput, "invalid password")
	ErrWeakPassword       = newError(ErrInvalidInput, "password must be at least 4 characters")
	ErrInvalidEmail       = newError(ErrInvalidInput, "email is required")
	ErrInvalidQuery       = newError(ErrInvalidInput, "invalid query")
	ErrCannotDeleteSelf   = newError(ErrInvalidInput, "you cannot delete yourself")
	ErrNoPhotos           = newError(ErrInvalidInput, "at least one photo is required")
	ErrTooManyPhotos      = newError(ErrInvalidInput, "can't add more than 5 photos")
	ErrEmptyPhoto         = newError(ErrInvalidInput, "photo is empty")
	ErrUnsupportedImage   = newError(ErrInvalidInput, "unsupported image format")
	ErrImageTooLarge      = newError(ErrInvalidInput, "image dimensions are too large")

	ErrSupplierNotFound = newError(ErrNotFound, "invalid user")
	ErrUnknownEmail     = newError(ErrNotFound, "invalid email")
	ErrProductNotFound  = newError(ErrNotFound, "product not found")
	ErrRoleNotFound     = newError(ErrNotFound, "role not found")

	ErrDuplicateEmail    = newError(ErrConflict, "email is already taken")
	ErrDuplicateUserName = newError(ErrConflict, "username is already taken")
	ErrAlreadyInRole     = newError(ErrConflict, "supplier already in role")

	ErrInvalidToken        = newError(ErrUnauthorized, "invalid token")
	ErrTokenExpired        = newError(ErrUnauthorized, "token expired")
	ErrLoginRequired       = newError(ErrUnauthorized, "you must login to add products")
	ErrCannotDeleteProduct = newError(ErrUnauthorized, "you cannot delete this product")
)

// RoleCreationError is returned when the role registry refuses to create a
// role that registration depends on.
type RoleCreationError struct {
	Role string
	Err  error
}

func (e *RoleCreationError) Error() string {
	return fmt.Sprintf("can't create role %s: %v", e.Role, e.Err)
}

func (e *RoleCreationError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// UserCreationError carries the credential store's reason for rejecting a new
// supplier (duplicate email, weak password, storage failure).
type UserCreationError struct {
	Err error
}

func (e *UserCreationError) Error() string {
	return "can't create supplier: " + e.Err.Error()
}

func (e *UserCreationError) Unwrap() error { return e.Err }

// RoleAssignmentError is returned when a freshly created supplier could not be
// added to its role. The supplier record is left in place without a role.
type RoleAssignmentError struct {
	SupplierID string
	Role       string
	Err        error
}

func (e *RoleAssignmentError) Error() string {
	return fmt.Sprintf("can't add supplier to role %s: %v", e.Role, e.Err)
}

func (e *RoleAssignmentError) Unwrap() []error { return []error{ErrUpstream, e.Err} }

// PhotoUploadError wraps a failure reported by the image host.
type PhotoUploadError struct {
	Filename string
	Err      error
}

func (e *PhotoUploadError) Error() string {
	return fmt.Sprintf("can't upload photo %q: %v", e.Filename, e.Err)
}

func (e *PhotoUploadError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }
