package admin

import (
	"errors"
	"time"

	"github.com/appubr/backoffice/internal/authz"
)

// Account is a back office login managed by an administrator. The password
// hash never leaves this package.
type Account struct {
	ID           string
	Email        string
	PasswordHash string
	Role         authz.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Outlet is one physical business location.
type Outlet struct {
	ID        string
	Code      string
	Name      string
	Address   string
	Phone     string
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("admin: required field missing")
	// ErrInvalidRole indicates an unknown role name.
	ErrInvalidRole = errors.New("admin: unknown role")
	// ErrWeakPassword indicates a password under the minimum length.
	ErrWeakPassword = errors.New("admin: password must be at least 6 characters")
	// ErrLastSuperAdmin guards against deactivating the final SUPER_ADMIN.
	ErrLastSuperAdmin = errors.New("admin: cannot deactivate the last super admin")
)
