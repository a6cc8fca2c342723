package auth

import (
	"time"

	"github.com/appubr/backoffice/internal/authz"
)

// User represents an authenticatable account. OutletID comes from the
// linked employee record and is empty for accounts without an affiliation.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         authz.Role
	OutletID     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subject converts the user into the shape embedded in session tokens.
func (u *User) Subject() authz.Subject {
	return authz.Subject{UserID: u.ID, Role: u.Role, OutletID: u.OutletID}
}
