package authz

import "fmt"

// Role is a closed set of account categories. Every user account carries
// exactly one role; the role alone determines the permission set.
type Role string

const (
	RoleSuperAdmin       Role = "SUPER_ADMIN"
	RoleAdmin            Role = "ADMIN"
	RoleHR               Role = "HR"
	RoleFinancialManager Role = "FINANCIAL_MANAGER"
	RoleInventoryManager Role = "INVENTORY_MANAGER"
	RoleBookingManager   Role = "BOOKING_MANAGER"
	RoleEmployee         Role = "EMPLOYEE"
)

// AllRoles lists every member of the closed role set. Tests assert the
// permission table is total over this slice.
var AllRoles = []Role{
	RoleSuperAdmin,
	RoleAdmin,
	RoleHR,
	RoleFinancialManager,
	RoleInventoryManager,
	RoleBookingManager,
	RoleEmployee,
}

// ParseRole maps a stored role string onto the closed set.
func ParseRole(value string) (Role, error) {
	role := Role(value)
	if !role.Valid() {
		return "", fmt.Errorf("authz: unknown role %q", value)
	}
	return role, nil
}

// Valid reports whether the role belongs to the closed set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleFinancialManager,
		RoleInventoryManager, RoleBookingManager, RoleEmployee:
		return true
	}
	return false
}

// Unrestricted reports whether the role sees every outlet. All other roles
// are scoped to their own affiliated outlet for outlet-scoped resources.
func (r Role) Unrestricted() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}
