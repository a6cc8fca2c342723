package authz

// Permission is an atomic capability required to access a guarded area.
// Permissions are never combined or derived; each role maps to a fixed,
// explicitly enumerated list.
type Permission string

const (
	PermViewDashboard         Permission = "VIEW_DASHBOARD"
	PermViewEmployees         Permission = "VIEW_EMPLOYEES"
	PermManageEmployees       Permission = "MANAGE_EMPLOYEES"
	PermManageAttendance      Permission = "MANAGE_ATTENDANCE"
	PermViewAttendanceReports Permission = "VIEW_ATTENDANCE_REPORTS"
	PermViewFinancialReports  Permission = "VIEW_FINANCIAL_REPORTS"
	PermCreateFinancialReports Permission = "CREATE_FINANCIAL_REPORTS"
	PermViewInventory         Permission = "VIEW_INVENTORY"
	PermManageInventory       Permission = "MANAGE_INVENTORY"
	PermViewBookings          Permission = "VIEW_BOOKINGS"
	PermManageBookings        Permission = "MANAGE_BOOKINGS"
	PermViewProjects          Permission = "VIEW_PROJECTS"
	PermManageProjects        Permission = "MANAGE_PROJECTS"
	PermManageUsers           Permission = "MANAGE_USERS"
	PermManageOutlets         Permission = "MANAGE_OUTLETS"
	PermViewSystemLogs        Permission = "VIEW_SYSTEM_LOGS"
)

// PermissionSet holds the permissions granted to a role.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports membership of a single permission.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// ContainsAny reports whether the set intersects the required permissions.
// Holding any one of them suffices (OR semantics, never AND).
func (s PermissionSet) ContainsAny(required []Permission) bool {
	for _, p := range required {
		if _, ok := s[p]; ok {
			return true
		}
	}
	return false
}

// rolePermissions is the static role -> permission mapping. It is built once
// at init and never mutated; concurrent reads need no synchronisation.
var rolePermissions = map[Role]PermissionSet{
	RoleSuperAdmin: NewPermissionSet(
		PermViewDashboard,
		PermViewEmployees,
		PermManageEmployees,
		PermManageAttendance,
		PermViewAttendanceReports,
		PermViewFinancialReports,
		PermCreateFinancialReports,
		PermViewInventory,
		PermManageInventory,
		PermViewBookings,
		PermManageBookings,
		PermViewProjects,
		PermManageProjects,
		PermManageUsers,
		PermManageOutlets,
		PermViewSystemLogs,
	),
	RoleAdmin: NewPermissionSet(
		PermViewDashboard,
		PermViewEmployees,
		PermManageEmployees,
		PermManageAttendance,
		PermViewAttendanceReports,
		PermViewFinancialReports,
		PermCreateFinancialReports,
		PermViewInventory,
		PermManageInventory,
		PermViewBookings,
		PermManageBookings,
		PermViewProjects,
		PermManageProjects,
		PermManageUsers,
	),
	RoleHR: NewPermissionSet(
		PermViewDashboard,
		PermViewEmployees,
		PermManageEmployees,
		PermManageAttendance,
		PermViewAttendanceReports,
	),
	RoleFinancialManager: NewPermissionSet(
		PermViewDashboard,
		PermViewFinancialReports,
		PermCreateFinancialReports,
	),
	RoleInventoryManager: NewPermissionSet(
		PermViewDashboard,
		PermViewInventory,
		PermManageInventory,
	),
	RoleBookingManager: NewPermissionSet(
		PermViewDashboard,
		PermViewBookings,
		PermManageBookings,
	),
	RoleEmployee: NewPermissionSet(
		PermViewDashboard,
	),
}

// PermissionsFor returns the fixed permission set for a role. The mapping is
// total over AllRoles; an unknown role yields an empty set, which denies
// every gated area.
func PermissionsFor(role Role) PermissionSet {
	return rolePermissions[role]
}
