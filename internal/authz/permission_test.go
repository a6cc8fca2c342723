package authz

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermissionTableIsTotal(t *testing.T) {
	for _, role := range AllRoles {
		set := PermissionsFor(role)
		require.NotNil(t, set, "role %s has no permission set", role)
		require.NotEmpty(t, set, "role %s has an empty permission set", role)
	}
	require.Len(t, rolePermissions, len(AllRoles))
}

func TestPermissionsForGoldenSets(t *testing.T) {
	cases := []struct {
		role     Role
		expected []Permission
	}{
		{RoleSuperAdmin, []Permission{
			PermViewDashboard, PermViewEmployees, PermManageEmployees,
			PermManageAttendance, PermViewAttendanceReports,
			PermViewFinancialReports, PermCreateFinancialReports,
			PermViewInventory, PermManageInventory,
			PermViewBookings, PermManageBookings,
			PermViewProjects, PermManageProjects,
			PermManageUsers, PermManageOutlets, PermViewSystemLogs,
		}},
		{RoleAdmin, []Permission{
			PermViewDashboard, PermViewEmployees, PermManageEmployees,
			PermManageAttendance, PermViewAttendanceReports,
			PermViewFinancialReports, PermCreateFinancialReports,
			PermViewInventory, PermManageInventory,
			PermViewBookings, PermManageBookings,
			PermViewProjects, PermManageProjects,
			PermManageUsers,
		}},
		{RoleHR, []Permission{
			PermViewDashboard, PermViewEmployees, PermManageEmployees,
			PermManageAttendance, PermViewAttendanceReports,
		}},
		{RoleFinancialManager, []Permission{
			PermViewDashboard, PermViewFinancialReports, PermCreateFinancialReports,
		}},
		{RoleInventoryManager, []Permission{
			PermViewDashboard, PermViewInventory, PermManageInventory,
		}},
		{RoleBookingManager, []Permission{
			PermViewDashboard, PermViewBookings, PermManageBookings,
		}},
		{RoleEmployee, []Permission{
			PermViewDashboard,
		}},
	}

	for _, tc := range cases {
		t.Run(string(tc.role), func(t *testing.T) {
			set := PermissionsFor(tc.role)
			require.Len(t, set, len(tc.expected))
			for _, perm := range tc.expected {
				require.True(t, set.Has(perm), "role %s missing %s", tc.role, perm)
			}
		})
	}
}

func TestOnlyTopRolesSeeEveryOutlet(t *testing.T) {
	for _, role := range AllRoles {
		unrestricted := role == RoleSuperAdmin || role == RoleAdmin
		require.Equal(t, unrestricted, role.Unrestricted(), "role %s", role)
	}
}

func TestParseRole(t *testing.T) {
	for _, role := range AllRoles {
		parsed, err := ParseRole(string(role))
		require.NoError(t, err)
		require.Equal(t, role, parsed)
	}

	_, err := ParseRole("CASHIER")
	require.Error(t, err)
	require.False(t, Role("").Valid())
}

func TestContainsAnyIsOrSemantics(t *testing.T) {
	set := NewPermissionSet(PermViewInventory)
	require.True(t, set.ContainsAny([]Permission{PermViewInventory, PermManageInventory}))
	require.True(t, set.ContainsAny([]Permission{PermManageInventory, PermViewInventory}))
	require.False(t, set.ContainsAny([]Permission{PermManageInventory}))
	require.False(t, set.ContainsAny(nil))
}
