package authz

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestGuard() *Guard {
	return NewGuard(GuardConfig{
		Rules:          DefaultRules(),
		PublicPrefixes: DefaultPublicPrefixes(),
		StaticPrefixes: DefaultStaticPrefixes(),
	})
}

func subject(role Role, outletID string) *Subject {
	return &Subject{UserID: "u-1", Role: role, OutletID: outletID}
}

func TestPublicPrefixesNeedNoSession(t *testing.T) {
	guard := newTestGuard()
	for _, path := range []string{"/auth/login", "/auth/error", "/auth/logout", "/static/app.css", "/favicon.ico", "/healthz", "/metrics"} {
		decision := guard.Evaluate(Request{Path: path})
		require.Equal(t, DecisionAllow, decision.Kind, "path %s", path)
	}
}

func TestMissingSessionRedirectsToLogin(t *testing.T) {
	guard := newTestGuard()
	for _, path := range []string{"/dashboard", "/finance", "/api/inventory", "/hr/employees/1"} {
		decision := guard.Evaluate(Request{Path: path})
		require.Equal(t, DecisionRedirect, decision.Kind, "path %s", path)
		require.Equal(t, "/auth/login", decision.Location(), "path %s", path)
	}
}

func TestDeniedRedirectCarriesMarker(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{Path: "/admin", Subject: subject(RoleEmployee, "o-1")})
	require.Equal(t, DecisionRedirect, decision.Kind)
	require.Equal(t, "/dashboard?error=access_denied", decision.Location())
}

func TestPermissionIntersectionGrantsAccess(t *testing.T) {
	guard := newTestGuard()

	// Holding any one of the listed permissions suffices.
	decision := guard.Evaluate(Request{Path: "/hr", Subject: subject(RoleHR, "o-1")})
	require.Equal(t, DecisionAllow, decision.Kind)

	decision = guard.Evaluate(Request{Path: "/finance/records", Subject: subject(RoleFinancialManager, "o-1")})
	require.Equal(t, DecisionAllow, decision.Kind)

	decision = guard.Evaluate(Request{Path: "/finance", Subject: subject(RoleBookingManager, "o-1")})
	require.Equal(t, DecisionRedirect, decision.Kind)
}

func TestPermissionMatrix(t *testing.T) {
	guard := newTestGuard()
	pagePrefixes := []string{"/dashboard", "/hr", "/finance", "/inventory", "/bookings", "/projects", "/admin"}

	for _, role := range AllRoles {
		perms := PermissionsFor(role)
		for _, prefix := range pagePrefixes {
			var required []Permission
			for _, rule := range DefaultRules() {
				if rule.Prefix == prefix {
					required = rule.Required
					break
				}
			}
			require.NotNil(t, required, "prefix %s has no rule", prefix)

			decision := guard.Evaluate(Request{Path: prefix, Subject: subject(role, "")})
			if perms.ContainsAny(required) {
				require.Equal(t, DecisionAllow, decision.Kind, "role %s path %s", role, prefix)
			} else {
				require.Equal(t, DecisionRedirect, decision.Kind, "role %s path %s", role, prefix)
				require.Equal(t, "/dashboard?error=access_denied", decision.Location())
			}
		}
	}
}

func TestFirstMatchingRuleWins(t *testing.T) {
	guard := NewGuard(GuardConfig{
		Rules: []RouteRule{
			{Prefix: "/admin/reports", Required: []Permission{PermViewFinancialReports}},
			{Prefix: "/admin", Required: []Permission{PermManageUsers}},
		},
	})

	// FINANCIAL_MANAGER matches the more specific entry and never reaches
	// the broader /admin rule.
	decision := guard.Evaluate(Request{Path: "/admin/reports/monthly", Subject: subject(RoleFinancialManager, "")})
	require.Equal(t, DecisionAllow, decision.Kind)

	decision = guard.Evaluate(Request{Path: "/admin/users", Subject: subject(RoleFinancialManager, "")})
	require.Equal(t, DecisionRedirect, decision.Kind)
}

func TestUnlistedAuthenticatedRoutesAreAllowed(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{Path: "/profile", Subject: subject(RoleEmployee, "o-1")})
	require.Equal(t, DecisionAllow, decision.Kind)
}

func TestDataRoutesAreScopedNotPermissionGated(t *testing.T) {
	guard := newTestGuard()

	// Page permissions stop an EMPLOYEE at /inventory, but the data route
	// underneath must still answer with the outlet filter injected.
	decision := guard.Evaluate(Request{
		Path:    "/api/inventory",
		Query:   url.Values{},
		Subject: subject(RoleEmployee, "o-1"),
	})
	require.Equal(t, DecisionRewrite, decision.Kind)
	require.Equal(t, "/api/inventory?outletId=o-1", decision.Location())

	decision = guard.Evaluate(Request{Path: "/inventory", Subject: subject(RoleEmployee, "o-1")})
	require.Equal(t, DecisionRedirect, decision.Kind)
}

func TestOutletFilterInjectedForScopedRoles(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{
		Path:    "/api/inventory",
		Query:   url.Values{},
		Subject: subject(RoleInventoryManager, "o-7"),
	})
	require.Equal(t, DecisionRewrite, decision.Kind)
	require.Equal(t, "/api/inventory", decision.Path)
	require.Equal(t, "o-7", decision.Query.Get("outletId"))
}

func TestOutletFilterPreservesExistingQuery(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{
		Path:    "/api/hr",
		Query:   url.Values{"status": []string{"ACTIVE"}},
		Subject: subject(RoleHR, "o-2"),
	})
	require.Equal(t, DecisionRewrite, decision.Kind)
	require.Equal(t, "ACTIVE", decision.Query.Get("status"))
	require.Equal(t, "o-2", decision.Query.Get("outletId"))
}

func TestAdminRolesAreNeverAutoScoped(t *testing.T) {
	guard := newTestGuard()

	for _, role := range []Role{RoleSuperAdmin, RoleAdmin} {
		decision := guard.Evaluate(Request{
			Path:    "/api/inventory",
			Query:   url.Values{},
			Subject: subject(role, "o-1"),
		})
		require.Equal(t, DecisionAllow, decision.Kind, "role %s", role)
	}
}

func TestMatchingExplicitOutletPassesThrough(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{
		Path:    "/api/bookings",
		Query:   url.Values{"outletId": []string{"o-3"}},
		Subject: subject(RoleBookingManager, "o-3"),
	})
	require.Equal(t, DecisionAllow, decision.Kind)
}

func TestForeignExplicitOutletIsRejected(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{
		Path:    "/api/bookings",
		Query:   url.Values{"outletId": []string{"o-9"}},
		Subject: subject(RoleBookingManager, "o-3"),
	})
	require.Equal(t, DecisionRedirect, decision.Kind)
	require.Equal(t, "/dashboard?error=access_denied", decision.Location())
}

func TestSubjectWithoutAffiliationIsNotRewritten(t *testing.T) {
	guard := newTestGuard()

	decision := guard.Evaluate(Request{
		Path:    "/api/dashboard/stats",
		Query:   url.Values{},
		Subject: subject(RoleEmployee, ""),
	})
	require.Equal(t, DecisionAllow, decision.Kind)
}

func TestRewriteDoesNotMutateCallerQuery(t *testing.T) {
	guard := newTestGuard()
	query := url.Values{"page": []string{"2"}}

	decision := guard.Evaluate(Request{
		Path:    "/api/inventory",
		Query:   query,
		Subject: subject(RoleInventoryManager, "o-1"),
	})
	require.Equal(t, DecisionRewrite, decision.Kind)
	require.Empty(t, query.Get("outletId"))
	require.Equal(t, "2", decision.Query.Get("page"))
}
