package authz

// DefaultRules gates the page prefixes. Entries are walked in order and the
// first matching prefix wins. Data routes under /api/ are deliberately
// absent: they require a session and get outlet scoping, nothing more, so a
// scoped role can still fetch the data its pages render. Paths outside this
// table are reachable by any authenticated user.
func DefaultRules() []RouteRule {
	return []RouteRule{
		{Prefix: "/dashboard", Required: []Permission{PermViewDashboard}},
		{Prefix: "/hr", Required: []Permission{PermViewEmployees, PermManageAttendance, PermViewAttendanceReports}},
		{Prefix: "/finance", Required: []Permission{PermViewFinancialReports, PermCreateFinancialReports}},
		{Prefix: "/inventory", Required: []Permission{PermViewInventory, PermManageInventory}},
		{Prefix: "/bookings", Required: []Permission{PermViewBookings, PermManageBookings}},
		{Prefix: "/projects", Required: []Permission{PermViewProjects, PermManageProjects}},
		{Prefix: "/admin", Required: []Permission{PermManageUsers, PermManageOutlets, PermViewSystemLogs}},
	}
}

// DefaultPublicPrefixes lists routes reachable without a session: the login
// and auth-error pages plus the whole authentication endpoint group.
func DefaultPublicPrefixes() []string {
	return []string{
		"/auth/login",
		"/auth/error",
		"/auth/",
	}
}

// DefaultStaticPrefixes lists asset and operational endpoints that never
// carry a session.
func DefaultStaticPrefixes() []string {
	return []string{
		"/static/",
		"/favicon.ico",
		"/manifest.json",
		"/healthz",
		"/metrics",
	}
}
