package authz

import (
	"net/url"
	"strings"
)

// Subject is the authenticated principal a decision is made for.
type Subject struct {
	UserID   string
	Role     Role
	OutletID string
}

// Request carries the inputs of an authorization decision. Subject is nil
// when the caller has no valid session.
type Request struct {
	Path    string
	Query   url.Values
	Subject *Subject
}

// DecisionKind tags the outcome of Guard.Evaluate.
type DecisionKind int

const (
	// DecisionAllow lets the request proceed unchanged.
	DecisionAllow DecisionKind = iota
	// DecisionRedirect terminates the request with an external redirect.
	DecisionRedirect
	// DecisionRewrite re-dispatches the request internally with a changed
	// path or query, invisible to the caller.
	DecisionRewrite
)

// Decision is the outcome of evaluating one request.
type Decision struct {
	Kind  DecisionKind
	Path  string
	Query url.Values
}

// Allow returns the pass-through decision.
func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

// RedirectTo returns a terminal redirect decision.
func RedirectTo(path string, query url.Values) Decision {
	return Decision{Kind: DecisionRedirect, Path: path, Query: query}
}

// RewriteTo returns an internal rewrite decision.
func RewriteTo(path string, query url.Values) Decision {
	return Decision{Kind: DecisionRewrite, Path: path, Query: query}
}

// Location renders the decision target as a path with optional query string.
func (d Decision) Location() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}

// RouteRule gates a path prefix behind a set of permissions. Holding any one
// of Required grants access.
type RouteRule struct {
	Prefix   string
	Required []Permission
}

// GuardConfig assembles the static tables the guard evaluates against.
type GuardConfig struct {
	// Rules is walked in declaration order; the first matching prefix wins,
	// so overlapping prefixes must be listed most-specific first.
	Rules []RouteRule
	// PublicPrefixes bypass authentication entirely.
	PublicPrefixes []string
	// StaticPrefixes cover assets and operational endpoints.
	StaticPrefixes []string
	// DataPrefix marks outlet-scoped data routes (default "/api/").
	DataPrefix string
	// OutletParam is the query parameter used for outlet filtering
	// (default "outletId").
	OutletParam string
	// LoginPath receives unauthenticated callers (default "/auth/login").
	LoginPath string
	// DeniedPath receives authenticated callers lacking permission
	// (default "/dashboard").
	DeniedPath string
}

// DeniedMarker is the query marker appended to access-denied redirects. It
// tells the client a denial happened without leaking which permission was
// missing.
const DeniedMarker = "access_denied"

// Guard decides, per request, whether to allow, redirect, or rewrite. It is
// immutable after construction and safe for unsynchronised concurrent use.
type Guard struct {
	rules          []RouteRule
	publicPrefixes []string
	staticPrefixes []string
	dataPrefix     string
	outletParam    string
	loginPath      string
	deniedPath     string
}

// NewGuard builds a Guard from config, filling in defaults.
func NewGuard(cfg GuardConfig) *Guard {
	g := &Guard{
		rules:          cfg.Rules,
		publicPrefixes: cfg.PublicPrefixes,
		staticPrefixes: cfg.StaticPrefixes,
		dataPrefix:     cfg.DataPrefix,
		outletParam:    cfg.OutletParam,
		loginPath:      cfg.LoginPath,
		deniedPath:     cfg.DeniedPath,
	}
	if g.dataPrefix == "" {
		g.dataPrefix = "/api/"
	}
	if g.outletParam == "" {
		g.outletParam = "outletId"
	}
	if g.loginPath == "" {
		g.loginPath = "/auth/login"
	}
	if g.deniedPath == "" {
		g.deniedPath = "/dashboard"
	}
	return g
}

// Evaluate makes the authorization decision for one request. It runs before
// any domain handler and is a pure function of the request and the static
// tables; failures are never silent, every non-allow outcome is a redirect
// or rewrite the caller observes.
func (g *Guard) Evaluate(req Request) Decision {
	if hasPrefix(req.Path, g.publicPrefixes) || hasPrefix(req.Path, g.staticPrefixes) {
		return Allow()
	}

	if req.Subject == nil {
		return RedirectTo(g.loginPath, nil)
	}

	perms := PermissionsFor(req.Subject.Role)

	for _, rule := range g.rules {
		if !strings.HasPrefix(req.Path, rule.Prefix) {
			continue
		}
		if !perms.ContainsAny(rule.Required) {
			return g.denied()
		}
		break
	}

	// Outlet scoping: non-admin roles may only touch their own outlet's
	// data. A missing filter is injected; an explicit foreign outlet id is
	// rejected rather than trusted to downstream handlers.
	if !req.Subject.Role.Unrestricted() && req.Subject.OutletID != "" && strings.HasPrefix(req.Path, g.dataPrefix) {
		explicit := req.Query.Get(g.outletParam)
		switch {
		case explicit == "":
			rewritten := cloneQuery(req.Query)
			rewritten.Set(g.outletParam, req.Subject.OutletID)
			return RewriteTo(req.Path, rewritten)
		case explicit != req.Subject.OutletID:
			return g.denied()
		}
	}

	return Allow()
}

func (g *Guard) denied() Decision {
	return RedirectTo(g.deniedPath, url.Values{"error": []string{DeniedMarker}})
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func cloneQuery(query url.Values) url.Values {
	cloned := make(url.Values, len(query)+1)
	for key, values := range query {
		cloned[key] = append([]string(nil), values...)
	}
	return cloned
}
