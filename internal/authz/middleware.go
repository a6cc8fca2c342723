package authz

import (
	"log/slog"
	"net/http"
)

// SubjectResolver extracts the authenticated subject from a request, or nil
// when the session is missing or invalid.
type SubjectResolver func(r *http.Request) *Subject

// Middleware adapts Guard decisions onto an http.Handler pipeline. It must
// be installed before any domain handler.
type Middleware struct {
	Guard   *Guard
	Resolve SubjectResolver
	Logger  *slog.Logger
}

// Handler evaluates the guard and executes the decision: redirects are
// written back to the caller, rewrites re-dispatch the request internally.
func (m Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var subject *Subject
		if m.Resolve != nil {
			subject = m.Resolve(r)
		}
		decision := m.Guard.Evaluate(Request{
			Path:    r.URL.Path,
			Query:   r.URL.Query(),
			Subject: subject,
		})
		switch decision.Kind {
		case DecisionRedirect:
			if m.Logger != nil && subject != nil {
				m.Logger.Warn("request denied",
					slog.String("path", r.URL.Path),
					slog.String("role", subject.Role.String()))
			}
			http.Redirect(w, r, decision.Location(), http.StatusSeeOther)
		case DecisionRewrite:
			rewritten := r.Clone(r.Context())
			rewritten.URL.Path = decision.Path
			rewritten.URL.RawQuery = decision.Query.Encode()
			next.ServeHTTP(w, rewritten)
		default:
			next.ServeHTTP(w, r)
		}
	})
}
