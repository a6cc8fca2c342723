package app

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"

	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/observability"
	"github.com/appubr/backoffice/internal/session"
)

// MiddlewareConfig aggregates dependencies shared by the middleware stack.
type MiddlewareConfig struct {
	Logger   *slog.Logger
	Config   *Config
	Sessions *session.Manager
	Guard    *authz.Guard
	Metrics  *observability.Metrics
}

// MiddlewareStack installs the backoffice middleware chain. The route guard
// sits last so every request it allows already carries its decoded session
// in context.
func MiddlewareStack(cfg MiddlewareConfig) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'",
		SSLRedirect:           cfg.Config != nil && cfg.Config.IsProduction(),
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})

	// Loads a valid session into context; invalid or absent tokens leave it
	// empty and the guard decides what happens next.
	sessionLoader := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess, err := cfg.Sessions.FromRequest(r); err == nil {
				r = r.WithContext(session.ContextWithSession(r.Context(), sess))
			}
			next.ServeHTTP(w, r)
		})
	}

	guardMiddleware := authz.Middleware{
		Guard:  cfg.Guard,
		Logger: cfg.Logger,
		Resolve: func(r *http.Request) *authz.Subject {
			return session.FromContext(r.Context()).Subject()
		},
	}

	timeout := 30 * time.Second
	if cfg.Config != nil && cfg.Config.AppRequestTimeout > 0 {
		timeout = cfg.Config.AppRequestTimeout
	}

	middlewares := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		middleware.Recoverer,
		middleware.Timeout(timeout),
		func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if err := secureMiddleware.Process(w, r); err != nil {
					cfg.Logger.Warn("secure headers blocked request", slog.Any("error", err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				next.ServeHTTP(w, r)
			})
		},
		middleware.Compress(5),
		httprate.Limit(120, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP)),
	}
	// Metrics wrap the guard so denied and redirected requests are counted
	// alongside the ones that reach a handler.
	if cfg.Metrics != nil {
		middlewares = append(middlewares, func(next http.Handler) http.Handler {
			return cfg.Metrics.Middleware(next)
		})
	}
	return append(middlewares, sessionLoader, guardMiddleware.Handler)
}

// LoginRateLimit throttles credential guessing on the login endpoint. There
// is no account lockout; this is the only brute-force mitigation.
func LoginRateLimit() func(http.Handler) http.Handler {
	return httprate.Limit(10, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP))
}
