package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/appubr/backoffice/internal/activity"
	"github.com/appubr/backoffice/internal/admin"
	"github.com/appubr/backoffice/internal/auth"
	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/bookings"
	"github.com/appubr/backoffice/internal/catalog"
	"github.com/appubr/backoffice/internal/dashboard"
	"github.com/appubr/backoffice/internal/finance"
	"github.com/appubr/backoffice/internal/hr"
	"github.com/appubr/backoffice/internal/inventory"
	"github.com/appubr/backoffice/internal/observability"
	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/projects"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	Sessions         *session.Manager
	Guard            *authz.Guard
	AuthHandler      *auth.Handler
	DashboardHandler *dashboard.Handler
	HRHandler        *hr.Handler
	FinanceHandler   *finance.Handler
	InventoryHandler *inventory.Handler
	CatalogHandler   *catalog.Handler
	BookingsHandler  *bookings.Handler
	ActivityHandler  *activity.Handler
	ProjectsHandler  *projects.Handler
	AdminHandler     *admin.Handler
	JobHandler       *jobs.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router for the back office.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:   params.Logger,
		Config:   params.Config,
		Sessions: params.Sessions,
		Guard:    params.Guard,
		Metrics:  params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// The root and the page prefixes answer with a small JSON document;
	// the SPA shell consumes the /api/ routes for actual data.
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if session.FromContext(r.Context()) == nil {
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	})
	for _, page := range []string{"/dashboard", "/hr", "/finance", "/inventory", "/bookings", "/projects", "/admin"} {
		area := page
		r.Get(area, func(w http.ResponseWriter, r *http.Request) {
			httpx.JSON(w, http.StatusOK, map[string]any{
				"area":  area,
				"error": r.URL.Query().Get("error"),
			})
		})
	}

	r.Route("/auth", func(ar chi.Router) {
		ar.Use(LoginRateLimit())
		params.AuthHandler.MountRoutes(ar)
	})

	r.Route("/api", func(api chi.Router) {
		api.Route("/dashboard", params.DashboardHandler.MountRoutes)
		api.Route("/hr", params.HRHandler.MountRoutes)
		api.Route("/finance", params.FinanceHandler.MountRoutes)
		api.Route("/inventory", params.InventoryHandler.MountRoutes)
		api.Route("/catalog", params.CatalogHandler.MountRoutes)
		api.Route("/bookings", params.BookingsHandler.MountRoutes)
		api.Route("/activity", params.ActivityHandler.MountRoutes)
		api.Route("/projects", params.ProjectsHandler.MountRoutes)
		api.Route("/admin", params.AdminHandler.MountRoutes)
	})

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
