package dashboard

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/shared"
)

// Handler exposes the dashboard data API.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), r.URL.Query().Get("outletId"))
	if err != nil {
		h.logger.Error("load dashboard stats", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"stats":             stats,
		"revenueFormatted":  shared.FormatIDR(stats.MonthlyRevenue),
		"netFormatted":      shared.FormatIDR(stats.NetProfit),
		"expensesFormatted": shared.FormatIDR(stats.MonthlyExpenses),
	})
}
