package finance

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/internal/shared"
)

// Handler exposes the finance data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers finance routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/records", h.list)
	r.Post("/records", h.create)
	r.Get("/records/{id}", h.get)
	r.Post("/records/{id}/approve", h.approve)
	r.Get("/summary", h.monthlySummary)
}

type recordPayload struct {
	OutletID           string  `json:"outletId" validate:"required"`
	Date               string  `json:"date" validate:"required"`
	Shift              string  `json:"shift" validate:"required"`
	RevenueDineIn      float64 `json:"revenueDineIn" validate:"gte=0"`
	RevenueTakeaway    float64 `json:"revenueTakeaway" validate:"gte=0"`
	RevenueOnline      float64 `json:"revenueOnline" validate:"gte=0"`
	RevenueFacility    float64 `json:"revenueFacility" validate:"gte=0"`
	ExpenseStock       float64 `json:"expenseStock" validate:"gte=0"`
	ExpenseUtilities   float64 `json:"expenseUtilities" validate:"gte=0"`
	ExpenseStaffMeals  float64 `json:"expenseStaffMeals" validate:"gte=0"`
	ExpenseMaintenance float64 `json:"expenseMaintenance" validate:"gte=0"`
	ExpenseOther       float64 `json:"expenseOther" validate:"gte=0"`
	CustomerCount      int     `json:"customerCount" validate:"gte=0"`
	TransactionCount   int     `json:"transactionCount" validate:"gte=0"`
	Notes              string  `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		OutletID: query.Get("outletId"),
		Status:   RecordStatus(query.Get("status")),
	}
	if from := query.Get("from"); from != "" {
		filter.From, _ = time.Parse("2006-01-02", from)
	}
	if to := query.Get("to"); to != "" {
		filter.To, _ = time.Parse("2006-01-02", to)
	}
	records, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list financial records", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"records": records})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recordResponse(rec))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload recordPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return
	}

	rec, err := h.service.Create(r.Context(), Record{
		OutletID:           payload.OutletID,
		Date:               date,
		Shift:              payload.Shift,
		RevenueDineIn:      payload.RevenueDineIn,
		RevenueTakeaway:    payload.RevenueTakeaway,
		RevenueOnline:      payload.RevenueOnline,
		RevenueFacility:    payload.RevenueFacility,
		ExpenseStock:       payload.ExpenseStock,
		ExpenseUtilities:   payload.ExpenseUtilities,
		ExpenseStaffMeals:  payload.ExpenseStaffMeals,
		ExpenseMaintenance: payload.ExpenseMaintenance,
		ExpenseOther:       payload.ExpenseOther,
		CustomerCount:      payload.CustomerCount,
		TransactionCount:   payload.TransactionCount,
		Notes:              payload.Notes,
	}, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, recordResponse(rec))
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"), currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, recordResponse(rec))
}

func (h *Handler) monthlySummary(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		month = time.Now().UTC().Format("2006-01")
	}
	summary, err := h.service.MonthlySummary(r.Context(), r.URL.Query().Get("outletId"), month)
	if err != nil {
		h.logger.Error("monthly summary", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"summary":               summary,
		"totalRevenueFormatted": shared.FormatIDR(summary.TotalRevenue),
		"netProfitFormatted":    shared.FormatIDR(summary.NetProfit),
	})
}

// recordResponse augments a record with display formatting.
func recordResponse(rec Record) map[string]any {
	return map[string]any{
		"record":                rec,
		"dateFormatted":         shared.FormatDate(rec.Date),
		"totalRevenueFormatted": shared.FormatIDR(rec.TotalRevenue),
		"netProfitFormatted":    shared.FormatIDR(rec.NetProfit),
	}
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrNegativeAmount):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrAlreadyApproved):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}

func currentUserID(r *http.Request) string {
	if sess := session.FromContext(r.Context()); sess != nil {
		return sess.UserID
	}
	return ""
}
