package activity

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
)

// Handler exposes the activity log data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers activity routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Post("/{id}/complete", h.complete)
}

type logPayload struct {
	OutletID    string   `json:"outletId" validate:"required"`
	EmployeeID  string   `json:"employeeId"`
	Date        string   `json:"date"`
	TaskType    string   `json:"taskType" validate:"required"`
	TaskName    string   `json:"taskName" validate:"required"`
	Description string   `json:"description"`
	Status      string   `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED SKIPPED"`
	Priority    string   `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	PhotoURLs   []string `json:"photoUrls"`
	KwhReading  *float64 `json:"kwhReading" validate:"omitempty,gte=0"`
	Notes       string   `json:"notes"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		OutletID:   query.Get("outletId"),
		EmployeeID: query.Get("employeeId"),
		Status:     TaskStatus(query.Get("status")),
		TaskType:   query.Get("taskType"),
	}
	if from := query.Get("from"); from != "" {
		filter.From, _ = time.Parse("2006-01-02", from)
	}
	if to := query.Get("to"); to != "" {
		filter.To, _ = time.Parse("2006-01-02", to)
	}
	logs, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list activity logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"log": l})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var payload logPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	l := Log{
		OutletID:    payload.OutletID,
		EmployeeID:  payload.EmployeeID,
		TaskType:    payload.TaskType,
		TaskName:    payload.TaskName,
		Description: payload.Description,
		Status:      TaskStatus(payload.Status),
		Priority:    Priority(payload.Priority),
		PhotoURLs:   payload.PhotoURLs,
		KwhReading:  payload.KwhReading,
		Notes:       payload.Notes,
	}
	if payload.Date != "" {
		date, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
			return
		}
		l.Date = date
	}
	created, err := h.service.Create(r.Context(), l, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"log": created})
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	l, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"), currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"log": l})
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrAlreadyCompleted):
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
