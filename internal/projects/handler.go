package projects

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

// Handler exposes the projects data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/progress", h.setProgress)
}

type projectPayload struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Type         string   `json:"type" validate:"required,oneof=MARKETING_PROGRAM CRM_PROGRAM NEW_MENU_DEVELOPMENT"`
	Status       string   `json:"status" validate:"omitempty,oneof=PLANNING IN_PROGRESS COMPLETED ON_HOLD CANCELLED"`
	StartDate    string   `json:"startDate" validate:"required"`
	EndDate      string   `json:"endDate"`
	Budget       float64  `json:"budget" validate:"gte=0"`
	ActualCost   float64  `json:"actualCost" validate:"gte=0"`
	Progress     int      `json:"progress" validate:"gte=0,lte=100"`
	ManagerID    string   `json:"managerId"`
	TeamMembers  []string `json:"teamMembers"`
	Deliverables []string `json:"deliverables"`
	Risks        string   `json:"risks"`
	Mitigation   string   `json:"mitigation"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	result, err := h.service.List(r.Context(), Filter{
		Type:      Type(query.Get("type")),
		Status:    Status(query.Get("status")),
		ManagerID: query.Get("managerId"),
		Search:    query.Get("search"),
	})
	if err != nil {
		h.logger.Error("list projects", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"projects": result})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projectResponse(p))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), p, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, projectResponse(created))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decodeProject(w, r)
	if !ok {
		return
	}
	p.ID = chi.URLParam(r, "id")
	updated, err := h.service.Update(r.Context(), p, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projectResponse(updated))
}

type progressPayload struct {
	Progress int `json:"progress" validate:"gte=0,lte=100"`
}

func (h *Handler) setProgress(w http.ResponseWriter, r *http.Request) {
	var payload progressPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	p, err := h.service.SetProgress(r.Context(), chi.URLParam(r, "id"), payload.Progress, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, projectResponse(p))
}

func (h *Handler) decodeProject(w http.ResponseWriter, r *http.Request) (Project, bool) {
	var payload projectPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return Project{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Project{}, false
	}
	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "startDate must be YYYY-MM-DD")
		return Project{}, false
	}
	var end *time.Time
	if payload.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", payload.EndDate)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "endDate must be YYYY-MM-DD")
			return Project{}, false
		}
		end = &parsed
	}
	return Project{
		Title:        payload.Title,
		Description:  payload.Description,
		Type:         Type(payload.Type),
		Status:       Status(payload.Status),
		StartDate:    start,
		EndDate:      end,
		Budget:       payload.Budget,
		ActualCost:   payload.ActualCost,
		Progress:     payload.Progress,
		ManagerID:    payload.ManagerID,
		TeamMembers:  payload.TeamMembers,
		Deliverables: payload.Deliverables,
		Risks:        payload.Risks,
		Mitigation:   payload.Mitigation,
	}, true
}

// projectResponse augments a project with budget formatting.
func projectResponse(p Project) map[string]any {
	return map[string]any{
		"project":             p,
		"budgetFormatted":     shared.FormatIDR(p.Budget),
		"actualCostFormatted": shared.FormatIDR(p.ActualCost),
		"overBudget":          p.OverBudget(),
	}
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidProgress), errors.Is(err, ErrInvalidDateRange):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
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
