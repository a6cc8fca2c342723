package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
)

// Handler exposes the administration data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers administration routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.listAccounts)
	r.Post("/users", h.createAccount)
	r.Get("/users/{id}", h.getAccount)
	r.Put("/users/{id}", h.updateAccount)
	r.Get("/outlets", h.listOutlets)
	r.Post("/outlets", h.createOutlet)
	r.Get("/outlets/{id}", h.getOutlet)
	r.Put("/outlets/{id}", h.updateOutlet)
	r.Get("/logs", h.systemLogs)
}

// accountView strips the password hash before responding.
type accountView struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      authz.Role `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt string     `json:"createdAt"`
}

func toView(a Account) accountView {
	return accountView{
		ID:        a.ID,
		Email:     a.Email,
		Role:      a.Role,
		IsActive:  a.IsActive,
		CreatedAt: a.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

type createAccountPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

type updateAccountPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required"`
	IsActive bool   `json:"isActive"`
}

type outletPayload struct {
	Code     string `json:"code" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email" validate:"omitempty,email"`
	IsActive bool   `json:"isActive"`
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.service.ListAccounts(r.Context())
	if err != nil {
		h.logger.Error("list accounts", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	views := make([]accountView, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, toView(a))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": views})
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": toView(a)})
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var payload createAccountPayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := authz.ParseRole(payload.Role)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown role")
		return
	}
	a, err := h.service.CreateAccount(r.Context(), payload.Email, payload.Password, role, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"user": toView(a)})
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	var payload updateAccountPayload
	if !h.decode(w, r, &payload) {
		return
	}
	role, err := authz.ParseRole(payload.Role)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown role")
		return
	}
	a, err := h.service.UpdateAccount(r.Context(), chi.URLParam(r, "id"),
		payload.Email, payload.Password, role, payload.IsActive, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"user": toView(a)})
}

func (h *Handler) listOutlets(w http.ResponseWriter, r *http.Request) {
	outlets, err := h.service.ListOutlets(r.Context())
	if err != nil {
		h.logger.Error("list outlets", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"outlets": outlets})
}

func (h *Handler) getOutlet(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOutlet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"outlet": o})
}

func (h *Handler) createOutlet(w http.ResponseWriter, r *http.Request) {
	var payload outletPayload
	if !h.decode(w, r, &payload) {
		return
	}
	o, err := h.service.CreateOutlet(r.Context(), Outlet{
		Code:     payload.Code,
		Name:     payload.Name,
		Address:  payload.Address,
		Phone:    payload.Phone,
		Email:    payload.Email,
		IsActive: payload.IsActive,
	}, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"outlet": o})
}

func (h *Handler) updateOutlet(w http.ResponseWriter, r *http.Request) {
	var payload outletPayload
	if !h.decode(w, r, &payload) {
		return
	}
	o, err := h.service.UpdateOutlet(r.Context(), Outlet{
		ID:       chi.URLParam(r, "id"),
		Code:     payload.Code,
		Name:     payload.Name,
		Address:  payload.Address,
		Phone:    payload.Phone,
		Email:    payload.Email,
		IsActive: payload.IsActive,
	}, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"outlet": o})
}

func (h *Handler) systemLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.service.SystemLogs(r.Context(), r.URL.Query().Get("entity"), limit)
	if err != nil {
		h.logger.Error("list system logs", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"logs": logs})
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, payload any) bool {
	if err := httpx.DecodeJSON(r, payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidRole), errors.Is(err, ErrWeakPassword):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrLastSuperAdmin):
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
