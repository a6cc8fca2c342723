package hr

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/internal/shared"
)

// Handler exposes the hr data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers hr routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/employees", h.listEmployees)
	r.Post("/employees", h.createEmployee)
	r.Get("/employees/{id}", h.getEmployee)
	r.Put("/employees/{id}", h.updateEmployee)
	r.Get("/attendance", h.listAttendance)
	r.Post("/attendance/check-in", h.checkIn)
	r.Post("/attendance/{id}/check-out", h.checkOut)
}

type employeePayload struct {
	FirstName   string  `json:"firstName" validate:"required"`
	LastName    string  `json:"lastName" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone"`
	Position    string  `json:"position" validate:"required"`
	Department  string  `json:"department" validate:"required"`
	OutletID    string  `json:"outletId" validate:"required"`
	Status      string  `json:"status"`
	JoinDate    string  `json:"joinDate"`
	ContractEnd string  `json:"contractEnd"`
	Salary      float64 `json:"salary" validate:"gte=0"`
}

func (h *Handler) listEmployees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	pageNum, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("limit"))
	page := shared.NewPagination(pageNum, perPage, 0)

	filter := EmployeeFilter{
		OutletID: query.Get("outletId"),
		Status:   EmployeeStatus(query.Get("status")),
		Search:   query.Get("search"),
	}
	employees, total, err := h.service.ListEmployees(r.Context(), filter, page)
	if err != nil {
		h.logger.Error("list employees", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"employees":  employees,
		"pagination": shared.NewPagination(page.Page, page.PerPage, total),
	})
}

func (h *Handler) getEmployee(w http.ResponseWriter, r *http.Request) {
	employee, err := h.service.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) createEmployee(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	employee, err := h.service.CreateEmployee(r.Context(), payload, actorID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, employee)
}

func (h *Handler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeEmployee(w, r)
	if !ok {
		return
	}
	payload.ID = chi.URLParam(r, "id")
	employee, err := h.service.UpdateEmployee(r.Context(), payload, actorID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, employee)
}

func (h *Handler) decodeEmployee(w http.ResponseWriter, r *http.Request) (Employee, bool) {
	var payload employeePayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return Employee{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Employee{}, false
	}
	employee := Employee{
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Email:      payload.Email,
		Phone:      payload.Phone,
		Position:   payload.Position,
		Department: payload.Department,
		OutletID:   payload.OutletID,
		Status:     EmployeeStatus(payload.Status),
		Salary:     payload.Salary,
	}
	if payload.JoinDate != "" {
		if parsed, err := time.Parse("2006-01-02", payload.JoinDate); err == nil {
			employee.JoinDate = parsed
		}
	}
	if payload.ContractEnd != "" {
		if parsed, err := time.Parse("2006-01-02", payload.ContractEnd); err == nil {
			employee.ContractEnd = &parsed
		}
	}
	return employee, true
}

func (h *Handler) listAttendance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := AttendanceFilter{
		OutletID:   query.Get("outletId"),
		EmployeeID: query.Get("employeeId"),
	}
	if from := query.Get("from"); from != "" {
		filter.From, _ = time.Parse("2006-01-02", from)
	}
	if to := query.Get("to"); to != "" {
		filter.To, _ = time.Parse("2006-01-02", to)
	}
	records, err := h.service.ListAttendance(r.Context(), filter)
	if err != nil {
		h.logger.Error("list attendance", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"attendance": records})
}

type checkInPayload struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	OutletID   string `json:"outletId" validate:"required"`
	Shift      string `json:"shift"`
	Status     string `json:"status"`
	Notes      string `json:"notes"`
}

func (h *Handler) checkIn(w http.ResponseWriter, r *http.Request) {
	var payload checkInPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	record, err := h.service.CheckIn(r.Context(), Attendance{
		EmployeeID: payload.EmployeeID,
		OutletID:   payload.OutletID,
		Shift:      WorkShift(payload.Shift),
		Status:     AttendanceStatus(payload.Status),
		Notes:      payload.Notes,
	}, actorID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, record)
}

func (h *Handler) checkOut(w http.ResponseWriter, r *http.Request) {
	record, err := h.service.CheckOut(r.Context(), chi.URLParam(r, "id"), actorID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, record)
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrEmployeeExists):
		httpx.Problem(w, http.StatusConflict, "Duplicate", err.Error())
	case errors.Is(err, ErrAlreadyCheckedOut):
		httpx.Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		httpx.RespondError(w, err)
	}
}

func actorID(r *http.Request) string {
	if sess := session.FromContext(r.Context()); sess != nil {
		return sess.UserID
	}
	return ""
}
