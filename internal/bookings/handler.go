package bookings

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

// Handler exposes the bookings data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers booking routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Post("/{id}/confirm", h.transitionTo(StatusConfirmed))
	r.Post("/{id}/complete", h.transitionTo(StatusCompleted))
	r.Post("/{id}/cancel", h.transitionTo(StatusCancelled))
}

type bookingPayload struct {
	OutletID        string  `json:"outletId" validate:"required"`
	Type            string  `json:"type" validate:"required,oneof=INDOOR_DINING OUTDOOR_DINING INDOOR_LESEHAN OUTDOOR_LESEHAN SINGING_ROOM PUSPAWARNA_AUDITORIUM PUSPAWARNA_CLASS_ROOM"`
	CustomerName    string  `json:"customerName" validate:"required"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail" validate:"omitempty,email"`
	Date            string  `json:"date" validate:"required"`
	StartTime       string  `json:"startTime" validate:"required"`
	EndTime         string  `json:"endTime" validate:"required"`
	Participants    int     `json:"participants" validate:"gte=1"`
	TotalAmount     float64 `json:"totalAmount" validate:"gte=0"`
	DepositAmount   float64 `json:"depositAmount" validate:"gte=0"`
	Notes           string  `json:"notes"`
	SpecialRequests string  `json:"specialRequests"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		OutletID: query.Get("outletId"),
		Status:   Status(query.Get("status")),
		Type:     Type(query.Get("type")),
	}
	if from := query.Get("from"); from != "" {
		filter.From, _ = time.Parse("2006-01-02", from)
	}
	if to := query.Get("to"); to != "" {
		filter.To, _ = time.Parse("2006-01-02", to)
	}
	result, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list bookings", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"bookings": result})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookingResponse(b))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	b, ok := h.decodeBooking(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), b, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, bookingResponse(created))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	b, ok := h.decodeBooking(w, r)
	if !ok {
		return
	}
	b.ID = chi.URLParam(r, "id")
	updated, err := h.service.Update(r.Context(), b, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bookingResponse(updated))
}

func (h *Handler) transitionTo(to Status) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := h.service.Transition(r.Context(), chi.URLParam(r, "id"), to, currentUserID(r))
		if err != nil {
			h.respondDomainError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, bookingResponse(b))
	}
}

// decodeBooking parses and validates the request body. The date carries the
// calendar day; start and end are clock times on that day.
func (h *Handler) decodeBooking(w http.ResponseWriter, r *http.Request) (Booking, bool) {
	var payload bookingPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return Booking{}, false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Booking{}, false
	}
	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "date must be YYYY-MM-DD")
		return Booking{}, false
	}
	start, err := atTime(date, payload.StartTime)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "startTime must be HH:MM")
		return Booking{}, false
	}
	end, err := atTime(date, payload.EndTime)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "endTime must be HH:MM")
		return Booking{}, false
	}
	return Booking{
		OutletID:        payload.OutletID,
		Type:            Type(payload.Type),
		CustomerName:    payload.CustomerName,
		CustomerPhone:   payload.CustomerPhone,
		CustomerEmail:   payload.CustomerEmail,
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		Participants:    payload.Participants,
		TotalAmount:     payload.TotalAmount,
		DepositAmount:   payload.DepositAmount,
		Notes:           payload.Notes,
		SpecialRequests: payload.SpecialRequests,
	}, true
}

func atTime(date time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}

// bookingResponse augments a booking with display formatting.
func bookingResponse(b Booking) map[string]any {
	return map[string]any{
		"booking":              b,
		"dateFormatted":        shared.FormatDate(b.Date),
		"totalFormatted":       shared.FormatIDR(b.TotalAmount),
		"depositFormatted":     shared.FormatIDR(b.DepositAmount),
		"outstandingFormatted": shared.FormatIDR(b.TotalAmount - b.DepositAmount),
	}
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrInvalidTimeRange):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrOverlap):
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
