package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/internal/shared"
)

// Handler exposes the inventory data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/items", h.list)
	r.Post("/items", h.create)
	r.Get("/items/{id}", h.get)
	r.Put("/items/{id}", h.update)
	r.Delete("/items/{id}", h.remove)
	r.Post("/items/{id}/adjust", h.adjust)
	r.Get("/low-stock", h.lowStock)
}

type itemPayload struct {
	OutletID      string   `json:"outletId" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	Category      string   `json:"category" validate:"required"`
	SKU           string   `json:"sku"`
	Barcode       string   `json:"barcode"`
	Quantity      float64  `json:"quantity" validate:"gte=0"`
	Unit          string   `json:"unit" validate:"required"`
	MinStock      float64  `json:"minStock" validate:"gte=0"`
	MaxStock      *float64 `json:"maxStock"`
	PurchasePrice float64  `json:"purchasePrice" validate:"gte=0"`
	SellingPrice  float64  `json:"sellingPrice" validate:"gte=0"`
	Location      string   `json:"location"`
	Condition     string   `json:"condition" validate:"omitempty,oneof=GOOD DAMAGED MAINTENANCE"`
	Notes         string   `json:"notes"`
}

func (p itemPayload) toItem() Item {
	return Item{
		OutletID:      p.OutletID,
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		Quantity:      p.Quantity,
		Unit:          p.Unit,
		MinStock:      p.MinStock,
		MaxStock:      p.MaxStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		Location:      p.Location,
		Condition:     Condition(p.Condition),
		Notes:         p.Notes,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := Filter{
		OutletID: query.Get("outletId"),
		Category: query.Get("category"),
		Search:   query.Get("search"),
		LowStock: query.Get("lowStock") == "true",
	}
	pageNum, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("perPage"))
	page := shared.NewPagination(pageNum, perPage, 0)

	items, total, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		h.logger.Error("list inventory items", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      items,
		"pagination": shared.NewPagination(page.Page, page.PerPage, total),
	})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, itemResponse(item))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item, err := h.service.Create(r.Context(), payload.toItem(), currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, itemResponse(item))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodeItem(w, r)
	if !ok {
		return
	}
	item := payload.toItem()
	item.ID = chi.URLParam(r, "id")
	updated, err := h.service.Update(r.Context(), item, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, itemResponse(updated))
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), currentUserID(r)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type adjustPayload struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

func (h *Handler) adjust(w http.ResponseWriter, r *http.Request) {
	var payload adjustPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	item, err := h.service.Adjust(r.Context(), chi.URLParam(r, "id"), payload.Quantity, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, itemResponse(item))
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.LowStock(r.Context(), r.URL.Query().Get("outletId"))
	if err != nil {
		h.logger.Error("list low stock", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "count": len(items)})
}

func (h *Handler) decodeItem(w http.ResponseWriter, r *http.Request) (itemPayload, bool) {
	var payload itemPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid json body")
		return payload, false
	}
	if err := h.validate.Struct(payload); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return payload, false
	}
	return payload, true
}

// itemResponse augments an item with its low stock flag.
func itemResponse(item Item) map[string]any {
	return map[string]any{"item": item, "lowStock": item.LowStock()}
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrNegativeQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	case errors.Is(err, ErrSKUExists):
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
