package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/appubr/backoffice/internal/platform/httpx"
	"github.com/appubr/backoffice/internal/session"
	"github.com/appubr/backoffice/internal/shared"
)

// Handler exposes the catalog data API.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers catalog routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/menu", h.listMenu)
	r.Post("/menu", h.createMenu)
	r.Get("/menu/{id}", h.getMenu)
	r.Put("/menu/{id}", h.updateMenu)
	r.Get("/products", h.listProducts)
	r.Post("/products", h.createProduct)
	r.Get("/products/{id}", h.getProduct)
	r.Put("/products/{id}", h.updateProduct)
}

type menuPayload struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" validate:"required"`
	SellingPrice float64  `json:"sellingPrice" validate:"gte=0"`
	HPP          float64  `json:"hpp" validate:"gte=0"`
	Ingredients  []string `json:"ingredients"`
	Allergens    []string `json:"allergens"`
	Status       string   `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (p menuPayload) toMenuItem() MenuItem {
	return MenuItem{
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		SellingPrice: p.SellingPrice,
		HPP:          p.HPP,
		Ingredients:  p.Ingredients,
		Allergens:    p.Allergens,
		Status:       ItemStatus(p.Status),
	}
}

type productPayload struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description"`
	Category      string  `json:"category" validate:"required"`
	SKU           string  `json:"sku"`
	Barcode       string  `json:"barcode"`
	SellingPrice  float64 `json:"sellingPrice" validate:"gte=0"`
	PurchasePrice float64 `json:"purchasePrice" validate:"gte=0"`
	Stock         float64 `json:"stock" validate:"gte=0"`
	MinStock      float64 `json:"minStock" validate:"gte=0"`
	Supplier      string  `json:"supplier"`
	Status        string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (p productPayload) toProduct() RetailProduct {
	return RetailProduct{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		SKU:           p.SKU,
		Barcode:       p.Barcode,
		SellingPrice:  p.SellingPrice,
		PurchasePrice: p.PurchasePrice,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		Supplier:      p.Supplier,
		Status:        ItemStatus(p.Status),
	}
}

func (h *Handler) listMenu(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := h.service.ListMenuItems(r.Context(), Filter{
		Category: query.Get("category"),
		Status:   ItemStatus(query.Get("status")),
		Search:   query.Get("search"),
	})
	if err != nil {
		h.logger.Error("list menu items", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	m, err := h.service.GetMenuItem(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, menuResponse(m))
}

func (h *Handler) createMenu(w http.ResponseWriter, r *http.Request) {
	var payload menuPayload
	if !h.decode(w, r, &payload) {
		return
	}
	m, err := h.service.CreateMenuItem(r.Context(), payload.toMenuItem(), currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, menuResponse(m))
}

func (h *Handler) updateMenu(w http.ResponseWriter, r *http.Request) {
	var payload menuPayload
	if !h.decode(w, r, &payload) {
		return
	}
	m := payload.toMenuItem()
	m.ID = chi.URLParam(r, "id")
	updated, err := h.service.UpdateMenuItem(r.Context(), m, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, menuResponse(updated))
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.service.ListProducts(r.Context(), Filter{
		Category: query.Get("category"),
		Status:   ItemStatus(query.Get("status")),
		Search:   query.Get("search"),
	})
	if err != nil {
		h.logger.Error("list retail products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, productResponse(p))
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if !h.decode(w, r, &payload) {
		return
	}
	p, err := h.service.CreateProduct(r.Context(), payload.toProduct(), currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, productResponse(p))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if !h.decode(w, r, &payload) {
		return
	}
	p := payload.toProduct()
	p.ID = chi.URLParam(r, "id")
	updated, err := h.service.UpdateProduct(r.Context(), p, currentUserID(r))
	if err != nil {
		h.respondDomainError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, productResponse(updated))
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

func menuResponse(m MenuItem) map[string]any {
	return map[string]any{
		"item":           m,
		"priceFormatted": shared.FormatIDR(m.SellingPrice),
		"hppFormatted":   shared.FormatIDR(m.HPP),
	}
}

func productResponse(p RetailProduct) map[string]any {
	return map[string]any{
		"product":        p,
		"priceFormatted": shared.FormatIDR(p.SellingPrice),
		"lowStock":       p.LowStock(),
	}
}

func (h *Handler) respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMissingField), errors.Is(err, ErrNegativePrice):
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
