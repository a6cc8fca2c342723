package catalog

import (
	"context"
	"strings"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	ListMenuItems(ctx context.Context, filter Filter) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (MenuItem, error)
	CreateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error)
	UpdateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error)
	ListProducts(ctx context.Context, filter Filter) ([]RetailProduct, error)
	GetProduct(ctx context.Context, id string) (RetailProduct, error)
	CreateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error)
	UpdateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error)
}

// Service handles catalog business logic. Margins are always derived on
// write, never accepted from input.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListMenuItems returns menu items matching the filter.
func (s *Service) ListMenuItems(ctx context.Context, filter Filter) ([]MenuItem, error) {
	return s.repo.ListMenuItems(ctx, filter)
}

// GetMenuItem fetches one menu item.
func (s *Service) GetMenuItem(ctx context.Context, id string) (MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

// CreateMenuItem validates, derives the margin, and stores a menu item.
func (s *Service) CreateMenuItem(ctx context.Context, m MenuItem, actorID string) (MenuItem, error) {
	if err := validateMenuItem(&m); err != nil {
		return MenuItem{}, err
	}
	created, err := s.repo.CreateMenuItem(ctx, m)
	if err != nil {
		return MenuItem{}, err
	}
	s.record(ctx, actorID, "catalog.menu.create", "menu_item", created.ID)
	return created, nil
}

// UpdateMenuItem validates, rederives the margin, and overwrites a menu item.
func (s *Service) UpdateMenuItem(ctx context.Context, m MenuItem, actorID string) (MenuItem, error) {
	if err := validateMenuItem(&m); err != nil {
		return MenuItem{}, err
	}
	updated, err := s.repo.UpdateMenuItem(ctx, m)
	if err != nil {
		return MenuItem{}, err
	}
	s.record(ctx, actorID, "catalog.menu.update", "menu_item", updated.ID)
	return updated, nil
}

// ListProducts returns retail products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter Filter) ([]RetailProduct, error) {
	return s.repo.ListProducts(ctx, filter)
}

// GetProduct fetches one retail product.
func (s *Service) GetProduct(ctx context.Context, id string) (RetailProduct, error) {
	return s.repo.GetProduct(ctx, id)
}

// CreateProduct validates, derives the margin, and stores a retail product.
func (s *Service) CreateProduct(ctx context.Context, p RetailProduct, actorID string) (RetailProduct, error) {
	if err := validateProduct(&p); err != nil {
		return RetailProduct{}, err
	}
	created, err := s.repo.CreateProduct(ctx, p)
	if err != nil {
		return RetailProduct{}, err
	}
	s.record(ctx, actorID, "catalog.product.create", "retail_product", created.ID)
	return created, nil
}

// UpdateProduct validates, rederives the margin, and overwrites a product.
func (s *Service) UpdateProduct(ctx context.Context, p RetailProduct, actorID string) (RetailProduct, error) {
	if err := validateProduct(&p); err != nil {
		return RetailProduct{}, err
	}
	updated, err := s.repo.UpdateProduct(ctx, p)
	if err != nil {
		return RetailProduct{}, err
	}
	s.record(ctx, actorID, "catalog.product.update", "retail_product", updated.ID)
	return updated, nil
}

func validateMenuItem(m *MenuItem) error {
	m.Name = strings.TrimSpace(m.Name)
	m.Category = strings.TrimSpace(m.Category)
	if m.Name == "" || m.Category == "" {
		return ErrMissingField
	}
	if m.SellingPrice < 0 || m.HPP < 0 {
		return ErrNegativePrice
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	m.DeriveMargin()
	return nil
}

func validateProduct(p *RetailProduct) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	if p.Name == "" || p.Category == "" {
		return ErrMissingField
	}
	if p.SellingPrice < 0 || p.PurchasePrice < 0 || p.Stock < 0 || p.MinStock < 0 {
		return ErrNegativePrice
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	p.DeriveMargin()
	return nil
}

func (s *Service) record(ctx context.Context, actorID, action, entity, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID})
}
