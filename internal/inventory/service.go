package inventory

import (
	"context"
	"strings"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter, page shared.Pagination) ([]Item, int, error)
	Get(ctx context.Context, id string) (Item, error)
	Create(ctx context.Context, item Item) (Item, error)
	Update(ctx context.Context, item Item) (Item, error)
	SetQuantity(ctx context.Context, id string, quantity float64, restocked bool) (Item, error)
	Delete(ctx context.Context, id string) error
	ListLowStock(ctx context.Context, outletID string) ([]Item, error)
}

// Service handles inventory business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns items matching the filter with a total count.
func (s *Service) List(ctx context.Context, filter Filter, page shared.Pagination) ([]Item, int, error) {
	return s.repo.List(ctx, filter, page)
}

// Get fetches one item.
func (s *Service) Get(ctx context.Context, id string) (Item, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new item.
func (s *Service) Create(ctx context.Context, item Item, actorID string) (Item, error) {
	if err := validate(&item); err != nil {
		return Item{}, err
	}
	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actorID, "inventory.create", created.ID)
	return created, nil
}

// Update validates and overwrites an item.
func (s *Service) Update(ctx context.Context, item Item, actorID string) (Item, error) {
	if err := validate(&item); err != nil {
		return Item{}, err
	}
	updated, err := s.repo.Update(ctx, item)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actorID, "inventory.update", updated.ID)
	return updated, nil
}

// Adjust sets a new quantity for an item. An increase counts as a restock.
func (s *Service) Adjust(ctx context.Context, id string, quantity float64, actorID string) (Item, error) {
	if quantity < 0 {
		return Item{}, ErrNegativeQuantity
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Item{}, err
	}
	item, err := s.repo.SetQuantity(ctx, id, quantity, quantity > current.Quantity)
	if err != nil {
		return Item{}, err
	}
	s.record(ctx, actorID, "inventory.adjust", id)
	return item, nil
}

// Delete removes an item.
func (s *Service) Delete(ctx context.Context, id, actorID string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.record(ctx, actorID, "inventory.delete", id)
	return nil
}

// LowStock lists items at or below their minimum.
func (s *Service) LowStock(ctx context.Context, outletID string) ([]Item, error) {
	return s.repo.ListLowStock(ctx, outletID)
}

func validate(item *Item) error {
	item.Name = strings.TrimSpace(item.Name)
	item.Category = strings.TrimSpace(item.Category)
	item.Unit = strings.TrimSpace(item.Unit)
	if item.OutletID == "" || item.Name == "" || item.Category == "" || item.Unit == "" {
		return ErrMissingField
	}
	if item.Quantity < 0 || item.MinStock < 0 || item.PurchasePrice < 0 || item.SellingPrice < 0 {
		return ErrNegativeQuantity
	}
	if item.Condition == "" {
		item.Condition = ConditionGood
	}
	return nil
}

func (s *Service) record(ctx context.Context, actorID, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: "inventory_item", EntityID: entityID})
}
