package bookings

import (
	"context"
	"strings"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter) ([]Booking, error)
	Get(ctx context.Context, id string) (Booking, error)
	Create(ctx context.Context, b Booking) (Booking, error)
	Update(ctx context.Context, b Booking) (Booking, error)
	SetStatus(ctx context.Context, id string, status Status) error
	CountOverlapping(ctx context.Context, b Booking, excludeID string) (int, error)
	CountPending(ctx context.Context, outletID string) (int, error)
}

// Service handles booking business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns bookings matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Booking, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one booking.
func (s *Service) Get(ctx context.Context, id string) (Booking, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new booking in PENDING status.
func (s *Service) Create(ctx context.Context, b Booking, actorID string) (Booking, error) {
	if err := validate(&b); err != nil {
		return Booking{}, err
	}
	b.Status = StatusPending
	b.CreatedBy = actorID

	created, err := s.repo.Create(ctx, b)
	if err != nil {
		return Booking{}, err
	}
	s.record(ctx, actorID, "booking.create", created.ID)
	return created, nil
}

// Update validates and overwrites a booking's details. The status is
// changed only through Transition.
func (s *Service) Update(ctx context.Context, b Booking, actorID string) (Booking, error) {
	if err := validate(&b); err != nil {
		return Booking{}, err
	}
	updated, err := s.repo.Update(ctx, b)
	if err != nil {
		return Booking{}, err
	}
	s.record(ctx, actorID, "booking.update", updated.ID)
	return updated, nil
}

// Transition moves a booking through its lifecycle. Confirming checks the
// slot is still free.
func (s *Service) Transition(ctx context.Context, id string, to Status, actorID string) (Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return Booking{}, err
	}
	if !CanTransition(b.Status, to) {
		return Booking{}, ErrInvalidTransition
	}
	if to == StatusConfirmed {
		overlapping, err := s.repo.CountOverlapping(ctx, b, b.ID)
		if err != nil {
			return Booking{}, err
		}
		if overlapping > 0 {
			return Booking{}, ErrOverlap
		}
	}
	if err := s.repo.SetStatus(ctx, id, to); err != nil {
		return Booking{}, err
	}
	b.Status = to
	s.record(ctx, actorID, "booking."+strings.ToLower(string(to)), id)
	return b, nil
}

// PendingCount counts bookings awaiting confirmation, optionally per outlet.
func (s *Service) PendingCount(ctx context.Context, outletID string) (int, error) {
	return s.repo.CountPending(ctx, outletID)
}

func validate(b *Booking) error {
	b.CustomerName = strings.TrimSpace(b.CustomerName)
	if b.OutletID == "" || b.Type == "" || b.CustomerName == "" || b.Date.IsZero() {
		return ErrMissingField
	}
	if b.Participants < 1 {
		return ErrMissingField
	}
	if !b.EndTime.After(b.StartTime) {
		return ErrInvalidTimeRange
	}
	return nil
}

func (s *Service) record(ctx context.Context, actorID, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: "booking", EntityID: entityID})
}
