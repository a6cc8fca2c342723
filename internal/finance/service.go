package finance

import (
	"context"
	"time"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Create(ctx context.Context, rec Record) (Record, error)
	SetApproval(ctx context.Context, id, approvedBy string, status RecordStatus, at time.Time) error
	MonthlySummary(ctx context.Context, outletID, month string) (MonthlySummary, error)
}

// Service handles financial record business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns records matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Record, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.repo.Get(ctx, id)
}

// Create validates a record, derives its totals, and stores it pending
// approval.
func (s *Service) Create(ctx context.Context, rec Record, actorID string) (Record, error) {
	if rec.OutletID == "" || rec.Date.IsZero() || rec.Shift == "" {
		return Record{}, ErrMissingField
	}
	for _, amount := range []float64{
		rec.RevenueDineIn, rec.RevenueTakeaway, rec.RevenueOnline, rec.RevenueFacility,
		rec.ExpenseStock, rec.ExpenseUtilities, rec.ExpenseStaffMeals, rec.ExpenseMaintenance, rec.ExpenseOther,
	} {
		if amount < 0 {
			return Record{}, ErrNegativeAmount
		}
	}
	rec.Derive()
	rec.Status = StatusPending
	rec.CashierID = actorID

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: "finance.create", Entity: "financial_record", EntityID: created.ID})
	}
	return created, nil
}

// Approve marks a pending record approved. Approving twice is an error.
func (s *Service) Approve(ctx context.Context, id, actorID string) (Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if rec.Status == StatusApproved {
		return Record{}, ErrAlreadyApproved
	}
	now := time.Now().UTC()
	if err := s.repo.SetApproval(ctx, id, actorID, StatusApproved, now); err != nil {
		return Record{}, err
	}
	rec.Status = StatusApproved
	rec.ApprovedBy = actorID
	rec.ApprovedAt = &now
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: "finance.approve", Entity: "financial_record", EntityID: id})
	}
	return rec, nil
}

// MonthlySummary aggregates a calendar month, optionally per outlet.
func (s *Service) MonthlySummary(ctx context.Context, outletID, month string) (MonthlySummary, error) {
	return s.repo.MonthlySummary(ctx, outletID, month)
}
