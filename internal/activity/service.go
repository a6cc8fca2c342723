package activity

import (
	"context"
	"strings"
	"time"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter) ([]Log, error)
	Get(ctx context.Context, id string) (Log, error)
	Create(ctx context.Context, l Log) (Log, error)
	SetCompleted(ctx context.Context, id string, at time.Time) error
	CountPending(ctx context.Context, outletID string) (int, error)
}

// Service handles activity log business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns logs matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Log, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one log.
func (s *Service) Get(ctx context.Context, id string) (Log, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new task log. Missing status and
// priority default to PENDING and MEDIUM; the date defaults to today.
func (s *Service) Create(ctx context.Context, l Log, actorID string) (Log, error) {
	l.TaskName = strings.TrimSpace(l.TaskName)
	l.TaskType = strings.TrimSpace(l.TaskType)
	if l.OutletID == "" || l.TaskName == "" || l.TaskType == "" {
		return Log{}, ErrMissingField
	}
	if l.Status == "" {
		l.Status = TaskPending
	}
	if l.Priority == "" {
		l.Priority = PriorityMedium
	}
	if l.Date.IsZero() {
		l.Date = time.Now().UTC().Truncate(24 * time.Hour)
	}
	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return Log{}, err
	}
	s.record(ctx, actorID, "activity.create", created.ID)
	return created, nil
}

// Complete stamps a task finished. Completing twice is an error.
func (s *Service) Complete(ctx context.Context, id, actorID string) (Log, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return Log{}, err
	}
	if l.Status == TaskCompleted {
		return Log{}, ErrAlreadyCompleted
	}
	now := time.Now().UTC()
	if err := s.repo.SetCompleted(ctx, id, now); err != nil {
		return Log{}, err
	}
	l.Status = TaskCompleted
	l.CompletedAt = &now
	s.record(ctx, actorID, "activity.complete", id)
	return l, nil
}

// PendingCount counts unfinished tasks, optionally per outlet.
func (s *Service) PendingCount(ctx context.Context, outletID string) (int, error) {
	return s.repo.CountPending(ctx, outletID)
}

func (s *Service) record(ctx context.Context, actorID, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: "activity_log", EntityID: entityID})
}
