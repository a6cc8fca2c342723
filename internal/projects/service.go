package projects

import (
	"context"
	"strings"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	List(ctx context.Context, filter Filter) ([]Project, error)
	Get(ctx context.Context, id string) (Project, error)
	Create(ctx context.Context, p Project) (Project, error)
	Update(ctx context.Context, p Project) (Project, error)
	SetProgress(ctx context.Context, id string, progress int, status Status) (Project, error)
}

// Service handles project business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns projects matching the filter.
func (s *Service) List(ctx context.Context, filter Filter) ([]Project, error) {
	return s.repo.List(ctx, filter)
}

// Get fetches one project.
func (s *Service) Get(ctx context.Context, id string) (Project, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and stores a new project. New projects start in
// PLANNING unless a status is supplied.
func (s *Service) Create(ctx context.Context, p Project, actorID string) (Project, error) {
	if err := validate(&p); err != nil {
		return Project{}, err
	}
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return Project{}, err
	}
	s.record(ctx, actorID, "project.create", created.ID)
	return created, nil
}

// Update validates and overwrites a project.
func (s *Service) Update(ctx context.Context, p Project, actorID string) (Project, error) {
	if err := validate(&p); err != nil {
		return Project{}, err
	}
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return Project{}, err
	}
	s.record(ctx, actorID, "project.update", updated.ID)
	return updated, nil
}

// SetProgress records completion. Reaching 100 completes the project; a
// planned project with progress moves to in progress.
func (s *Service) SetProgress(ctx context.Context, id string, progress int, actorID string) (Project, error) {
	if progress < 0 || progress > 100 {
		return Project{}, ErrInvalidProgress
	}
	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return Project{}, err
	}
	status := current.Status
	switch {
	case progress == 100:
		status = StatusCompleted
	case current.Status == StatusPlanning && progress > 0:
		status = StatusInProgress
	}
	updated, err := s.repo.SetProgress(ctx, id, progress, status)
	if err != nil {
		return Project{}, err
	}
	s.record(ctx, actorID, "project.progress", id)
	return updated, nil
}

func validate(p *Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" || p.Type == "" || p.StartDate.IsZero() {
		return ErrMissingField
	}
	if p.Progress < 0 || p.Progress > 100 {
		return ErrInvalidProgress
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}

func (s *Service) record(ctx context.Context, actorID, action, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: "project", EntityID: entityID})
}
