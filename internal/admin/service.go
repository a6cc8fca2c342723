package admin

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	ListAccounts(ctx context.Context) ([]Account, error)
	GetAccount(ctx context.Context, id string) (Account, error)
	CreateAccount(ctx context.Context, a Account) (Account, error)
	UpdateAccount(ctx context.Context, a Account) (Account, error)
	CountActiveSuperAdmins(ctx context.Context) (int, error)
	ListOutlets(ctx context.Context) ([]Outlet, error)
	GetOutlet(ctx context.Context, id string) (Outlet, error)
	CreateOutlet(ctx context.Context, o Outlet) (Outlet, error)
	UpdateOutlet(ctx context.Context, o Outlet) (Outlet, error)
}

// Service handles account and outlet administration.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListAccounts returns every account.
func (s *Service) ListAccounts(ctx context.Context) ([]Account, error) {
	return s.repo.ListAccounts(ctx)
}

// GetAccount fetches one account.
func (s *Service) GetAccount(ctx context.Context, id string) (Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// CreateAccount hashes the password and stores a new login.
func (s *Service) CreateAccount(ctx context.Context, email, password string, role authz.Role, actorID string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Account{}, ErrMissingField
	}
	if !role.Valid() {
		return Account{}, ErrInvalidRole
	}
	if len(password) < 6 {
		return Account{}, ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	created, err := s.repo.CreateAccount(ctx, Account{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsActive:     true,
	})
	if err != nil {
		return Account{}, err
	}
	s.record(ctx, actorID, "user.create", "user", created.ID)
	return created, nil
}

// UpdateAccount changes email, role, and active flag. A non-empty password
// is rehashed; an empty one keeps the current hash. Deactivating or
// demoting the last active SUPER_ADMIN is refused.
func (s *Service) UpdateAccount(ctx context.Context, id, email, password string, role authz.Role, isActive bool, actorID string) (Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return Account{}, ErrMissingField
	}
	if !role.Valid() {
		return Account{}, ErrInvalidRole
	}
	current, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return Account{}, err
	}
	losesSuperAdmin := current.Role == authz.RoleSuperAdmin && current.IsActive &&
		(role != authz.RoleSuperAdmin || !isActive)
	if losesSuperAdmin {
		count, err := s.repo.CountActiveSuperAdmins(ctx)
		if err != nil {
			return Account{}, err
		}
		if count <= 1 {
			return Account{}, ErrLastSuperAdmin
		}
	}

	hash := ""
	if password != "" {
		if len(password) < 6 {
			return Account{}, ErrWeakPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return Account{}, err
		}
		hash = string(hashed)
	}
	updated, err := s.repo.UpdateAccount(ctx, Account{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
	})
	if err != nil {
		return Account{}, err
	}
	s.record(ctx, actorID, "user.update", "user", id)
	return updated, nil
}

// ListOutlets returns every outlet.
func (s *Service) ListOutlets(ctx context.Context) ([]Outlet, error) {
	return s.repo.ListOutlets(ctx)
}

// GetOutlet fetches one outlet.
func (s *Service) GetOutlet(ctx context.Context, id string) (Outlet, error) {
	return s.repo.GetOutlet(ctx, id)
}

// CreateOutlet validates and stores a new outlet.
func (s *Service) CreateOutlet(ctx context.Context, o Outlet, actorID string) (Outlet, error) {
	if err := validateOutlet(&o); err != nil {
		return Outlet{}, err
	}
	created, err := s.repo.CreateOutlet(ctx, o)
	if err != nil {
		return Outlet{}, err
	}
	s.record(ctx, actorID, "outlet.create", "outlet", created.ID)
	return created, nil
}

// UpdateOutlet validates and overwrites an outlet.
func (s *Service) UpdateOutlet(ctx context.Context, o Outlet, actorID string) (Outlet, error) {
	if err := validateOutlet(&o); err != nil {
		return Outlet{}, err
	}
	updated, err := s.repo.UpdateOutlet(ctx, o)
	if err != nil {
		return Outlet{}, err
	}
	s.record(ctx, actorID, "outlet.update", "outlet", updated.ID)
	return updated, nil
}

// SystemLogs reads the audit trail, newest first.
func (s *Service) SystemLogs(ctx context.Context, entity string, limit int) ([]shared.SystemLog, error) {
	if s.audit == nil {
		return []shared.SystemLog{}, nil
	}
	return s.audit.List(ctx, entity, limit)
}

func validateOutlet(o *Outlet) error {
	o.Code = strings.TrimSpace(o.Code)
	o.Name = strings.TrimSpace(o.Name)
	o.Address = strings.TrimSpace(o.Address)
	if o.Code == "" || o.Name == "" || o.Address == "" {
		return ErrMissingField
	}
	return nil
}

func (s *Service) record(ctx context.Context, actorID, action, entity, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID})
}
