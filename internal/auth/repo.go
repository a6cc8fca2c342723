package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/authz"
	"github.com/appubr/backoffice/internal/shared"
)

// Repository defines persistence operations for the auth module.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email, resolving the outlet affiliation
// through the linked employee record.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	var role string
	var outletID *string
	err := r.pool.QueryRow(ctx, `SELECT u.id, u.email, u.password_hash, u.role, u.is_active, u.created_at, u.updated_at, e.outlet_id
FROM users u
LEFT JOIN employees e ON e.user_id = u.id
WHERE u.email = $1`, email).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt, &outletID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	parsed, err := authz.ParseRole(role)
	if err != nil {
		return nil, err
	}
	user.Role = parsed
	if outletID != nil {
		user.OutletID = *outletID
	}
	return &user, nil
}

var _ Repository = (*PGRepository)(nil)
