package admin

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists accounts and outlets in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const accountColumns = `id, email, password_hash, role, is_active, created_at, updated_at`

func scanAccount(row pgx.Row) (Account, error) {
	var a Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

// ListAccounts returns all accounts, email ascending.
func (r *Repository) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+accountColumns+` FROM users ORDER BY email ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// GetAccount fetches one account by id.
func (r *Repository) GetAccount(ctx context.Context, id string) (Account, error) {
	a, err := scanAccount(r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, shared.ErrNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// CreateAccount inserts a new account.
func (r *Repository) CreateAccount(ctx context.Context, a Account) (Account, error) {
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$6)`,
		a.ID, a.Email, a.PasswordHash, string(a.Role), a.IsActive, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, shared.ErrDuplicate
		}
		return Account{}, err
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// UpdateAccount overwrites the mutable fields of an account. An empty
// PasswordHash leaves the stored hash untouched.
func (r *Repository) UpdateAccount(ctx context.Context, a Account) (Account, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET email=$2, role=$3, is_active=$4,
password_hash = COALESCE(NULLIF($5, ''), password_hash), updated_at=NOW()
WHERE id=$1`,
		a.ID, a.Email, string(a.Role), a.IsActive, a.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, shared.ErrDuplicate
		}
		return Account{}, err
	}
	if tag.RowsAffected() == 0 {
		return Account{}, shared.ErrNotFound
	}
	return r.GetAccount(ctx, a.ID)
}

// CountActiveSuperAdmins counts active SUPER_ADMIN accounts.
func (r *Repository) CountActiveSuperAdmins(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role = 'SUPER_ADMIN' AND is_active`).Scan(&count)
	return count, err
}

const outletColumns = `id, code, name, address, phone, email, is_active, created_at, updated_at`

func scanOutlet(row pgx.Row) (Outlet, error) {
	var o Outlet
	err := row.Scan(&o.ID, &o.Code, &o.Name, &o.Address, &o.Phone, &o.Email, &o.IsActive, &o.CreatedAt, &o.UpdatedAt)
	return o, err
}

// ListOutlets returns all outlets, code ascending.
func (r *Repository) ListOutlets(ctx context.Context) ([]Outlet, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+outletColumns+` FROM outlets ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	outlets := []Outlet{}
	for rows.Next() {
		o, err := scanOutlet(rows)
		if err != nil {
			return nil, err
		}
		outlets = append(outlets, o)
	}
	return outlets, rows.Err()
}

// OutletIDs returns the ids of all active outlets.
func (r *Repository) OutletIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM outlets WHERE is_active ORDER BY code ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetOutlet fetches one outlet by id.
func (r *Repository) GetOutlet(ctx context.Context, id string) (Outlet, error) {
	o, err := scanOutlet(r.pool.QueryRow(ctx, `SELECT `+outletColumns+` FROM outlets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outlet{}, shared.ErrNotFound
		}
		return Outlet{}, err
	}
	return o, nil
}

// CreateOutlet inserts a new outlet.
func (r *Repository) CreateOutlet(ctx context.Context, o Outlet) (Outlet, error) {
	o.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO outlets (id, code, name, address, phone, email, is_active, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$8)`,
		o.ID, o.Code, o.Name, o.Address, o.Phone, o.Email, o.IsActive, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Outlet{}, shared.ErrDuplicate
		}
		return Outlet{}, err
	}
	o.CreatedAt = now
	o.UpdatedAt = now
	return o, nil
}

// UpdateOutlet overwrites the mutable fields of an outlet.
func (r *Repository) UpdateOutlet(ctx context.Context, o Outlet) (Outlet, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE outlets SET code=$2, name=$3, address=$4, phone=$5, email=$6, is_active=$7, updated_at=NOW()
WHERE id=$1`,
		o.ID, o.Code, o.Name, o.Address, o.Phone, o.Email, o.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return Outlet{}, shared.ErrDuplicate
		}
		return Outlet{}, err
	}
	if tag.RowsAffected() == 0 {
		return Outlet{}, shared.ErrNotFound
	}
	return r.GetOutlet(ctx, o.ID)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
