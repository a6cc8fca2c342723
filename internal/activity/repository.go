package activity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists activity logs in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const logColumns = `id, outlet_id, employee_id, date, task_type, task_name, description, status, priority,
completed_at, photo_urls, kwh_reading, notes, created_at, updated_at`

func scanLog(row pgx.Row) (Log, error) {
	var l Log
	err := row.Scan(&l.ID, &l.OutletID, &l.EmployeeID, &l.Date, &l.TaskType, &l.TaskName, &l.Description,
		&l.Status, &l.Priority, &l.CompletedAt, &l.PhotoURLs, &l.KwhReading, &l.Notes, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// List returns logs matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Log, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+logColumns+`
FROM activity_logs
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR employee_id = $2)
  AND ($3 = '' OR status = $3)
  AND ($4 = '' OR task_type = $4)
  AND date BETWEEN COALESCE($5, '-infinity') AND COALESCE($6, 'infinity')
ORDER BY date DESC, created_at DESC
LIMIT 500`, filter.OutletID, filter.EmployeeID, string(filter.Status), filter.TaskType,
		nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// Get fetches one log by id.
func (r *Repository) Get(ctx context.Context, id string) (Log, error) {
	l, err := scanLog(r.pool.QueryRow(ctx, `SELECT `+logColumns+` FROM activity_logs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Log{}, shared.ErrNotFound
		}
		return Log{}, err
	}
	return l, nil
}

// Create inserts a new log.
func (r *Repository) Create(ctx context.Context, l Log) (Log, error) {
	l.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO activity_logs (id, outlet_id, employee_id, date, task_type, task_name,
description, status, priority, completed_at, photo_urls, kwh_reading, notes, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)`,
		l.ID, l.OutletID, l.EmployeeID, l.Date, l.TaskType, l.TaskName,
		l.Description, string(l.Status), string(l.Priority), l.CompletedAt, l.PhotoURLs, l.KwhReading, l.Notes, now)
	if err != nil {
		return Log{}, err
	}
	l.CreatedAt = now
	l.UpdatedAt = now
	return l, nil
}

// SetCompleted stamps a task complete.
func (r *Repository) SetCompleted(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE activity_logs SET status='COMPLETED', completed_at=$2, updated_at=NOW() WHERE id=$1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountPending counts unfinished tasks, optionally per outlet.
func (r *Repository) CountPending(ctx context.Context, outletID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs
WHERE status IN ('PENDING','IN_PROGRESS') AND ($1 = '' OR outlet_id = $1)`, outletID).Scan(&count)
	return count, err
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
