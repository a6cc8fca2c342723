package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists bookings in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const bookingColumns = `id, outlet_id, type, customer_name, customer_phone, customer_email, date, start_time, end_time,
participants, total_amount, deposit_amount, status, notes, special_requests, created_by, created_at, updated_at`

func scanBooking(row pgx.Row) (Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.OutletID, &b.Type, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.Date, &b.StartTime, &b.EndTime, &b.Participants, &b.TotalAmount, &b.DepositAmount,
		&b.Status, &b.Notes, &b.SpecialRequests, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// List returns bookings matching the filter, soonest first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+bookingColumns+`
FROM bookings
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR type = $3)
  AND date BETWEEN COALESCE($4, '-infinity') AND COALESCE($5, 'infinity')
ORDER BY date ASC, start_time ASC
LIMIT 500`, filter.OutletID, string(filter.Status), string(filter.Type), nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, b)
	}
	return result, rows.Err()
}

// Get fetches one booking by id.
func (r *Repository) Get(ctx context.Context, id string) (Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, shared.ErrNotFound
		}
		return Booking{}, err
	}
	return b, nil
}

// Create inserts a new booking.
func (r *Repository) Create(ctx context.Context, b Booking) (Booking, error) {
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO bookings (id, outlet_id, type, customer_name, customer_phone, customer_email,
date, start_time, end_time, participants, total_amount, deposit_amount, status, notes, special_requests, created_by, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$17)`,
		b.ID, b.OutletID, string(b.Type), b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.Date, b.StartTime, b.EndTime, b.Participants, b.TotalAmount, b.DepositAmount,
		string(b.Status), b.Notes, b.SpecialRequests, b.CreatedBy, now)
	if err != nil {
		return Booking{}, err
	}
	b.CreatedAt = now
	b.UpdatedAt = now
	return b, nil
}

// Update overwrites the mutable fields of a booking.
func (r *Repository) Update(ctx context.Context, b Booking) (Booking, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE bookings SET type=$2, customer_name=$3, customer_phone=$4, customer_email=$5,
date=$6, start_time=$7, end_time=$8, participants=$9, total_amount=$10, deposit_amount=$11,
notes=$12, special_requests=$13, updated_at=NOW()
WHERE id=$1`,
		b.ID, string(b.Type), b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.Date, b.StartTime, b.EndTime, b.Participants, b.TotalAmount, b.DepositAmount,
		b.Notes, b.SpecialRequests)
	if err != nil {
		return Booking{}, err
	}
	if tag.RowsAffected() == 0 {
		return Booking{}, shared.ErrNotFound
	}
	return r.Get(ctx, b.ID)
}

// SetStatus moves a booking to a new lifecycle status.
func (r *Repository) SetStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE bookings SET status=$2, updated_at=NOW() WHERE id=$1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountOverlapping counts confirmed bookings of the same facility type at
// the same outlet whose time range intersects the given one. The booking
// identified by excludeID is skipped so updates do not conflict with
// themselves.
func (r *Repository) CountOverlapping(ctx context.Context, b Booking, excludeID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*)
FROM bookings
WHERE outlet_id = $1
  AND type = $2
  AND date = $3
  AND status = 'CONFIRMED'
  AND id <> $4
  AND start_time < $6
  AND end_time > $5`,
		b.OutletID, string(b.Type), b.Date, excludeID, b.StartTime, b.EndTime).Scan(&count)
	return count, err
}

// CountPending counts bookings still awaiting confirmation.
func (r *Repository) CountPending(ctx context.Context, outletID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE status = 'PENDING' AND ($1 = '' OR outlet_id = $1)`,
		outletID).Scan(&count)
	return count, err
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
