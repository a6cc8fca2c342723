package dashboard

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates counts across the operational tables.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// EmployeeCounts returns total and active employee counts.
func (r *Repository) EmployeeCounts(ctx context.Context, outletID string) (total, active int, err error) {
	err = r.pool.QueryRow(ctx, `SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'ACTIVE')
FROM employees WHERE ($1 = '' OR outlet_id = $1)`, outletID).Scan(&total, &active)
	return total, active, err
}

// TodayAttendance counts employees checked in today.
func (r *Repository) TodayAttendance(ctx context.Context, outletID string, today time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM attendances
WHERE date = $2 AND check_in_time IS NOT NULL AND ($1 = '' OR outlet_id = $1)`,
		outletID, today).Scan(&count)
	return count, err
}

// MonthlyFinancials sums approved revenue and expense for a calendar
// month (format "2006-01").
func (r *Repository) MonthlyFinancials(ctx context.Context, outletID, month string) (revenue, expense float64, err error) {
	err = r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_revenue),0), COALESCE(SUM(total_expense),0)
FROM financial_records
WHERE to_char(date, 'YYYY-MM') = $2 AND status = 'APPROVED' AND ($1 = '' OR outlet_id = $1)`,
		outletID, month).Scan(&revenue, &expense)
	return revenue, expense, err
}

// PendingBookings counts bookings awaiting confirmation.
func (r *Repository) PendingBookings(ctx context.Context, outletID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM bookings
WHERE status = 'PENDING' AND ($1 = '' OR outlet_id = $1)`, outletID).Scan(&count)
	return count, err
}

// LowStockItems counts inventory at or below minimum.
func (r *Repository) LowStockItems(ctx context.Context, outletID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items
WHERE quantity <= min_stock AND ($1 = '' OR outlet_id = $1)`, outletID).Scan(&count)
	return count, err
}

// PendingTasks counts unfinished activity log tasks.
func (r *Repository) PendingTasks(ctx context.Context, outletID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM activity_logs
WHERE status IN ('PENDING','IN_PROGRESS') AND ($1 = '' OR outlet_id = $1)`, outletID).Scan(&count)
	return count, err
}
