package finance

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/appubr/backoffice/internal/shared"
)

// Repository persists financial records in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const recordColumns = `id, outlet_id, date, shift, cashier_id, revenue_dine_in, revenue_takeaway, revenue_online, revenue_facility, total_revenue,
expense_stock, expense_utilities, expense_staff_meals, expense_maintenance, expense_other, total_expense, net_profit,
customer_count, transaction_count, notes, status, approved_by, approved_at, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(&rec.ID, &rec.OutletID, &rec.Date, &rec.Shift, &rec.CashierID,
		&rec.RevenueDineIn, &rec.RevenueTakeaway, &rec.RevenueOnline, &rec.RevenueFacility, &rec.TotalRevenue,
		&rec.ExpenseStock, &rec.ExpenseUtilities, &rec.ExpenseStaffMeals, &rec.ExpenseMaintenance, &rec.ExpenseOther, &rec.TotalExpense, &rec.NetProfit,
		&rec.CustomerCount, &rec.TransactionCount, &rec.Notes, &rec.Status, &rec.ApprovedBy, &rec.ApprovedAt, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// List returns records matching the filter, newest first.
func (r *Repository) List(ctx context.Context, filter Filter) ([]Record, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+recordColumns+`
FROM financial_records
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR status = $2)
  AND date BETWEEN COALESCE($3, '-infinity') AND COALESCE($4, 'infinity')
ORDER BY date DESC
LIMIT 500`, filter.OutletID, string(filter.Status), nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Get fetches one record by id.
func (r *Repository) Get(ctx context.Context, id string) (Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `SELECT `+recordColumns+` FROM financial_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, shared.ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Create inserts a new record.
func (r *Repository) Create(ctx context.Context, rec Record) (Record, error) {
	rec.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO financial_records (id, outlet_id, date, shift, cashier_id,
revenue_dine_in, revenue_takeaway, revenue_online, revenue_facility, total_revenue,
expense_stock, expense_utilities, expense_staff_meals, expense_maintenance, expense_other, total_expense, net_profit,
customer_count, transaction_count, notes, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$22)`,
		rec.ID, rec.OutletID, rec.Date, rec.Shift, rec.CashierID,
		rec.RevenueDineIn, rec.RevenueTakeaway, rec.RevenueOnline, rec.RevenueFacility, rec.TotalRevenue,
		rec.ExpenseStock, rec.ExpenseUtilities, rec.ExpenseStaffMeals, rec.ExpenseMaintenance, rec.ExpenseOther, rec.TotalExpense, rec.NetProfit,
		rec.CustomerCount, rec.TransactionCount, rec.Notes, string(rec.Status), now)
	if err != nil {
		return Record{}, err
	}
	rec.CreatedAt = now
	rec.UpdatedAt = now
	return rec, nil
}

// SetApproval stamps the approval fields on a record.
func (r *Repository) SetApproval(ctx context.Context, id, approvedBy string, status RecordStatus, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE financial_records SET status=$2, approved_by=$3, approved_at=$4, updated_at=NOW() WHERE id=$1`,
		id, string(status), approvedBy, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// MonthlySummary aggregates approved records for a calendar month
// (format "2006-01"), optionally scoped to one outlet.
func (r *Repository) MonthlySummary(ctx context.Context, outletID, month string) (MonthlySummary, error) {
	summary := MonthlySummary{Month: month}
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(SUM(total_revenue),0), COALESCE(SUM(total_expense),0), COALESCE(SUM(net_profit),0)
FROM financial_records
WHERE to_char(date, 'YYYY-MM') = $1
  AND ($2 = '' OR outlet_id = $2)`, month, outletID).
		Scan(&summary.TotalRevenue, &summary.TotalExpense, &summary.NetProfit)
	return summary, err
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
