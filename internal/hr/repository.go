package hr

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

// Repository provides PostgreSQL backed persistence for the hr module.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const employeeColumns = `id, employee_code, first_name, last_name, email, phone, position, department, outlet_id, status, join_date, contract_end, salary, created_at, updated_at`

func scanEmployee(row pgx.Row) (Employee, error) {
	var e Employee
	err := row.Scan(&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.Department, &e.OutletID, &e.Status, &e.JoinDate, &e.ContractEnd, &e.Salary, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// ListEmployees returns employees matching the filter, newest first.
func (r *Repository) ListEmployees(ctx context.Context, filter EmployeeFilter, page shared.Pagination) ([]Employee, int, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+employeeColumns+`, COUNT(*) OVER() AS total
FROM employees
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR status = $2)
  AND ($3 = '' OR first_name ILIKE '%'||$3||'%' OR last_name ILIKE '%'||$3||'%' OR employee_code ILIKE '%'||$3||'%')
ORDER BY created_at DESC
LIMIT $4 OFFSET $5`, filter.OutletID, string(filter.Status), filter.Search, page.PerPage, page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	employees := []Employee{}
	total := 0
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.EmployeeCode, &e.FirstName, &e.LastName, &e.Email, &e.Phone, &e.Position, &e.Department, &e.OutletID, &e.Status, &e.JoinDate, &e.ContractEnd, &e.Salary, &e.CreatedAt, &e.UpdatedAt, &total); err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// GetEmployee fetches one employee by id.
func (r *Repository) GetEmployee(ctx context.Context, id string) (Employee, error) {
	e, err := scanEmployee(r.pool.QueryRow(ctx, `SELECT `+employeeColumns+` FROM employees WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Employee{}, shared.ErrNotFound
		}
		return Employee{}, err
	}
	return e, nil
}

// CreateEmployee inserts a new employee.
func (r *Repository) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	e.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO employees (id, employee_code, first_name, last_name, email, phone, position, department, outlet_id, status, join_date, contract_end, salary, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$14)`,
		e.ID, e.EmployeeCode, e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.Department, e.OutletID, string(e.Status), e.JoinDate, e.ContractEnd, e.Salary, now)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrEmployeeExists
		}
		return Employee{}, err
	}
	e.CreatedAt = now
	e.UpdatedAt = now
	return e, nil
}

// UpdateEmployee updates mutable employee fields.
func (r *Repository) UpdateEmployee(ctx context.Context, e Employee) (Employee, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE employees
SET first_name=$2, last_name=$3, email=$4, phone=$5, position=$6, department=$7, outlet_id=$8, status=$9, contract_end=$10, salary=$11, updated_at=NOW()
WHERE id=$1`,
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Position, e.Department, e.OutletID, string(e.Status), e.ContractEnd, e.Salary)
	if err != nil {
		if isUniqueViolation(err) {
			return Employee{}, ErrEmployeeExists
		}
		return Employee{}, err
	}
	if tag.RowsAffected() == 0 {
		return Employee{}, shared.ErrNotFound
	}
	return r.GetEmployee(ctx, e.ID)
}

// ListAttendance returns attendance records matching the filter.
func (r *Repository) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, employee_id, outlet_id, date, check_in_time, check_out_time, status, shift, notes, created_at, updated_at
FROM attendance
WHERE ($1 = '' OR outlet_id = $1)
  AND ($2 = '' OR employee_id = $2)
  AND date BETWEEN COALESCE($3, '-infinity') AND COALESCE($4, 'infinity')
ORDER BY date DESC, created_at DESC
LIMIT 500`, filter.OutletID, filter.EmployeeID, nullTime(filter.From), nullTime(filter.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []Attendance{}
	for rows.Next() {
		var a Attendance
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.OutletID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.Status, &a.Shift, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// GetAttendance fetches one attendance record.
func (r *Repository) GetAttendance(ctx context.Context, id string) (Attendance, error) {
	var a Attendance
	err := r.pool.QueryRow(ctx, `SELECT id, employee_id, outlet_id, date, check_in_time, check_out_time, status, shift, notes, created_at, updated_at
FROM attendance WHERE id = $1`, id).
		Scan(&a.ID, &a.EmployeeID, &a.OutletID, &a.Date, &a.CheckInTime, &a.CheckOutTime, &a.Status, &a.Shift, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Attendance{}, shared.ErrNotFound
		}
		return Attendance{}, err
	}
	return a, nil
}

// CreateAttendance inserts a new attendance record.
func (r *Repository) CreateAttendance(ctx context.Context, a Attendance) (Attendance, error) {
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	_, err := r.pool.Exec(ctx, `INSERT INTO attendance (id, employee_id, outlet_id, date, check_in_time, check_out_time, status, shift, notes, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$10)`,
		a.ID, a.EmployeeID, a.OutletID, a.Date, a.CheckInTime, a.CheckOutTime, string(a.Status), string(a.Shift), a.Notes, now)
	if err != nil {
		return Attendance{}, err
	}
	a.CreatedAt = now
	a.UpdatedAt = now
	return a, nil
}

// SetCheckOut stamps the checkout time on a record.
func (r *Repository) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `UPDATE attendance SET check_out_time=$2, updated_at=NOW() WHERE id=$1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
