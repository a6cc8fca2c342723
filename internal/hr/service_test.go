package hr

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	employees  map[string]Employee
	attendance map[string]Attendance
	nextID     int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{employees: make(map[string]Employee), attendance: make(map[string]Attendance)}
}

func (r *memoryRepo) id() string {
	r.nextID++
	return "id-" + strconv.Itoa(r.nextID)
}

func (r *memoryRepo) ListEmployees(ctx context.Context, filter EmployeeFilter, page shared.Pagination) ([]Employee, int, error) {
	result := []Employee{}
	for _, e := range r.employees {
		if filter.OutletID != "" && e.OutletID != filter.OutletID {
			continue
		}
		result = append(result, e)
	}
	return result, len(result), nil
}

func (r *memoryRepo) GetEmployee(ctx context.Context, id string) (Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return Employee{}, shared.ErrNotFound
	}
	return e, nil
}

func (r *memoryRepo) CreateEmployee(ctx context.Context, e Employee) (Employee, error) {
	for _, existing := range r.employees {
		if existing.Email == e.Email {
			return Employee{}, ErrEmployeeExists
		}
	}
	e.ID = r.id()
	r.employees[e.ID] = e
	return e, nil
}

func (r *memoryRepo) UpdateEmployee(ctx context.Context, e Employee) (Employee, error) {
	if _, ok := r.employees[e.ID]; !ok {
		return Employee{}, shared.ErrNotFound
	}
	r.employees[e.ID] = e
	return e, nil
}

func (r *memoryRepo) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error) {
	result := []Attendance{}
	for _, a := range r.attendance {
		if filter.OutletID != "" && a.OutletID != filter.OutletID {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *memoryRepo) GetAttendance(ctx context.Context, id string) (Attendance, error) {
	a, ok := r.attendance[id]
	if !ok {
		return Attendance{}, shared.ErrNotFound
	}
	return a, nil
}

func (r *memoryRepo) CreateAttendance(ctx context.Context, a Attendance) (Attendance, error) {
	a.ID = r.id()
	r.attendance[a.ID] = a
	return a, nil
}

func (r *memoryRepo) SetCheckOut(ctx context.Context, id string, at time.Time) error {
	a, ok := r.attendance[id]
	if !ok {
		return shared.ErrNotFound
	}
	a.CheckOutTime = &at
	r.attendance[id] = a
	return nil
}

func TestCreateEmployeeGeneratesCode(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	employee, err := svc.CreateEmployee(context.Background(), Employee{
		FirstName: "Siti",
		LastName:  "Nurhaliza",
		Email:     "siti@appubr.com",
		OutletID:  "o-1",
	}, "actor-1")
	require.NoError(t, err)
	require.Len(t, employee.EmployeeCode, 5)
	require.Equal(t, "SN", employee.EmployeeCode[:2])
	require.Equal(t, EmployeeActive, employee.Status)
	require.False(t, employee.JoinDate.IsZero())
}

func TestCreateEmployeeRequiresFields(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.CreateEmployee(context.Background(), Employee{FirstName: "Siti"}, "actor-1")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestCreateEmployeeDuplicateEmail(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateEmployee(ctx, Employee{FirstName: "Siti", LastName: "Nurhaliza", Email: "siti@appubr.com", OutletID: "o-1"}, "a")
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, Employee{FirstName: "Sinta", LastName: "Nugraha", Email: "siti@appubr.com", OutletID: "o-1"}, "a")
	require.ErrorIs(t, err, ErrEmployeeExists)
}

func TestCheckInDefaults(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	record, err := svc.CheckIn(context.Background(), Attendance{EmployeeID: "e-1", OutletID: "o-1"}, "a")
	require.NoError(t, err)
	require.Equal(t, AttendancePresent, record.Status)
	require.Equal(t, ShiftFullDay, record.Shift)
	require.NotNil(t, record.CheckInTime)
	require.Nil(t, record.CheckOutTime)
}

func TestCheckOutIsIdempotentGuarded(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	record, err := svc.CheckIn(ctx, Attendance{EmployeeID: "e-1", OutletID: "o-1"}, "a")
	require.NoError(t, err)

	out, err := svc.CheckOut(ctx, record.ID, "a")
	require.NoError(t, err)
	require.NotNil(t, out.CheckOutTime)

	_, err = svc.CheckOut(ctx, record.ID, "a")
	require.ErrorIs(t, err, ErrAlreadyCheckedOut)
}
