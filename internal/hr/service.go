package hr

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/appubr/backoffice/internal/shared"
)

// RepositoryPort defines data access methods used by the service.
type RepositoryPort interface {
	ListEmployees(ctx context.Context, filter EmployeeFilter, page shared.Pagination) ([]Employee, int, error)
	GetEmployee(ctx context.Context, id string) (Employee, error)
	CreateEmployee(ctx context.Context, e Employee) (Employee, error)
	UpdateEmployee(ctx context.Context, e Employee) (Employee, error)
	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error)
	GetAttendance(ctx context.Context, id string) (Attendance, error)
	CreateAttendance(ctx context.Context, a Attendance) (Attendance, error)
	SetCheckOut(ctx context.Context, id string, at time.Time) error
}

// Service handles hr business logic.
type Service struct {
	repo  RepositoryPort
	audit *shared.AuditLogger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, audit *shared.AuditLogger) *Service {
	return &Service{repo: repo, audit: audit}
}

// ListEmployees returns employees matching the filter.
func (s *Service) ListEmployees(ctx context.Context, filter EmployeeFilter, page shared.Pagination) ([]Employee, int, error) {
	return s.repo.ListEmployees(ctx, filter, page)
}

// GetEmployee fetches one employee.
func (s *Service) GetEmployee(ctx context.Context, id string) (Employee, error) {
	return s.repo.GetEmployee(ctx, id)
}

// CreateEmployee validates and stores a new employee, assigning an employee
// code from the person's initials plus a random three-digit suffix.
func (s *Service) CreateEmployee(ctx context.Context, e Employee, actorID string) (Employee, error) {
	e.FirstName = strings.TrimSpace(e.FirstName)
	e.LastName = strings.TrimSpace(e.LastName)
	e.Email = strings.TrimSpace(e.Email)
	if e.FirstName == "" || e.LastName == "" || e.Email == "" || e.OutletID == "" {
		return Employee{}, ErrMissingField
	}
	if e.Status == "" {
		e.Status = EmployeeActive
	}
	if e.JoinDate.IsZero() {
		e.JoinDate = time.Now().UTC()
	}
	if e.EmployeeCode == "" {
		e.EmployeeCode = generateEmployeeCode(e.FirstName, e.LastName)
	}

	created, err := s.repo.CreateEmployee(ctx, e)
	if err != nil {
		return Employee{}, err
	}
	s.record(ctx, actorID, "employee.create", "employee", created.ID)
	return created, nil
}

// UpdateEmployee stores changed employee fields.
func (s *Service) UpdateEmployee(ctx context.Context, e Employee, actorID string) (Employee, error) {
	if e.ID == "" {
		return Employee{}, ErrMissingField
	}
	updated, err := s.repo.UpdateEmployee(ctx, e)
	if err != nil {
		return Employee{}, err
	}
	s.record(ctx, actorID, "employee.update", "employee", updated.ID)
	return updated, nil
}

// ListAttendance returns attendance records matching the filter.
func (s *Service) ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, error) {
	return s.repo.ListAttendance(ctx, filter)
}

// CheckIn records a new attendance entry with the check-in time stamped.
func (s *Service) CheckIn(ctx context.Context, a Attendance, actorID string) (Attendance, error) {
	if a.EmployeeID == "" || a.OutletID == "" {
		return Attendance{}, ErrMissingField
	}
	if a.Status == "" {
		a.Status = AttendancePresent
	}
	if a.Shift == "" {
		a.Shift = ShiftFullDay
	}
	now := time.Now().UTC()
	if a.Date.IsZero() {
		a.Date = now.Truncate(24 * time.Hour)
	}
	if a.CheckInTime == nil {
		a.CheckInTime = &now
	}
	created, err := s.repo.CreateAttendance(ctx, a)
	if err != nil {
		return Attendance{}, err
	}
	s.record(ctx, actorID, "attendance.check_in", "attendance", created.ID)
	return created, nil
}

// CheckOut stamps the checkout time on an open attendance record.
func (s *Service) CheckOut(ctx context.Context, id string, actorID string) (Attendance, error) {
	record, err := s.repo.GetAttendance(ctx, id)
	if err != nil {
		return Attendance{}, err
	}
	if record.CheckOutTime != nil {
		return Attendance{}, ErrAlreadyCheckedOut
	}
	now := time.Now().UTC()
	if err := s.repo.SetCheckOut(ctx, id, now); err != nil {
		return Attendance{}, err
	}
	record.CheckOutTime = &now
	s.record(ctx, actorID, "attendance.check_out", "attendance", id)
	return record, nil
}

func (s *Service) record(ctx context.Context, actorID, action, entity, entityID string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.SystemLog{ActorID: actorID, Action: action, Entity: entity, EntityID: entityID})
}

func generateEmployeeCode(firstName, lastName string) string {
	initials := strings.ToUpper(firstName[:1] + lastName[:1])
	return fmt.Sprintf("%s%03d", initials, rand.IntN(1000))
}
