package hr

import (
	"errors"
	"time"
)

// EmployeeStatus enumerates employment states.
type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "ACTIVE"
	EmployeeInactive   EmployeeStatus = "INACTIVE"
	EmployeeOnLeave    EmployeeStatus = "ON_LEAVE"
	EmployeeTerminated EmployeeStatus = "TERMINATED"
)

// AttendanceStatus enumerates daily attendance outcomes.
type AttendanceStatus string

const (
	AttendancePresent     AttendanceStatus = "PRESENT"
	AttendanceAbsent      AttendanceStatus = "ABSENT"
	AttendanceLate        AttendanceStatus = "LATE"
	AttendanceSickLeave   AttendanceStatus = "SICK_LEAVE"
	AttendanceAnnualLeave AttendanceStatus = "ANNUAL_LEAVE"
)

// WorkShift enumerates the outlet shifts.
type WorkShift string

const (
	ShiftMorning WorkShift = "MORNING"
	ShiftEvening WorkShift = "EVENING"
	ShiftNight   WorkShift = "NIGHT"
	ShiftFullDay WorkShift = "FULL_DAY"
)

// Employee is a staff record affiliated with exactly one outlet.
type Employee struct {
	ID           string
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Position     string
	Department   string
	OutletID     string
	Status       EmployeeStatus
	JoinDate     time.Time
	ContractEnd  *time.Time
	Salary       float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Attendance is one employee's record for one date and shift.
type Attendance struct {
	ID           string
	EmployeeID   string
	OutletID     string
	Date         time.Time
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	Status       AttendanceStatus
	Shift        WorkShift
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeFilter narrows employee listings. An empty OutletID means all
// outlets; the route guard fills it in for outlet-scoped roles.
type EmployeeFilter struct {
	OutletID string
	Status   EmployeeStatus
	Search   string
}

// AttendanceFilter narrows attendance listings.
type AttendanceFilter struct {
	OutletID   string
	EmployeeID string
	From       time.Time
	To         time.Time
}

var (
	// ErrEmployeeExists indicates a duplicate email or employee code.
	ErrEmployeeExists = errors.New("hr: employee already exists")
	// ErrAlreadyCheckedOut indicates a second checkout on the same record.
	ErrAlreadyCheckedOut = errors.New("hr: attendance already checked out")
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("hr: required field missing")
)
