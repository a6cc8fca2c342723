package activity

import (
	"errors"
	"time"
)

// TaskStatus enumerates the task lifecycle.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskSkipped    TaskStatus = "SKIPPED"
)

// Priority enumerates task urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Log records one operational task at an outlet. The kWh reading is set
// for utility meter checks.
type Log struct {
	ID          string
	OutletID    string
	EmployeeID  string
	Date        time.Time
	TaskType    string
	TaskName    string
	Description string
	Status      TaskStatus
	Priority    Priority
	CompletedAt *time.Time
	PhotoURLs   []string
	KwhReading  *float64
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Filter narrows activity listings.
type Filter struct {
	OutletID   string
	EmployeeID string
	Status     TaskStatus
	TaskType   string
	From       time.Time
	To         time.Time
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("activity: required field missing")
	// ErrAlreadyCompleted indicates a second completion attempt.
	ErrAlreadyCompleted = errors.New("activity: task already completed")
)
