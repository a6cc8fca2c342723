package projects

import (
	"errors"
	"time"
)

// Type enumerates the project programs the business runs.
type Type string

const (
	TypeMarketingProgram   Type = "MARKETING_PROGRAM"
	TypeCRMProgram         Type = "CRM_PROGRAM"
	TypeNewMenuDevelopment Type = "NEW_MENU_DEVELOPMENT"
)

// Status enumerates the project lifecycle.
type Status string

const (
	StatusPlanning   Status = "PLANNING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusOnHold     Status = "ON_HOLD"
	StatusCancelled  Status = "CANCELLED"
)

// Project is an internal program with budget and progress tracking.
type Project struct {
	ID           string
	Title        string
	Description  string
	Type         Type
	Status       Status
	StartDate    time.Time
	EndDate      *time.Time
	Budget       float64
	ActualCost   float64
	Progress     int
	ManagerID    string
	TeamMembers  []string
	Deliverables []string
	Risks        string
	Mitigation   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OverBudget reports whether spending has exceeded the budget.
func (p Project) OverBudget() bool {
	return p.Budget > 0 && p.ActualCost > p.Budget
}

// Filter narrows project listings.
type Filter struct {
	Type      Type
	Status    Status
	ManagerID string
	Search    string
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("projects: required field missing")
	// ErrInvalidProgress indicates progress outside 0-100.
	ErrInvalidProgress = errors.New("projects: progress must be between 0 and 100")
	// ErrInvalidDateRange indicates an end date before the start.
	ErrInvalidDateRange = errors.New("projects: end date must not precede start date")
)
