package bookings

import (
	"errors"
	"time"
)

// Type enumerates the bookable facilities.
type Type string

const (
	TypeIndoorDining         Type = "INDOOR_DINING"
	TypeOutdoorDining        Type = "OUTDOOR_DINING"
	TypeIndoorLesehan        Type = "INDOOR_LESEHAN"
	TypeOutdoorLesehan       Type = "OUTDOOR_LESEHAN"
	TypeSingingRoom          Type = "SINGING_ROOM"
	TypePuspawarnaAuditorium Type = "PUSPAWARNA_AUDITORIUM"
	TypePuspawarnaClassRoom  Type = "PUSPAWARNA_CLASS_ROOM"
)

// Status enumerates the booking lifecycle.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions guards the status lifecycle. Cancelling is allowed
// from any non-terminal state.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is valid.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Booking reserves a facility at one outlet for a customer.
type Booking struct {
	ID              string
	OutletID        string
	Type            Type
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Date            time.Time
	StartTime       time.Time
	EndTime         time.Time
	Participants    int
	TotalAmount     float64
	DepositAmount   float64
	Status          Status
	Notes           string
	SpecialRequests string
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter narrows booking listings.
type Filter struct {
	OutletID string
	Status   Status
	Type     Type
	From     time.Time
	To       time.Time
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("bookings: required field missing")
	// ErrInvalidTimeRange indicates the end does not follow the start.
	ErrInvalidTimeRange = errors.New("bookings: end time must be after start time")
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = errors.New("bookings: invalid status transition")
	// ErrOverlap indicates a conflicting confirmed booking for the slot.
	ErrOverlap = errors.New("bookings: facility already booked for this time")
)
