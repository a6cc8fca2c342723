package finance

import (
	"errors"
	"time"
)

// RecordStatus enumerates the approval lifecycle of a daily record.
type RecordStatus string

const (
	StatusPending  RecordStatus = "PENDING"
	StatusApproved RecordStatus = "APPROVED"
	StatusRejected RecordStatus = "REJECTED"
)

// Record is one outlet's financial result for a date and shift. The total
// and net fields are always derived from the components, never accepted
// from input.
type Record struct {
	ID                 string
	OutletID           string
	Date               time.Time
	Shift              string
	CashierID          string
	RevenueDineIn      float64
	RevenueTakeaway    float64
	RevenueOnline      float64
	RevenueFacility    float64
	TotalRevenue       float64
	ExpenseStock       float64
	ExpenseUtilities   float64
	ExpenseStaffMeals  float64
	ExpenseMaintenance float64
	ExpenseOther       float64
	TotalExpense       float64
	NetProfit          float64
	CustomerCount      int
	TransactionCount   int
	Notes              string
	Status             RecordStatus
	ApprovedBy         string
	ApprovedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Derive recomputes the dependent totals from the components.
func (r *Record) Derive() {
	r.TotalRevenue = r.RevenueDineIn + r.RevenueTakeaway + r.RevenueOnline + r.RevenueFacility
	r.TotalExpense = r.ExpenseStock + r.ExpenseUtilities + r.ExpenseStaffMeals + r.ExpenseMaintenance + r.ExpenseOther
	r.NetProfit = r.TotalRevenue - r.TotalExpense
}

// Filter narrows record listings.
type Filter struct {
	OutletID string
	Status   RecordStatus
	From     time.Time
	To       time.Time
}

// MonthlySummary aggregates one calendar month.
type MonthlySummary struct {
	Month        string
	TotalRevenue float64
	TotalExpense float64
	NetProfit    float64
}

var (
	// ErrNegativeAmount indicates a component below zero.
	ErrNegativeAmount = errors.New("finance: amounts must be >= 0")
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("finance: required field missing")
	// ErrAlreadyApproved indicates a second approval attempt.
	ErrAlreadyApproved = errors.New("finance: record already approved")
)
