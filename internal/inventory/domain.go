package inventory

import (
	"errors"
	"time"
)

// Condition enumerates the physical state of an item.
type Condition string

const (
	ConditionGood        Condition = "GOOD"
	ConditionDamaged     Condition = "DAMAGED"
	ConditionMaintenance Condition = "MAINTENANCE"
)

// Item is a stocked good or asset belonging to one outlet.
type Item struct {
	ID            string
	OutletID      string
	Name          string
	Description   string
	Category      string
	SKU           string
	Barcode       string
	Quantity      float64
	Unit          string
	MinStock      float64
	MaxStock      *float64
	PurchasePrice float64
	SellingPrice  float64
	Location      string
	Condition     Condition
	Notes         string
	LastRestocked *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock reports whether the item has fallen to or below its minimum.
func (i Item) LowStock() bool {
	return i.Quantity <= i.MinStock
}

// Filter narrows item listings.
type Filter struct {
	OutletID string
	Category string
	Search   string
	LowStock bool
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("inventory: required field missing")
	// ErrNegativeQuantity indicates a stock amount below zero.
	ErrNegativeQuantity = errors.New("inventory: quantity must be >= 0")
	// ErrSKUExists indicates a duplicate SKU within an outlet.
	ErrSKUExists = errors.New("inventory: sku already registered")
)
