package catalog

import (
	"errors"
	"time"
)

// ItemStatus enumerates catalog availability.
type ItemStatus string

const (
	StatusActive   ItemStatus = "ACTIVE"
	StatusInactive ItemStatus = "INACTIVE"
)

// MenuItem is a kitchen menu entry. HPP (harga pokok penjualan) is the
// cost of goods for one serving; the margin is derived from it.
type MenuItem struct {
	ID           string
	Name         string
	Description  string
	Category     string
	SellingPrice float64
	HPP          float64
	ProfitMargin float64
	Ingredients  []string
	Allergens    []string
	Status       ItemStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DeriveMargin recomputes the profit margin percentage from price and HPP.
func (m *MenuItem) DeriveMargin() {
	if m.SellingPrice <= 0 {
		m.ProfitMargin = 0
		return
	}
	m.ProfitMargin = (m.SellingPrice - m.HPP) / m.SellingPrice * 100
}

// RetailProduct is a resale good tracked with its own stock level,
// independent of outlet inventory.
type RetailProduct struct {
	ID            string
	Name          string
	Description   string
	Category      string
	SKU           string
	Barcode       string
	SellingPrice  float64
	PurchasePrice float64
	ProfitMargin  float64
	Stock         float64
	MinStock      float64
	Supplier      string
	Status        ItemStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DeriveMargin recomputes the profit margin percentage from the prices.
func (p *RetailProduct) DeriveMargin() {
	if p.SellingPrice <= 0 {
		p.ProfitMargin = 0
		return
	}
	p.ProfitMargin = (p.SellingPrice - p.PurchasePrice) / p.SellingPrice * 100
}

// LowStock reports whether the product has fallen to or below its minimum.
func (p RetailProduct) LowStock() bool {
	return p.Stock <= p.MinStock
}

// Filter narrows catalog listings.
type Filter struct {
	Category string
	Status   ItemStatus
	Search   string
}

var (
	// ErrMissingField indicates invalid input.
	ErrMissingField = errors.New("catalog: required field missing")
	// ErrNegativePrice indicates a price or cost below zero.
	ErrNegativePrice = errors.New("catalog: prices must be >= 0")
	// ErrSKUExists indicates a duplicate retail SKU.
	ErrSKUExists = errors.New("catalog: sku already registered")
)
