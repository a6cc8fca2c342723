package catalog

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	menu     map[string]MenuItem
	products map[string]RetailProduct
	nextID   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{menu: make(map[string]MenuItem), products: make(map[string]RetailProduct)}
}

func (r *memoryRepo) ListMenuItems(ctx context.Context, filter Filter) ([]MenuItem, error) {
	result := []MenuItem{}
	for _, m := range r.menu {
		result = append(result, m)
	}
	return result, nil
}

func (r *memoryRepo) GetMenuItem(ctx context.Context, id string) (MenuItem, error) {
	m, ok := r.menu[id]
	if !ok {
		return MenuItem{}, shared.ErrNotFound
	}
	return m, nil
}

func (r *memoryRepo) CreateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	r.nextID++
	m.ID = "mn-" + strconv.Itoa(r.nextID)
	r.menu[m.ID] = m
	return m, nil
}

func (r *memoryRepo) UpdateMenuItem(ctx context.Context, m MenuItem) (MenuItem, error) {
	if _, ok := r.menu[m.ID]; !ok {
		return MenuItem{}, shared.ErrNotFound
	}
	r.menu[m.ID] = m
	return m, nil
}

func (r *memoryRepo) ListProducts(ctx context.Context, filter Filter) ([]RetailProduct, error) {
	result := []RetailProduct{}
	for _, p := range r.products {
		result = append(result, p)
	}
	return result, nil
}

func (r *memoryRepo) GetProduct(ctx context.Context, id string) (RetailProduct, error) {
	p, ok := r.products[id]
	if !ok {
		return RetailProduct{}, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) CreateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error) {
	for _, existing := range r.products {
		if p.SKU != "" && existing.SKU == p.SKU {
			return RetailProduct{}, ErrSKUExists
		}
	}
	r.nextID++
	p.ID = "rp-" + strconv.Itoa(r.nextID)
	r.products[p.ID] = p
	return p, nil
}

func (r *memoryRepo) UpdateProduct(ctx context.Context, p RetailProduct) (RetailProduct, error) {
	if _, ok := r.products[p.ID]; !ok {
		return RetailProduct{}, shared.ErrNotFound
	}
	r.products[p.ID] = p
	return p, nil
}

func TestCreateMenuItemDerivesMargin(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	m, err := svc.CreateMenuItem(context.Background(), MenuItem{
		Name:         "Gudeg Komplit",
		Category:     "Main Course",
		SellingPrice: 45_000,
		HPP:          27_000,
		// Caller-supplied margins are ignored.
		ProfitMargin: 99,
	}, "u-1")
	require.NoError(t, err)
	require.InDelta(t, 40, m.ProfitMargin, 0.001)
	require.Equal(t, StatusActive, m.Status)
}

func TestMenuMarginZeroWhenUnpriced(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	m, err := svc.CreateMenuItem(context.Background(), MenuItem{
		Name:     "Es Teh",
		Category: "Beverage",
	}, "u-1")
	require.NoError(t, err)
	require.Zero(t, m.ProfitMargin)
}

func TestCreateMenuItemRequiresName(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.CreateMenuItem(context.Background(), MenuItem{Name: " ", Category: "Main Course"}, "u-1")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestCreateProductDerivesMargin(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	p, err := svc.CreateProduct(context.Background(), RetailProduct{
		Name:          "Kopi Bubuk 250g",
		Category:      "Retail",
		SKU:           "KB-250",
		SellingPrice:  60_000,
		PurchasePrice: 42_000,
		Stock:         20,
		MinStock:      5,
	}, "u-1")
	require.NoError(t, err)
	require.InDelta(t, 30, p.ProfitMargin, 0.001)
	require.False(t, p.LowStock())
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, RetailProduct{Name: "A", Category: "Retail", SKU: "X-1"}, "u-1")
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, RetailProduct{Name: "B", Category: "Retail", SKU: "X-1"}, "u-1")
	require.ErrorIs(t, err, ErrSKUExists)
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.CreateProduct(context.Background(), RetailProduct{
		Name: "B", Category: "Retail", PurchasePrice: -1,
	}, "u-1")
	require.ErrorIs(t, err, ErrNegativePrice)
}
