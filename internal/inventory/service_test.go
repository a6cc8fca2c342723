package inventory

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	items  map[string]Item
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[string]Item)}
}

func (r *memoryRepo) List(ctx context.Context, filter Filter, page shared.Pagination) ([]Item, int, error) {
	result := []Item{}
	for _, item := range r.items {
		if filter.OutletID != "" && item.OutletID != filter.OutletID {
			continue
		}
		if filter.LowStock && !item.LowStock() {
			continue
		}
		result = append(result, item)
	}
	return result, len(result), nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Item, error) {
	item, ok := r.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	return item, nil
}

func (r *memoryRepo) Create(ctx context.Context, item Item) (Item, error) {
	for _, existing := range r.items {
		if item.SKU != "" && existing.OutletID == item.OutletID && existing.SKU == item.SKU {
			return Item{}, ErrSKUExists
		}
	}
	r.nextID++
	item.ID = "inv-" + strconv.Itoa(r.nextID)
	r.items[item.ID] = item
	return item, nil
}

func (r *memoryRepo) Update(ctx context.Context, item Item) (Item, error) {
	if _, ok := r.items[item.ID]; !ok {
		return Item{}, shared.ErrNotFound
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *memoryRepo) SetQuantity(ctx context.Context, id string, quantity float64, restocked bool) (Item, error) {
	item, ok := r.items[id]
	if !ok {
		return Item{}, shared.ErrNotFound
	}
	item.Quantity = quantity
	if restocked {
		now := time.Now().UTC()
		item.LastRestocked = &now
	}
	r.items[id] = item
	return item, nil
}

func (r *memoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memoryRepo) ListLowStock(ctx context.Context, outletID string) ([]Item, error) {
	result := []Item{}
	for _, item := range r.items {
		if outletID != "" && item.OutletID != outletID {
			continue
		}
		if item.LowStock() {
			result = append(result, item)
		}
	}
	return result, nil
}

func validItem() Item {
	return Item{
		OutletID: "o-1",
		Name:     "Beras Premium",
		Category: "Bahan Baku",
		Unit:     "kg",
		Quantity: 40,
		MinStock: 10,
	}
}

func TestCreateDefaultsCondition(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	item, err := svc.Create(context.Background(), validItem(), "u-1")
	require.NoError(t, err)
	require.Equal(t, ConditionGood, item.Condition)
	require.NotEmpty(t, item.ID)
}

func TestCreateRequiresFields(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	item := validItem()
	item.Unit = "   "
	_, err := svc.Create(context.Background(), item, "u-1")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestCreateRejectsDuplicateSKU(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	first := validItem()
	first.SKU = "BRS-001"
	_, err := svc.Create(ctx, first, "u-1")
	require.NoError(t, err)

	second := validItem()
	second.SKU = "BRS-001"
	_, err = svc.Create(ctx, second, "u-1")
	require.ErrorIs(t, err, ErrSKUExists)
}

func TestAdjustStampsRestockOnIncrease(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	item, err := svc.Create(ctx, validItem(), "u-1")
	require.NoError(t, err)
	require.Nil(t, item.LastRestocked)

	lowered, err := svc.Adjust(ctx, item.ID, 5, "u-1")
	require.NoError(t, err)
	require.Nil(t, lowered.LastRestocked)
	require.True(t, lowered.LowStock())

	raised, err := svc.Adjust(ctx, item.ID, 50, "u-1")
	require.NoError(t, err)
	require.NotNil(t, raised.LastRestocked)
	require.False(t, raised.LowStock())
}

func TestAdjustRejectsNegative(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Adjust(context.Background(), "inv-1", -1, "u-1")
	require.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestLowStockListing(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	ok := validItem()
	_, err := svc.Create(ctx, ok, "u-1")
	require.NoError(t, err)

	low := validItem()
	low.Name = "Gula Pasir"
	low.Quantity = 3
	_, err = svc.Create(ctx, low, "u-1")
	require.NoError(t, err)

	items, err := svc.LowStock(ctx, "o-1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Gula Pasir", items[0].Name)
}
