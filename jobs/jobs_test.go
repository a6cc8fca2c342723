package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/finance"
	"github.com/appubr/backoffice/internal/inventory"
	"github.com/appubr/backoffice/internal/shared"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type financeRepoStub struct {
	summaries map[string]finance.MonthlySummary
	calls     []string
}

func (s *financeRepoStub) List(ctx context.Context, filter finance.Filter) ([]finance.Record, error) {
	return nil, nil
}

func (s *financeRepoStub) Get(ctx context.Context, id string) (finance.Record, error) {
	return finance.Record{}, shared.ErrNotFound
}

func (s *financeRepoStub) Create(ctx context.Context, rec finance.Record) (finance.Record, error) {
	return rec, nil
}

func (s *financeRepoStub) SetApproval(ctx context.Context, id, approvedBy string, status finance.RecordStatus, at time.Time) error {
	return nil
}

func (s *financeRepoStub) MonthlySummary(ctx context.Context, outletID, month string) (finance.MonthlySummary, error) {
	s.calls = append(s.calls, outletID)
	return s.summaries[outletID], nil
}

type outletListerStub struct {
	ids []string
}

func (s *outletListerStub) OutletIDs(ctx context.Context) ([]string, error) {
	return s.ids, nil
}

func TestFinanceRollupCoversAllOutlets(t *testing.T) {
	repo := &financeRepoStub{summaries: map[string]finance.MonthlySummary{
		"":    {Month: "2026-08", NetProfit: 500},
		"o-1": {Month: "2026-08", NetProfit: 300},
		"o-2": {Month: "2026-08", NetProfit: 200},
	}}
	job := NewFinanceRollupJob(
		finance.NewService(repo, nil),
		nil,
		&outletListerStub{ids: []string{"o-1", "o-2"}},
		testLogger(),
		nil,
	)

	task, err := NewFinanceRollupTask("2026-08")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	require.Equal(t, []string{"", "o-1", "o-2"}, repo.calls)
}

func TestFinanceRollupRejectsBadPayload(t *testing.T) {
	job := NewFinanceRollupJob(finance.NewService(&financeRepoStub{}, nil), nil, nil, testLogger(), nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskFinanceRollup, []byte("{not json")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

type inventoryRepoStub struct {
	low []inventory.Item
}

func (s *inventoryRepoStub) List(ctx context.Context, filter inventory.Filter, page shared.Pagination) ([]inventory.Item, int, error) {
	return nil, 0, nil
}

func (s *inventoryRepoStub) Get(ctx context.Context, id string) (inventory.Item, error) {
	return inventory.Item{}, shared.ErrNotFound
}

func (s *inventoryRepoStub) Create(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	return item, nil
}

func (s *inventoryRepoStub) Update(ctx context.Context, item inventory.Item) (inventory.Item, error) {
	return item, nil
}

func (s *inventoryRepoStub) SetQuantity(ctx context.Context, id string, quantity float64, restocked bool) (inventory.Item, error) {
	return inventory.Item{}, shared.ErrNotFound
}

func (s *inventoryRepoStub) Delete(ctx context.Context, id string) error {
	return nil
}

func (s *inventoryRepoStub) ListLowStock(ctx context.Context, outletID string) ([]inventory.Item, error) {
	return s.low, nil
}

func TestLowStockScanFlagsItems(t *testing.T) {
	repo := &inventoryRepoStub{low: []inventory.Item{
		{ID: "inv-1", Name: "Beras", Quantity: 2, MinStock: 10},
	}}
	job := NewLowStockScanJob(inventory.NewService(repo, nil), nil, testLogger(), nil)

	task, err := NewLowStockScanTask("o-1")
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
}
