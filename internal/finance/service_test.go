package finance

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	records map[string]Record
	nextID  int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{records: make(map[string]Record)}
}

func (r *memoryRepo) List(ctx context.Context, filter Filter) ([]Record, error) {
	result := []Record{}
	for _, rec := range r.records {
		if filter.OutletID != "" && rec.OutletID != filter.OutletID {
			continue
		}
		result = append(result, rec)
	}
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, shared.ErrNotFound
	}
	return rec, nil
}

func (r *memoryRepo) Create(ctx context.Context, rec Record) (Record, error) {
	r.nextID++
	rec.ID = "fr-" + strconv.Itoa(r.nextID)
	r.records[rec.ID] = rec
	return rec, nil
}

func (r *memoryRepo) SetApproval(ctx context.Context, id, approvedBy string, status RecordStatus, at time.Time) error {
	rec, ok := r.records[id]
	if !ok {
		return shared.ErrNotFound
	}
	rec.Status = status
	rec.ApprovedBy = approvedBy
	rec.ApprovedAt = &at
	r.records[id] = rec
	return nil
}

func (r *memoryRepo) MonthlySummary(ctx context.Context, outletID, month string) (MonthlySummary, error) {
	summary := MonthlySummary{Month: month}
	for _, rec := range r.records {
		if outletID != "" && rec.OutletID != outletID {
			continue
		}
		if rec.Date.Format("2006-01") != month {
			continue
		}
		summary.TotalRevenue += rec.TotalRevenue
		summary.TotalExpense += rec.TotalExpense
		summary.NetProfit += rec.NetProfit
	}
	return summary, nil
}

func day(value string) time.Time {
	parsed, _ := time.Parse("2006-01-02", value)
	return parsed
}

func TestCreateDerivesTotals(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	rec, err := svc.Create(context.Background(), Record{
		OutletID:        "o-1",
		Date:            day("2026-08-01"),
		Shift:           "MORNING",
		RevenueDineIn:   2_500_000,
		RevenueTakeaway: 750_000,
		RevenueOnline:   400_000,
		ExpenseStock:    1_200_000,
		ExpenseOther:    150_000,
		// A caller-supplied total must be overwritten.
		TotalRevenue: 999,
	}, "cashier-1")
	require.NoError(t, err)
	require.InDelta(t, 3_650_000, rec.TotalRevenue, 0.001)
	require.InDelta(t, 1_350_000, rec.TotalExpense, 0.001)
	require.InDelta(t, 2_300_000, rec.NetProfit, 0.001)
	require.Equal(t, StatusPending, rec.Status)
	require.Equal(t, "cashier-1", rec.CashierID)
}

func TestCreateRejectsNegativeAmounts(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Create(context.Background(), Record{
		OutletID:     "o-1",
		Date:         day("2026-08-01"),
		Shift:        "MORNING",
		ExpenseOther: -1,
	}, "c")
	require.ErrorIs(t, err, ErrNegativeAmount)
}

func TestApproveOnce(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	rec, err := svc.Create(ctx, Record{OutletID: "o-1", Date: day("2026-08-01"), Shift: "EVENING"}, "c")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, rec.ID, "manager-1")
	require.NoError(t, err)
	require.Equal(t, StatusApproved, approved.Status)
	require.Equal(t, "manager-1", approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	_, err = svc.Approve(ctx, rec.ID, "manager-1")
	require.ErrorIs(t, err, ErrAlreadyApproved)
}

func TestMonthlySummaryScopesOutlet(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Record{OutletID: "o-1", Date: day("2026-08-02"), Shift: "MORNING", RevenueDineIn: 100}, "c")
	require.NoError(t, err)
	_, err = svc.Create(ctx, Record{OutletID: "o-2", Date: day("2026-08-03"), Shift: "MORNING", RevenueDineIn: 900}, "c")
	require.NoError(t, err)

	summary, err := svc.MonthlySummary(ctx, "o-1", "2026-08")
	require.NoError(t, err)
	require.InDelta(t, 100, summary.TotalRevenue, 0.001)

	all, err := svc.MonthlySummary(ctx, "", "2026-08")
	require.NoError(t, err)
	require.InDelta(t, 1000, all.TotalRevenue, 0.001)
}
