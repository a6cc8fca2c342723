package activity

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	logs   map[string]Log
	nextID int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{logs: make(map[string]Log)}
}

func (r *memoryRepo) List(ctx context.Context, filter Filter) ([]Log, error) {
	result := []Log{}
	for _, l := range r.logs {
		if filter.OutletID != "" && l.OutletID != filter.OutletID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		result = append(result, l)
	}
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Log, error) {
	l, ok := r.logs[id]
	if !ok {
		return Log{}, shared.ErrNotFound
	}
	return l, nil
}

func (r *memoryRepo) Create(ctx context.Context, l Log) (Log, error) {
	r.nextID++
	l.ID = "act-" + strconv.Itoa(r.nextID)
	r.logs[l.ID] = l
	return l, nil
}

func (r *memoryRepo) SetCompleted(ctx context.Context, id string, at time.Time) error {
	l, ok := r.logs[id]
	if !ok {
		return shared.ErrNotFound
	}
	l.Status = TaskCompleted
	l.CompletedAt = &at
	r.logs[id] = l
	return nil
}

func (r *memoryRepo) CountPending(ctx context.Context, outletID string) (int, error) {
	count := 0
	for _, l := range r.logs {
		if outletID != "" && l.OutletID != outletID {
			continue
		}
		if l.Status == TaskPending || l.Status == TaskInProgress {
			count++
		}
	}
	return count, nil
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	l, err := svc.Create(context.Background(), Log{
		OutletID: "o-1",
		TaskType: "CLEANING",
		TaskName: "Bersihkan dapur",
	}, "u-1")
	require.NoError(t, err)
	require.Equal(t, TaskPending, l.Status)
	require.Equal(t, PriorityMedium, l.Priority)
	require.False(t, l.Date.IsZero())
}

func TestCreateRequiresTaskName(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Create(context.Background(), Log{OutletID: "o-1", TaskType: "CLEANING", TaskName: "  "}, "u-1")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestCompleteOnce(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	l, err := svc.Create(ctx, Log{OutletID: "o-1", TaskType: "UTILITY", TaskName: "Catat meteran"}, "u-1")
	require.NoError(t, err)

	done, err := svc.Complete(ctx, l.ID, "u-1")
	require.NoError(t, err)
	require.Equal(t, TaskCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	_, err = svc.Complete(ctx, l.ID, "u-1")
	require.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestPendingCount(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Log{OutletID: "o-1", TaskType: "CLEANING", TaskName: "A"}, "u-1")
	require.NoError(t, err)
	l, err := svc.Create(ctx, Log{OutletID: "o-1", TaskType: "CLEANING", TaskName: "B"}, "u-1")
	require.NoError(t, err)
	_, err = svc.Complete(ctx, l.ID, "u-1")
	require.NoError(t, err)

	count, err := svc.PendingCount(ctx, "o-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
