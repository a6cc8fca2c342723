package bookings

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/appubr/backoffice/internal/shared"
)

type memoryRepo struct {
	bookings map[string]Booking
	nextID   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{bookings: make(map[string]Booking)}
}

func (r *memoryRepo) List(ctx context.Context, filter Filter) ([]Booking, error) {
	result := []Booking{}
	for _, b := range r.bookings {
		if filter.OutletID != "" && b.OutletID != filter.OutletID {
			continue
		}
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *memoryRepo) Get(ctx context.Context, id string) (Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return Booking{}, shared.ErrNotFound
	}
	return b, nil
}

func (r *memoryRepo) Create(ctx context.Context, b Booking) (Booking, error) {
	r.nextID++
	b.ID = "bk-" + strconv.Itoa(r.nextID)
	r.bookings[b.ID] = b
	return b, nil
}

func (r *memoryRepo) Update(ctx context.Context, b Booking) (Booking, error) {
	existing, ok := r.bookings[b.ID]
	if !ok {
		return Booking{}, shared.ErrNotFound
	}
	b.Status = existing.Status
	r.bookings[b.ID] = b
	return b, nil
}

func (r *memoryRepo) SetStatus(ctx context.Context, id string, status Status) error {
	b, ok := r.bookings[id]
	if !ok {
		return shared.ErrNotFound
	}
	b.Status = status
	r.bookings[id] = b
	return nil
}

func (r *memoryRepo) CountOverlapping(ctx context.Context, b Booking, excludeID string) (int, error) {
	count := 0
	for _, other := range r.bookings {
		if other.ID == excludeID || other.Status != StatusConfirmed {
			continue
		}
		if other.OutletID != b.OutletID || other.Type != b.Type || !other.Date.Equal(b.Date) {
			continue
		}
		if other.StartTime.Before(b.EndTime) && other.EndTime.After(b.StartTime) {
			count++
		}
	}
	return count, nil
}

func (r *memoryRepo) CountPending(ctx context.Context, outletID string) (int, error) {
	count := 0
	for _, b := range r.bookings {
		if b.Status == StatusPending && (outletID == "" || b.OutletID == outletID) {
			count++
		}
	}
	return count, nil
}

func sampleBooking(start, end int) Booking {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	return Booking{
		OutletID:     "o-1",
		Type:         TypeSingingRoom,
		CustomerName: "Ibu Ratna",
		Date:         date,
		StartTime:    date.Add(time.Duration(start) * time.Hour),
		EndTime:      date.Add(time.Duration(end) * time.Hour),
		Participants: 6,
	}
}

func TestCreateStartsPending(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	b, err := svc.Create(context.Background(), sampleBooking(18, 20), "u-1")
	require.NoError(t, err)
	require.Equal(t, StatusPending, b.Status)
	require.Equal(t, "u-1", b.CreatedBy)
}

func TestCreateRejectsInvertedTimeRange(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)

	_, err := svc.Create(context.Background(), sampleBooking(20, 18), "u-1")
	require.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestLifecycleTransitions(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	b, err := svc.Create(ctx, sampleBooking(18, 20), "u-1")
	require.NoError(t, err)

	confirmed, err := svc.Transition(ctx, b.ID, StatusConfirmed, "u-1")
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, confirmed.Status)

	// A confirmed booking cannot go back to pending, only forward.
	_, err = svc.Transition(ctx, b.ID, StatusPending, "u-1")
	require.ErrorIs(t, err, ErrInvalidTransition)

	completed, err := svc.Transition(ctx, b.ID, StatusCompleted, "u-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, completed.Status)

	_, err = svc.Transition(ctx, b.ID, StatusCancelled, "u-1")
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestConfirmRejectsOverlap(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, sampleBooking(18, 20), "u-1")
	require.NoError(t, err)
	_, err = svc.Transition(ctx, first.ID, StatusConfirmed, "u-1")
	require.NoError(t, err)

	second, err := svc.Create(ctx, sampleBooking(19, 21), "u-1")
	require.NoError(t, err)
	_, err = svc.Transition(ctx, second.ID, StatusConfirmed, "u-1")
	require.ErrorIs(t, err, ErrOverlap)

	// A slot after the confirmed one is fine.
	third, err := svc.Create(ctx, sampleBooking(20, 22), "u-1")
	require.NoError(t, err)
	_, err = svc.Transition(ctx, third.ID, StatusConfirmed, "u-1")
	require.NoError(t, err)
}

func TestPendingCount(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, sampleBooking(10, 12), "u-1")
	require.NoError(t, err)
	b, err := svc.Create(ctx, sampleBooking(14, 16), "u-1")
	require.NoError(t, err)
	_, err = svc.Transition(ctx, b.ID, StatusCancelled, "u-1")
	require.NoError(t, err)

	count, err := svc.PendingCount(ctx, "o-1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
