package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// RepositoryPort defines the aggregate queries used by the service.
type RepositoryPort interface {
	EmployeeCounts(ctx context.Context, outletID string) (total, active int, err error)
	TodayAttendance(ctx context.Context, outletID string, today time.Time) (int, error)
	MonthlyFinancials(ctx context.Context, outletID, month string) (revenue, expense float64, err error)
	PendingBookings(ctx context.Context, outletID string) (int, error)
	LowStockItems(ctx context.Context, outletID string) (int, error)
	PendingTasks(ctx context.Context, outletID string) (int, error)
}

// Service assembles the overview stats, caching the result per outlet.
type Service struct {
	repo  RepositoryPort
	cache *Cache
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Stats returns the aggregate overview. The individual queries run
// concurrently; the combined result is cached until the TTL expires or
// the cache version is bumped.
func (s *Service) Stats(ctx context.Context, outletID string) (Stats, error) {
	key, err := s.cache.BuildKey(ctx, keyStats(outletID))
	if err != nil {
		return Stats{}, err
	}
	var stats Stats
	err = s.cache.FetchJSON(ctx, key, &stats, func(ctx context.Context) (any, error) {
		return s.load(ctx, outletID)
	})
	return stats, err
}

// Invalidate drops all cached dashboards after operational writes.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

func (s *Service) load(ctx context.Context, outletID string) (Stats, error) {
	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	month := now.Format("2006-01")

	var stats Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, active, err := s.repo.EmployeeCounts(gctx, outletID)
		stats.TotalEmployees = total
		stats.ActiveEmployees = active
		return err
	})
	g.Go(func() error {
		count, err := s.repo.TodayAttendance(gctx, outletID, today)
		stats.TodayAttendance = count
		return err
	})
	g.Go(func() error {
		revenue, expense, err := s.repo.MonthlyFinancials(gctx, outletID, month)
		stats.MonthlyRevenue = revenue
		stats.MonthlyExpenses = expense
		stats.NetProfit = revenue - expense
		return err
	})
	g.Go(func() error {
		count, err := s.repo.PendingBookings(gctx, outletID)
		stats.PendingBookings = count
		return err
	})
	g.Go(func() error {
		count, err := s.repo.LowStockItems(gctx, outletID)
		stats.LowStockItems = count
		return err
	})
	g.Go(func() error {
		count, err := s.repo.PendingTasks(gctx, outletID)
		stats.PendingTasks = count
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
