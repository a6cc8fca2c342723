package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/appubr/backoffice/internal/dashboard"
	"github.com/appubr/backoffice/internal/finance"
	"github.com/appubr/backoffice/internal/observability"
)

// FinanceRollupJob recomputes the monthly summaries after the day's records
// settle and drops stale dashboard caches.
type FinanceRollupJob struct {
	Finance   *finance.Service
	Dashboard *dashboard.Service
	Outlets   OutletLister
	Logger    *slog.Logger
	Metrics   *observability.Metrics
}

// OutletLister yields the outlet ids to roll up.
type OutletLister interface {
	OutletIDs(ctx context.Context) ([]string, error)
}

// NewFinanceRollupJob wires dependencies for the rollup handler.
func NewFinanceRollupJob(financeSvc *finance.Service, dashboardSvc *dashboard.Service, outlets OutletLister, logger *slog.Logger, metrics *observability.Metrics) *FinanceRollupJob {
	return &FinanceRollupJob{
		Finance:   financeSvc,
		Dashboard: dashboardSvc,
		Outlets:   outlets,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Handle processes finance rollup tasks.
func (j *FinanceRollupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Finance == nil {
		return errors.New("finance rollup: handler not configured")
	}
	var payload FinanceRollupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Month == "" {
		payload.Month = time.Now().UTC().Format("2006-01")
	}

	logger := j.logger().With(slog.String("month", payload.Month))
	logger.Info("starting finance rollup")

	outletIDs := []string{""}
	if j.Outlets != nil {
		ids, err := j.Outlets.OutletIDs(ctx)
		if err != nil {
			j.Metrics.ObserveJob(TaskFinanceRollup, "error")
			logger.Error("list outlets", slog.Any("error", err))
			return err
		}
		outletIDs = append(outletIDs, ids...)
	}

	for _, outletID := range outletIDs {
		summary, err := j.Finance.MonthlySummary(ctx, outletID, payload.Month)
		if err != nil {
			j.Metrics.ObserveJob(TaskFinanceRollup, "error")
			logger.Error("summarise outlet", slog.String("outlet_id", outletID), slog.Any("error", err))
			return err
		}
		logger.Info("outlet rolled up",
			slog.String("outlet_id", outletID),
			slog.Float64("net_profit", summary.NetProfit))
	}

	if j.Dashboard != nil {
		if err := j.Dashboard.Invalidate(ctx); err != nil {
			logger.Warn("invalidate dashboard cache", slog.Any("error", err))
		}
	}

	j.Metrics.ObserveJob(TaskFinanceRollup, "ok")
	logger.Info("completed finance rollup", slog.Int("outlets", len(outletIDs)))
	return nil
}

func (j *FinanceRollupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
