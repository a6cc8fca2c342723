package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/appubr/backoffice/internal/inventory"
	"github.com/appubr/backoffice/internal/observability"
	"github.com/appubr/backoffice/internal/shared"
)

// LowStockScanJob walks the inventory and records an audit entry for every
// item at or below its minimum so the restock queue is visible in the
// system logs the next morning.
type LowStockScanJob struct {
	Inventory *inventory.Service
	Audit     *shared.AuditLogger
	Logger    *slog.Logger
	Metrics   *observability.Metrics
}

// NewLowStockScanJob wires dependencies for the scan handler.
func NewLowStockScanJob(inventorySvc *inventory.Service, audit *shared.AuditLogger, logger *slog.Logger, metrics *observability.Metrics) *LowStockScanJob {
	return &LowStockScanJob{
		Inventory: inventorySvc,
		Audit:     audit,
		Logger:    logger,
		Metrics:   metrics,
	}
}

// Handle processes low stock scan tasks.
func (j *LowStockScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Inventory == nil {
		return errors.New("low stock scan: handler not configured")
	}
	var payload LowStockScanPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	logger := j.logger().With(slog.String("outlet_id", payload.OutletID))
	logger.Info("starting low stock scan")

	items, err := j.Inventory.LowStock(ctx, payload.OutletID)
	if err != nil {
		j.Metrics.ObserveJob(TaskLowStockScan, "error")
		logger.Error("list low stock", slog.Any("error", err))
		return err
	}

	for _, item := range items {
		logger.Warn("item below minimum stock",
			slog.String("item_id", item.ID),
			slog.String("name", item.Name),
			slog.Float64("quantity", item.Quantity),
			slog.Float64("min_stock", item.MinStock))
		if j.Audit != nil {
			_ = j.Audit.Record(ctx, shared.SystemLog{
				Action:   "inventory.low_stock",
				Entity:   "inventory_item",
				EntityID: item.ID,
			})
		}
	}

	j.Metrics.ObserveJob(TaskLowStockScan, "ok")
	logger.Info("completed low stock scan", slog.Int("flagged", len(items)))
	return nil
}

func (j *LowStockScanJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}
