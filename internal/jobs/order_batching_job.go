package jobs

import (
	"context"
	"errors"
	"log/slog"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// batchingSchedule runs a pass every 30 seconds. Batching is deliberately
// slower than order intake so that near-simultaneous orders land in the same
// batch.
const batchingSchedule = "*/30 * * * * *"

// OrderBatchingJob periodically batches ready orders into rider assignments,
// one pass per active delivery zone.
type OrderBatchingJob struct {
	handler commands.BatchOrdersCommandHandler
	zones   ports.ZoneRepository
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderBatchingJob creates the batching job over the given zones source.
func NewOrderBatchingJob(
	handler commands.BatchOrdersCommandHandler,
	zones ports.ZoneRepository,
	logger *slog.Logger,
) *OrderBatchingJob {
	return &OrderBatchingJob{
		handler: handler,
		zones:   zones,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_batching_job"),
	}
}

// Start schedules the batching passes.
func (j *OrderBatchingJob) Start() error {
	_, err := j.cron.AddFunc(batchingSchedule, j.runPass)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order batching job started")
	return nil
}

// Stop stops the batching job.
func (j *OrderBatchingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order batching job stopped")
}

func (j *OrderBatchingJob) runPass() {
	ctx := context.Background()

	zones, err := j.zones.GetAllActive(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to load active zones", "error", err)
		return
	}

	for _, zone := range zones {
		cmd, err := commands.NewBatchOrdersCommand(zone.ID())
		if err != nil {
			j.logger.ErrorContext(ctx, "Failed to build batching command",
				"zone", zone.Name(), "error", err)
			continue
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			// An empty pass is the normal case for a quiet zone.
			if errors.Is(err, commands.ErrNoOrdersToBatch) ||
				errors.Is(err, commands.ErrNoRidersAvailable) {
				continue
			}
			j.logger.ErrorContext(ctx, "Batching pass failed",
				"zone", zone.Name(), "error", err)
		}
	}
}
