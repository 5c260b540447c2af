package jobs

import (
	"fmt"
	"log/slog"

	"pharmadispatch/internal/core/application/usecases/commands"
	"pharmadispatch/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderBatchingJob *OrderBatchingJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	batchOrdersHandler commands.BatchOrdersCommandHandler,
	zones ports.ZoneRepository,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderBatchingJob: NewOrderBatchingJob(batchOrdersHandler, zones, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderBatchingJob.Start(); err != nil {
		return fmt.Errorf("failed to start order batching job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderBatchingJob.Stop()
}
