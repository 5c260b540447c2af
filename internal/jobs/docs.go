// Package jobs provides scheduled background tasks for the dispatch
// platform.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. OrderBatchingJob - Periodically runs a batching pass over every active
// delivery zone, grouping ready orders into rider assignments.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(batchOrdersHandler, zones, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// An empty zone (no ready orders, or no riders on shift) is an expected
// outcome of a batching pass and is not logged as an error. Everything else
// is.
package jobs
