// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the order pipeline.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - Sweeps preparation trackers stuck in pendiente and
// retries workload-balanced operator assignment for them. Trackers end up in
// that state when an order is converted while the warehouse roster is empty:
// the conversion commits anyway and degrades to a broadcast, and this job
// picks the work up once operators come back.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(assignPendingHandler, "0 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The retry job treats an empty backlog and an empty roster as expected
// business outcomes, not errors; only infrastructure failures are logged at
// error level.
package jobs
