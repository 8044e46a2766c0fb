// Package jobs provides scheduled background tasks for the parcel system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for parcel tracking.
//
// # Available Jobs
//
// 1. ReconciliationJob - Polls the carrier's tracking feed on a schedule and
// realigns the stored status of every externally carried parcel created
// inside the lookback window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(reconcileHandler, "*/30 * * * *", logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A pass-level failure (the candidate query or command construction) is
// logged as an error. Per-item carrier or persistence failures are carried
// in the pass result and logged as warnings; they never abort the pass.
package jobs
