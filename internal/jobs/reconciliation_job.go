package jobs

import (
	"context"
	"log/slog"
	"time"

	"parcel/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// reconciliationRunTimeout caps one full pass, carrier calls included.
const reconciliationRunTimeout = 10 * time.Minute

// ReconciliationJob manages the scheduled realignment of parcel statuses
// with the carrier's tracking feed. Every pass polls the carrier for each
// externally carried parcel created inside the lookback window.
type ReconciliationJob struct {
	handler  commands.ReconcileParcelsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReconciliationJob creates a new job for reconciling parcel statuses.
// The schedule is a standard five-field cron expression.
func NewReconciliationJob(
	handler commands.ReconcileParcelsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReconciliationJob {
	return &ReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "reconciliation_job"),
	}
}

// Start schedules the reconciliation job.
func (j *ReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.runOnce)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *ReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
}

func (j *ReconciliationJob) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), reconciliationRunTimeout)
	defer cancel()

	cmd, err := commands.NewDefaultReconcileParcelsCommand()
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation command construction failed", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Reconciliation pass failed", "error", err)
		return
	}

	// Per-item failures are part of the pass result, not a pass failure.
	for _, itemErr := range result.Errors {
		j.logger.WarnContext(ctx, "Parcel reconciliation failed",
			"trackingCode", itemErr.TrackingCode, "reason", itemErr.Reason)
	}

	j.logger.InfoContext(ctx, "Reconciliation pass completed",
		"updated", len(result.Updated), "failed", len(result.Errors))
}
