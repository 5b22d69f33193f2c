package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"fulfillment/internal/core/application/usecases/commands"
)

// AssignmentRetryJob periodically retries operator assignment for preparation
// trackers left unassigned when no warehouse operator was available at
// conversion time. The sweep is idempotent: an empty backlog or an empty
// roster leaves everything untouched for the next run.
type AssignmentRetryJob struct {
	handler commands.AssignPendingCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewAssignmentRetryJob creates the retry job. The spec is a six-field cron
// expression with seconds, e.g. "0 * * * * *" for every minute.
func NewAssignmentRetryJob(handler commands.AssignPendingCommandHandler, spec string, logger *slog.Logger) *AssignmentRetryJob {
	return &AssignmentRetryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "assignment_retry_job"),
	}
}

// Start schedules the sweep.
func (j *AssignmentRetryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		cmd := commands.NewAssignPendingCommand()

		assigned, handleErr := j.handler.Handle(ctx, cmd)
		if handleErr != nil {
			j.logger.ErrorContext(ctx, "Assignment retry job failed", "error", handleErr)
			return
		}
		if assigned > 0 {
			j.logger.InfoContext(ctx, "Assigned pending preparations", "count", assigned)
		} else {
			j.logger.DebugContext(ctx, "No pending preparations to assign")
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Assignment retry job started", "spec", j.spec)
	return nil
}

// Stop stops the sweep.
func (j *AssignmentRetryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Assignment retry job stopped")
}
