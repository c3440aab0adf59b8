package jobs

import (
	"context"
	"log/slog"
	"sync"

	"restaurant/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetrySchedule runs the retry job every 30 seconds.
const DefaultRetrySchedule = "*/30 * * * * *"

// DispatchRetrier is satisfied by commands.RetryFailedDispatchesCommandHandler.
type DispatchRetrier interface {
	Handle(ctx context.Context, cmd commands.RetryFailedDispatchesCommand) (commands.RetryFailedDispatchesResult, error)
}

// DispatchRetryJob replays recorded kitchen and notification failures on a
// cron schedule. Runs never overlap.
type DispatchRetryJob struct {
	handler  DispatchRetrier
	schedule string
	cmd      commands.RetryFailedDispatchesCommand
	cron     *cron.Cron
	logger   *slog.Logger

	// ctx is canceled by Stop so a running pass gives up.
	ctx    context.Context
	cancel context.CancelFunc

	mu sync.Mutex
}

func NewDispatchRetryJob(
	handler DispatchRetrier,
	schedule string,
	maxAttempts, batchSize int,
	logger *slog.Logger,
) (*DispatchRetryJob, error) {
	cmd, err := commands.NewRetryFailedDispatchesCommand(maxAttempts, batchSize)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultRetrySchedule
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &DispatchRetryJob{
		handler:  handler,
		schedule: schedule,
		cmd:      cmd,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "dispatch_retry_job"),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

func (j *DispatchRetryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(j.ctx) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch retry job started", "schedule", j.schedule)
	return nil
}

// Run performs one retry pass. A pass still in progress makes it a no-op.
func (j *DispatchRetryJob) Run(ctx context.Context) {
	if !j.mu.TryLock() {
		j.logger.DebugContext(ctx, "Previous dispatch retry pass still running")
		return
	}
	defer j.mu.Unlock()

	result, err := j.handler.Handle(ctx, j.cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch retry job failed", "error", err)
	}
	if result.Retried > 0 {
		j.logger.InfoContext(ctx, "Dispatch failures retried",
			"retried", result.Retried,
			"resolved", result.Resolved,
			"failed", result.Failed,
		)
	}
}

// Stop stops scheduling, cancels a running pass and waits for it to return.
func (j *DispatchRetryJob) Stop() {
	done := j.cron.Stop().Done()
	j.cancel()
	<-done
	j.logger.InfoContext(context.Background(), "Dispatch retry job stopped")
}
