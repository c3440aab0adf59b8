package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	dispatchRetryJob *DispatchRetryJob
}

// RetryConfig configures DispatchRetryJob.
type RetryConfig struct {
	Schedule    string
	MaxAttempts int
	BatchSize   int
}

func NewJobManager(retrier DispatchRetrier, cfg RetryConfig, logger *slog.Logger) (*JobManager, error) {
	retryJob, err := NewDispatchRetryJob(retrier, cfg.Schedule, cfg.MaxAttempts, cfg.BatchSize, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch retry job: %w", err)
	}
	return &JobManager{dispatchRetryJob: retryJob}, nil
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchRetryJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch retry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running passes.
func (jm *JobManager) StopAll() {
	jm.dispatchRetryJob.Stop()
}
