// Package jobs provides scheduled background tasks for the restaurant service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds precision).
//
// # Available Jobs
//
// DispatchRetryJob replays kitchen dispatches and customer notifications that
// failed after a status transition was committed. Failures stay in the
// dispatch_failures table until a replay succeeds or the attempt limit is hit.
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(retryHandler, jobs.RetryConfig{
//		Schedule:    "*/30 * * * * *",
//		MaxAttempts: 5,
//		BatchSize:   50,
//	}, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
package jobs
