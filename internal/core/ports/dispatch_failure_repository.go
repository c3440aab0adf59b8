package ports

import (
	"context"

	"restaurant/internal/core/domain/model/dispatch"
)

type DispatchFailureRepository interface {
	Add(ctx context.Context, failure *dispatch.Failure) error
	Update(ctx context.Context, failure *dispatch.Failure) error

	// ListRetryable returns unresolved failures with fewer than maxAttempts
	// attempts, oldest first.
	ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*dispatch.Failure, error)
}
