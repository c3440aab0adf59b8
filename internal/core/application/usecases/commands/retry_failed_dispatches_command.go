package commands

import (
	"errors"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRetryFailedDispatchesCommandIsNotConstructed = errors.New(
	"RetryFailedDispatchesCommand must be created via NewRetryFailedDispatchesCommand constructor",
)

// RetryFailedDispatchesCommand replays up to batchSize unresolved dispatch
// failures that have been attempted fewer than maxAttempts times.
type RetryFailedDispatchesCommand struct {
	maxAttempts int
	batchSize   int

	guard guard.ConstructorGuard
}

func NewRetryFailedDispatchesCommand(maxAttempts, batchSize int) (RetryFailedDispatchesCommand, error) {
	var errList []error
	if maxAttempts < 1 || maxAttempts > 100 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("maxAttempts", maxAttempts, 1, 100))
	}
	if batchSize < 1 || batchSize > 1000 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, 1000))
	}
	if err := errors.Join(errList...); err != nil {
		return RetryFailedDispatchesCommand{}, err
	}
	return RetryFailedDispatchesCommand{
		maxAttempts: maxAttempts,
		batchSize:   batchSize,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RetryFailedDispatchesCommand) Validate() error {
	return c.guard.Validate(ErrRetryFailedDispatchesCommandIsNotConstructed)
}

func (c RetryFailedDispatchesCommand) MaxAttempts() int { return c.maxAttempts }
func (c RetryFailedDispatchesCommand) BatchSize() int   { return c.batchSize }
