package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/core/domain/services"
)

type (
	// KitchenTicketsDispatcher is satisfied by DispatchKitchenTicketsCommandHandler.
	KitchenTicketsDispatcher interface {
		Handle(ctx context.Context, cmd DispatchKitchenTicketsCommand) (DispatchKitchenTicketsResult, error)
	}

	// OrderNotificationsSender is satisfied by SendOrderNotificationsCommandHandler.
	OrderNotificationsSender interface {
		Handle(ctx context.Context, cmd SendOrderNotificationsCommand) (SendOrderNotificationsResult, error)
	}
)

// DefaultReplayTimeout bounds one replayed dispatch when no timeout is configured.
const DefaultReplayTimeout = 5 * time.Second

type RetryFailedDispatchesResult struct {
	Retried  int
	Resolved int
	Failed   int
}

// RetryFailedDispatchesCommandHandler replays recorded dispatch failures through
// the same idempotent handlers the orchestrator uses. Kitchen failures for orders
// that left PREPARING are resolved without replay. Each replay runs under its
// own timeout; running out of time counts as a failed attempt.
type RetryFailedDispatchesCommandHandler struct {
	uowFactory FailureUoWFactory
	kitchen    KitchenTicketsDispatcher
	notifier   OrderNotificationsSender
	timeout    time.Duration
}

func NewRetryFailedDispatchesCommandHandler(
	uowFactory FailureUoWFactory,
	kitchen KitchenTicketsDispatcher,
	notifier OrderNotificationsSender,
	timeout time.Duration,
) RetryFailedDispatchesCommandHandler {
	if timeout <= 0 {
		timeout = DefaultReplayTimeout
	}
	return RetryFailedDispatchesCommandHandler{
		uowFactory: uowFactory,
		kitchen:    kitchen,
		notifier:   notifier,
		timeout:    timeout,
	}
}

func (h RetryFailedDispatchesCommandHandler) Handle(
	ctx context.Context,
	cmd RetryFailedDispatchesCommand,
) (RetryFailedDispatchesResult, error) {
	if err := cmd.Validate(); err != nil {
		return RetryFailedDispatchesResult{}, err
	}

	repo := h.uowFactory.Create().DispatchFailureRepository()

	failures, err := repo.ListRetryable(ctx, cmd.MaxAttempts(), cmd.BatchSize())
	if err != nil {
		return RetryFailedDispatchesResult{}, err
	}

	var result RetryFailedDispatchesResult
	var updateErrs []error
	for _, failure := range failures {
		if ctx.Err() != nil {
			break
		}
		result.Retried++

		replayErr := h.replay(ctx, failure)
		if replayErr == nil || errors.Is(replayErr, services.ErrOrderIsNotPreparing) {
			failure.Resolve(time.Now())
			result.Resolved++
		} else {
			failure.RecordAttempt(replayErr, time.Now())
			result.Failed++
		}

		if err = repo.Update(ctx, failure); err != nil {
			updateErrs = append(updateErrs, err)
		}
	}

	return result, errors.Join(updateErrs...)
}

func (h RetryFailedDispatchesCommandHandler) replay(ctx context.Context, failure *dispatch.Failure) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return h.dispatch(ctx, failure)
}

func (h RetryFailedDispatchesCommandHandler) dispatch(ctx context.Context, failure *dispatch.Failure) error {
	switch failure.Kind() {
	case dispatch.Kitchen:
		cmd, err := NewDispatchKitchenTicketsCommand(failure.OrderID())
		if err != nil {
			return err
		}
		res, err := h.kitchen.Handle(ctx, cmd)
		if err != nil {
			return err
		}
		return res.Err()
	case dispatch.Notification:
		cmd, err := NewSendOrderNotificationsCommand(failure.OrderID(), failure.Status())
		if err != nil {
			return err
		}
		res, err := h.notifier.Handle(ctx, cmd)
		if err != nil {
			return err
		}
		return res.Err()
	default:
		return fmt.Errorf("unknown dispatch kind %q", failure.Kind())
	}
}
