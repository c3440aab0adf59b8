package commands

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrRecordDispatchFailureCommandIsNotConstructed = errors.New(
	"RecordDispatchFailureCommand must be created via NewRecordDispatchFailureCommand constructor",
)

// RecordDispatchFailureCommand stores a failed side effect for later retry.
type RecordDispatchFailureCommand struct {
	orderID kernel.UUID
	kind    dispatch.Kind
	status  order.Status
	cause   error

	guard guard.ConstructorGuard
}

func NewRecordDispatchFailureCommand(
	orderID kernel.UUID,
	kind dispatch.Kind,
	status order.Status,
	cause error,
) (RecordDispatchFailureCommand, error) {
	var causeErr error
	if cause == nil {
		causeErr = errs.NewValueIsRequiredError("cause")
	}
	if err := errors.Join(orderID.Validate(), kind.Validate(), status.Validate(), causeErr); err != nil {
		return RecordDispatchFailureCommand{}, err
	}
	return RecordDispatchFailureCommand{
		orderID: orderID,
		kind:    kind,
		status:  status,
		cause:   cause,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c RecordDispatchFailureCommand) Validate() error {
	return c.guard.Validate(ErrRecordDispatchFailureCommandIsNotConstructed)
}

func (c RecordDispatchFailureCommand) OrderID() kernel.UUID { return c.orderID }
func (c RecordDispatchFailureCommand) Kind() dispatch.Kind  { return c.kind }
func (c RecordDispatchFailureCommand) Status() order.Status { return c.status }
func (c RecordDispatchFailureCommand) Cause() error         { return c.cause }

// RecordDispatchFailureCommandHandler appends to the dispatch failure log.
type RecordDispatchFailureCommandHandler struct {
	uowFactory FailureUoWFactory
}

func NewRecordDispatchFailureCommandHandler(uowFactory FailureUoWFactory) RecordDispatchFailureCommandHandler {
	return RecordDispatchFailureCommandHandler{uowFactory: uowFactory}
}

func (h RecordDispatchFailureCommandHandler) Handle(ctx context.Context, cmd RecordDispatchFailureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	failure, err := dispatch.NewFailure(cmd.orderID, cmd.kind, cmd.status, cmd.cause, time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DispatchFailureRepository().Add(ctx, failure); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
