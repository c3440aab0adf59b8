package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/order"
)

// TransitionOrderStatusCommandHandler performs the atomic read-validate-write of
// an order status. It has no side effects besides the order row and its history.
//
// Concurrent transitions of one order are serialized by the row lock taken in
// GetForUpdate; the later caller validates against the status committed by the
// earlier one. A lost race that the database detects instead surfaces as
// errs.ConflictError from Update or Commit.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewTransitionOrderStatusCommandHandler(uowFactory OrderUoWFactory) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns the committed order. Errors:
//   - errs.ObjectNotFoundError when the order does not exist
//   - *order.InvalidTransitionError when the transition table forbids the move
//   - errs.ConflictError when a concurrent commit won
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()

	o, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = o.ChangeStatus(cmd.Status(), cmd.Notes(), cmd.Actor(), time.Now()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
