package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var ErrDispatchKitchenTicketsCommandIsNotConstructed = errors.New(
	"DispatchKitchenTicketsCommand must be created via NewDispatchKitchenTicketsCommand constructor",
)

// DispatchKitchenTicketsCommand requests kitchen tickets for an order in PREPARING.
// Repeating it for the same order is safe.
type DispatchKitchenTicketsCommand struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchKitchenTicketsCommand(orderID kernel.UUID) (DispatchKitchenTicketsCommand, error) {
	if err := orderID.Validate(); err != nil {
		return DispatchKitchenTicketsCommand{}, err
	}
	return DispatchKitchenTicketsCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchKitchenTicketsCommand) Validate() error {
	return c.guard.Validate(ErrDispatchKitchenTicketsCommandIsNotConstructed)
}

func (c DispatchKitchenTicketsCommand) OrderID() kernel.UUID {
	return c.orderID
}
