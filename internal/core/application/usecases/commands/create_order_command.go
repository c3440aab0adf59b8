package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderLine is one requested menu item. Price and department are taken
// from the menu catalog, never from the caller.
type CreateOrderLine struct {
	MenuItemID kernel.UUID
	Quantity   int
	Notes      string
}

// CreateOrderCommand places a new order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), order.Takeaway,
//	    []CreateOrderLine{{MenuItemID: nasiGoreng, Quantity: 2}}, order.Details{})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	orderType order.Type
	lines     []CreateOrderLine
	details   order.Details

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	orderType order.Type,
	lines []CreateOrderLine,
	details order.Details,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		details: details,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setOrderType(orderType),
		cmd.setLines(lines),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) OrderType() order.Type {
	return c.orderType
}

// Lines returns a copy of the requested lines.
func (c CreateOrderCommand) Lines() []CreateOrderLine {
	result := make([]CreateOrderLine, len(c.lines))
	copy(result, c.lines)
	return result
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.Type) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setLines(lines []CreateOrderLine) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	for i, line := range lines {
		if err := line.MenuItemID.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].menuItemId", i), err)
		}
		if line.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", line.Quantity))
		}
	}
	c.lines = make([]CreateOrderLine, len(lines))
	copy(c.lines, lines)
	return nil
}
