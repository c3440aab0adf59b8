package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrSendOrderNotificationsCommandIsNotConstructed = errors.New(
	"SendOrderNotificationsCommand must be created via NewSendOrderNotificationsCommand constructor",
)

// SendOrderNotificationsCommand notifies the customer that the order entered status.
type SendOrderNotificationsCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

func NewSendOrderNotificationsCommand(orderID kernel.UUID, status order.Status) (SendOrderNotificationsCommand, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return SendOrderNotificationsCommand{}, err
	}
	return SendOrderNotificationsCommand{
		orderID: orderID,
		status:  status,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SendOrderNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderNotificationsCommandIsNotConstructed)
}

func (c SendOrderNotificationsCommand) OrderID() kernel.UUID { return c.orderID }
func (c SendOrderNotificationsCommand) Status() order.Status { return c.status }
