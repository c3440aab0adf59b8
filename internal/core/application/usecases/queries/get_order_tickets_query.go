package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"
)

var ErrGetOrderTicketsQueryIsNotConstructed = errors.New(
	"GetOrderTicketsQuery must be created via NewGetOrderTicketsQuery constructor",
)

// GetOrderTicketsQuery lists the kitchen tickets of one order.
type GetOrderTicketsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderTicketsQuery(orderID kernel.UUID) (GetOrderTicketsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderTicketsQuery{}, err
	}
	return GetOrderTicketsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderTicketsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTicketsQueryIsNotConstructed)
}

func (q GetOrderTicketsQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderTicketsQueryResponse struct {
	ID           kernel.UUID
	Number       string
	Department   string
	Status       kitchen.Status
	Priority     order.Priority
	AssignedChef string
	// EstimatedTime is the longest preparation time among the items.
	EstimatedTime time.Duration
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []TicketItemView
}

type TicketItemView struct {
	LineIndex   int
	MenuItemID  kernel.UUID
	Quantity    int
	Notes       string
	Status      kitchen.Status
	CompletedAt *time.Time
}
