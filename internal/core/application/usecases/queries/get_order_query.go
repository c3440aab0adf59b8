// Package queries contains read operations for retrieving system state.
// Queries bypass the aggregates and read straight from the tables, returning
// read models shaped for the HTTP API.
package queries

import (
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its lines and status history.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetOrderQueryHandler(db).Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the order read model.
type GetOrderQueryResponse struct {
	ID          kernel.UUID
	Number      string
	Status      order.Status
	Type        order.Type
	CustomerID  *kernel.UUID
	TableNumber *int
	Priority    order.Priority
	Notes       string
	TotalAmount decimal.Decimal
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Lines       []OrderLineView
	History     []StatusChangeView
}

type OrderLineView struct {
	Index      int
	MenuItemID kernel.UUID
	Quantity   int
	UnitPrice  decimal.Decimal
	Department string
	Notes      string
}

// StatusChangeView is a history entry. From is order.Unknown for the entry that
// created the order.
type StatusChangeView struct {
	From  order.Status
	To    order.Status
	Notes string
	Actor string
	At    time.Time
}
