// Package ports defines the contracts between the restaurant core and its
// infrastructure: repositories, the unit of work, the menu catalog and the
// message senders used for customer notifications.
package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its lines and initial history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status changes of an existing order. The write only succeeds
	// when the stored version equals aggregate.Version(); otherwise an
	// errs.ConflictError is returned. On success the aggregate is marked persisted.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id or returns errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get that also locks the order row until the surrounding
	// transaction ends. Concurrent callers on the same order are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
