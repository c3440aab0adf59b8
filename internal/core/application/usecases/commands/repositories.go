// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"restaurant/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	TicketRepoFactory interface {
		KitchenTicketRepository() ports.KitchenTicketRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRepository() ports.DeliveryRepository
	}

	FailureRepoFactory interface {
		DispatchFailureRepository() ports.DispatchFailureRepository
	}

	// OrderUoW is used by placement and status transitions.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... change status, Update
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// KitchenUoW reads orders and writes kitchen tickets.
	KitchenUoW interface {
		TxManager
		OrderRepoFactory
		TicketRepoFactory
	}

	KitchenUoWFactory interface {
		Create() KitchenUoW
	}

	// NotificationUoW reads orders and keeps delivery records.
	NotificationUoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
	}

	NotificationUoWFactory interface {
		Create() NotificationUoW
	}

	// FailureUoW manages the dispatch failure log.
	FailureUoW interface {
		TxManager
		FailureRepoFactory
	}

	FailureUoWFactory interface {
		Create() FailureUoW
	}
)
