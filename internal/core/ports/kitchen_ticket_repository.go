package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
)

// KitchenTicketRepository stores kitchen tickets. (order, department) is unique.
type KitchenTicketRepository interface {
	// Add inserts a ticket with its items. A second ticket for the same
	// (order, department) fails with errs.ConflictError.
	Add(ctx context.Context, ticket *kitchen.Ticket) error

	// Update persists status, chef and item progression.
	Update(ctx context.Context, ticket *kitchen.Ticket) error

	// GetForUpdate loads and locks a ticket, or returns errs.ObjectNotFoundError.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*kitchen.Ticket, error)

	// FindByOrderAndDepartment returns errs.ObjectNotFoundError when the
	// department has no ticket for the order yet.
	FindByOrderAndDepartment(ctx context.Context, orderID kernel.UUID, department kernel.Department) (*kitchen.Ticket, error)
}
