package commands

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kitchen"
)

// UpdateTicketItemStatusCommandHandler applies kitchen progress to a ticket under a row lock.
type UpdateTicketItemStatusCommandHandler struct {
	uowFactory KitchenUoWFactory
}

func NewUpdateTicketItemStatusCommandHandler(uowFactory KitchenUoWFactory) UpdateTicketItemStatusCommandHandler {
	return UpdateTicketItemStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateTicketItemStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateTicketItemStatusCommand,
) (*kitchen.Ticket, error) {
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

	repo := uow.KitchenTicketRepository()

	ticket, err := repo.GetForUpdate(ctx, cmd.TicketID())
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if chef := cmd.Chef(); chef != nil {
		if err = ticket.AssignChef(*chef, now); err != nil {
			return nil, err
		}
	}
	if cmd.Status() != kitchen.Unknown {
		if err = ticket.ChangeItemStatus(cmd.LineIndex(), cmd.Status(), now); err != nil {
			return nil, err
		}
	}

	if err = repo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return ticket, nil
}
