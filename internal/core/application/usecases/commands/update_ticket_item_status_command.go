package commands

import (
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

var ErrUpdateTicketItemStatusCommandIsNotConstructed = errors.New(
	"UpdateTicketItemStatusCommand must be created via NewUpdateTicketItemStatusCommand constructor",
)

// UpdateTicketItemStatusCommand progresses one ticket item and optionally
// (re)assigns the chef. At least one of status and chef must be given.
type UpdateTicketItemStatusCommand struct {
	ticketID  kernel.UUID
	lineIndex int
	status    kitchen.Status
	chef      *string

	guard guard.ConstructorGuard
}

// NewUpdateTicketItemStatusCommand creates the command. Pass kitchen.Unknown as
// status to only assign the chef.
func NewUpdateTicketItemStatusCommand(
	ticketID kernel.UUID,
	lineIndex int,
	status kitchen.Status,
	chef *string,
) (UpdateTicketItemStatusCommand, error) {
	var errList []error
	errList = append(errList, ticketID.Validate())
	if lineIndex < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("itemIndex", fmt.Errorf("%d is negative", lineIndex)))
	}
	if status != kitchen.Unknown {
		errList = append(errList, status.Validate())
	}
	if status == kitchen.Unknown && chef == nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("status", errors.New("nothing to update")))
	}
	if err := errors.Join(errList...); err != nil {
		return UpdateTicketItemStatusCommand{}, err
	}

	return UpdateTicketItemStatusCommand{
		ticketID:  ticketID,
		lineIndex: lineIndex,
		status:    status,
		chef:      chef,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateTicketItemStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTicketItemStatusCommandIsNotConstructed)
}

func (c UpdateTicketItemStatusCommand) TicketID() kernel.UUID  { return c.ticketID }
func (c UpdateTicketItemStatusCommand) LineIndex() int         { return c.lineIndex }
func (c UpdateTicketItemStatusCommand) Status() kitchen.Status { return c.status }
func (c UpdateTicketItemStatusCommand) Chef() *string          { return c.chef }
