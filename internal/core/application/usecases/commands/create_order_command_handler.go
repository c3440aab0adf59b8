package commands

import (
	"context"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// CreateOrderCommandHandler places orders. Every line is resolved through the
// menu catalog, which supplies its department and unit price.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	catalog    ports.MenuCatalog
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, catalog ports.MenuCatalog) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle stores the order in RECEIVED status and returns it.
// Unknown menu items fail with errs.ObjectNotFoundError, unavailable ones with errs.ValueIsInvalidError.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	requested := cmd.Lines()
	ids := make([]kernel.UUID, 0, len(requested))
	for _, line := range requested {
		ids = append(ids, line.MenuItemID)
	}

	items, err := h.catalog.Lookup(ctx, ids)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(requested))
	for _, req := range requested {
		item, ok := items[req.MenuItemID]
		if !ok {
			return nil, errs.NewObjectNotFoundError("menuItemId", req.MenuItemID.String())
		}
		if !item.IsAvailable() {
			return nil, fmt.Errorf("%w: %w", errs.NewValueIsInvalidError("menuItemId"), menu.ErrItemIsUnavailable)
		}

		line, lineErr := order.NewLine(item.ID(), req.Quantity, item.Price(), item.Department(), req.Notes)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(cmd.OrderID(), order.NewNumber(cmd.OrderID()), cmd.OrderType(), lines, cmd.Details(), time.Now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
