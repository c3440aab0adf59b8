package commands

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpsertMenuItemCommandIsNotConstructed = errors.New(
	"UpsertMenuItemCommand must be created via NewUpsertMenuItemCommand constructor",
)

// MenuWriter stores catalog entries, replacing existing ones with the same id.
type MenuWriter interface {
	Upsert(ctx context.Context, items ...menu.Item) error
}

// UpsertMenuItemCommand creates or replaces one catalog entry.
type UpsertMenuItemCommand struct {
	item menu.Item

	guard guard.ConstructorGuard
}

func NewUpsertMenuItemCommand(
	id kernel.UUID,
	name string,
	department string,
	price decimal.Decimal,
	prepTime time.Duration,
	available bool,
) (UpsertMenuItemCommand, error) {
	dep, err := kernel.NewDepartment(department)
	if err != nil {
		return UpsertMenuItemCommand{}, errors.Join(err, id.Validate())
	}
	item, err := menu.NewItem(id, name, dep, price, prepTime, available)
	if err != nil {
		return UpsertMenuItemCommand{}, err
	}
	return UpsertMenuItemCommand{item: item, guard: guard.NewConstructorGuard()}, nil
}

func (c UpsertMenuItemCommand) Validate() error {
	return c.guard.Validate(ErrUpsertMenuItemCommandIsNotConstructed)
}

func (c UpsertMenuItemCommand) Item() menu.Item { return c.item }

type UpsertMenuItemCommandHandler struct {
	writer MenuWriter
}

func NewUpsertMenuItemCommandHandler(writer MenuWriter) UpsertMenuItemCommandHandler {
	return UpsertMenuItemCommandHandler{writer: writer}
}

func (h UpsertMenuItemCommandHandler) Handle(ctx context.Context, cmd UpsertMenuItemCommand) (menu.Item, error) {
	if err := cmd.Validate(); err != nil {
		return menu.Item{}, err
	}
	if err := h.writer.Upsert(ctx, cmd.item); err != nil {
		return menu.Item{}, err
	}
	return cmd.item, nil
}
