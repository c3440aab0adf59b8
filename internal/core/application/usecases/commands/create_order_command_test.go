package commands_test

import (
	"testing"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	lines := []commands.CreateOrderLine{{MenuItemID: kernel.NewUUID(), Quantity: 2, Notes: "no chili"}}

	cmd, err := commands.NewCreateOrderCommand(orderID, order.Takeaway, lines, order.Details{Notes: "window seat"})

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.True(t, cmd.OrderID().IsEqual(orderID))
	assert.Equal(t, order.Takeaway, cmd.OrderType())
	assert.Equal(t, lines, cmd.Lines())
	assert.Equal(t, "window seat", cmd.Details().Notes)

	lines[0].Quantity = 99
	assert.Equal(t, 2, cmd.Lines()[0].Quantity)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	t.Run("no lines", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Takeaway, nil, order.Details{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero quantity", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), order.Takeaway,
			[]commands.CreateOrderLine{{MenuItemID: kernel.NewUUID()}}, order.Details{})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "lines[0].quantity")
	})

	t.Run("combined errors", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, order.UnknownType, nil, order.Details{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "not a valid order type")
		assert.Contains(t, err.Error(), "lines")
	})
}

func TestCreateOrderCommand_Validate_ZeroValue(t *testing.T) {
	var cmd commands.CreateOrderCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
}
