package kitchen_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC)

func mustItem(t *testing.T, lineIndex int, prep time.Duration) kitchen.Item {
	t.Helper()
	item, err := kitchen.NewItem(lineIndex, kernel.NewUUID(), 1, "", prep)
	require.NoError(t, err)
	return item
}

func newKitchenTicket(t *testing.T) *kitchen.Ticket {
	t.Helper()
	ticket, err := kitchen.NewTicket(kernel.NewUUID(), "ORD-1A2B3C4D", kernel.MustDepartment("KITCHEN"), order.Normal,
		[]kitchen.Item{mustItem(t, 0, 12*time.Minute), mustItem(t, 1, 20*time.Minute)}, now)
	require.NoError(t, err)
	return ticket
}

func TestNewTicket(t *testing.T) {
	t.Run("should derive identity and estimated time", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		require.NoError(t, ticket.Validate())
		assert.Equal(t, "KT-ORD-1A2B3C4D-KITCHEN", ticket.Number())
		assert.Equal(t, kitchen.Pending, ticket.Status())
		assert.Equal(t, 20*time.Minute, ticket.EstimatedTime())
		assert.Equal(t, []int{0, 1}, ticket.LineIndexes())
		assert.True(t, ticket.ID().IsEqual(kitchen.TicketID(ticket.OrderID(), ticket.Department())))
	})

	t.Run("should derive the same id for the same order and department", func(t *testing.T) {
		orderID := kernel.NewUUID()
		bar := kernel.MustDepartment("BAR")

		assert.True(t, kitchen.TicketID(orderID, bar).IsEqual(kitchen.TicketID(orderID, bar)))
		assert.False(t, kitchen.TicketID(orderID, bar).IsEqual(kitchen.TicketID(orderID, kernel.MustDepartment("KITCHEN"))))
	})

	t.Run("should reject empty items and duplicated lines", func(t *testing.T) {
		_, err := kitchen.NewTicket(kernel.NewUUID(), "ORD-1", kernel.MustDepartment("BAR"), order.Normal, nil, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = kitchen.NewTicket(kernel.NewUUID(), "ORD-1", kernel.MustDepartment("BAR"), order.Normal,
			[]kitchen.Item{mustItem(t, 3, 0), mustItem(t, 3, 0)}, now)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "line 3 appears twice")
	})

	t.Run("should reject missing order number", func(t *testing.T) {
		_, err := kitchen.NewTicket(kernel.NewUUID(), " ", kernel.MustDepartment("BAR"), order.Normal,
			[]kitchen.Item{mustItem(t, 0, 0)}, now)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestTicket_ChangeItemStatus(t *testing.T) {
	t.Run("ticket becomes ready when all items are ready", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		require.NoError(t, ticket.ChangeItemStatus(0, kitchen.Preparing, now))
		assert.Equal(t, kitchen.Preparing, ticket.Status())

		require.NoError(t, ticket.ChangeItemStatus(0, kitchen.Ready, now.Add(10*time.Minute)))
		assert.Equal(t, kitchen.Preparing, ticket.Status())

		require.NoError(t, ticket.ChangeItemStatus(1, kitchen.Preparing, now))
		require.NoError(t, ticket.ChangeItemStatus(1, kitchen.Ready, now.Add(20*time.Minute)))
		assert.Equal(t, kitchen.Ready, ticket.Status())

		items := ticket.Items()
		require.NotNil(t, items[1].CompletedAt())
		assert.Equal(t, now.Add(20*time.Minute), *items[1].CompletedAt())
	})

	t.Run("cancelled items do not block readiness", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		require.NoError(t, ticket.ChangeItemStatus(0, kitchen.Cancelled, now))
		assert.Equal(t, kitchen.Pending, ticket.Status())

		require.NoError(t, ticket.ChangeItemStatus(1, kitchen.Preparing, now))
		require.NoError(t, ticket.ChangeItemStatus(1, kitchen.Ready, now))
		assert.Equal(t, kitchen.Ready, ticket.Status())
	})

	t.Run("ticket is cancelled when every item is cancelled", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		require.NoError(t, ticket.ChangeItemStatus(0, kitchen.Cancelled, now))
		require.NoError(t, ticket.ChangeItemStatus(1, kitchen.Cancelled, now))

		assert.Equal(t, kitchen.Cancelled, ticket.Status())
		require.ErrorIs(t, ticket.AssignChef("Ana", now), kitchen.ErrTicketIsClosed)
	})

	t.Run("rejects skipping preparation", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		err := ticket.ChangeItemStatus(0, kitchen.Ready, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, kitchen.Pending, ticket.Items()[0].Status())
	})

	t.Run("rejects unknown line", func(t *testing.T) {
		ticket := newKitchenTicket(t)

		err := ticket.ChangeItemStatus(7, kitchen.Preparing, now)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestTicket_AssignChef(t *testing.T) {
	ticket := newKitchenTicket(t)

	require.NoError(t, ticket.AssignChef("  Ana  ", now.Add(time.Minute)))

	assert.Equal(t, "Ana", ticket.AssignedChef())
	assert.Equal(t, now.Add(time.Minute), ticket.UpdatedAt())
}

func TestItemTransitions(t *testing.T) {
	assert.True(t, kitchen.CanItemTransition(kitchen.Pending, kitchen.Preparing))
	assert.True(t, kitchen.CanItemTransition(kitchen.Preparing, kitchen.Cancelled))
	assert.False(t, kitchen.CanItemTransition(kitchen.Ready, kitchen.Cancelled))
	assert.False(t, kitchen.CanItemTransition(kitchen.Pending, kitchen.Served))

	status, err := kitchen.ParseStatus("ready")
	require.NoError(t, err)
	assert.Equal(t, kitchen.Ready, status)

	_, err = kitchen.ParseStatus("burnt")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestRestoreItem_RejectsServed(t *testing.T) {
	_, err := kitchen.RestoreItem(0, kernel.NewUUID(), 1, "", 0, kitchen.Served, nil)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
