package services_test

import (
	"testing"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

func newOrderAt(t *testing.T, status order.Status, priority order.Priority, lines ...order.Line) *order.Order {
	t.Helper()
	id := kernel.NewUUID()
	o, err := order.RestoreOrder(id, order.NewNumber(id), status, order.Takeaway, lines,
		order.Details{Priority: priority}, 2, now, now)
	require.NoError(t, err)
	return o
}

func line(t *testing.T, menuItemID kernel.UUID, dept string, qty int) order.Line {
	t.Helper()
	l, err := order.NewLine(menuItemID, qty, decimal.NewFromInt(10000), kernel.MustDepartment(dept), "")
	require.NoError(t, err)
	return l
}

func TestKitchenDispatcher_Split(t *testing.T) {
	steak, salad, beer := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	prepTimes := map[kernel.UUID]time.Duration{
		steak: 25 * time.Minute,
		salad: 8 * time.Minute,
		beer:  2 * time.Minute,
	}

	t.Run("should partition lines by department without overlap", func(t *testing.T) {
		o := newOrderAt(t, order.Preparing, order.Normal,
			line(t, steak, "KITCHEN", 2), line(t, beer, "BAR", 1), line(t, salad, "KITCHEN", 1))

		batches, err := services.NewKitchenDispatcher().Split(o, prepTimes)

		require.NoError(t, err)
		require.Len(t, batches, 2)
		assert.Equal(t, "BAR", batches[0].Department.String())
		assert.Equal(t, "KITCHEN", batches[1].Department.String())

		seen := map[int]string{}
		for _, b := range batches {
			for _, item := range b.Items {
				_, dup := seen[item.LineIndex()]
				assert.False(t, dup, "line %d in two batches", item.LineIndex())
				seen[item.LineIndex()] = b.Department.String()
			}
		}
		assert.Equal(t, map[int]string{0: "KITCHEN", 1: "BAR", 2: "KITCHEN"}, seen)
	})

	t.Run("should build tickets with quantities and estimated time", func(t *testing.T) {
		o := newOrderAt(t, order.Preparing, order.Normal, line(t, steak, "KITCHEN", 2), line(t, beer, "BAR", 1))
		dispatcher := services.NewKitchenDispatcher()

		batches, err := dispatcher.Split(o, prepTimes)
		require.NoError(t, err)

		bar, err := dispatcher.BuildTicket(o, batches[0], now)
		require.NoError(t, err)
		kitchenTicket, err := dispatcher.BuildTicket(o, batches[1], now)
		require.NoError(t, err)

		assert.Equal(t, kitchen.Pending, bar.Status())
		require.Len(t, bar.Items(), 1)
		assert.Equal(t, 1, bar.Items()[0].Quantity())
		require.Len(t, kitchenTicket.Items(), 1)
		assert.Equal(t, 2, kitchenTicket.Items()[0].Quantity())
		assert.Equal(t, 25*time.Minute, kitchenTicket.EstimatedTime())
		assert.Equal(t, "KT-"+o.Number()+"-KITCHEN", kitchenTicket.Number())
	})

	t.Run("should propagate only elevated priority", func(t *testing.T) {
		urgent := newOrderAt(t, order.Preparing, order.Urgent, line(t, beer, "BAR", 1))
		normal := newOrderAt(t, order.Preparing, order.Normal, line(t, beer, "BAR", 1))

		urgentBatches, err := services.NewKitchenDispatcher().Split(urgent, nil)
		require.NoError(t, err)
		normalBatches, err := services.NewKitchenDispatcher().Split(normal, nil)
		require.NoError(t, err)

		assert.Equal(t, order.Urgent, urgentBatches[0].Priority)
		assert.Equal(t, order.Normal, normalBatches[0].Priority)
		assert.Equal(t, time.Duration(0), urgentBatches[0].Items[0].PrepTime())
	})

	t.Run("should refuse orders outside preparation", func(t *testing.T) {
		o := newOrderAt(t, order.Confirmed, order.Normal, line(t, beer, "BAR", 1))

		_, err := services.NewKitchenDispatcher().Split(o, prepTimes)

		require.ErrorIs(t, err, services.ErrOrderIsNotPreparing)
	})

	t.Run("should refuse unconstructed orders", func(t *testing.T) {
		_, err := services.NewKitchenDispatcher().Split(&order.Order{}, prepTimes)
		require.ErrorIs(t, err, order.ErrOrderIsNotConstructed)
	})
}
