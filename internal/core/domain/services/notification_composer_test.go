package services_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationComposer_Compose(t *testing.T) {
	composer := services.NewNotificationComposer("IDR", nil)
	o := newOrderAt(t, order.Ready, order.Normal, line(t, kernel.NewUUID(), "KITCHEN", 3))

	t.Run("ready notifies on sms and push with high priority", func(t *testing.T) {
		req, ok := composer.Compose(o, order.Ready)

		require.True(t, ok)
		assert.Equal(t, notification.OrderReady, req.Type)
		assert.Equal(t, []notification.Channel{notification.SMS, notification.Push}, req.Channels)
		assert.Equal(t, notification.PriorityHigh, req.Priority)
		assert.True(t, req.ID.IsEqual(notification.RequestID(o.ID(), notification.OrderReady)))
		assert.Equal(t, "IDR", req.Variables["total"].Currency)
		assert.True(t, req.Variables["total"].Amount.Equal(o.TotalAmount()))
		assert.Equal(t, o.Number(), req.Variables["order_number"].Text)
	})

	t.Run("served notifies on sms with normal priority", func(t *testing.T) {
		req, ok := composer.Compose(o, order.Served)

		require.True(t, ok)
		assert.Equal(t, notification.OrderServed, req.Type)
		assert.Equal(t, []notification.Channel{notification.SMS}, req.Channels)
		assert.Equal(t, notification.PriorityNormal, req.Priority)
	})

	t.Run("other statuses produce nothing", func(t *testing.T) {
		for _, s := range []order.Status{order.Received, order.Confirmed, order.Preparing, order.Cancelled} {
			_, ok := composer.Compose(o, s)
			assert.False(t, ok, s.String())
		}
	})

	t.Run("configured channels override defaults", func(t *testing.T) {
		custom := services.NewNotificationComposer("IDR", map[notification.Type][]notification.Channel{
			notification.OrderServed: {notification.SMS, notification.Email},
		})

		served, _ := custom.Compose(o, order.Served)
		ready, _ := custom.Compose(o, order.Ready)

		assert.Equal(t, []notification.Channel{notification.SMS, notification.Email}, served.Channels)
		assert.Equal(t, []notification.Channel{notification.SMS, notification.Push}, ready.Channels)
	})
}
