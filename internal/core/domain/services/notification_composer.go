package services

import (
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/core/domain/model/order"
)

// NotificationComposer decides which customer notification, if any, a status
// change produces.
//
//	READY  -> order_ready,  sms + push, high priority
//	SERVED -> order_served, sms,        normal priority
//
// Any other status produces nothing.
type NotificationComposer struct {
	currency string
	channels map[notification.Type][]notification.Channel
}

// DefaultChannels returns the channel plan used when none is configured.
func DefaultChannels() map[notification.Type][]notification.Channel {
	return map[notification.Type][]notification.Channel{
		notification.OrderReady:  {notification.SMS, notification.Push},
		notification.OrderServed: {notification.SMS},
	}
}

// NewNotificationComposer creates a composer. A nil or partial channel plan is
// completed from DefaultChannels.
func NewNotificationComposer(currency string, channels map[notification.Type][]notification.Channel) NotificationComposer {
	plan := DefaultChannels()
	for typ, chs := range channels {
		if len(chs) > 0 {
			plan[typ] = append([]notification.Channel(nil), chs...)
		}
	}
	return NotificationComposer{currency: currency, channels: plan}
}

// Compose returns the request for entering newStatus, or false when the status
// is not customer facing.
func (c NotificationComposer) Compose(o *order.Order, newStatus order.Status) (notification.Request, bool) {
	var (
		typ      notification.Type
		priority notification.Priority
	)
	switch newStatus {
	case order.Ready:
		typ, priority = notification.OrderReady, notification.PriorityHigh
	case order.Served:
		typ, priority = notification.OrderServed, notification.PriorityNormal
	default:
		return notification.Request{}, false
	}

	contact := o.Contact()
	return notification.Request{
		ID:       notification.RequestID(o.ID(), typ),
		OrderID:  o.ID(),
		Type:     typ,
		Channels: append([]notification.Channel(nil), c.channels[typ]...),
		Recipient: notification.Recipient{
			CustomerID: o.CustomerID(),
			Phone:      contact.Phone(),
			Email:      contact.Email(),
			PushToken:  contact.PushToken(),
		},
		TemplateID: string(typ),
		Variables: map[string]notification.Variable{
			"order_number": notification.TextVariable(o.Number()),
			"total":        notification.CurrencyVariable(o.TotalAmount(), c.currency),
		},
		Priority: priority,
	}, true
}
