package ports

import (
	"context"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"
)

// DeliveryRepository keeps one record per (notification, channel).
type DeliveryRepository interface {
	// Find returns the record or errs.ObjectNotFoundError.
	Find(ctx context.Context, notificationID kernel.UUID, channel notification.Channel) (notification.Delivery, error)

	// Claim marks the channel pending before it is sent. It reports false when
	// the channel is final or was claimed by another sender after staleBefore.
	Claim(ctx context.Context, delivery notification.Delivery, staleBefore time.Time) (bool, error)

	// Save inserts or replaces the record for (delivery.NotificationID, delivery.Channel).
	Save(ctx context.Context, delivery notification.Delivery) error
}

// MessageSender delivers a rendered message on one channel.
type MessageSender interface {
	Send(ctx context.Context, recipient, message string) error
}
