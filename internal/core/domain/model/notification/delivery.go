package notification

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
)

// DeliveryStatus is the outcome of one channel attempt.
type DeliveryStatus string

const (
	Delivered DeliveryStatus = "delivered"
	Failed    DeliveryStatus = "failed"

	// Skipped means the recipient has no address on the channel.
	Skipped DeliveryStatus = "skipped"

	// Pending means a sender has claimed the channel and has not reported back yet.
	Pending DeliveryStatus = "pending"
)

// Delivery is the record kept per (notification, channel). A delivered record
// prevents the channel from being sent again when the notification is retried.
type Delivery struct {
	NotificationID kernel.UUID
	OrderID        kernel.UUID
	Type           Type
	Channel        Channel
	Recipient      string
	Status         DeliveryStatus
	Attempts       int
	LastError      string
	UpdatedAt      time.Time
}

// IsFinal reports whether the channel must not be attempted again.
func (d Delivery) IsFinal() bool {
	return d.Status == Delivered || d.Status == Skipped
}
