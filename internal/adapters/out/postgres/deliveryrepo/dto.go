// Package deliveryrepo stores per-channel notification delivery records.
package deliveryrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

type DeliveryDTO struct {
	NotificationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Channel        string    `gorm:"size:16;primaryKey"`
	OrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Type           string    `gorm:"size:32;not null"`
	Recipient      string    `gorm:"size:512"`
	Status         string    `gorm:"size:16;not null"`
	Attempts       int       `gorm:"not null"`
	LastError      string    `gorm:"type:text"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime:false"`
}

func (DeliveryDTO) TableName() string {
	return "notification_deliveries"
}

func fromDomain(d notification.Delivery) DeliveryDTO {
	return DeliveryDTO{
		NotificationID: d.NotificationID.Bytes(),
		Channel:        string(d.Channel),
		OrderID:        d.OrderID.Bytes(),
		Type:           string(d.Type),
		Recipient:      d.Recipient,
		Status:         string(d.Status),
		Attempts:       d.Attempts,
		LastError:      d.LastError,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toDomain(dto DeliveryDTO) (notification.Delivery, error) {
	notificationID, err := kernel.UUIDFromBytes(dto.NotificationID[:])
	if err != nil {
		return notification.Delivery{}, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return notification.Delivery{}, err
	}
	channel := notification.Channel(dto.Channel)
	if err = channel.Validate(); err != nil {
		return notification.Delivery{}, err
	}

	return notification.Delivery{
		NotificationID: notificationID,
		OrderID:        orderID,
		Type:           notification.Type(dto.Type),
		Channel:        channel,
		Recipient:      dto.Recipient,
		Status:         notification.DeliveryStatus(dto.Status),
		Attempts:       dto.Attempts,
		LastError:      dto.LastError,
		UpdatedAt:      dto.UpdatedAt,
	}, nil
}
