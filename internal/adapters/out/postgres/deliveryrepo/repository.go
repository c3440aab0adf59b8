package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements ports.DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db *gorm.DB
}

func NewGormDeliveryRepository(db *gorm.DB) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db}
}

func (r *GormDeliveryRepository) Find(
	ctx context.Context,
	notificationID kernel.UUID,
	channel notification.Channel,
) (notification.Delivery, error) {
	if err := errors.Join(notificationID.Validate(), channel.Validate()); err != nil {
		return notification.Delivery{}, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		First(&dto, "notification_id = ? AND channel = ?", notificationID.Bytes(), string(channel)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.Delivery{}, errs.NewObjectNotFoundError("delivery", notificationID.String()+"/"+string(channel))
		}
		return notification.Delivery{}, err
	}

	return toDomain(dto)
}

// Claim inserts a pending record, or takes over a failed or stale pending one.
// A conflicting row that does not qualify leaves no row affected.
func (r *GormDeliveryRepository) Claim(
	ctx context.Context,
	delivery notification.Delivery,
	staleBefore time.Time,
) (bool, error) {
	if err := errors.Join(delivery.NotificationID.Validate(), delivery.OrderID.Validate(), delivery.Channel.Validate()); err != nil {
		return false, err
	}

	dto := fromDomain(delivery)
	dto.Status = string(notification.Pending)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "channel"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "recipient", "updated_at"}),
			Where: clause.Where{Exprs: []clause.Expression{clause.Expr{
				SQL: "notification_deliveries.status = ? OR " +
					"(notification_deliveries.status = ? AND notification_deliveries.updated_at < ?)",
				Vars: []any{string(notification.Failed), string(notification.Pending), staleBefore.UTC()},
			}}},
		}).
		Create(&dto)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Save upserts on (notification_id, channel).
func (r *GormDeliveryRepository) Save(ctx context.Context, delivery notification.Delivery) error {
	if err := errors.Join(delivery.NotificationID.Validate(), delivery.OrderID.Validate(), delivery.Channel.Validate()); err != nil {
		return err
	}

	dto := fromDomain(delivery)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "notification_id"}, {Name: "channel"}},
			UpdateAll: true,
		}).
		Create(&dto).Error
}
