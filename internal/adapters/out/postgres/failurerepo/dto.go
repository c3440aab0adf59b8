// Package failurerepo stores the dispatch failure log read by the retry job.
package failurerepo

import (
	"time"

	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type FailureDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Kind      string    `gorm:"size:16;not null"`
	Status    int       `gorm:"not null"`
	Reason    string    `gorm:"type:text"`
	Attempts  int       `gorm:"not null"`
	Resolved  bool      `gorm:"not null;index:idx_dispatch_failures_pending,priority:1"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;index:idx_dispatch_failures_pending,priority:2"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

func (FailureDTO) TableName() string {
	return "dispatch_failures"
}

func fromDomain(f *dispatch.Failure) FailureDTO {
	return FailureDTO{
		ID:        f.ID().Bytes(),
		OrderID:   f.OrderID().Bytes(),
		Kind:      string(f.Kind()),
		Status:    int(f.Status()),
		Reason:    f.Reason(),
		Attempts:  f.Attempts(),
		Resolved:  f.IsResolved(),
		CreatedAt: f.CreatedAt(),
		UpdatedAt: f.UpdatedAt(),
	}
}

func toDomain(dto FailureDTO) (*dispatch.Failure, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	return dispatch.RestoreFailure(
		id,
		orderID,
		dispatch.Kind(dto.Kind),
		order.Status(dto.Status),
		dto.Reason,
		dto.Attempts,
		dto.Resolved,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
