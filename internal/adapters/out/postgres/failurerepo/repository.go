package failurerepo

import (
	"context"

	"restaurant/internal/core/domain/model/dispatch"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormFailureRepository implements ports.DispatchFailureRepository using GORM.
type GormFailureRepository struct {
	db *gorm.DB
}

func NewGormFailureRepository(db *gorm.DB) *GormFailureRepository {
	return &GormFailureRepository{db: db}
}

func (r *GormFailureRepository) Add(ctx context.Context, failure *dispatch.Failure) error {
	if err := failure.Validate(); err != nil {
		return err
	}
	dto := fromDomain(failure)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormFailureRepository) Update(ctx context.Context, failure *dispatch.Failure) error {
	if err := failure.Validate(); err != nil {
		return err
	}

	dto := fromDomain(failure)
	result := r.db.WithContext(ctx).
		Model(&FailureDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"reason":     dto.Reason,
			"attempts":   dto.Attempts,
			"resolved":   dto.Resolved,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("dispatchFailure", failure.ID().String())
	}
	return nil
}

func (r *GormFailureRepository) ListRetryable(ctx context.Context, maxAttempts, limit int) ([]*dispatch.Failure, error) {
	var dtos []FailureDTO
	err := r.db.WithContext(ctx).
		Where("resolved = ? AND attempts < ?", false, maxAttempts).
		Order("created_at").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	failures := make([]*dispatch.Failure, 0, len(dtos))
	for _, dto := range dtos {
		f, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		failures = append(failures, f)
	}
	return failures, nil
}
