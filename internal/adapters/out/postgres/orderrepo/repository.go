package orderrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Every write bumps the version column. Update only matches the row when the
// stored version equals the aggregate's, so a writer holding a stale snapshot
// gets errs.ConflictError instead of overwriting a newer status.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order, its lines and its initial history.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order", aggregate.ID().String())
	}
	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(dto.Version)
	return nil
}

// Update writes the status fields and appends pending history entries.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	next := aggregate.Version() + 1
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", aggregate.ID().Bytes(), aggregate.Version()).
		Updates(map[string]any{
			"status":     int(aggregate.Status()),
			"version":    next,
			"updated_at": aggregate.UpdatedAt(),
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "order", aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate.ID())
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	aggregate.MarkPersisted(next)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate takes a row lock (SELECT ... FOR UPDATE). It is only meaningful
// inside a transaction.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, query *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id.String())
		}
		return nil, pgerr.Translate(err, "order", id.String())
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", dto.ID).
		Order("line_index").
		Find(&dto.Lines).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order) error {
	rows := historyFromDomain(aggregate.ID().Bytes(), aggregate.PendingStatusChanges())
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, id kernel.UUID) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("orderId", id.String())
	}
	return errs.NewConflictError("order", id.String())
}
