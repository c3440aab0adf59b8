package ticketrepo

import (
	"context"
	"errors"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTicketRepository implements ports.KitchenTicketRepository using GORM.
type GormTicketRepository struct {
	db *gorm.DB
}

func NewGormTicketRepository(db *gorm.DB) *GormTicketRepository {
	return &GormTicketRepository{db: db}
}

// Add inserts the ticket and its items. A second ticket for the same order and
// department violates the unique index and is reported as errs.ConflictError.
func (r *GormTicketRepository) Add(ctx context.Context, ticket *kitchen.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ticket)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "kitchen ticket", ticket.Number())
	}
	return nil
}

func (r *GormTicketRepository) Update(ctx context.Context, ticket *kitchen.Ticket) error {
	if err := ticket.Validate(); err != nil {
		return err
	}

	dto := fromDomain(ticket)
	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"assigned_chef": dto.AssignedChef,
			"updated_at":    dto.UpdatedAt,
		})
	if result.Error != nil {
		return pgerr.Translate(result.Error, "kitchen ticket", ticket.Number())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("ticketId", ticket.ID().String())
	}

	for _, item := range dto.Items {
		err := r.db.WithContext(ctx).
			Model(&TicketItemDTO{}).
			Where("ticket_id = ? AND line_index = ?", item.TicketID, item.LineIndex).
			Updates(map[string]any{
				"status":       item.Status,
				"completed_at": item.CompletedAt,
			}).Error
		if err != nil {
			return pgerr.Translate(err, "kitchen ticket", ticket.Number())
		}
	}
	return nil
}

func (r *GormTicketRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*kitchen.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticketId", id.String())
		}
		return nil, pgerr.Translate(err, "kitchen ticket", id.String())
	}

	return r.withItems(ctx, dto)
}

func (r *GormTicketRepository) FindByOrderAndDepartment(
	ctx context.Context,
	orderID kernel.UUID,
	department kernel.Department,
) (*kitchen.Ticket, error) {
	if err := errors.Join(orderID.Validate(), department.Validate()); err != nil {
		return nil, err
	}

	var dto TicketDTO
	err := r.db.WithContext(ctx).
		First(&dto, "order_id = ? AND department = ?", orderID.Bytes(), department.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("ticket", orderID.String()+"/"+department.String())
		}
		return nil, err
	}

	return r.withItems(ctx, dto)
}

func (r *GormTicketRepository) withItems(ctx context.Context, dto TicketDTO) (*kitchen.Ticket, error) {
	if err := r.db.WithContext(ctx).
		Where("ticket_id = ?", dto.ID).
		Order("line_index").
		Find(&dto.Items).Error; err != nil {
		return nil, err
	}
	return toDomain(dto)
}
