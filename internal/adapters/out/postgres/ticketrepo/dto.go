// Package ticketrepo persists kitchen tickets and their items.
package ticketrepo

import (
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// TicketDTO is the kitchen_tickets row. The composite unique index on
// (order_id, department) keeps a department from getting two tickets for one order.
type TicketDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"size:64;not null;uniqueIndex"`
	OrderID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_kitchen_tickets_order_department"`
	Department   string    `gorm:"size:32;not null;uniqueIndex:idx_kitchen_tickets_order_department"`
	Status       int       `gorm:"not null;index"`
	Priority     int       `gorm:"not null;default:0"`
	AssignedChef string    `gorm:"size:128"`
	CreatedAt    time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime:false"`

	Items []TicketItemDTO `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE"`
}

func (TicketDTO) TableName() string {
	return "kitchen_tickets"
}

type TicketItemDTO struct {
	TicketID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineIndex   int       `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID  uuid.UUID `gorm:"type:uuid;not null"`
	Quantity    int       `gorm:"not null"`
	Notes       string    `gorm:"size:500"`
	PrepSeconds int64     `gorm:"not null"`
	Status      int       `gorm:"not null"`
	CompletedAt *time.Time
}

func (TicketItemDTO) TableName() string {
	return "kitchen_ticket_items"
}

func fromDomain(t *kitchen.Ticket) TicketDTO {
	items := t.Items()
	dto := TicketDTO{
		ID:           t.ID().Bytes(),
		Number:       t.Number(),
		OrderID:      t.OrderID().Bytes(),
		Department:   t.Department().String(),
		Status:       int(t.Status()),
		Priority:     int(t.Priority()),
		AssignedChef: t.AssignedChef(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
		Items:        make([]TicketItemDTO, 0, len(items)),
	}
	for _, item := range items {
		dto.Items = append(dto.Items, itemFromDomain(dto.ID, item))
	}
	return dto
}

func itemFromDomain(ticketID uuid.UUID, item kitchen.Item) TicketItemDTO {
	return TicketItemDTO{
		TicketID:    ticketID,
		LineIndex:   item.LineIndex(),
		MenuItemID:  item.MenuItemID().Bytes(),
		Quantity:    item.Quantity(),
		Notes:       item.Notes(),
		PrepSeconds: int64(item.PrepTime() / time.Second),
		Status:      int(item.Status()),
		CompletedAt: item.CompletedAt(),
	}
}

func toDomain(dto TicketDTO) (*kitchen.Ticket, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	department, err := kernel.NewDepartment(dto.Department)
	if err != nil {
		return nil, err
	}

	items := make([]kitchen.Item, 0, len(dto.Items))
	for _, i := range dto.Items {
		menuItemID, idErr := kernel.UUIDFromBytes(i.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := kitchen.RestoreItem(
			i.LineIndex,
			menuItemID,
			i.Quantity,
			i.Notes,
			time.Duration(i.PrepSeconds)*time.Second,
			kitchen.Status(i.Status),
			i.CompletedAt,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return kitchen.RestoreTicket(
		id,
		dto.Number,
		orderID,
		department,
		kitchen.Status(dto.Status),
		order.Priority(dto.Priority),
		dto.AssignedChef,
		items,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
