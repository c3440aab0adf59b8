// Package orderrepo persists order aggregates: the order row, its lines and the
// status history.
package orderrepo

import (
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is the orders row. Timestamps are owned by the aggregate, so gorm's
// automatic time tracking is disabled.
type OrderDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number      string          `gorm:"size:32;not null;uniqueIndex"`
	Status      int             `gorm:"not null;index"`
	Type        int             `gorm:"not null"`
	CustomerID  *uuid.UUID      `gorm:"type:uuid;index"`
	TableNumber *int            `gorm:"type:smallint"`
	Contact     ContactDTO      `gorm:"embedded;embeddedPrefix:contact_"`
	Priority    int             `gorm:"not null;default:0"`
	Notes       string          `gorm:"size:500"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Version     int             `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false"`

	Lines []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type ContactDTO struct {
	Phone     string `gorm:"size:32"`
	Email     string `gorm:"size:254"`
	PushToken string `gorm:"size:512"`
}

// OrderLineDTO keeps the line position so that kitchen items can refer to it.
type OrderLineDTO struct {
	OrderID    uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LineIndex  int             `gorm:"primaryKey;autoIncrement:false"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Department string          `gorm:"size:32;not null"`
	Notes      string          `gorm:"size:500"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// StatusChangeDTO is an append-only history row.
type StatusChangeDTO struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus int       `gorm:"not null"`
	ToStatus   int       `gorm:"not null"`
	Notes      string    `gorm:"size:500"`
	Actor      string    `gorm:"size:128;not null"`
	ChangedAt  time.Time `gorm:"not null"`
}

func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(o *order.Order) OrderDTO {
	var customerID *uuid.UUID
	if id := o.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	lines := o.Lines()
	dto := OrderDTO{
		ID:          o.ID().Bytes(),
		Number:      o.Number(),
		Status:      int(o.Status()),
		Type:        int(o.Type()),
		CustomerID:  customerID,
		TableNumber: o.TableNumber(),
		Contact: ContactDTO{
			Phone:     o.Contact().Phone(),
			Email:     o.Contact().Email(),
			PushToken: o.Contact().PushToken(),
		},
		Priority:    int(o.Priority()),
		Notes:       o.Notes(),
		TotalAmount: o.TotalAmount(),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Lines:       make([]OrderLineDTO, 0, len(lines)),
	}

	for i, line := range lines {
		dto.Lines = append(dto.Lines, OrderLineDTO{
			OrderID:    dto.ID,
			LineIndex:  i,
			MenuItemID: line.MenuItemID().Bytes(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice(),
			Department: line.Department().String(),
			Notes:      line.Notes(),
		})
	}

	return dto
}

func historyFromDomain(orderID uuid.UUID, changes []order.StatusChange) []StatusChangeDTO {
	rows := make([]StatusChangeDTO, 0, len(changes))
	for _, c := range changes {
		rows = append(rows, StatusChangeDTO{
			OrderID:    orderID,
			FromStatus: int(c.From),
			ToStatus:   int(c.To),
			Notes:      c.Notes,
			Actor:      c.Actor,
			ChangedAt:  c.At,
		})
	}
	return rows
}

// toDomain expects dto.Lines ordered by LineIndex.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes((*dto.CustomerID)[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	contact, err := order.NewContact(dto.Contact.Phone, dto.Contact.Email, dto.Contact.PushToken)
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for i, l := range dto.Lines {
		if l.LineIndex != i {
			return nil, fmt.Errorf("order %s: line %d stored at position %d", id, l.LineIndex, i)
		}
		menuItemID, idErr := kernel.UUIDFromBytes(l.MenuItemID[:])
		if idErr != nil {
			return nil, idErr
		}
		department, deptErr := kernel.NewDepartment(l.Department)
		if deptErr != nil {
			return nil, deptErr
		}
		line, lineErr := order.NewLine(menuItemID, l.Quantity, l.UnitPrice, department, l.Notes)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		order.Status(dto.Status),
		order.Type(dto.Type),
		lines,
		order.Details{
			CustomerID:  customerID,
			TableNumber: dto.TableNumber,
			Contact:     contact,
			Priority:    order.Priority(dto.Priority),
			Notes:       dto.Notes,
		},
		dto.Version,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
