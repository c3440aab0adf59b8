package queries

import (
	"context"
	"database/sql"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderTicketsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderTicketsQueryHandler(db *gorm.DB) GetOrderTicketsQueryHandler {
	return GetOrderTicketsQueryHandler{db: db}
}

// Handle returns the tickets ordered by department. An order without tickets
// yields an empty slice; an unknown order yields errs.ObjectNotFoundError.
func (h GetOrderTicketsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTicketsQuery,
) ([]GetOrderTicketsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	orderID := query.OrderID().Bytes()

	var exists bool
	if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, orderID).Scan(&exists).Error; err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderId", query.OrderID().String())
	}

	tickets, index, err := h.readTickets(db, orderID)
	if err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return tickets, nil
	}

	rows, err := db.Raw(`
		SELECT
			i.ticket_id,
			i.line_index,
			i.menu_item_id,
			i.quantity,
			i.notes,
			i.prep_seconds,
			i.status,
			i.completed_at
		FROM kitchen_ticket_items i
		JOIN kitchen_tickets t ON t.id = i.ticket_id
		WHERE t.order_id = ?
		ORDER BY i.ticket_id, i.line_index
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item TicketItemView
		var ticketID, menuItemID uuid.UUID
		var prepSeconds int64
		var status int
		var completedAt sql.NullTime

		if err = rows.Scan(
			&ticketID,
			&item.LineIndex,
			&menuItemID,
			&item.Quantity,
			&item.Notes,
			&prepSeconds,
			&status,
			&completedAt,
		); err != nil {
			return nil, err
		}

		if item.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		item.Status = kitchen.Status(status)
		if completedAt.Valid {
			at := completedAt.Time
			item.CompletedAt = &at
		}

		pos, ok := index[ticketID]
		if !ok {
			continue
		}
		t := &tickets[pos]
		t.Items = append(t.Items, item)
		if prep := time.Duration(prepSeconds) * time.Second; prep > t.EstimatedTime {
			t.EstimatedTime = prep
		}
	}

	return tickets, rows.Err()
}

func (h GetOrderTicketsQueryHandler) readTickets(
	db *gorm.DB,
	orderID uuid.UUID,
) ([]GetOrderTicketsQueryResponse, map[uuid.UUID]int, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			number,
			department,
			status,
			priority,
			assigned_chef,
			created_at,
			updated_at
		FROM kitchen_tickets
		WHERE order_id = ?
		ORDER BY department
	`, orderID).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	tickets := make([]GetOrderTicketsQueryResponse, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var t GetOrderTicketsQueryResponse
		var id uuid.UUID
		var status, priority int

		if err = rows.Scan(
			&id,
			&t.Number,
			&t.Department,
			&status,
			&priority,
			&t.AssignedChef,
			&t.CreatedAt,
			&t.UpdatedAt,
		); err != nil {
			return nil, nil, err
		}

		if t.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, nil, err
		}
		t.Status = kitchen.Status(status)
		t.Priority = order.Priority(priority)
		t.Items = make([]TicketItemView, 0)

		index[id] = len(tickets)
		tickets = append(tickets, t)
	}

	return tickets, index, rows.Err()
}
