package queries

import (
	"context"
	"database/sql"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns errs.ObjectNotFoundError for an unknown order. Lines are
// ordered by position, history by time of change.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID().Bytes()

	resp, err := h.readOrder(db, query.OrderID())
	if err != nil {
		return nil, err
	}

	if resp.Lines, err = h.readLines(db, id); err != nil {
		return nil, err
	}
	if resp.History, err = h.readHistory(db, id); err != nil {
		return nil, err
	}

	return resp, nil
}

func (h GetOrderQueryHandler) readOrder(db *gorm.DB, orderID kernel.UUID) (*GetOrderQueryResponse, error) {
	rows, err := db.Raw(`
		SELECT
			number,
			status,
			type,
			customer_id,
			table_number,
			priority,
			notes,
			total_amount,
			version,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("orderId", orderID.String())
	}

	resp := &GetOrderQueryResponse{ID: orderID}
	var status, orderType, priority int
	var customerID uuid.NullUUID
	var table sql.NullInt64

	if err = rows.Scan(
		&resp.Number,
		&status,
		&orderType,
		&customerID,
		&table,
		&priority,
		&resp.Notes,
		&resp.TotalAmount,
		&resp.Version,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	); err != nil {
		return nil, err
	}

	resp.Status = order.Status(status)
	resp.Type = order.Type(orderType)
	resp.Priority = order.Priority(priority)
	if customerID.Valid {
		cID, idErr := kernel.UUIDFromBytes(customerID.UUID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.CustomerID = &cID
	}
	if table.Valid {
		n := int(table.Int64)
		resp.TableNumber = &n
	}

	return resp, rows.Err()
}

func (h GetOrderQueryHandler) readLines(db *gorm.DB, id uuid.UUID) ([]OrderLineView, error) {
	rows, err := db.Raw(`
		SELECT
			line_index,
			menu_item_id,
			quantity,
			unit_price,
			department,
			notes
		FROM order_lines
		WHERE order_id = ?
		ORDER BY line_index
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := make([]OrderLineView, 0)
	for rows.Next() {
		var line OrderLineView
		var menuItemID uuid.UUID
		if err = rows.Scan(
			&line.Index,
			&menuItemID,
			&line.Quantity,
			&line.UnitPrice,
			&line.Department,
			&line.Notes,
		); err != nil {
			return nil, err
		}
		if line.MenuItemID, err = kernel.UUIDFromBytes(menuItemID[:]); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	return lines, rows.Err()
}

func (h GetOrderQueryHandler) readHistory(db *gorm.DB, id uuid.UUID) ([]StatusChangeView, error) {
	rows, err := db.Raw(`
		SELECT
			from_status,
			to_status,
			notes,
			actor,
			changed_at
		FROM order_status_history
		WHERE order_id = ?
		ORDER BY changed_at, id
	`, id).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]StatusChangeView, 0)
	for rows.Next() {
		var change StatusChangeView
		var from, to int
		if err = rows.Scan(&from, &to, &change.Notes, &change.Actor, &change.At); err != nil {
			return nil, err
		}
		change.From = order.Status(from)
		change.To = order.Status(to)
		history = append(history, change)
	}

	return history, rows.Err()
}
