package http

import (
	"time"

	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/generated/servers"
	"restaurant/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toKernelUUID(param string, id openapi_types.UUID) (kernel.UUID, error) {
	result, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(param, err)
	}
	return result, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	result := id.Bytes()
	return &result
}

func snapshotFromOrder(o *order.Order) servers.OrderSnapshot {
	lines := o.Lines()
	responseLines := make([]servers.OrderLine, len(lines))
	for i, line := range lines {
		responseLines[i] = servers.OrderLine{
			Index:      i,
			MenuItemId: line.MenuItemID().Bytes(),
			Quantity:   line.Quantity(),
			UnitPrice:  line.UnitPrice().StringFixed(2),
			Department: line.Department().String(),
			Notes:      optional(line.Notes()),
		}
	}

	return servers.OrderSnapshot{
		Id:          o.ID().Bytes(),
		Number:      o.Number(),
		Status:      o.Status().String(),
		Type:        o.Type().String(),
		CustomerId:  optionalUUID(o.CustomerID()),
		TableNumber: o.TableNumber(),
		Priority:    o.Priority().String(),
		Notes:       optional(o.Notes()),
		TotalAmount: o.TotalAmount().StringFixed(2),
		Version:     o.Version(),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
		Lines:       responseLines,
	}
}

func snapshotFromView(v *queries.GetOrderQueryResponse) servers.OrderSnapshot {
	lines := make([]servers.OrderLine, len(v.Lines))
	for i, line := range v.Lines {
		lines[i] = servers.OrderLine{
			Index:      line.Index,
			MenuItemId: line.MenuItemID.Bytes(),
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice.StringFixed(2),
			Department: line.Department,
			Notes:      optional(line.Notes),
		}
	}

	history := make([]servers.StatusChange, len(v.History))
	for i, change := range v.History {
		entry := servers.StatusChange{
			To:    change.To.String(),
			Actor: change.Actor,
			At:    change.At,
			Notes: optional(change.Notes),
		}
		if change.From != order.Unknown {
			entry.From = optional(change.From.String())
		}
		history[i] = entry
	}

	return servers.OrderSnapshot{
		Id:          v.ID.Bytes(),
		Number:      v.Number,
		Status:      v.Status.String(),
		Type:        v.Type.String(),
		CustomerId:  optionalUUID(v.CustomerID),
		TableNumber: v.TableNumber,
		Priority:    v.Priority.String(),
		Notes:       optional(v.Notes),
		TotalAmount: v.TotalAmount.StringFixed(2),
		Version:     v.Version,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
		Lines:       lines,
		History:     &history,
	}
}

func ticketFromDomain(t *kitchen.Ticket) servers.Ticket {
	items := t.Items()
	responseItems := make([]servers.TicketItem, len(items))
	for i, item := range items {
		responseItems[i] = servers.TicketItem{
			Index:       item.LineIndex(),
			MenuItemId:  item.MenuItemID().Bytes(),
			Quantity:    item.Quantity(),
			Notes:       optional(item.Notes()),
			Status:      item.Status().String(),
			CompletedAt: item.CompletedAt(),
		}
	}

	return servers.Ticket{
		Id:               t.ID().Bytes(),
		Number:           t.Number(),
		Department:       t.Department().String(),
		Status:           t.Status().String(),
		Priority:         t.Priority().String(),
		AssignedChef:     optional(t.AssignedChef()),
		EstimatedSeconds: int(t.EstimatedTime() / time.Second),
		CreatedAt:        t.CreatedAt(),
		UpdatedAt:        t.UpdatedAt(),
		Items:            responseItems,
	}
}

func ticketFromView(v queries.GetOrderTicketsQueryResponse) servers.Ticket {
	items := make([]servers.TicketItem, len(v.Items))
	for i, item := range v.Items {
		items[i] = servers.TicketItem{
			Index:       item.LineIndex,
			MenuItemId:  item.MenuItemID.Bytes(),
			Quantity:    item.Quantity,
			Notes:       optional(item.Notes),
			Status:      item.Status.String(),
			CompletedAt: item.CompletedAt,
		}
	}

	return servers.Ticket{
		Id:               v.ID.Bytes(),
		Number:           v.Number,
		Department:       v.Department,
		Status:           v.Status.String(),
		Priority:         v.Priority.String(),
		AssignedChef:     optional(v.AssignedChef),
		EstimatedSeconds: int(v.EstimatedTime / time.Second),
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
		Items:            items,
	}
}
