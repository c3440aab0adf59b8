package services

import (
	"errors"
	"sort"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/kitchen"
	"restaurant/internal/core/domain/model/order"
)

// ErrOrderIsNotPreparing is returned when tickets are requested for an order
// that is not in PREPARING.
var ErrOrderIsNotPreparing = errors.New("order is not in preparation")

// DepartmentBatch is the share of an order that one department prepares.
type DepartmentBatch struct {
	Department kernel.Department
	Priority   order.Priority
	Items      []kitchen.Item
}

// KitchenDispatcher partitions an order into per-department batches.
//
// Every order line lands in exactly one batch, the batch of its department,
// so the union of all batches equals the order lines without overlap.
//
// Example usage:
//
//	batches, err := services.NewKitchenDispatcher().Split(o, prepTimes)
//	for _, b := range batches {
//	    ticket, err := services.NewKitchenDispatcher().BuildTicket(o, b, now)
//	}
type KitchenDispatcher struct{}

func NewKitchenDispatcher() KitchenDispatcher {
	return KitchenDispatcher{}
}

// Split groups lines by department. prepTimes maps menu item ids to their
// preparation time; unknown items count as zero. Batches are ordered by department code.
func (KitchenDispatcher) Split(o *order.Order, prepTimes map[kernel.UUID]time.Duration) ([]DepartmentBatch, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if o.Status() != order.Preparing {
		return nil, ErrOrderIsNotPreparing
	}

	priority := order.Normal
	if o.Priority().IsElevated() {
		priority = o.Priority()
	}

	byDepartment := map[string]*DepartmentBatch{}
	for i, line := range o.Lines() {
		item, err := kitchen.NewItem(i, line.MenuItemID(), line.Quantity(), line.Notes(), prepTimes[line.MenuItemID()])
		if err != nil {
			return nil, err
		}

		code := line.Department().String()
		batch, ok := byDepartment[code]
		if !ok {
			batch = &DepartmentBatch{Department: line.Department(), Priority: priority}
			byDepartment[code] = batch
		}
		batch.Items = append(batch.Items, item)
	}

	codes := make([]string, 0, len(byDepartment))
	for code := range byDepartment {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	batches := make([]DepartmentBatch, 0, len(codes))
	for _, code := range codes {
		batches = append(batches, *byDepartment[code])
	}
	return batches, nil
}

// BuildTicket creates the pending ticket for one batch.
func (KitchenDispatcher) BuildTicket(o *order.Order, batch DepartmentBatch, now time.Time) (*kitchen.Ticket, error) {
	return kitchen.NewTicket(o.ID(), o.Number(), batch.Department, batch.Priority, batch.Items, now)
}
