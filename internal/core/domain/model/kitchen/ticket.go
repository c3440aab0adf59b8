package kitchen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

const maxChefNameLength = 100

var (
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")

	// ErrTicketIsClosed is returned when a served or cancelled ticket is modified.
	ErrTicketIsClosed = errors.New("ticket is closed")
)

// Ticket is the unit of work one department receives for one order.
// There is at most one ticket per (order, department); its id is derived from that pair.
type Ticket struct {
	id            kernel.UUID
	number        string
	orderID       kernel.UUID
	department    kernel.Department
	status        Status
	priority      order.Priority
	assignedChef  string
	estimatedTime time.Duration
	items         []Item
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

// TicketID returns the deterministic ticket identifier for an order and department.
func TicketID(orderID kernel.UUID, department kernel.Department) kernel.UUID {
	return kernel.NewNameBasedUUID("kitchen-ticket", orderID.String(), department.String())
}

// TicketNumber formats the human readable ticket number, e.g. KT-ORD-1A2B3C4D-BAR.
func TicketNumber(orderNumber string, department kernel.Department) string {
	return fmt.Sprintf("KT-%s-%s", orderNumber, department.String())
}

// NewTicket creates a pending ticket. The estimated time is the longest item
// preparation time, since items of one ticket are prepared in parallel.
func NewTicket(
	orderID kernel.UUID,
	orderNumber string,
	department kernel.Department,
	priority order.Priority,
	items []Item,
	now time.Time,
) (*Ticket, error) {
	if err := errors.Join(orderID.Validate(), department.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(orderNumber) == "" {
		return nil, errs.NewValueIsRequiredError("orderNumber")
	}

	return RestoreTicket(
		TicketID(orderID, department),
		TicketNumber(orderNumber, department),
		orderID,
		department,
		Pending,
		priority,
		"",
		items,
		now.UTC(),
		now.UTC(),
	)
}

func RestoreTicket(
	id kernel.UUID,
	number string,
	orderID kernel.UUID,
	department kernel.Department,
	status Status,
	priority order.Priority,
	assignedChef string,
	items []Item,
	createdAt time.Time,
	updatedAt time.Time,
) (*Ticket, error) {
	var errList []error
	errList = append(errList, id.Validate(), orderID.Validate(), department.Validate(), status.Validate(), priority.Validate())
	if number == "" {
		errList = append(errList, errs.NewValueIsRequiredError("number"))
	}
	if len(items) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("items"))
	}
	seen := make(map[int]struct{}, len(items))
	for _, item := range items {
		if _, dup := seen[item.lineIndex]; dup {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("line %d appears twice", item.lineIndex)))
		}
		seen[item.lineIndex] = struct{}{}
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	t := &Ticket{
		id:            id,
		number:        number,
		orderID:       orderID,
		department:    department,
		status:        status,
		priority:      priority,
		assignedChef:  assignedChef,
		items:         make([]Item, len(items)),
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
	copy(t.items, items)
	for _, item := range items {
		if item.prepTime > t.estimatedTime {
			t.estimatedTime = item.prepTime
		}
	}
	return t, nil
}

func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

func (t *Ticket) ID() kernel.UUID               { return t.id }
func (t *Ticket) Number() string                { return t.number }
func (t *Ticket) OrderID() kernel.UUID          { return t.orderID }
func (t *Ticket) Department() kernel.Department { return t.department }
func (t *Ticket) Status() Status                { return t.status }
func (t *Ticket) Priority() order.Priority      { return t.priority }
func (t *Ticket) AssignedChef() string          { return t.assignedChef }
func (t *Ticket) EstimatedTime() time.Duration  { return t.estimatedTime }
func (t *Ticket) CreatedAt() time.Time          { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time          { return t.updatedAt }

func (t *Ticket) Items() []Item {
	result := make([]Item, len(t.items))
	copy(result, t.items)
	return result
}

// LineIndexes returns the order line indexes covered by this ticket.
func (t *Ticket) LineIndexes() []int {
	result := make([]int, 0, len(t.items))
	for _, item := range t.items {
		result = append(result, item.lineIndex)
	}
	return result
}

// AssignChef records who prepares the ticket. An empty name unassigns.
func (t *Ticket) AssignChef(chef string, now time.Time) error {
	if t.status.IsTerminal() {
		return ErrTicketIsClosed
	}
	chef = strings.TrimSpace(chef)
	if len(chef) > maxChefNameLength {
		return errs.NewValueIsOutOfRangeError("chef name length", len(chef), 0, maxChefNameLength)
	}
	t.assignedChef = chef
	t.updatedAt = now.UTC()
	return nil
}

// ChangeItemStatus moves one item forward and re-derives the ticket status.
func (t *Ticket) ChangeItemStatus(lineIndex int, next Status, now time.Time) error {
	if t.status.IsTerminal() {
		return ErrTicketIsClosed
	}

	pos := -1
	for i := range t.items {
		if t.items[i].lineIndex == lineIndex {
			pos = i
			break
		}
	}
	if pos < 0 {
		return errs.NewObjectNotFoundError("itemIndex", lineIndex)
	}

	item := &t.items[pos]
	if !CanItemTransition(item.status, next) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("item %d cannot move from %s to %s", lineIndex, item.status, next))
	}

	item.status = next
	if next == Ready {
		completedAt := now.UTC()
		item.completedAt = &completedAt
	}
	t.status = t.deriveStatus()
	t.updatedAt = now.UTC()
	return nil
}

// deriveStatus never moves a ticket back to PENDING once preparation started.
func (t *Ticket) deriveStatus() Status {
	var ready, active, cancelled int
	for _, item := range t.items {
		switch item.status {
		case Ready:
			ready++
		case Preparing:
			active++
		case Cancelled:
			cancelled++
		}
	}

	switch {
	case cancelled == len(t.items):
		return Cancelled
	case ready > 0 && ready+cancelled == len(t.items):
		return Ready
	case active > 0 || ready > 0 || t.status == Preparing:
		return Preparing
	default:
		return Pending
	}
}
