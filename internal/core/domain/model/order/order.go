package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	numberPrefix   = "ORD-"
	maxTableNumber = 999
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details groups the optional and descriptive attributes of an order.
type Details struct {
	CustomerID  *kernel.UUID
	TableNumber *int
	Contact     Contact
	Priority    Priority
	Notes       string
}

// Order is the aggregate root of the restaurant domain. It owns its lines and its
// status; the status only changes through ChangeStatus, which consults the
// transition table.
//
// Invariants:
//   - at least one line
//   - table number present for DINE_IN orders
//   - total amount equals the sum of line subtotals
//   - every status change is recorded with its actor
type Order struct {
	id          kernel.UUID
	number      string
	status      Status
	orderType   Type
	lines       []Line
	customerID  *kernel.UUID
	tableNumber *int
	contact     Contact
	priority    Priority
	notes       string
	totalAmount decimal.Decimal

	// version is the persisted revision; repositories compare it on update.
	version int

	createdAt time.Time
	updatedAt time.Time

	// pendingChanges are status changes not yet written to the history table.
	pendingChanges []StatusChange

	isConstructed bool
}

// NewOrder places an order in RECEIVED status.
//
// Example:
//
//	id := kernel.NewUUID()
//	o, err := order.NewOrder(id, order.NewNumber(id), order.Takeaway, lines, order.Details{}, time.Now())
func NewOrder(
	id kernel.UUID,
	number string,
	orderType Type,
	lines []Line,
	details Details,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:        Received,
		createdAt:     now.UTC(),
		updatedAt:     now.UTC(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setTypeAndTable(orderType, details.TableNumber),
		o.setLines(lines),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	o.pendingChanges = []StatusChange{{
		From:  Unknown,
		To:    Received,
		Notes: o.notes,
		Actor: "customer",
		At:    o.createdAt,
	}}

	return o, nil
}

// RestoreOrder rebuilds an order from persisted state. The same invariants as
// NewOrder are checked, except that any valid status is accepted.
func RestoreOrder(
	id kernel.UUID,
	number string,
	status Status,
	orderType Type,
	lines []Line,
	details Details,
	version int,
	createdAt time.Time,
	updatedAt time.Time,
) (*Order, error) {
	o := &Order{
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}

	var versionErr error
	if version < 0 {
		versionErr = errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is negative", version))
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setStatus(status),
		o.setTypeAndTable(orderType, details.TableNumber),
		o.setLines(lines),
		o.setDetails(details),
		versionErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

// NewNumber derives the human readable order number from the order id.
func NewNumber(id kernel.UUID) string {
	hex := strings.ReplaceAll(id.String(), "-", "")
	return numberPrefix + strings.ToUpper(hex[:8])
}

func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID              { return o.id }
func (o *Order) Number() string               { return o.number }
func (o *Order) Status() Status               { return o.status }
func (o *Order) Type() Type                   { return o.orderType }
func (o *Order) CustomerID() *kernel.UUID     { return o.customerID }
func (o *Order) TableNumber() *int            { return o.tableNumber }
func (o *Order) Contact() Contact             { return o.contact }
func (o *Order) Priority() Priority           { return o.priority }
func (o *Order) Notes() string                { return o.notes }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) Version() int                 { return o.version }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	result := make([]Line, len(o.lines))
	copy(result, o.lines)
	return result
}

// ChangeStatus applies a validated transition and records it in the pending history.
// The order is left untouched when the transition is not allowed.
func (o *Order) ChangeStatus(next Status, notes, actor string, now time.Time) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}

	o.pendingChanges = append(o.pendingChanges, StatusChange{
		From:  o.status,
		To:    newStatus,
		Notes: notes,
		Actor: actor,
		At:    now.UTC(),
	})
	o.status = newStatus
	o.updatedAt = now.UTC()
	return nil
}

// PendingStatusChanges returns the history entries that still have to be persisted.
func (o *Order) PendingStatusChanges() []StatusChange {
	result := make([]StatusChange, len(o.pendingChanges))
	copy(result, o.pendingChanges)
	return result
}

// MarkPersisted is called by repositories after a successful write. It advances
// the version and clears the pending history.
func (o *Order) MarkPersisted(version int) {
	o.version = version
	o.pendingChanges = nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("number")
	}
	o.number = number
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func (o *Order) setTypeAndTable(orderType Type, tableNumber *int) error {
	if err := orderType.Validate(); err != nil {
		return err
	}
	if orderType == DineIn && tableNumber == nil {
		return errs.NewValueIsRequiredErrorWithCause("tableNumber", errors.New("dine-in orders need a table"))
	}
	if tableNumber != nil && (*tableNumber < 1 || *tableNumber > maxTableNumber) {
		return errs.NewValueIsOutOfRangeError("tableNumber", *tableNumber, 1, maxTableNumber)
	}
	o.orderType = orderType
	if tableNumber != nil {
		table := *tableNumber
		o.tableNumber = &table
	}
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}
	total := decimal.Zero
	for i, line := range lines {
		if err := line.department.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lines[%d]", i), err)
		}
		total = total.Add(line.Subtotal())
	}
	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	o.totalAmount = total
	return nil
}

func (o *Order) setDetails(details Details) error {
	if details.CustomerID != nil {
		if err := details.CustomerID.Validate(); err != nil {
			return err
		}
		customerID := *details.CustomerID
		o.customerID = &customerID
	}
	if err := details.Priority.Validate(); err != nil {
		return err
	}
	notes := strings.TrimSpace(details.Notes)
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}
	o.contact = details.Contact
	o.priority = details.Priority
	o.notes = notes
	return nil
}
