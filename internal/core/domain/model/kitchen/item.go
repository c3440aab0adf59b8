package kitchen

import (
	"errors"
	"fmt"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
)

// Item is the part of an order line that a department prepares.
type Item struct {
	lineIndex   int
	menuItemID  kernel.UUID
	quantity    int
	notes       string
	prepTime    time.Duration
	status      Status
	completedAt *time.Time
}

// NewItem creates a pending item. lineIndex points back to the order line.
func NewItem(lineIndex int, menuItemID kernel.UUID, quantity int, notes string, prepTime time.Duration) (Item, error) {
	return RestoreItem(lineIndex, menuItemID, quantity, notes, prepTime, Pending, nil)
}

func RestoreItem(
	lineIndex int,
	menuItemID kernel.UUID,
	quantity int,
	notes string,
	prepTime time.Duration,
	status Status,
	completedAt *time.Time,
) (Item, error) {
	var errList []error
	if lineIndex < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("lineIndex", fmt.Errorf("%d is negative", lineIndex)))
	}
	if err := menuItemID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if quantity < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity)))
	}
	if prepTime < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("prepTime", fmt.Errorf("%s is negative", prepTime)))
	}
	if status == Served {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("status", errors.New("items are never served individually")))
	} else if err := status.Validate(); err != nil {
		errList = append(errList, err)
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{
		lineIndex:   lineIndex,
		menuItemID:  menuItemID,
		quantity:    quantity,
		notes:       notes,
		prepTime:    prepTime,
		status:      status,
		completedAt: completedAt,
	}, nil
}

func (i Item) LineIndex() int          { return i.lineIndex }
func (i Item) MenuItemID() kernel.UUID { return i.menuItemID }
func (i Item) Quantity() int           { return i.quantity }
func (i Item) Notes() string           { return i.notes }
func (i Item) PrepTime() time.Duration { return i.prepTime }
func (i Item) Status() Status          { return i.status }
func (i Item) CompletedAt() *time.Time { return i.completedAt }
