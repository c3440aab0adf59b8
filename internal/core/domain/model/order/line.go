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
	maxLineQuantity = 999
	maxNotesLength  = 500
)

// Line is one ordered menu item. Department and unit price are captured from the
// menu catalog when the order is placed and never change afterwards.
type Line struct {
	menuItemID kernel.UUID
	quantity   int
	unitPrice  decimal.Decimal
	department kernel.Department
	notes      string
}

func NewLine(
	menuItemID kernel.UUID,
	quantity int,
	unitPrice decimal.Decimal,
	department kernel.Department,
	notes string,
) (Line, error) {
	var errList []error

	if err := menuItemID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if quantity < 1 || quantity > maxLineQuantity {
		errList = append(errList, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, maxLineQuantity))
	}
	if unitPrice.IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%s is negative", unitPrice.String())))
	}
	if err := department.Validate(); err != nil {
		errList = append(errList, err)
	}
	notes = strings.TrimSpace(notes)
	if len(notes) > maxNotesLength {
		errList = append(errList, errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength))
	}

	if err := errors.Join(errList...); err != nil {
		return Line{}, err
	}

	return Line{
		menuItemID: menuItemID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		department: department,
		notes:      notes,
	}, nil
}

func (l Line) MenuItemID() kernel.UUID {
	return l.menuItemID
}

func (l Line) Quantity() int {
	return l.quantity
}

func (l Line) UnitPrice() decimal.Decimal {
	return l.unitPrice
}

func (l Line) Department() kernel.Department {
	return l.department
}

func (l Line) Notes() string {
	return l.notes
}

// Subtotal is quantity × unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.unitPrice.Mul(decimal.NewFromInt(int64(l.quantity)))
}

// Contact holds the addresses a customer can be notified on. Every field is optional.
type Contact struct {
	phone     string
	email     string
	pushToken string
}

func NewContact(phone, email, pushToken string) (Contact, error) {
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return Contact{}, errs.NewValueIsInvalidErrorWithCause("email", fmt.Errorf("%q has no domain part", email))
	}
	return Contact{
		phone:     strings.TrimSpace(phone),
		email:     email,
		pushToken: strings.TrimSpace(pushToken),
	}, nil
}

func (c Contact) Phone() string {
	return c.phone
}

func (c Contact) Email() string {
	return c.email
}

func (c Contact) PushToken() string {
	return c.pushToken
}

func (c Contact) IsEmpty() bool {
	return c.phone == "" && c.email == "" && c.pushToken == ""
}

// StatusChange is one entry of the order's status history.
type StatusChange struct {
	From  Status
	To    Status
	Notes string
	Actor string
	At    time.Time
}
