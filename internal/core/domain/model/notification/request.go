package notification

import (
	"fmt"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Channel is a delivery medium for customer messages.
type Channel string

const (
	SMS   Channel = "sms"
	Email Channel = "email"
	Push  Channel = "push"
)

func (c Channel) Validate() error {
	switch c {
	case SMS, Email, Push:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("channel", fmt.Errorf("%q is not a supported channel", string(c)))
	}
}

func (c Channel) String() string {
	return string(c)
}

// Type identifies why a customer is notified.
type Type string

const (
	OrderReady  Type = "order_ready"
	OrderServed Type = "order_served"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Format selects how a template variable is rendered.
type Format string

const (
	FormatText     Format = "text"
	FormatCurrency Format = "currency"
)

// Variable is a typed template value.
type Variable struct {
	Format   Format
	Text     string
	Amount   decimal.Decimal
	Currency string
}

func TextVariable(text string) Variable {
	return Variable{Format: FormatText, Text: text}
}

func CurrencyVariable(amount decimal.Decimal, currency string) Variable {
	return Variable{Format: FormatCurrency, Amount: amount, Currency: currency}
}

// Recipient is the customer and the addresses known for them.
type Recipient struct {
	CustomerID *kernel.UUID
	Phone      string
	Email      string
	PushToken  string
}

// AddressFor returns the address used on the channel, or "" when none is known.
func (r Recipient) AddressFor(channel Channel) string {
	switch channel {
	case SMS:
		return r.Phone
	case Email:
		return r.Email
	case Push:
		return r.PushToken
	default:
		return ""
	}
}

// Request is a transient description of one customer notification.
// Its ID is derived from (order, type) so that re-sending is idempotent.
type Request struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Type       Type
	Channels   []Channel
	Recipient  Recipient
	TemplateID string
	Variables  map[string]Variable
	Priority   Priority
}

// RequestID returns the idempotency key of the notification of type typ for an order.
func RequestID(orderID kernel.UUID, typ Type) kernel.UUID {
	return kernel.NewNameBasedUUID("notification", orderID.String(), string(typ))
}
