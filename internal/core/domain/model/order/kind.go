package order

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Type is the service mode of an order.
type Type int

const (
	UnknownType Type = iota
	DineIn
	Takeaway
	Delivery
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		DineIn:   "DINE_IN",
		Takeaway: "TAKEAWAY",
		Delivery: "DELIVERY",
	}
}

// ParseType converts "DINE_IN", "TAKEAWAY" or "DELIVERY" to a Type.
func ParseType(s string) (Type, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for t, name := range getTypeStrings() {
		if name == normalized {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%q is not a valid order type", s))
}

func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("type", fmt.Errorf("%d is not a valid order type", t))
	}
	return nil
}

func (t Type) String() string {
	if s, ok := getTypeStrings()[t]; ok {
		return s
	}
	return "UNKNOWN"
}

// Priority marks orders that the kitchen should favour.
// Zero value is Normal so that orders without an explicit priority stay valid.
type Priority int

const (
	Normal Priority = iota
	High
	Urgent
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		Normal: "NORMAL",
		High:   "HIGH",
		Urgent: "URGENT",
	}
}

// ParsePriority converts the wire form to a Priority. An empty string means Normal.
func ParsePriority(s string) (Priority, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return Normal, nil
	}
	for p, name := range getPriorityStrings() {
		if name == normalized {
			return p, nil
		}
	}
	return Normal, errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not a valid priority", s))
}

func (p Priority) Validate() error {
	if _, ok := getPriorityStrings()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

func (p Priority) String() string {
	if s, ok := getPriorityStrings()[p]; ok {
		return s
	}
	return "NORMAL"
}

// IsElevated reports whether the priority should be propagated to kitchen tickets.
func (p Priority) IsElevated() bool {
	return p == High || p == Urgent
}
