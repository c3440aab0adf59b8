package kitchen

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Status is shared by tickets and ticket items.
//
// Items move PENDING -> PREPARING -> READY and may be CANCELLED before they are
// ready. A ticket's status is derived from its items; SERVED only applies to tickets.
type Status int

const (
	Unknown Status = iota
	Pending
	Preparing
	Ready
	Served
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:   "PENDING",
		Preparing: "PREPARING",
		Ready:     "READY",
		Served:    "SERVED",
		Cancelled: "CANCELLED",
	}
}

func getItemTransitions() map[Status][]Status {
	return map[Status][]Status{
		Pending:   {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {},
		Cancelled: {},
	}
}

// CanItemTransition reports whether an item may move from current to next.
func CanItemTransition(current, next Status) bool {
	for _, s := range getItemTransitions()[current] {
		if s == next {
			return true
		}
	}
	return false
}

func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid kitchen status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid kitchen status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal applies to tickets: no item may change once the ticket is served or cancelled.
func (s Status) IsTerminal() bool {
	return s == Served || s == Cancelled
}
