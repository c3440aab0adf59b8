package order

import (
	"errors"
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel wrapped by every InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	RECEIVED ──> CONFIRMED ──> PREPARING ──> READY ──> SERVED
//	    │            │             │
//	    └────────────┴─────────────┴──────> CANCELLED
//
// SERVED and CANCELLED are terminal. Self-transitions are rejected.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Received is the initial status of a placed order.
	Received

	// Confirmed means the restaurant accepted the order.
	Confirmed

	// Preparing means the kitchen works on the order. Entering it creates kitchen tickets.
	Preparing

	// Ready means every department finished; the customer is notified.
	Ready

	// Served is terminal: the order was handed over or delivered.
	Served

	// Cancelled is terminal and reachable from any non-terminal status except Ready.
	Cancelled
)

// InvalidTransitionError carries both ends of a rejected transition for diagnostics.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Received:  "RECEIVED",
		Confirmed: "CONFIRMED",
		Preparing: "PREPARING",
		Ready:     "READY",
		Served:    "SERVED",
		Cancelled: "CANCELLED",
	}
}

// getTransitions returns the transition table. It is total: every valid status
// has an explicit, possibly empty, successor set.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status][]Status{
		Received:  {Confirmed, Cancelled},
		Confirmed: {Preparing, Cancelled},
		Preparing: {Ready, Cancelled},
		Ready:     {Served},
		Served:    {},
		Cancelled: {},
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Received, Confirmed, Preparing, Ready, Served, Cancelled}
}

// CanTransition decides whether moving from current to requested is legal.
// It is a pure function over the transition table.
func CanTransition(current, requested Status) bool {
	for _, next := range getTransitions()[current] {
		if next == requested {
			return true
		}
	}
	return false
}

// ParseStatus converts the wire representation ("PREPARING", case-insensitive) to a Status.
func ParseStatus(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the known statuses.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer. Invalid values render as "UNKNOWN".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition is accepted from s.
func (s Status) IsTerminal() bool {
	successors, ok := getTransitions()[s]
	return ok && len(successors) == 0
}

// AllowedSuccessors returns a copy of the successor set of s.
func (s Status) AllowedSuccessors() []Status {
	successors := getTransitions()[s]
	result := make([]Status, len(successors))
	copy(result, successors)
	return result
}

// TransitionTo returns next when the move is legal and an InvalidTransitionError otherwise.
func (s Status) TransitionTo(next Status) (Status, error) {
	if !CanTransition(s, next) {
		return Unknown, NewInvalidTransitionError(s, next)
	}
	return next, nil
}
