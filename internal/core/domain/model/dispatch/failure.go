package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

const maxReasonLength = 1000

var ErrFailureIsNotConstructed = errors.New("Failure must be created via NewFailure constructor")

// Kind names the side effect that failed.
type Kind string

const (
	Kitchen      Kind = "kitchen"
	Notification Kind = "notification"
)

func (k Kind) Validate() error {
	switch k {
	case Kitchen, Notification:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("kind", fmt.Errorf("%q is not a dispatch kind", string(k)))
	}
}

// Failure records a side effect of a committed transition that did not complete.
// The retry job replays it until it is resolved or runs out of attempts.
type Failure struct {
	id        kernel.UUID
	orderID   kernel.UUID
	kind      Kind
	status    order.Status
	reason    string
	attempts  int
	resolved  bool
	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewFailure records the first failed attempt of a dispatch of kind for the
// transition of orderID into status.
func NewFailure(orderID kernel.UUID, kind Kind, status order.Status, cause error, now time.Time) (*Failure, error) {
	return RestoreFailure(kernel.NewUUID(), orderID, kind, status, reasonOf(cause), 1, false, now.UTC(), now.UTC())
}

func RestoreFailure(
	id kernel.UUID,
	orderID kernel.UUID,
	kind Kind,
	status order.Status,
	reason string,
	attempts int,
	resolved bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Failure, error) {
	var attemptsErr error
	if attempts < 0 {
		attemptsErr = errs.NewValueIsInvalidErrorWithCause("attempts", fmt.Errorf("%d is negative", attempts))
	}
	if err := errors.Join(id.Validate(), orderID.Validate(), kind.Validate(), status.Validate(), attemptsErr); err != nil {
		return nil, err
	}

	return &Failure{
		id:            id,
		orderID:       orderID,
		kind:          kind,
		status:        status,
		reason:        reason,
		attempts:      attempts,
		resolved:      resolved,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}, nil
}

func (f *Failure) Validate() error {
	if f == nil || !f.isConstructed {
		return ErrFailureIsNotConstructed
	}
	return nil
}

func (f *Failure) ID() kernel.UUID      { return f.id }
func (f *Failure) OrderID() kernel.UUID { return f.orderID }
func (f *Failure) Kind() Kind           { return f.kind }
func (f *Failure) Status() order.Status { return f.status }
func (f *Failure) Reason() string       { return f.reason }
func (f *Failure) Attempts() int        { return f.attempts }
func (f *Failure) IsResolved() bool     { return f.resolved }
func (f *Failure) CreatedAt() time.Time { return f.createdAt }
func (f *Failure) UpdatedAt() time.Time { return f.updatedAt }

// RecordAttempt counts one more failed retry.
func (f *Failure) RecordAttempt(cause error, now time.Time) {
	f.attempts++
	f.reason = reasonOf(cause)
	f.updatedAt = now.UTC()
}

// Resolve marks the failure as handled.
func (f *Failure) Resolve(now time.Time) {
	f.resolved = true
	f.updatedAt = now.UTC()
}

func reasonOf(cause error) string {
	if cause == nil {
		return ""
	}
	reason := strings.ReplaceAll(cause.Error(), "\n", "; ")
	if len(reason) > maxReasonLength {
		reason = reason[:maxReasonLength]
	}
	return reason
}
