package kernel

import (
	"fmt"
	"strings"

	"restaurant/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed indicates that a UUID was not properly initialized through one of the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, NewNameBasedUUID, UUIDFromString, or UUIDFromBytes",
)

// namespace scopes name-based identifiers of this service.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:restaurant:orders"))

// UUID is a value object that represents a universally unique identifier.
// It wraps github.com/google/uuid so that identifiers of orders, tickets and
// notifications cannot be confused with raw strings.
//
// The zero value of UUID is invalid.
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random UUID (version 4).
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// NewNameBasedUUID derives a stable UUID (version 5) from the given parts.
// The same parts always yield the same identifier, which makes it suitable
// as an idempotency key, e.g. one kitchen ticket per (order, department):
//
//	ticketID := kernel.NewNameBasedUUID("kitchen-ticket", orderID.String(), "BAR")
func NewNameBasedUUID(parts ...string) UUID {
	return UUID{id: uuid.NewSHA1(namespace, []byte(strings.Join(parts, "/")))}
}

// UUIDFromString parses a UUID from its string representation.
// It accepts the formats understood by uuid.Parse, including braced and urn forms.
func UUIDFromString(s string) (UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	return UUID{id: id}, nil
}

// UUIDFromBytes creates a UUID from a 16 byte slice. The nil UUID is rejected.
func UUIDFromBytes(b []byte) (UUID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, fmt.Errorf("invalid UUID format: %w", err)
	}
	newID := UUID{id: id}
	if err = newID.Validate(); err != nil {
		return UUID{}, err
	}

	return newID, nil
}

// String returns the canonical "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx" form.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns a copy of the underlying uuid.UUID value.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether both UUIDs hold the same value.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the nil UUID.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}
