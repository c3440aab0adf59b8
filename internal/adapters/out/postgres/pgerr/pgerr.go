// Package pgerr maps PostgreSQL error codes onto the error family of the core.
package pgerr

import (
	"errors"

	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes reported when concurrent writers collide.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

// IsConflict reports whether err is a unique key violation or a concurrency
// failure raised by the database.
func IsConflict(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case UniqueViolation, SerializationFailure, DeadlockDetected, LockNotAvailable:
		return true
	default:
		return false
	}
}

// Translate wraps conflicts into errs.ConflictError for entity/id. Other errors
// are returned unchanged.
func Translate(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if IsConflict(err) {
		return errs.NewConflictErrorWithCause(entity, id, err)
	}
	return err
}
