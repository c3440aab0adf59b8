package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"restaurant/internal/adapters/out/postgres/pgerr"
	"restaurant/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestIsConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"unique violation", &pgconn.PgError{Code: pgerr.UniqueViolation}, true},
		{"serialization failure", &pgconn.PgError{Code: pgerr.SerializationFailure}, true},
		{"deadlock", fmt.Errorf("update: %w", &pgconn.PgError{Code: pgerr.DeadlockDetected}), true},
		{"lock not available", &pgconn.PgError{Code: pgerr.LockNotAvailable}, true},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, true},
		{"syntax error", &pgconn.PgError{Code: "42601"}, false},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pgerr.IsConflict(tt.err))
		})
	}
}

func TestTranslate(t *testing.T) {
	require.NoError(t, pgerr.Translate(nil, "order", "1"))

	plain := errors.New("connection reset")
	assert.Same(t, plain, pgerr.Translate(plain, "order", "1"))

	cause := &pgconn.PgError{Code: pgerr.SerializationFailure, Message: "could not serialize access"}
	err := pgerr.Translate(cause, "order", "42")

	require.ErrorIs(t, err, errs.ErrConflict)
	var conflict *errs.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Contains(t, err.Error(), "order 42")
}
