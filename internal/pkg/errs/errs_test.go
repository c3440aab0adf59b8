package errs_test

import (
	"errors"
	"testing"

	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("NewObjectNotFoundError", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("orderId", "123")

		assert.Equal(t, "orderId", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("NewObjectNotFoundErrorWithCause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("orderId", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: param is: orderId, ID is: 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("Error with different ID types", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("ticketIndex", 456)
		assert.Equal(t, "object not found: 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	t.Run("NewValueIsInvalidError", func(t *testing.T) {
		err := errs.NewValueIsInvalidError("status")

		assert.Equal(t, "status", err.ParamName)
		require.NoError(t, err.Cause)
		assert.Equal(t, "value is invalid: status", err.Error())
		assert.Equal(t, errs.ErrValueIsInvalid, err.Unwrap())
	})

	t.Run("NewValueIsInvalidErrorWithCause", func(t *testing.T) {
		cause := errors.New("unknown value")
		err := errs.NewValueIsInvalidErrorWithCause("status", cause)

		assert.Equal(t, "value is invalid: status (cause: unknown value)", err.Error())
	})
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("NewValueIsOutOfRangeError", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("quantity", 150, 1, 99)

		assert.Equal(t, 150, err.Value)
		assert.Equal(t, 1, err.Min)
		assert.Equal(t, 99, err.Max)
		assert.Equal(t, "value is out of range: 150 is quantity, min value is 1, max value is 99", err.Error())
		assert.Equal(t, errs.ErrValueIsOutOfRange, err.Unwrap())
	})

	t.Run("NewValueIsOutOfRangeErrorWithCause", func(t *testing.T) {
		cause := errors.New("validation failed")
		err := errs.NewValueIsOutOfRangeErrorWithCause("table", -5, 1, 100, cause)

		assert.Equal(t,
			"value is out of range: -5 is table, min value is 1, max value is 100 (cause: validation failed)",
			err.Error())
	})

	t.Run("sanitize function with newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("text", "hello\nworld", 0, 10)
		assert.Contains(t, err.Error(), "hello world")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("lines")

	assert.Equal(t, "value is required: lines", err.Error())
	assert.Equal(t, errs.ErrValueIsRequired, err.Unwrap())

	withCause := errs.NewValueIsRequiredErrorWithCause("lines", errors.New("empty order"))
	assert.Equal(t, "value is required: lines (cause: empty order)", withCause.Error())
}

func TestConflictError(t *testing.T) {
	err := errs.NewConflictError("order", "42")
	assert.Equal(t, "concurrent modification conflict: order 42", err.Error())
	require.ErrorIs(t, err, errs.ErrConflict)

	cause := errors.New("could not serialize access")
	withCause := errs.NewConflictErrorWithCause("order", "42", cause)
	assert.Contains(t, withCause.Error(), "could not serialize access")
}

func TestDispatchFailureError(t *testing.T) {
	cause := errors.New("sms provider unreachable")
	err := errs.NewDispatchFailureErrorWithCause("notification", "42", cause)

	assert.Equal(t,
		"dispatch failure: notification for order 42 (cause: sms provider unreachable)",
		err.Error())
	require.ErrorIs(t, err, errs.ErrDispatchFailure)
	require.ErrorIs(t, err, cause)

	require.ErrorIs(t, errs.NewDispatchFailureError("kitchen", "42"), errs.ErrDispatchFailure)
}

func TestErrorsCanBeUnwrapped(t *testing.T) {
	require.ErrorIs(t, errs.NewObjectNotFoundError("orderId", "123"), errs.ErrObjectNotFound)
	require.ErrorIs(t, errs.NewValueIsInvalidError("status"), errs.ErrValueIsInvalid)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeError("qty", 0, 1, 2), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, errs.NewValueIsRequiredError("lines"), errs.ErrValueIsRequired)

	var notFound *errs.ObjectNotFoundError
	wrapped := errors.Join(errors.New("context"), errs.NewObjectNotFoundError("orderId", "1"))
	require.ErrorAs(t, wrapped, &notFound)
	assert.Equal(t, "orderId", notFound.ParamName)
}
