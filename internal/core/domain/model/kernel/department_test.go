package kernel_test

import (
	"strings"
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepartment(t *testing.T) {
	t.Run("should normalize code", func(t *testing.T) {
		d, err := kernel.NewDepartment("  bar ")

		require.NoError(t, err)
		assert.Equal(t, "BAR", d.String())
		assert.True(t, d.IsEqual(kernel.MustDepartment("BAR")))
	})

	t.Run("should reject empty code", func(t *testing.T) {
		_, err := kernel.NewDepartment(" ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unsupported characters", func(t *testing.T) {
		_, err := kernel.NewDepartment("hot kitchen")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject long codes", func(t *testing.T) {
		_, err := kernel.NewDepartment(strings.Repeat("A", 33))

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		var d kernel.Department

		require.Error(t, d.Validate())
	})
}

func TestMustDepartment_Panics(t *testing.T) {
	assert.Panics(t, func() { kernel.MustDepartment("") })
}
