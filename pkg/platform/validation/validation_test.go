package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "esgtrack/pkg/domain-errors"
)

type sample struct {
	Name     string  `json:"name" validate:"required,max=10"`
	Kind     string  `json:"kind" validate:"omitempty,oneof=a b"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

func TestStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Struct(sample{Name: "ok", Kind: "a", Quantity: 1}))
	})

	t.Run("missing required field uses json name", func(t *testing.T) {
		err := Struct(sample{})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("oneof lists allowed values", func(t *testing.T) {
		err := Struct(sample{Name: "ok", Kind: "c"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "kind must be one of: a b")
	})

	t.Run("string length", func(t *testing.T) {
		err := Struct(sample{Name: "abcdefghijklmnop"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name must be 10 characters or less")
	})

	t.Run("numeric bound", func(t *testing.T) {
		err := Struct(sample{Name: "ok", Quantity: -1})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be greater than or equal to 0")
	})
}
