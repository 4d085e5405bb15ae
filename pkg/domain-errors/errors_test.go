package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodes(t *testing.T) {
	t.Run("wrapped coded errors keep their code", func(t *testing.T) {
		base := errors.New("db down")
		err := fmt.Errorf("loading: %w", Wrap(base, CodeInternal, "failed to load entries"))

		assert.True(t, Is(err, CodeInternal))
		assert.ErrorIs(t, err, base)
	})

	t.Run("HasCode walks nested coded errors", func(t *testing.T) {
		inner := New(CodeInvariantViolation, "value is required")
		outer := Wrap(inner, CodeValidation, "invalid entry")

		assert.True(t, HasCode(outer, CodeValidation))
		assert.True(t, HasCode(outer, CodeInvariantViolation))
		assert.False(t, HasCode(outer, CodeNotFound))
		assert.Equal(t, CodeValidation, CodeOf(outer))
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})

	t.Run("Wrap of nil is nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeBadRequest:   http.StatusBadRequest,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, HTTPStatus(code), string(code))
	}
}
