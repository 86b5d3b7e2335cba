//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"storent/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMark(t *testing.T) {
	sentinel := errs.New("domain validation error")
	cause := errs.New("payment amount must be positive")

	t.Run("sentinel is visible to plain errors.Is", func(t *testing.T) {
		marked := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, marked, sentinel)
	})

	t.Run("cause stays in the chain", func(t *testing.T) {
		marked := errs.Mark(cause, sentinel)
		assert.ErrorIs(t, marked, cause)
		assert.Equal(t, cause.Error(), marked.Error())
	})

	t.Run("wrapping a marked error keeps both visible", func(t *testing.T) {
		wrapped := errs.Wrap(errs.Mark(cause, sentinel), "confirm failed")
		assert.ErrorIs(t, wrapped, sentinel)
		assert.ErrorIs(t, wrapped, cause)
	})

	t.Run("marking two sentinels keeps both", func(t *testing.T) {
		inner := errs.New("closure must use the close operation")
		marked := errs.Mark(inner, sentinel)
		assert.ErrorIs(t, marked, inner)
		assert.ErrorIs(t, marked, sentinel)
	})

	t.Run("nil cause degrades to the mark itself", func(t *testing.T) {
		marked := errs.Mark(nil, sentinel)
		require.NotNil(t, marked)
		assert.True(t, errors.Is(marked, sentinel))
		assert.Equal(t, sentinel.Error(), marked.Error())
	})
}

func TestWrap(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, errs.Wrap(nil, "ignored"))
	})

	t.Run("message is prefixed", func(t *testing.T) {
		err := errs.Wrap(errs.New("boom"), "while working")
		assert.Contains(t, err.Error(), "while working")
		assert.Contains(t, err.Error(), "boom")
	})
}
