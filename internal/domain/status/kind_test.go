//go:build unit

package status_test

import (
	"testing"

	"storent/internal/domain/status"

	"github.com/stretchr/testify/assert"
)

func TestKindIsValid(t *testing.T) {
	for _, k := range status.Kinds() {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, status.Kind("").IsValid())
	assert.False(t, status.Kind("archived").IsValid())
}

func TestKindCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    status.Kind
		to      status.Kind
		allowed bool
	}{
		{status.KindWaiting, status.KindActive, true},
		{status.KindWaiting, status.KindExpiring, false},
		{status.KindWaiting, status.KindClosed, true},
		{status.KindActive, status.KindExpiring, true},
		{status.KindActive, status.KindWaiting, false},
		{status.KindActive, status.KindClosed, true},
		{status.KindExpiring, status.KindActive, false},
		{status.KindExpiring, status.KindClosed, true},
		{status.KindClosed, status.KindActive, false},
		{status.KindClosed, status.KindClosed, false},
	}
	for _, c := range cases {
		t.Run(c.from.String()+"->"+c.to.String(), func(t *testing.T) {
			assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to))
		})
	}

	t.Run("invalid kinds never transition", func(t *testing.T) {
		assert.False(t, status.Kind("bogus").CanTransitionTo(status.KindActive))
		assert.False(t, status.KindActive.CanTransitionTo(status.Kind("bogus")))
	})
}

func TestKindIsTerminal(t *testing.T) {
	assert.True(t, status.KindClosed.IsTerminal())
	assert.False(t, status.KindWaiting.IsTerminal())
	assert.False(t, status.KindActive.IsTerminal())
	assert.False(t, status.KindExpiring.IsTerminal())
}
