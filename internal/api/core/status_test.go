package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatus(t *testing.T) {
	steps := map[string]string{
		StatusPending:        StatusConfirmed,
		StatusConfirmed:      StatusPreparing,
		StatusPreparing:      StatusOutForDelivery,
		StatusOutForDelivery: StatusDelivered,
	}
	for from, want := range steps {
		next, ok := NextStatus(from)
		assert.True(t, ok, from)
		assert.Equal(t, want, next)
	}

	for _, terminal := range []string{StatusDelivered, StatusCancelled} {
		_, ok := NextStatus(terminal)
		assert.False(t, ok, terminal)
	}
}

func TestCanTransition(t *testing.T) {
	all := []string{
		StatusPending, StatusConfirmed, StatusPreparing,
		StatusOutForDelivery, StatusDelivered, StatusCancelled,
	}

	// advance succeeds iff target is the single next step, or target is
	// cancelled and the current status is non-terminal
	for _, from := range all {
		for _, to := range all {
			want := false
			if next, ok := NextStatus(from); ok && next == to {
				want = true
			}
			if to == StatusCancelled && !IsTerminal(from) {
				want = true
			}
			assert.Equalf(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionRejectsSkipping(t *testing.T) {
	assert.False(t, CanTransition(StatusPending, StatusPreparing))
	assert.False(t, CanTransition(StatusPending, StatusDelivered))
	assert.False(t, CanTransition(StatusConfirmed, StatusOutForDelivery))
	// no moving backwards either
	assert.False(t, CanTransition(StatusPreparing, StatusConfirmed))
	// cancelled and delivered are dead ends
	assert.False(t, CanTransition(StatusCancelled, StatusPending))
	assert.False(t, CanTransition(StatusDelivered, StatusCancelled))
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("received", StatusConfirmed))
	assert.False(t, CanTransition("", StatusCancelled))
}

func TestIsCommitted(t *testing.T) {
	assert.False(t, IsCommitted(StatusPending))
	assert.True(t, IsCommitted(StatusConfirmed))
	assert.True(t, IsCommitted(StatusPreparing))
	assert.True(t, IsCommitted(StatusOutForDelivery))
	assert.True(t, IsCommitted(StatusDelivered))
	assert.False(t, IsCommitted(StatusCancelled))
}
