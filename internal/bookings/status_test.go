package bookings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusFailed, true},
		{StatusPending, StatusPending, false},

		// Terminal states never move again.
		{StatusConfirmed, StatusCancelled, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusFailed, StatusConfirmed, false},

		{StatusPending, Status("refunded"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusConfirmed.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, PaymentRefunded.IsValid())
	assert.False(t, Status("unknown").IsValid())
	assert.False(t, PaymentStatus("done").IsValid())
}
