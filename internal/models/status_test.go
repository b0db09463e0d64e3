package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

func TestTransitionTable(t *testing.T) {
	want := map[OrderStatus][]OrderStatus{
		StatusPending:    {StatusConfirmed, StatusCancelled},
		StatusConfirmed:  {StatusInProgress, StatusCancelled},
		StatusInProgress: {StatusShipped, StatusCancelled},
		StatusShipped:    {StatusDelivered},
		StatusDelivered:  {},
		StatusCancelled:  {},
	}

	for from, allowed := range want {
		assert.Equal(t, allowed, from.NextStatuses(), "next statuses of %s", from)

		allowedSet := map[OrderStatus]bool{}
		for _, to := range allowed {
			allowedSet[to] = true
		}

		// Every pair outside the table must be rejected.
		for _, to := range allStatuses {
			assert.Equal(t, allowedSet[to], from.CanTransition(to), "%s -> %s", from, to)
		}
	}
}

func TestTransitionAppliesLegalMove(t *testing.T) {
	next, err := StatusPending.Transition(StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, next)
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
	}{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusShipped, StatusCancelled},
		{StatusDelivered, StatusPending},
		{StatusCancelled, StatusConfirmed},
	}

	for _, tt := range tests {
		next, err := tt.from.Transition(tt.to)
		assert.Error(t, err, "%s -> %s must be illegal", tt.from, tt.to)
		assert.Equal(t, tt.from, next)
		assert.Contains(t, err.Error(), "illegal transition")
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	_, err := StatusPending.Transition(OrderStatus("completed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order status")
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())

	for _, s := range []OrderStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusShipped} {
		assert.False(t, s.Terminal(), "%s must not be terminal", s)
	}

	assert.False(t, OrderStatus("bogus").Terminal())
}

func TestStatusValid(t *testing.T) {
	for _, s := range allStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, OrderStatus("completed").Valid())
	assert.False(t, OrderStatus("").Valid())
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "Entregado", StatusDelivered.Label())
	assert.Equal(t, "Pendiente", StatusPending.Label())
	// Unknown values fall back to the raw string.
	assert.Equal(t, "weird", OrderStatus("weird").Label())
}
