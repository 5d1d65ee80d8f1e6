package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusLabelRoundTrip(t *testing.T) {
	statuses := []AppointmentStatus{
		StatusPending,
		StatusConfirmed,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusNoShow,
	}
	for _, status := range statuses {
		parsed, ok := ParseAppointmentStatus(status.Label())
		assert.True(t, ok, "label %q must parse", status.Label())
		assert.Equal(t, status, parsed)
	}

	_, ok := ParseAppointmentStatus("CONFIRMED")
	assert.False(t, ok, "storage values are not labels")
	_, ok = ParseAppointmentStatus("unknown")
	assert.False(t, ok)
}

func TestStatusIsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())

	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to AppointmentStatus
		want     bool
	}{
		// forward path
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusInProgress, true},
		{StatusPending, StatusCompleted, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusInProgress, StatusCompleted, true},

		// no going backwards
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusConfirmed, false},
		{StatusInProgress, StatusPending, false},

		// cancelled and no_show from any active status
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusPending, StatusNoShow, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusInProgress, StatusNoShow, true},

		// terminal states are final
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusNoShow, false},
		{StatusNoShow, StatusCancelled, false},

		// self transitions never allowed
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to),
			"%s -> %s", tt.from, tt.to)
	}
}
