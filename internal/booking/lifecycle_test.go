package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var allStatuses = []Status{
	StatusPending, StatusConfirmed, StatusInProgress,
	StatusCompleted, StatusCancelled, StatusNoShow,
}

func TestAvailableStatuses(t *testing.T) {
	t.Run("every row contains its own status", func(t *testing.T) {
		for _, s := range allStatuses {
			assert.Contains(t, AvailableStatuses(s), s)
		}
	})

	t.Run("pending row", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Status{StatusPending, StatusConfirmed, StatusCancelled},
			AvailableStatuses(StatusPending))
	})

	t.Run("confirmed row", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Status{StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
			AvailableStatuses(StatusConfirmed))
	})

	t.Run("in progress row", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Status{StatusInProgress, StatusCompleted, StatusCancelled},
			AvailableStatuses(StatusInProgress))
	})

	t.Run("terminal rows are singletons", func(t *testing.T) {
		for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
			assert.Equal(t, []Status{s}, AvailableStatuses(s))
		}
	})

	t.Run("unknown status yields itself", func(t *testing.T) {
		assert.Equal(t, []Status{Status("archived")}, AvailableStatuses(Status("archived")))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		row := AvailableStatuses(StatusPending)
		row[0] = Status("mangled")
		assert.Contains(t, AvailableStatuses(StatusPending), StatusPending)
	})
}

func TestValidTransitions(t *testing.T) {
	t.Run("never contains the current status", func(t *testing.T) {
		for _, s := range allStatuses {
			assert.NotContains(t, ValidTransitions(s), s)
		}
	})

	t.Run("terminal statuses have no transitions", func(t *testing.T) {
		for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
			assert.Empty(t, ValidTransitions(s))
		}
	})

	t.Run("pending choices", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]Status{StatusConfirmed, StatusCancelled},
			ValidTransitions(StatusPending))
	})

	t.Run("unknown status has no transitions", func(t *testing.T) {
		assert.Empty(t, ValidTransitions(Status("archived")))
	})
}

func TestValidateTransition(t *testing.T) {
	t.Run("identity is a legal no-op everywhere", func(t *testing.T) {
		for _, s := range allStatuses {
			assert.NoError(t, ValidateTransition(s, s))
		}
	})

	t.Run("legal moves pass", func(t *testing.T) {
		assert.NoError(t, ValidateTransition(StatusPending, StatusConfirmed))
		assert.NoError(t, ValidateTransition(StatusConfirmed, StatusNoShow))
		assert.NoError(t, ValidateTransition(StatusInProgress, StatusCompleted))
	})

	t.Run("completed cannot reopen to pending", func(t *testing.T) {
		err := ValidateTransition(StatusCompleted, StatusPending)
		assert.Error(t, err)

		var invalid *InvalidTransitionError
		assert.True(t, errors.As(err, &invalid))
		assert.Equal(t, StatusCompleted, invalid.From)
		assert.Equal(t, StatusPending, invalid.To)
	})

	t.Run("skipping states is rejected", func(t *testing.T) {
		assert.Error(t, ValidateTransition(StatusPending, StatusCompleted))
		assert.Error(t, ValidateTransition(StatusPending, StatusInProgress))
		assert.Error(t, ValidateTransition(StatusPending, StatusNoShow))
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		for _, next := range []Status{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted} {
			assert.Error(t, ValidateTransition(StatusCancelled, next))
		}
	})
}
