package booking

import (
	"fmt"
	"slices"
)

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// lifecycle maps each status to the set of statuses a booking may move to.
// Every row contains its own status: an identity update is a legal no-op.
// Completed, cancelled and no_show are terminal.
var lifecycle = map[Status][]Status{
	StatusPending:    {StatusPending, StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusCompleted:  {StatusCompleted},
	StatusCancelled:  {StatusCancelled},
	StatusNoShow:     {StatusNoShow},
}

// AvailableStatuses returns every status reachable from current, current
// included. An unrecognized status yields just itself: fail-soft, so a record
// with a bad status renders without options instead of crashing a screen.
func AvailableStatuses(current Status) []Status {
	row, ok := lifecycle[current]
	if !ok {
		return []Status{current}
	}
	return slices.Clone(row)
}

// ValidTransitions returns the actionable choices from current, i.e. the
// lifecycle row minus the identity entry. Terminal statuses return an empty
// slice.
func ValidTransitions(current Status) []Status {
	row := AvailableStatuses(current)
	out := make([]Status, 0, len(row)-1)
	for _, s := range row {
		if s != current {
			out = append(out, s)
		}
	}
	return out
}

// InvalidTransitionError reports a proposed status change the lifecycle
// forbids. It is a validation error: callers surface it before any write and
// never retry or coerce to a nearby state.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition from %q to %q", e.From, e.To)
}

// ValidateTransition checks that a booking in current may move to next.
// The identity transition is always permitted.
func ValidateTransition(current, next Status) error {
	if current == next {
		return nil
	}
	if !slices.Contains(AvailableStatuses(current), next) {
		return &InvalidTransitionError{From: current, To: next}
	}
	return nil
}
