// Package booking holds the booking record model, its status lifecycle, and
// the status-change service that guards writes with the lifecycle rules.
package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a booking record as stored. StaffID and TeamID are both
// nullable; a set StaffID always wins for revenue attribution even when a
// TeamID is also present. TeamMemberCount is a snapshot of the team size
// taken at creation time, kept so later membership changes don't rewrite
// historical revenue splits.
type Booking struct {
	ID              uuid.UUID
	CustomerID      uuid.UUID
	StaffID         *uuid.UUID
	TeamID          *uuid.UUID
	TeamMemberCount *int32
	TotalPrice      float64
	Status          Status
	ScheduledAt     time.Time
	CreatedAt       time.Time
	ArchivedAt      *time.Time
}

// TeamAttributed reports whether revenue for b belongs to a team rather than
// an individual.
func (b Booking) TeamAttributed() bool {
	return b.StaffID == nil && b.TeamID != nil
}
