// Package revenue computes per-member revenue allocation for team bookings.
// The split rules are pure functions; Service adds the one delegated lookup
// (live team sizes) and the report composition the console renders.
package revenue

import (
	"github.com/google/uuid"

	"github.com/bookhive/ops-backend/internal/booking"
)

// CalculateBookingRevenue returns the revenue attributable to a single member
// for b.
//
// An individually-assigned booking (StaffID set) is never split: the full
// price is returned even when a TeamID is also present. For team-attributed
// bookings the divisor is, in priority order: the TeamMemberCount snapshot
// stored on the booking, the live count from teamMemberCounts, then 1. The
// snapshot wins so that later membership changes never rewrite historical
// splits, and the final 1 guards orphaned or unknown teams against division
// by zero. Plain floating-point division; rounding is a display concern.
func CalculateBookingRevenue(b booking.Booking, teamMemberCounts map[uuid.UUID]int32) float64 {
	if b.StaffID != nil {
		return b.TotalPrice
	}

	divisor := int32(1)
	switch {
	case b.TeamMemberCount != nil && *b.TeamMemberCount > 0:
		divisor = *b.TeamMemberCount
	case b.TeamID != nil:
		if n, ok := teamMemberCounts[*b.TeamID]; ok && n > 0 {
			divisor = n
		}
	}

	return b.TotalPrice / float64(divisor)
}

// UniqueTeamIDs collects, in first-seen order, the distinct team ids of
// team-attributed bookings that lack a stored member-count snapshot. Only
// those need a live team-size lookup; bookings carrying a snapshot never do.
func UniqueTeamIDs(bookings []booking.Booking) []uuid.UUID {
	seen := make(map[uuid.UUID]bool)
	var ids []uuid.UUID
	for _, b := range bookings {
		if b.StaffID != nil || b.TeamID == nil || b.TeamMemberCount != nil {
			continue
		}
		if !seen[*b.TeamID] {
			seen[*b.TeamID] = true
			ids = append(ids, *b.TeamID)
		}
	}
	return ids
}
