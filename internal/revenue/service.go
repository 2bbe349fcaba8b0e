package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/ops-backend/internal/booking"
	"github.com/bookhive/ops-backend/internal/logging"
)

// Store is the persistence slice the revenue service reads from. It never
// writes.
type Store interface {
	ListCompletedBookings(ctx context.Context, from, to time.Time) ([]booking.Booking, error)
	CountActiveTeamMembers(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int32, error)
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// TeamMemberCounts fetches live active-membership counts for the given teams.
// Members who have left are excluded. A team with zero active members (or one
// the store doesn't know) maps to 1, preserving the division-by-zero guard;
// the overstated share that implies is logged rather than hidden.
func (s *Service) TeamMemberCounts(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int32, error) {
	counts, err := s.store.CountActiveTeamMembers(ctx, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("count active team members: %w", err)
	}

	for _, id := range teamIDs {
		if counts[id] <= 0 {
			logging.Warn("team has no active members, falling back to divisor 1", "team_id", id)
			counts[id] = 1
		}
	}
	return counts, nil
}

// Report summarizes completed-booking revenue over a period. PerStaff maps an
// individually-assigned staff member to their attributed total; PerTeamMember
// maps a team to the share a single member of it earned. Unattributed holds
// bookings with neither assignee.
type Report struct {
	From          time.Time
	To            time.Time
	PerStaff      map[uuid.UUID]float64
	PerTeamMember map[uuid.UUID]float64
	Unattributed  float64
	Total         float64
}

// TeamRevenueReport composes the allocation rules over every completed
// booking in [from, to): snapshot counts are used where stored, live counts
// are fetched once for the teams that need them.
func (s *Service) TeamRevenueReport(ctx context.Context, from, to time.Time) (*Report, error) {
	bookings, err := s.store.ListCompletedBookings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list completed bookings: %w", err)
	}

	var counts map[uuid.UUID]int32
	if ids := UniqueTeamIDs(bookings); len(ids) > 0 {
		counts, err = s.TeamMemberCounts(ctx, ids)
		if err != nil {
			return nil, err
		}
	}

	report := &Report{
		From:          from,
		To:            to,
		PerStaff:      make(map[uuid.UUID]float64),
		PerTeamMember: make(map[uuid.UUID]float64),
	}

	for _, b := range bookings {
		share := CalculateBookingRevenue(b, counts)
		switch {
		case b.StaffID != nil:
			report.PerStaff[*b.StaffID] += share
		case b.TeamID != nil:
			report.PerTeamMember[*b.TeamID] += share
		default:
			report.Unattributed += share
		}
		report.Total += b.TotalPrice
	}

	return report, nil
}
