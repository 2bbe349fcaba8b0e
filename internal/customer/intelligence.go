package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bookhive/ops-backend/internal/logging"
)

// BookingStats is the paid-booking aggregate for one customer: the count and
// summed price of their completed bookings.
type BookingStats struct {
	PaidBookings int64
	TotalSpend   float64
}

// UpdateIntelligenceParams carries a full intelligence write: new level,
// merged tags and notes with the audit entry appended.
type UpdateIntelligenceParams struct {
	ID                uuid.UUID
	RelationshipLevel RelationshipLevel
	Tags              []string
	Notes             string
}

// Store is the persistence slice the classifier needs. Errors from it
// propagate to the caller unmodified.
type Store interface {
	GetCustomer(ctx context.Context, id uuid.UUID) (Customer, error)
	GetCustomerBookingStats(ctx context.Context, id uuid.UUID) (BookingStats, error)
	UpdateCustomerIntelligence(ctx context.Context, params UpdateIntelligenceParams) error
	UpdateCustomerTags(ctx context.Context, id uuid.UUID, tags []string) error
}

// Result reports what a classification pass did, for callers that notify on
// tier changes.
type Result struct {
	Skipped     bool
	TierChanged bool
	OldLevel    RelationshipLevel
	NewLevel    RelationshipLevel
	TagsAdded   []string
}

// Service runs the relationship classifier. The read-then-write sequence is
// not transactional; concurrent passes over the same customer resolve
// last-write-wins.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// CheckAndUpdateCustomerIntelligence re-derives the customer's relationship
// level and value tags from their paid-booking history.
//
// A locked level always wins: the pass is skipped entirely. The level only
// ever moves up (new -> regular -> vip); vip is never left automatically.
// Tags are additive. A tier change persists level, tags and a timestamped
// audit note; a tags-only change persists tags alone; no change writes
// nothing, so repeated calls on unchanged state are no-ops.
func (s *Service) CheckAndUpdateCustomerIntelligence(ctx context.Context, customerID uuid.UUID) (Result, error) {
	c, err := s.store.GetCustomer(ctx, customerID)
	if err != nil {
		return Result{}, err
	}

	if c.RelationshipLevelLocked {
		logging.Debug("customer level locked, skipping classification", "customer_id", customerID)
		return Result{Skipped: true, OldLevel: c.RelationshipLevel, NewLevel: c.RelationshipLevel}, nil
	}

	stats, err := s.store.GetCustomerBookingStats(ctx, customerID)
	if err != nil {
		return Result{}, err
	}

	newLevel := c.RelationshipLevel
	if c.RelationshipLevel != LevelVIP {
		switch {
		case stats.PaidBookings >= VIPMinPaidBookings || stats.TotalSpend >= VIPMinTotalSpend:
			newLevel = LevelVIP
		case stats.PaidBookings >= RegularMinPaidBookings:
			newLevel = LevelRegular
		}
	}

	var autoTags []string
	if stats.TotalSpend >= VIPMinTotalSpend {
		autoTags = append(autoTags, TagHighValue)
	}
	if stats.PaidBookings >= VIPMinPaidBookings {
		autoTags = append(autoTags, TagFrequentBooker)
	}
	mergedTags, addedTags := mergeTags(c.Tags, autoTags)

	result := Result{
		TierChanged: newLevel != c.RelationshipLevel,
		OldLevel:    c.RelationshipLevel,
		NewLevel:    newLevel,
		TagsAdded:   addedTags,
	}

	switch {
	case result.TierChanged:
		note := fmt.Sprintf("[%s] Relationship level changed from %s to %s (%d paid bookings, %.2f total spend)",
			s.now().UTC().Format("2006-01-02 15:04"), c.RelationshipLevel, newLevel,
			stats.PaidBookings, stats.TotalSpend)

		err := s.store.UpdateCustomerIntelligence(ctx, UpdateIntelligenceParams{
			ID:                customerID,
			RelationshipLevel: newLevel,
			Tags:              mergedTags,
			Notes:             appendNote(c.Notes, note),
		})
		if err != nil {
			return Result{}, err
		}

		logging.Info("customer relationship level changed",
			"customer_id", customerID,
			"from", c.RelationshipLevel,
			"to", newLevel,
			"paid_bookings", stats.PaidBookings,
			"total_spend", stats.TotalSpend)

	case len(addedTags) > 0:
		if err := s.store.UpdateCustomerTags(ctx, customerID, mergedTags); err != nil {
			return Result{}, err
		}
		logging.Info("customer tags updated", "customer_id", customerID, "added", addedTags)
	}

	return result, nil
}
