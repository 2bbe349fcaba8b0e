package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bookhive/ops-backend/internal/authz"
	"github.com/bookhive/ops-backend/internal/logging"
)

// ErrPermissionDenied is returned when the caller's role fails the matrix
// check for the attempted operation.
var ErrPermissionDenied = errors.New("permission denied")

// Store is the subset of the persistence layer the status service needs.
type Store interface {
	GetBooking(ctx context.Context, id uuid.UUID) (Booking, error)
	UpdateBookingStatus(ctx context.Context, id uuid.UUID, status Status) (Booking, error)
}

// Service applies status changes: permission check, fetch, lifecycle
// validation, then the write. Invalid transitions are rejected before any
// persistence call.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// UpdateStatus moves one booking to next on behalf of role.
func (s *Service) UpdateStatus(ctx context.Context, role authz.Role, id uuid.UUID, next Status) (Booking, error) {
	if !authz.CheckPermission(role, authz.ActionUpdate, authz.ResourceBookings) {
		return Booking{}, fmt.Errorf("update booking %s as %q: %w", id, role, ErrPermissionDenied)
	}

	current, err := s.store.GetBooking(ctx, id)
	if err != nil {
		return Booking{}, fmt.Errorf("get booking %s: %w", id, err)
	}

	if err := ValidateTransition(current.Status, next); err != nil {
		return Booking{}, err
	}

	updated, err := s.store.UpdateBookingStatus(ctx, id, next)
	if err != nil {
		return Booking{}, fmt.Errorf("update booking %s status: %w", id, err)
	}

	logging.Info("booking status updated",
		"booking_id", id,
		"from", current.Status,
		"to", next)

	return updated, nil
}

// BulkUpdateStatus moves a batch of bookings to next. The whole batch is
// validated up front and rejected if any member's transition is illegal;
// nothing is written for a partially-valid batch.
func (s *Service) BulkUpdateStatus(ctx context.Context, role authz.Role, ids []uuid.UUID, next Status) ([]Booking, error) {
	if !authz.CheckPermission(role, authz.ActionUpdate, authz.ResourceBookings) {
		return nil, fmt.Errorf("bulk update bookings as %q: %w", role, ErrPermissionDenied)
	}

	current := make([]Booking, 0, len(ids))
	for _, id := range ids {
		b, err := s.store.GetBooking(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get booking %s: %w", id, err)
		}
		if err := ValidateTransition(b.Status, next); err != nil {
			return nil, fmt.Errorf("booking %s: %w", id, err)
		}
		current = append(current, b)
	}

	updated := make([]Booking, 0, len(current))
	for _, b := range current {
		u, err := s.store.UpdateBookingStatus(ctx, b.ID, next)
		if err != nil {
			return updated, fmt.Errorf("update booking %s status: %w", b.ID, err)
		}
		updated = append(updated, u)
	}

	return updated, nil
}
