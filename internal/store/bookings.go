package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookhive/ops-backend/internal/booking"
)

const bookingColumns = "id, customer_id, staff_id, team_id, team_member_count, total_price, status, scheduled_at, created_at, archived_at"

func scanBooking(row pgx.Row) (booking.Booking, error) {
	var b booking.Booking
	err := row.Scan(&b.ID, &b.CustomerID, &b.StaffID, &b.TeamID, &b.TeamMemberCount,
		&b.TotalPrice, &b.Status, &b.ScheduledAt, &b.CreatedAt, &b.ArchivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return booking.Booking{}, ErrNotFound
		}
		return booking.Booking{}, fmt.Errorf("scan booking: %w", err)
	}
	return b, nil
}

// GetBooking fetches one booking by id, archived or not.
func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (booking.Booking, error) {
	stmt, args, err := s.builder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("build select booking sql: %w", err)
	}

	return scanBooking(s.pool.QueryRow(ctx, stmt, args...))
}

// UpdateBookingStatus writes a new status and returns the updated row.
// Lifecycle validation is the caller's job; the store only persists.
func (s *Store) UpdateBookingStatus(ctx context.Context, id uuid.UUID, status booking.Status) (booking.Booking, error) {
	stmt, args, err := s.builder.Update("bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + bookingColumns).
		ToSql()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("build update booking status sql: %w", err)
	}

	return scanBooking(s.pool.QueryRow(ctx, stmt, args...))
}

// ListCompletedBookings returns non-archived completed bookings scheduled in
// [from, to).
func (s *Store) ListCompletedBookings(ctx context.Context, from, to time.Time) ([]booking.Booking, error) {
	stmt, args, err := s.builder.Select(bookingColumns).
		From("bookings").
		Where(squirrel.Eq{"status": booking.StatusCompleted}).
		Where(squirrel.GtOrEq{"scheduled_at": from}).
		Where(squirrel.Lt{"scheduled_at": to}).
		Where("archived_at IS NULL").
		OrderBy("scheduled_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list completed bookings sql: %w", err)
	}

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list completed bookings: %w", err)
	}
	defer rows.Close()

	var out []booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// CreateBookingParams carries a booking insert. ID and CreatedAt are assigned
// by the database.
type CreateBookingParams struct {
	CustomerID      uuid.UUID
	StaffID         *uuid.UUID
	TeamID          *uuid.UUID
	TeamMemberCount *int32
	TotalPrice      float64
	Status          booking.Status
	ScheduledAt     time.Time
}

// CreateBooking inserts a booking and returns the stored row.
func (s *Store) CreateBooking(ctx context.Context, params CreateBookingParams) (booking.Booking, error) {
	stmt, args, err := s.builder.Insert("bookings").
		Columns("customer_id", "staff_id", "team_id", "team_member_count", "total_price", "status", "scheduled_at").
		Values(params.CustomerID, params.StaffID, params.TeamID, params.TeamMemberCount,
			params.TotalPrice, params.Status, params.ScheduledAt).
		Suffix("RETURNING " + bookingColumns).
		ToSql()
	if err != nil {
		return booking.Booking{}, fmt.Errorf("build insert booking sql: %w", err)
	}

	return scanBooking(s.pool.QueryRow(ctx, stmt, args...))
}

// ArchiveBooking soft-deletes a booking. Archiving an already-archived row is
// a no-op, not an error.
func (s *Store) ArchiveBooking(ctx context.Context, id uuid.UUID) error {
	return s.setBookingArchived(ctx, id, true)
}

// RestoreBooking clears the soft-delete flag.
func (s *Store) RestoreBooking(ctx context.Context, id uuid.UUID) error {
	return s.setBookingArchived(ctx, id, false)
}

func (s *Store) setBookingArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	update := s.builder.Update("bookings").Where(squirrel.Eq{"id": id})
	if archived {
		update = update.Set("archived_at", squirrel.Expr("now()"))
	} else {
		update = update.Set("archived_at", nil)
	}

	stmt, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build archive booking sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("archive booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBooking permanently removes a booking row.
func (s *Store) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	stmt, args, err := s.builder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete booking sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
