package store

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bookhive/ops-backend/internal/booking"
	"github.com/bookhive/ops-backend/internal/customer"
)

const customerColumns = "id, name, email, relationship_level, relationship_level_locked, tags, notes, created_at, archived_at"

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.RelationshipLevel, &c.RelationshipLevelLocked,
		&c.Tags, &c.Notes, &c.CreatedAt, &c.ArchivedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, ErrNotFound
		}
		return customer.Customer{}, fmt.Errorf("scan customer: %w", err)
	}
	return c, nil
}

// GetCustomer fetches one customer by id.
func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (customer.Customer, error) {
	stmt, args, err := s.builder.Select(customerColumns).
		From("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("build select customer sql: %w", err)
	}

	return scanCustomer(s.pool.QueryRow(ctx, stmt, args...))
}

// GetCustomerBookingStats aggregates the customer's paid history: count and
// summed price of their completed, non-archived bookings.
func (s *Store) GetCustomerBookingStats(ctx context.Context, id uuid.UUID) (customer.BookingStats, error) {
	stmt, args, err := s.builder.
		Select("COUNT(*)", "COALESCE(SUM(total_price), 0)").
		From("bookings").
		Where(squirrel.Eq{"customer_id": id, "status": booking.StatusCompleted}).
		Where("archived_at IS NULL").
		ToSql()
	if err != nil {
		return customer.BookingStats{}, fmt.Errorf("build customer booking stats sql: %w", err)
	}

	var stats customer.BookingStats
	if err := s.pool.QueryRow(ctx, stmt, args...).Scan(&stats.PaidBookings, &stats.TotalSpend); err != nil {
		return customer.BookingStats{}, fmt.Errorf("customer booking stats: %w", err)
	}
	return stats, nil
}

// UpdateCustomerIntelligence persists a full classification result: level,
// merged tags and notes with the audit entry already appended.
func (s *Store) UpdateCustomerIntelligence(ctx context.Context, params customer.UpdateIntelligenceParams) error {
	stmt, args, err := s.builder.Update("customers").
		Set("relationship_level", params.RelationshipLevel).
		Set("tags", params.Tags).
		Set("notes", params.Notes).
		Where(squirrel.Eq{"id": params.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update customer intelligence sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update customer intelligence: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateCustomerTags persists tags alone, leaving level and notes untouched.
func (s *Store) UpdateCustomerTags(ctx context.Context, id uuid.UUID, tags []string) error {
	stmt, args, err := s.builder.Update("customers").
		Set("tags", tags).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update customer tags sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update customer tags: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCustomerParams carries a customer insert.
type CreateCustomerParams struct {
	Name                    string
	Email                   string
	RelationshipLevel       customer.RelationshipLevel
	RelationshipLevelLocked bool
	Tags                    []string
	Notes                   string
}

// CreateCustomer inserts a customer and returns the stored row.
func (s *Store) CreateCustomer(ctx context.Context, params CreateCustomerParams) (customer.Customer, error) {
	level := params.RelationshipLevel
	if level == "" {
		level = customer.LevelNew
	}
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	stmt, args, err := s.builder.Insert("customers").
		Columns("name", "email", "relationship_level", "relationship_level_locked", "tags", "notes").
		Values(params.Name, params.Email, level, params.RelationshipLevelLocked, tags, params.Notes).
		Suffix("RETURNING " + customerColumns).
		ToSql()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("build insert customer sql: %w", err)
	}

	return scanCustomer(s.pool.QueryRow(ctx, stmt, args...))
}

// ArchiveCustomer soft-deletes a customer.
func (s *Store) ArchiveCustomer(ctx context.Context, id uuid.UUID) error {
	return s.setCustomerArchived(ctx, id, true)
}

// RestoreCustomer clears the soft-delete flag.
func (s *Store) RestoreCustomer(ctx context.Context, id uuid.UUID) error {
	return s.setCustomerArchived(ctx, id, false)
}

func (s *Store) setCustomerArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	update := s.builder.Update("customers").Where(squirrel.Eq{"id": id})
	if archived {
		update = update.Set("archived_at", squirrel.Expr("now()"))
	} else {
		update = update.Set("archived_at", nil)
	}

	stmt, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("build archive customer sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("archive customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCustomer permanently removes a customer row.
func (s *Store) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	stmt, args, err := s.builder.Delete("customers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete customer sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
