package store

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// CountActiveTeamMembers returns the number of current members per requested
// team, excluding members who have left. Teams with no active members (or
// unknown ids) are absent from the result; the revenue service maps those to
// its divisor fallback.
func (s *Store) CountActiveTeamMembers(ctx context.Context, teamIDs []uuid.UUID) (map[uuid.UUID]int32, error) {
	counts := make(map[uuid.UUID]int32, len(teamIDs))
	if len(teamIDs) == 0 {
		return counts, nil
	}

	stmt, args, err := s.builder.Select("team_id", "COUNT(*)").
		From("team_members").
		Where(squirrel.Eq{"team_id": teamIDs}).
		Where("left_at IS NULL").
		GroupBy("team_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count team members sql: %w", err)
	}

	rows, err := s.pool.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("count team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teamID uuid.UUID
		var count int32
		if err := rows.Scan(&teamID, &count); err != nil {
			return nil, fmt.Errorf("scan team member count: %w", err)
		}
		counts[teamID] = count
	}
	return counts, rows.Err()
}

// CreateTeam inserts a team and returns its id.
func (s *Store) CreateTeam(ctx context.Context, name string) (uuid.UUID, error) {
	stmt, args, err := s.builder.Insert("teams").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert team sql: %w", err)
	}

	var id uuid.UUID
	if err := s.pool.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("insert team: %w", err)
	}
	return id, nil
}

// CreateStaff inserts a staff member and returns their id.
func (s *Store) CreateStaff(ctx context.Context, name, email string) (uuid.UUID, error) {
	stmt, args, err := s.builder.Insert("staff").
		Columns("name", "email").
		Values(name, email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build insert staff sql: %w", err)
	}

	var id uuid.UUID
	if err := s.pool.QueryRow(ctx, stmt, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("insert staff: %w", err)
	}
	return id, nil
}

// AddTeamMember enrolls a staff member in a team.
func (s *Store) AddTeamMember(ctx context.Context, teamID, staffID uuid.UUID) error {
	stmt, args, err := s.builder.Insert("team_members").
		Columns("team_id", "staff_id").
		Values(teamID, staffID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert team member sql: %w", err)
	}

	if _, err := s.pool.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert team member: %w", err)
	}
	return nil
}

// RemoveTeamMember marks a membership as left at the given time. The row
// stays, so historical revenue lookups still see the member as having been
// on the team.
func (s *Store) RemoveTeamMember(ctx context.Context, teamID, staffID uuid.UUID, leftAt time.Time) error {
	stmt, args, err := s.builder.Update("team_members").
		Set("left_at", leftAt).
		Where(squirrel.Eq{"team_id": teamID, "staff_id": staffID}).
		Where("left_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove team member sql: %w", err)
	}

	tag, err := s.pool.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("remove team member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
