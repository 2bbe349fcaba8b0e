// Seeder applies goose migrations and loads a YAML fixture of teams, staff,
// customers and bookings into the database. Intended for local development
// and demo environments.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gopkg.in/yaml.v3"

	"github.com/bookhive/ops-backend/internal/booking"
	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/customer"
	"github.com/bookhive/ops-backend/internal/database"
	"github.com/bookhive/ops-backend/internal/store"
)

type SeedData struct {
	Teams     []Team     `yaml:"teams"`
	Staff     []Staff    `yaml:"staff"`
	Customers []Customer `yaml:"customers"`
	Bookings  []Booking  `yaml:"bookings"`
}

type Team struct {
	Name    string   `yaml:"name"`
	Members []string `yaml:"members"` // staff emails
}

type Staff struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type Customer struct {
	Name              string   `yaml:"name"`
	Email             string   `yaml:"email"`
	RelationshipLevel string   `yaml:"relationship_level"`
	Locked            bool     `yaml:"relationship_level_locked"`
	Tags              []string `yaml:"tags"`
}

type Booking struct {
	Customer        string  `yaml:"customer"` // customer email
	Staff           string  `yaml:"staff"`    // staff email, optional
	Team            string  `yaml:"team"`     // team name, optional
	TeamMemberCount *int32  `yaml:"team_member_count"`
	TotalPrice      float64 `yaml:"total_price"`
	Status          string  `yaml:"status"`
	ScheduledAt     string  `yaml:"scheduled_at"` // RFC 3339
}

func main() {
	fixturePath := flag.String("fixture", "db/seed.yaml", "path to seed fixture")
	migrationsDir := flag.String("migrations", "db/migrations", "path to goose migrations")
	flag.Parse()

	cfg := config.Load()

	db, err := database.New(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrate(db, *migrationsDir); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	data, err := loadFixture(*fixturePath)
	if err != nil {
		log.Fatalf("Failed to load fixture: %v", err)
	}

	if err := seed(context.Background(), db.Store(), data); err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seeded %d teams, %d staff, %d customers, %d bookings",
		len(data.Teams), len(data.Staff), len(data.Customers), len(data.Bookings))
}

func migrate(db *database.Database, dir string) error {
	sqlDB := stdlib.OpenDBFromPool(db.Pool())
	defer sqlDB.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(sqlDB, dir)
}

func loadFixture(path string) (*SeedData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &data, nil
}

func seed(ctx context.Context, st *store.Store, data *SeedData) error {
	staffByEmail := make(map[string]uuid.UUID, len(data.Staff))
	for _, s := range data.Staff {
		id, err := st.CreateStaff(ctx, s.Name, s.Email)
		if err != nil {
			return fmt.Errorf("staff %s: %w", s.Email, err)
		}
		staffByEmail[s.Email] = id
	}

	teamByName := make(map[string]uuid.UUID, len(data.Teams))
	for _, team := range data.Teams {
		id, err := st.CreateTeam(ctx, team.Name)
		if err != nil {
			return fmt.Errorf("team %s: %w", team.Name, err)
		}
		teamByName[team.Name] = id

		for _, email := range team.Members {
			staffID, ok := staffByEmail[email]
			if !ok {
				return fmt.Errorf("team %s: unknown member %s", team.Name, email)
			}
			if err := st.AddTeamMember(ctx, id, staffID); err != nil {
				return fmt.Errorf("team %s member %s: %w", team.Name, email, err)
			}
		}
	}

	customerByEmail := make(map[string]uuid.UUID, len(data.Customers))
	for _, c := range data.Customers {
		created, err := st.CreateCustomer(ctx, store.CreateCustomerParams{
			Name:                    c.Name,
			Email:                   c.Email,
			RelationshipLevel:       customer.RelationshipLevel(c.RelationshipLevel),
			RelationshipLevelLocked: c.Locked,
			Tags:                    c.Tags,
		})
		if err != nil {
			return fmt.Errorf("customer %s: %w", c.Email, err)
		}
		customerByEmail[c.Email] = created.ID
	}

	for i, b := range data.Bookings {
		customerID, ok := customerByEmail[b.Customer]
		if !ok {
			return fmt.Errorf("booking %d: unknown customer %s", i, b.Customer)
		}

		params := store.CreateBookingParams{
			CustomerID:      customerID,
			TeamMemberCount: b.TeamMemberCount,
			TotalPrice:      b.TotalPrice,
			Status:          booking.Status(b.Status),
		}
		if b.Staff != "" {
			staffID, ok := staffByEmail[b.Staff]
			if !ok {
				return fmt.Errorf("booking %d: unknown staff %s", i, b.Staff)
			}
			params.StaffID = &staffID
		}
		if b.Team != "" {
			teamID, ok := teamByName[b.Team]
			if !ok {
				return fmt.Errorf("booking %d: unknown team %s", i, b.Team)
			}
			params.TeamID = &teamID
		}
		if b.ScheduledAt != "" {
			scheduledAt, err := time.Parse(time.RFC3339, b.ScheduledAt)
			if err != nil {
				return fmt.Errorf("booking %d: bad scheduled_at: %w", i, err)
			}
			params.ScheduledAt = scheduledAt
		} else {
			params.ScheduledAt = time.Now().UTC()
		}

		if _, err := st.CreateBooking(ctx, params); err != nil {
			return fmt.Errorf("booking %d: %w", i, err)
		}
	}

	return nil
}
