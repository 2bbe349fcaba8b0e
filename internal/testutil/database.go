package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bookhive/ops-backend/internal/store"
)

// TestDatabase wraps a real PostgreSQL container for store tests.
type TestDatabase struct {
	Store     *store.Store
	container testcontainers.Container
	pool      *pgxpool.Pool
}

// NewTestDatabase starts a PostgreSQL container and connects to it. Callers
// own teardown via Cleanup; use a shared instance per package in TestMain to
// avoid one container per test.
func NewTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second),
				wait.ForListeningPort("5432/tcp").
					WithStartupTimeout(30*time.Second),
			),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "Failed to get connection string")

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err, "Failed to create connection pool")
	require.NoError(t, pool.Ping(ctx), "Failed to ping database")

	return &TestDatabase{
		Store:     store.New(pool),
		container: postgresContainer,
		pool:      pool,
	}
}

// Pool exposes the raw connection pool for direct assertions.
func (tdb *TestDatabase) Pool() *pgxpool.Pool {
	return tdb.pool
}

// RunMigrations applies the goose migrations from db/migrations.
func (tdb *TestDatabase) RunMigrations(t *testing.T) {
	sqlDB := stdlib.OpenDBFromPool(tdb.pool)
	defer sqlDB.Close()

	require.NoError(t, goose.SetDialect("postgres"))

	// Relative path from the package under test to the project root.
	err := goose.Up(sqlDB, "../../db/migrations")
	require.NoError(t, err, "Failed to run goose migrations")
}

// Cleanup closes the pool and terminates the container.
func (tdb *TestDatabase) Cleanup() {
	ctx := context.Background()
	tdb.pool.Close()
	_ = tdb.container.Terminate(ctx)
}

// CleanupDatabase truncates all tables for test isolation.
func (tdb *TestDatabase) CleanupDatabase(t *testing.T) {
	ctx := context.Background()

	tables := []string{
		"bookings",
		"service_packages",
		"customers",
		"team_members",
		"staff",
		"teams",
	}

	for _, table := range tables {
		if _, err := tdb.pool.Exec(ctx, "TRUNCATE TABLE "+table+" CASCADE"); err != nil {
			t.Logf("Failed to truncate table %s: %v", table, err)
		}
	}
}
