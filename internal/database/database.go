package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookhive/ops-backend/internal/config"
	"github.com/bookhive/ops-backend/internal/store"
)

type Database struct {
	pool  *pgxpool.Pool
	store *store.Store
}

func New(cfg *config.DatabaseConfig) (*Database, error) {
	pool, err := pgxpool.New(context.Background(), cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Activate and test the connection
	if err := pool.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{
		pool:  pool,
		store: store.New(pool),
	}, nil
}

func (d *Database) Close() {
	if d.pool != nil {
		d.pool.Close()
	}
}

func (d *Database) Store() *store.Store {
	return d.store
}

func (d *Database) Pool() *pgxpool.Pool {
	return d.pool
}
