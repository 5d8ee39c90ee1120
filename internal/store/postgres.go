package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres provides PostgreSQL-backed user and item stores sharing one
// connection pool. Both stores satisfy the same interfaces as the
// in-memory implementations; identity columns keep ids positive and
// increasing.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres store with a connection pool.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Ping checks database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.pool.Close()
}

// Pool exposes the underlying connection pool for test helpers.
func (p *Postgres) Pool() *pgxpool.Pool {
	return p.pool
}

// Users returns the user store view.
func (p *Postgres) Users() *PostgresUserStore {
	return &PostgresUserStore{pool: p.pool}
}

// Items returns the item store view.
func (p *Postgres) Items() *PostgresItemStore {
	return &PostgresItemStore{pool: p.pool}
}

// isUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation (error code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
