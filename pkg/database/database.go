// Package database opens the Postgres connection pool shared by the server
// and the command-line tools.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDatabaseURLNotSet is returned when no connection string is supplied.
var ErrDatabaseURLNotSet = errors.New("DATABASE_URL environment variable is not set")

// Options tune the pool. Zero values keep pgxpool defaults.
type Options struct {
	MaxConns int32
}

// NewPool creates the pool and pings it before returning.
// The caller owns the pool and must Close it.
func NewPool(ctx context.Context, databaseURL string, opts Options) (*pgxpool.Pool, error) {
	cfg, err := ParseConfig(databaseURL, opts)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// ParseConfig builds the pool configuration without connecting.
func ParseConfig(databaseURL string, opts Options) (*pgxpool.Config, error) {
	if databaseURL == "" {
		return nil, ErrDatabaseURLNotSet
	}

	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	// Every request runs the same handful of statements.
	cfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheStatement

	return cfg, nil
}
