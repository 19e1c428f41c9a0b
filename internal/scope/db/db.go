// Package db provides score storage backends and the shared connection
// handle used by the API.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // SQLite driver
)

// OpenPostgres connects to Postgres, applies migrations and returns a store
// backed by the connection pool.
func OpenPostgres(ctx context.Context, connString string) (*SQLStore, error) {
	store, err := connectPostgres(ctx, connString)
	if err != nil {
		return nil, err
	}
	return migrated(ctx, store)
}

// OpenSQLite opens (creating if needed) a SQLite database file and applies
// migrations.
func OpenSQLite(ctx context.Context, path string) (*SQLStore, error) {
	store, err := connectSQLite(ctx, path)
	if err != nil {
		return nil, err
	}
	return migrated(ctx, store)
}

// ConnectSQL connects to a Postgres or SQLite backend without touching its
// schema. Used by the migrate command.
func ConnectSQL(ctx context.Context, uri string) (*SQLStore, error) {
	scheme, err := Scheme(uri)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "postgres", "postgresql":
		return connectPostgres(ctx, uri)
	case "sqlite":
		return connectSQLite(ctx, strings.TrimPrefix(uri, "sqlite://"))
	}
	return nil, fmt.Errorf("%w: %q has no SQL schema", ErrUnsupportedScheme, scheme)
}

func connectPostgres(ctx context.Context, connString string) (*SQLStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := NewSQLStore(stdlib.OpenDBFromPool(pool), DialectPostgres)
	store.release = pool.Close
	return store, nil
}

func connectSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite serializes writers; one connection also keeps :memory: databases shared
	sqlDB.SetMaxOpenConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	return NewSQLStore(sqlDB, DialectSQLite), nil
}

func migrated(ctx context.Context, store *SQLStore) (*SQLStore, error) {
	if _, err := Migrate(ctx, store.DB(), store.Dialect()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
