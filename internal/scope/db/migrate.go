package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// Dialect identifies the SQL flavour of a SQLStore
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

func (d Dialect) goose() (goose.Dialect, error) {
	switch d {
	case DialectPostgres:
		return goose.DialectPostgres, nil
	case DialectSQLite:
		return goose.DialectSQLite3, nil
	}
	return "", fmt.Errorf("unknown dialect %q", string(d))
}

func newProvider(sqlDB *sql.DB, dialect Dialect) (*goose.Provider, error) {
	gd, err := dialect.goose()
	if err != nil {
		return nil, err
	}

	fsys, err := fs.Sub(migrationsFS, "migrations/"+string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	provider, err := goose.NewProvider(gd, sqlDB, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Migrate applies all pending migrations and returns the versions applied
func Migrate(ctx context.Context, sqlDB *sql.DB, dialect Dialect) ([]int64, error) {
	provider, err := newProvider(sqlDB, dialect)
	if err != nil {
		return nil, err
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	applied := make([]int64, 0, len(results))
	for _, r := range results {
		applied = append(applied, r.Source.Version)
	}
	return applied, nil
}

// Rollback reverts the most recent migration and returns its version
func Rollback(ctx context.Context, sqlDB *sql.DB, dialect Dialect) (int64, error) {
	provider, err := newProvider(sqlDB, dialect)
	if err != nil {
		return 0, err
	}

	result, err := provider.Down(ctx)
	if err != nil {
		return 0, fmt.Errorf("rollback failed: %w", err)
	}
	return result.Source.Version, nil
}

// MigrationStatus describes one migration of a SQL backend
type MigrationStatus struct {
	Version int64
	Path    string
	Applied bool
}

// Status reports every known migration and whether it has been applied
func Status(ctx context.Context, sqlDB *sql.DB, dialect Dialect) ([]MigrationStatus, error) {
	provider, err := newProvider(sqlDB, dialect)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	out := make([]MigrationStatus, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, MigrationStatus{
			Version: s.Source.Version,
			Path:    s.Source.Path,
			Applied: s.State == goose.StateApplied,
		})
	}
	return out, nil
}
