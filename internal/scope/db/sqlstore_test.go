package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
)

func openTestSQLite(t *testing.T) *SQLStore {
	t.Helper()

	store, err := OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	exerciseStorage(t, openTestSQLite(t))
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	applied, err := Migrate(ctx, store.DB(), DialectSQLite)
	if err != nil {
		t.Fatalf("second Migrate() failed: %v", err)
	}
	if len(applied) != 0 {
		t.Errorf("expected no pending migrations, applied %v", applied)
	}

	statuses, err := Status(ctx, store.DB(), DialectSQLite)
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	if len(statuses) == 0 {
		t.Fatal("expected at least one migration")
	}
	for _, s := range statuses {
		if !s.Applied {
			t.Errorf("migration %d not applied", s.Version)
		}
	}
}

func TestSQLiteRejectsNonPositiveScore(t *testing.T) {
	store := openTestSQLite(t)

	_, err := store.DB().ExecContext(context.Background(),
		"INSERT INTO high_scores (id, player_name, score, date_achieved) VALUES (?, ?, ?, ?)",
		"bad", "ACE", 0, time.Now().UTC().Format(sqliteTimeLayout))
	if err == nil {
		t.Error("expected CHECK constraint to reject score 0")
	}
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite(context.Background(), ""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestTimestampScan(t *testing.T) {
	want := time.Date(2025, 2, 3, 4, 5, 6, 7000000, time.UTC)

	tests := []struct {
		name string
		src  any
	}{
		{"time", want.In(time.FixedZone("X", 3600))},
		{"fixed width text", want.Format(sqliteTimeLayout)},
		{"bytes", []byte(want.Format(time.RFC3339Nano))},
		{"go string form", want.String()},
		{"unix millis", want.UnixMilli()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts timestamp
			if err := ts.Scan(tt.src); err != nil {
				t.Fatalf("Scan() failed: %v", err)
			}
			if got := time.Time(ts); !got.Equal(want) {
				t.Errorf("expected %v, got %v", want, got)
			}
		})
	}

	var ts timestamp
	if err := ts.Scan(true); err == nil {
		t.Error("expected error scanning bool")
	}
}

// Runs against a real Postgres when TEST_DATABASE_URL is set
func TestPostgresStore(t *testing.T) {
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("requires TEST_DATABASE_URL")
	}

	ctx := context.Background()
	store, err := OpenPostgres(ctx, connString)
	if err != nil {
		t.Fatalf("OpenPostgres() failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if _, err := store.DB().ExecContext(ctx, "TRUNCATE high_scores"); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}
	exerciseStorage(t, store)
}

func TestOpenPostgresInvalidConnection(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	// Test with invalid connection string
	_, err := OpenPostgres(ctx, "invalid://connection")
	if err == nil {
		t.Error("expected error with invalid connection string, got nil")
	}
}

func TestConnectSQLLeavesSchemaAlone(t *testing.T) {
	ctx := context.Background()
	uri := "sqlite://" + filepath.Join(t.TempDir(), "fresh.db")

	store, err := ConnectSQL(ctx, uri)
	if err != nil {
		t.Fatalf("ConnectSQL() failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	statuses, err := Status(ctx, store.DB(), store.Dialect())
	if err != nil {
		t.Fatalf("Status() failed: %v", err)
	}
	for _, s := range statuses {
		if s.Applied {
			t.Errorf("migration %d applied before Migrate()", s.Version)
		}
	}

	applied, err := Migrate(ctx, store.DB(), store.Dialect())
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if len(applied) != len(statuses) {
		t.Errorf("expected %d migrations applied, got %v", len(statuses), applied)
	}
}

func TestConnectSQLRejectsMongo(t *testing.T) {
	_, err := ConnectSQL(context.Background(), "mongodb://localhost:27017")
	if !errors.Is(err, ErrUnsupportedScheme) {
		t.Errorf("expected ErrUnsupportedScheme, got %v", err)
	}
}

func TestSQLiteRollback(t *testing.T) {
	store := openTestSQLite(t)
	ctx := context.Background()

	version, err := Rollback(ctx, store.DB(), DialectSQLite)
	if err != nil {
		t.Fatalf("Rollback() failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 rolled back, got %d", version)
	}

	if _, err := store.Top(ctx, 10); err == nil {
		t.Error("expected query to fail once the table is dropped")
	}
}

func TestSQLStorePlaceholders(t *testing.T) {
	tests := []struct {
		dialect  Dialect
		expected string
	}{
		{DialectPostgres, "SELECT id FROM high_scores WHERE id = $1"},
		{DialectSQLite, "SELECT id FROM high_scores WHERE id = ?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.dialect), func(t *testing.T) {
			store := NewSQLStore(nil, tt.dialect)

			query, args, err := store.builder.
				Select("id").
				From(CollectionName).
				Where(sq.Eq{"id": "x"}).
				ToSql()
			if err != nil {
				t.Fatalf("ToSql() failed: %v", err)
			}
			if query != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, query)
			}
			if len(args) != 1 {
				t.Errorf("expected 1 arg, got %v", args)
			}
		})
	}
}
