package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
)

var entryColumns = []string{"id", "player_name", "score", "date_achieved"}

const sqliteTimeLayout = "2006-01-02T15:04:05.000Z"

// SQLStore stores entries in a relational table (Postgres or SQLite)
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
	builder sq.StatementBuilderType
	release func()
}

// NewSQLStore wraps an open, migrated database
func NewSQLStore(sqlDB *sql.DB, dialect Dialect) *SQLStore {
	var placeholder sq.PlaceholderFormat = sq.Question
	if dialect == DialectPostgres {
		placeholder = sq.Dollar
	}

	return &SQLStore{
		db:      sqlDB,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// DB returns the underlying database
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// Dialect returns the SQL flavour of the store
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

// Insert writes one row
func (s *SQLStore) Insert(ctx context.Context, entry scores.Entry) error {
	query, args, err := s.builder.
		Insert(CollectionName).
		Columns(entryColumns...).
		Values(entry.ID, entry.PlayerName, entry.Score, s.timeArg(entry.DateAchieved)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}
	return nil
}

// Top returns up to limit entries in leaderboard order
func (s *SQLStore) Top(ctx context.Context, limit int) ([]scores.Entry, error) {
	query, args, err := s.builder.
		Select(entryColumns...).
		From(CollectionName).
		OrderBy("score DESC", "date_achieved ASC", "id ASC").
		Limit(uint64(max(limit, 0))).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build leaderboard query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]scores.Entry, 0, max(limit, 0))
	for rows.Next() {
		var (
			e  scores.Entry
			ts timestamp
		)
		if err := rows.Scan(&e.ID, &e.PlayerName, &e.Score, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		e.DateAchieved = time.Time(ts)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leaderboard: %w", err)
	}
	return entries, nil
}

// timeArg binds a timestamp. SQLite has no time type, so it gets fixed-width
// UTC text that sorts chronologically.
func (s *SQLStore) timeArg(t time.Time) any {
	if s.dialect == DialectSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t.UTC()
}

// Kind returns the dialect name
func (s *SQLStore) Kind() string { return string(s.dialect) }

// Close closes the database and any pool behind it
func (s *SQLStore) Close() error {
	err := s.db.Close()
	if s.release != nil {
		s.release()
	}
	return err
}

// timestamp scans a time column. SQLite may hand back text depending on how
// the value was written.
type timestamp time.Time

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	time.DateTime,
}

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v.UTC())
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	case int64:
		*t = timestamp(time.UnixMilli(v).UTC())
		return nil
	}
	return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (t *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			*t = timestamp(ts.UTC())
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}
