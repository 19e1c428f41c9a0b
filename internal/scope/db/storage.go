package db

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
	"github.com/rs/zerolog"
)

// CollectionName is the collection (or table) holding score entries.
const CollectionName = "high_scores"

// ErrUnsupportedScheme is returned for a connection string no backend accepts.
var ErrUnsupportedScheme = errors.New("unsupported storage scheme")

// Storage is the interface for score entry storage
// MongoStore, SQLStore and MemStore implement this interface
type Storage interface {
	// Insert writes a new entry
	Insert(ctx context.Context, entry scores.Entry) error

	// Top returns up to limit entries in leaderboard order
	Top(ctx context.Context, limit int) ([]scores.Entry, error)

	// Kind names the backend for logs
	Kind() string

	// Close releases the underlying connection
	Close() error
}

var _ Storage = (*MongoStore)(nil)
var _ Storage = (*SQLStore)(nil)
var _ Storage = (*MemStore)(nil)

// Options carries backend settings that are not part of the connection string.
type Options struct {
	MongoDatabase string
	Logger        zerolog.Logger
}

// Open connects to the backend selected by the scheme of uri.
//
//	mongodb://, mongodb+srv://  MongoDB
//	postgres://, postgresql://  Postgres
//	sqlite://<path>             SQLite file
//	memory://                   in-process store
func Open(ctx context.Context, uri string, opts Options) (Storage, error) {
	scheme, err := Scheme(uri)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "mongodb", "mongodb+srv":
		return OpenMongo(ctx, uri, opts.MongoDatabase, opts.Logger)
	case "postgres", "postgresql":
		return OpenPostgres(ctx, uri)
	case "sqlite":
		return OpenSQLite(ctx, strings.TrimPrefix(uri, "sqlite://"))
	case "memory":
		return NewMemStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
}

// Scheme returns the lowercased scheme of a connection string, failing for
// schemes Open cannot handle.
func Scheme(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid storage uri: %w", err)
	}

	scheme := strings.ToLower(u.Scheme)
	switch scheme {
	case "mongodb", "mongodb+srv", "postgres", "postgresql", "sqlite", "memory":
		return scheme, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
}
