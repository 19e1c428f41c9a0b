// Package main implements the HTTP API server for the leaderboard.
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	apihttp "github.com/dsjohal14/arcadeboard/internal/http"
	"github.com/dsjohal14/arcadeboard/internal/libs/config"
	"github.com/dsjohal14/arcadeboard/internal/libs/obs"
	"github.com/dsjohal14/arcadeboard/internal/scope/db"
	"github.com/rs/zerolog"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	// Connect to storage in the background; the API serves degraded
	// responses until (and unless) the connection is established
	storage := db.NewHandle(obs.Logger("storage"))
	defer func() { _ = storage.Close() }()
	connectStorage(storage, cfg, logger)

	// Create HTTP handler
	handler := apihttp.NewHandler(storage, logger)

	// Setup router
	r := apihttp.NewRouter(handler, obs.Logger("http"), cfg.AllowedOrigins)

	// Start server
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	logger.Info().Str("addr", srv.Addr).Msg("starting API server")

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// connectStorage starts the single startup connection attempt. A missing or
// unusable connection string leaves the service degraded rather than
// stopping it.
func connectStorage(storage *db.Handle, cfg *config.Config, logger zerolog.Logger) {
	if cfg.StorageURI == "" {
		logger.Warn().Msg("MONGO_URI is not set, storage disabled")
		return
	}

	scheme, err := db.Scheme(cfg.StorageURI)
	if err != nil {
		logger.Error().Err(err).Msg("invalid storage connection string, storage disabled")
		return
	}
	logger.Info().Str("scheme", scheme).Msg("using storage backend")

	opts := db.Options{
		MongoDatabase: cfg.MongoDatabase,
		Logger:        obs.Logger("storage"),
	}

	storage.Connect(context.Background(), func(ctx context.Context) (db.Storage, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		return db.Open(ctx, cfg.StorageURI, opts)
	})
}
