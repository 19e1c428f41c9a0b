package db

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// OpenFunc establishes a storage connection
type OpenFunc func(ctx context.Context) (Storage, error)

// Handle holds the shared storage connection and reports whether it is ready.
// Requests query it on every call, so traffic can be served before (or
// without) a successful connection.
type Handle struct {
	mu     sync.RWMutex
	store  Storage
	closed bool
	logger zerolog.Logger
}

// NewHandle creates a handle with no connection
func NewHandle(logger zerolog.Logger) *Handle {
	return &Handle{logger: logger}
}

// Connect makes a single connection attempt in the background. On failure
// the handle stays not ready; the attempt is not retried. The returned
// channel receives the outcome and is then closed.
func (h *Handle) Connect(ctx context.Context, open OpenFunc) <-chan error {
	done := make(chan error, 1)

	go func() {
		defer close(done)

		h.logger.Info().Msg("connecting to storage")
		store, err := open(ctx)
		if err != nil {
			h.logger.Error().Err(err).Msg("storage connection failed, serving degraded")
			done <- err
			return
		}

		h.Set(store)
		h.logger.Info().Str("kind", store.Kind()).Msg("storage connected")
		done <- nil
	}()

	return done
}

// Set installs an established connection. A store handed to a closed handle
// is closed immediately.
func (h *Handle) Set(store Storage) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		_ = store.Close()
		return
	}
	h.store = store
}

// Store returns the connection and whether one is established
func (h *Handle) Store() (Storage, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store, h.store != nil
}

// Ready reports whether a connection is established
func (h *Handle) Ready() bool {
	_, ok := h.Store()
	return ok
}

// Close closes the connection, if any
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	if h.store == nil {
		return nil
	}
	err := h.store.Close()
	h.store = nil
	return err
}
