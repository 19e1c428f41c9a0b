package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dsjohal14/arcadeboard/internal/scope/db"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// Handler contains HTTP handlers for the API
type Handler struct {
	storage *db.Handle
	logger  zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewHandler creates a new HTTP handler. The storage handle may not be
// connected yet; every request checks it.
func NewHandler(storage *db.Handle, logger zerolog.Logger) *Handler {
	return &Handler{
		storage: storage,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return ulid.Make().String() },
	}
}

// Helper functions used across all handlers

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a success=false response with the given status code
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
	})
}

// storeOrUnavailable returns the connected store, or writes a 503 and
// reports false
func (h *Handler) storeOrUnavailable(w http.ResponseWriter) (db.Storage, bool) {
	store, ok := h.storage.Store()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, MsgNotConnected)
	}
	return store, ok
}
