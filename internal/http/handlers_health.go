package httpapi

import "net/http"

// HandleHealth reports that the API is up and whether storage is connected.
// It never fails.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{
		Status:   StatusRunning,
		Database: DatabaseNotConnected,
	}
	if h.storage.Ready() {
		resp.Database = DatabaseConnected
	}

	h.logger.Debug().Str("database", resp.Database).Msg("health check")

	writeJSON(w, http.StatusOK, resp)
}
