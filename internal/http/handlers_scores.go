package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dsjohal14/arcadeboard/internal/scope/scores"
)

// maxBodyBytes caps submission bodies
const maxBodyBytes = 100 << 10

// HandleSubmitScore validates and stores a score submission.
// A non-positive score is reported inline with status 200 and nothing is written.
func (h *Handler) HandleSubmitScore(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeOrUnavailable(w)
	if !ok {
		return
	}

	var req SubmitScoreRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	// An empty body is an empty submission
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.Warn().Int64("limit", tooLarge.Limit).Msg("submit request too large")
			writeError(w, http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
			return
		}
		h.logger.Warn().Err(err).Msg("invalid submit request")
		writeError(w, http.StatusBadRequest, MsgInvalidJSON)
		return
	}

	entry, err := scores.NewEntry(
		h.newID(),
		scores.NameFrom(req.PlayerName),
		scores.CoerceScore(req.Score),
		h.now(),
	)
	if err != nil {
		h.logger.Debug().Interface("score", req.Score).Msg("rejected score")
		writeJSON(w, http.StatusOK, SubmitScoreResponse{
			Success: false,
			Message: MsgScoreNotPositive,
		})
		return
	}

	if err := store.Insert(r.Context(), entry); err != nil {
		h.logger.Error().Err(err).Str("player", entry.PlayerName).Msg("failed to store score")
		writeError(w, http.StatusInternalServerError, MsgSubmitFailed)
		return
	}

	h.logger.Info().
		Str("id", entry.ID).
		Str("player", entry.PlayerName).
		Int64("score", entry.Score).
		Msg("score submitted")

	writeJSON(w, http.StatusOK, SubmitScoreResponse{
		Success: true,
		Message: MsgScoreSubmitted,
		ID:      entry.ID,
	})
}

// HandleGetLeaderboard returns the top entries, best score first and
// earliest achievement first among equal scores.
func (h *Handler) HandleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	store, ok := h.storeOrUnavailable(w)
	if !ok {
		return
	}

	top, err := store.Top(r.Context(), scores.LeaderboardSize)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to fetch leaderboard")
		writeError(w, http.StatusInternalServerError, MsgFetchFailed)
		return
	}

	board := make([]LeaderboardEntry, len(top))
	for i, e := range top {
		board[i] = LeaderboardEntry{
			PlayerName:   e.PlayerName,
			Score:        e.Score,
			DateAchieved: scores.FormatDate(e.DateAchieved),
		}
	}

	h.logger.Debug().Int("entries", len(board)).Msg("leaderboard fetched")

	writeJSON(w, http.StatusOK, LeaderboardResponse{
		Success:     true,
		Leaderboard: board,
	})
}
