// Package httpapi provides HTTP handlers and data transfer objects for the leaderboard API.
package httpapi

// Response messages
const (
	MsgNotConnected     = "Database not connected. Please try again."
	MsgInvalidJSON      = "Invalid JSON body."
	MsgBodyTooLarge     = "Request body too large."
	MsgScoreNotPositive = "Score must be positive."
	MsgScoreSubmitted   = "Score submitted successfully."
	MsgSubmitFailed     = "Error submitting score."
	MsgFetchFailed      = "Error fetching leaderboard."
)

// Health check values
const (
	StatusRunning        = "API is running and awake!"
	DatabaseConnected    = "Connected"
	DatabaseNotConnected = "Not Connected"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// SubmitScoreRequest represents a score submission.
// Both fields are kept loosely typed; they are coerced, not rejected.
type SubmitScoreRequest struct {
	PlayerName any `json:"playerName"`
	Score      any `json:"score"`
}

// SubmitScoreResponse represents the submission outcome
type SubmitScoreResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"` // Set only when the score was stored
}

// LeaderboardEntry represents one ranked row
type LeaderboardEntry struct {
	PlayerName   string `json:"player_name"`
	Score        int64  `json:"score"`
	DateAchieved string `json:"date_achieved"` // YYYY-MM-DD, UTC
}

// LeaderboardResponse represents the top of the leaderboard
type LeaderboardResponse struct {
	Success     bool               `json:"success"`
	Leaderboard []LeaderboardEntry `json:"leaderboard"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
