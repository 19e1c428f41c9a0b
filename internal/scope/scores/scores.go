// Package scores defines the leaderboard entry and the rules applied to
// submitted scores before they are stored.
package scores

import (
	"cmp"
	"errors"
	"strings"
	"time"
)

const (
	// DefaultPlayerName is stored when a submission carries no usable name.
	DefaultPlayerName = "ANONYMOUS"

	// LeaderboardSize is the number of entries returned by a leaderboard query.
	LeaderboardSize = 10

	// DateLayout is the calendar date format used in leaderboard responses.
	DateLayout = time.DateOnly
)

// ErrScoreNotPositive is returned when a score is zero or negative.
var ErrScoreNotPositive = errors.New("score must be positive")

// Entry is one stored score record for a player
type Entry struct {
	ID           string    `json:"id" bson:"_id"`
	PlayerName   string    `json:"player_name" bson:"player_name"`
	Score        int64     `json:"score" bson:"score"`
	DateAchieved time.Time `json:"date_achieved" bson:"date_achieved"`
}

// NewEntry validates a submission and builds the entry to store.
// The timestamp is normalized to UTC at millisecond precision so that every
// backend round-trips it unchanged.
func NewEntry(id, playerName string, score int64, now time.Time) (Entry, error) {
	if score <= 0 {
		return Entry{}, ErrScoreNotPositive
	}

	return Entry{
		ID:           id,
		PlayerName:   NormalizeName(playerName),
		Score:        score,
		DateAchieved: now.UTC().Truncate(time.Millisecond),
	}, nil
}

// NormalizeName uppercases a player name, substituting DefaultPlayerName
// for an empty one.
func NormalizeName(name string) string {
	if name == "" {
		return DefaultPlayerName
	}
	return strings.ToUpper(name)
}

// NameFrom extracts a player name from a decoded JSON value.
// Anything other than a string yields the empty name.
func NameFrom(v any) string {
	s, _ := v.(string)
	return s
}

// Compare orders entries for the leaderboard: highest score first, then the
// earliest achievement, then by ID so the order is total.
func Compare(a, b Entry) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	if c := a.DateAchieved.Compare(b.DateAchieved); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// FormatDate renders the UTC calendar date of t.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
