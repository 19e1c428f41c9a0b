package obs

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected zerolog.Level
	}{
		{"info level", "info", zerolog.InfoLevel},
		{"debug level", "debug", zerolog.DebugLevel},
		{"warn level", "warn", zerolog.WarnLevel},
		{"invalid level defaults to info", "invalid", zerolog.InfoLevel},
		{"empty level defaults to info", "", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level)
			if zerolog.GlobalLevel() != tt.expected {
				t.Errorf("expected level %v, got %v", tt.expected, zerolog.GlobalLevel())
			}
		})
	}
}

func TestLogger(t *testing.T) {
	logger := Logger("test-component")

	// Verify logger has the component field set
	ctx := logger.With().Logger().GetLevel()
	if ctx == zerolog.Disabled {
		t.Error("logger should not be disabled")
	}
}

func TestRequestLogger(t *testing.T) {
	InitLogger("debug")

	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"ok", http.StatusOK, "info"},
		{"client error", http.StatusBadRequest, "warn"},
		{"unavailable", http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("{}"))
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/get_leaderboard", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var line map[string]any
			if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
				t.Fatalf("failed to decode log line %q: %v", buf.String(), err)
			}

			if line["level"] != tt.expectedLevel {
				t.Errorf("expected level %s, got %v", tt.expectedLevel, line["level"])
			}
			if line["status"] != float64(tt.status) {
				t.Errorf("expected status %d, got %v", tt.status, line["status"])
			}
			if line["path"] != "/api/get_leaderboard" {
				t.Errorf("expected path logged, got %v", line["path"])
			}
			if line["bytes"] != float64(2) {
				t.Errorf("expected 2 bytes, got %v", line["bytes"])
			}
		})
	}
}
