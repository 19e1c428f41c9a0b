// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	StorageURI     string
	MongoDatabase  string
	APIPort        string
	APIHost        string
	ConnectTimeout time.Duration
	AllowedOrigins []string
	LogLevel       string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		StorageURI:     getEnv("MONGO_URI", os.Getenv("DATABASE_URL")),
		MongoDatabase:  getEnv("MONGO_DATABASE", "pacman_leaderboard_db"),
		APIPort:        getEnv("PORT", "3000"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	port, err := strconv.Atoi(cfg.APIPort)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("PORT must be a number between 1 and 65535, got %q", cfg.APIPort)
	}

	timeout := getEnv("CONNECT_TIMEOUT", "10s")
	cfg.ConnectTimeout, err = time.ParseDuration(timeout)
	if err != nil || cfg.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("CONNECT_TIMEOUT must be a positive duration, got %q", timeout)
	}

	return cfg, nil
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return c.APIHost + ":" + c.APIPort
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
