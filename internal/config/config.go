package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	// BackendBaseURL is the root of the road-condition backend REST API,
	// e.g. "http://127.0.0.1:8000/api".
	BackendBaseURL string

	// HTTPTimeout bounds each outbound backend call.
	HTTPTimeout time.Duration

	// SessionTTL is how long an idle planner session is kept.
	SessionTTL time.Duration

	// SweepInterval controls how often expired sessions are swept.
	SweepInterval time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.BackendBaseURL = getenvDefault("BACKEND_BASE_URL", "http://127.0.0.1:8000/api")

	timeout, err := getenvDuration("HTTP_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = timeout

	ttl, err := getenvDuration("SESSION_TTL", "30m")
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = ttl

	sweep, err := getenvDuration("SESSION_SWEEP_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}
	cfg.SweepInterval = sweep

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
