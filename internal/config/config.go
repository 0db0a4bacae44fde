// Package config provides application configuration loading from the
// environment, with .env support for local development.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the portal's runtime configuration.
type Config struct {
	Env      string
	HTTPAddr string

	// BackendBaseURL is the base URL of the rescue backend REST API,
	// including the /api prefix. The backend owns all durable offer state.
	BackendBaseURL string
	BackendTimeout time.Duration

	// GeocodeContact enables the geocoding capability when non-empty.
	// Nominatim's usage policy requires a contact address in the User-Agent,
	// so this doubles as the access credential.
	GeocodeContact string
	GeocodeBaseURL string

	// RedisAddr enables the geocoding result cache when non-empty.
	RedisAddr string

	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		BackendBaseURL: strings.TrimRight(getEnv("BACKEND_BASE_URL", "http://localhost:8081/api"), "/"),
		BackendTimeout: mustDuration(getEnv("BACKEND_TIMEOUT", "10s")),
		GeocodeContact: getEnv("GEOCODE_CONTACT", ""),
		GeocodeBaseURL: strings.TrimRight(getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"), "/"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
	}

	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}
	if cfg.BackendTimeout <= 0 {
		return nil, fmt.Errorf("BACKEND_TIMEOUT must be a positive duration")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

// GeocodingEnabled reports whether the geocoding capability is configured.
// This is the single capability flag; views must not re-derive it.
func (c *Config) GeocodingEnabled() bool {
	return c.GeocodeContact != ""
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
