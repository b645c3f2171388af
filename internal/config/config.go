package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// SourceConfig names a CSV table to report on. Location is a file path or an
// http(s) URL.
type SourceConfig struct {
	Name     string
	Location string
}

type AppConfig struct {
	Port      string
	LogLevel  string
	LogFormat string

	// RefreshInterval controls how often configured sources are re-read.
	RefreshInterval time.Duration

	// HTTPTimeout bounds each remote source download.
	HTTPTimeout time.Duration

	ShutdownTimeout time.Duration

	// Sources to report on.
	Sources []SourceConfig

	// In-memory store retention.
	StoreMaxHistory int           // max number of reports per source (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)
}

// Load reads configuration from the environment (and .env, if present) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "text")

	var err error
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "15m"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	// Store retention: roughly 24h at 15-minute intervals.
	if cfg.StoreMaxHistory, err = getenvInt("STORE_MAX_HISTORY", 96); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	srcs, err := parseSources(os.Getenv("REPORT_SOURCES"))
	if err != nil {
		return nil, err
	}
	cfg.Sources = srcs

	return cfg, nil
}

// parseSources reads a comma-separated list of name=location pairs.
func parseSources(raw string) ([]SourceConfig, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	seen := make(map[string]bool)
	var srcs []SourceConfig
	for _, item := range strings.Split(raw, ",") {
		name, loc, ok := strings.Cut(strings.TrimSpace(item), "=")
		name, loc = strings.TrimSpace(name), strings.TrimSpace(loc)
		if !ok || name == "" || loc == "" {
			return nil, fmt.Errorf("invalid REPORT_SOURCES entry %q: want name=path-or-url", item)
		}
		if seen[name] {
			return nil, fmt.Errorf("invalid REPORT_SOURCES: duplicate source %q", name)
		}
		seen[name] = true
		srcs = append(srcs, SourceConfig{Name: name, Location: loc})
	}
	return srcs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
