// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// BaseURL is the Prism backend API root, e.g. https://prism.example.com.
	BaseURL string

	// TokenPath is where the session token is persisted.
	TokenPath string

	// DatabasePath is the local sqlite cache for summary snapshots.
	DatabasePath string

	// BudgetCap is the deployment-specific monthly budget in USD used for
	// the utilization bar on the dashboard.
	BudgetCap float64

	// SavingsMultiplier scales measured spend into the estimated-savings
	// heuristic shown on the dashboard hero card.
	SavingsMultiplier float64

	// RefreshInterval controls periodic dashboard refreshes.
	RefreshInterval time.Duration
}

// Default values
const (
	defaultBudgetCap         = 12500.0
	defaultSavingsMultiplier = 5.0
	defaultRefreshInterval   = 60 * time.Second
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		BaseURL:           getEnvString("PRISM_BASE_URL", "http://localhost:8000"),
		TokenPath:         getEnvString("PRISM_TOKEN_PATH", getDefaultTokenPath()),
		DatabasePath:      getEnvString("PRISM_DB_PATH", getDefaultDatabasePath()),
		BudgetCap:         getEnvFloat("PRISM_BUDGET_CAP", defaultBudgetCap),
		SavingsMultiplier: getEnvFloat("PRISM_SAVINGS_MULTIPLIER", defaultSavingsMultiplier),
		RefreshInterval:   getEnvDuration("PRISM_REFRESH_INTERVAL", defaultRefreshInterval),
	}

	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("PRISM_BASE_URL must not be empty")
	}
	if cfg.BudgetCap <= 0 {
		return nil, fmt.Errorf("PRISM_BUDGET_CAP must be positive, got %v", cfg.BudgetCap)
	}
	if cfg.SavingsMultiplier <= 0 {
		return nil, fmt.Errorf("PRISM_SAVINGS_MULTIPLIER must be positive, got %v", cfg.SavingsMultiplier)
	}

	if err := ensureDir(filepath.Dir(cfg.TokenPath)); err != nil {
		return nil, err
	}
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "prism-tui", ".env"),
			filepath.Join(home, ".prism", ".env"),
		)
	}

	return paths
}

// getDefaultTokenPath returns the default path for the session token file.
func getDefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prism-token"
	}
	return filepath.Join(home, ".config", "prism-tui", "token")
}

// getDefaultDatabasePath returns the default path for the SQLite cache.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "prism.db"
	}
	return filepath.Join(home, ".config", "prism-tui", "prism.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
