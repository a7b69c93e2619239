package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetEnvString(t *testing.T) {
	key := "TEST_ENV_STRING"
	val := "test_value"
	os.Setenv(key, val)
	defer os.Unsetenv(key)

	if got := getEnvString(key, "default"); got != val {
		t.Errorf("getEnvString() = %q, want %q", got, val)
	}

	if got := getEnvString("NON_EXISTENT", "default"); got != "default" {
		t.Errorf("getEnvString() = %q, want %q", got, "default")
	}
}

func TestGetEnvFloat(t *testing.T) {
	key := "TEST_ENV_FLOAT"

	tests := []struct {
		name       string
		envVal     string
		defaultVal float64
		want       float64
	}{
		{"ValidFloat", "7.5", 1, 7.5},
		{"ValidInt", "10000", 1, 10000},
		{"Invalid", "not-a-number", 2.5, 2.5},
		{"Empty", "", 2.5, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvFloat(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvFloat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_ENV_DURATION"

	tests := []struct {
		name       string
		envVal     string
		defaultVal time.Duration
		want       time.Duration
	}{
		{"ValidDuration", "1m", time.Second, time.Minute},
		{"ValidSeconds", "60", time.Second, 60 * time.Second},
		{"Invalid", "invalid", time.Second, time.Second},
		{"Empty", "", time.Second, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envVal != "" {
				os.Setenv(key, tt.envVal)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			if got := getEnvDuration(key, tt.defaultVal); got != tt.want {
				t.Errorf("getEnvDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir")

	if err := ensureDir(path); err != nil {
		t.Fatalf("ensureDir() failed: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("directory was not created")
	}

	if err := ensureDir(""); err != nil {
		t.Error("ensureDir(\"\") should not error")
	}
}

func TestGetDefaultPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Skipping test because user home dir cannot be found")
	}

	tokenPath := getDefaultTokenPath()
	expectedToken := filepath.Join(home, ".config", "prism-tui", "token")
	if tokenPath != expectedToken {
		t.Errorf("getDefaultTokenPath() = %q, want %q", tokenPath, expectedToken)
	}

	dbPath := getDefaultDatabasePath()
	expectedDb := filepath.Join(home, ".config", "prism-tui", "prism.db")
	if dbPath != expectedDb {
		t.Errorf("getDefaultDatabasePath() = %q, want %q", dbPath, expectedDb)
	}
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("PRISM_TOKEN_PATH", filepath.Join(tmpDir, "token"))
	os.Setenv("PRISM_DB_PATH", filepath.Join(tmpDir, "prism.db"))
	defer os.Unsetenv("PRISM_TOKEN_PATH")
	defer os.Unsetenv("PRISM_DB_PATH")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.BudgetCap != defaultBudgetCap {
		t.Errorf("BudgetCap = %v, want %v", cfg.BudgetCap, defaultBudgetCap)
	}
	if cfg.SavingsMultiplier != defaultSavingsMultiplier {
		t.Errorf("SavingsMultiplier = %v, want %v", cfg.SavingsMultiplier, defaultSavingsMultiplier)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, defaultRefreshInterval)
	}
}

func TestLoadTrimsBaseURL(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("PRISM_TOKEN_PATH", filepath.Join(tmpDir, "token"))
	os.Setenv("PRISM_DB_PATH", filepath.Join(tmpDir, "prism.db"))
	os.Setenv("PRISM_BASE_URL", "https://prism.example.com/")
	defer os.Unsetenv("PRISM_TOKEN_PATH")
	defer os.Unsetenv("PRISM_DB_PATH")
	defer os.Unsetenv("PRISM_BASE_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.BaseURL != "https://prism.example.com" {
		t.Errorf("BaseURL = %q, trailing slash should be trimmed", cfg.BaseURL)
	}
}

func TestLoadRejectsBadBudget(t *testing.T) {
	tmpDir := t.TempDir()
	os.Setenv("PRISM_TOKEN_PATH", filepath.Join(tmpDir, "token"))
	os.Setenv("PRISM_DB_PATH", filepath.Join(tmpDir, "prism.db"))
	os.Setenv("PRISM_BUDGET_CAP", "-10")
	defer os.Unsetenv("PRISM_TOKEN_PATH")
	defer os.Unsetenv("PRISM_DB_PATH")
	defer os.Unsetenv("PRISM_BUDGET_CAP")

	if _, err := Load(); err == nil {
		t.Error("Load() should reject a negative budget cap")
	}
}
