package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		DataBackend:  BackendFile,
		DataDir:      "./data",
		SQLiteDBPath: "./data/subdrip.db",
		StorageKey:   "subdrip.subscriptions",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid file backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "valid memory backend ignores data dir",
			mutate:  func(c *Config) { c.DataBackend = BackendMemory; c.DataDir = "" },
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory file sqlite]",
		},
		{
			name:        "file backend missing data dir",
			mutate:      func(c *Config) { c.DataDir = " " },
			wantErr:     true,
			errorString: "data directory cannot be empty when using file backend",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.DataBackend = BackendSQLite; c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "sqlite backend in-memory path",
			mutate:      func(c *Config) { c.DataBackend = BackendSQLite; c.SQLiteDBPath = ":memory:" },
			wantErr:     true,
			errorString: "SQLite database path must be a file",
		},
		{
			name:        "bad storage key",
			mutate:      func(c *Config) { c.StorageKey = "../x" },
			wantErr:     true,
			errorString: "invalid storage key",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml': must be text or json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() expected error, got nil")
					return
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want to contain %v", err, tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() unexpected error = %v", err)
			}
		})
	}
}

func TestConfig_ValidateAggregates(t *testing.T) {
	cfg := validConfig()
	cfg.DataBackend = "nope"
	cfg.LogFormat = "xml"
	cfg.StorageKey = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:") {
		t.Errorf("unexpected prefix: %q", msg)
	}
	if n := strings.Count(msg, "\n- "); n != 3 {
		t.Errorf("expected 3 errors, got %d in %q", n, msg)
	}
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	for _, k := range []string{"DATA_BACKEND", "DATA_DIR", "SQLITE_DB_PATH", "STORAGE_KEY", "PREFERENCES_PATH", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.DataBackend != BackendFile || cfg.DataDir != "./data" || cfg.SQLiteDBPath != "./data/subdrip.db" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.StorageKey != "subdrip.subscriptions" {
		t.Errorf("storage key = %q", cfg.StorageKey)
	}
	if strings.HasPrefix(cfg.PreferencesPath, "~") {
		t.Errorf("preferences path not expanded: %q", cfg.PreferencesPath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}

	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("SQLITE_DB_PATH", "/tmp/x.db")
	t.Setenv("PREFERENCES_PATH", "/etc/subdrip/prefs.yaml")
	cfg = Load()
	if cfg.DataBackend != BackendSQLite || cfg.SQLiteDBPath != "/tmp/x.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.PreferencesPath != filepath.FromSlash("/etc/subdrip/prefs.yaml") {
		t.Errorf("preferences path = %q", cfg.PreferencesPath)
	}
}
