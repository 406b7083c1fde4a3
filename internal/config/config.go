package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/avaforge-creator/subdrip/internal/storage"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendMemory, BackendFile, BackendSQLite}

type Config struct {
	// Backend selection
	DataBackend string

	// File backend
	DataDir string

	// Database
	SQLiteDBPath string

	// Key the subscription collection is stored under
	StorageKey string

	// Host preferences file (YAML)
	PreferencesPath string

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	cfg := &Config{
		DataBackend:     getEnv("DATA_BACKEND", BackendFile),
		DataDir:         getEnv("DATA_DIR", "./data"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/subdrip.db"),
		StorageKey:      getEnv("STORAGE_KEY", "subdrip.subscriptions"),
		PreferencesPath: expandHome(getEnv("PREFERENCES_PATH", "~/.subdrip/preferences.yaml")),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
	}

	return cfg
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var result *multierror.Error

	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		result = multierror.Append(result, fmt.Errorf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == BackendFile && strings.TrimSpace(c.DataDir) == "" {
		result = multierror.Append(result, fmt.Errorf("data directory cannot be empty when using file backend"))
	}

	if c.DataBackend == BackendSQLite {
		switch c.SQLiteDBPath {
		case "":
			result = multierror.Append(result, fmt.Errorf("SQLite database path cannot be empty when using sqlite backend"))
		case ":memory:":
			result = multierror.Append(result, fmt.Errorf("SQLite database path must be a file, use the memory backend instead"))
		}
	}

	if err := storage.ValidateKey(c.StorageKey); err != nil {
		result = multierror.Append(result, fmt.Errorf("invalid storage key: %w", err))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		result = multierror.Append(result, fmt.Errorf("invalid log level '%s'", c.LogLevel))
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		result = multierror.Append(result, fmt.Errorf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if result == nil {
		return nil
	}
	result.ErrorFormat = func(errs []error) string {
		msgs := make([]string, len(errs))
		for i, err := range errs {
			msgs[i] = err.Error()
		}
		return "configuration validation failed:\n- " + strings.Join(msgs, "\n- ")
	}
	return result
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
