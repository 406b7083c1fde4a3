// Package cli provides the startup sequence and terminal rendering shared by
// the subdrip commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"

	"github.com/avaforge-creator/subdrip/internal/backend"
	"github.com/avaforge-creator/subdrip/internal/clock"
	"github.com/avaforge-creator/subdrip/internal/config"
	"github.com/avaforge-creator/subdrip/internal/log"
	"github.com/avaforge-creator/subdrip/internal/store"
)

// App is everything a command needs once startup has finished.
type App struct {
	Config *config.Config
	Prefs  config.Preferences
	Logger *log.Logger
	Store  *store.Store
	Clock  clock.Clock
	Theme  Theme
	Out    io.Writer

	cleanup backend.CleanupFunc
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as the file is optional.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// makes it the slog default. Logs go to stderr so they never mix with
// command output.
func SetupLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.New(log.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: log.ComponentCLI,
		Output:    os.Stderr,
	})
	log.SetDefault(logger)
	return logger, nil
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Bootstrap runs the full startup: config, logger, preferences, backend and
// store. Close releases the backend.
func Bootstrap(ctx context.Context, out io.Writer) (*App, error) {
	cfg, err := LoadAndValidateConfig()
	if err != nil {
		return nil, err
	}

	logger, err := SetupLogger(cfg)
	if err != nil {
		return nil, err
	}

	prefs, err := config.LoadPreferences(cfg.PreferencesPath)
	if err != nil {
		logger.WithComponent(log.ComponentConfig).Warn("Ignoring unreadable preferences, using defaults",
			log.FieldPath, cfg.PreferencesPath, log.FieldError, err)
	}

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, backendCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s backend: %w", backendCfg.Type, err)
	}

	st := store.New(ctx, res.Blobs, store.WithKey(cfg.StorageKey), store.WithLogger(logger))
	logger.DebugContext(ctx, "Store ready", log.FieldBackend, backendCfg.Type.String(), log.FieldCount, st.Len())

	return &App{
		Config:  cfg,
		Prefs:   prefs,
		Logger:  logger,
		Store:   st,
		Clock:   clock.System{},
		Theme:   NewTheme(prefs.DarkMode),
		Out:     out,
		cleanup: res.Cleanup,
	}, nil
}

// SavePreferences persists p and applies it to the running app.
func (a *App) SavePreferences(p config.Preferences) error {
	if err := p.Save(a.Config.PreferencesPath); err != nil {
		return err
	}
	a.Prefs = p
	a.Theme = NewTheme(p.DarkMode)
	return nil
}

func (a *App) Close() error {
	if a == nil || a.cleanup == nil {
		return nil
	}
	return a.cleanup()
}
