package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/avaforge-creator/subdrip/internal/currency"
)

// Preferences are the host settings the presentation layer reads when
// formatting. The core never consults them on its own.
type Preferences struct {
	CurrencyCode         string `yaml:"currency_code"`
	DarkMode             bool   `yaml:"dark_mode"`
	NotificationsEnabled bool   `yaml:"notifications_enabled"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		CurrencyCode:         currency.Base,
		DarkMode:             true,
		NotificationsEnabled: true,
	}
}

func (p Preferences) Validate() error {
	if !currency.IsSupported(p.CurrencyCode) {
		return fmt.Errorf("unsupported currency %q: must be one of %v", p.CurrencyCode, currency.Codes())
	}
	return nil
}

// LoadPreferences reads the YAML file at path from the OS filesystem.
func LoadPreferences(path string) (Preferences, error) {
	return LoadPreferencesFs(afero.NewOsFs(), path)
}

// LoadPreferencesFs reads the YAML file at path. A missing file yields the
// defaults; keys absent from the file keep their default values.
func LoadPreferencesFs(fsys afero.Fs, path string) (Preferences, error) {
	prefs := DefaultPreferences()

	data, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("reading preferences file: %w", err)
	}

	if err := yaml.Unmarshal(data, &prefs); err != nil {
		return DefaultPreferences(), fmt.Errorf("parsing preferences file: %w", err)
	}
	prefs.CurrencyCode = strings.ToUpper(strings.TrimSpace(prefs.CurrencyCode))
	if err := prefs.Validate(); err != nil {
		return DefaultPreferences(), err
	}
	return prefs, nil
}

func (p Preferences) Save(path string) error {
	return p.SaveFs(afero.NewOsFs(), path)
}

func (p Preferences) SaveFs(fsys afero.Fs, path string) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling preferences: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := fsys.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := afero.WriteFile(fsys, path, data, 0644); err != nil {
		return fmt.Errorf("writing preferences file: %w", err)
	}
	return nil
}
