package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ErrUnknownKey is returned by Set for keys lumen does not know.
var ErrUnknownKey = errors.New("unknown config key")

// Settings are the user preferences stored in settings.json.
type Settings struct {
	ThemeName    string        `mapstructure:"theme-name"`
	LoadingDelay time.Duration `mapstructure:"loading-delay"`
	ShowPreview  bool          `mapstructure:"show-preview"`
	MaxResults   int           `mapstructure:"max-results"`
	LogFormat    string        `mapstructure:"log-format"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() *Settings {
	return &Settings{
		ThemeName:    "light",
		LoadingDelay: 300 * time.Millisecond,
		ShowPreview:  true,
		MaxResults:   9,
		LogFormat:    "text",
	}
}

// Manager loads and saves Settings.
type Manager struct {
	path     string
	v        *viper.Viper
	settings *Settings
}

// NewManager creates a manager for the settings file at path.
func NewManager(path string) *Manager {
	m := &Manager{
		path:     path,
		v:        viper.New(),
		settings: DefaultSettings(),
	}

	defaults := DefaultSettings()
	m.v.SetDefault("theme-name", defaults.ThemeName)
	m.v.SetDefault("loading-delay", defaults.LoadingDelay.String())
	m.v.SetDefault("show-preview", defaults.ShowPreview)
	m.v.SetDefault("max-results", defaults.MaxResults)
	m.v.SetDefault("log-format", defaults.LogFormat)

	m.v.SetConfigFile(path)
	m.v.SetConfigType("json")
	m.v.SetEnvPrefix("LUMEN")
	m.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	m.v.AutomaticEnv()
	return m
}

// Load reads the settings file, writing the defaults first if it does not
// exist yet.
func (m *Manager) Load() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(m.path); os.IsNotExist(err) {
		if err := m.Save(); err != nil {
			return err
		}
	}

	if err := m.v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := m.v.Unmarshal(&settings); err != nil {
		return fmt.Errorf("failed to parse settings: %w", err)
	}
	if settings.LoadingDelay <= 0 {
		settings.LoadingDelay = DefaultSettings().LoadingDelay
	}
	m.settings = &settings
	return nil
}

// Save writes the current settings to disk.
func (m *Manager) Save() error {
	// A separate instance keeps these values from shadowing the environment
	// on the reading side.
	w := viper.New()
	w.SetConfigType("json")
	w.Set("theme-name", m.settings.ThemeName)
	w.Set("loading-delay", m.settings.LoadingDelay.String())
	w.Set("show-preview", m.settings.ShowPreview)
	w.Set("max-results", m.settings.MaxResults)
	w.Set("log-format", m.settings.LogFormat)

	if err := w.WriteConfigAs(m.path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Get returns the current settings
func (m *Manager) Get() *Settings {
	return m.settings
}

// Set updates a setting from its string form and saves
func (m *Manager) Set(key, value string) error {
	switch key {
	case "theme-name":
		m.settings.ThemeName = value
	case "loading-delay":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid loading-delay %q: %w", value, err)
		}
		m.settings.LoadingDelay = d
	case "show-preview":
		m.settings.ShowPreview = value == "true"
	case "max-results":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid max-results %q", value)
		}
		m.settings.MaxResults = n
	case "log-format":
		m.settings.LogFormat = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	return m.Save()
}
