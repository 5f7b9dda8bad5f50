package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const appName = "lumen"

// ErrAssetsNotFound is returned when the bundled assets directory is missing.
var ErrAssetsNotFound = errors.New("assets directory not found")

// Paths holds every directory lumen reads or writes.
type Paths struct {
	Config         string
	Data           string
	Cache          string
	Extensions     string
	ExtPreferences string
	UserThemes     string
	Assets         string
}

// ResolvePaths computes the directories from the XDG variables, falling back
// to the usual locations under $HOME.
func ResolvePaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}

	configHome := xdgDir("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dataHome := xdgDir("XDG_DATA_HOME", filepath.Join(home, ".local", "share"))
	cacheHome := xdgDir("XDG_CACHE_HOME", filepath.Join(home, ".cache"))

	p := &Paths{
		Config: filepath.Join(configHome, appName),
		Data:   filepath.Join(dataHome, appName),
		Cache:  filepath.Join(cacheHome, appName),
	}
	p.Extensions = filepath.Join(p.Data, "extensions")
	p.ExtPreferences = filepath.Join(p.Config, "ext_preferences")
	p.UserThemes = filepath.Join(p.Config, "user-themes")
	p.Assets = filepath.Join(p.Data, "assets")
	if dir := os.Getenv("LUMEN_ASSETS_DIR"); dir != "" {
		p.Assets = dir
	}
	return p, nil
}

// xdgDir returns $env when it is an absolute path, fallback otherwise.
func xdgDir(env, fallback string) string {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return dir
	}
	return fallback
}

// Ensure creates the config, data and cache directories.
func (p *Paths) Ensure() error {
	for _, dir := range []string{p.Config, p.Data, p.Cache} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// SettingsFile is the user settings path.
func (p *Paths) SettingsFile() string {
	return filepath.Join(p.Config, "settings.json")
}

// ShortcutsFile is the shortcut store path.
func (p *Paths) ShortcutsFile() string {
	return filepath.Join(p.Config, "shortcuts.json")
}

// LogFile is where the binary writes its log.
func (p *Paths) LogFile() string {
	return filepath.Join(p.Cache, appName+".log")
}

// DataFile joins segments under the assets directory. It does not check
// that the file exists; icons are allowed to be missing.
func (p *Paths) DataFile(segments ...string) string {
	return filepath.Join(append([]string{p.Assets}, segments...)...)
}

// ThemesDir is the bundled themes directory. It fails with ErrAssetsNotFound
// when the assets directory does not exist.
func (p *Paths) ThemesDir() (string, error) {
	info, err := os.Stat(p.Assets)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrAssetsNotFound, p.Assets)
	}
	return filepath.Join(p.Assets, "styles", "themes"), nil
}
