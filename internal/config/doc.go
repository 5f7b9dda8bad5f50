// Package config resolves where lumen keeps its files and loads the user
// settings.
//
// Directory layout follows the XDG base directory conventions:
//
//	$XDG_CONFIG_HOME/lumen/
//	├── settings.json      # user settings (theme, preview, loading delay)
//	├── shortcuts.json     # shortcut store
//	├── ext_preferences/   # per extension preferences
//	└── user-themes/       # user supplied themes
//	$XDG_DATA_HOME/lumen/
//	├── extensions/
//	└── assets/            # icons and bundled themes, unless $LUMEN_ASSETS_DIR is set
//	$XDG_CACHE_HOME/lumen/
//	└── lumen.log
//
// Settings are read through viper, so any key can be overridden from the
// environment with the LUMEN_ prefix, dashes becoming underscores:
//
//	LUMEN_THEME_NAME=dark lumen
//
// Example usage:
//
//	paths, err := config.ResolvePaths()
//	if err != nil {
//		return err
//	}
//	manager := config.NewManager(paths.SettingsFile())
//	if err := manager.Load(); err != nil {
//		return err
//	}
//	fmt.Println("theme:", manager.Get().ThemeName)
package config
