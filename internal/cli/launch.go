package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"github.com/billie-coop/lumen/internal/config"
	"github.com/billie-coop/lumen/internal/deferred"
	"github.com/billie-coop/lumen/internal/extension"
	"github.com/billie-coop/lumen/internal/logging"
	"github.com/billie-coop/lumen/internal/shortcuts"
	"github.com/billie-coop/lumen/internal/theme"
	"github.com/billie-coop/lumen/internal/tui"
	"github.com/billie-coop/lumen/internal/tui/events"
	"github.com/billie-coop/lumen/internal/watcher"
)

func runLauncher(parent context.Context, opts config.Options) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	paths, err := resolvePaths()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(paths.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()

	manager := config.NewManager(paths.SettingsFile())
	if err := manager.Load(); err != nil {
		return err
	}
	settings := manager.Get()

	logger := newLogger(opts, settings, logFile)
	logger.Info("Starting", "version", version, "config", paths.Config)

	themeName := settings.ThemeName
	if opts.Theme != "" {
		themeName = opts.Theme
	}
	roots := themeRoots(paths, logger)
	themes := theme.NewRegistry(theme.WithLogger(logger.With("component", "theme")))
	if err := themes.Load(ctx, roots...); err != nil {
		return err
	}

	store, err := shortcuts.Load(paths.ShortcutsFile(), paths.DataFile("icons"))
	if err != nil {
		return err
	}

	broker := events.NewBroker()
	defer broker.Clear()
	idle := events.NewIdleQueue()

	model := tui.New(ctx, tui.Options{
		Idle:        idle,
		Broker:      broker,
		Themes:      themes,
		ThemeName:   themeName,
		Settings:    manager,
		ShowPreview: settings.ShowPreview,
		StartHidden: opts.HideWindow,
		MaxResults:  settings.MaxResults,
		Logger:      logger.With("component", "tui"),
	})

	coordinator := deferred.New(model, idle,
		deferred.WithDelay(settings.LoadingDelay),
		deferred.WithLogger(logger.With("component", "deferred")),
	)

	host := extension.NewHost(ctx, coordinator, broker,
		extension.WithHostLogger(logger.With("component", "extensions")))
	host.Register(extension.NewCalcController(paths.DataFile("icons", "calc.png")))
	host.Register(extension.NewShortcutsController(store, paths.DataFile("icons", "shortcuts.png"), extension.OpenTarget))
	host.Register(extension.NewDefaultSearchController(store, paths.DataFile("icons", "search.png"), extension.OpenTarget))
	if opts.NoExtensions {
		host.Disable()
	}

	model.Connect(host, host)

	r := &reloader{
		ctx:      ctx,
		paths:    paths,
		roots:    roots,
		manager:  manager,
		themes:   themes,
		store:    store,
		broker:   broker,
		dispatch: idle,
		logger:   logger.With("component", "reload"),
	}
	w := watcher.New(watcher.DefaultDelay, r.reload, watcher.WithLogger(r.logger))
	go func() {
		if err := w.Run(ctx, paths.Config, paths.UserThemes); err != nil {
			logger.Warn("File watching disabled", "error", err)
		}
	}()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("Stopped")
	return nil
}

func newLogger(opts config.Options, settings *config.Settings, out *os.File) logging.Logger {
	cfg := &logging.Config{
		Level:  logging.LogLevelInfo,
		Format: settings.LogFormat,
		Output: out,
	}
	if opts.Verbose {
		cfg.Level = logging.LogLevelDebug
	}
	if opts.Dev {
		cfg.Format = "json"
		cfg.AddSource = true
	}
	return logging.New(cfg)
}

// reloader applies edits made to the settings, shortcuts and user theme
// files while the launcher runs. Anything touching the settings or the UI
// is posted to the UI goroutine.
type reloader struct {
	ctx      context.Context
	paths    *config.Paths
	roots    []string
	manager  *config.Manager
	themes   *theme.Registry
	store    *shortcuts.Store
	broker   *events.Broker
	dispatch deferred.Dispatcher
	logger   logging.Logger
}

func (r *reloader) reload(changed []string) {
	var settingsChanged, shortcutsChanged, themesChanged bool
	for _, path := range changed {
		switch {
		case path == r.paths.SettingsFile():
			settingsChanged = true
		case path == r.paths.ShortcutsFile():
			shortcutsChanged = true
		case strings.HasPrefix(path, r.paths.UserThemes+string(filepath.Separator)):
			themesChanged = true
		}
	}

	if shortcutsChanged {
		if err := r.store.Reload(); err != nil {
			r.logger.Warn("Keeping previous shortcuts", "error", err)
			r.broker.PublishStatus(events.StatusWarning, "shortcuts.json not reloaded")
		} else {
			r.logger.Info("Shortcuts reloaded", "count", len(r.store.All()))
		}
	}

	if themesChanged {
		if err := r.themes.Load(r.ctx, r.roots...); err != nil {
			r.logger.Warn("Theme reload failed", "error", err)
			themesChanged = false
		}
	}

	if !settingsChanged && !themesChanged {
		return
	}
	r.dispatch.Post(func() {
		previous := r.manager.Get().ThemeName
		if settingsChanged {
			if err := r.manager.Load(); err != nil {
				r.logger.Warn("Keeping previous settings", "error", err)
				r.broker.PublishStatus(events.StatusWarning, "settings.json not reloaded")
				return
			}
		}
		name := r.manager.Get().ThemeName
		if themesChanged || name != previous {
			r.broker.Publish(events.Event{
				Type:    events.ThemeChangedEvent,
				Payload: events.ThemePayload{Name: name},
			})
		}
	})
}
