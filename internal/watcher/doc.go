// Package watcher reports file system changes after a quiet period.
//
// A Watcher collects change notifications, from fsnotify or from callers,
// and hands the accumulated paths to its callback once no new change has
// arrived for the debounce delay. Editors write files in bursts (temp file,
// rename, chmod) and a single reload per burst is what the launcher wants
// for its settings, shortcuts and user themes.
//
//	w := watcher.New(500*time.Millisecond, func(paths []string) {
//	    reload(paths)
//	})
//	go w.Run(ctx, cfgDir, themesDir)
package watcher
