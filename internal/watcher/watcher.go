package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/billie-coop/lumen/internal/logging"
)

// DefaultDelay is the quiet period used when New is given zero.
const DefaultDelay = 500 * time.Millisecond

// Watcher debounces file changes into batched onChange calls.
type Watcher struct {
	delay    time.Duration
	onChange func([]string)
	logger   logging.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger used for watch errors.
func WithLogger(l logging.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher calling onChange with the changed paths, sorted,
// after delay has passed without further changes.
func New(delay time.Duration, onChange func([]string), opts ...Option) *Watcher {
	if delay <= 0 {
		delay = DefaultDelay
	}
	w := &Watcher{
		delay:    delay,
		onChange: onChange,
		logger:   logging.NoOp(),
		pending:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Changed records paths as changed and restarts the quiet period. Ignored
// paths are dropped; if all of them are ignored the timer is left alone.
func (w *Watcher) Changed(paths ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}

	added := false
	for _, path := range paths {
		if !shouldIgnore(path) {
			w.pending[path] = struct{}{}
			added = true
		}
	}
	if !added {
		return
	}

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.flush)
}

// Run watches dirs, and their immediate subdirectories, until ctx is done.
// Directories that do not exist are skipped. Subdirectories created while
// running are watched too.
func (w *Watcher) Run(ctx context.Context, dirs ...string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer fw.Close()
	defer w.Stop()

	for _, dir := range dirs {
		w.add(fw, dir, true)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.add(fw, event.Name, false)
				}
			}
			if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
				continue
			}
			w.Changed(event.Name)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error", "error", err)
		}
	}
}

func (w *Watcher) add(fw *fsnotify.Watcher, dir string, children bool) {
	if err := fw.Add(dir); err != nil {
		if !os.IsNotExist(err) {
			w.logger.Warn("Cannot watch directory", "dir", dir, "error", err)
		}
		return
	}
	if !children {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			w.add(fw, filepath.Join(dir, entry.Name()), false)
		}
	}
}

// Stop cancels a pending flush. Later changes are ignored.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

func (w *Watcher) flush() {
	w.mu.Lock()
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	w.pending = make(map[string]struct{})
	w.timer = nil
	stopped := w.stopped
	w.mu.Unlock()

	if stopped || len(paths) == 0 || w.onChange == nil {
		return
	}
	sort.Strings(paths)
	w.onChange(paths)
}

// shouldIgnore drops hidden files, editor swap files and files lumen
// generates itself.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return true
	}
	switch filepath.Ext(base) {
	case ".log", ".tmp", ".swp", ".swo":
		return true
	}
	return base == "generated.css"
}
