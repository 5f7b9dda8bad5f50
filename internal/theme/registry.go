package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agnivade/levenshtein"
	"golang.org/x/sync/errgroup"

	"github.com/billie-coop/lumen/internal/csync"
	"github.com/billie-coop/lumen/internal/logging"
)

// ErrExtendCycle is returned by CompileCSS when themes extend each other in
// a loop.
var ErrExtendCycle = errors.New("theme extends itself")

const (
	generatedCSS = "generated.css"
	loadWorkers  = 4
)

// Registry holds the themes found on disk, by name.
type Registry struct {
	themes *csync.Map[string, *Theme]
	logger logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger for skipped themes and fallbacks.
func WithLogger(l logging.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		themes: csync.NewMap[string, *Theme](),
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Load reads every theme directory under roots. Missing roots are skipped,
// invalid themes are logged and skipped. A theme in a later root replaces
// one with the same name from an earlier root.
func (r *Registry) Load(ctx context.Context, roots ...string) error {
	var dirs []string
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to list themes in %s: %w", root, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			if _, err := os.Stat(filepath.Join(dir, manifestFile)); err == nil {
				dirs = append(dirs, dir)
			}
		}
	}

	loaded := make([]*Theme, len(dirs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(loadWorkers)
	for i, dir := range dirs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := loadTheme(dir)
			if err != nil {
				r.logger.Error("Skipping theme", "dir", dir, "error", err)
				return nil
			}
			loaded[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range loaded {
		if t != nil {
			r.themes.Set(t.Name(), t)
		}
	}
	// Only fresh themes are touched; earlier ones may be in use.
	for _, t := range loaded {
		if t != nil {
			t.palette = r.resolvePalette(t, map[string]bool{})
		}
	}

	r.logger.Debug("Themes loaded", "count", r.themes.Len())
	return nil
}

func loadTheme(dir string) (*Theme, error) {
	m, err := readManifest(dir)
	if err != nil {
		return nil, err
	}
	if err := m.Validate(dir); err != nil {
		return nil, err
	}
	return &Theme{Dir: dir, Manifest: m}, nil
}

func (r *Registry) resolvePalette(t *Theme, seen map[string]bool) *Palette {
	seen[t.Name()] = true

	var base *Palette
	switch t.Name() {
	case "dark":
		base = DarkPalette()
	case DefaultName:
		base = LightPalette()
	default:
		parent, ok := r.themes.Get(t.Manifest.ExtendTheme)
		if ok && !seen[parent.Name()] {
			base = r.resolvePalette(parent, seen)
		} else {
			base = LightPalette()
		}
	}
	return base.withHighlights(t.Manifest.MatchedTextHLColors)
}

// Get returns the theme called name.
func (r *Registry) Get(name string) (*Theme, bool) {
	return r.themes.Get(name)
}

// Names returns the loaded theme names, sorted.
func (r *Registry) Names() []string {
	var names []string
	r.themes.Range(func(name string, _ *Theme) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Suggest returns the loaded theme name closest to name, or "" when none
// is within a few edits.
func (r *Registry) Suggest(name string) string {
	const maxDistance = 3

	best, bestDist := "", maxDistance+1
	for _, candidate := range r.Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// Current returns the theme called name, falling back to the light theme
// and then to Builtin.
func (r *Registry) Current(name string) *Theme {
	if name == "" {
		name = DefaultName
	}
	if t, ok := r.themes.Get(name); ok {
		return t
	}
	r.logger.Warn("No theme with name", "name", name, "suggestion", r.Suggest(name))
	if t, ok := r.themes.Get(DefaultName); ok {
		return t
	}
	return Builtin()
}

// CompileCSS returns the path of the CSS file to load for t. A theme that
// extends another gets a generated.css importing the parent's compiled
// CSS followed by its own rules.
func (r *Registry) CompileCSS(t *Theme) (string, error) {
	return r.compileCSS(t, map[string]bool{})
}

func (r *Registry) compileCSS(t *Theme, seen map[string]bool) (string, error) {
	if t.Dir == "" {
		return "", fmt.Errorf("theme %s has no files", t.Name())
	}
	cssFile := filepath.Join(t.Dir, t.Manifest.CSSFileGTK320)

	parentName := t.Manifest.ExtendTheme
	if parentName == "" {
		return cssFile, nil
	}
	if seen[t.Name()] {
		return "", fmt.Errorf("%w: %s", ErrExtendCycle, t.Name())
	}
	seen[t.Name()] = true

	parent, ok := r.themes.Get(parentName)
	if !ok {
		r.logger.Error("Cannot extend theme, it does not exist", "theme", t.Name(), "extend", parentName)
		return cssFile, nil
	}

	parentCSS, err := r.compileCSS(parent, seen)
	if err != nil {
		return "", err
	}

	own, err := os.ReadFile(cssFile)
	if err != nil {
		return "", fmt.Errorf("failed to read css: %w", err)
	}

	generated := filepath.Join(t.Dir, generatedCSS)
	content := fmt.Sprintf("@import url(%q);\n", parentCSS) + string(own)
	if err := os.WriteFile(generated, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", generatedCSS, err)
	}
	return generated, nil
}
