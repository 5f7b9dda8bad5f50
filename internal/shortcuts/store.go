package shortcuts

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/billie-coop/lumen/internal/csync"
)

// ErrNotFound is returned for unknown shortcut ids.
var ErrNotFound = errors.New("shortcut not found")

// Store is a concurrency safe set of shortcuts persisted to one JSON file,
// keyed by id.
type Store struct {
	path      string
	shortcuts *csync.Map[string, *Shortcut]
}

// Load reads the store at path. When the file does not exist the default
// shortcuts are seeded, with icons taken from iconDir, and saved.
func Load(path, iconDir string) (*Store, error) {
	s := &Store{
		path:      path,
		shortcuts: csync.NewMap[string, *Shortcut](),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		for _, sc := range defaults(iconDir) {
			s.put(sc)
		}
		if err := s.Save(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read shortcuts: %w", err)
	}

	stored, err := decode(data)
	if err != nil {
		return nil, err
	}
	s.shortcuts.Replace(stored)
	return s, nil
}

// Reload replaces the in-memory shortcuts with the file's contents. A
// missing or unparsable file leaves the store unchanged.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("failed to read shortcuts: %w", err)
	}
	stored, err := decode(data)
	if err != nil {
		return err
	}
	s.shortcuts.Replace(stored)
	return nil
}

func decode(data []byte) (map[string]*Shortcut, error) {
	var stored map[string]*Shortcut
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to parse shortcuts: %w", err)
	}
	out := make(map[string]*Shortcut, len(stored))
	for id, sc := range stored {
		if sc == nil {
			continue
		}
		sc.ID = id
		sc.Icon = foldUserPath(sc.Icon)
		out[id] = sc
	}
	return out, nil
}

func defaults(iconDir string) []*Shortcut {
	return []*Shortcut{
		New("Google Search", "g", "https://google.com/search?q=%s", filepath.Join(iconDir, "google-search.png")),
		New("Stack Overflow", "so", "https://stackoverflow.com/search?q=%s", filepath.Join(iconDir, "stackoverflow.svg")),
		New("Wikipedia", "wiki", "https://en.wikipedia.org/wiki/%s", filepath.Join(iconDir, "wikipedia.png")),
	}
}

func (s *Store) put(sc *Shortcut) {
	sc.Icon = foldUserPath(sc.Icon)
	s.shortcuts.Set(sc.ID, sc)
}

// Add stores sc, assigning an id if it has none, and returns the id.
func (s *Store) Add(sc *Shortcut) string {
	if sc.ID == "" {
		fresh := New(sc.Name, sc.Keyword, sc.Cmd, sc.Icon)
		sc.ID, sc.Added = fresh.ID, fresh.Added
	}
	s.put(sc)
	return sc.ID
}

// Get returns the shortcut with id.
func (s *Store) Get(id string) (*Shortcut, error) {
	sc, ok := s.shortcuts.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sc, nil
}

// Remove deletes the shortcut with id.
func (s *Store) Remove(id string) error {
	if !s.shortcuts.Delete(id) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// All returns every shortcut, oldest first.
func (s *Store) All() []*Shortcut {
	all := s.shortcuts.Values()
	sort.Slice(all, func(i, j int) bool {
		if all[i].Added == all[j].Added {
			return all[i].Name < all[j].Name
		}
		return all[i].Added < all[j].Added
	})
	return all
}

// FindByKeyword returns the shortcuts whose keyword equals kw, ignoring case.
func (s *Store) FindByKeyword(kw string) []*Shortcut {
	var found []*Shortcut
	for _, sc := range s.All() {
		if strings.EqualFold(sc.Keyword, kw) {
			found = append(found, sc)
		}
	}
	return found
}

// DefaultSearches returns the shortcuts offered for queries no keyword
// matched.
func (s *Store) DefaultSearches() []*Shortcut {
	var found []*Shortcut
	for _, sc := range s.All() {
		if sc.IsDefaultSearch {
			found = append(found, sc)
		}
	}
	return found
}

// Save writes the store to disk.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create shortcuts directory: %w", err)
	}

	data, err := json.MarshalIndent(s.shortcuts, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode shortcuts: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write shortcuts: %w", err)
	}
	return nil
}
