// Package shortcuts stores the user's keyword shortcuts, such as "g" for a
// web search, in a JSON file.
package shortcuts

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Shortcut maps a keyword to a URL or command template.
type Shortcut struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Keyword            string  `json:"keyword"`
	Cmd                string  `json:"cmd"`
	Icon               string  `json:"icon"`
	IsDefaultSearch    bool    `json:"is_default_search"`
	RunWithoutArgument bool    `json:"run_without_argument"`
	Added              float64 `json:"added"`
}

// New creates a shortcut with a fresh id. Default search is on, matching
// what the store seeds.
func New(name, keyword, cmd, icon string) *Shortcut {
	return &Shortcut{
		ID:              uuid.New().String(),
		Name:            name,
		Keyword:         keyword,
		Cmd:             cmd,
		Icon:            icon,
		IsDefaultSearch: true,
		Added:           float64(time.Now().UnixNano()) / float64(time.Second),
	}
}

// Expand substitutes arg for %s in the command.
func (s *Shortcut) Expand(arg string) string {
	return strings.ReplaceAll(s.Cmd, "%s", arg)
}

// IconPath returns the icon with a leading ~ expanded.
func (s *Shortcut) IconPath() string {
	return unfoldUserPath(s.Icon)
}

// foldUserPath replaces the home directory prefix with ~.
func foldUserPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if path == home {
		return "~"
	}
	if rest, ok := strings.CutPrefix(path, home+string(filepath.Separator)); ok {
		return filepath.Join("~", rest)
	}
	return path
}

func unfoldUserPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
