package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrManifest is returned for a manifest.json that cannot be used.
var ErrManifest = errors.New("invalid theme manifest")

const manifestFile = "manifest.json"

// HighlightColors are the colours of the matched part of a result name.
type HighlightColors struct {
	WhenSelected    string `json:"when_selected"`
	WhenNotSelected string `json:"when_not_selected"`
}

// Manifest mirrors a theme's manifest.json.
type Manifest struct {
	ManifestVersion     string          `json:"manifest_version"`
	Name                string          `json:"name"`
	DisplayName         string          `json:"display_name"`
	MatchedTextHLColors HighlightColors `json:"matched_text_hl_colors"`
	ExtendTheme         string          `json:"extend_theme"`
	CSSFile             string          `json:"css_file"`
	CSSFileGTK320       string          `json:"css_file_gtk_3.20+"`
}

func readManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrManifest, dir, err)
	}
	return &m, nil
}

// Validate checks the manifest against the files in dir.
func (m *Manifest) Validate(dir string) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrManifest, dir, fmt.Sprintf(format, args...))
	}

	switch {
	case m.ManifestVersion != "1":
		return fail("supported manifest version is '1'")
	case m.Name == "":
		return fail(`"name" is empty`)
	case m.DisplayName == "":
		return fail(`"display_name" is empty`)
	case m.MatchedTextHLColors == (HighlightColors{}):
		return fail(`"matched_text_hl_colors" is empty`)
	case m.CSSFile == "":
		return fail(`"css_file" is empty`)
	case m.CSSFileGTK320 == "":
		return fail(`"css_file_gtk_3.20+" is empty`)
	}

	for _, hex := range []string{m.MatchedTextHLColors.WhenSelected, m.MatchedTextHLColors.WhenNotSelected} {
		if hex == "" {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fail("bad highlight colour %q", hex)
		}
	}

	for field, name := range map[string]string{"css_file": m.CSSFile, "css_file_gtk_3.20+": m.CSSFileGTK320} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return fail("%q does not exist", field)
		}
	}
	return nil
}
