// Package theme discovers launcher themes on disk and turns them into
// terminal styles.
//
// A theme is a directory holding a manifest.json and the CSS files it
// names. Themes may extend another theme by name; CompileCSS writes a
// generated.css importing the parent's compiled CSS.
package theme

import (
	"image/color"
	"sync"

	"github.com/charmbracelet/glamour/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultName is the theme used when the configured one is unknown.
const DefaultName = "light"

// Theme is a validated theme directory.
type Theme struct {
	Dir      string
	Manifest *Manifest

	palette *Palette

	once   sync.Once
	styles *Styles
}

// Builtin returns a theme with no files behind it, used when not even the
// default theme could be loaded.
func Builtin() *Theme {
	return &Theme{
		Manifest: &Manifest{
			ManifestVersion: "1",
			Name:            DefaultName,
			DisplayName:     "Light",
		},
		palette: LightPalette(),
	}
}

// Name is the manifest name.
func (t *Theme) Name() string { return t.Manifest.Name }

// DisplayName is the human readable name.
func (t *Theme) DisplayName() string { return t.Manifest.DisplayName }

// Palette returns the resolved colours.
func (t *Theme) Palette() *Palette {
	if t.palette == nil {
		return LightPalette().withHighlights(t.Manifest.MatchedTextHLColors)
	}
	return t.palette
}

// Styles returns the lipgloss styles for the theme, built on first use.
func (t *Theme) Styles() *Styles {
	t.once.Do(func() {
		t.styles = buildStyles(t.Palette())
	})
	return t.styles
}

// MarkdownRenderer returns a glamour renderer using the theme colours.
func (t *Theme) MarkdownRenderer(width int) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(
		glamour.WithStyles(t.Styles().Markdown),
		glamour.WithWordWrap(width),
	)
}

// Title renders text with the primary to secondary gradient.
func (t *Theme) Title(text string) string {
	p := t.Palette()
	return ApplyGradient(text, p.Primary, p.Secondary, lipgloss.NewStyle().Bold(true))
}

// colorToHex converts color to a #rrggbb string
func colorToHex(c color.Color) string {
	cf, _ := colorful.MakeColor(c)
	return cf.Hex()
}
