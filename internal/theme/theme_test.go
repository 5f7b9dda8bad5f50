package theme

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTheme creates root/dir with a manifest and both css files.
func writeTheme(t *testing.T, root, dir string, m Manifest) string {
	t.Helper()
	path := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(path, 0o755))

	data, err := json.Marshal(m)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(path, manifestFile), data, 0o644))
	for _, css := range []string{m.CSSFile, m.CSSFileGTK320} {
		if css == "" {
			continue
		}
		require.NoError(t, os.WriteFile(filepath.Join(path, css), []byte("/* "+m.Name+" */\n"), 0o644))
	}
	return path
}

func manifest(name string) Manifest {
	return Manifest{
		ManifestVersion: "1",
		Name:            name,
		DisplayName:     strings.ToUpper(name),
		MatchedTextHLColors: HighlightColors{
			WhenSelected:    "#99ccff",
			WhenNotSelected: "#336699",
		},
		CSSFile:       "theme.css",
		CSSFileGTK320: "theme-gtk-3.20.css",
	}
}

func TestManifest_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(m *Manifest)
	}{
		{"wrong version", func(m *Manifest) { m.ManifestVersion = "2" }},
		{"empty name", func(m *Manifest) { m.Name = "" }},
		{"empty display name", func(m *Manifest) { m.DisplayName = "" }},
		{"no highlight colours", func(m *Manifest) { m.MatchedTextHLColors = HighlightColors{} }},
		{"bad highlight colour", func(m *Manifest) { m.MatchedTextHLColors.WhenSelected = "blue" }},
		{"empty css file", func(m *Manifest) { m.CSSFile = "" }},
		{"missing css file", func(m *Manifest) { m.CSSFileGTK320 = "nope.css" }},
	}

	root := t.TempDir()
	dir := writeTheme(t, root, "valid", manifest("valid"))
	valid := manifest("valid")
	require.NoError(t, valid.Validate(dir))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := manifest("valid")
			tt.mutate(&m)
			assert.ErrorIs(t, m.Validate(dir), ErrManifest)
		})
	}
}

func TestRegistry_Load(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTheme(t, system, "light", manifest("light"))
	writeTheme(t, system, "dark", manifest("dark"))

	broken := manifest("broken")
	broken.ManifestVersion = "0"
	writeTheme(t, user, "broken", broken)
	require.NoError(t, os.MkdirAll(filepath.Join(user, "not-a-theme"), 0o755))

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), system, user, filepath.Join(t.TempDir(), "missing")))

	assert.Equal(t, []string{"dark", "light"}, r.Names())
	dark, ok := r.Get("dark")
	require.True(t, ok)
	assert.True(t, dark.Palette().IsDark)
	assert.Equal(t, "DARK", dark.DisplayName())
}

func TestRegistry_UserThemeOverrides(t *testing.T) {
	system := t.TempDir()
	user := t.TempDir()
	writeTheme(t, system, "light", manifest("light"))
	override := manifest("light")
	override.DisplayName = "My Light"
	writeTheme(t, user, "light", override)

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), system, user))

	light, ok := r.Get("light")
	require.True(t, ok)
	assert.Equal(t, "My Light", light.DisplayName())
}

func TestRegistry_Current(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "light", manifest("light"))

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), root))

	assert.Equal(t, "light", r.Current("light").Name())
	assert.Equal(t, "light", r.Current("solarized").Name(), "unknown falls back to light")
	assert.Equal(t, "light", r.Current("").Name())

	empty := NewRegistry()
	fallback := empty.Current("anything")
	assert.Equal(t, DefaultName, fallback.Name())
	assert.NotNil(t, fallback.Styles())
}

func TestRegistry_Suggest(t *testing.T) {
	root := t.TempDir()
	writeTheme(t, root, "light", manifest("light"))
	writeTheme(t, root, "dark", manifest("dark"))

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), root))

	assert.Equal(t, "dark", r.Suggest("drak"))
	assert.Equal(t, "light", r.Suggest("Light"))
	assert.Empty(t, r.Suggest("solarized-high-contrast"))
}

func TestRegistry_CompileCSS(t *testing.T) {
	root := t.TempDir()
	darkDir := writeTheme(t, root, "dark", manifest("dark"))

	child := manifest("midnight")
	child.ExtendTheme = "dark"
	childDir := writeTheme(t, root, "midnight", child)

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), root))

	dark, _ := r.Get("dark")
	css, err := r.CompileCSS(dark)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(darkDir, "theme-gtk-3.20.css"), css)

	midnight, _ := r.Get("midnight")
	css, err = r.CompileCSS(midnight)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(childDir, generatedCSS), css)

	content, err := os.ReadFile(css)
	require.NoError(t, err)
	want := `@import url("` + filepath.Join(darkDir, "theme-gtk-3.20.css") + `");` + "\n/* midnight */\n"
	assert.Equal(t, want, string(content))

	assert.True(t, midnight.Palette().IsDark, "palette follows the extended theme")
}

func TestRegistry_CompileCSS_UnknownParent(t *testing.T) {
	root := t.TempDir()
	orphan := manifest("orphan")
	orphan.ExtendTheme = "ghost"
	dir := writeTheme(t, root, "orphan", orphan)

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), root))

	th, _ := r.Get("orphan")
	css, err := r.CompileCSS(th)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "theme-gtk-3.20.css"), css)
	assert.NoFileExists(t, filepath.Join(dir, generatedCSS))
}

func TestRegistry_CompileCSS_Cycle(t *testing.T) {
	root := t.TempDir()
	a := manifest("a")
	a.ExtendTheme = "b"
	b := manifest("b")
	b.ExtendTheme = "a"
	writeTheme(t, root, "a", a)
	writeTheme(t, root, "b", b)

	r := NewRegistry()
	require.NoError(t, r.Load(context.Background(), root))

	th, _ := r.Get("a")
	_, err := r.CompileCSS(th)
	assert.ErrorIs(t, err, ErrExtendCycle)
}

func TestPalette_Highlights(t *testing.T) {
	p := LightPalette().withHighlights(HighlightColors{WhenSelected: "#ff0000", WhenNotSelected: "bogus"})

	sel, _ := colorful.MakeColor(p.MatchSelected)
	assert.Equal(t, "#ff0000", sel.Hex())
	match, _ := colorful.MakeColor(p.Match)
	def, _ := colorful.MakeColor(LightPalette().Match)
	assert.Equal(t, def.Hex(), match.Hex(), "unparseable colour keeps the default")
}

func TestApplyGradient(t *testing.T) {
	p := LightPalette()
	assert.Empty(t, ApplyGradient("", p.Primary, p.Secondary, Builtin().Styles().Base))

	out := ApplyGradient("lumen", p.Primary, p.Secondary, Builtin().Styles().Base)
	assert.Contains(t, out, "l")
	assert.Contains(t, out, "n")
	assert.Len(t, blendColors(5, p.Primary, p.Secondary), 5)
	assert.Len(t, blendColors(1, p.Primary, p.Secondary), 1)
	assert.Nil(t, blendColors(0, p.Primary, p.Secondary))
}

func TestTheme_MarkdownRenderer(t *testing.T) {
	r, err := Builtin().MarkdownRenderer(40)
	require.NoError(t, err)

	out, err := r.Render("**bold** text")
	require.NoError(t, err)
	assert.Contains(t, out, "bold")
}
