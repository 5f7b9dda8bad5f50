// Package preview renders the selected result's markdown description.
package preview

import (
	"strings"

	"github.com/charmbracelet/glamour/v2"

	"github.com/billie-coop/lumen/internal/theme"
)

// Model is the preview pane.
type Model struct {
	width, height int
	theme         *theme.Theme
	renderer      *glamour.TermRenderer
	content       string
	rendered      string
}

// New creates an empty preview using t.
func New(t *theme.Theme) *Model {
	return &Model{theme: t}
}

// SetTheme switches the markdown colours.
func (m *Model) SetTheme(t *theme.Theme) {
	m.theme = t
	m.renderer = nil
	m.render()
}

// SetSize sets the dimensions and rewraps the content.
func (m *Model) SetSize(width, height int) {
	if width != m.width {
		m.renderer = nil
	}
	m.width = width
	m.height = height
	m.render()
}

// SetContent replaces the markdown shown.
func (m *Model) SetContent(markdown string) {
	if markdown == m.content {
		return
	}
	m.content = markdown
	m.render()
}

// Content returns the markdown source.
func (m *Model) Content() string {
	return m.content
}

func (m *Model) render() {
	if m.content == "" || m.width <= 0 {
		m.rendered = ""
		return
	}
	if m.renderer == nil {
		r, err := m.theme.MarkdownRenderer(m.width - 2)
		if err != nil {
			m.rendered = m.content
			return
		}
		m.renderer = r
	}

	out, err := m.renderer.Render(m.content)
	if err != nil {
		m.rendered = m.content
		return
	}
	m.rendered = strings.Trim(out, "\n")
}

// View renders the pane.
func (m *Model) View() string {
	if m.rendered == "" {
		return ""
	}
	lines := strings.Split(m.rendered, "\n")
	if m.height > 0 && len(lines) > m.height {
		lines = lines[:m.height]
	}
	style := m.theme.Styles().Preview
	if m.width > 0 {
		style = style.Width(m.width)
	}
	return style.Render(strings.Join(lines, "\n"))
}
