// Package results renders the result list and tracks the selection.
package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/spinner"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/lumen/internal/result"
	"github.com/billie-coop/lumen/internal/theme"
)

// ActivateMsg asks the parent to run an item's OnEnter.
type ActivateMsg struct {
	Item result.Item
}

// Model is the result list.
type Model struct {
	items    []result.Item
	selected int // -1 when nothing is selectable
	offset   int
	query    string

	width, height int
	maxItems      int

	keys    KeyMap
	spinner spinner.Model
	styles  *theme.Styles
}

// New creates an empty list showing at most maxItems rows.
func New(styles *theme.Styles, maxItems int) *Model {
	if maxItems <= 0 {
		maxItems = 9
	}
	return &Model{
		selected: -1,
		maxItems: maxItems,
		keys:     DefaultKeyMap(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		styles:   styles,
	}
}

// Init starts the spinner used by the loading row.
func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles navigation keys and spinner ticks.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.PageUp):
			m.move(-m.visibleRows())
		case key.Matches(msg, m.keys.PageDown):
			m.move(m.visibleRows())
		case key.Matches(msg, m.keys.Activate):
			return m, m.activate(m.selected)
		case key.Matches(msg, m.keys.Quick):
			n := int(msg.String()[len(msg.String())-1] - '1')
			return m, m.activate(m.offset + n)
		}
	}
	return m, nil
}

func (m *Model) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.items) || !m.items[i].Highlightable {
		return nil
	}
	item := m.items[i]
	return func() tea.Msg {
		return ActivateMsg{Item: item}
	}
}

// move shifts the selection by delta, skipping rows that cannot be
// selected.
func (m *Model) move(delta int) {
	if m.selected < 0 || delta == 0 {
		return
	}
	target := m.selected + delta
	target = max(0, min(target, len(m.items)-1))

	step := 1
	if delta < 0 {
		step = -1
	}
	for i := target; i >= 0 && i < len(m.items); i += step {
		if m.items[i].Highlightable {
			m.selected = i
			m.scrollToSelection()
			return
		}
	}
}

func (m *Model) scrollToSelection() {
	rows := m.visibleRows()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+rows {
		m.offset = m.selected - rows + 1
	}
}

func (m *Model) visibleRows() int {
	rows := m.maxItems
	if m.height > 0 && m.height < rows {
		rows = m.height
	}
	return max(rows, 1)
}

// SetItems replaces the list and selects the first selectable row.
func (m *Model) SetItems(items []result.Item) {
	m.items = items
	m.offset = 0
	m.selected = -1
	for i, item := range items {
		if item.Highlightable {
			m.selected = i
			break
		}
	}
}

// Clear empties the list.
func (m *Model) Clear() {
	m.SetItems(nil)
}

// Items returns the rows.
func (m *Model) Items() []result.Item {
	return m.items
}

// Selected returns the selected row.
func (m *Model) Selected() (result.Item, bool) {
	if m.selected < 0 || m.selected >= len(m.items) {
		return result.Item{}, false
	}
	return m.items[m.selected], true
}

// SelectedIndex returns the selected row index, -1 for none.
func (m *Model) SelectedIndex() int {
	return m.selected
}

// SetQuery sets the text matched names are highlighted against.
func (m *Model) SetQuery(q string) {
	m.query = q
}

// SetSize sets the dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.selected >= 0 {
		m.scrollToSelection()
	}
}

// SetStyles switches the theme styles.
func (m *Model) SetStyles(styles *theme.Styles) {
	m.styles = styles
}

// View renders the visible rows.
func (m *Model) View() string {
	if len(m.items) == 0 {
		return ""
	}

	rows := m.visibleRows()
	end := min(m.offset+rows, len(m.items))

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, i-m.offset))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderRow(i, visible int) string {
	item := m.items[i]
	width := m.width
	if width <= 0 {
		width = 60
	}

	if !item.Highlightable {
		text := truncate(item.Name, width-4)
		if item.Name == result.Loading {
			text = m.spinner.View() + " " + text
		}
		return m.styles.Placeholder.Render(text)
	}

	selected := i == m.selected
	rowStyle, matchStyle := m.styles.Item, m.styles.Match
	if selected {
		rowStyle, matchStyle = m.styles.ItemSelected, m.styles.MatchSelected
	}

	shortcut := fmt.Sprintf("%d", visible+1)
	name := truncate(item.Name, width-len(shortcut)-6)

	var row strings.Builder
	row.WriteString(highlight(name, m.query, rowStyle.UnsetPadding(), matchStyle))
	if item.Keyword != "" {
		row.WriteString(" " + m.styles.Keyword.Render(item.Keyword))
	}
	if visible < 9 {
		row.WriteString(" " + m.styles.Subtle.Render("alt+"+shortcut))
	}

	if m.width > 0 {
		rowStyle = rowStyle.Width(m.width)
	}
	return rowStyle.Render(row.String())
}
