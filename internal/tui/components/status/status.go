// Package status is the one-line status bar under the results.
package status

import (
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rivo/uniseg"

	"github.com/billie-coop/lumen/internal/theme"
	"github.com/billie-coop/lumen/internal/tui/events"
)

// Message is a status bar message
type Message struct {
	Content   string
	Kind      events.StatusKind
	Timestamp time.Time
}

// Component shows temporary messages on the right and a hint on the left.
type Component struct {
	message     *Message
	width       int
	leftContent string
	styles      *theme.Styles

	// Timer for clearing messages
	clearAfter time.Duration
}

// New creates a new status bar component
func New(styles *theme.Styles) *Component {
	return &Component{
		styles:     styles,
		clearAfter: 5 * time.Second,
	}
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// SetMessage shows content and returns the command that clears it later.
func (c *Component) SetMessage(content string, kind events.StatusKind) tea.Cmd {
	msg := &Message{
		Content:   content,
		Kind:      kind,
		Timestamp: time.Now(),
	}
	c.message = msg

	return tea.Tick(c.clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: msg.Timestamp}
	})
}

// Message returns the message shown, if any.
func (c *Component) Message() (Message, bool) {
	if c.message == nil {
		return Message{}, false
	}
	return *c.message, true
}

// SetLeftContent sets the left side content
func (c *Component) SetLeftContent(content string) {
	c.leftContent = content
}

// SetSize sets the width
func (c *Component) SetSize(width int) {
	c.width = width
}

// SetStyles switches the theme styles
func (c *Component) SetStyles(styles *theme.Styles) {
	c.styles = styles
}

// Update clears expired messages
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	if msg, ok := msg.(clearMessageMsg); ok {
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
	}
	return c, nil
}

// View renders the bar
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	available := c.width - 2
	right := c.formatMessage()
	if uniseg.StringWidth(right) > available*2/3 {
		right = clip(right, available*2/3)
	}
	left := clip(c.leftContent, available-uniseg.StringWidth(right)-1)

	gap := available - uniseg.StringWidth(left) - uniseg.StringWidth(right)
	content := c.styles.Subtle.Render(left) + lipgloss.NewStyle().Width(max(gap, 1)).Render("") + c.styleFor().Render(right)

	return lipgloss.NewStyle().Width(c.width).Padding(0, 1).Render(content)
}

func (c *Component) styleFor() lipgloss.Style {
	if c.message == nil {
		return c.styles.Base
	}
	switch c.message.Kind {
	case events.StatusSuccess:
		return c.styles.Success
	case events.StatusWarning:
		return c.styles.Warning
	case events.StatusError:
		return c.styles.Error
	default:
		return c.styles.Info
	}
}

// formatMessage prefixes the message with its kind's icon
func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	switch c.message.Kind {
	case events.StatusSuccess:
		return "✓ " + c.message.Content
	case events.StatusWarning:
		return "⚠ " + c.message.Content
	case events.StatusError:
		return "✗ " + c.message.Content
	default:
		return c.message.Content
	}
}

// clip cuts s to width cells on a grapheme boundary.
func clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	out := ""
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		if used+gr.Width() > width-1 {
			break
		}
		out += gr.Str()
		used += gr.Width()
	}
	return out + "…"
}
