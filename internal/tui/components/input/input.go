// Package input is the single-line query field.
package input

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/billie-coop/lumen/internal/theme"
)

// Model is a basic single-line input that edits runes, not bytes.
type Model struct {
	value       []rune
	placeholder string
	cursorPos   int
	width       int
	focused     bool
	styles      *theme.Styles
}

// New creates a focused input.
func New(styles *theme.Styles) *Model {
	return &Model{
		placeholder: "Type to search…",
		focused:     true,
		styles:      styles,
	}
}

// Update handles key presses. Keys the input does not edit with are left
// for the parent.
func (im *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !im.focused {
		return im, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return im, nil
	}

	switch keyMsg.String() {
	case "backspace":
		if im.cursorPos > 0 {
			im.value = append(im.value[:im.cursorPos-1], im.value[im.cursorPos:]...)
			im.cursorPos--
		}
	case "delete":
		if im.cursorPos < len(im.value) {
			im.value = append(im.value[:im.cursorPos], im.value[im.cursorPos+1:]...)
		}
	case "left":
		if im.cursorPos > 0 {
			im.cursorPos--
		}
	case "right":
		if im.cursorPos < len(im.value) {
			im.cursorPos++
		}
	case "home", "ctrl+a":
		im.cursorPos = 0
	case "end", "ctrl+e":
		im.cursorPos = len(im.value)
	case "ctrl+k":
		// Kill to end of line
		im.value = im.value[:im.cursorPos]
	case "ctrl+u":
		// Kill to beginning of line
		im.value = append([]rune(nil), im.value[im.cursorPos:]...)
		im.cursorPos = 0
	case "space":
		im.insert(" ")
	default:
		if key, ok := msg.(tea.KeyPressMsg); ok && key.Text != "" {
			im.insert(key.Text)
		}
	}
	return im, nil
}

func (im *Model) insert(text string) {
	for _, r := range text {
		if r < 32 || r == 127 {
			return
		}
	}
	runes := []rune(text)
	value := make([]rune, 0, len(im.value)+len(runes))
	value = append(value, im.value[:im.cursorPos]...)
	value = append(value, runes...)
	value = append(value, im.value[im.cursorPos:]...)
	im.value = value
	im.cursorPos += len(runes)
}

// SetSize sets the width.
func (im *Model) SetSize(width int) {
	im.width = width
}

// SetStyles switches the theme styles.
func (im *Model) SetStyles(styles *theme.Styles) {
	im.styles = styles
}

// View renders the input box.
func (im *Model) View() string {
	box := im.styles.Input
	if im.focused {
		box = im.styles.InputFocused
	}
	if im.width > 2 {
		box = box.Width(im.width - 2)
	}

	if len(im.value) == 0 && !im.focused {
		return box.Render(im.styles.Subtle.Render(im.placeholder))
	}

	before := string(im.value[:im.cursorPos])
	cursor := " "
	after := ""
	if im.cursorPos < len(im.value) {
		cursor = string(im.value[im.cursorPos])
		after = string(im.value[im.cursorPos+1:])
	}
	cursorStyle := lipgloss.NewStyle().Reverse(true)

	line := before + cursorStyle.Render(cursor) + after
	if len(im.value) == 0 {
		line += im.styles.Subtle.Render(im.placeholder)
	}
	return box.Render(line)
}

// Focus focuses the input
func (im *Model) Focus() { im.focused = true }

// Blur removes focus
func (im *Model) Blur() { im.focused = false }

// Focused returns whether the input is focused
func (im *Model) Focused() bool { return im.focused }

// Value returns the current input value
func (im *Model) Value() string { return string(im.value) }

// SetValue sets the input value and moves the cursor to the end
func (im *Model) SetValue(value string) {
	im.value = []rune(value)
	im.cursorPos = len(im.value)
}

// Reset clears the input
func (im *Model) Reset() {
	im.value = nil
	im.cursorPos = 0
}

// IsEmpty returns true if the input is blank
func (im *Model) IsEmpty() bool {
	return strings.TrimSpace(string(im.value)) == ""
}

// SetPlaceholder sets the placeholder text
func (im *Model) SetPlaceholder(placeholder string) {
	im.placeholder = placeholder
}
