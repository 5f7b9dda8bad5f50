package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap holds the window level bindings.
type KeyMap struct {
	Quit      key.Binding
	Hide      key.Binding
	NextTheme key.Binding
}

// DefaultKeyMap returns the default window bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Hide: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "hide"),
		),
		NextTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "next theme"),
		),
	}
}
