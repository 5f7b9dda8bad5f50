// Package result defines the rows a launcher renders.
package result

// Item is a single row in the result list.
type Item struct {
	Name        string
	Description string // markdown, shown in the preview pane
	Icon        string // path on disk, may be empty
	Keyword     string
	// Highlightable rows take the selection cursor and match highlighting.
	// The loading placeholder is the usual exception.
	Highlightable bool
	// OnEnter runs when the row is activated. nil rows are inert.
	OnEnter func() error
}

// New returns a highlightable item.
func New(name, description, icon string) Item {
	return Item{Name: name, Description: description, Icon: icon, Highlightable: true}
}

// Loading is the placeholder name shown while an extension computes.
const Loading = "Loading…"

// Placeholder returns the non-highlightable loading row for icon.
func Placeholder(icon string) Item {
	return Item{Name: Loading, Icon: icon}
}
