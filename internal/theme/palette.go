package theme

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette holds the terminal colours a theme renders with.
type Palette struct {
	IsDark bool

	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	BgSelected color.Color

	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgSelected color.Color

	Border color.Color

	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	Match         color.Color
	MatchSelected color.Color
}

// LightPalette is used by the light theme and anything not extending dark.
func LightPalette() *Palette {
	return &Palette{
		Primary:   mustHex("#2563eb"), // Blue 600
		Secondary: mustHex("#7c3aed"), // Violet
		Accent:    mustHex("#0891b2"), // Cyan 600

		BgSelected: mustHex("#dbeafe"), // Blue 100

		FgBase:     mustHex("#1e293b"), // Slate 800
		FgMuted:    mustHex("#475569"), // Slate 600
		FgSubtle:   mustHex("#94a3b8"), // Slate 400
		FgSelected: mustHex("#0f172a"),

		Border: mustHex("#cbd5e1"),

		Success: mustHex("#16a34a"),
		Error:   mustHex("#dc2626"),
		Warning: mustHex("#d97706"),
		Info:    mustHex("#2563eb"),

		Match:         mustHex("#2563eb"),
		MatchSelected: mustHex("#1d4ed8"),
	}
}

// DarkPalette is used by the dark theme and its descendants.
func DarkPalette() *Palette {
	return &Palette{
		IsDark: true,

		Primary:   mustHex("#60a5fa"), // Sky blue
		Secondary: mustHex("#a78bfa"), // Violet
		Accent:    mustHex("#34d399"), // Emerald

		BgSelected: mustHex("#334155"), // Slate 700

		FgBase:     mustHex("#f8fafc"), // Slate 50
		FgMuted:    mustHex("#cbd5e1"), // Slate 300
		FgSubtle:   mustHex("#94a3b8"), // Slate 400
		FgSelected: mustHex("#ffffff"),

		Border: mustHex("#334155"),

		Success: mustHex("#34d399"),
		Error:   mustHex("#f87171"),
		Warning: mustHex("#fbbf24"),
		Info:    mustHex("#60a5fa"),

		Match:         mustHex("#99ccff"),
		MatchSelected: mustHex("#99ccff"),
	}
}

// withHighlights returns a copy of p using the manifest highlight colours
// that parse.
func (p *Palette) withHighlights(hl HighlightColors) *Palette {
	out := *p
	if c, err := colorful.Hex(hl.WhenNotSelected); err == nil {
		out.Match = c
	}
	if c, err := colorful.Hex(hl.WhenSelected); err == nil {
		out.MatchSelected = c
	}
	return &out
}

func mustHex(hex string) color.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return c
}
