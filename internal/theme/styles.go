package theme

import (
	"github.com/charmbracelet/glamour/v2/ansi"
	"github.com/charmbracelet/lipgloss/v2"
)

// Styles are the lipgloss styles the launcher window renders with.
type Styles struct {
	Base   lipgloss.Style
	Title  lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Item          lipgloss.Style
	ItemSelected  lipgloss.Style
	Description   lipgloss.Style
	Keyword       lipgloss.Style
	Match         lipgloss.Style
	MatchSelected lipgloss.Style
	Placeholder   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Preview  lipgloss.Style
	Markdown ansi.StyleConfig
}

func buildStyles(p *Palette) *Styles {
	base := lipgloss.NewStyle().
		Foreground(p.FgBase)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(p.Accent).
			Bold(true),

		Muted: base.Foreground(p.FgMuted),

		Subtle: base.Foreground(p.FgSubtle),

		Input: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),

		InputFocused: base.
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),

		Item: base.Padding(0, 1),

		ItemSelected: base.
			Foreground(p.FgSelected).
			Background(p.BgSelected).
			Padding(0, 1),

		Description: base.Foreground(p.FgMuted),

		Keyword: base.Foreground(p.Secondary),

		Match: lipgloss.NewStyle().
			Foreground(p.Match).
			Bold(true),

		MatchSelected: lipgloss.NewStyle().
			Foreground(p.MatchSelected).
			Background(p.BgSelected).
			Bold(true),

		Placeholder: base.
			Foreground(p.FgSubtle).
			Italic(true).
			Padding(0, 1),

		Success: base.Foreground(p.Success),

		Error: base.Foreground(p.Error),

		Warning: base.Foreground(p.Warning),

		Info: base.Foreground(p.Info),

		Preview: base.
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(p.Border).
			PaddingLeft(1),

		Markdown: buildMarkdownStyles(p),
	}
}

// Helper functions for style pointers
func boolPtr(b bool) *bool       { return &b }
func stringPtr(s string) *string { return &s }
func uintPtr(u uint) *uint       { return &u }

func buildMarkdownStyles(p *Palette) ansi.StyleConfig {
	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorToHex(p.FgBase)),
			},
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color: stringPtr(colorToHex(p.FgMuted)),
			},
			Indent:      uintPtr(1),
			IndentToken: stringPtr("│ "),
		},
		List: ansi.StyleList{
			LevelIndent: 2,
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
				Color:       stringPtr(colorToHex(p.Secondary)),
				Bold:        boolPtr(true),
			},
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "# ",
				Color:  stringPtr(colorToHex(p.Primary)),
				Bold:   boolPtr(true),
			},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Prefix: "## ",
				Color:  stringPtr(colorToHex(p.Accent)),
				Bold:   boolPtr(true),
			},
		},
		Text: ansi.StylePrimitive{
			Color: stringPtr(colorToHex(p.FgBase)),
		},
		Paragraph: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				BlockSuffix: "\n",
			},
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Link: ansi.StylePrimitive{
			Color:     stringPtr(colorToHex(p.Info)),
			Underline: boolPtr(true),
		},
		LinkText: ansi.StylePrimitive{
			Color: stringPtr(colorToHex(p.Info)),
		},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{
				Color:           stringPtr(colorToHex(p.Accent)),
				BackgroundColor: stringPtr(colorToHex(p.BgSelected)),
			},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				StylePrimitive: ansi.StylePrimitive{
					Color: stringPtr(colorToHex(p.FgBase)),
				},
				Margin: uintPtr(2),
			},
		},
	}
}
