package theme

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyGradient renders text with a horizontal gradient from color1 to
// color2 on top of base, one colour per grapheme cluster.
func ApplyGradient(text string, color1, color2 color.Color, base lipgloss.Style) string {
	if text == "" {
		return ""
	}

	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	var output strings.Builder
	colors := blendColors(len(clusters), color1, color2)
	for i, cluster := range clusters {
		output.WriteString(base.Foreground(colors[i]).Render(cluster))
	}
	return output.String()
}

// blendColors creates a gradient between colors
func blendColors(steps int, color1, color2 color.Color) []color.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []color.Color{color1}
	}

	c1, _ := colorful.MakeColor(color1)
	c2, _ := colorful.MakeColor(color2)

	colors := make([]color.Color, steps)
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps-1)
		// HCL keeps the blend perceptually even
		colors[i] = c1.BlendHcl(c2, t).Clamped()
	}
	return colors
}
