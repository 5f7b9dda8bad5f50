package results

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/rivo/uniseg"
)

// highlight renders name with the clusters matchMask marks in the match
// style.
func highlight(name, query string, normal, match lipgloss.Style) string {
	clusters := graphemes(name)
	mask := matchMask(clusters, query)

	var out, run strings.Builder
	matching := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if matching {
			out.WriteString(match.Render(run.String()))
		} else {
			out.WriteString(normal.Render(run.String()))
		}
		run.Reset()
	}

	for i, cluster := range clusters {
		if mask[i] != matching {
			flush()
			matching = mask[i]
		}
		run.WriteString(cluster)
	}
	flush()
	return out.String()
}

// matchMask marks the clusters that spell out query, in order and ignoring
// case and spaces. Nothing is marked unless the whole query matches.
func matchMask(clusters []string, query string) []bool {
	mask := make([]bool, len(clusters))
	needle := graphemes(strings.ToLower(strings.ReplaceAll(query, " ", "")))
	if len(needle) == 0 {
		return mask
	}

	next := 0
	for i, cluster := range clusters {
		if next < len(needle) && strings.ToLower(cluster) == needle[next] {
			mask[i] = true
			next++
		}
	}
	if next < len(needle) {
		return make([]bool, len(clusters))
	}
	return mask
}

func graphemes(s string) []string {
	var clusters []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	return clusters
}

// truncate cuts s to width terminal cells, adding an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var out strings.Builder
	used := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		w := gr.Width()
		if used+w > width-1 {
			break
		}
		out.WriteString(gr.Str())
		used += w
	}
	return out.String() + "…"
}
