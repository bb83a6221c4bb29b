// Package widgets holds the pure string builders the TUI composes its
// view from. Nothing here owns state; everything is theme in, text out.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pulse/theme"
)

// RenderLamp renders the beat indicator: a filled dot in the flash
// color while lit, a dim ring otherwise.
func RenderLamp(th *theme.Theme, lit bool, color lipgloss.Color) string {
	if !lit {
		style := lipgloss.NewStyle().Foreground(th.LampIdle())
		return style.Render(string(th.Symbols.LampOff))
	}
	style := lipgloss.NewStyle().Foreground(color)
	return style.Render(string(th.Symbols.LampOn))
}

// RenderBar renders a position bar for a normalized value. Filled
// cells are colored along the palette ramp; empty cells trace the same
// ramp darkened.
func RenderBar(th *theme.Theme, norm float64, width int) string {
	if width < 1 {
		width = 1
	}
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	filled := int(norm*float64(width) + 0.5)

	span := width - 1
	if span < 1 {
		span = 1
	}

	var out strings.Builder
	for i := 0; i < width; i++ {
		pos := float64(i) / float64(span)
		if i < filled {
			style := lipgloss.NewStyle().Foreground(th.Color(pos))
			out.WriteString(style.Render(string(th.Symbols.BarFill)))
		} else {
			style := lipgloss.NewStyle().Foreground(dimmed(th, pos))
			out.WriteString(style.Render(string(th.Symbols.BarEmpty)))
		}
	}
	return out.String()
}

// dimmed is the ramp color at a normalized position at a third of its
// brightness, for the unfilled track.
func dimmed(th *theme.Theme, norm float64) lipgloss.Color {
	c := th.RGB(norm)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0]/3, c[1]/3, c[2]/3))
}

// Row is one name/value line of a table.
type Row struct {
	Name  string
	Value string
}

// RenderTable renders aligned rows under an optional ruled title.
// Name widths are measured in terminal cells, not bytes, so names
// holding multibyte runes keep the value column straight.
func RenderTable(th *theme.Theme, title string, rows []Row) string {
	nameW := 0
	for _, r := range rows {
		if w := lipgloss.Width(r.Name); w > nameW {
			nameW = w
		}
	}

	var lines []string
	if title != "" {
		titleStyle := lipgloss.NewStyle().Foreground(th.FG()).Bold(true)
		ruleStyle := lipgloss.NewStyle().Foreground(th.Muted())
		lines = append(lines, titleStyle.Render(title))
		lines = append(lines, ruleStyle.Render(strings.Repeat(string(th.Symbols.RuleH), nameW+16)))
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", nameW-lipgloss.Width(r.Name))
		lines = append(lines, "  "+r.Name+pad+"  "+r.Value)
	}
	return strings.Join(lines, "\n")
}

// RenderKeyHelp formats key bindings in a friendly way
func RenderKeyHelp(sections []KeySection) string {
	var lines []string
	for _, sec := range sections {
		if sec.Title != "" {
			lines = append(lines, sec.Title)
		}
		for _, k := range sec.Keys {
			lines = append(lines, fmt.Sprintf("  %-12s %s", k.Key, k.Desc))
		}
	}
	return strings.Join(lines, "\n")
}

// KeySection groups related key bindings
type KeySection struct {
	Title string
	Keys  []KeyBinding
}

// KeyBinding is a single key and its description
type KeyBinding struct {
	Key  string
	Desc string
}
