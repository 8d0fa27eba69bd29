package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is one column of a listing (campaigns, candidates, wallets).
type Column struct {
	Title string
	Width int
}

// Row holds the cell values of one entry.
type Row []string

// Table renders fixed-width listings. Campaign purposes and keys routinely
// overflow their columns, so cells are clipped with an ellipsis rather than
// wrapped.
type Table struct {
	Columns   []Column
	Rows      []Row
	Highlight int // row to emphasize (-1 = none)
}

func NewTable(cols []Column) *Table {
	return &Table{Columns: cols, Highlight: -1}
}

func (t *Table) AddRow(r Row) {
	t.Rows = append(t.Rows, r)
}

// fit clips s to width runes (ellipsis on overflow) and pads it out.
// Widths are enforced here with plain spaces: lipgloss's Width+Padding
// combination wraps overlong content instead of clipping it.
func fit(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width > 1 {
			return string(r[:width-1]) + "…"
		}
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}

// Render returns the listing as styled lines: header, divider, then rows in
// insertion order.
func (t *Table) Render() string {
	headerStyle := lipgloss.NewStyle().Foreground(ColorHighlight).Bold(true)
	cellStyle := lipgloss.NewStyle().Foreground(ColorValue)
	dimStyle := lipgloss.NewStyle().Foreground(ColorMeta)

	line := func(render func(...string) string, cells []string) string {
		out := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			out[i] = render(fit(val, col.Width))
		}
		return strings.Join(out, " ") + "\n"
	}

	var sb strings.Builder

	titles := make([]string, len(t.Columns))
	divider := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		titles[i] = col.Title
		divider[i] = strings.Repeat("-", col.Width)
	}
	sb.WriteString(line(headerStyle.Render, titles))
	sb.WriteString(line(dimStyle.Render, divider))

	for i, row := range t.Rows {
		style := cellStyle
		if i == t.Highlight {
			style = StyleSelected
		}
		sb.WriteString(line(style.Render, row))
	}

	return sb.String()
}

// KeyValueBlock renders labeled values in a bordered box, the shape used for
// session and campaign detail output.
func KeyValueBlock(title string, pairs [][2]string) string {
	var sb strings.Builder
	if title != "" {
		sb.WriteString(StyleTitle.Render(title))
		sb.WriteString("\n")
	}
	for _, p := range pairs {
		key := StyleMeta.Render(fmt.Sprintf("%-20s", p[0]+":"))
		sb.WriteString("  " + key + " " + StyleValue.Render(p[1]) + "\n")
	}
	return StyleBorder.Render(sb.String())
}
