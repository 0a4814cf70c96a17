package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Column is a table column. Numeric columns are right-aligned.
type Column struct {
	Title string
	Right bool
}

// RenderTable renders an aligned table with a header separator line.
// Column widths are measured on visible text, so styled cells line up.
func RenderTable(cols []Column, rows [][]string) string {
	if len(cols) == 0 {
		return ""
	}

	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = lipgloss.Width(c.Title)
	}
	for _, row := range rows {
		for i := 0; i < len(cols) && i < len(row); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	const colGap = 2
	gap := strings.Repeat(" ", colGap)

	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(pad(StyleHeader.Render(c.Title), widths[i], c.Right, i == len(cols)-1))
	}
	b.WriteString("\n")

	for i, w := range widths {
		if i > 0 {
			b.WriteString(gap)
		}
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i, c := range cols {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i > 0 {
				b.WriteString(gap)
			}
			b.WriteString(pad(cell, widths[i], c.Right, i == len(cols)-1))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// pad fills s to width. The last left-aligned column is not padded so rows
// carry no trailing spaces.
func pad(s string, width int, right, last bool) string {
	fill := max(width-lipgloss.Width(s), 0)
	if right {
		return strings.Repeat(" ", fill) + s
	}
	if last {
		return s
	}
	return s + strings.Repeat(" ", fill)
}
