package formatter

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Panel renders content in a fixed-size rounded box. The border is
// highlighted when focused.
func Panel(content string, width, height int, focused bool) string {
	border := ColorDim
	if focused {
		border = ColorHeader
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 1)).
		Height(max(height-2, 1)).
		MaxHeight(height).
		Render(content)
}

// HumanTimestampFrom returns a human-friendly relative timestamp string
// measured from now.
func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)

	switch {
	case diff < 0:
		return t.Format("Jan 2, 15:04")
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("Jan 2, 15:04")
	}
}
