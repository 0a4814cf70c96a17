package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// FormatMetric renders a derived metric to one decimal place.
func FormatMetric(m domain.Metric) string {
	return fmt.Sprintf("%.1f %s", m.Value, m.Unit)
}

// FormatVisits renders a visit count, or "" for none.
func FormatVisits(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 visit"
	default:
		return fmt.Sprintf("%d visits", n)
	}
}

// FormatWorkoutStats renders the measurement line of a list entry:
// distance, duration, derived metric and the kind-specific metric.
func FormatWorkoutStats(w *domain.Workout) string {
	secondary := w.SecondaryMetric()
	parts := []string{
		fmt.Sprintf("%g km", w.DistanceKm),
		fmt.Sprintf("⏱ %g min", w.DurationMin),
		"⚡ " + FormatMetric(w.PrimaryMetric()),
		fmt.Sprintf("%s %g %s", secondaryIcon(w.Kind), secondary.Value, secondary.Unit),
	}
	return strings.Join(parts, "  ")
}

func secondaryIcon(kind domain.Kind) string {
	if kind == domain.KindCycling {
		return "⛰"
	}
	return "🦶"
}

// FormatWorkoutEntry renders one sidebar entry. The selected entry is
// marked with a bar in the kind's color.
func FormatWorkoutEntry(w *domain.Workout, selected bool) string {
	accent := KindStyle(w.Kind)
	marker := " "
	if selected {
		marker = accent.Render("▌")
	}

	title := accent.Bold(true).Render(w.Kind.Icon() + " " + w.Description)
	if v := FormatVisits(w.VisitCount); v != "" {
		title += "  " + Dim(v)
	}
	stats := StyleFg.Render(FormatWorkoutStats(w))

	return lipgloss.JoinVertical(lipgloss.Left,
		marker+" "+title,
		marker+"   "+stats,
	)
}

// FormatWorkoutList renders every workout in display order, or a hint when
// there are none.
func FormatWorkoutList(workouts []*domain.Workout, selected int) string {
	if len(workouts) == 0 {
		return Dim("No workouts yet. Click the map to log one.")
	}
	entries := make([]string, len(workouts))
	for i, w := range workouts {
		entries[i] = FormatWorkoutEntry(w, i == selected)
	}
	return strings.Join(entries, "\n\n")
}

// FormatWorkoutTable renders workouts as a plain summary for non-interactive
// output.
func FormatWorkoutTable(workouts []*domain.Workout, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Workouts (%d)", len(workouts))))
	b.WriteString("\n")
	if len(workouts) == 0 {
		b.WriteString(Dim("No workouts logged."))
		b.WriteString("\n")
		return b.String()
	}

	cols := []Column{
		{Title: "#", Right: true},
		{Title: "ID"},
		{Title: "WORKOUT"},
		{Title: "DISTANCE", Right: true},
		{Title: "DURATION", Right: true},
		{Title: "PACE/SPEED", Right: true},
		{Title: "METRIC", Right: true},
		{Title: "VISITS", Right: true},
		{Title: "LOGGED"},
	}
	rows := make([][]string, 0, len(workouts))
	var totalKm, totalMin float64
	for i, w := range workouts {
		totalKm += w.DistanceKm
		totalMin += w.DurationMin
		secondary := w.SecondaryMetric()
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			w.DisplayID(),
			w.Kind.Icon() + " " + w.Description,
			fmt.Sprintf("%g km", w.DistanceKm),
			fmt.Sprintf("%g min", w.DurationMin),
			FormatMetric(w.PrimaryMetric()),
			fmt.Sprintf("%g %s", secondary.Value, secondary.Unit),
			fmt.Sprintf("%d", w.VisitCount),
			HumanTimestampFrom(w.CreatedAt, now),
		})
	}
	b.WriteString(RenderTable(cols, rows))
	b.WriteString(Dim(fmt.Sprintf("Total: %g km in %g min", totalKm, totalMin)))
	b.WriteString("\n")
	return b.String()
}
