package cli

import (
	"math"
	"strconv"
	"strings"

	"github.com/alexanderramin/pinlog/internal/cli/formatter"
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/session"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pinlogHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func pinlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// formValues holds the raw form-bound strings of the workout form.
type formValues struct {
	kind      string
	distance  string
	duration  string
	cadence   string
	elevation string
}

// input converts the raw values. Blank or malformed numbers become NaN so
// the session rejects them like any other invalid input.
func (v formValues) input() session.FormInput {
	return session.FormInput{
		Kind:      domain.Kind(v.kind),
		Distance:  parseMeasurement(v.distance),
		Duration:  parseMeasurement(v.duration),
		Cadence:   parseMeasurement(v.cadence),
		Elevation: parseMeasurement(v.elevation),
	}
}

func parseMeasurement(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// buildWorkoutForm creates the huh form for one workout. shown reports which
// type-specific field is visible; the cadence and elevation groups hide
// themselves accordingly.
func buildWorkoutForm(values *formValues, shown func() domain.Kind) *huh.Form {
	kinds := make([]huh.Option[string], 0, len(domain.Kinds))
	for _, k := range domain.Kinds {
		kinds = append(kinds, huh.NewOption(k.Icon()+" "+k.Label(), string(k)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(kinds...).
				Value(&values.kind),
			huh.NewInput().
				Title("Distance").
				Placeholder("km").
				Value(&values.distance),
			huh.NewInput().
				Title("Duration").
				Placeholder("min").
				Value(&values.duration),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Cadence").
				Placeholder("step/min").
				Value(&values.cadence),
		).WithHideFunc(func() bool { return shown() != domain.KindRunning }),
		huh.NewGroup(
			huh.NewInput().
				Title("Elev Gain").
				Placeholder("meters").
				Value(&values.elevation),
		).WithHideFunc(func() bool { return shown() != domain.KindCycling }),
	).WithTheme(pinlogHuhTheme()).WithShowHelp(false)
}
