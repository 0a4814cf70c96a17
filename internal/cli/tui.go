package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

func runTUI(ctx context.Context, app *App) error {
	if app.Workouts == nil {
		return errors.New("no workout store configured")
	}
	program := tea.NewProgram(newAppModel(app), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}
