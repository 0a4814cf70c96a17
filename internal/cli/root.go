package cli

import (
	"errors"
	"log/slog"

	"github.com/alexanderramin/pinlog/internal/config"
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/service"
	"github.com/alexanderramin/pinlog/internal/session"
	"github.com/spf13/cobra"
)

// App holds the configuration and services used by CLI commands.
type App struct {
	Config   config.Config
	Workouts service.WorkoutService
	Logger   *slog.Logger

	// Wire builds Workouts and Logger once flags are parsed. Nil leaves
	// whatever the caller set.
	Wire func(app *App) error

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	closers []func() error
}

// OnClose registers fn to run from Close.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Close releases resources in reverse registration order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) locator() globe.Locator {
	home, ok := a.Config.Home()
	return globe.StaticLocator{Home: home, HasHome: ok}
}

func (a *App) sessionOptions() session.Options {
	return session.Options{
		DefaultZoom:   a.Config.DefaultZoom,
		SelectZoom:    a.Config.SelectZoom,
		ZoomDelay:     a.Config.ZoomDelay(),
		ZoomAnimation: a.Config.ZoomAnimation(),
		TileURL:       a.Config.TileURL,
		Attribution:   a.Config.Attribution,
		PopupMaxWidth: a.Config.PopupMaxWidth,
		ZoomPolicy:    a.Config.ZoomPolicy,
	}
}

// NewRootCmd creates the top-level "pinlog" command. Without a subcommand
// it opens the TUI on an interactive terminal and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pinlog",
		Short: "Log running and cycling workouts on a map",
		Long: `pinlog records workouts where they happened. Move the crosshair to a
spot on the map, press enter, fill in the form, and the workout is pinned
there and listed in the sidebar. Selecting a workout pans the map back to it.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Config.Finalize(cmd.Flags())
			if err := app.Config.Validate(); err != nil {
				return err
			}
			if app.Wire != nil {
				return app.Wire(app)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}
	app.Config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newTUICmd(app),
		newReplayCmd(app),
	)

	return root
}

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), app)
		},
	}
}
