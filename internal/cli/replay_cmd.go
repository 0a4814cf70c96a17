package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pinlog/internal/cli/formatter"
	"github.com/alexanderramin/pinlog/internal/replay"
	"github.com/spf13/cobra"
)

func newReplayCmd(app *App) *cobra.Command {
	var (
		showMap   bool
		quiet     bool
		mapWidth  int
		mapHeight int
	)

	cmd := &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Play a scripted session and print the resulting workouts",
		Long: `Play a YAML script of session events without a terminal UI.

Events: locate, click (lat, lng), toggle, submit (type, distance, duration,
cadence or elevation), select (index or id) and wait (after, e.g. 3.5s).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := replay.LoadFile(args[0])
			if err != nil {
				return err
			}

			res, err := replay.Run(cmd.Context(), script, replay.Deps{
				Workouts: app.Workouts,
				Options:  app.sessionOptions(),
				Logger:   app.Logger,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !quiet {
				fmt.Fprintln(out, formatter.Header("Session"))
				fmt.Fprintln(out, strings.Join(res.Transcript, "\n"))
				fmt.Fprintln(out)
			}
			if showMap {
				fmt.Fprintln(out, formatter.Header("Map"))
				fmt.Fprintln(out, res.Map.Render(mapWidth, mapHeight))
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, formatter.FormatWorkoutTable(res.Workouts, time.Now()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showMap, "map", false, "print the final map view")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "omit the event transcript")
	cmd.Flags().IntVar(&mapWidth, "map-width", 60, "map grid width in columns")
	cmd.Flags().IntVar(&mapHeight, "map-height", 15, "map grid height in rows")

	return cmd
}
