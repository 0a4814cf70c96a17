package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/pinlog/internal/cli"
	"github.com/alexanderramin/pinlog/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Stores are wired after flags are parsed, since --store and
	// --log-file can change them.
	app := &cli.App{
		Config: config.LoadConfig(),
		Wire:   cli.WireStores,
	}
	defer app.Close()

	// Detect interactive terminal for the map-only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
