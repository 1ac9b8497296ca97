package main

import (
	"context"
	"errors"
	"os"

	"github.com/openproblems-bio/pipeline-launcher/cmd/pipeline-launcher/commands"
	"github.com/openproblems-bio/pipeline-launcher/internal/di"
	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger()
	ctx := logger.WithContext(context.Background())

	app := &cli.App{
		Name:  "pipeline-launcher",
		Usage: "Launch the batch integration dataset processing workflow",
		Description: `Writes the launch parameters document and submits the batch integration
dataset processing workflow through the tw CLI.

Run from anywhere inside a clone of this repository. The tool changes to the
repository root first so the labels config resolves.

This tool provides commands for:
  - Launching the workflow (default when no command is given)
  - Printing the parameters document and launcher arguments
  - Checking AWS credentials and input states before a launch`,
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
				EnvVars: []string{"VERBOSE"},
			},
		}, commands.LaunchFlags()...),
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger = logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		Action: commands.LaunchAction(&logger),
		Commands: []*cli.Command{
			commands.LaunchCommand(&logger),
			commands.ParamsCommand(&logger),
			commands.ArgsCommand(&logger),
			commands.PreflightCommand(&logger),
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(exitCode(err))
	}
}

// exitCode propagates the launcher's own exit status
func exitCode(err error) int {
	var exitErr *launcher.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
