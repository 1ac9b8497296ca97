package commands

import (
	"fmt"

	"github.com/openproblems-bio/pipeline-launcher/internal/di"
	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// ArgsCommand prints the launcher argument vector, one argument per line
func ArgsCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "args",
		Usage: "Print the launcher arguments, one per line",
		Flags: settingsFlags(),
		Action: func(c *cli.Context) error {
			ctx := logger.WithContext(c.Context)

			container, err := newContainer(ctx, c)
			if err != nil {
				return fmt.Errorf("failed to build container: %w", err)
			}

			settings, err := di.Get[launcher.Settings](container)
			if err != nil {
				return fmt.Errorf("failed to load launch settings: %w", err)
			}

			fmt.Fprintln(c.App.Writer, settings.Binary)
			for _, arg := range settings.Args() {
				fmt.Fprintln(c.App.Writer, arg)
			}
			return nil
		},
	}
}
