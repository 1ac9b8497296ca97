package commands

import (
	"fmt"

	"github.com/openproblems-bio/pipeline-launcher/internal/di"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/openproblems-bio/pipeline-launcher/internal/services"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// PreflightCommand checks AWS credentials and input states without launching
func PreflightCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "preflight",
		Usage: "Check AWS credentials and that input states exist",
		Description: `Calls STS GetCallerIdentity and lists the objects matching input_states
in the parameters document. Fails when no state file matches.`,
		Action: func(c *cli.Context) error {
			ctx := logger.WithContext(c.Context)

			container, err := di.New(ctx)
			if err != nil {
				return fmt.Errorf("failed to build container: %w", err)
			}

			preflight, err := di.Get[*services.Preflight](container)
			if err != nil {
				return fmt.Errorf("failed to set up preflight: %w", err)
			}

			report, err := preflight.Run(ctx, di.MustGet[params.Document](container))
			if err != nil {
				return err
			}

			fmt.Fprintf(c.App.Writer, "✓ AWS account %s\n", report.Identity.Account)
			fmt.Fprintf(c.App.Writer, "✓ %d input state(s) found\n", report.InputStates)
			return nil
		},
	}
}
