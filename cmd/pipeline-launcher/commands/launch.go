package commands

import (
	"fmt"

	"github.com/openproblems-bio/pipeline-launcher/internal/di"
	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/openproblems-bio/pipeline-launcher/internal/services"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// LaunchCommand returns the launch command that submits the workflow
func LaunchCommand(logger *zerolog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "launch",
		Usage: "Write the params file and launch the workflow",
		Description: `Resolves the repository root, changes into it, writes the parameters
document to /tmp/params.yaml (see --params-file) and runs:

  tw launch https://github.com/openproblems-bio/task_batch_integration.git \
    --revision build/main --pull-latest \
    --main-script target/nextflow/workflows/process_datasets/main.nf \
    --workspace 53907369739130 --compute-env 6TeIFgV5OY4pJCk8I0bfOh \
    --params-file /tmp/params.yaml --entry-name auto \
    --config common/nextflow_helpers/labels_tw.config \
    --labels task_batch_integration,process_datasets

The exit status of tw is returned unchanged.

Examples:
  # Launch with the built-in settings
  pipeline-launcher launch

  # Show what would run
  pipeline-launcher launch --dry-run
  pipeline-launcher --dry-run launch

  # Check inputs first and use a token stored in Secrets Manager
  pipeline-launcher launch --preflight --token-secret seqera/access-token`,
		Flags:  LaunchFlags(),
		Action: LaunchAction(logger),
	}
}

// LaunchAction runs a launch; also used as the app's default action
func LaunchAction(logger *zerolog.Logger) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := logger.WithContext(c.Context)

		container, err := newContainer(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to build container: %w", err)
		}

		if lookupBool(c, "preflight") {
			preflight, err := di.Get[*services.Preflight](container)
			if err != nil {
				return fmt.Errorf("failed to set up preflight: %w", err)
			}
			if _, err := preflight.Run(ctx, di.MustGet[params.Document](container)); err != nil {
				return fmt.Errorf("preflight failed: %w", err)
			}
		}

		l, err := di.Get[*launcher.Launcher](container)
		if err != nil {
			return fmt.Errorf("failed to set up launcher: %w", err)
		}

		return l.Run(ctx)
	}
}
