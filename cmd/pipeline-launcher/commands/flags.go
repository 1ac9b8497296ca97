package commands

import (
	"context"

	"github.com/openproblems-bio/pipeline-launcher/internal/di"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/urfave/cli/v2"
)

// settingsFlags configure where launch settings come from
func settingsFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "settings-path",
			Aliases: []string{"s"},
			Usage:   "SSM Parameter Store path holding workspace, compute-env and revision overrides",
			EnvVars: []string{"LAUNCH_SETTINGS_PATH"},
		},
		&cli.StringFlag{
			Name:    "launcher",
			Usage:   "Launcher executable to invoke",
			Value:   "tw",
			EnvVars: []string{"TW_BINARY"},
		},
		&cli.StringFlag{
			Name:    "params-file",
			Usage:   "Where to write the params document passed to the launcher",
			Value:   params.DefaultPath,
			EnvVars: []string{"LAUNCH_PARAMS_FILE"},
		},
	}
}

// LaunchFlags returns the flags accepted by the launch command
func LaunchFlags() []cli.Flag {
	return append(settingsFlags(),
		&cli.StringFlag{
			Name:    "token-secret",
			Aliases: []string{"t"},
			Usage:   "Secrets Manager id of the launcher access token, exported as TOWER_ACCESS_TOKEN",
			EnvVars: []string{"LAUNCH_TOKEN_SECRET"},
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Write the params file and print the launch command without running it",
		},
		&cli.BoolFlag{
			Name:  "preflight",
			Usage: "Check AWS credentials and input states before launching",
		},
	)
}

// newContainer builds the DI container from whichever flags the command defines
func newContainer(ctx context.Context, c *cli.Context) (di.Container, error) {
	opts := []di.Option{
		di.WithSettingsPath(lookupString(c, "settings-path")),
		di.WithBinary(lookupString(c, "launcher")),
		di.WithParamsFile(lookupString(c, "params-file")),
		di.WithTokenSecret(lookupString(c, "token-secret")),
		di.WithDryRun(lookupBool(c, "dry-run")),
	}
	return di.New(ctx, opts...)
}

// flagContext returns the closest context in c's lineage where name was set.
// The launch flags are defined on both the app and the launch command, and
// cli only reads the nearest definition.
func flagContext(c *cli.Context, name string) *cli.Context {
	for _, ctx := range c.Lineage() {
		if ctx.IsSet(name) {
			return ctx
		}
	}
	return c
}

func lookupString(c *cli.Context, name string) string {
	return flagContext(c, name).String(name)
}

func lookupBool(c *cli.Context, name string) bool {
	return flagContext(c, name).Bool(name)
}
