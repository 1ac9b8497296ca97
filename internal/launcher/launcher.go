// Package launcher triggers a remote pipeline run through the workflow
// launch CLI. A run resolves the repository root, writes the params
// document and invokes the launcher once. Any failure aborts the run.
package launcher

import (
	"context"
	"fmt"
	"os"
	"strings"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/openproblems-bio/pipeline-launcher/internal/repo"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"
)

// RootResolver finds the repository root containing a directory
type RootResolver interface {
	Root(dir string) (string, error)
}

// Launcher performs a single launch
type Launcher struct {
	settings Settings
	document params.Document
	resolver RootResolver
	runner   CommandRunner
	env      []string
	dryRun   bool
	getwd    func() (string, error)
	chdir    func(string) error
}

// Option configures a Launcher
type Option func(*Launcher)

// WithResolver replaces the git based root lookup
func WithResolver(resolver RootResolver) Option {
	return func(l *Launcher) {
		l.resolver = resolver
	}
}

// WithRunner replaces the os/exec runner
func WithRunner(runner CommandRunner) Option {
	return func(l *Launcher) {
		l.runner = runner
	}
}

// WithEnv adds KEY=VALUE entries to the launcher's environment
func WithEnv(env ...string) Option {
	return func(l *Launcher) {
		l.env = append(l.env, env...)
	}
}

// WithDryRun writes the params document but skips the launcher invocation
func WithDryRun(dryRun bool) Option {
	return func(l *Launcher) {
		l.dryRun = dryRun
	}
}

// WithWorkingDir replaces the functions used to read and change the working directory
func WithWorkingDir(getwd func() (string, error), chdir func(string) error) Option {
	return func(l *Launcher) {
		l.getwd = getwd
		l.chdir = chdir
	}
}

// New creates a Launcher for the given settings and document
func New(settings Settings, document params.Document, opts ...Option) *Launcher {
	l := &Launcher{
		settings: settings,
		document: document,
		resolver: repo.Resolver{},
		runner:   NewExecRunner(),
		getwd:    os.Getwd,
		chdir:    os.Chdir,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run resolves the repository root, changes into it, writes the params
// document and invokes the launcher. It returns *ExitError when the
// launcher exits non-zero.
func (l *Launcher) Run(ctx context.Context) error {
	launchID := ksuid.New().String()
	logger := zerolog.Ctx(ctx).With().Str("launch_id", launchID).Logger()

	if err := l.settings.Validate(); err != nil {
		return err
	}

	wd, err := l.getwd()
	if err != nil {
		return fmt.Errorf("failed to read working directory: %w", err)
	}

	root, err := l.resolver.Root(wd)
	if err != nil {
		return fmt.Errorf("failed to resolve repository root: %w", err)
	}

	if err := l.chdir(root); err != nil {
		return fmt.Errorf("failed to change directory to %s: %w", root, err)
	}
	logger.Debug().Str("from", wd).Str("root", root).Msg("Changed to repository root")

	if _, err := os.Stat(l.settings.Config); err != nil {
		logger.Warn().Err(err).Str("config", l.settings.Config).Msg("Launcher config not found under repository root")
	}

	if err := l.document.Write(l.settings.ParamsFile); err != nil {
		return err
	}

	rule, err := params.ParseRenameRule(l.document.RenameKeys)
	if err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidParams, err)
	}
	logger.Info().
		Str("path", l.settings.ParamsFile).
		Stringer("rename_keys", rule).
		Msg("Wrote params file")
	for _, rename := range rule {
		logger.Debug().Str("from", rename.From).Str("to", rename.To).Msg("State key rename")
	}

	args := l.settings.Args()
	if l.dryRun {
		logger.Info().
			Str("binary", l.settings.Binary).
			Str("args", strings.Join(args, " ")).
			Msg("Dry run, skipping launch")
		return nil
	}

	logger.Info().
		Str("pipeline", l.settings.PipelineURL).
		Str("revision", l.settings.Revision).
		Str("workspace", l.settings.Workspace).
		Str("compute_env", l.settings.ComputeEnv).
		Msg("Launching pipeline")

	if err := l.runner.Run(ctx, l.settings.Binary, args, l.env); err != nil {
		return err
	}

	logger.Info().Msg("Launch submitted")
	return nil
}
