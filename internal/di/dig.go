// Package di provides a lightweight wrapper around uber's dig dependency injection framework.
// It simplifies container setup and provides type-safe dependency retrieval with generics.
package di

import (
	"context"

	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"go.uber.org/dig"
)

// Container defines a dependency injection container based on uber's dig.
// This interface allows for easy testing and mocking of the DI container.
type Container interface {
	// Invoke executes a function, injecting its dependencies from the container.
	Invoke(function any, opts ...dig.InvokeOption) error

	// Provide registers a constructor function in the container.
	Provide(constructor any, opts ...dig.ProvideOption) error

	// Decorate replaces a value already provided to the container.
	Decorate(decorator any, opts ...dig.DecorateOption) error

	// Scope creates a scoped sub-container with its own set of values.
	Scope(name string, opts ...dig.ScopeOption) *dig.Scope
}

// MustGet returns an instance constructed via dependency injection or panics.
// This is a convenience function for retrieving a dependency from the container
// when you're certain it exists. If the dependency cannot be resolved, it will panic.
//
// Example:
//
//	l := MustGet[*launcher.Launcher](container)
func MustGet[T any](container Container) (want T) {
	callback := func(got T) {
		want = got
	}
	if err := container.Invoke(callback); err != nil {
		panic(err)
	}
	return want
}

// Get returns an instance constructed via dependency injection
func Get[T any](container Container) (want T, err error) {
	err = container.Invoke(func(got T) {
		want = got
	})
	return want, err
}

// New creates a new dependency injection container. The context is registered
// so providers can log via zerolog.Ctx. Constructors only run when something
// that depends on them is requested, so AWS configuration is loaded only for
// commands that need it.
//
// Example:
//
//	container, err := New(ctx,
//	    WithDryRun(true),
//	    WithProviders(func() services.SettingsStore { return store }),
//	)
func New(ctx context.Context, opts ...Option) (Container, error) {
	// Build options
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.binary == "" {
		o.binary = launcher.DefaultBinary
	}
	if o.paramsFile == "" {
		o.paramsFile = params.DefaultPath
	}

	// Create dig container
	container := dig.New()
	values := []any{
		func() context.Context { return ctx },
		func() SettingsPath { return o.settingsPath },
		func() TokenSecret { return o.tokenSecret },
		func() Binary { return o.binary },
		func() ParamsFile { return o.paramsFile },
		func() DryRun { return o.dryRun },
	}
	for _, value := range values {
		if err := container.Provide(value); err != nil {
			return nil, err
		}
	}

	// Register all provided constructors
	for _, provider := range core {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	// Register all provided constructors
	for _, provider := range o.providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	for _, decorator := range o.decorators {
		if err := container.Decorate(decorator); err != nil {
			return nil, err
		}
	}

	return container, nil
}

var core = []any{
	ProvideAWSConfigLoader,
	ProvideAWSConfig,
	ProvideS3Client,
	ProvideSSMClient,
	ProvideSecretsManagerClient,
	ProvideSTSClient,
	ProvideSettingsStore,
	ProvideAccessToken,
	ProvideInputChecker,
	ProvideIdentityService,
	ProvidePreflight,
	ProvideDocument,
	ProvideSettings,
	ProvideLauncher,
}
