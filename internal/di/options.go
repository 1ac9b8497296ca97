package di

// SettingsPath is the SSM parameter path holding launch setting overrides
type SettingsPath string

// TokenSecret is the Secrets Manager id of the launcher access token
type TokenSecret string

// Binary is the launcher executable name
type Binary string

// ParamsFile is where the params document is written
type ParamsFile string

// DryRun skips the launcher invocation
type DryRun bool

// Option is a function that configures the dependency injection container.
type Option func(*options)

func WithSettingsPath(path string) Option {
	return func(opts *options) {
		opts.settingsPath = SettingsPath(path)
	}
}

func WithTokenSecret(secretID string) Option {
	return func(opts *options) {
		opts.tokenSecret = TokenSecret(secretID)
	}
}

func WithBinary(binary string) Option {
	return func(opts *options) {
		opts.binary = Binary(binary)
	}
}

func WithParamsFile(path string) Option {
	return func(opts *options) {
		opts.paramsFile = ParamsFile(path)
	}
}

func WithDryRun(dryRun bool) Option {
	return func(opts *options) {
		opts.dryRun = DryRun(dryRun)
	}
}

// WithProviders adds constructor functions to the dependency injection container.
// Each provider should be a constructor function that returns one or more values.
// Providers can declare dependencies as function parameters, which will be
// automatically resolved by the container.
//
// Example:
//
//	WithProviders(
//	    func() services.SettingsStore { return services.NewEnvSettingsStore() },
//	)
func WithProviders(providers ...any) Option {
	return func(opts *options) {
		opts.providers = append(opts.providers, providers...)
	}
}

// WithDecorators replaces already provided values, typically with test doubles.
func WithDecorators(decorators ...any) Option {
	return func(opts *options) {
		opts.decorators = append(opts.decorators, decorators...)
	}
}

type options struct {
	settingsPath SettingsPath
	tokenSecret  TokenSecret
	binary       Binary
	paramsFile   ParamsFile
	dryRun       DryRun
	providers    []any
	decorators   []any
}
