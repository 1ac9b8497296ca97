package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
	"github.com/openproblems-bio/pipeline-launcher/internal/services"
	"github.com/openproblems-bio/pipeline-launcher/internal/utils"
	"github.com/rs/zerolog"
)

// AccessToken is the launcher token exported to the launcher process, if any
type AccessToken string

// ProvideSettingsStore uses SSM Parameter Store when a settings path is set,
// and falls back to environment variables otherwise
func ProvideSettingsStore(ctx context.Context, path SettingsPath, newClient func() (*ssm.Client, error)) (services.SettingsStore, error) {
	logger := zerolog.Ctx(ctx)

	if path == "" {
		logger.Debug().Msg("Using environment variables for launch settings")
		return services.NewEnvSettingsStore(), nil
	}

	client, err := newClient()
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info().Str("path", string(path)).Msg("Using AWS Systems Manager Parameter Store for launch settings")
	return services.NewSSMSettingsStore(client, string(path)), nil
}

// ProvideAccessToken reads the launcher token from Secrets Manager when a secret is configured
func ProvideAccessToken(ctx context.Context, secret TokenSecret, newClient func() (*secretsmanager.Client, error)) (AccessToken, error) {
	if secret == "" {
		return "", nil
	}

	client, err := newClient()
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %w", err)
	}

	token, err := services.NewSecretsManagerService(client).GetAccessToken(ctx, string(secret))
	if err != nil {
		return "", err
	}

	zerolog.Ctx(ctx).Info().Str("secret", string(secret)).Msg("Loaded launcher access token")
	return AccessToken(token), nil
}

func ProvideDocument() params.Document {
	return params.Default()
}

// ProvideSettings applies store overrides on top of the default launch settings
func ProvideSettings(ctx context.Context, store services.SettingsStore, binary Binary, paramsFile ParamsFile) (launcher.Settings, error) {
	settings := launcher.DefaultSettings()
	settings.Binary = string(binary)
	settings.ParamsFile = string(paramsFile)

	overrides, err := store.GetOverrides(ctx)
	if err != nil {
		return launcher.Settings{}, fmt.Errorf("failed to load launch settings: %w", err)
	}
	if err := settings.Apply(overrides); err != nil {
		return launcher.Settings{}, err
	}

	if len(overrides) > 0 {
		zerolog.Ctx(ctx).Info().
			Str("workspace", settings.Workspace).
			Str("compute_env", settings.ComputeEnv).
			Str("revision", settings.Revision).
			Msg("Launch settings overridden")
	}

	return settings, nil
}

func ProvideLauncher(settings launcher.Settings, document params.Document, token AccessToken, dryRun DryRun) *launcher.Launcher {
	env := utils.MergeEnv(map[string]string{
		services.TokenEnvVar: string(token),
	})

	return launcher.New(settings, document,
		launcher.WithEnv(env...),
		launcher.WithDryRun(bool(dryRun)),
	)
}
