package di

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/openproblems-bio/pipeline-launcher/internal/services"
)

// AWSConfigLoader loads the default AWS config at most once
type AWSConfigLoader func() (aws.Config, error)

func ProvideAWSConfigLoader(ctx context.Context) AWSConfigLoader {
	return sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})
}

func ProvideAWSConfig(load AWSConfigLoader) (aws.Config, error) {
	return load()
}

func ProvideS3Client(config aws.Config) *s3.Client {
	return s3.NewFromConfig(config)
}

func ProvideSTSClient(config aws.Config) *sts.Client {
	return sts.NewFromConfig(config)
}

// ProvideSSMClient returns a constructor rather than a client so the AWS
// config is only loaded when a settings path is configured.
func ProvideSSMClient(load AWSConfigLoader) func() (*ssm.Client, error) {
	return func() (*ssm.Client, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		return ssm.NewFromConfig(cfg), nil
	}
}

// ProvideSecretsManagerClient returns a constructor for the same reason as ProvideSSMClient.
func ProvideSecretsManagerClient(load AWSConfigLoader) func() (*secretsmanager.Client, error) {
	return func() (*secretsmanager.Client, error) {
		cfg, err := load()
		if err != nil {
			return nil, err
		}
		return secretsmanager.NewFromConfig(cfg), nil
	}
}

func ProvideInputChecker(client *s3.Client) *services.InputChecker {
	return services.NewInputChecker(client)
}

func ProvideIdentityService(client *sts.Client) *services.IdentityService {
	return services.NewIdentityService(client)
}

func ProvidePreflight(identity *services.IdentityService, inputs *services.InputChecker) *services.Preflight {
	return services.NewPreflight(identity, inputs)
}
