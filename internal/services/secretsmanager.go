package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
)

// TokenEnvVar is the variable the launcher CLI reads its access token from
const TokenEnvVar = "TOWER_ACCESS_TOKEN"

// SecretsAPI is the subset of the Secrets Manager client used here
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type SecretsManagerService struct {
	client SecretsAPI
}

// accessTokenSecret is the JSON form of a stored launcher token
type accessTokenSecret struct {
	AccessToken      string `json:"access_token"`
	TowerAccessToken string `json:"tower_access_token"`
}

func NewSecretsManagerService(client SecretsAPI) *SecretsManagerService {
	return &SecretsManagerService{
		client: client,
	}
}

// GetSecret retrieves a secret value by id from AWS Secrets Manager
func (s *SecretsManagerService) GetSecret(ctx context.Context, secretID string) (string, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", secretID, err)
	}

	if result.SecretString == nil {
		return "", fmt.Errorf("%w: %s", errs.ErrSecretEmpty, secretID)
	}

	return *result.SecretString, nil
}

// GetAccessToken retrieves the launcher access token.
// The secret may hold the raw token or a JSON object with access_token or tower_access_token.
func (s *SecretsManagerService) GetAccessToken(ctx context.Context, secretID string) (string, error) {
	value, err := s.GetSecret(ctx, secretID)
	if err != nil {
		return "", err
	}

	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "{") {
		var secret accessTokenSecret
		if err := json.Unmarshal([]byte(value), &secret); err != nil {
			return "", fmt.Errorf("failed to unmarshal access token secret: %w", err)
		}
		value = secret.TowerAccessToken
		if value == "" {
			value = secret.AccessToken
		}
	}

	if value == "" {
		return "", fmt.Errorf("%w: %s has no access token", errs.ErrSecretEmpty, secretID)
	}

	return value, nil
}
