package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/openproblems-bio/pipeline-launcher/internal/launcher"
)

// SettingsStore supplies overrides for the launch settings
type SettingsStore interface {
	// GetOverrides returns launch setting overrides keyed by launcher.Key* names
	GetOverrides(ctx context.Context) (map[string]string, error)
}

// SSMSettingsStore reads overrides from AWS Systems Manager Parameter Store.
// Parameters live under {path}/workspace, {path}/compute-env and {path}/revision.
type SSMSettingsStore struct {
	client ssm.GetParametersByPathAPIClient
	path   string
	mu     sync.RWMutex
	cache  map[string]string
}

// NewSSMSettingsStore creates a new SSM-backed settings store rooted at path
func NewSSMSettingsStore(client ssm.GetParametersByPathAPIClient, path string) *SSMSettingsStore {
	return &SSMSettingsStore{
		client: client,
		path:   strings.TrimSuffix(path, "/"),
	}
}

// GetOverrides loads all parameters below the store's path. Results are cached.
func (s *SSMSettingsStore) GetOverrides(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	if s.cache != nil {
		defer s.mu.RUnlock()
		return copyMap(s.cache), nil
	}
	s.mu.RUnlock()

	params := make(map[string]string)
	paginator := ssm.NewGetParametersByPathPaginator(s.client, &ssm.GetParametersByPathInput{
		Path:           aws.String(s.path),
		Recursive:      aws.Bool(false),
		WithDecryption: aws.Bool(true),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get parameters by path %s: %w", s.path, err)
		}
		for _, param := range page.Parameters {
			if param.Name == nil || param.Value == nil {
				continue
			}
			params[*param.Name] = *param.Value
		}
	}

	overrides := map[string]string{}
	for _, key := range []string{launcher.KeyWorkspace, launcher.KeyComputeEnv, launcher.KeyRevision} {
		if v, ok := params[s.path+"/"+key]; ok {
			overrides[key] = v
		}
	}

	s.mu.Lock()
	s.cache = overrides
	s.mu.Unlock()

	return copyMap(overrides), nil
}

// EnvSettingsStore reads overrides from environment variables.
// Used when no parameter path is configured.
type EnvSettingsStore struct {
	lookup func(string) string
}

// NewEnvSettingsStore creates a new environment variable-backed settings store
func NewEnvSettingsStore() *EnvSettingsStore {
	return &EnvSettingsStore{lookup: os.Getenv}
}

// GetOverrides reads LAUNCH_WORKSPACE, LAUNCH_COMPUTE_ENV and LAUNCH_REVISION
func (e *EnvSettingsStore) GetOverrides(ctx context.Context) (map[string]string, error) {
	overrides := map[string]string{}
	vars := map[string]string{
		launcher.KeyWorkspace:  "LAUNCH_WORKSPACE",
		launcher.KeyComputeEnv: "LAUNCH_COMPUTE_ENV",
		launcher.KeyRevision:   "LAUNCH_REVISION",
	}
	for key, name := range vars {
		if v := e.lookup(name); v != "" {
			overrides[key] = v
		}
	}
	return overrides, nil
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
