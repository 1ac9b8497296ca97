package launcher

import (
	"fmt"
	"strings"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
	"github.com/openproblems-bio/pipeline-launcher/internal/params"
)

const (
	DefaultBinary      = "tw"
	DefaultPipelineURL = "https://github.com/openproblems-bio/task_batch_integration.git"
	DefaultRevision    = "build/main"
	DefaultMainScript  = "target/nextflow/workflows/process_datasets/main.nf"
	DefaultWorkspace   = "53907369739130"
	DefaultComputeEnv  = "6TeIFgV5OY4pJCk8I0bfOh"
	DefaultEntryName   = "auto"
	DefaultConfig      = "common/nextflow_helpers/labels_tw.config"
)

// DefaultLabels are attached to every launch
var DefaultLabels = []string{"task_batch_integration", "process_datasets"}

// Override keys understood by Settings.Apply
const (
	KeyWorkspace  = "workspace"
	KeyComputeEnv = "compute-env"
	KeyRevision   = "revision"
)

// Settings holds the values passed to the launcher binary
type Settings struct {
	Binary      string   // executable looked up on PATH
	PipelineURL string   // git url of the pipeline repository
	Revision    string   // branch or tag to launch
	MainScript  string   // entry script inside the pipeline repository
	Workspace   string   // workspace id
	ComputeEnv  string   // compute environment id
	ParamsFile  string   // path of the params document
	EntryName   string   // workflow entry name
	Config      string   // labels config, relative to the repository root
	Labels      []string // joined with commas
}

// DefaultSettings returns the settings used when nothing is overridden
func DefaultSettings() Settings {
	return Settings{
		Binary:      DefaultBinary,
		PipelineURL: DefaultPipelineURL,
		Revision:    DefaultRevision,
		MainScript:  DefaultMainScript,
		Workspace:   DefaultWorkspace,
		ComputeEnv:  DefaultComputeEnv,
		ParamsFile:  params.DefaultPath,
		EntryName:   DefaultEntryName,
		Config:      DefaultConfig,
		Labels:      append([]string(nil), DefaultLabels...),
	}
}

// Args returns the launcher argument vector. Order is significant.
func (s Settings) Args() []string {
	return []string{
		"launch", s.PipelineURL,
		"--revision", s.Revision,
		"--pull-latest",
		"--main-script", s.MainScript,
		"--workspace", s.Workspace,
		"--compute-env", s.ComputeEnv,
		"--params-file", s.ParamsFile,
		"--entry-name", s.EntryName,
		"--config", s.Config,
		"--labels", strings.Join(s.Labels, ","),
	}
}

// Validate rejects settings that would produce an incomplete argument vector
func (s Settings) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"binary", s.Binary},
		{"pipeline url", s.PipelineURL},
		{KeyRevision, s.Revision},
		{"main script", s.MainScript},
		{KeyWorkspace, s.Workspace},
		{KeyComputeEnv, s.ComputeEnv},
		{"params file", s.ParamsFile},
		{"entry name", s.EntryName},
		{"config", s.Config},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return fmt.Errorf("%w: %s is required", errs.ErrInvalidParams, field.name)
		}
	}

	for _, label := range s.Labels {
		if label == "" || strings.Contains(label, ",") {
			return fmt.Errorf("%w: invalid label %q", errs.ErrInvalidParams, label)
		}
	}
	return nil
}

// Apply copies non-empty overrides onto the settings. Unknown keys are an error.
func (s *Settings) Apply(overrides map[string]string) error {
	for key, value := range overrides {
		if value == "" {
			continue
		}
		switch key {
		case KeyWorkspace:
			s.Workspace = value
		case KeyComputeEnv:
			s.ComputeEnv = value
		case KeyRevision:
			s.Revision = value
		default:
			return fmt.Errorf("unknown launch setting %q", key)
		}
	}
	return nil
}
