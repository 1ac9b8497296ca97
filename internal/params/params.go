// Package params builds the parameters document handed to the pipeline
// launcher. The document is fixed for a given release of this tool.
package params

import (
	"fmt"
	"os"
	"strings"

	errs "github.com/openproblems-bio/pipeline-launcher/internal/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultInputStates = "s3://openproblems-data/resources/task_batch_integration/datasets/**/state.yaml"
	DefaultRenameKeys  = "input_dataset:output_dataset;input_solution:output_solution"
	DefaultOutputState = "state.yaml"
	DefaultPublishDir  = "s3://openproblems-data/resources/task_batch_integration/datasets/"

	// DefaultPath is where the document is written before launch.
	DefaultPath = "/tmp/params.yaml"
)

// Document is the launch parameters payload consumed by the remote pipeline
type Document struct {
	InputStates string `yaml:"input_states"` // glob over state files in the bucket
	RenameKeys  string `yaml:"rename_keys"`  // old:new pairs separated by ;
	OutputState string `yaml:"output_state"` // file name of the emitted state
	PublishDir  string `yaml:"publish_dir"`  // bucket prefix results are published to
}

// Default returns the document used for every launch
func Default() Document {
	return Document{
		InputStates: DefaultInputStates,
		RenameKeys:  DefaultRenameKeys,
		OutputState: DefaultOutputState,
		PublishDir:  DefaultPublishDir,
	}
}

// Validate checks that every key is populated and well formed
func (d Document) Validate() error {
	fields := []struct {
		key   string
		value string
	}{
		{"input_states", d.InputStates},
		{"rename_keys", d.RenameKeys},
		{"output_state", d.OutputState},
		{"publish_dir", d.PublishDir},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is empty", errs.ErrInvalidParams, f.key)
		}
	}

	if !strings.HasPrefix(d.InputStates, "s3://") {
		return fmt.Errorf("%w: input_states must be an s3:// uri, got %q", errs.ErrInvalidParams, d.InputStates)
	}
	if !strings.HasPrefix(d.PublishDir, "s3://") {
		return fmt.Errorf("%w: publish_dir must be an s3:// uri, got %q", errs.ErrInvalidParams, d.PublishDir)
	}
	if strings.Contains(d.OutputState, "/") {
		return fmt.Errorf("%w: output_state must be a file name, got %q", errs.ErrInvalidParams, d.OutputState)
	}

	if _, err := ParseRenameRule(d.RenameKeys); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrInvalidParams, err)
	}

	return nil
}

// Marshal renders the document as YAML
func (d Document) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params document: %w", err)
	}
	return data, nil
}

// Write validates the document and writes it to path, replacing any existing content.
func (d Document) Write(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}

	data, err := d.Marshal()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write params file %s: %w", path, err)
	}
	return nil
}

// Read loads a document previously written with Write
func Read(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read params file %s: %w", path, err)
	}

	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Document{}, fmt.Errorf("failed to unmarshal params file %s: %w", path, err)
	}
	return d, nil
}
