package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Loader handles loading and initial parsing of a ProcedureConfig from a file.
type Loader struct {
	filePath string
}

// NewLoader creates a new definition loader for the given file path.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads the definition file, unmarshals it into ProcedureConfig, applies
// defaults and performs structural validation.
func (l *Loader) Load() (*ProcedureConfig, error) {
	if l.filePath == "" {
		return nil, fmt.Errorf("procedure definition file path is empty")
	}
	content, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read procedure definition '%s': %w", l.filePath, err)
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("procedure definition '%s' is empty", l.filePath)
	}

	cfg, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("procedure definition '%s': %w", l.filePath, err)
	}
	return cfg, nil
}

// Parse unmarshals and validates definition bytes. Defaults are applied
// before validation.
func Parse(content []byte) (*ProcedureConfig, error) {
	var cfg ProcedureConfig
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	SetDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *ProcedureConfig) error {
	if cfg.APIVersion == "" {
		return fmt.Errorf("validation failed: apiVersion is a required field")
	}
	if cfg.Kind != KindTrainingProcedure {
		return fmt.Errorf("validation failed: kind must be '%s', got '%s'", KindTrainingProcedure, cfg.Kind)
	}
	if cfg.Metadata.Name == "" {
		return fmt.Errorf("validation failed: metadata.name is a required field")
	}
	if len(cfg.Spec.Steps) == 0 {
		return fmt.Errorf("validation failed: spec.steps must contain at least one step")
	}

	seen := make(map[int]bool, len(cfg.Spec.Steps))
	for i, s := range cfg.Spec.Steps {
		if s.Title == "" {
			return fmt.Errorf("validation failed: step at position %d (id %d) has no title", i, s.ID)
		}
		if s.ID < 0 {
			return fmt.Errorf("validation failed: step at position %d has negative id %d", i, s.ID)
		}
		if seen[s.ID] {
			return fmt.Errorf("validation failed: duplicate step id %d", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}
