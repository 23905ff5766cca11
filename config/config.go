package config

import (
	"github.com/pkg/errors"

	"github.com/securefab/traincore/procedure"
	"github.com/securefab/traincore/step"
	"github.com/securefab/traincore/zone"
)

const (
	// APIVersion is the definition format version this build understands.
	APIVersion = "training.securefab.io/v1alpha1"
	// KindTrainingProcedure is the only definition kind.
	KindTrainingProcedure = "TrainingProcedure"
)

// ProcedureConfig is the top-level structure of a procedure definition file.
type ProcedureConfig struct {
	APIVersion string        `yaml:"apiVersion"`
	Kind       string        `yaml:"kind"`
	Metadata   MetadataSpec  `yaml:"metadata"`
	Spec       ProcedureSpec `yaml:"spec"`
}

// MetadataSpec names and describes the procedure.
type MetadataSpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// ProcedureSpec holds the steps and run options.
type ProcedureSpec struct {
	Options OptionsSpec `yaml:"options,omitempty"`
	Steps   []StepSpec  `yaml:"steps"`
}

// OptionsSpec configures how a run of the procedure behaves.
type OptionsSpec struct {
	// AdvancePolicy: "complete", "stay" or "wrap" (what GoToNextStep does at
	// the last step). Defaults to "complete".
	AdvancePolicy string `yaml:"advancePolicy,omitempty"`
	// AutoAdvance moves to the next step on a successful validation.
	// Pointer to distinguish "unset" (default true) from explicit false.
	AutoAdvance *bool `yaml:"autoAdvance,omitempty"`
	// StabilityThreshold is how many consecutive identical detections a
	// session requires before validating. Defaults to 3.
	StabilityThreshold int `yaml:"stabilityThreshold,omitempty"`
}

// StepSpec is one procedure stage as written in YAML. Expected maps zone
// names (left/right/top/bottom) to object names; omitted zones mean empty.
type StepSpec struct {
	ID       int               `yaml:"id"`
	Title    string            `yaml:"title"`
	Body     string            `yaml:"body,omitempty"`
	Expected map[string]string `yaml:"expected,omitempty"`
}

// BuildSteps converts the step specs into engine steps, resolving expected
// zone maps into configurations.
func (c *ProcedureConfig) BuildSteps() ([]step.Step, error) {
	steps := make([]step.Step, 0, len(c.Spec.Steps))
	for i, spec := range c.Spec.Steps {
		expected, err := zone.FromMap(spec.Expected)
		if err != nil {
			return nil, errors.Wrapf(err, "step at position %d (id %d)", i, spec.ID)
		}
		steps = append(steps, step.Step{
			ID:       spec.ID,
			Title:    spec.Title,
			Body:     spec.Body,
			Expected: expected,
		})
	}
	return steps, nil
}

// BuildManager constructs a procedure.Manager from the definition, applying
// the definition's options on top of any extra opts the caller provides.
func (c *ProcedureConfig) BuildManager(extra ...procedure.Option) (*procedure.Manager, error) {
	steps, err := c.BuildSteps()
	if err != nil {
		return nil, err
	}

	policy, err := procedure.ParseAdvancePolicy(c.Spec.Options.AdvancePolicy)
	if err != nil {
		return nil, errors.Wrapf(err, "procedure %q", c.Metadata.Name)
	}

	opts := []procedure.Option{procedure.WithAdvancePolicy(policy)}
	if c.Spec.Options.AutoAdvance != nil {
		opts = append(opts, procedure.WithAutoAdvance(*c.Spec.Options.AutoAdvance))
	}
	opts = append(opts, extra...)

	return procedure.New(c.Metadata.Name, steps, opts...)
}
