package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProcedureYAML = `
apiVersion: training.securefab.io/v1alpha1
kind: TrainingProcedure
metadata:
  name: secure-fab-demo
  description: Object placement walkthrough for the SecureFab exercise.
spec:
  options:
    advancePolicy: stay
    autoAdvance: false
    stabilityThreshold: 5
  steps:
    - id: 1
      title: Bottle placement
      body: Place the {{.left}} in the left zone.
      expected:
        left: bottle
    - id: 2
      title: Cup placement
      expected:
        right: cup
    - id: 3
      title: Scissors placement
      expected:
        top: scissors
`

func writeTempDefinition(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "procedure.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeTempDefinition(t, sampleProcedureYAML)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, APIVersion, cfg.APIVersion)
	assert.Equal(t, "secure-fab-demo", cfg.Metadata.Name)
	assert.Equal(t, "stay", cfg.Spec.Options.AdvancePolicy)
	require.NotNil(t, cfg.Spec.Options.AutoAdvance)
	assert.False(t, *cfg.Spec.Options.AutoAdvance)
	assert.Equal(t, 5, cfg.Spec.Options.StabilityThreshold)
	require.Len(t, cfg.Spec.Steps, 3)
	assert.Equal(t, "bottle", cfg.Spec.Steps[0].Expected["left"])
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader("/nonexistent/procedure.yaml").Load()
	assert.Error(t, err)

	_, err = NewLoader("").Load()
	assert.Error(t, err)
}

func TestLoader_EmptyFile(t *testing.T) {
	path := writeTempDefinition(t, "")
	_, err := NewLoader(path).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is empty")
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "missing apiVersion",
			yaml:    "kind: TrainingProcedure\nmetadata: {name: x}\nspec:\n  steps: [{id: 1, title: t}]\n",
			wantErr: "apiVersion",
		},
		{
			name:    "wrong kind",
			yaml:    "apiVersion: v1\nkind: Cluster\nmetadata: {name: x}\nspec:\n  steps: [{id: 1, title: t}]\n",
			wantErr: "kind",
		},
		{
			name:    "missing name",
			yaml:    "apiVersion: v1\nkind: TrainingProcedure\nspec:\n  steps: [{id: 1, title: t}]\n",
			wantErr: "metadata.name",
		},
		{
			name:    "no steps",
			yaml:    "apiVersion: v1\nkind: TrainingProcedure\nmetadata: {name: x}\nspec: {}\n",
			wantErr: "at least one step",
		},
		{
			name:    "duplicate ids",
			yaml:    "apiVersion: v1\nkind: TrainingProcedure\nmetadata: {name: x}\nspec:\n  steps: [{id: 1, title: a}, {id: 1, title: b}]\n",
			wantErr: "duplicate step id",
		},
		{
			name:    "untitled step",
			yaml:    "apiVersion: v1\nkind: TrainingProcedure\nmetadata: {name: x}\nspec:\n  steps: [{id: 1}]\n",
			wantErr: "no title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
apiVersion: v1
kind: TrainingProcedure
metadata:
  name: minimal
spec:
  steps:
    - title: First
    - title: Second
`))
	require.NoError(t, err)

	assert.Equal(t, DefaultAdvancePolicy, cfg.Spec.Options.AdvancePolicy)
	require.NotNil(t, cfg.Spec.Options.AutoAdvance)
	assert.True(t, *cfg.Spec.Options.AutoAdvance)
	assert.Equal(t, 3, cfg.Spec.Options.StabilityThreshold)

	// Ids defaulted to one-based positions.
	assert.Equal(t, 1, cfg.Spec.Steps[0].ID)
	assert.Equal(t, 2, cfg.Spec.Steps[1].ID)
}

func TestBuildSteps(t *testing.T) {
	cfg, err := Parse([]byte(sampleProcedureYAML))
	require.NoError(t, err)

	steps, err := cfg.BuildSteps()
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "bottle", steps[0].Expected.Left)
	assert.True(t, steps[1].Expected.Equals(steps[1].Expected.Normalized()))
}

func TestBuildSteps_UnknownZone(t *testing.T) {
	cfg, err := Parse([]byte(`
apiVersion: v1
kind: TrainingProcedure
metadata: {name: x}
spec:
  steps:
    - id: 1
      title: Bad zone
      expected:
        center: bottle
`))
	require.NoError(t, err)

	_, err = cfg.BuildSteps()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown zone")
}

func TestBuildManager(t *testing.T) {
	cfg, err := Parse([]byte(sampleProcedureYAML))
	require.NoError(t, err)

	m, err := cfg.BuildManager()
	require.NoError(t, err)
	assert.Equal(t, "secure-fab-demo", m.Name())
	assert.Equal(t, 3, m.TotalSteps())

	// autoAdvance: false from the definition must hold.
	report := m.ValidateConfiguration(m.CurrentStep().Expected)
	assert.True(t, report.Matched())
	assert.Equal(t, 0, m.CurrentStepIndex())
}

func TestBuildManager_BadPolicy(t *testing.T) {
	cfg, err := Parse([]byte(sampleProcedureYAML))
	require.NoError(t, err)
	cfg.Spec.Options.AdvancePolicy = "sideways"

	_, err = cfg.BuildManager()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "advance policy")
}
