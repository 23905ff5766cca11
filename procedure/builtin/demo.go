// Package builtin registers the procedures that ship with the engine, so
// hosts without a definition file can resolve them by name through the
// procedure registry.
package builtin

import (
	"fmt"

	"github.com/securefab/traincore/config"
	"github.com/securefab/traincore/procedure"
)

// DemoName is the registry name of the built-in SecureFab walkthrough.
const DemoName = "secure-fab-demo"

// DemoDefinition is the built-in walkthrough as a procedure definition. The
// init command writes this same definition as a starting point for custom
// procedures.
const DemoDefinition = `apiVersion: training.securefab.io/v1alpha1
kind: TrainingProcedure
metadata:
  name: secure-fab-demo
  description: Object placement walkthrough for the SecureFab exercise.
spec:
  options:
    advancePolicy: complete
    autoAdvance: true
    stabilityThreshold: 3
  steps:
    - id: 1
      title: Bottle placement
      body: Place the {{.left}} in the left zone.
      expected:
        left: bottle
    - id: 2
      title: Cup placement
      body: Move the {{.right}} to the right zone; the left zone stays as it is.
      expected:
        left: bottle
        right: cup
    - id: 3
      title: Scissors placement
      body: Finish by putting the {{.top}} in the top zone.
      expected:
        left: bottle
        right: cup
        top: scissors
`

func init() {
	if err := procedure.Register(DemoName, NewDemoManager); err != nil {
		panic(fmt.Sprintf("Failed to register '%s' procedure: %v", DemoName, err))
	}
}

// NewDemoManager builds a fresh manager for the built-in walkthrough.
func NewDemoManager() (*procedure.Manager, error) {
	cfg, err := config.Parse([]byte(DemoDefinition))
	if err != nil {
		return nil, err
	}
	return cfg.BuildManager()
}
