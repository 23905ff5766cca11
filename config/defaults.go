package config

import (
	"github.com/securefab/traincore/stability"
)

const (
	// DefaultAdvancePolicy is applied when the definition leaves the
	// last-step behavior unspecified.
	DefaultAdvancePolicy = "complete"
	// DefaultAutoAdvance: successful validation moves to the next step.
	DefaultAutoAdvance = true
)

// SetDefaults fills unset option fields with their defaults. Step ids are
// defaulted to their one-based position when the whole list leaves them at
// zero, matching hand-written short definitions.
func SetDefaults(cfg *ProcedureConfig) {
	if cfg.Spec.Options.AdvancePolicy == "" {
		cfg.Spec.Options.AdvancePolicy = DefaultAdvancePolicy
	}
	if cfg.Spec.Options.AutoAdvance == nil {
		autoAdvance := DefaultAutoAdvance
		cfg.Spec.Options.AutoAdvance = &autoAdvance
	}
	if cfg.Spec.Options.StabilityThreshold <= 0 {
		cfg.Spec.Options.StabilityThreshold = stability.DefaultThreshold
	}

	allZero := true
	for _, s := range cfg.Spec.Steps {
		if s.ID != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		for i := range cfg.Spec.Steps {
			cfg.Spec.Steps[i].ID = i + 1
		}
	}
}
