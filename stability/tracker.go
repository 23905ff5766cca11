// Package stability gates noisy detection output: a zone configuration only
// counts as observed once it has been reported unchanged for a configurable
// number of consecutive observations. The SecureFab headset feeds one
// detection result per frame; without this gate a half-placed object would
// trigger validation attempts on every flicker.
package stability

import (
	"github.com/securefab/traincore/zone"
)

// DefaultThreshold is the number of consecutive identical observations
// required before a configuration is considered stable.
const DefaultThreshold = 3

// Tracker counts consecutive identical configuration observations. It is a
// single-caller component like the procedure manager; the host serializes
// Observe calls.
type Tracker struct {
	threshold int
	last      zone.Configuration
	streak    int
}

// NewTracker creates a Tracker requiring threshold consecutive identical
// observations. Thresholds below 1 fall back to DefaultThreshold.
func NewTracker(threshold int) *Tracker {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

// Threshold returns the configured stability threshold.
func (t *Tracker) Threshold() int { return t.threshold }

// Streak returns how many consecutive times the latest configuration has
// been observed.
func (t *Tracker) Streak() int { return t.streak }

// Observe records one detection result and reports whether the configuration
// has now been seen threshold consecutive times. A differing observation
// restarts the streak at 1. Once stable, further identical observations keep
// reporting true until the configuration changes or Reset is called.
func (t *Tracker) Observe(cfg zone.Configuration) bool {
	cfg = cfg.Normalized()
	if t.streak > 0 && cfg.Equals(t.last) {
		t.streak++
	} else {
		t.last = cfg
		t.streak = 1
	}
	return t.streak >= t.threshold
}

// Stable reports whether the current streak meets the threshold, without
// recording an observation.
func (t *Tracker) Stable() bool {
	return t.streak >= t.threshold
}

// Current returns the most recently observed configuration and whether any
// observation has been recorded yet.
func (t *Tracker) Current() (zone.Configuration, bool) {
	return t.last, t.streak > 0
}

// Reset clears the streak, e.g. after a step transition so the learner's
// previous placement cannot instantly satisfy the next step.
func (t *Tracker) Reset() {
	t.last = zone.Configuration{}
	t.streak = 0
}
