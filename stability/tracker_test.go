package stability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/securefab/traincore/zone"
)

func TestObserve_StreakReachesThreshold(t *testing.T) {
	tr := NewTracker(3)
	cfg := zone.New("bottle", "", "", "")

	assert.False(t, tr.Observe(cfg))
	assert.False(t, tr.Observe(cfg))
	assert.True(t, tr.Observe(cfg))
	assert.Equal(t, 3, tr.Streak())

	// Stays stable while the configuration holds.
	assert.True(t, tr.Observe(cfg))
	assert.True(t, tr.Stable())
}

func TestObserve_ChangeRestartsStreak(t *testing.T) {
	tr := NewTracker(3)
	bottle := zone.New("bottle", "", "", "")
	cup := zone.New("", "cup", "", "")

	tr.Observe(bottle)
	tr.Observe(bottle)
	assert.False(t, tr.Observe(cup), "a changed configuration must restart the streak")
	assert.Equal(t, 1, tr.Streak())

	current, ok := tr.Current()
	assert.True(t, ok)
	assert.True(t, current.Equals(cup))
}

func TestObserve_EquivalentNormalizedConfigsExtendStreak(t *testing.T) {
	tr := NewTracker(2)

	tr.Observe(zone.New("bottle", "", "", ""))
	assert.True(t, tr.Observe(zone.New("bottle", zone.Empty, zone.Empty, zone.Empty)))
}

func TestThresholdOne_ImmediatelyStable(t *testing.T) {
	tr := NewTracker(1)
	assert.True(t, tr.Observe(zone.Blank()))
}

func TestInvalidThreshold_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewTracker(0).Threshold())
	assert.Equal(t, DefaultThreshold, NewTracker(-5).Threshold())
}

func TestReset(t *testing.T) {
	tr := NewTracker(2)
	cfg := zone.New("bottle", "", "", "")

	tr.Observe(cfg)
	tr.Observe(cfg)
	assert.True(t, tr.Stable())

	tr.Reset()
	assert.Equal(t, 0, tr.Streak())
	assert.False(t, tr.Stable())
	_, ok := tr.Current()
	assert.False(t, ok)

	assert.False(t, tr.Observe(cfg), "streak restarts after reset")
}
