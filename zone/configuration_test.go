package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NormalizesBlankZones(t *testing.T) {
	cfg := New("bottle", "", "  ", "cup")

	assert.Equal(t, "bottle", cfg.Left)
	assert.Equal(t, Empty, cfg.Right)
	assert.Equal(t, Empty, cfg.Top)
	assert.Equal(t, "cup", cfg.Bottom)
}

func TestEquals_Symmetry(t *testing.T) {
	tests := []struct {
		name string
		a, b Configuration
		want bool
	}{
		{
			name: "identical assignments",
			a:    New("bottle", "cup", "", ""),
			b:    New("bottle", "cup", "", ""),
			want: true,
		},
		{
			name: "blank equals explicit empty",
			a:    New("bottle", "", "", ""),
			b:    New("bottle", Empty, Empty, Empty),
			want: true,
		},
		{
			name: "one zone differs",
			a:    New("bottle", "cup", "", ""),
			b:    New("bottle", "mug", "", ""),
			want: false,
		},
		{
			name: "case sensitive",
			a:    New("Bottle", "", "", ""),
			b:    New("bottle", "", "", ""),
			want: false,
		},
		{
			name: "empty is not a wildcard",
			a:    New("", "", "", ""),
			b:    New("bottle", "", "", ""),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Equals(tt.b))
			assert.Equal(t, tt.want, tt.b.Equals(tt.a), "equality must be symmetric")
		})
	}
}

func TestEquals_Reflexive(t *testing.T) {
	cfg := New("bottle", "cup", "scissors", "keyboard")
	assert.True(t, cfg.Equals(cfg))
}

func TestFromMap(t *testing.T) {
	cfg, err := FromMap(map[string]string{"left": "bottle", "top": "scissors"})
	require.NoError(t, err)

	assert.Equal(t, "bottle", cfg.Left)
	assert.Equal(t, "scissors", cfg.Top)
	assert.Equal(t, Empty, cfg.Right)
	assert.Equal(t, Empty, cfg.Bottom)
}

func TestFromMap_UnknownZone(t *testing.T) {
	_, err := FromMap(map[string]string{"center": "bottle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown zone")
}

func TestDiff(t *testing.T) {
	expected := New("bottle", "cup", "", "")
	actual := New("bottle", "mug", "scissors", "")

	mismatches := expected.Diff(actual)
	require.Len(t, mismatches, 2)

	assert.Equal(t, Mismatch{Zone: "right", Expected: "cup", Actual: "mug"}, mismatches[0])
	assert.Equal(t, Mismatch{Zone: "top", Expected: Empty, Actual: "scissors"}, mismatches[1])
}

func TestDiff_EqualConfigurations(t *testing.T) {
	cfg := New("bottle", "", "", "")
	assert.Empty(t, cfg.Diff(cfg))
}

func TestString_CanonicalOrder(t *testing.T) {
	cfg := New("bottle", "", "scissors", "")
	assert.Equal(t, "left=bottle right=empty top=scissors bottom=empty", cfg.String())
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Blank().IsEmpty())
	assert.True(t, New("", "", "", "").IsEmpty())
	assert.False(t, New("bottle", "", "", "").IsEmpty())
}

func TestAssignments_Copy(t *testing.T) {
	cfg := New("bottle", "", "", "")
	m := cfg.Assignments()
	m["left"] = "mug"

	assert.Equal(t, "bottle", cfg.Left, "mutating the map must not alias the configuration")
}
