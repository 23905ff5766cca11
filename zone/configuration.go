package zone

import (
	"fmt"
	"strings"

	"github.com/securefab/traincore/common"
)

// Empty is the token representing "no object placed in this zone".
// An absent or blank assignment normalizes to Empty; it is a concrete value,
// never a wildcard, so two configurations only match on a zone when both hold
// Empty or both hold the same object name (case-sensitive).
const Empty = "empty"

// Configuration assigns an object name (or Empty) to each of the four
// placement zones. It is a plain value: copy freely, compare with Equals.
// All constructors normalize blank assignments to Empty, so a zero-valued
// Configuration is not valid input; build one via New, FromMap or Blank.
type Configuration struct {
	Left   string
	Right  string
	Top    string
	Bottom string
}

// Blank returns a Configuration with every zone set to Empty.
func Blank() Configuration {
	return Configuration{Left: Empty, Right: Empty, Top: Empty, Bottom: Empty}
}

// New builds a normalized Configuration from the four zone assignments.
// Blank strings become Empty.
func New(left, right, top, bottom string) Configuration {
	return Configuration{
		Left:   normalize(left),
		Right:  normalize(right),
		Top:    normalize(top),
		Bottom: normalize(bottom),
	}
}

// FromMap builds a Configuration from a zone-name keyed map, e.g.
// {"left": "bottle", "top": "scissors"}. Missing zones become Empty.
// Unknown keys are reported as an error so a typoed zone name does not
// silently turn into an always-failing comparison.
func FromMap(assignments map[string]string) (Configuration, error) {
	cfg := Blank()
	for zoneName, object := range assignments {
		switch zoneName {
		case common.ZoneLeft:
			cfg.Left = normalize(object)
		case common.ZoneRight:
			cfg.Right = normalize(object)
		case common.ZoneTop:
			cfg.Top = normalize(object)
		case common.ZoneBottom:
			cfg.Bottom = normalize(object)
		default:
			return Blank(), fmt.Errorf("unknown zone %q (valid zones: %s)",
				zoneName, strings.Join(common.AllZones, ", "))
		}
	}
	return cfg, nil
}

// normalize maps blank and whitespace-only assignments to Empty. Object
// names are otherwise taken verbatim; comparison is case-sensitive.
func normalize(object string) string {
	if strings.TrimSpace(object) == "" {
		return Empty
	}
	return object
}

// Normalized returns a copy with every blank zone mapped to Empty. Useful
// when a Configuration was assembled field-by-field rather than through a
// constructor.
func (c Configuration) Normalized() Configuration {
	return New(c.Left, c.Right, c.Top, c.Bottom)
}

// Zone returns the assignment for the named zone, or Empty for an unknown
// zone name.
func (c Configuration) Zone(name string) string {
	switch name {
	case common.ZoneLeft:
		return c.Left
	case common.ZoneRight:
		return c.Right
	case common.ZoneTop:
		return c.Top
	case common.ZoneBottom:
		return c.Bottom
	default:
		return Empty
	}
}

// Assignments returns the configuration as a zone-name keyed map. The map is
// freshly allocated; mutating it does not affect the Configuration.
func (c Configuration) Assignments() map[string]string {
	n := c.Normalized()
	return map[string]string{
		common.ZoneLeft:   n.Left,
		common.ZoneRight:  n.Right,
		common.ZoneTop:    n.Top,
		common.ZoneBottom: n.Bottom,
	}
}

// Equals reports field-wise, case-sensitive equality across all four zones.
// Both sides are normalized first, so a blank zone equals an explicit Empty.
func (c Configuration) Equals(other Configuration) bool {
	return c.Normalized() == other.Normalized()
}

// IsEmpty reports whether every zone is Empty.
func (c Configuration) IsEmpty() bool {
	return c.Equals(Blank())
}

// Mismatch describes one zone where two configurations disagree.
type Mismatch struct {
	Zone     string
	Expected string
	Actual   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("%s: expected %q, got %q", m.Zone, m.Expected, m.Actual)
}

// Diff compares c (the expected configuration) against actual and returns one
// Mismatch per disagreeing zone, in canonical zone order. An empty result
// means the configurations are equal.
func (c Configuration) Diff(actual Configuration) []Mismatch {
	expected := c.Normalized()
	got := actual.Normalized()

	var mismatches []Mismatch
	for _, zoneName := range common.AllZones {
		if expected.Zone(zoneName) != got.Zone(zoneName) {
			mismatches = append(mismatches, Mismatch{
				Zone:     zoneName,
				Expected: expected.Zone(zoneName),
				Actual:   got.Zone(zoneName),
			})
		}
	}
	return mismatches
}

// String renders the configuration in canonical zone order, e.g.
// "left=bottle right=empty top=scissors bottom=empty".
func (c Configuration) String() string {
	n := c.Normalized()
	parts := make([]string, 0, len(common.AllZones))
	for _, zoneName := range common.AllZones {
		parts = append(parts, fmt.Sprintf("%s=%s", zoneName, n.Zone(zoneName)))
	}
	return strings.Join(parts, " ")
}
