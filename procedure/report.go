package procedure

import (
	"fmt"
	"strings"

	"github.com/securefab/traincore/step"
	"github.com/securefab/traincore/zone"
)

// ValidationStatus is the outcome class of one validation attempt.
type ValidationStatus int

const (
	StatusPending    ValidationStatus = iota // zero value: no validation ran
	StatusMatched                            // candidate equals the expected configuration
	StatusMismatched                         // at least one zone disagrees
)

func (s ValidationStatus) String() string {
	switch s {
	case StatusPending:
		return "PENDING"
	case StatusMatched:
		return "MATCHED"
	case StatusMismatched:
		return "MISMATCHED"
	default:
		return fmt.Sprintf("UNKNOWN_STATUS_%d", int(s))
	}
}

// Report holds the outcome of validating a candidate configuration against
// one step. It is carried by the configuration-validated notification and
// returned from Manager.ValidateConfiguration.
type Report struct {
	Status     ValidationStatus
	StepID     int
	StepTitle  string
	Candidate  zone.Configuration
	Mismatches []zone.Mismatch
}

// newReport builds a Report by diffing the step's expected configuration
// against the candidate.
func newReport(s step.Step, candidate zone.Configuration) Report {
	mismatches := s.Expected.Diff(candidate)
	status := StatusMatched
	if len(mismatches) > 0 {
		status = StatusMismatched
	}
	return Report{
		Status:     status,
		StepID:     s.ID,
		StepTitle:  s.Title,
		Candidate:  candidate.Normalized(),
		Mismatches: mismatches,
	}
}

// Matched reports whether the candidate matched the expected configuration
// on all four zones.
func (r Report) Matched() bool {
	return r.Status == StatusMatched
}

// Message returns a one-line human-readable summary of the outcome.
func (r Report) Message() string {
	if r.Matched() {
		return fmt.Sprintf("configuration matched for step %d (%s)", r.StepID, r.StepTitle)
	}
	parts := make([]string, 0, len(r.Mismatches))
	for _, m := range r.Mismatches {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("configuration mismatched for step %d (%s): %s",
		r.StepID, r.StepTitle, strings.Join(parts, "; "))
}
