package procedure

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/securefab/traincore/common"
	"github.com/securefab/traincore/logger"
	"github.com/securefab/traincore/step"
	"github.com/securefab/traincore/zone"
)

// ErrStepNotFound is returned by id-based lookups for an unknown step id.
var ErrStepNotFound = errors.New("step not found")

// AdvancePolicy decides what GoToNextStep does at the last step.
type AdvancePolicy int

const (
	// AdvanceComplete transitions the procedure into the Complete state.
	AdvanceComplete AdvancePolicy = iota
	// AdvanceStay clamps at the last step; completion happens only through
	// validating the last step's expected configuration.
	AdvanceStay
	// AdvanceWrap cycles back to the first step.
	AdvanceWrap
)

func (p AdvancePolicy) String() string {
	switch p {
	case AdvanceComplete:
		return "complete"
	case AdvanceStay:
		return "stay"
	case AdvanceWrap:
		return "wrap"
	default:
		return fmt.Sprintf("unknown(%d)", int(p))
	}
}

// ParseAdvancePolicy maps a configuration token to an AdvancePolicy.
func ParseAdvancePolicy(s string) (AdvancePolicy, error) {
	switch s {
	case "", "complete":
		return AdvanceComplete, nil
	case "stay":
		return AdvanceStay, nil
	case "wrap":
		return AdvanceWrap, nil
	default:
		return AdvanceComplete, fmt.Errorf("unknown advance policy %q (valid: complete, stay, wrap)", s)
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger injects the log entry the manager writes through. Defaults to
// the global logger scoped with the procedure name.
func WithLogger(entry *logrus.Entry) Option {
	return func(m *Manager) {
		m.log = entry
	}
}

// WithAdvancePolicy sets the last-step behavior of GoToNextStep.
func WithAdvancePolicy(p AdvancePolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// WithAutoAdvance controls whether a successful validation immediately moves
// to the next step. Enabled by default.
func WithAutoAdvance(enabled bool) Option {
	return func(m *Manager) {
		m.autoAdvance = enabled
	}
}

// Manager is the single source of truth for a procedure run: which step is
// current, and whether a submitted zone configuration is correct for it.
//
// The manager assumes at most one caller at a time; all notifications are
// delivered synchronously, in operation order, before the triggering call
// returns. A listener observing a step-changed event therefore always sees
// the already-updated current step.
type Manager struct {
	name        string
	steps       []step.Step
	index       int
	started     bool
	completed   bool
	autoAdvance bool
	policy      AdvancePolicy
	log         *logrus.Entry

	stepChanged observerList[step.Step]
	validated   observerList[Report]
	completeObs observerList[struct{}]
}

// New builds a Manager for the named procedure from an ordered step list.
// The list must be non-empty, every step must validate, and ids must be
// unique. The step slice is copied; the caller keeps no aliases into the
// manager's state.
func New(name string, steps []step.Step, opts ...Option) (*Manager, error) {
	if name == "" {
		return nil, errors.New("procedure name cannot be empty")
	}
	if len(steps) == 0 {
		return nil, errors.Errorf("procedure %q has no steps", name)
	}

	seen := make(map[int]bool, len(steps))
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, errors.Wrapf(err, "invalid step at position %d in procedure %q", i, name)
		}
		if seen[s.ID] {
			return nil, errors.Errorf("duplicate step id %d in procedure %q", s.ID, name)
		}
		seen[s.ID] = true
	}

	m := &Manager{
		name:        name,
		steps:       append([]step.Step(nil), steps...),
		autoAdvance: true,
		policy:      AdvanceComplete,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = logger.Log.ForProcedure(name)
	}

	m.log.Debugf("procedure initialized with %d steps (policy=%s, autoAdvance=%t)",
		len(m.steps), m.policy, m.autoAdvance)
	return m, nil
}

// Name returns the procedure name.
func (m *Manager) Name() string { return m.name }

// CurrentStep returns the step the learner is on. In the Complete state this
// is still the last step.
func (m *Manager) CurrentStep() step.Step { return m.steps[m.index] }

// CurrentStepIndex returns the zero-based index of the current step.
func (m *Manager) CurrentStepIndex() int { return m.index }

// TotalSteps returns how many steps the procedure has.
func (m *Manager) TotalSteps() int { return len(m.steps) }

// Completed reports whether the procedure reached the Complete state.
func (m *Manager) Completed() bool { return m.completed }

// State classifies the run as Pending, Running or Complete.
func (m *Manager) State() common.ProcedureState {
	switch {
	case m.completed:
		return common.StateComplete
	case m.started:
		return common.StateRunning
	default:
		return common.StatePending
	}
}

// Steps returns a copy of the procedure's step list.
func (m *Manager) Steps() []step.Step {
	return append([]step.Step(nil), m.steps...)
}

// ProgressPercentage returns completion progress in percent. The current
// step counts as reached, so step 0 of 4 is already 25%.
func (m *Manager) ProgressPercentage() float64 {
	if m.completed {
		return 100
	}
	return float64(m.index+1) / float64(len(m.steps)) * 100
}

// ProgressString returns a human-readable position, e.g. "Step 2 of 4", or a
// completion line once the procedure is done.
func (m *Manager) ProgressString() string {
	if m.completed {
		return fmt.Sprintf("Procedure complete (%d steps)", len(m.steps))
	}
	return fmt.Sprintf("Step %d of %d", m.index+1, len(m.steps))
}

// OnStepChanged registers a listener for step transitions. The listener
// receives the new current step.
func (m *Manager) OnStepChanged(fn func(step.Step)) *Subscription {
	return m.stepChanged.subscribe(fn)
}

// OnConfigurationValidated registers a listener for validation outcomes.
func (m *Manager) OnConfigurationValidated(fn func(Report)) *Subscription {
	return m.validated.subscribe(fn)
}

// OnProcedureComplete registers a listener fired once when the procedure
// enters the Complete state.
func (m *Manager) OnProcedureComplete(fn func()) *Subscription {
	return m.completeObs.subscribe(func(struct{}) { fn() })
}

// ValidateConfiguration compares the candidate against the current step's
// expected configuration, field-wise across all four zones, and returns the
// outcome report. The configuration-validated notification always fires. On
// a match at the last step the procedure enters Complete; on a match at any
// other step the manager advances when auto-advance is enabled.
//
// Validating while already Complete is allowed (the candidate is checked
// against the last step) but triggers no further transitions.
func (m *Manager) ValidateConfiguration(candidate zone.Configuration) Report {
	m.started = true
	current := m.CurrentStep()
	report := newReport(current, candidate)

	if report.Matched() {
		m.log.WithField(common.LogFieldStep, current.Title).Info(report.Message())
	} else {
		m.log.WithField(common.LogFieldStep, current.Title).Debug(report.Message())
	}
	m.validated.emit(m.log, "configuration-validated", report)

	if !report.Matched() || m.completed {
		return report
	}

	if m.index == len(m.steps)-1 {
		m.complete()
	} else if m.autoAdvance {
		m.setIndex(m.index + 1)
	}
	return report
}

// GoToNextStep advances to the next step. At the last step the configured
// AdvancePolicy applies. No-op once Complete; only Reset or an id jump
// leaves that state.
func (m *Manager) GoToNextStep() {
	if m.completed {
		m.log.Warn("GoToNextStep ignored: procedure already complete")
		return
	}
	m.started = true

	if m.index < len(m.steps)-1 {
		m.setIndex(m.index + 1)
		return
	}

	switch m.policy {
	case AdvanceComplete:
		m.complete()
	case AdvanceWrap:
		m.setIndex(0)
	case AdvanceStay:
		m.log.Debug("GoToNextStep at last step: staying (policy=stay)")
	}
}

// GoToPreviousStep moves one step back, clamped at the first step. No-op
// once Complete.
func (m *Manager) GoToPreviousStep() {
	if m.completed {
		m.log.Warn("GoToPreviousStep ignored: procedure already complete")
		return
	}
	m.started = true

	if m.index == 0 {
		m.log.Debug("GoToPreviousStep at first step: staying")
		return
	}
	m.setIndex(m.index - 1)
}

// SetStepByID jumps directly to the step with the given id, re-entering the
// step states from Complete. On an unknown id the state is unchanged and
// ErrStepNotFound is returned.
func (m *Manager) SetStepByID(id int) error {
	for i, s := range m.steps {
		if s.ID == id {
			m.started = true
			m.completed = false
			m.setIndex(i)
			return nil
		}
	}
	m.log.Warnf("SetStepByID: no step with id %d", id)
	return errors.Wrapf(ErrStepNotFound, "id %d", id)
}

// GetStepByID returns the step with the given id without changing state.
func (m *Manager) GetStepByID(id int) (step.Step, error) {
	for _, s := range m.steps {
		if s.ID == id {
			return s, nil
		}
	}
	return step.Step{}, errors.Wrapf(ErrStepNotFound, "id %d", id)
}

// ResetToFirstStep returns to step 0, leaving Complete if necessary.
func (m *Manager) ResetToFirstStep() {
	m.started = true
	m.completed = false
	m.setIndex(0)
}

// setIndex moves the current index and fires the step-changed notification.
// Listeners observe the already-updated state.
func (m *Manager) setIndex(i int) {
	m.index = i
	current := m.CurrentStep()
	m.log.WithField(common.LogFieldStep, current.Title).Infof("now on %s (%s)", current, m.ProgressString())
	m.stepChanged.emit(m.log, "step-changed", current)
}

// complete enters the terminal Complete state and fires the completion
// notification exactly once.
func (m *Manager) complete() {
	if m.completed {
		return
	}
	m.completed = true
	m.log.Infof("procedure complete after %d steps", len(m.steps))
	m.completeObs.emit(m.log, "procedure-complete", struct{}{})
}
