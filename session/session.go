package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/securefab/traincore/logger"
	"github.com/securefab/traincore/procedure"
	"github.com/securefab/traincore/stability"
	"github.com/securefab/traincore/step"
	"github.com/securefab/traincore/util"
	"github.com/securefab/traincore/zone"
)

// Session binds one learner's run of a procedure: the manager holding the
// position, a stability tracker gating noisy detection input, and attempt
// bookkeeping. Like the manager it assumes a single caller at a time.
type Session struct {
	id        string
	manager   *procedure.Manager
	tracker   *stability.Tracker
	log       *logrus.Entry
	startedAt time.Time
	attempts  int
	matches   int

	stepSub *procedure.Subscription
}

// New creates a session for the given manager. stabilityThreshold is the
// number of consecutive identical detections required before a submission
// reaches validation; values below 1 use the stability default.
func New(m *procedure.Manager, stabilityThreshold int) *Session {
	s := &Session{
		id:        uuid.NewString(),
		manager:   m,
		tracker:   stability.NewTracker(stabilityThreshold),
		startedAt: time.Now(),
	}
	s.log = logger.Log.ForSession(m.Name(), s.id)

	// A fresh step must not be satisfied by the streak built up for the
	// previous one.
	s.stepSub = m.OnStepChanged(func(step.Step) {
		s.tracker.Reset()
	})

	s.log.Infof("session started: %s", m.ProgressString())
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Manager returns the procedure manager driving this session.
func (s *Session) Manager() *procedure.Manager { return s.manager }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Attempts returns how many submissions reached validation.
func (s *Session) Attempts() int { return s.attempts }

// Elapsed returns how long the session has been running.
func (s *Session) Elapsed() time.Duration { return time.Since(s.startedAt) }

// Observe feeds one detection result through the stability gate without
// validating, and reports whether the configuration is now stable.
func (s *Session) Observe(cfg zone.Configuration) bool {
	return s.tracker.Observe(cfg)
}

// Submit feeds a detected configuration through the stability gate and, once
// stable, validates it against the current step. The returned bool reports
// whether validation ran at all; an unstable observation returns a zero
// Report and false.
func (s *Session) Submit(cfg zone.Configuration) (procedure.Report, bool) {
	if !s.tracker.Observe(cfg) {
		s.log.Debugf("observation not yet stable (%d/%d): %s",
			s.tracker.Streak(), s.tracker.Threshold(), cfg)
		return procedure.Report{}, false
	}

	s.attempts++
	report := s.manager.ValidateConfiguration(cfg)
	if report.Matched() {
		s.matches++
	}
	return report, true
}

// SubmitDirect bypasses the stability gate, validating immediately. Used by
// manual submissions (CLI, UI button) where no detector noise exists.
func (s *Session) SubmitDirect(cfg zone.Configuration) procedure.Report {
	s.tracker.Reset()
	s.attempts++
	report := s.manager.ValidateConfiguration(cfg)
	if report.Matched() {
		s.matches++
	}
	return report
}

// Command dispatches a discrete controller/UI command onto the manager.
// Supported: "next", "previous" (or "prev"), "reset", "goto <id>".
func (s *Session) Command(cmd string) error {
	fields := strings.Fields(strings.TrimSpace(strings.ToLower(cmd)))
	if len(fields) == 0 {
		return errors.New("empty command")
	}

	switch fields[0] {
	case "next":
		s.manager.GoToNextStep()
	case "previous", "prev":
		s.manager.GoToPreviousStep()
	case "reset":
		s.manager.ResetToFirstStep()
	case "goto":
		if len(fields) != 2 {
			return errors.New("usage: goto <step-id>")
		}
		id, err := strconv.Atoi(fields[1])
		if err != nil {
			return errors.Wrapf(err, "invalid step id %q", fields[1])
		}
		return s.manager.SetStepByID(id)
	default:
		return errors.Errorf("unknown command %q", fields[0])
	}
	return nil
}

// Summary returns a one-line status of the session for logs and the CLI.
func (s *Session) Summary() string {
	return fmt.Sprintf("session %s: %s, %d/%d attempts matched, elapsed %s",
		shortID(s.id), s.manager.ProgressString(), s.matches, s.attempts,
		util.ShortDur(s.Elapsed().Round(time.Second)))
}

// Close detaches the session from its manager's notifications.
func (s *Session) Close() {
	s.stepSub.Cancel()
	s.log.Infof("session closed: %s", s.manager.ProgressString())
}

// shortID trims a uuid to its first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
