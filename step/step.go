package step

import (
	"fmt"

	"github.com/securefab/traincore/util"
	"github.com/securefab/traincore/zone"
)

// Step is one stage of a training procedure: what to show the learner and
// which zone configuration counts as correct. Steps are built once at load
// time and treated as immutable values afterwards.
type Step struct {
	ID       int
	Title    string
	Body     string
	Expected zone.Configuration
}

// Validate checks the fields a loaded step must carry.
func (s Step) Validate() error {
	if s.ID < 0 {
		return fmt.Errorf("step id must be non-negative, got %d", s.ID)
	}
	if s.Title == "" {
		return fmt.Errorf("step %d has no title", s.ID)
	}
	return nil
}

// RenderedBody renders the step body as a text/template against the expected
// zone assignments, so instruction text can reference its own targets, e.g.
// "Place the {{.left}} in the left zone." A body without template actions
// passes through unchanged.
func (s Step) RenderedBody() (string, error) {
	data := util.Data{"Title": s.Title, "ID": s.ID}
	for zoneName, object := range s.Expected.Assignments() {
		data[zoneName] = object
	}
	return util.RenderString(s.Body, data)
}

func (s Step) String() string {
	return fmt.Sprintf("step %d (%s)", s.ID, s.Title)
}
