package visibility

import (
	"fmt"
	"time"

	"github.com/nhle/menu-catalog/internal/clock"
	"github.com/nhle/menu-catalog/internal/model"
)

// Evaluator answers visibility questions against a clock in a fixed
// time zone, so "Monday 09:00" means the restaurant's Monday.
type Evaluator struct {
	clock    clock.Clock
	loc      *time.Location
	defaults Defaults
}

// NewEvaluator returns an Evaluator. A nil loc means time.Local.
func NewEvaluator(c clock.Clock, loc *time.Location, d Defaults) *Evaluator {
	if c == nil {
		c = clock.System{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Evaluator{clock: c, loc: loc, defaults: d}
}

// NewEvaluatorFromConfig builds an Evaluator from the visibility section of
// the application config.
func NewEvaluatorFromConfig(c clock.Clock, cfg model.VisibilityConfig) (*Evaluator, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", cfg.Timezone, err)
	}
	d := Defaults{StartHour: cfg.DefaultStartHour, EndHour: cfg.DefaultEndHour}
	if !validHour(d.StartHour) || !validHour(d.EndHour) || d.StartHour == d.EndHour {
		return nil, &ScheduleError{
			Field:  "visibility.default_start_hour/default_end_hour",
			Reason: fmt.Sprintf("invalid default range [%d, %d]", d.StartHour, d.EndHour),
		}
	}
	return NewEvaluator(c, loc, d), nil
}

// Now returns the clock's time in the evaluator's zone.
func (e *Evaluator) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

// Visible evaluates s at the current time.
func (e *Evaluator) Visible(s *model.VisibilitySettings) bool {
	return IsVisible(s, e.Now())
}

// VisibleAt evaluates s at t, read in the evaluator's zone.
func (e *Evaluator) VisibleAt(s *model.VisibilitySettings, t time.Time) bool {
	return IsVisible(s, t.In(e.loc))
}

// NextChange returns when the result for s next flips after the current
// time.
func (e *Evaluator) NextChange(s *model.VisibilitySettings) (time.Time, bool) {
	return NextChange(s, e.Now())
}

// Normalize validates s using the evaluator's default window and clock.
func (e *Evaluator) Normalize(s model.VisibilitySettings) (model.VisibilitySettings, error) {
	return e.defaults.Normalize(s, e.Now())
}
