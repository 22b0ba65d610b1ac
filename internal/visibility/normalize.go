package visibility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/menu-catalog/internal/model"
)

// ErrInvalidSchedule is matched by every *ScheduleError.
var ErrInvalidSchedule = errors.New("invalid schedule")

// ScheduleError reports a malformed VisibilitySettings value.
type ScheduleError struct {
	Field  string
	Reason string
}

func (e *ScheduleError) Error() string {
	return fmt.Sprintf("invalid schedule: %s: %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidSchedule) hold.
func (e *ScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

// Defaults holds the hour range given to a showOnlyWithin schedule that
// arrives without one.
type Defaults struct {
	StartHour int
	EndHour   int
}

// StandardDefaults is the 09:00-17:00 window.
var StandardDefaults = Defaults{StartHour: 9, EndHour: 17}

// Normalize validates s and fills missing fields using StandardDefaults.
func Normalize(s model.VisibilitySettings, now time.Time) (model.VisibilitySettings, error) {
	return StandardDefaults.Normalize(s, now)
}

// Normalize validates s and returns a canonical copy:
//   - an empty mode becomes "visible";
//   - "hideUntil" without a date hides until now;
//   - "showOnlyWithin" without a range gets d's range, and day names are
//     lower-cased with duplicates dropped;
//   - fields that do not apply to the mode are cleared.
//
// Hours outside 0-23, a range that is not two hours, an empty range
// (start == end), unknown day names and unknown modes are rejected with a
// *ScheduleError.
func (d Defaults) Normalize(s model.VisibilitySettings, now time.Time) (model.VisibilitySettings, error) {
	out := *s.Clone()

	switch out.Visibility {
	case "", model.VisibilityVisible:
		return model.VisibilitySettings{Visibility: model.VisibilityVisible}, nil
	case model.VisibilityHidden:
		return model.VisibilitySettings{Visibility: model.VisibilityHidden}, nil
	case model.VisibilityHideUntil:
		out.ShowOnlyWithin = nil
		if out.HideUntil == nil {
			t := now
			out.HideUntil = &t
		}
		return out, nil
	case model.VisibilityShowOnlyWithin:
		out.HideUntil = nil
		w, err := d.normalizeWindow(out.ShowOnlyWithin)
		if err != nil {
			return model.VisibilitySettings{}, err
		}
		out.ShowOnlyWithin = w
		return out, nil
	default:
		return model.VisibilitySettings{}, &ScheduleError{
			Field:  "visibility",
			Reason: fmt.Sprintf("unknown mode %q", out.Visibility),
		}
	}
}

func (d Defaults) normalizeWindow(w *model.TimeWindow) (*model.TimeWindow, error) {
	if w == nil {
		w = &model.TimeWindow{}
	}

	out := &model.TimeWindow{Days: []string{}}
	seen := make(map[time.Weekday]bool)
	for _, name := range w.Days {
		wd, ok := ParseWeekday(name)
		if !ok {
			return nil, &ScheduleError{Field: "days", Reason: fmt.Sprintf("unknown weekday %q", name)}
		}
		if seen[wd] {
			continue
		}
		seen[wd] = true
		out.Days = append(out.Days, strings.ToLower(wd.String()))
	}

	switch len(w.TimeRange) {
	case 0:
		out.TimeRange = []int{d.StartHour, d.EndHour}
	case 2:
		out.TimeRange = []int{w.TimeRange[0], w.TimeRange[1]}
	default:
		return nil, &ScheduleError{
			Field:  "timeRange",
			Reason: fmt.Sprintf("want [start, end], got %d values", len(w.TimeRange)),
		}
	}

	for _, h := range out.TimeRange {
		if !validHour(h) {
			return nil, &ScheduleError{Field: "timeRange", Reason: fmt.Sprintf("hour %d outside 0-23", h)}
		}
	}
	if out.TimeRange[0] == out.TimeRange[1] {
		return nil, &ScheduleError{Field: "timeRange", Reason: "start and end hour are equal"}
	}

	return out, nil
}
