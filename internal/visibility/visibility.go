// Package visibility evaluates when a category or item is shown to
// customers.
//
// A schedule is one of four modes. "visible" and "hidden" are constant.
// "hideUntil" turns visible at a fixed instant. "showOnlyWithin" repeats
// weekly: the entity is visible on the listed weekdays during the
// half-open hour range [start, end). When start > end the window runs
// past midnight (22 -> 2 covers 22:00-01:59) and the early-morning hours
// count toward the weekday the window opened on, so a Friday 22 -> 2
// window is open at 01:00 on Saturday.
package visibility

import (
	"strings"
	"time"

	"github.com/nhle/menu-catalog/internal/model"
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps an English weekday name, in any case, to time.Weekday.
func ParseWeekday(name string) (time.Weekday, bool) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// IsVisible reports whether an entity with settings s is visible at now.
// Weekday and hour are read in now's location. A nil s is visible.
//
// IsVisible never fails: malformed schedules that Normalize would reject
// evaluate to false.
func IsVisible(s *model.VisibilitySettings, now time.Time) bool {
	if s == nil {
		return true
	}
	switch s.Visibility {
	case "", model.VisibilityVisible:
		return true
	case model.VisibilityHidden:
		return false
	case model.VisibilityHideUntil:
		if s.HideUntil == nil {
			return true
		}
		return !now.Before(*s.HideUntil)
	case model.VisibilityShowOnlyWithin:
		return inWindow(s.ShowOnlyWithin, now)
	default:
		return false
	}
}

func inWindow(w *model.TimeWindow, now time.Time) bool {
	if w == nil || len(w.Days) == 0 || len(w.TimeRange) != 2 {
		return false
	}
	start, end := w.TimeRange[0], w.TimeRange[1]
	if !validHour(start) || !validHour(end) || start == end {
		return false
	}

	h := now.Hour()
	today := now.Weekday()
	if start < end {
		return h >= start && h < end && hasDay(w.Days, today)
	}
	if h >= start {
		return hasDay(w.Days, today)
	}
	if h < end {
		return hasDay(w.Days, (today+6)%7)
	}
	return false
}

func hasDay(days []string, d time.Weekday) bool {
	for _, name := range days {
		if wd, ok := ParseWeekday(name); ok && wd == d {
			return true
		}
	}
	return false
}

func validHour(h int) bool {
	return h >= 0 && h <= 23
}

// maxScanHours bounds NextChange's search: any weekly schedule flips
// within one week plus the overnight spill.
const maxScanHours = 8 * 24

// NextChange returns the first instant after now at which IsVisible gives
// a different answer than it does at now. It reports false when the
// result never changes (visible, hidden, a hideUntil already passed, or a
// window that is always closed).
func NextChange(s *model.VisibilitySettings, now time.Time) (time.Time, bool) {
	if s == nil {
		return time.Time{}, false
	}
	switch s.Visibility {
	case model.VisibilityHideUntil:
		if s.HideUntil != nil && now.Before(*s.HideUntil) {
			return *s.HideUntil, true
		}
		return time.Time{}, false
	case model.VisibilityShowOnlyWithin:
		current := IsVisible(s, now)
		t := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
		for i := 0; i < maxScanHours; i++ {
			t = t.Add(time.Hour)
			if IsVisible(s, t) != current {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
