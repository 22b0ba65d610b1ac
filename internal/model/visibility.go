package model

import "time"

// Visibility mode constants.
const (
	VisibilityVisible        = "visible"
	VisibilityHidden         = "hidden"
	VisibilityHideUntil      = "hideUntil"
	VisibilityShowOnlyWithin = "showOnlyWithin"
)

// TimeWindow is a recurring weekly window. Days holds lower-case English
// weekday names; TimeRange holds [startHour, endHour], both 0-23.
type TimeWindow struct {
	Days      []string `json:"days" yaml:"days"`
	TimeRange []int    `json:"time_range" yaml:"time_range"`
}

// VisibilitySettings controls when a category or item is shown to
// customers. A nil *VisibilitySettings means always visible.
type VisibilitySettings struct {
	Visibility     string      `json:"visibility" yaml:"visibility"`
	HideUntil      *time.Time  `json:"hide_until,omitempty" yaml:"hide_until,omitempty"`
	ShowOnlyWithin *TimeWindow `json:"show_only_within,omitempty" yaml:"show_only_within,omitempty"`
}

// Clone returns a deep copy of v. Clone of nil is nil.
func (v *VisibilitySettings) Clone() *VisibilitySettings {
	if v == nil {
		return nil
	}
	out := *v
	if v.HideUntil != nil {
		t := *v.HideUntil
		out.HideUntil = &t
	}
	if v.ShowOnlyWithin != nil {
		w := TimeWindow{Days: cloneStrings(v.ShowOnlyWithin.Days)}
		if v.ShowOnlyWithin.TimeRange != nil {
			w.TimeRange = append([]int(nil), v.ShowOnlyWithin.TimeRange...)
		}
		out.ShowOnlyWithin = &w
	}
	return &out
}
