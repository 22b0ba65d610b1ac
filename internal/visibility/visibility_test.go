package visibility

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/menu-catalog/internal/clock"
	"github.com/nhle/menu-catalog/internal/model"
)

// 2024-01-01 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, time.January, day, hour, minute, 0, 0, time.UTC)
}

func window(days []string, start, end int) *model.VisibilitySettings {
	return &model.VisibilitySettings{
		Visibility: model.VisibilityShowOnlyWithin,
		ShowOnlyWithin: &model.TimeWindow{
			Days:      days,
			TimeRange: []int{start, end},
		},
	}
}

func TestIsVisible_ConstantModes(t *testing.T) {
	instants := []time.Time{at(1, 0, 0), at(3, 12, 30), at(7, 23, 59)}
	for _, now := range instants {
		assert.True(t, IsVisible(nil, now), "nil settings at %s", now)
		assert.True(t, IsVisible(&model.VisibilitySettings{Visibility: model.VisibilityVisible}, now))
		assert.True(t, IsVisible(&model.VisibilitySettings{}, now), "zero value is visible")
		assert.False(t, IsVisible(&model.VisibilitySettings{Visibility: model.VisibilityHidden}, now))
	}
}

func TestIsVisible_HideUntil(t *testing.T) {
	until := at(2, 12, 0)
	s := &model.VisibilitySettings{Visibility: model.VisibilityHideUntil, HideUntil: &until}

	assert.False(t, IsVisible(s, until.Add(-time.Second)))
	assert.True(t, IsVisible(s, until), "visible exactly at the date")
	assert.True(t, IsVisible(s, until.Add(time.Hour)))
}

func TestIsVisible_WindowScenario(t *testing.T) {
	s := window([]string{"monday"}, 9, 17)

	assert.False(t, IsVisible(s, at(2, 10, 0)), "Tuesday 10:00")
	assert.True(t, IsVisible(s, at(1, 10, 0)), "Monday 10:00")
	assert.False(t, IsVisible(s, at(1, 18, 0)), "Monday 18:00")
}

func TestIsVisible_WindowBoundaries(t *testing.T) {
	s := window([]string{"Monday"}, 9, 17)

	assert.False(t, IsVisible(s, at(1, 8, 59)))
	assert.True(t, IsVisible(s, at(1, 9, 0)), "start hour is inclusive")
	assert.True(t, IsVisible(s, at(1, 16, 59)))
	assert.False(t, IsVisible(s, at(1, 17, 0)), "end hour is exclusive")
}

func TestIsVisible_OvernightWrap(t *testing.T) {
	// Friday 2024-01-05, 22 -> 2.
	s := window([]string{"friday"}, 22, 2)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"friday before window", at(5, 21, 59), false},
		{"friday window opens", at(5, 22, 0), true},
		{"friday late", at(5, 23, 30), true},
		{"saturday after midnight", at(6, 0, 30), true},
		{"saturday 01:59", at(6, 1, 59), true},
		{"saturday window closed", at(6, 2, 0), false},
		{"saturday evening", at(6, 22, 0), false},
		{"friday early morning belongs to thursday", at(5, 1, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsVisible(s, tt.now))
		})
	}
}

func TestIsVisible_EmptyDaysNeverVisible(t *testing.T) {
	s := window(nil, 0, 23)
	for d := 1; d <= 7; d++ {
		for h := 0; h < 24; h++ {
			require.False(t, IsVisible(s, at(d, h, 0)))
		}
	}
}

func TestIsVisible_MalformedIsHidden(t *testing.T) {
	assert.False(t, IsVisible(window([]string{"monday"}, 9, 9), at(1, 9, 0)))
	assert.False(t, IsVisible(window([]string{"monday"}, 9, 24), at(1, 10, 0)))
	assert.False(t, IsVisible(&model.VisibilitySettings{Visibility: model.VisibilityShowOnlyWithin}, at(1, 10, 0)))
	assert.False(t, IsVisible(&model.VisibilitySettings{Visibility: "sometimes"}, at(1, 10, 0)))
}

func TestIsVisible_Pure(t *testing.T) {
	s := window([]string{"monday", "wednesday"}, 11, 15)
	before := *s.Clone()
	for h := 0; h < 24; h++ {
		now := at(3, h, 0)
		require.Equal(t, IsVisible(s, now), IsVisible(s, now))
	}
	assert.Equal(t, before, *s)
}

func TestIsVisible_UsesLocationOfNow(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	s := window([]string{"monday"}, 9, 17)

	// Monday 01:00 UTC is Monday 10:00 in Tokyo.
	assert.False(t, IsVisible(s, at(1, 1, 0)))
	assert.True(t, IsVisible(s, at(1, 1, 0).In(tokyo)))
}

func TestNextChange(t *testing.T) {
	until := at(3, 8, 15)
	hideUntil := &model.VisibilitySettings{Visibility: model.VisibilityHideUntil, HideUntil: &until}

	next, ok := NextChange(hideUntil, at(1, 0, 0))
	require.True(t, ok)
	assert.Equal(t, until, next)

	_, ok = NextChange(hideUntil, at(4, 0, 0))
	assert.False(t, ok)

	_, ok = NextChange(&model.VisibilitySettings{Visibility: model.VisibilityHidden}, at(1, 0, 0))
	assert.False(t, ok)

	s := window([]string{"monday"}, 9, 17)
	next, ok = NextChange(s, at(1, 7, 30))
	require.True(t, ok)
	assert.Equal(t, at(1, 9, 0), next)

	next, ok = NextChange(s, at(1, 10, 0))
	require.True(t, ok)
	assert.Equal(t, at(1, 17, 0), next)

	// From Monday evening the next opening is a week later.
	next, ok = NextChange(s, at(1, 18, 0))
	require.True(t, ok)
	assert.Equal(t, at(8, 9, 0), next)

	_, ok = NextChange(window(nil, 9, 17), at(1, 0, 0))
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	now := at(1, 12, 0)

	t.Run("empty mode becomes visible", func(t *testing.T) {
		got, err := Normalize(model.VisibilitySettings{}, now)
		require.NoError(t, err)
		assert.Equal(t, model.VisibilitySettings{Visibility: model.VisibilityVisible}, got)
	})

	t.Run("hideUntil defaults to now", func(t *testing.T) {
		got, err := Normalize(model.VisibilitySettings{Visibility: model.VisibilityHideUntil}, now)
		require.NoError(t, err)
		require.NotNil(t, got.HideUntil)
		assert.Equal(t, now, *got.HideUntil)
		assert.Nil(t, got.ShowOnlyWithin)
	})

	t.Run("window defaults to nine to five", func(t *testing.T) {
		got, err := Normalize(model.VisibilitySettings{
			Visibility:     model.VisibilityShowOnlyWithin,
			ShowOnlyWithin: &model.TimeWindow{Days: []string{"Monday", "monday", " FRIDAY "}},
		}, now)
		require.NoError(t, err)
		assert.Equal(t, []int{9, 17}, got.ShowOnlyWithin.TimeRange)
		assert.Equal(t, []string{"monday", "friday"}, got.ShowOnlyWithin.Days)
	})

	t.Run("missing window is filled", func(t *testing.T) {
		got, err := Normalize(model.VisibilitySettings{Visibility: model.VisibilityShowOnlyWithin}, now)
		require.NoError(t, err)
		require.NotNil(t, got.ShowOnlyWithin)
		assert.Empty(t, got.ShowOnlyWithin.Days)
		assert.Equal(t, []int{9, 17}, got.ShowOnlyWithin.TimeRange)
	})

	t.Run("hidden drops other fields", func(t *testing.T) {
		got, err := Normalize(model.VisibilitySettings{
			Visibility: model.VisibilityHidden,
			HideUntil:  &now,
		}, now)
		require.NoError(t, err)
		assert.Nil(t, got.HideUntil)
	})

	t.Run("input is not modified", func(t *testing.T) {
		in := model.VisibilitySettings{
			Visibility:     model.VisibilityShowOnlyWithin,
			ShowOnlyWithin: &model.TimeWindow{Days: []string{"MONDAY"}},
		}
		_, err := Normalize(in, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"MONDAY"}, in.ShowOnlyWithin.Days)
		assert.Nil(t, in.ShowOnlyWithin.TimeRange)
	})
}

func TestNormalize_Rejects(t *testing.T) {
	now := at(1, 12, 0)
	tests := []struct {
		name  string
		in    model.VisibilitySettings
		field string
	}{
		{"unknown mode", model.VisibilitySettings{Visibility: "later"}, "visibility"},
		{"hour above range", *window([]string{"monday"}, 9, 24), "timeRange"},
		{"negative hour", *window([]string{"monday"}, -1, 5), "timeRange"},
		{"empty range", *window([]string{"monday"}, 5, 5), "timeRange"},
		{"three values", model.VisibilitySettings{
			Visibility:     model.VisibilityShowOnlyWithin,
			ShowOnlyWithin: &model.TimeWindow{Days: []string{"monday"}, TimeRange: []int{1, 2, 3}},
		}, "timeRange"},
		{"unknown day", *window([]string{"funday"}, 9, 17), "days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.in, now)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSchedule))

			var se *ScheduleError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.field, se.Field)
		})
	}
}

func TestNormalize_AcceptsOvernight(t *testing.T) {
	got, err := Normalize(*window([]string{"friday"}, 22, 2), at(1, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, []int{22, 2}, got.ShowOnlyWithin.TimeRange)
}

func TestEvaluator(t *testing.T) {
	c := clock.NewFixed(at(1, 1, 0)) // Monday 01:00 UTC
	ev, err := NewEvaluatorFromConfig(c, model.VisibilityConfig{
		Timezone:         "UTC",
		DefaultStartHour: 6,
		DefaultEndHour:   10,
	})
	require.NoError(t, err)

	s, err := ev.Normalize(model.VisibilitySettings{
		Visibility:     model.VisibilityShowOnlyWithin,
		ShowOnlyWithin: &model.TimeWindow{Days: []string{"monday"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{6, 10}, s.ShowOnlyWithin.TimeRange)

	assert.False(t, ev.Visible(&s))
	next, ok := ev.NextChange(&s)
	require.True(t, ok)
	assert.Equal(t, at(1, 6, 0), next)

	c.Set(at(1, 7, 0))
	assert.True(t, ev.Visible(&s))
	assert.False(t, ev.VisibleAt(&s, at(1, 11, 0)))

	_, err = NewEvaluatorFromConfig(c, model.VisibilityConfig{Timezone: "Nowhere/Special"})
	assert.Error(t, err)

	_, err = NewEvaluatorFromConfig(c, model.VisibilityConfig{Timezone: "UTC", DefaultStartHour: 8, DefaultEndHour: 8})
	assert.True(t, errors.Is(err, ErrInvalidSchedule))
}
