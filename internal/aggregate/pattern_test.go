package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

func withStart(s filter.Scored, hour, minute int) filter.Scored {
	s.Record.StartTime = &model.TimeOfDay{Hour: hour, Minute: minute}
	return s
}

func TestBuildActivityByWeekday(t *testing.T) {
	// 1 hour Mondays and Wednesdays, Jan 1-14 2024: two of each.
	rec := &model.Recurrence{
		StartRecur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndRecur:   datePtr(2024, time.January, 14),
		Days:       model.ParseWeekdaySet([]string{"M", "W"}),
	}
	scored := []filter.Scored{
		scoredRecurring("ProjectX", 1, 4, rec),
		// A dated Friday record.
		scoredDated("Alpha", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 2.5),
	}

	activity := BuildActivity(scored, ByWeekday, nil, nil)
	require.Equal(t, NotEmpty, activity.Empty)

	assert.InDelta(t, 2.0, activity.Weekday[time.Monday].Hours, 1e-9)
	assert.InDelta(t, 2.0, activity.Weekday[time.Wednesday].Hours, 1e-9)
	assert.InDelta(t, 2.5, activity.Weekday[time.Friday].Hours, 1e-9)
	assert.False(t, activity.Weekday[time.Sunday].Populated)

	// The recurring record shows up once per bin, not once per instance day.
	assert.Len(t, activity.Weekday[time.Monday].Records, 1)
}

func TestBuildActivityByStartHour(t *testing.T) {
	rec := &model.Recurrence{
		StartRecur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndRecur:   datePtr(2024, time.January, 14),
		Days:       model.ParseWeekdaySet([]string{"M", "W"}),
	}
	scored := []filter.Scored{
		withStart(scoredDated("Alpha", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 2.5), 9, 0),
		withStart(scoredDated("Beta", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), 1), 9, 30),
		// One contribution per record: the recurring record's whole effective
		// duration lands on its start hour, with no per-day expansion.
		withStart(scoredRecurring("ProjectX", 1, 4, rec), 13, 0),
		// No start time, skipped.
		scoredDated("Gamma", time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), 5),
	}

	activity := BuildActivity(scored, ByStartHour, nil, nil)
	require.Equal(t, NotEmpty, activity.Empty)

	assert.InDelta(t, 3.5, activity.Hour[9].Hours, 1e-9)
	assert.Len(t, activity.Hour[9].Records, 2)
	assert.InDelta(t, 4.0, activity.Hour[13].Hours, 1e-9)
	assert.False(t, activity.Hour[17].Populated)
}

func TestBuildActivityGrid(t *testing.T) {
	rec := &model.Recurrence{
		StartRecur: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndRecur:   datePtr(2024, time.January, 14),
		Days:       model.ParseWeekdaySet([]string{"M", "W"}),
	}
	scored := []filter.Scored{
		withStart(scoredRecurring("ProjectX", 1, 4, rec), 13, 0),
		withStart(scoredDated("Alpha", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 2.5), 9, 0),
	}

	activity := BuildActivity(scored, ByGrid, nil, nil)
	require.Equal(t, NotEmpty, activity.Empty)

	// Recurring: 2 Mondays and 2 Wednesdays at 13:00, 1 hour each.
	assert.InDelta(t, 2.0, activity.Grid[time.Monday][13].Hours, 1e-9)
	assert.InDelta(t, 2.0, activity.Grid[time.Wednesday][13].Hours, 1e-9)
	// Dated: Friday Jan 5 at 09:00.
	assert.InDelta(t, 2.5, activity.Grid[time.Friday][9].Hours, 1e-9)
	assert.False(t, activity.Grid[time.Tuesday][13].Populated)
}

func TestBuildActivityGridZeroDurationCellIsPopulated(t *testing.T) {
	scored := []filter.Scored{
		withStart(scoredDated("Alpha", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 0), 9, 0),
	}
	// A zero-hours contribution still marks the cell, unlike an untouched one.
	activity := BuildActivity(scored, ByGrid, nil, nil)

	cell := activity.Grid[time.Friday][9]
	assert.True(t, cell.Populated)
	assert.Zero(t, cell.Hours)
	assert.False(t, activity.Grid[time.Friday][10].Populated)
}

func TestBuildActivityEmptyReasons(t *testing.T) {
	t.Run("no records", func(t *testing.T) {
		activity := BuildActivity(nil, ByWeekday, nil, nil)
		assert.Equal(t, EmptyNoRecords, activity.Empty)
	})

	t.Run("records but nothing contributes", func(t *testing.T) {
		// Hour mode with no start times declared anywhere.
		scored := []filter.Scored{scoredDated("Alpha", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), 2)}
		activity := BuildActivity(scored, ByStartHour, nil, nil)
		assert.Equal(t, EmptyNoMatch, activity.Empty)
	})
}

func TestParsePatternMode(t *testing.T) {
	for _, name := range []string{"weekday", "hour", "grid"} {
		if _, err := ParsePatternMode(name); err != nil {
			t.Errorf("ParsePatternMode(%q) error = %v, want nil", name, err)
		}
	}
	if _, err := ParsePatternMode("minute"); err == nil {
		t.Error("ParsePatternMode(\"minute\") error = nil, want error")
	}
}
