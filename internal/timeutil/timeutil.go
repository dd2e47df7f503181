// Package timeutil implements the calendar arithmetic the analytics pipeline
// depends on: time-of-day parsing, duration spans, recurrence-instance
// counting, and UTC-day normalization.
//
// All day-level comparisons happen on UTC midnights. Normalizing once here
// keeps records parsed in different local zones from drifting across day
// boundaries further down the pipeline.
package timeutil

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tickbook/tickbook/internal/model"
)

// now is swapped out by tests that exercise open-ended recurrences.
var now = time.Now

const minutesPerDay = 24 * 60

// UTCDate truncates a time to midnight UTC of the same calendar day.
func UTCDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var clockPattern = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})`)

// genericTimeLayouts are tried, in order, when a time value is neither numeric
// nor a plain clock string.
var genericTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"15:04:05",
	"3:04 PM",
	"3:04PM",
}

// ParseTimeOfDay interprets a front-matter time value. It accepts a numeric
// hours-with-fraction value (9.5 means 09:30), a string with a leading "HH:MM"
// clock, or a generic date/time string whose hour and minute are read in UTC.
// Anything else yields nil.
func ParseTimeOfDay(value any) *model.TimeOfDay {
	switch v := value.(type) {
	case int:
		return clockFromHours(float64(v))
	case int64:
		return clockFromHours(float64(v))
	case float64:
		return clockFromHours(v)
	case time.Time:
		u := v.UTC()
		return &model.TimeOfDay{Hour: u.Hour(), Minute: u.Minute()}
	case string:
		text := strings.TrimSpace(v)
		if text == "" {
			return nil
		}
		if m := clockPattern.FindStringSubmatch(text); m != nil {
			hour, _ := strconv.Atoi(m[1])
			minute, _ := strconv.Atoi(m[2])
			if hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
				return &model.TimeOfDay{Hour: hour, Minute: minute}
			}
			return nil
		}
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return clockFromHours(f)
		}
		for _, layout := range genericTimeLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				u := t.UTC()
				return &model.TimeOfDay{Hour: u.Hour(), Minute: u.Minute()}
			}
		}
		return nil
	default:
		return nil
	}
}

func clockFromHours(hours float64) *model.TimeOfDay {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours < 0 || hours >= 24 {
		return nil
	}
	whole := int(hours)
	minute := int(math.Round((hours - float64(whole)) * 60))
	if minute >= 60 {
		whole++
		minute -= 60
	}
	if whole >= 24 {
		return nil
	}
	return &model.TimeOfDay{Hour: whole, Minute: minute}
}

// SpanHours computes the hours between two clock times, multiplied by a day
// count. A negative raw span wraps across midnight exactly once (22:00 to
// 02:00 is 4 hours); spans crossing more than one midnight are not modeled.
// The day count floors at 0 and the result never goes negative.
func SpanHours(start, end *model.TimeOfDay, days float64) float64 {
	if start == nil || end == nil {
		return 0
	}
	span := end.Minutes() - start.Minutes()
	if span < 0 {
		span += minutesPerDay
	}
	if math.IsNaN(days) || days < 0 {
		days = 0
	}
	hours := float64(span) / 60 * days
	if math.IsNaN(hours) || hours < 0 {
		return 0
	}
	return hours
}

// EachDay calls fn for every UTC day in the closed interval [start, end].
// Bounds are normalized to UTC midnight first; a start after end visits
// nothing.
func EachDay(start, end time.Time, fn func(day time.Time)) {
	for day := UTCDate(start); !day.After(UTCDate(end)); day = day.AddDate(0, 0, 1) {
		fn(day)
	}
}

// RecurrenceWindow intersects a recurrence rule's active range with a filter
// window. Nil filter bounds leave that side unconstrained; an open-ended rule
// with no filter end is capped at today. The second return value is false when
// the intersection is empty.
func RecurrenceWindow(rec *model.Recurrence, filterStart, filterEnd *time.Time) (time.Time, time.Time, bool) {
	start := UTCDate(rec.StartRecur)
	if filterStart != nil && UTCDate(*filterStart).After(start) {
		start = UTCDate(*filterStart)
	}

	var end time.Time
	switch {
	case rec.EndRecur != nil:
		end = UTCDate(*rec.EndRecur)
	case filterEnd != nil:
		end = UTCDate(*filterEnd)
	default:
		end = UTCDate(now())
	}
	if filterEnd != nil && UTCDate(*filterEnd).Before(end) {
		end = UTCDate(*filterEnd)
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// CountRecurringInstances counts the days on which a recurrence rule fires
// within the filter window. Both interval endpoints are included; an empty
// weekday set or an empty intersection yields 0.
func CountRecurringInstances(rec *model.Recurrence, filterStart, filterEnd *time.Time) int {
	if rec == nil || rec.Days.IsEmpty() {
		return 0
	}
	start, end, ok := RecurrenceWindow(rec, filterStart, filterEnd)
	if !ok {
		return 0
	}
	count := 0
	EachDay(start, end, func(day time.Time) {
		if rec.Days.Contains(day.Weekday()) {
			count++
		}
	})
	return count
}

// WeekStart returns the Monday beginning the ISO week containing t, at UTC
// midnight.
func WeekStart(t time.Time) time.Time {
	day := UTCDate(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// MonthStart returns the first day of t's calendar month at UTC midnight.
func MonthStart(t time.Time) time.Time {
	day := UTCDate(t)
	return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
}
