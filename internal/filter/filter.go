// Package filter applies hierarchy/project/date-range criteria to a parsed
// record set and computes each record's effective duration for the window.
package filter

import (
	"strings"
	"time"

	"github.com/tickbook/tickbook/internal/model"
	"github.com/tickbook/tickbook/internal/timeutil"
)

// Scored is a record annotated with the hours it contributes inside the
// active filter window.
type Scored struct {
	Record model.Record
	Hours  float64
}

// Result is the filtered record set with its summary totals.
type Result struct {
	Records    []Scored
	TotalHours float64
	FileCount  int
}

// Apply filters records against the criteria. Pure and idempotent: the same
// inputs always yield the same set and totals. Records whose effective
// duration is not positive are dropped silently.
func Apply(records []model.Record, criteria model.FilterCriteria) Result {
	var result Result
	for _, rec := range records {
		hours, ok := effectiveHours(&rec, criteria)
		if !ok || hours <= 0 {
			continue
		}
		result.Records = append(result.Records, Scored{Record: rec, Hours: hours})
		result.TotalHours += hours
		result.FileCount++
	}
	return result
}

// effectiveHours reports the hours a record contributes inside the window,
// and false when the record is excluded outright.
func effectiveHours(rec *model.Record, criteria model.FilterCriteria) (float64, bool) {
	if criteria.Hierarchy != "" && !strings.EqualFold(rec.Hierarchy, criteria.Hierarchy) {
		return 0, false
	}
	if criteria.Project != "" && !strings.EqualFold(rec.Project, criteria.Project) {
		return 0, false
	}

	switch {
	case rec.Date != nil:
		if !inWindow(*rec.Date, criteria.Start, criteria.End) {
			return 0, false
		}
		return rec.Duration, true
	case rec.Recurrence != nil:
		if rec.Recurrence.Days.IsEmpty() {
			return 0, false
		}
		count := timeutil.CountRecurringInstances(rec.Recurrence, criteria.Start, criteria.End)
		if count == 0 {
			return 0, false
		}
		return rec.Duration * float64(count), true
	default:
		// Marked recurring but missing its required recurrence fields.
		return 0, false
	}
}

// inWindow reports whether a day lies inside the inclusive window. Absent
// bounds do not constrain their side; comparison is at UTC day granularity.
func inWindow(day time.Time, start, end *time.Time) bool {
	day = timeutil.UTCDate(day)
	if start != nil && day.Before(timeutil.UTCDate(*start)) {
		return false
	}
	if end != nil && day.After(timeutil.UTCDate(*end)) {
		return false
	}
	return true
}
