package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
	"github.com/tickbook/tickbook/internal/timeutil"
)

// Granularity is the bucket resolution of the temporal series.
type Granularity string

const (
	// ByDay buckets per calendar day.
	ByDay Granularity = "day"
	// ByWeek buckets per ISO week, weeks starting Monday.
	ByWeek Granularity = "week"
	// ByMonth buckets per calendar month.
	ByMonth Granularity = "month"
)

// ParseGranularity validates a bucket size supplied by a caller.
func ParseGranularity(name string) (Granularity, error) {
	switch Granularity(name) {
	case ByDay, ByWeek, ByMonth:
		return Granularity(name), nil
	default:
		return "", fmt.Errorf("unknown bucket granularity %q (want day, week, or month)", name)
	}
}

// Bucket is one period of the temporal series.
type Bucket struct {
	Start   time.Time
	Label   string
	Hours   float64
	Stacks  map[string]float64
	Records []model.Record
}

// Series is the temporal aggregation result, sorted chronologically.
type Series struct {
	Buckets []Bucket
	Empty   EmptyReason
}

// eachInstanceDay visits every calendar day a record contributes inside the
// filter window. A dated record contributes its whole effective duration on
// its one day; a recurring record contributes its per-instance duration on
// each day its rule fires, so the per-day pieces sum to the same effective
// total the filter computed.
func eachInstanceDay(s filter.Scored, start, end *time.Time, fn func(day time.Time, hours float64)) {
	switch {
	case s.Record.Date != nil:
		fn(timeutil.UTCDate(*s.Record.Date), s.Hours)
	case s.Record.Recurrence != nil:
		rec := s.Record.Recurrence
		from, to, ok := timeutil.RecurrenceWindow(rec, start, end)
		if !ok {
			return
		}
		timeutil.EachDay(from, to, func(day time.Time) {
			if rec.Days.Contains(day.Weekday()) {
				fn(day, s.Record.Duration)
			}
		})
	}
}

// bucketStart maps a day to the start of its bucket.
func bucketStart(day time.Time, granularity Granularity) time.Time {
	switch granularity {
	case ByWeek:
		return timeutil.WeekStart(day)
	case ByMonth:
		return timeutil.MonthStart(day)
	default:
		return timeutil.UTCDate(day)
	}
}

// bucketLabel renders a human-readable bucket name.
func bucketLabel(start time.Time, granularity Granularity) string {
	switch granularity {
	case ByWeek:
		return "Week of " + start.Format("2006-01-02")
	case ByMonth:
		return start.Format("2006-01")
	default:
		return start.Format("2006-01-02")
	}
}

// BuildSeries expands each record into its contributing calendar instances
// within the window and sums them into chronological period buckets. With a
// stack field, each bucket also carries per-category sub-totals.
func BuildSeries(scored []filter.Scored, granularity Granularity, stack model.FieldTag, start, end *time.Time) Series {
	if len(scored) == 0 {
		return Series{Empty: EmptyNoRecords}
	}

	buckets := map[time.Time]*Bucket{}
	seen := map[time.Time]map[string]bool{}
	for _, s := range scored {
		eachInstanceDay(s, start, end, func(day time.Time, hours float64) {
			at := bucketStart(day, granularity)
			bucket := buckets[at]
			if bucket == nil {
				bucket = &Bucket{Start: at, Label: bucketLabel(at, granularity)}
				if stack != "" {
					bucket.Stacks = map[string]float64{}
				}
				buckets[at] = bucket
				seen[at] = map[string]bool{}
			}
			bucket.Hours += hours
			if stack != "" {
				bucket.Stacks[s.Record.Field(stack)] += hours
			}
			if !seen[at][s.Record.Path] {
				seen[at][s.Record.Path] = true
				bucket.Records = append(bucket.Records, s.Record)
			}
		})
	}
	if len(buckets) == 0 {
		return Series{Empty: EmptyNoMatch}
	}

	series := Series{Buckets: make([]Bucket, 0, len(buckets)), Empty: NotEmpty}
	for _, bucket := range buckets {
		series.Buckets = append(series.Buckets, *bucket)
	}
	sort.Slice(series.Buckets, func(i, j int) bool {
		return series.Buckets[i].Start.Before(series.Buckets[j].Start)
	})
	return series
}
