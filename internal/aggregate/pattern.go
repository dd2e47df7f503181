package aggregate

import (
	"fmt"
	"time"

	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

// PatternMode selects the activity-pattern sub-mode.
type PatternMode string

const (
	// ByWeekday sums hours per weekday, Sunday through Saturday.
	ByWeekday PatternMode = "weekday"
	// ByStartHour sums hours per declared start hour, one contribution per record.
	ByStartHour PatternMode = "hour"
	// ByGrid produces the 7x24 weekday-by-hour heatmap.
	ByGrid PatternMode = "grid"
)

// ParsePatternMode validates a pattern sub-mode supplied by a caller.
func ParsePatternMode(name string) (PatternMode, error) {
	switch PatternMode(name) {
	case ByWeekday, ByStartHour, ByGrid:
		return PatternMode(name), nil
	default:
		return "", fmt.Errorf("unknown pattern mode %q (want weekday, hour, or grid)", name)
	}
}

// Bin is one histogram or heatmap cell. Populated separates a cell no record
// ever touched from a cell whose contributions summed to exactly zero.
type Bin struct {
	Hours     float64
	Populated bool
	Records   []model.Record
}

// Activity is the activity-pattern result. Only the section matching Mode is
// filled in.
type Activity struct {
	Mode    PatternMode
	Weekday [7]Bin
	Hour    [24]Bin
	Grid    [7][24]Bin
	Empty   EmptyReason
}

// BuildActivity computes the weekday/hour usage pattern of the filtered set.
// Weekday and grid modes reuse the same per-day expansion as the temporal
// series for recurring records; hour and grid modes skip records without a
// declared start time.
func BuildActivity(scored []filter.Scored, mode PatternMode, start, end *time.Time) Activity {
	result := Activity{Mode: mode}
	if len(scored) == 0 {
		result.Empty = EmptyNoRecords
		return result
	}

	contributed := false
	for _, s := range scored {
		switch mode {
		case ByWeekday:
			eachInstanceDay(s, start, end, func(day time.Time, hours float64) {
				addBin(&result.Weekday[int(day.Weekday())], s.Record, hours)
				contributed = true
			})
		case ByStartHour:
			if s.Record.StartTime == nil {
				continue
			}
			addBin(&result.Hour[s.Record.StartTime.Hour], s.Record, s.Hours)
			contributed = true
		case ByGrid:
			if s.Record.StartTime == nil {
				continue
			}
			hour := s.Record.StartTime.Hour
			eachInstanceDay(s, start, end, func(day time.Time, hours float64) {
				addBin(&result.Grid[int(day.Weekday())][hour], s.Record, hours)
				contributed = true
			})
		}
	}

	if !contributed {
		result.Empty = EmptyNoMatch
	}
	return result
}

func addBin(bin *Bin, rec model.Record, hours float64) {
	bin.Hours += hours
	bin.Populated = true
	// A recurring record hits the same bin once per instance day; list it once.
	if n := len(bin.Records); n == 0 || bin.Records[n-1].Path != rec.Path {
		bin.Records = append(bin.Records, rec)
	}
}
