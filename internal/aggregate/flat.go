package aggregate

import (
	"github.com/tickbook/tickbook/internal/filter"
	"github.com/tickbook/tickbook/internal/model"
)

// Flat is the single-field categorical breakdown: summed hours and the
// contributing records per distinct field value.
type Flat struct {
	Totals     map[string]float64
	Records    map[string][]model.Record
	Empty      EmptyReason
	BadPattern bool
}

// BuildFlat sums effective hours per distinct value of the chosen field. The
// optional pattern is a case-insensitive include filter on the value; an
// invalid pattern sets BadPattern and returns empty maps instead of raising.
func BuildFlat(scored []filter.Scored, field model.FieldTag, pattern string) Flat {
	result := Flat{
		Totals:  map[string]float64{},
		Records: map[string][]model.Record{},
	}

	re, ok := compilePattern(pattern)
	if !ok {
		result.Empty = EmptyNoMatch
		result.BadPattern = true
		return result
	}
	if len(scored) == 0 {
		result.Empty = EmptyNoRecords
		return result
	}

	for _, s := range scored {
		value := s.Record.Field(field)
		if re != nil && !re.MatchString(value) {
			continue
		}
		result.Totals[value] += s.Hours
		result.Records[value] = append(result.Records[value], s.Record)
	}
	if len(result.Totals) == 0 {
		result.Empty = EmptyNoMatch
	}
	return result
}
