// Package aggregate implements the four report shapes built from a filtered
// record set: a hierarchical tree, a flat categorical breakdown, a temporal
// series, and weekday/hour activity patterns.
//
// All aggregations are synchronous pure functions. They retain the
// contributing records per bucket, leaf, or category so a caller can drill
// down from any aggregated value, and they distinguish "no input at all" from
// "the pattern matched nothing".
package aggregate

import "regexp"

// EmptyReason explains why a result holds no data.
type EmptyReason int

const (
	// NotEmpty marks a result that contains data.
	NotEmpty EmptyReason = iota
	// EmptyNoRecords marks a result computed from an empty record set.
	EmptyNoRecords
	// EmptyNoMatch marks a result where records existed but none contributed,
	// for example because the include pattern matched no value.
	EmptyNoMatch
)

func (r EmptyReason) String() string {
	switch r {
	case NotEmpty:
		return "has data"
	case EmptyNoRecords:
		return "no records"
	case EmptyNoMatch:
		return "no match"
	default:
		return "unknown"
	}
}

// compilePattern compiles an optional case-insensitive include pattern. An
// empty pattern means "match everything" and yields a nil regexp. The boolean
// is false when the pattern does not compile; callers turn that into a
// BadPattern flag rather than an error.
func compilePattern(pattern string) (*regexp.Regexp, bool) {
	if pattern == "" {
		return nil, true
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return nil, false
	}
	return re, true
}
