// Package model defines the core data types shared across the parsing,
// filtering, and aggregation pipeline.
package model

import "time"

// Default values applied when a filename capture is empty.
const (
	// UnknownProject is the project name assigned when no project capture exists.
	UnknownProject = "Unknown Project"
	// NoSubproject is the normalized form of an empty subproject.
	NoSubproject = "none"
	// RootHierarchy is the hierarchy label for files without a containing folder.
	RootHierarchy = "root"
)

// TimeOfDay is a wall-clock time with minute precision.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// Minutes returns the time as minutes past midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Recurrence describes a weekly repeating schedule. EndRecur may be nil for an
// open-ended rule.
type Recurrence struct {
	StartRecur time.Time
	EndRecur   *time.Time
	Days       WeekdaySet
}

// Record is one parsed activity file. A record is either dated (Date set,
// Recurrence nil) or recurring (Recurrence set, Date nil); Duration is the
// per-instance duration in hours and is never negative.
type Record struct {
	Path           string
	Hierarchy      string
	Project        string
	Subproject     string
	SubprojectFull string
	Duration       float64
	Date           *time.Time
	Recurrence     *Recurrence
	StartTime      *TimeOfDay
	EndTime        *TimeOfDay

	// Extra holds front-matter keys the parser does not recognize. It is
	// carried for drill-down display and never interpreted by the pipeline.
	Extra map[string]any
}

// IsRecurring reports whether the record follows a weekly recurrence rule.
func (r *Record) IsRecurring() bool {
	return r.Recurrence != nil
}
