package model

import "time"

// FilterCriteria narrows a record set before aggregation. Zero-value fields do
// not constrain: an empty string matches every hierarchy/project, a nil bound
// leaves that side of the date window open. Date comparisons are inclusive at
// day granularity in UTC.
type FilterCriteria struct {
	Hierarchy string
	Project   string
	Start     *time.Time
	End       *time.Time
}
