package model

import (
	"strings"
	"time"
)

// WeekdaySet is a bitmask of weekdays, bit 0 = Sunday through bit 6 = Saturday.
// Recurrence day lists are normalized to this form once at parse time; nothing
// downstream re-parses the raw front-matter shape.
type WeekdaySet uint8

// dayCodes maps the single-letter weekday codes used in activity front matter.
var dayCodes = map[string]time.Weekday{
	"U": time.Sunday,
	"M": time.Monday,
	"T": time.Tuesday,
	"W": time.Wednesday,
	"R": time.Thursday,
	"F": time.Friday,
	"S": time.Saturday,
}

// ParseWeekdaySet builds a WeekdaySet from day codes. Codes may arrive as a
// list or as a single delimited string ("M,W,F"); unrecognized codes are
// ignored, so an all-invalid input yields the empty set.
func ParseWeekdaySet(codes []string) WeekdaySet {
	var set WeekdaySet
	for _, code := range codes {
		for _, part := range strings.FieldsFunc(code, func(r rune) bool {
			return r == ',' || r == ';' || r == ' '
		}) {
			if day, ok := dayCodes[strings.ToUpper(strings.TrimSpace(part))]; ok {
				set |= 1 << uint(day)
			}
		}
	}
	return set
}

// Contains reports whether the set includes the given weekday.
func (s WeekdaySet) Contains(day time.Weekday) bool {
	return s&(1<<uint(day)) != 0
}

// IsEmpty reports whether no weekday is set.
func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Weekdays returns the members of the set in Sunday-first order.
func (s WeekdaySet) Weekdays() []time.Weekday {
	var days []time.Weekday
	for day := time.Sunday; day <= time.Saturday; day++ {
		if s.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

func (s WeekdaySet) String() string {
	letters := [7]string{"U", "M", "T", "W", "R", "F", "S"}
	var b strings.Builder
	for day := time.Sunday; day <= time.Saturday; day++ {
		if s.Contains(day) {
			b.WriteString(letters[day])
		}
	}
	return b.String()
}
