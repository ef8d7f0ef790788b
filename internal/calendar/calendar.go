// Package calendar holds the local-calendar date arithmetic used by the
// planning views: ISO week starts, ISO week numbers and YYYY-MM-DD keys.
//
// All functions operate on the calendar date of the given time in its own
// location. Keys are never derived from UTC so that a late-evening timestamp
// does not shift to the next day.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout is the wire format for dates exchanged with the backend.
const DayLayout = "2006-01-02"

// Midnight returns t truncated to 00:00 in its own location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Monday (at midnight) of the ISO week containing t.
func WeekStart(t time.Time) time.Time {
	day := Midnight(t)
	// time.Weekday counts Sunday as 0; ISO weeks start on Monday.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// AddWeeks shifts a week start by n weeks and re-normalizes to Monday.
func AddWeeks(weekStart time.Time, n int) time.Time {
	return WeekStart(weekStart.AddDate(0, 0, n*7))
}

// KW returns the ISO-8601 week number of t.
func KW(t time.Time) int {
	// Thursday of the current week decides the week-numbering year.
	day := Midnight(t)
	thursday := day.AddDate(0, 0, 3-(int(day.Weekday())+6)%7)
	jan1 := time.Date(thursday.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	return (thursday.YearDay()-jan1.YearDay())/7 + 1
}

// DayKey formats t as a local YYYY-MM-DD string built from its year, month
// and day components.
func DayKey(t time.Time) string {
	y, m, d := t.Date()
	return fmt.Sprintf("%04d-%02d-%02d", y, int(m), d)
}

// ParseDay parses a YYYY-MM-DD key into local midnight. Longer timestamps
// (e.g. "2025-03-10T00:00:00.000Z") are accepted and truncated to their
// date part.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	if len(s) > len(DayLayout) {
		s = s[:len(DayLayout)]
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return t, nil
}

// NormalizeKey converts any backend date string into a YYYY-MM-DD key.
// Unparseable input is returned unchanged.
func NormalizeKey(s string) string {
	if len(s) >= len(DayLayout) {
		return s[:len(DayLayout)]
	}
	return s
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start time.Time
	End   time.Time
}

// WeekRange returns the Monday..Sunday range of the week starting at start.
func WeekRange(start time.Time) Range {
	s := WeekStart(start)
	return Range{Start: s, End: s.AddDate(0, 0, 6)}
}

// StartKey returns the range start as a day key.
func (r Range) StartKey() string { return DayKey(r.Start) }

// EndKey returns the range end as a day key.
func (r Range) EndKey() string { return DayKey(r.End) }

// Contains reports whether the day key falls within the range.
func (r Range) Contains(key string) bool {
	k := NormalizeKey(key)
	return k >= r.StartKey() && k <= r.EndKey()
}

// Days returns every day in the range at midnight.
func (r Range) Days() []time.Time {
	var days []time.Time
	for d := Midnight(r.Start); !d.After(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// MonthGrid returns the Monday-first weeks covering the month of t. Each
// inner slice has seven days; days outside the month are included so the
// grid is rectangular.
func MonthGrid(t time.Time) [][]time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1)
	var weeks [][]time.Time
	for ws := WeekStart(first); !ws.After(last); ws = ws.AddDate(0, 0, 7) {
		weeks = append(weeks, WeekRange(ws).Days())
	}
	return weeks
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}
