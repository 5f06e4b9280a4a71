// Package localdate provides wall-clock calendar arithmetic for a specific
// time zone, plus parsers for the small string-encoded date forms used by
// bill reminders ("HH:MM" clock times and "YYYY-MM" month anchors).
//
// All stepping is field-wise: adding 14 days to a local midnight yields the
// same local midnight two weeks later even when a daylight-saving
// transition sits in between, which naive duration addition would not.
package localdate

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// At constructs the instant for the given local wall-clock fields in loc.
// Out-of-range fields normalize the way time.Date does (day 32 of January
// becomes February 1, and so on).
func At(year int, month time.Month, day, hour, min int, loc *time.Location) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

// AddDays steps t forward (or back, for negative days) by whole local
// calendar days, preserving the wall-clock time of day in t's location.
func AddDays(t time.Time, days int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day+days, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddMonths steps t by whole local calendar months, preserving day-of-month
// and wall-clock time. A day-of-month that does not exist in the target
// month normalizes forward (January 31 plus one month is March 3 or 2).
func AddMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month+time.Month(months), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysUntilWeekday returns the smallest non-negative day count from one
// weekday to the next occurrence of another; zero when they are equal.
func DaysUntilWeekday(from, to time.Weekday) int {
	return (int(to) - int(from) + 7) % 7
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses an "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return Clock{}, fmt.Errorf("clock time %q is not in HH:MM form", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return Clock{}, fmt.Errorf("clock time %q has invalid hour: %w", s, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return Clock{}, fmt.Errorf("clock time %q has invalid minute: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Clock{}, fmt.Errorf("clock time %q is out of range", s)
	}
	return Clock{Hour: hour, Minute: minute}, nil
}

// Month is a calendar month anchor.
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	yy, mm, ok := strings.Cut(s, "-")
	if !ok {
		return Month{}, fmt.Errorf("month anchor %q is not in YYYY-MM form", s)
	}
	year, err := strconv.Atoi(yy)
	if err != nil {
		return Month{}, fmt.Errorf("month anchor %q has invalid year: %w", s, err)
	}
	month, err := strconv.Atoi(mm)
	if err != nil {
		return Month{}, fmt.Errorf("month anchor %q has invalid month: %w", s, err)
	}
	if month < 1 || month > 12 {
		return Month{}, fmt.Errorf("month anchor %q is out of range", s)
	}
	return Month{Year: year, Month: time.Month(month)}, nil
}
