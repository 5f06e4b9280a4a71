package reminder

import (
	"fmt"
	"time"

	"github.com/CaioDGallo/northstar-personal-finance-sub003/internal/localdate"
)

// Options controls a due-date calculation.
type Options struct {
	// Now is the reference instant. Zero means the wall clock; tests and
	// schedulers pass a fixed instant.
	Now time.Time

	// TimeZone is an IANA zone name. All day/month/year arithmetic and
	// before/after comparisons happen against this zone's wall clock, which
	// keeps results correct across daylight-saving transitions. Empty falls
	// back to the host's local zone.
	TimeZone string

	// GraceWindow keeps a monthly due instant that passed no longer than
	// this ago reported as the current one instead of rolling to next
	// month. Zero means no grace.
	GraceWindow time.Duration
}

// NextDueDate computes the next due instant for a bill reminder. The result
// is strictly after Options.Now except for two documented cases: a "once"
// reminder returns its sole instant even when past, and a monthly candidate
// within the grace window is returned as still current.
func NextDueDate(r BillReminder, opts Options) (time.Time, error) {
	loc := time.Local
	if opts.TimeZone != "" {
		l, err := time.LoadLocation(opts.TimeZone)
		if err != nil {
			return time.Time{}, fmt.Errorf("load time zone %q: %w", opts.TimeZone, err)
		}
		loc = l
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	var clock localdate.Clock
	if r.DueTime != "" {
		c, err := localdate.ParseClock(r.DueTime)
		if err != nil {
			return time.Time{}, err
		}
		clock = c
	}

	switch r.Type {
	case Once:
		return onceDue(r, clock, loc)
	case Weekly:
		return weeklyDue(r, clock, now, loc), nil
	case Biweekly:
		return steppedDue(r, clock, now, loc, stepDays(14))
	case Monthly:
		return monthlyDue(r, clock, now, loc, opts.GraceWindow), nil
	case Quarterly:
		return steppedDue(r, clock, now, loc, stepMonths(3))
	case Yearly:
		return yearlyDue(r, clock, now, loc)
	default:
		return time.Time{}, &UnsupportedTypeError{Type: r.Type}
	}
}

// onceDue is the anchor instant itself. Past instants are returned as-is;
// rolling or cancelling a lapsed one-shot reminder is the caller's call.
func onceDue(r BillReminder, clock localdate.Clock, loc *time.Location) (time.Time, error) {
	anchor, err := localdate.ParseMonth(r.StartMonth)
	if err != nil {
		return time.Time{}, err
	}
	return localdate.At(anchor.Year, anchor.Month, r.DueDay, clock.Hour, clock.Minute, loc), nil
}

// weeklyDue finds the next occurrence of DueWeekday at the due time. When
// today is the weekday and the time has not yet passed, today wins;
// otherwise the same weekday next week.
func weeklyDue(r BillReminder, clock localdate.Clock, now time.Time, loc *time.Location) time.Time {
	offset := localdate.DaysUntilWeekday(now.Weekday(), r.DueWeekday)
	year, month, day := now.Date()
	candidate := localdate.At(year, month, day+offset, clock.Hour, clock.Minute, loc)
	if offset == 0 && !candidate.After(now) {
		candidate = localdate.AddDays(candidate, 7)
	}
	return candidate
}

// monthlyDue is DueDay of the current local month, rolled to next month
// once passed unless the grace window still covers it.
func monthlyDue(r BillReminder, clock localdate.Clock, now time.Time, loc *time.Location, grace time.Duration) time.Time {
	year, month, _ := now.Date()
	candidate := localdate.At(year, month, r.DueDay, clock.Hour, clock.Minute, loc)
	if candidate.After(now) {
		return candidate
	}
	if grace > 0 && now.Sub(candidate) <= grace {
		return candidate
	}
	return localdate.At(year, month+1, r.DueDay, clock.Hour, clock.Minute, loc)
}

// yearlyDue is the anchor month/day in the current local year, or next year
// once passed.
func yearlyDue(r BillReminder, clock localdate.Clock, now time.Time, loc *time.Location) (time.Time, error) {
	anchor, err := localdate.ParseMonth(r.StartMonth)
	if err != nil {
		return time.Time{}, err
	}
	candidate := localdate.At(now.Year(), anchor.Month, r.DueDay, clock.Hour, clock.Minute, loc)
	if !candidate.After(now) {
		candidate = localdate.At(now.Year()+1, anchor.Month, r.DueDay, clock.Hour, clock.Minute, loc)
	}
	return candidate, nil
}

// step produces the candidate that lies a whole number of periods past the
// anchor, in local-calendar terms, and estimates how many whole periods
// separate two instants so steppedDue can jump near "now" instead of
// looping from a possibly ancient anchor.
type step struct {
	fromAnchor func(anchor time.Time, periods int) time.Time
	whole      func(from, to time.Time) int
}

func stepDays(days int) step {
	return step{
		fromAnchor: func(anchor time.Time, periods int) time.Time {
			return localdate.AddDays(anchor, periods*days)
		},
		whole: func(from, to time.Time) int {
			return int(to.Sub(from) / (time.Duration(days) * 24 * time.Hour))
		},
	}
}

func stepMonths(months int) step {
	return step{
		fromAnchor: func(anchor time.Time, periods int) time.Time {
			return localdate.AddMonths(anchor, periods*months)
		},
		whole: func(from, to time.Time) int {
			elapsed := (to.Year()-from.Year())*12 + int(to.Month()-from.Month())
			return elapsed / months
		},
	}
}

// steppedDue anchors at StartMonth/DueDay and returns the first whole
// period past the anchor that lands strictly after now. The whole-period
// estimate leaves the correcting loop at most a couple of iterations no
// matter how old the anchor is.
func steppedDue(r BillReminder, clock localdate.Clock, now time.Time, loc *time.Location, s step) (time.Time, error) {
	month, err := localdate.ParseMonth(r.StartMonth)
	if err != nil {
		return time.Time{}, err
	}
	anchor := localdate.At(month.Year, month.Month, r.DueDay, clock.Hour, clock.Minute, loc)
	if anchor.After(now) {
		return anchor, nil
	}

	periods := s.whole(anchor, now)
	if periods < 0 {
		periods = 0
	}
	candidate := s.fromAnchor(anchor, periods)
	for !candidate.After(now) {
		periods++
		candidate = s.fromAnchor(anchor, periods)
	}
	return candidate, nil
}
