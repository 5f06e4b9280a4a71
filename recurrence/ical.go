package recurrence

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/samber/mo"
)

// icalDateTimeLayout and icalDateLayout are the iCalendar timestamp forms
// found in EXDATE values.
const (
	icalDateTimeLayout = "20060102T150405Z"
	icalDateLayout     = "20060102"
)

// ExpandComponent expands a parsed iCalendar VEVENT or VTODO into the
// occurrences falling inside [windowStart, windowEnd]. DTSTART, DTEND (or
// DURATION, or DUE for todos), RRULE and EXDATE are read off the component;
// a component without a usable DTSTART yields no occurrences. VTODO maps to
// ItemTypeTask, everything else to ItemTypeEvent.
func (e *Engine) ExpandComponent(comp *ical.Component, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	start, end, ok := componentTimes(comp)
	if !ok {
		return nil, nil
	}

	base := BaseOccurrence{Start: start, Type: componentItemType(comp)}
	if end.After(start) {
		base.End = mo.Some(end)
	}

	ruleStr := ""
	if p := comp.Props.Get(ical.PropRecurrenceRule); p != nil {
		ruleStr = p.Value
	}

	if ruleStr == "" {
		// Non-recurring: the base occurrence is the only one.
		if start.Before(windowStart) || start.After(windowEnd) {
			return nil, nil
		}
		return []Occurrence{{Start: base.Start, End: base.End, Type: base.Type}}, nil
	}

	return e.expand(ruleStr, windowStart, windowEnd, base, componentExDates(comp))
}

func componentItemType(comp *ical.Component) ItemType {
	if comp.Name == ical.CompToDo {
		return ItemTypeTask
	}
	return ItemTypeEvent
}

// componentTimes extracts the base start and end instants from a component.
// The end falls back to DURATION, then to a one-day span for all-day
// starts, then to the start itself. For VTODO, DUE can supply or extend the
// end.
func componentTimes(comp *ical.Component) (start, end time.Time, ok bool) {
	dtstart, err := comp.Props.DateTime(ical.PropDateTimeStart, nil)
	if err == nil {
		start = dtstart
		ok = true

		if dtend, err := comp.Props.DateTime(ical.PropDateTimeEnd, nil); err == nil {
			end = dtend
			// An all-day event whose DTEND names the same date spans the
			// whole day.
			sy, sm, sd := start.Date()
			ey, em, ed := end.Date()
			if isMidnight(start) && sy == ey && sm == em && sd == ed {
				end = start.AddDate(0, 0, 1)
			}
		} else if durProp := comp.Props.Get(ical.PropDuration); durProp != nil {
			dur, err := durProp.Duration()
			if err != nil {
				return time.Time{}, time.Time{}, false
			}
			end = start.Add(dur)
		} else if isMidnight(start) {
			end = start.AddDate(0, 0, 1)
		} else {
			end = start
		}
	}

	if comp.Name == ical.CompToDo {
		if due, err := comp.Props.DateTime(ical.PropDue, nil); err == nil {
			if !ok {
				start, end, ok = due, due, true
			} else if due.After(end) {
				end = due
			}
		}
	}

	return start, end, ok
}

// componentExDates collects EXDATE instants, honoring VALUE=DATE values by
// pinning them to midnight UTC.
func componentExDates(comp *ical.Component) []time.Time {
	prop := comp.Props.Get(ical.PropExceptionDates)
	if prop == nil || prop.Value == "" {
		return nil
	}

	dateOnly := false
	if values := prop.Params["VALUE"]; len(values) > 0 && strings.EqualFold(values[0], "DATE") {
		dateOnly = true
	}

	var exdates []time.Time
	for _, raw := range strings.Split(prop.Value, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		if t, ok := parseICalInstant(raw, dateOnly); ok {
			exdates = append(exdates, t)
		}
	}
	return exdates
}

func parseICalInstant(value string, dateOnly bool) (time.Time, bool) {
	if !dateOnly {
		if t, err := time.Parse(icalDateTimeLayout, value); err == nil {
			return t, true
		}
	}
	t, err := time.Parse(icalDateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

func isMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0
}
