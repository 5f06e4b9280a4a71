package recurrence

import (
	"time"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// ExpandOccurrences materializes every occurrence of ruleStr whose start
// falls inside [windowStart, windowEnd] (both ends inclusive), anchored at
// base.Start. When base.End is present, every occurrence's end is
// start + (base.End - base.Start); otherwise the end is absent.
//
// COUNT is counted from the rule's own first occurrence, never from the
// window, so two expansions with different windows over the same rule agree
// on the numbering of every occurrence. UNTIL is an inclusive cutoff: an
// occurrence starting exactly at UNTIL is returned.
func (e *Engine) ExpandOccurrences(ruleStr string, windowStart, windowEnd time.Time, base BaseOccurrence) ([]Occurrence, error) {
	if e.cache != nil {
		if occs, ok := e.cache.get(ruleStr, base, windowStart, windowEnd); ok {
			return occs, nil
		}
	}

	occs, err := e.expand(ruleStr, windowStart, windowEnd, base, nil)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		e.cache.set(ruleStr, base, windowStart, windowEnd, occs)
	}
	return occs, nil
}

// NextOccurrence returns the first occurrence strictly after from, or an
// absent Option when COUNT or UNTIL exhausts the rule before one is
// produced. A zero baseStart anchors the rule at from itself.
func (e *Engine) NextOccurrence(ruleStr string, from, baseStart time.Time) (mo.Option[time.Time], error) {
	rule, err := Parse(ruleStr)
	if err != nil {
		return mo.None[time.Time](), err
	}

	anchor := baseStart
	if anchor.IsZero() {
		anchor = from
	}
	rule.rr.DTStart(anchor)

	next := rule.rr.After(from, false)
	if next.IsZero() {
		return mo.None[time.Time](), nil
	}
	return mo.Some(next), nil
}

// OccurrencesBetween returns the bare start instants of every occurrence in
// [windowStart, windowEnd], for callers that do not care about duration. A
// zero baseStart anchors the rule at windowStart.
func (e *Engine) OccurrencesBetween(ruleStr string, windowStart, windowEnd, baseStart time.Time) ([]time.Time, error) {
	rule, err := Parse(ruleStr)
	if err != nil {
		return nil, err
	}

	anchor := baseStart
	if anchor.IsZero() {
		anchor = windowStart
	}
	rule.rr.DTStart(anchor)

	times := rule.rr.Between(windowStart, windowEnd, true)
	if max := e.config.MaxOccurrences; max > 0 && len(times) > max {
		times = times[:max]
	}
	return times, nil
}

// expand is the shared expansion path. exdates, when non-empty, removes
// matching occurrences (used by the iCal integration).
func (e *Engine) expand(ruleStr string, windowStart, windowEnd time.Time, base BaseOccurrence, exdates []time.Time) ([]Occurrence, error) {
	rule, err := Parse(ruleStr)
	if err != nil {
		return nil, err
	}
	rule.rr.DTStart(base.Start)

	var times []time.Time
	if len(exdates) == 0 {
		times = rule.rr.Between(windowStart, windowEnd, true)
	} else {
		var set rrule.Set
		set.RRule(rule.rr)
		for _, ex := range exdates {
			// Align the exception with the anchor's location so instants
			// compare by absolute time regardless of how EXDATE was stored.
			set.ExDate(ex.In(base.Start.Location()))
		}
		times = set.Between(windowStart, windowEnd, true)
	}

	if max := e.config.MaxOccurrences; max > 0 && len(times) > max {
		times = times[:max]
	}

	var duration time.Duration
	hasEnd := false
	if end, ok := base.End.Get(); ok {
		duration = end.Sub(base.Start)
		hasEnd = true
	}

	occs := make([]Occurrence, 0, len(times))
	for _, start := range times {
		occ := Occurrence{Start: start, Type: base.Type}
		if hasEnd {
			occ.End = mo.Some(start.Add(duration))
		}
		occs = append(occs, occ)
	}
	return occs, nil
}
