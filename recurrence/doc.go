/*
Package recurrence expands RFC 5545 recurrence rules into concrete
occurrences for a bounded query window.

The package operates on plain values: a rule string, a base occurrence
anchor, and a window. It performs no I/O and holds no state beyond an
optional result cache, so an Engine may be shared freely between
goroutines.

	eng := recurrence.NewEngine()
	defer eng.Close()

	occs, err := eng.ExpandOccurrences(
		"FREQ=WEEKLY;INTERVAL=1",
		windowStart, windowEnd,
		recurrence.BaseOccurrence{Start: firstStart, Type: recurrence.ItemTypeEvent},
	)

Only the rule subset used by the surrounding application is supported:
FREQ (DAILY/WEEKLY/MONTHLY/YEARLY), INTERVAL, COUNT and UNTIL. Anything
the underlying parser rejects surfaces as *InvalidRuleError; a rule that
parses but produces no occurrences in the window is not an error.
*/
package recurrence
