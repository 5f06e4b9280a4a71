// Package reminder computes the next due instant for periodic bill
// reminders. Like package recurrence it is pure: callers supply "now"
// explicitly, so results are deterministic and trivially testable.
package reminder

import (
	"fmt"
	"time"
)

// RecurrenceType enumerates the supported bill-reminder periods.
type RecurrenceType string

const (
	Once      RecurrenceType = "once"
	Weekly    RecurrenceType = "weekly"
	Biweekly  RecurrenceType = "biweekly"
	Monthly   RecurrenceType = "monthly"
	Quarterly RecurrenceType = "quarterly"
	Yearly    RecurrenceType = "yearly"
)

// BillReminder describes a periodic bill. Which anchor fields are read
// depends on Type:
//
//   - weekly reads DueWeekday (time.Weekday, Sunday=0)
//   - monthly reads DueDay (1..31)
//   - once, biweekly, quarterly and yearly read DueDay plus StartMonth;
//     yearly uses only StartMonth's month, keeping the year from "now"
//
// DueTime is an optional "HH:MM" wall-clock time; empty means local
// midnight. Field ranges are validated by the form layer before the
// descriptor is ever persisted, and the calculator trusts them.
type BillReminder struct {
	Type       RecurrenceType
	DueDay     int
	DueWeekday time.Weekday
	StartMonth string // "YYYY-MM"
	DueTime    string // "HH:MM", empty for midnight
}

// UnsupportedTypeError reports a recurrence type outside the supported
// enumerants. It indicates bad persisted data or a programming error, not
// user input: validation rejects these long before they reach the
// calculator.
type UnsupportedTypeError struct {
	Type RecurrenceType
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported recurrence type %q", string(e.Type))
}
