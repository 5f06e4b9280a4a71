package recurrence

import (
	"time"

	"github.com/samber/mo"
)

// ItemType distinguishes what kind of calendar item an occurrence belongs to.
type ItemType string

const (
	ItemTypeEvent ItemType = "event"
	ItemTypeTask  ItemType = "task"
)

// BaseOccurrence is the first, defining instance of a recurring item. Its
// start anchors the rule (time of day, weekday and month-day patterns, and
// COUNT numbering all derive from it); its end, when present, fixes the
// duration of every generated occurrence.
type BaseOccurrence struct {
	Start time.Time
	End   mo.Option[time.Time]
	Type  ItemType
}

// Occurrence is one concrete instance generated by expanding a rule. End is
// absent when the base occurrence had no end.
type Occurrence struct {
	Start time.Time
	End   mo.Option[time.Time]
	Type  ItemType
}

// Duration returns the occurrence's duration, or zero when End is absent.
func (o Occurrence) Duration() time.Duration {
	end, ok := o.End.Get()
	if !ok {
		return 0
	}
	return end.Sub(o.Start)
}
