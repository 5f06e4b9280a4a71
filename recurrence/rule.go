package recurrence

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// Frequency is the FREQ component of a recurrence rule.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

// untilLayout is the RFC 5545 "basic" UTC timestamp form used by UNTIL.
const untilLayout = "20060102T150405Z"

// InvalidRuleError reports a recurrence rule string that failed to parse.
// It is always distinguishable from a valid rule that happens to produce
// zero occurrences, which is not an error at all.
type InvalidRuleError struct {
	Rule string
	Err  error
}

func (e *InvalidRuleError) Error() string {
	return fmt.Sprintf("invalid recurrence rule %q: %v", e.Rule, e.Err)
}

func (e *InvalidRuleError) Unwrap() error { return e.Err }

// Rule is a parsed recurrence rule, ready to be anchored at a base
// occurrence and iterated.
type Rule struct {
	raw string
	rr  *rrule.RRule
}

// String returns the original rule string.
func (r *Rule) String() string { return r.raw }

// Parse parses an RFC 5545 recurrence rule string
// (FREQ=...[;INTERVAL=n][;COUNT=n][;UNTIL=YYYYMMDDTHHMMSSZ]). It fails
// with *InvalidRuleError on empty input, malformed tokens or an
// unrecognized FREQ value.
func Parse(ruleStr string) (*Rule, error) {
	clean := strings.TrimSpace(ruleStr)
	if clean == "" {
		return nil, &InvalidRuleError{Rule: ruleStr, Err: errors.New("empty rule string")}
	}
	rr, err := rrule.StrToRRule(clean)
	if err != nil {
		return nil, &InvalidRuleError{Rule: ruleStr, Err: err}
	}
	return &Rule{raw: clean, rr: rr}, nil
}

// IsValid reports whether ruleStr parses as a recurrence rule. It never
// returns an error; the form layer uses it to reject rules before they are
// persisted.
func IsValid(ruleStr string) bool {
	_, err := Parse(ruleStr)
	return err == nil
}

// NewSimpleRule builds a canonical rule string from its parts. COUNT and
// UNTIL may both be present; whichever limit is reached first ends the
// sequence. UNTIL is rendered as an absolute UTC instant in basic ISO form.
func NewSimpleRule(freq Frequency, interval int, count mo.Option[int], until mo.Option[time.Time]) string {
	if interval < 1 {
		interval = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "FREQ=%s;INTERVAL=%d", freq, interval)
	if n, ok := count.Get(); ok {
		fmt.Fprintf(&b, ";COUNT=%d", n)
	}
	if u, ok := until.Get(); ok {
		fmt.Fprintf(&b, ";UNTIL=%s", u.UTC().Format(untilLayout))
	}
	return b.String()
}
