// Package schedule decides which bill reminders need a notification job.
// The planner is pure: it computes due dates from an explicit "now" and
// returns the jobs it would create. Diffing against jobs that already exist
// and persisting the result stay with the caller.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/CaioDGallo/northstar-personal-finance-sub003/reminder"
)

// Reminder pairs a stored reminder's identity with its descriptor.
type Reminder struct {
	ID   string
	Bill reminder.BillReminder
}

// Job is a planned notification for one upcoming due date.
type Job struct {
	ID         uuid.UUID
	ReminderID string
	DueAt      time.Time
	NotifyAt   time.Time
}

// Planner plans notification jobs over a look-ahead horizon.
type Planner struct {
	lead    time.Duration
	horizon time.Duration
}

// NewPlanner creates a planner that notifies lead before each due date and
// only considers due dates within horizon of now.
func NewPlanner(lead, horizon time.Duration) *Planner {
	return &Planner{lead: lead, horizon: horizon}
}

// Plan computes each reminder's next due date and returns a job for every
// one due within the horizon, ordered by due date. A due date already
// passed (possible for "once" reminders, or monthly ones inside the
// caller's grace window) gets an immediate NotifyAt; passed due dates
// outside the grace window are skipped. Every job gets a fresh ID, so
// callers must dedupe against jobs created by earlier runs.
func (p *Planner) Plan(reminders []Reminder, opts reminder.Options) ([]Job, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
		opts.Now = now
	}
	cutoff := now.Add(p.horizon)

	var jobs []Job
	for _, rem := range reminders {
		due, err := reminder.NextDueDate(rem.Bill, opts)
		if err != nil {
			return nil, fmt.Errorf("plan reminder %s: %w", rem.ID, err)
		}
		if due.Before(now) && now.Sub(due) > opts.GraceWindow {
			continue
		}
		if due.After(cutoff) {
			continue
		}

		notifyAt := due.Add(-p.lead)
		if notifyAt.Before(now) {
			notifyAt = now
		}
		jobs = append(jobs, Job{
			ID:         uuid.New(),
			ReminderID: rem.ID,
			DueAt:      due,
			NotifyAt:   notifyAt,
		})
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].DueAt.Before(jobs[j].DueAt) })
	return jobs, nil
}
