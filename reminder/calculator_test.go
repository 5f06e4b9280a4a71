package reminder

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDueDate_Once(t *testing.T) {
	r := BillReminder{Type: Once, DueDay: 4, StartMonth: "2025-07", DueTime: "09:30"}

	got, err := NextDueDate(r, Options{
		Now:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 7, 4, 9, 30, 0, 0, time.UTC)))

	// A lapsed one-shot reminder is not rolled forward; it simply reports
	// its past instant.
	got, err = NextDueDate(r, Options{
		Now:      time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 7, 4, 9, 30, 0, 0, time.UTC)))
}

func TestNextDueDate_Monthly(t *testing.T) {
	r := BillReminder{Type: Monthly, DueDay: 15}

	tests := []struct {
		name  string
		now   time.Time
		grace time.Duration
		want  time.Time
	}{
		{
			name: "upcoming this month",
			now:  time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "past mid-month rolls to next month",
			now:  time.Date(2025, 5, 16, 8, 0, 0, 0, time.UTC),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "just past due but inside grace window",
			now:   time.Date(2025, 5, 15, 0, 30, 0, 0, time.UTC),
			grace: 24 * time.Hour,
			want:  time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "just past due without grace rolls forward",
			now:  time.Date(2025, 5, 15, 0, 30, 0, 0, time.UTC),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into january",
			now:  time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(r, Options{Now: tt.now, TimeZone: "UTC", GraceWindow: tt.grace})
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNextDueDate_MonthlyWithDueTime(t *testing.T) {
	r := BillReminder{Type: Monthly, DueDay: 15, DueTime: "14:30"}

	got, err := NextDueDate(r, Options{
		Now:      time.Date(2025, 5, 15, 10, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2025, 5, 15, 14, 30, 0, 0, time.UTC)),
		"due time not yet passed keeps today's candidate")
}

func TestNextDueDate_Weekly(t *testing.T) {
	r := BillReminder{Type: Weekly, DueWeekday: time.Sunday, DueTime: "20:00"}

	t.Run("later today", func(t *testing.T) {
		// 2025-05-11 is a Sunday.
		got, err := NextDueDate(r, Options{
			Now:      time.Date(2025, 5, 11, 5, 0, 0, 0, time.UTC),
			TimeZone: "UTC",
		})
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 5, 11, 20, 0, 0, 0, time.UTC)))
	})

	t.Run("already passed today rolls a week", func(t *testing.T) {
		got, err := NextDueDate(r, Options{
			Now:      time.Date(2025, 5, 11, 21, 0, 0, 0, time.UTC),
			TimeZone: "UTC",
		})
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 5, 18, 20, 0, 0, 0, time.UTC)))
	})

	t.Run("midweek", func(t *testing.T) {
		// 2025-05-14 is a Wednesday.
		got, err := NextDueDate(r, Options{
			Now:      time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC),
			TimeZone: "UTC",
		})
		require.NoError(t, err)
		assert.True(t, got.Equal(time.Date(2025, 5, 18, 20, 0, 0, 0, time.UTC)))
	})
}

// A reminder due Sunday midnight in Sao Paulo, computed from a UTC "now"
// that is already Sunday in UTC but still Saturday evening locally, must
// resolve to the imminent local Sunday rather than skipping a week.
func TestNextDueDate_WeeklyHonorsZoneWallClock(t *testing.T) {
	sp, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	r := BillReminder{Type: Weekly, DueWeekday: time.Sunday}

	// 02:00 UTC Sunday == 23:00 Saturday in Sao Paulo (UTC-3).
	now := time.Date(2025, 6, 8, 2, 0, 0, 0, time.UTC)
	got, err := NextDueDate(r, Options{Now: now, TimeZone: "America/Sao_Paulo"})
	require.NoError(t, err)

	want := time.Date(2025, 6, 8, 0, 0, 0, 0, sp)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
	assert.True(t, got.After(now), "due instant is one local hour ahead of now")
}

func TestNextDueDate_WeeklyAcrossDSTTransition(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r := BillReminder{Type: Weekly, DueWeekday: time.Monday, DueTime: "09:00"}

	// Noon EDT on 2025-03-09, the day clocks sprang forward.
	now := time.Date(2025, 3, 9, 16, 0, 0, 0, time.UTC)
	got, err := NextDueDate(r, Options{Now: now, TimeZone: "America/New_York"})
	require.NoError(t, err)

	want := time.Date(2025, 3, 10, 9, 0, 0, 0, ny)
	assert.True(t, got.Equal(want))
	assert.Equal(t, 9, got.In(ny).Hour(), "wall-clock hour survives the transition")
}

func TestNextDueDate_Biweekly(t *testing.T) {
	r := BillReminder{Type: Biweekly, DueDay: 6, StartMonth: "2025-01"}

	got, err := NextDueDate(r, Options{
		Now:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.NoError(t, err)
	// Anchor Jan 6; fourteen-day steps land on Jan 20, then Feb 3.
	assert.True(t, got.Equal(time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)))
}

func TestNextDueDate_BiweeklyKeepsWallClockAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	r := BillReminder{Type: Biweekly, DueDay: 1, StartMonth: "2025-03"}

	// Anchor is Mar 1 00:00 EST; the next step crosses the spring-forward
	// boundary and must land on Mar 15 00:00 EDT, not 01:00.
	now := time.Date(2025, 3, 10, 4, 0, 0, 0, time.UTC)
	got, err := NextDueDate(r, Options{Now: now, TimeZone: "America/New_York"})
	require.NoError(t, err)

	want := time.Date(2025, 3, 15, 0, 0, 0, 0, ny)
	assert.True(t, got.Equal(want), "got %v, want %v", got, want)
	assert.Equal(t, 0, got.In(ny).Hour())
}

func TestNextDueDate_BiweeklyOldAnchor(t *testing.T) {
	r := BillReminder{Type: Biweekly, DueDay: 1, StartMonth: "2020-01"}

	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	got, err := NextDueDate(r, Options{Now: now, TimeZone: "UTC"})
	require.NoError(t, err)

	assert.True(t, got.After(now))
	assert.LessOrEqual(t, got.Sub(now), 14*24*time.Hour)
	// Still on the anchor's fourteen-day grid.
	anchor := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Zero(t, int(got.Sub(anchor).Hours())%(14*24))
}

func TestNextDueDate_Quarterly(t *testing.T) {
	r := BillReminder{Type: Quarterly, DueDay: 10, StartMonth: "2025-01"}

	got, err := NextDueDate(r, Options{
		Now:      time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.NoError(t, err)
	// Jan 10, Apr 10 have passed; next is Jul 10.
	assert.True(t, got.Equal(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)))
}

func TestNextDueDate_YearlyWraparound(t *testing.T) {
	r := BillReminder{Type: Yearly, DueDay: 1, StartMonth: "2025-03"}

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "before this year's date",
			now:  time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "after this year's date wraps to next year",
			now:  time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextDueDate(r, Options{Now: tt.now, TimeZone: "UTC"})
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNextDueDate_UnsupportedType(t *testing.T) {
	_, err := NextDueDate(BillReminder{Type: "daily"}, Options{
		Now:      time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		TimeZone: "UTC",
	})
	require.Error(t, err)

	var unsupported *UnsupportedTypeError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, RecurrenceType("daily"), unsupported.Type)
	assert.Contains(t, err.Error(), "daily")
}

func TestNextDueDate_Idempotent(t *testing.T) {
	r := BillReminder{Type: Monthly, DueDay: 28, DueTime: "08:00"}
	opts := Options{
		Now:      time.Date(2025, 9, 3, 11, 22, 33, 0, time.UTC),
		TimeZone: "America/Sao_Paulo",
	}

	first, err := NextDueDate(r, opts)
	require.NoError(t, err)
	second, err := NextDueDate(r, opts)
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestNextDueDate_BadInputs(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("unknown time zone", func(t *testing.T) {
		_, err := NextDueDate(BillReminder{Type: Monthly, DueDay: 1}, Options{Now: now, TimeZone: "Not/AZone"})
		assert.Error(t, err)
	})

	t.Run("malformed due time", func(t *testing.T) {
		_, err := NextDueDate(BillReminder{Type: Monthly, DueDay: 1, DueTime: "9am"}, Options{Now: now, TimeZone: "UTC"})
		assert.Error(t, err)
	})

	t.Run("malformed start month", func(t *testing.T) {
		_, err := NextDueDate(BillReminder{Type: Yearly, DueDay: 1, StartMonth: "March 2025"}, Options{Now: now, TimeZone: "UTC"})
		assert.Error(t, err)
	})
}
