package firstrun

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camellia0204/notice-tray/internal/storage"
)

func newTestTracker(t *testing.T, at time.Time) (*Tracker, *time.Time) {
	t.Helper()
	now := at
	tracker := NewTracker(storage.NewMemoryStore())
	tracker.Now = func() time.Time { return now }
	return tracker, &now
}

func mustBeFirst(t *testing.T, tracker *Tracker, key string, window Window, want bool) {
	t.Helper()
	got, err := tracker.IsFirst(key, window)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWindowIsValid(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   bool
	}{
		{"one_time", WindowOneTime, true},
		{"day", WindowDay, true},
		{"week", WindowWeek, true},
		{"month", WindowMonth, true},
		{"invalid", Window("hourly"), false},
		{"empty", Window(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.window.IsValid())
		})
	}
}

func TestOneTimeTriggersExactlyOnce(t *testing.T) {
	tracker, now := newTestTracker(t, time.Date(2021, 5, 11, 12, 0, 0, 0, time.Local))

	mustBeFirst(t, tracker, "k", WindowOneTime, true)
	mustBeFirst(t, tracker, "k", WindowOneTime, false)

	// Even years later it stays consumed.
	*now = now.AddDate(3, 0, 0)
	mustBeFirst(t, tracker, "k", WindowOneTime, false)
}

func TestDayWindowUsesCalendarBoundaries(t *testing.T) {
	tracker, now := newTestTracker(t, time.Date(2021, 5, 11, 23, 59, 0, 0, time.Local))

	mustBeFirst(t, tracker, "k", WindowDay, true)
	mustBeFirst(t, tracker, "k", WindowDay, false)

	// Two minutes later, but past midnight: a new calendar day.
	*now = now.Add(2 * time.Minute)
	mustBeFirst(t, tracker, "k", WindowDay, true)
	mustBeFirst(t, tracker, "k", WindowDay, false)
}

func TestWeekWindow(t *testing.T) {
	// 2021-05-09 is a Sunday (ISO week 18), 2021-05-10 a Monday (week 19).
	tracker, now := newTestTracker(t, time.Date(2021, 5, 9, 10, 0, 0, 0, time.Local))

	mustBeFirst(t, tracker, "k", WindowWeek, true)
	mustBeFirst(t, tracker, "k", WindowWeek, false)

	*now = time.Date(2021, 5, 10, 10, 0, 0, 0, time.Local)
	mustBeFirst(t, tracker, "k", WindowWeek, true)

	// Later the same week: consumed.
	*now = time.Date(2021, 5, 14, 10, 0, 0, 0, time.Local)
	mustBeFirst(t, tracker, "k", WindowWeek, false)
}

func TestMonthWindow(t *testing.T) {
	tracker, now := newTestTracker(t, time.Date(2021, 5, 31, 10, 0, 0, 0, time.Local))

	mustBeFirst(t, tracker, "k", WindowMonth, true)
	mustBeFirst(t, tracker, "k", WindowMonth, false)

	*now = time.Date(2021, 6, 1, 10, 0, 0, 0, time.Local)
	mustBeFirst(t, tracker, "k", WindowMonth, true)

	// Same month next year is a different window.
	*now = time.Date(2022, 6, 1, 10, 0, 0, 0, time.Local)
	mustBeFirst(t, tracker, "k", WindowMonth, true)
}

func TestResetMakesKeyEligibleAgain(t *testing.T) {
	tracker, _ := newTestTracker(t, time.Date(2021, 5, 11, 12, 0, 0, 0, time.Local))

	mustBeFirst(t, tracker, "k", WindowOneTime, true)
	mustBeFirst(t, tracker, "k", WindowOneTime, false)

	require.NoError(t, tracker.Reset("k"))
	mustBeFirst(t, tracker, "k", WindowOneTime, true)
}

func TestResetMissingKeyIsNotAnError(t *testing.T) {
	tracker, _ := newTestTracker(t, time.Now())
	assert.NoError(t, tracker.Reset("never-seen"))
}

func TestKeysAreIndependent(t *testing.T) {
	tracker, _ := newTestTracker(t, time.Date(2021, 5, 11, 12, 0, 0, 0, time.Local))

	mustBeFirst(t, tracker, "a", WindowDay, true)
	mustBeFirst(t, tracker, "b", WindowDay, true)
	mustBeFirst(t, tracker, "a", WindowDay, false)
}

func TestInvalidWindowIsAnError(t *testing.T) {
	tracker, _ := newTestTracker(t, time.Now())
	_, err := tracker.IsFirst("k", Window("hourly"))
	assert.Error(t, err)
}
