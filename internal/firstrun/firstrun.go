// Package firstrun tracks whether a keyed event has already happened
// within a recurrence window. It is the state machine behind notice
// recurrence: a key triggers at most once per window, and querying a key
// that is eligible claims the window as a side effect.
package firstrun

import (
	"fmt"
	"time"
)

// Window is the recurrence granularity for a tracked key.
type Window string

const (
	// WindowOneTime triggers exactly once ever.
	WindowOneTime Window = "one_time"
	// WindowDay triggers once per calendar day.
	WindowDay Window = "day"
	// WindowWeek triggers once per ISO calendar week.
	WindowWeek Window = "week"
	// WindowMonth triggers once per calendar month.
	WindowMonth Window = "month"
)

// IsValid checks if the window is valid.
func (w Window) IsValid() bool {
	switch w {
	case WindowOneTime, WindowDay, WindowWeek, WindowMonth:
		return true
	default:
		return false
	}
}

// String returns the string representation of the window.
func (w Window) String() string {
	return string(w)
}

// Store is a durable mapping from an opaque key to the instant the key
// last triggered. Implementations must survive process restarts.
type Store interface {
	// Get returns the stored instant for key and whether a record exists.
	Get(key string) (time.Time, bool, error)
	// Put records the instant for key, replacing any existing record.
	Put(key string, at time.Time) error
	// Delete removes the record for key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases any resources held by the store.
	Close() error
}

// Tracker answers "is this the first trigger of key within its window?"
// against a durable Store.
type Tracker struct {
	store Store

	// Now supplies the current instant; overridable in tests.
	Now func() time.Time
}

// NewTracker creates a tracker backed by the given store.
func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, Now: time.Now}
}

// IsFirst reports whether the window for key has elapsed since the last
// trigger (or the key was never seen). When it returns true it records
// "now" against the key, so the call itself claims the window. Callers
// must not expect a second call in the same window to return true.
func (t *Tracker) IsFirst(key string, window Window) (bool, error) {
	if !window.IsValid() {
		return false, fmt.Errorf("firstrun: invalid window %q", window)
	}

	last, exists, err := t.store.Get(key)
	if err != nil {
		return false, fmt.Errorf("firstrun: get %q: %w", key, err)
	}

	now := t.Now()
	if exists && !windowElapsed(last, now, window) {
		return false, nil
	}

	if err := t.store.Put(key, now); err != nil {
		return false, fmt.Errorf("firstrun: put %q: %w", key, err)
	}
	return true, nil
}

// Reset clears the stored instant for key, making the next IsFirst call
// for that key return true unconditionally.
func (t *Tracker) Reset(key string) error {
	if err := t.store.Delete(key); err != nil {
		return fmt.Errorf("firstrun: reset %q: %w", key, err)
	}
	return nil
}

// windowElapsed reports whether now falls in a later window than last.
// Comparisons use calendar boundaries, not rolling durations: a key that
// triggered at 23:59 may trigger again at 00:01 the next day. That is
// intentional.
func windowElapsed(last, now time.Time, window Window) bool {
	switch window {
	case WindowOneTime:
		return false
	case WindowDay:
		return !sameDay(last, now)
	case WindowWeek:
		return !sameWeek(last, now)
	case WindowMonth:
		return !sameMonth(last, now)
	default:
		return false
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func sameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
