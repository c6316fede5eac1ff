// Package notice provides the notice domain: announcement records, their
// eligibility rules, and the manager that owns the collection.
package notice

import (
	"fmt"
	"time"

	"github.com/camellia0204/notice-tray/internal/firstrun"
	"github.com/camellia0204/notice-tray/internal/version"
)

// ShowType is the recurrence class of a notice. It governs how often the
// notice may be re-shown to the same installation.
type ShowType string

const (
	// ShowOnce shows the notice exactly once ever.
	ShowOnce ShowType = "once"
	// ShowDaily shows the notice once per calendar day.
	ShowDaily ShowType = "daily"
	// ShowWeekly shows the notice once per calendar week.
	ShowWeekly ShowType = "weekly"
	// ShowMonthly shows the notice once per calendar month.
	ShowMonthly ShowType = "monthly"
	// ShowAlways shows the notice on every run.
	ShowAlways ShowType = "always"
	// ShowDeprecated never shows the notice.
	ShowDeprecated ShowType = "deprecated"
)

// IsValid checks if the show type is one of the enumerated values.
func (s ShowType) IsValid() bool {
	switch s {
	case ShowOnce, ShowDaily, ShowWeekly, ShowMonthly, ShowAlways, ShowDeprecated:
		return true
	default:
		return false
	}
}

// String returns the string representation of the show type.
func (s ShowType) String() string {
	return string(s)
}

// window maps a recurring show type to its first-run window.
func (s ShowType) window() (firstrun.Window, bool) {
	switch s {
	case ShowOnce:
		return firstrun.WindowOneTime, true
	case ShowDaily:
		return firstrun.WindowDay, true
	case ShowWeekly:
		return firstrun.WindowWeek, true
	case ShowMonthly:
		return firstrun.WindowMonth, true
	default:
		return "", false
	}
}

// Notice represents one announcement.
type Notice struct {
	Sender                string   `json:"sender"`
	Title                 string   `json:"title"`
	Message               string   `json:"message"`
	SendAt                string   `json:"send_at"`
	ShowType              ShowType `json:"show_type"`
	OpenURL               string   `json:"open_url"`
	ExpireAt              string   `json:"expire_at"`
	ShowOnlyBeforeVersion string   `json:"show_only_before_version"`
}

// Env carries the collaborators the eligibility predicate consults.
type Env struct {
	// Tracker answers and records first-run state.
	Tracker *firstrun.Tracker
	// Version is the current software version; compared against a
	// notice's version ceiling.
	Version string
	// Less orders version strings; defaults to version.Less.
	Less func(a, b string) bool
	// Now supplies the current instant; defaults to time.Now.
	Now func() time.Time
}

func (e Env) less(a, b string) bool {
	if e.Less != nil {
		return e.Less(a, b)
	}
	return version.Less(a, b)
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// FirstRunKey returns the tracker key identifying this notice's
// recurrence state. Two notices with identical title and send time are
// indistinguishable to the tracker.
func (n *Notice) FirstRunKey() string {
	return fmt.Sprintf("notice_need_show_%s_%s", n.Title, n.SendAt)
}

// NeedShow reports whether the notice must be displayed now. Expiry is
// evaluated first and short-circuits, then the version ceiling, then the
// recurrence class. For once/daily/weekly/monthly notices a true result
// has already claimed the recurrence window in the tracker, so a second
// call in the same window returns false unless the key is reset.
func (n *Notice) NeedShow(env Env) (bool, error) {
	expireAt, err := ParseTime(n.ExpireAt)
	if err != nil {
		return false, fmt.Errorf("notice %q: parse expire_at: %w", n.Title, err)
	}
	if env.now().After(expireAt) {
		return false, nil
	}

	if n.ShowOnlyBeforeVersion != "" && !env.less(env.Version, n.ShowOnlyBeforeVersion) {
		return false, nil
	}

	switch n.ShowType {
	case ShowAlways:
		return true, nil
	case ShowDeprecated:
		return false, nil
	default:
		window, ok := n.ShowType.window()
		if !ok {
			// Unreachable after add-time validation; fail closed.
			return false, nil
		}
		first, err := env.Tracker.IsFirst(n.FirstRunKey(), window)
		if err != nil {
			return false, fmt.Errorf("notice %q: %w", n.Title, err)
		}
		return first, nil
	}
}

// ResetFirstRun clears the tracker entry for this notice, forcing the
// next NeedShow call to treat its window as fresh.
func (n *Notice) ResetFirstRun(tracker *firstrun.Tracker) error {
	return tracker.Reset(n.FirstRunKey())
}

// ResetForTesting clears tracker state and strips the version ceiling so
// the notice re-displays regardless of the running version. Used by
// test and administrative flows only.
func (n *Notice) ResetForTesting(tracker *firstrun.Tracker) error {
	if err := n.ResetFirstRun(tracker); err != nil {
		return err
	}
	n.ShowOnlyBeforeVersion = ""
	return nil
}

// NeverExpires is the expiry stamped onto records that carry none. Far
// enough out that such notices effectively never expire.
const NeverExpires = "2121-05-11 00:00:00"

// normalize stamps class defaults onto a deserialized record. Unknown
// JSON fields were already ignored by the decoder.
func (n *Notice) normalize() {
	if n.ShowType == "" {
		n.ShowType = ShowOnce
	}
	if n.ExpireAt == "" {
		n.ExpireAt = NeverExpires
	}
}
