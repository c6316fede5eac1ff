package notice

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/camellia0204/notice-tray/internal/colors"
	"github.com/camellia0204/notice-tray/internal/config"
	"github.com/camellia0204/notice-tray/internal/firstrun"
	"github.com/camellia0204/notice-tray/internal/logging"
)

// DefaultValidity is how long a newly added notice stays eligible when no
// explicit validity is given.
const DefaultValidity = 7 * 24 * time.Hour

// Fetcher retrieves the latest notice file from a well-known remote
// source into a local directory.
type Fetcher interface {
	FetchFile(relPath, destDir string) (string, error)
}

// Displayer presents one notice to the user. It may block until the
// notice is dismissed.
type Displayer interface {
	Show(message, title, openURL string) error
}

// Options configures a Manager. Paths and defaults are explicit here
// rather than read from process-wide state.
type Options struct {
	// SavePath is the local notice file.
	SavePath string
	// CacheDir receives remote downloads.
	CacheDir string
	// RemotePath is the notice file's path relative to the remote source.
	RemotePath string
	// DefaultSender stamps notices added without an explicit sender.
	DefaultSender string
	// DefaultValidity is the expiry horizon for added notices; zero means
	// DefaultValidity (7 days).
	DefaultValidity time.Duration
	// CurrentVersion is the running software version, compared against
	// notice version ceilings.
	CurrentVersion string

	// Fetcher retrieves remote notice files; required for Load(true).
	Fetcher Fetcher
	// Display presents eligible notices; required for ShowNotices.
	Display Displayer
	// Tracker holds first-run state; required.
	Tracker *firstrun.Tracker

	// VersionLess orders version strings; nil means version.Less.
	VersionLess func(a, b string) bool
	// Now supplies the current instant; nil means time.Now.
	Now func() time.Time
}

// Manager owns the ordered collection of notices.
type Manager struct {
	opts    Options
	notices []Notice
}

// NewManager creates a manager with the given options.
func NewManager(opts Options) *Manager {
	if opts.DefaultValidity == 0 {
		opts.DefaultValidity = DefaultValidity
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{opts: opts}
}

// env builds the eligibility environment from the manager's options.
func (m *Manager) env() Env {
	return Env{
		Tracker: m.opts.Tracker,
		Version: m.opts.CurrentVersion,
		Less:    m.opts.VersionLess,
		Now:     m.opts.Now,
	}
}

// Notices returns a copy of the collection in its current order.
func (m *Manager) Notices() []Notice {
	out := make([]Notice, len(m.notices))
	copy(out, m.notices)
	return out
}

// Load reads notice records into the collection and sorts it by send
// time. With fromRemote, the latest notice file is first fetched into the
// cache directory and read from there; otherwise the local save path is
// read. A missing file leaves the collection empty. Load is fail-soft:
// fetch or parse failures are recorded as diagnostics and the collection
// stays in whatever partial state was built.
func (m *Manager) Load(fromRemote bool) Result {
	var res Result

	path := m.opts.SavePath
	if fromRemote {
		path = filepath.Join(m.opts.CacheDir, filepath.Base(m.opts.RemotePath))
		if m.opts.Fetcher == nil {
			res.report("load notices: no fetcher configured")
		} else if local, err := m.opts.Fetcher.FetchFile(m.opts.RemotePath, m.opts.CacheDir); err != nil {
			// A stale cached copy is still worth reading.
			res.report("download latest notices: %v", err)
		} else {
			path = local
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return res
		}
		res.report("read notices from %s: %v", path, err)
		logResult("load", res)
		return res
	}

	var records []Notice
	if err := json.Unmarshal(data, &records); err != nil {
		res.report("parse notices from %s: %v", path, err)
		logResult("load", res)
		return res
	}

	for i := range records {
		records[i].normalize()
	}
	m.notices = append(m.notices, records...)
	m.sortBySendAt()

	logging.Info("notices loaded", "count", len(m.notices), "path", path)
	logResult("load", res)
	return res
}

// Save writes the collection to the local save path as indented JSON, a
// stable and human-diffable form. Save is fail-soft.
func (m *Manager) Save() Result {
	var res Result

	data, err := json.MarshalIndent(m.notices, "", "  ")
	if err != nil {
		res.report("serialize notices: %v", err)
		logResult("save", res)
		return res
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(m.opts.SavePath), config.FileModeDir); err != nil {
		res.report("create save directory: %v", err)
		logResult("save", res)
		return res
	}
	if err := os.WriteFile(m.opts.SavePath, data, config.FileModeFile); err != nil {
		res.report("write notices to %s: %v", m.opts.SavePath, err)
		logResult("save", res)
		return res
	}

	logging.Info("notices saved", "count", len(m.notices), "path", m.opts.SavePath)
	return res
}

// ShowNotices filters the collection through the eligibility predicate,
// preserving chronological order, and displays each eligible notice with
// a "k/N" position indicator. The whole filter-and-display pass sits in
// one failure boundary: a failure on notice k records a diagnostic and
// aborts notices k+1..N for this call.
func (m *Manager) ShowNotices() Result {
	var res Result

	var eligible []*Notice
	for i := range m.notices {
		need, err := m.notices[i].NeedShow(m.env())
		if err != nil {
			res.report("show notices: %v", err)
			logResult("show", res)
			return res
		}
		if need {
			eligible = append(eligible, &m.notices[i])
		}
	}

	colors.Info(fmt.Sprintf("Found %d new notice(s)", len(eligible)))
	for idx, n := range eligible {
		title := fmt.Sprintf("Notice (%d/%d) - %s", idx+1, len(eligible), n.Title)
		if err := m.opts.Display.Show(n.Message, title, n.OpenURL); err != nil {
			res.report("display notice %q: %v", n.Title, err)
			logResult("show", res)
			return res
		}
	}

	logging.Info("all pending notices shown", "count", len(eligible))
	return res
}

// AddParams carries the fields for AddNotice. Zero values fall back to
// the manager's defaults.
type AddParams struct {
	Title                 string
	Message               string
	Sender                string
	SendAt                string
	ShowType              ShowType
	OpenURL               string
	ValidDuration         time.Duration
	ShowOnlyBeforeVersion string
}

// AddNotice validates and appends a new notice. The show type must be
// one of the enumerated values, and a notice whose title, message and
// sender all match an existing one is rejected regardless of its send
// time. Rejections are logged and leave the collection unchanged.
func (m *Manager) AddNotice(p AddParams) error {
	if !p.ShowType.IsValid() {
		err := fmt.Errorf("invalid show type %q, must be one of: once, daily, weekly, monthly, always, deprecated", p.ShowType)
		colors.Error(err.Error())
		return err
	}

	for i := range m.notices {
		old := &m.notices[i]
		if old.Title == p.Title && old.Message == p.Message && old.Sender == p.Sender {
			err := fmt.Errorf("notice with identical title, message and sender already exists: %q", p.Title)
			colors.Error(err.Error())
			return err
		}
	}

	now := m.opts.Now()
	if p.Sender == "" {
		p.Sender = m.opts.DefaultSender
	}
	if p.SendAt == "" {
		p.SendAt = FormatTime(now)
	}
	if p.ValidDuration == 0 {
		p.ValidDuration = m.opts.DefaultValidity
	}

	n := Notice{
		Sender:                p.Sender,
		Title:                 p.Title,
		Message:               p.Message,
		SendAt:                p.SendAt,
		ShowType:              p.ShowType,
		OpenURL:               p.OpenURL,
		ExpireAt:              FormatTime(now.Add(p.ValidDuration)),
		ShowOnlyBeforeVersion: p.ShowOnlyBeforeVersion,
	}
	m.notices = append(m.notices, n)

	logging.Info("notice added", "title", n.Title, "show_type", n.ShowType.String(), "expire_at", n.ExpireAt)
	return nil
}

// ResetNotice clears first-run state and strips version gating for every
// notice with the given title. Used by test and administrative flows to
// force re-display.
func (m *Manager) ResetNotice(title string) error {
	found := false
	for i := range m.notices {
		if m.notices[i].Title != title {
			continue
		}
		found = true
		if err := m.notices[i].ResetForTesting(m.opts.Tracker); err != nil {
			return err
		}
	}
	if !found {
		return fmt.Errorf("no notice with title %q", title)
	}
	return nil
}

// sortBySendAt orders the collection chronologically. The timestamp
// format sorts as a plain string; ties keep insertion order.
func (m *Manager) sortBySendAt() {
	sort.SliceStable(m.notices, func(i, j int) bool {
		return m.notices[i].SendAt < m.notices[j].SendAt
	})
}

func logResult(op string, res Result) {
	for _, diag := range res.Diagnostics {
		colors.Warning(diag)
		logging.Warn("notice operation degraded", "op", op, "diagnostic", diag)
	}
}
