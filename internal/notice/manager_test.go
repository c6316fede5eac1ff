package notice

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camellia0204/notice-tray/internal/firstrun"
	"github.com/camellia0204/notice-tray/internal/storage"
)

type shownNotice struct {
	message string
	title   string
	openURL string
}

type fakeDisplay struct {
	shown  []shownNotice
	failOn string
}

func (d *fakeDisplay) Show(message, title, openURL string) error {
	if d.failOn != "" && message == d.failOn {
		return errors.New("popup failed")
	}
	d.shown = append(d.shown, shownNotice{message, title, openURL})
	return nil
}

type fakeFetcher struct {
	payload []byte
	err     error
	calls   int
}

func (f *fakeFetcher) FetchFile(relPath, destDir string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	path := filepath.Join(destDir, filepath.Base(relPath))
	if err := os.WriteFile(path, f.payload, 0644); err != nil {
		return "", err
	}
	return path, nil
}

type managerFixture struct {
	manager *Manager
	display *fakeDisplay
	fetcher *fakeFetcher
	now     *time.Time
}

func newFixture(t *testing.T) *managerFixture {
	t.Helper()
	dir := t.TempDir()
	now := time.Date(2021, 7, 1, 12, 0, 0, 0, time.Local)

	tracker := firstrun.NewTracker(storage.NewMemoryStore())
	tracker.Now = func() time.Time { return now }

	display := &fakeDisplay{}
	fetcher := &fakeFetcher{}

	fixture := &managerFixture{display: display, fetcher: fetcher, now: &now}
	fixture.manager = NewManager(Options{
		SavePath:       filepath.Join(dir, "notices.json"),
		CacheDir:       filepath.Join(dir, "downloads"),
		RemotePath:     "notices.json",
		DefaultSender:  "tester",
		CurrentVersion: "1.0.0",
		Fetcher:        fetcher,
		Display:        display,
		Tracker:        tracker,
		Now:            func() time.Time { return now },
	})
	return fixture
}

func TestLoadMissingFileLeavesCollectionEmpty(t *testing.T) {
	f := newFixture(t)

	res := f.manager.Load(false)
	assert.True(t, res.Ok())
	assert.Empty(t, f.manager.Notices())
}

func TestLoadSortsBySendAt(t *testing.T) {
	f := newFixture(t)
	payload := `[
  {"title": "later", "message": "m", "send_at": "2021-06-01 00:00:00", "show_type": "once", "expire_at": "2121-01-01 00:00:00"},
  {"title": "earlier", "message": "m", "send_at": "2021-01-01 00:00:00", "show_type": "once", "expire_at": "2121-01-01 00:00:00"}
]`
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte(payload), 0644))

	res := f.manager.Load(false)
	require.True(t, res.Ok())

	notices := f.manager.Notices()
	require.Len(t, notices, 2)
	assert.Equal(t, "earlier", notices[0].Title)
	assert.Equal(t, "later", notices[1].Title)
}

func TestLoadDefaultsMissingFieldsAndIgnoresUnknown(t *testing.T) {
	f := newFixture(t)
	payload := `[{"title": "bare", "message": "m", "send_at": "2021-01-01 00:00:00", "not_a_field": 42}]`
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte(payload), 0644))

	res := f.manager.Load(false)
	require.True(t, res.Ok())

	notices := f.manager.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, ShowOnce, notices[0].ShowType)
	assert.Equal(t, NeverExpires, notices[0].ExpireAt)
}

func TestShowNoticesRecordWithoutExpiryStillShows(t *testing.T) {
	f := newFixture(t)
	payload := `[
  {"title": "bare", "message": "no expiry", "send_at": "2021-01-01 00:00:00", "show_type": "always"},
  {"title": "after", "message": "m", "send_at": "2021-06-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"}
]`
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte(payload), 0644))
	require.True(t, f.manager.Load(false).Ok())

	res := f.manager.ShowNotices()
	require.True(t, res.Ok())
	require.Len(t, f.display.shown, 2)
	assert.Equal(t, "Notice (1/2) - bare", f.display.shown[0].title)
	assert.Equal(t, "Notice (2/2) - after", f.display.shown[1].title)
}

func TestLoadMalformedFileIsFailSoft(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte("{not json"), 0644))

	res := f.manager.Load(false)
	assert.False(t, res.Ok())
	assert.Empty(t, f.manager.Notices())
}

func TestLoadFromRemoteReadsFetchedFile(t *testing.T) {
	f := newFixture(t)
	f.fetcher.payload = []byte(`[{"title": "remote", "message": "m", "send_at": "2021-01-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"}]`)

	res := f.manager.Load(true)
	require.True(t, res.Ok())
	assert.Equal(t, 1, f.fetcher.calls)

	notices := f.manager.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "remote", notices[0].Title)
}

func TestLoadFromRemoteFallsBackToStaleCache(t *testing.T) {
	f := newFixture(t)
	cacheDir := f.manager.opts.CacheDir
	require.NoError(t, os.MkdirAll(cacheDir, 0755))
	stale := `[{"title": "cached", "message": "m", "send_at": "2021-01-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"}]`
	require.NoError(t, os.WriteFile(filepath.Join(cacheDir, "notices.json"), []byte(stale), 0644))
	f.fetcher.err = errors.New("network down")

	res := f.manager.Load(true)
	assert.False(t, res.Ok())

	notices := f.manager.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, "cached", notices[0].Title)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:    "first",
		Message:  "message one",
		ShowType: ShowOnce,
		SendAt:   "2021-01-01 00:00:00",
		OpenURL:  "https://example.com",
	}))
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:    "second",
		Message:  "message two",
		ShowType: ShowWeekly,
		SendAt:   "2021-02-01 00:00:00",
	}))
	require.True(t, f.manager.Save().Ok())

	reloaded := NewManager(f.manager.opts)
	require.True(t, reloaded.Load(false).Ok())

	assert.Equal(t, f.manager.Notices(), reloaded.Notices())
}

func TestAddNoticeInvalidShowType(t *testing.T) {
	f := newFixture(t)

	err := f.manager.AddNotice(AddParams{Title: "t", Message: "m", ShowType: ShowType("bogus")})
	assert.Error(t, err)
	assert.Empty(t, f.manager.Notices())
}

func TestAddNoticeRejectsExactDuplicate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:    "t",
		Message:  "m",
		Sender:   "s",
		SendAt:   "2021-01-01 00:00:00",
		ShowType: ShowOnce,
	}))

	// Same title, message and sender but a different send time: rejected.
	err := f.manager.AddNotice(AddParams{
		Title:    "t",
		Message:  "m",
		Sender:   "s",
		SendAt:   "2021-02-02 00:00:00",
		ShowType: ShowOnce,
	})
	assert.Error(t, err)
	assert.Len(t, f.manager.Notices(), 1)
}

func TestAddNoticeStampsDefaults(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:    "defaults",
		Message:  "m",
		ShowType: ShowOnce,
	}))

	notices := f.manager.Notices()
	require.Len(t, notices, 1)
	n := notices[0]
	assert.Equal(t, "tester", n.Sender)
	assert.Equal(t, FormatTime(*f.now), n.SendAt)
	assert.Equal(t, FormatTime(f.now.Add(7*24*time.Hour)), n.ExpireAt)
}

func TestAddNoticeExplicitValidity(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:         "short lived",
		Message:       "m",
		ShowType:      ShowOnce,
		ValidDuration: 24 * time.Hour,
	}))

	n := f.manager.Notices()[0]
	assert.Equal(t, FormatTime(f.now.Add(24*time.Hour)), n.ExpireAt)
}

func TestShowNoticesChronologicalScenario(t *testing.T) {
	f := newFixture(t)
	payload := `[
  {"title": "B", "message": "always shown", "send_at": "2021-06-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"},
  {"title": "A", "message": "shown once", "send_at": "2021-01-01 00:00:00", "show_type": "once", "expire_at": "2121-01-01 00:00:00"}
]`
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte(payload), 0644))
	require.True(t, f.manager.Load(false).Ok())

	// First pass: A then B, chronological.
	res := f.manager.ShowNotices()
	require.True(t, res.Ok())
	require.Len(t, f.display.shown, 2)
	assert.Equal(t, "Notice (1/2) - A", f.display.shown[0].title)
	assert.Equal(t, "Notice (2/2) - B", f.display.shown[1].title)

	// Second pass: the once notice has consumed its window.
	f.display.shown = nil
	res = f.manager.ShowNotices()
	require.True(t, res.Ok())
	require.Len(t, f.display.shown, 1)
	assert.Equal(t, "Notice (1/1) - B", f.display.shown[0].title)
}

func TestShowNoticesDisplayFailureAbortsRemaining(t *testing.T) {
	f := newFixture(t)
	payload := `[
  {"title": "A", "message": "breaks", "send_at": "2021-01-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"},
  {"title": "B", "message": "never reached", "send_at": "2021-06-01 00:00:00", "show_type": "always", "expire_at": "2121-01-01 00:00:00"}
]`
	require.NoError(t, os.WriteFile(f.manager.opts.SavePath, []byte(payload), 0644))
	require.True(t, f.manager.Load(false).Ok())
	f.display.failOn = "breaks"

	res := f.manager.ShowNotices()
	assert.False(t, res.Ok())
	assert.Empty(t, f.display.shown)
}

func TestResetNotice(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.manager.AddNotice(AddParams{
		Title:                 "resettable",
		Message:               "m",
		ShowType:              ShowOnce,
		ShowOnlyBeforeVersion: "0.0.1",
	}))

	// Gated by version: nothing shows.
	require.True(t, f.manager.ShowNotices().Ok())
	assert.Empty(t, f.display.shown)

	require.NoError(t, f.manager.ResetNotice("resettable"))
	require.True(t, f.manager.ShowNotices().Ok())
	assert.Len(t, f.display.shown, 1)

	assert.Error(t, f.manager.ResetNotice("no such title"))
}
