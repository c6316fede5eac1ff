package cmd

import (
	"time"

	"github.com/camellia0204/notice-tray/internal/colors"
	"github.com/camellia0204/notice-tray/internal/config"
	"github.com/camellia0204/notice-tray/internal/display"
	"github.com/camellia0204/notice-tray/internal/fetch"
	"github.com/camellia0204/notice-tray/internal/firstrun"
	"github.com/camellia0204/notice-tray/internal/logging"
	"github.com/camellia0204/notice-tray/internal/notice"
	"github.com/camellia0204/notice-tray/internal/storage"
	"github.com/camellia0204/notice-tray/internal/version"
)

// newManager assembles a notice manager from global configuration.
// The returned cleanup closes the first-run store and the logger.
var newManager = func() (*notice.Manager, func()) {
	config.Load()
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning("failed to initialize logging: " + err.Error())
	}

	store := storage.NewFromConfig()
	tracker := firstrun.NewTracker(store)

	manager := notice.NewManager(notice.Options{
		SavePath:        config.Get("save_path", ""),
		CacheDir:        config.Get("cache_dir", ""),
		RemotePath:      config.Get("remote_path", "notices.json"),
		DefaultSender:   config.Get("default_sender", ""),
		DefaultValidity: time.Duration(config.GetInt("valid_days", 7)) * 24 * time.Hour,
		CurrentVersion:  version.Current(),
		Fetcher:         fetch.NewFromConfig(),
		Display:         display.NewConsole(),
		Tracker:         tracker,
	})

	cleanup := func() {
		_ = store.Close()
		_ = logging.ShutdownGlobal()
	}
	return manager, cleanup
}
