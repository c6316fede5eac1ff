package storage

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/camellia0204/notice-tray/internal/colors"
	"github.com/camellia0204/notice-tray/internal/config"
)

const (
	// BackendSQLite selects the durable SQLite-backed store.
	BackendSQLite = "sqlite"
	// BackendMemory selects the process-lifetime in-memory store.
	BackendMemory = "memory"

	firstRunDBFileName = "first_run.db"
)

// Store is a durable mapping from an opaque key to the instant the key
// last triggered. It mirrors firstrun.Store so backends can be wired
// without an import cycle.
type Store interface {
	Get(key string) (time.Time, bool, error)
	Put(key string, at time.Time) error
	Delete(key string) error
	Close() error
}

var _ Store = (*SQLiteStore)(nil)
var _ Store = (*MemoryStore)(nil)

// NewFromConfig creates a first-run store based on configuration.
func NewFromConfig() Store {
	backend := config.Get("first_run_backend", BackendSQLite)
	return NewForBackend(backend, config.Get("state_dir", ""))
}

// NewForBackend creates a first-run store for the provided backend name.
// Failures fall back to the in-memory store with a logged warning so the
// host application keeps working, at the cost of recurrence state not
// surviving the process.
func NewForBackend(backend, stateDir string) Store {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		dbPath := filepath.Join(stateDir, firstRunDBFileName)
		store, err := NewSQLiteStore(dbPath)
		if err != nil {
			colors.Warning(fmt.Sprintf("failed to initialize sqlite first-run store, falling back to memory: %v", err))
			return NewMemoryStore()
		}
		return store
	case BackendMemory:
		return NewMemoryStore()
	default:
		colors.Warning(fmt.Sprintf("unknown first-run backend '%s', falling back to memory", backend))
		return NewMemoryStore()
	}
}
