// Package storage provides first-run store backends and backend selection.
package storage

import (
	"sync"
	"time"
)

// MemoryStore is an in-memory first-run store. It does not survive
// process restarts; it backs tests and serves as the fallback when the
// durable backend cannot be opened.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]time.Time)}
}

// Get returns the stored instant for key and whether a record exists.
func (s *MemoryStore) Get(key string) (time.Time, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.records[key]
	return at, ok, nil
}

// Put records the instant for key.
func (s *MemoryStore) Put(key string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = at
	return nil
}

// Delete removes the record for key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
