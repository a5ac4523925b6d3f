package store

import (
	"sync"
	"time"

	"medialib/internal/model"
)

// MemoryStore holds the snapshot in process memory. Used by tests and by
// deployments that opt out of an on-disk database.
type MemoryStore struct {
	mu       sync.Mutex
	entries  []model.CatalogEntry
	loadedAt time.Time
	saved    bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) SaveSnapshot(entries []model.CatalogEntry, loadedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append([]model.CatalogEntry(nil), entries...)
	s.loadedAt = loadedAt
	s.saved = true
	return nil
}

func (s *MemoryStore) LoadSnapshot() ([]model.CatalogEntry, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, time.Time{}, ErrNoSnapshot
	}
	return append([]model.CatalogEntry(nil), s.entries...), s.loadedAt, nil
}
