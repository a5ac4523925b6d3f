package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medialib/internal/model"
)

func sampleEntries() []model.CatalogEntry {
	return []model.CatalogEntry{
		{Title: "Spring Promo.mp3", ShortLabel: "Spring Promo", Link: "https://host/a", Category: "Snacks", MediaType: "企頻", ContentID: "aaaaaaaaaa"},
		{Title: "Launch.mp4", ShortLabel: "Launch", Link: "https://host/b", Category: "Snacks", MediaType: "新鮮視", ContentID: "bbbbbbbbbb"},
	}
}

func testStore(t *testing.T, s Store) {
	t.Helper()

	_, _, err := s.LoadSnapshot()
	assert.ErrorIs(t, err, ErrNoSnapshot)

	entries := sampleEntries()
	loadedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshot(entries, loadedAt))

	got, gotAt, err := s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
	assert.True(t, gotAt.Equal(loadedAt))

	// A second save replaces the snapshot wholesale, preserving the new
	// feed order.
	reversed := []model.CatalogEntry{entries[1], entries[0]}
	later := loadedAt.Add(time.Hour)
	require.NoError(t, s.SaveSnapshot(reversed, later))

	got, gotAt, err = s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, reversed, got)
	assert.True(t, gotAt.Equal(later))
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	s, err := NewSQLite(filepath.Join(t.TempDir(), "snap.db"))
	require.NoError(t, err)
	defer s.Close()

	testStore(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "snap.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)

	entries := sampleEntries()
	loadedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveSnapshot(entries, loadedAt))
	require.NoError(t, s.Close())

	// Snapshot survives a restart.
	s, err = NewSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	got, _, err := s.LoadSnapshot()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	testStore(t, NewMemory())
}
