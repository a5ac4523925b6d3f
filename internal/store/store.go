// Package store persists catalog snapshots so a feed outage degrades to
// stale data instead of an empty catalog.
package store

import (
	"errors"
	"time"

	"medialib/internal/model"
)

// ErrNoSnapshot is returned when no snapshot has been saved yet.
var ErrNoSnapshot = errors.New("no catalog snapshot")

// Store defines snapshot operations. Both the SQLite and in-memory
// implementations satisfy this interface.
type Store interface {
	Close() error

	// SaveSnapshot replaces the stored snapshot wholesale; entries are
	// never updated individually.
	SaveSnapshot(entries []model.CatalogEntry, loadedAt time.Time) error

	// LoadSnapshot returns the last saved snapshot in its original feed
	// order, or ErrNoSnapshot.
	LoadSnapshot() ([]model.CatalogEntry, time.Time, error)
}
