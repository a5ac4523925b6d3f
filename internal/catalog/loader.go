// Package catalog loads and normalizes the published media index.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"medialib/internal/model"
	"medialib/internal/store"
)

// Loader is the session-wide source of truth for catalog entries. Loads are
// cached for a TTL distinct from the audio fetch cache so browsing does not
// re-fetch the whole feed on every interaction. A failed load falls back to
// the last good snapshot (in memory, then the store) and is retried on the
// next natural reload, never immediately.
type Loader struct {
	feedURL string
	ttl     time.Duration
	client  *http.Client
	store   store.Store
	now     func() time.Time

	mu        sync.Mutex
	entries   []model.CatalogEntry
	fetchedAt time.Time
}

// New creates a loader. st may not be nil; use store.NewMemory() for a
// database-less run.
func New(feedURL string, ttl, timeout time.Duration, st store.Store) *Loader {
	return &Loader{
		feedURL: feedURL,
		ttl:     ttl,
		client:  &http.Client{Timeout: timeout},
		store:   st,
		now:     time.Now,
	}
}

// Entries returns the current catalog, reloading the feed when the cached
// copy has aged past the TTL. It never fails: an unreachable or unparseable
// feed yields the last snapshot, or an empty catalog, which callers must
// treat as "temporarily unavailable".
func (l *Loader) Entries(ctx context.Context) []model.CatalogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.fetchedAt.IsZero() && l.now().Sub(l.fetchedAt) < l.ttl {
		return l.entries
	}
	l.reloadLocked(ctx)
	return l.entries
}

// Refresh forces a reload regardless of TTL and reports whether the feed
// itself (not a fallback) produced the catalog.
func (l *Loader) Refresh(ctx context.Context) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reloadLocked(ctx)
}

func (l *Loader) reloadLocked(ctx context.Context) bool {
	now := l.now()
	// Stamp before the attempt: a failed load must not be retried on
	// every interaction within the TTL window.
	l.fetchedAt = now

	entries, err := l.fetch(ctx)
	if err != nil {
		log.Printf("catalog: load failed, serving fallback: %v", err)
		if l.entries == nil {
			if snap, loadedAt, serr := l.store.LoadSnapshot(); serr == nil {
				log.Printf("catalog: using snapshot of %d entries from %s", len(snap), loadedAt.Format(time.RFC3339))
				l.entries = snap
			} else if !errors.Is(serr, store.ErrNoSnapshot) {
				log.Printf("catalog: snapshot load failed: %v", serr)
			}
		}
		return false
	}

	l.entries = entries
	if err := l.store.SaveSnapshot(entries, now); err != nil {
		log.Printf("catalog: snapshot save failed: %v", err)
	}
	log.Printf("catalog: loaded %d entries", len(entries))
	return true
}

func (l *Loader) fetch(ctx context.Context) ([]model.CatalogEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch feed: status %d", resp.StatusCode)
	}

	entries, err := parseFeed(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return entries, nil
}

// ByID resolves a content id to its entry. With a colliding id the first
// entry in feed order wins. The second return is false for unknown ids;
// malformed and absent ids are indistinguishable to the caller.
func (l *Loader) ByID(ctx context.Context, id string) (model.CatalogEntry, bool) {
	for _, e := range l.Entries(ctx) {
		if e.ContentID == id {
			return e, true
		}
	}
	return model.CatalogEntry{}, false
}

// Categories returns the distinct non-blank categories, sorted.
func (l *Loader) Categories(ctx context.Context) []string {
	seen := make(map[string]struct{})
	var cats []string
	for _, e := range l.Entries(ctx) {
		c := e.Category
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
