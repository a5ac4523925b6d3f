// Package fetchcache provides a TTL-bounded cache of remote binary fetches.
//
// It exists to work around clients that cannot stream authenticated remote
// URLs directly: audio bytes are pulled once, inlined, and reused until the
// entry expires. Failures are cached for the same window so an unreachable
// host is not hammered on every interaction.
package fetchcache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// ErrFetchFailed marks any remote fetch problem: non-2xx status, network
// error or timeout. Callers branch on it, they never retry automatically.
var ErrFetchFailed = errors.New("remote fetch failed")

const userAgent = "Mozilla/5.0"

type entry struct {
	payload   []byte
	err       error
	expiresAt time.Time
}

// Cache is a read-through cache keyed by the original URL string. Safe for
// concurrent use; a single mutex is enough at this write frequency. Two
// callers racing on a cold key may both fetch; last write wins, which is
// harmless at these TTLs.
type Cache struct {
	ttl    time.Duration
	client *http.Client
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// New creates a cache whose entries live for ttl and whose requests are
// abandoned after timeout.
func New(ttl, timeout time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Fetch returns the cached payload for rawURL, fetching it first on a miss
// or after expiry. The cache key is always rawURL itself, even when the
// outbound request uses a rewritten transport URL.
func (c *Cache) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	now := c.now()

	c.mu.Lock()
	if e, ok := c.entries[rawURL]; ok && now.Before(e.expiresAt) {
		c.mu.Unlock()
		return e.payload, e.err
	}
	c.mu.Unlock()

	payload, err := c.fetch(ctx, rawURL)
	if err != nil {
		log.Printf("fetchcache: %s: %v", rawURL, err)
	} else {
		log.Printf("fetchcache: cached %s for %s", humanize.Bytes(uint64(len(payload))), rawURL)
	}

	c.mu.Lock()
	c.entries[rawURL] = entry{payload: payload, err: err, expiresAt: now.Add(c.ttl)}
	c.mu.Unlock()

	return payload, err
}

func (c *Cache) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, transportURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrFetchFailed, resp.StatusCode)
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	return payload, nil
}

// transportURL rewrites SharePoint links into direct-download form: the
// query string is replaced by download=1. Every other URL passes through
// unchanged.
func transportURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if !strings.Contains(u.Host, "sharepoint.com") {
		return rawURL
	}
	base := rawURL
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return base + "?download=1"
}

// Purge drops expired entries. Eviction is otherwise lazy; callers may run
// this periodically to bound memory.
func (c *Cache) Purge() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len reports the number of cached entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
