package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultTTL = 300 * time.Second

// FetchFunc retrieves a fresh set of readings. Injectable so tests can
// simulate failures and TTL expiry without network calls.
type FetchFunc func(ctx context.Context) ([]StationReading, error)

// Cache wraps a fetch function with time-bounded caching. It always
// returns a usable snapshot: live data while fresh, stale data when a
// refresh fails, and a synthetic dataset when no fetch has ever
// succeeded. Fetch failures never cross this boundary.
type Cache struct {
	fetch     FetchFunc
	ttl       time.Duration
	now       func() time.Time
	onRefresh func(*Snapshot)

	mu      sync.RWMutex
	current *Snapshot
}

type CacheOption func(*Cache)

// WithClock overrides the cache's time source.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// WithOnRefresh registers a hook invoked after every successful live
// refresh, outside the cache lock.
func WithOnRefresh(fn func(*Snapshot)) CacheOption {
	return func(c *Cache) { c.onRefresh = fn }
}

func NewCache(fetch FetchFunc, ttl time.Duration, opts ...CacheOption) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		fetch: fetch,
		ttl:   ttl,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Feed returns the current snapshot, refreshing it when the TTL has
// expired. Concurrent callers may trigger redundant refreshes on a
// shared miss; readers never observe a partially-updated snapshot.
func (c *Cache) Feed(ctx context.Context) *Snapshot {
	c.mu.RLock()
	held := c.current
	c.mu.RUnlock()

	now := c.now()
	if held != nil && now.Sub(held.FetchedAt) < c.ttl {
		return held
	}

	readings, err := c.fetch(ctx)
	if err != nil {
		if held != nil {
			slog.Warn("feed refresh failed, serving stale data", "err", err, "fetched_at", held.FetchedAt)
			return held
		}
		slog.Error("feed unavailable with no cached data, serving synthetic dataset", "err", err)
		return &Snapshot{
			Readings:  syntheticReadings(),
			FetchedAt: now,
			Synthetic: true,
		}
	}

	fresh := &Snapshot{
		Readings:  readings,
		FetchedAt: now,
	}

	c.mu.Lock()
	c.current = fresh
	c.mu.Unlock()

	slog.Info("feed refreshed", "stations", len(readings))
	if c.onRefresh != nil {
		c.onRefresh(fresh)
	}
	return fresh
}

// Current returns the held snapshot without triggering a refresh, or
// nil when nothing has been fetched yet.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}
