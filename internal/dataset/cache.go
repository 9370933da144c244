package dataset

import (
	"context"
	"sync"
	"time"

	"github.com/mahendraputra/idx-radar/internal/models"
	"github.com/mahendraputra/idx-radar/pkg/logger"
)

// Snapshot is one immutable enriched dataset. A reload replaces the
// whole snapshot; nothing mutates rows in place, so readers never see a
// half-updated dataset.
type Snapshot struct {
	Records  []models.EnrichedRecord
	Latest   []models.EnrichedRecord
	LoadedAt time.Time
}

// Loader produces a fresh snapshot from the feeds.
type Loader func(ctx context.Context) (*Snapshot, error)

// Cache holds the current snapshot behind a TTL. A stale snapshot is
// reloaded on demand; when the reload fails the previous snapshot is
// retained and returned alongside the error so the caller can surface a
// message while still showing data.
type Cache struct {
	mu     sync.RWMutex
	ttl    time.Duration
	loader Loader
	snap   *Snapshot
}

// NewCache creates a cache around the loader. No snapshot is loaded
// until the first Get or Reload.
func NewCache(ttl time.Duration, loader Loader) *Cache {
	return &Cache{ttl: ttl, loader: loader}
}

// Get returns the current snapshot, reloading when the TTL has expired
// or nothing is loaded yet. With a previous snapshot present, a failed
// reload returns that stale snapshot together with the error. Fresh
// snapshots are served under a read lock so reads never queue behind
// each other.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	if snap := c.snap; snap != nil && time.Since(snap.LoadedAt) < c.ttl {
		c.mu.RUnlock()
		return snap, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another request may have finished the reload while we waited.
	if c.snap != nil && time.Since(c.snap.LoadedAt) < c.ttl {
		return c.snap, nil
	}

	return c.reloadLocked(ctx)
}

// Reload forces a reload regardless of TTL (the manual trigger path).
func (c *Cache) Reload(ctx context.Context) (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.reloadLocked(ctx)
}

// Current returns whatever snapshot is installed without triggering a
// reload; nil when nothing has loaded yet.
func (c *Cache) Current() *Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snap
}

func (c *Cache) reloadLocked(ctx context.Context) (*Snapshot, error) {
	snap, err := c.loader(ctx)
	if err != nil {
		logger.DatasetLoadErrors.WithLabelValues("load").Inc()
		if c.snap != nil {
			logger.Warn("Dataset reload failed, keeping previous snapshot",
				logger.ErrorField(err),
				logger.Time("loaded_at", c.snap.LoadedAt),
			)
			return c.snap, err
		}
		return nil, err
	}

	// Whole-snapshot swap, never a field-by-field merge.
	snap.LoadedAt = time.Now()
	c.snap = snap

	logger.DatasetRowsLoaded.Set(float64(len(snap.Records)))
	logger.Info("Dataset reloaded",
		logger.Int("rows", len(snap.Records)),
		logger.Int("stocks", len(snap.Latest)),
	)

	return c.snap, nil
}
