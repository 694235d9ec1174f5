// Package cache keeps an in-memory snapshot of all stored face embeddings so
// recognition does not hit the database on every image.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/facewatch/facewatch/internal/db/models"
)

// DefaultTTL is how long a loaded snapshot stays fresh
const DefaultTTL = 60 * time.Second

// LoaderFunc fetches the full embedding corpus, grouped by person ID
type LoaderFunc func(ctx context.Context) (map[uint][]models.Vector, error)

// EmbeddingCache is a TTL cache over the embedding corpus. Reloads are
// deduplicated with singleflight so concurrent recognitions after expiry
// trigger a single database query.
type EmbeddingCache struct {
	loader LoaderFunc
	ttl    time.Duration

	mu       sync.RWMutex
	corpus   map[uint][]models.Vector
	loadedAt time.Time

	group singleflight.Group
	now   func() time.Time
}

// New creates an EmbeddingCache around loader. A non-positive ttl falls back
// to DefaultTTL.
func New(loader LoaderFunc, ttl time.Duration) *EmbeddingCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &EmbeddingCache{
		loader: loader,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Snapshot returns the current embedding corpus, reloading it through the
// loader when the cached copy is missing or expired. Callers must treat the
// returned map as read-only.
func (c *EmbeddingCache) Snapshot(ctx context.Context) (map[uint][]models.Vector, error) {
	c.mu.RLock()
	corpus, fresh := c.corpus, c.freshLocked()
	c.mu.RUnlock()
	if fresh {
		return corpus, nil
	}

	v, err, _ := c.group.Do("reload", func() (any, error) {
		// Another caller may have finished the reload while we waited
		c.mu.RLock()
		corpus, fresh := c.corpus, c.freshLocked()
		c.mu.RUnlock()
		if fresh {
			return corpus, nil
		}

		loaded, err := c.loader(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load embeddings: %w", err)
		}

		c.mu.Lock()
		c.corpus = loaded
		c.loadedAt = c.now()
		c.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(map[uint][]models.Vector), nil
}

// Invalidate drops the cached snapshot. The next Snapshot call reloads.
func (c *EmbeddingCache) Invalidate() {
	c.mu.Lock()
	c.corpus = nil
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}

// freshLocked reports whether the cached corpus is still usable. Callers must
// hold at least a read lock.
func (c *EmbeddingCache) freshLocked() bool {
	return !c.loadedAt.IsZero() && c.now().Sub(c.loadedAt) < c.ttl
}
