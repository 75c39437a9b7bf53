package cache

import (
	"sync"
	"time"

	"github.com/damon-houk/inventory-tracker/internal/domain/entity"
)

// DashboardCache holds the most recently computed dashboard totals so
// repeated dashboard reads between writes don't rescan the full log. Every
// successful write invalidates it.
type DashboardCache struct {
	mutex      sync.RWMutex
	totals     *entity.DashboardTotals
	generation uint64
	storedAt   time.Time
	expiration time.Duration
}

// NewDashboardCache creates a cache with the default expiration
func NewDashboardCache() *DashboardCache {
	return &DashboardCache{
		expiration: 5 * time.Minute,
	}
}

// Get returns the cached totals (nil when empty or expired) together with the
// current generation. A caller that misses and recomputes passes the
// generation back to Put, so a write that lands mid-computation wins.
func (c *DashboardCache) Get() (*entity.DashboardTotals, uint64) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.totals == nil || time.Since(c.storedAt) > c.expiration {
		return nil, c.generation
	}

	copied := *c.totals
	return &copied, c.generation
}

// Put stores freshly computed totals. It is a no-op when the generation has
// moved since the caller read it: the totals were computed from state a later
// write already invalidated.
func (c *DashboardCache) Put(generation uint64, totals entity.DashboardTotals) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if generation != c.generation {
		return
	}

	c.totals = &totals
	c.storedAt = time.Now()
}

// Invalidate drops the cached totals and bumps the generation
func (c *DashboardCache) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.totals = nil
	c.generation++
}

// SetExpiration sets the cache expiration duration
func (c *DashboardCache) SetExpiration(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.expiration = duration
}
