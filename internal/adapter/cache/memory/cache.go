// Package memory provides an in-process TTL cache for derived data such as
// balance snapshots. It is never a system of record.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache stores byte values with per-key expiry on top of ttlcache.
// Values are copied on the way in and out, so callers never share a buffer
// with the cache.
type Cache struct {
	items *ttlcache.Cache[string, entry]
	now   func() time.Time

	// writeMu serializes writes so an expiry check and its delete are atomic.
	writeMu sync.Mutex

	sweep    bool
	done     chan struct{}
	stopOnce sync.Once
}

// Option configures a Cache.
type Option func(*config)

type config struct {
	now      func() time.Time
	capacity uint64
	sweep    bool
}

// WithClock replaces time.Now as the clock used to decide expiry on read.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithCapacity bounds the number of stored keys. The least recently used key
// is evicted when the bound is reached. Zero means unbounded.
func WithCapacity(n uint64) Option {
	return func(c *config) { c.capacity = n }
}

// WithoutSweeper disables background removal of expired keys. Expired keys
// are then dropped only when read or by DeleteExpired.
func WithoutSweeper() Option {
	return func(c *config) { c.sweep = false }
}

// New creates a Cache and starts its sweeper unless WithoutSweeper is given.
func New(opts ...Option) *Cache {
	cfg := config{now: time.Now, sweep: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	ttlOpts := []ttlcache.Option[string, entry]{
		ttlcache.WithDisableTouchOnHit[string, entry](),
	}
	if cfg.capacity > 0 {
		ttlOpts = append(ttlOpts, ttlcache.WithCapacity[string, entry](cfg.capacity))
	}

	c := &Cache{
		items: ttlcache.New[string, entry](ttlOpts...),
		now:   cfg.now,
		sweep: cfg.sweep,
		done:  make(chan struct{}),
	}

	if c.sweep {
		go func() {
			defer close(c.done)
			c.items.Start()
		}()
	} else {
		close(c.done)
	}
	return c
}

// Get returns a copy of the value stored under key. A key is visible until
// its TTL has fully elapsed; at the expiry instant it is already gone.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	now := c.now()

	it := c.items.Get(key)
	if it == nil {
		return nil, false, nil
	}

	e := it.Value()
	if !now.Before(e.expiresAt) {
		c.deleteIfExpired(key, now)
		return nil, false, nil
	}
	return clone(e.value), true, nil
}

// Set stores a copy of value under key for ttl. A non-positive ttl removes
// the key instead.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if ttl <= 0 {
		c.items.Delete(key)
		return nil
	}

	c.items.Set(key, entry{value: clone(value), expiresAt: c.now().Add(ttl)}, ttl)
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *Cache) Delete(_ context.Context, key string) error {
	c.writeMu.Lock()
	c.items.Delete(key)
	c.writeMu.Unlock()
	return nil
}

// Len returns the number of stored keys.
func (c *Cache) Len() int {
	return c.items.Len()
}

// DeleteExpired removes every key whose TTL has elapsed on the cache clock
// and returns how many it removed.
func (c *Cache) DeleteExpired() int {
	now := c.now()

	removed := 0
	for key, it := range c.items.Items() {
		if !now.Before(it.Value().expiresAt) && c.deleteIfExpired(key, now) {
			removed++
		}
	}
	c.items.DeleteExpired()
	return removed
}

// Stop terminates the sweeper and waits for it to exit. Safe to call more
// than once. The cache stays usable after Stop.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		if c.sweep {
			c.items.Stop()
		}
	})
	<-c.done
}

// deleteIfExpired removes key only if the stored entry is still expired at
// now. An entry replaced by a concurrent Set is kept.
func (c *Cache) deleteIfExpired(key string, now time.Time) bool {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	it := c.items.Get(key)
	if it == nil || now.Before(it.Value().expiresAt) {
		return false
	}
	c.items.Delete(key)
	return true
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
