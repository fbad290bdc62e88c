package cache

import (
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/pokeproxy/go-cache/logger"
)

// entry is one stored value plus its bookkeeping. Entries are created
// wholesale on Insert; an overwrite never merges with the prior entry.
type entry[T any] struct {
	value       T
	createdAt   time.Time
	accessCount uint64
}

func (e *entry[T]) expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(e.createdAt) > ttl
}

// InMemory is the in-process Cache implementation. The entry map and the
// statistics block are guarded by independent mutexes; no operation holds
// both at once, so the data path never waits on bookkeeping and there is no
// lock-ordering hazard. Statistics are advisory: each operation leaves them
// consistent with its own outcome, but concurrent operations may interleave
// between the map step and the stats step.
type InMemory[T any] struct {
	cfg      Config
	log      logger.Logger
	snapshot bool

	mu      sync.Mutex
	entries map[string]*entry[T]

	statsMu sync.Mutex
	stats   Stats

	now func() time.Time
}

var _ Cache[string] = (*InMemory[string])(nil)

// New returns an in-memory cache for the given configuration.
func New[T any](cfg Config, opts ...Option) *InMemory[T] {
	o := applyOptions(opts)
	log := o.logger.WithPrefix("[cache]")
	log.Info("initializing in-memory cache with max_size: %d, expiration: %s", cfg.MaxSize, cfg.Expiration)
	return &InMemory[T]{
		cfg:      cfg,
		log:      log,
		snapshot: o.snapshot,
		entries:  make(map[string]*entry[T]),
		now:      time.Now,
	}
}

// NewWithDefaults returns an in-memory cache using DefaultConfig.
func NewWithDefaults[T any](opts ...Option) *InMemory[T] {
	return New[T](DefaultConfig(), opts...)
}

// Config returns the store's immutable configuration.
func (c *InMemory[T]) Config() Config {
	return c.cfg
}

// Enabled reports whether the store's configuration enables caching. It is
// advisory only: the primitive operations never consult it.
func (c *InMemory[T]) Enabled() bool {
	return c.cfg.Enabled()
}

func (c *InMemory[T]) Get(key string) (T, bool) {
	var zero T
	if key == "" {
		c.log.Warn("attempted to get cache entry with empty key")
		return zero, false
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		c.log.Debug("cache miss for key: %s", key)
		c.bump(func(s *Stats) { s.Misses++ })
		return zero, false
	}
	if e.expired(c.cfg.Expiration, c.now()) {
		delete(c.entries, key)
		c.mu.Unlock()
		c.log.Debug("cache entry expired for key: %s", key)
		c.bump(func(s *Stats) { s.Misses++ })
		return zero, false
	}
	e.accessCount++
	val := e.value
	c.mu.Unlock()

	c.log.Debug("cache hit for key: %s", key)
	c.bump(func(s *Stats) { s.Hits++ })
	return c.copyValue(val), true
}

func (c *InMemory[T]) Insert(key string, value T) error {
	if key == "" {
		return errors.Wrap(ErrInvalidKey, "key cannot be empty")
	}

	c.mu.Lock()
	_, updated := c.entries[key]
	var evicted bool
	if !updated && len(c.entries) >= c.cfg.MaxSize {
		evicted = c.evictLocked()
	}
	c.entries[key] = &entry[T]{
		value:       value,
		createdAt:   c.now(),
		accessCount: 1,
	}
	c.mu.Unlock()

	if updated {
		c.log.Debug("updated existing cache entry: %s", key)
	} else {
		c.log.Debug("inserted new cache entry: %s", key)
	}
	c.bump(func(s *Stats) {
		if evicted {
			s.Removes++
		}
		s.Inserts++
	})
	return nil
}

// evictLocked removes the entry with the earliest creation time, breaking
// ties by the lowest access count. Caller holds c.mu and reports the removal
// to the statistics. The scan is linear; it only runs when an insert lands
// on a full store.
func (c *InMemory[T]) evictLocked() bool {
	if len(c.entries) < c.cfg.MaxSize {
		return false
	}
	var victim string
	var found bool
	for key, e := range c.entries {
		if !found {
			victim, found = key, true
			continue
		}
		v := c.entries[victim]
		if e.createdAt.Before(v.createdAt) ||
			(e.createdAt.Equal(v.createdAt) && e.accessCount < v.accessCount) {
			victim = key
		}
	}
	if !found {
		return false
	}
	delete(c.entries, victim)
	c.log.Debug("evicted cache entry: %s", victim)
	return true
}

func (c *InMemory[T]) Remove(key string) (T, bool) {
	var zero T
	if key == "" {
		c.log.Warn("attempted to remove cache entry with empty key")
		return zero, false
	}

	c.mu.Lock()
	e, ok := c.entries[key]
	if ok {
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if !ok {
		return zero, false
	}
	c.log.Debug("removed cache entry: %s", key)
	c.bump(func(s *Stats) { s.Removes++ })
	return e.value, true
}

func (c *InMemory[T]) Clear() {
	c.mu.Lock()
	size := len(c.entries)
	c.entries = make(map[string]*entry[T])
	c.mu.Unlock()

	c.log.Info("cleared cache (%d entries)", size)
	c.statsMu.Lock()
	c.stats = Stats{}
	c.statsMu.Unlock()
}

func (c *InMemory[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *InMemory[T]) HitRate() float64 {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats.HitRate()
}

func (c *InMemory[T]) CleanupExpired() {
	now := c.now()

	c.mu.Lock()
	var removed int
	for key, e := range c.entries {
		if e.expired(c.cfg.Expiration, now) {
			delete(c.entries, key)
			c.log.Debug("removed expired cache entry: %s", key)
			removed++
		}
	}
	c.mu.Unlock()

	if removed == 0 {
		return
	}
	c.log.Debug("cleaned up %d expired cache entries", removed)
	c.bump(func(s *Stats) {
		s.Cleanups++
		s.Removes += uint64(removed)
	})
}

// Contains reports whether key is present, without counting a hit or a miss
// and without touching the entry's access count. Expired entries still
// resident count as present until something removes them.
func (c *InMemory[T]) Contains(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

// Keys returns an unordered snapshot of the keys currently stored.
func (c *InMemory[T]) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]string, 0, len(c.entries))
	for key := range c.entries {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns a snapshot of the aggregate counters.
func (c *InMemory[T]) Stats() Stats {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return c.stats
}

// bump applies a statistics mutation as a separate step, never while holding
// the entry-map mutex.
func (c *InMemory[T]) bump(fn func(*Stats)) {
	c.statsMu.Lock()
	fn(&c.stats)
	c.statsMu.Unlock()
}

// copyValue returns the value to hand to the caller. With WithSnapshot it is
// a deep copy produced by a msgpack round-trip; a value that fails the round
// trip is returned as stored.
func (c *InMemory[T]) copyValue(v T) T {
	if !c.snapshot {
		return v
	}
	buf, err := msgpack.Marshal(v)
	if err != nil {
		c.log.Error("failed to snapshot cache value: %s", err)
		return v
	}
	var out T
	if err := msgpack.Unmarshal(buf, &out); err != nil {
		c.log.Error("failed to snapshot cache value: %s", err)
		return v
	}
	return out
}
