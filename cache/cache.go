package cache

import (
	"time"

	"github.com/pokeproxy/go-cache/logger"
)

// KindMemory is the configuration kind that marks a cache as enabled.
const KindMemory = "memory"

// Config describes a cache instance. It is immutable once the store is
// constructed; one Config per store.
type Config struct {
	// Kind is a feature flag. The cache is considered enabled only when it
	// equals KindMemory. The store's own operations never consult it; it is
	// advisory, for callers that gate optional caching behavior.
	Kind string
	// MaxSize bounds the number of entries (a count, not bytes).
	MaxSize int
	// Expiration is the TTL applied uniformly to all entries.
	Expiration time.Duration
}

// DefaultConfig returns the conventional configuration: an enabled memory
// cache holding up to 1000 entries for one hour.
func DefaultConfig() Config {
	return Config{
		Kind:       KindMemory,
		MaxSize:    1000,
		Expiration: time.Hour,
	}
}

// Enabled reports whether the configuration semantically enables caching.
func (c Config) Enabled() bool {
	return c.Kind == KindMemory
}

// Cache is the capability set shared by cache implementations, generic over
// the value type. Values must be safe to share across goroutines.
type Cache[T any] interface {
	// Get returns the value for key if present and not expired, counting a
	// hit or a miss. An empty key returns nothing and touches no counters.
	Get(key string) (T, bool)
	// Insert stores a fresh entry for key, evicting one entry first if the
	// store is at capacity and key is new. Fails with ErrInvalidKey on an
	// empty key.
	Insert(key string, value T) error
	// Remove deletes key and returns its value if it was present.
	Remove(key string) (T, bool)
	// Clear removes every entry and resets all statistics.
	Clear()
	// Size returns the current entry count.
	Size() int
	// HitRate returns hits/(hits+misses), or 0.0 before any lookups.
	HitRate() float64
	// CleanupExpired removes every entry whose age exceeds the TTL.
	CleanupExpired()
}

type options struct {
	logger   logger.Logger
	snapshot bool
}

// Option configures a store at construction time.
type Option func(*options)

func defaultOptions() options {
	return options{
		logger: logger.NewConsoleLogger(),
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the logger used for cache diagnostics. Defaults to a
// console logger at the level from POKECACHE_LOG_LEVEL.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSnapshot makes Get return a deep copy of the stored value, produced by
// a msgpack round-trip. Use it when cached values contain shared slices or
// maps that callers mutate. Defaults to off: values are returned as stored.
func WithSnapshot() Option {
	return func(o *options) { o.snapshot = true }
}
