package cache

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidKey is returned by Insert when the key is empty.
	ErrInvalidKey = errors.New("cache: invalid key")

	// ErrLock is returned when the store's shared state cannot be acquired.
	// The in-memory store never produces it (Go mutexes do not poison), but
	// it stays in the taxonomy for implementations where acquisition can
	// genuinely fail.
	ErrLock = errors.New("cache: failed to acquire shared state")

	// ErrMaxSizeExceeded is reserved for a policy that refuses inserts at
	// capacity instead of evicting. The default eviction strategy never
	// returns it.
	ErrMaxSizeExceeded = errors.New("cache: maximum size exceeded")
)
