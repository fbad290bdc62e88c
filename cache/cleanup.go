package cache

import (
	"context"
	"time"
)

// DefaultCleanupInterval is how often RunCleanup sweeps by convention.
const DefaultCleanupInterval = 5 * time.Minute

// Cleaner is the subset of Cache that RunCleanup needs. Any Cache[T]
// satisfies it.
type Cleaner interface {
	CleanupExpired()
}

// RunCleanup invokes c.CleanupExpired on a fixed interval until ctx is
// cancelled. It blocks; run it in its own goroutine. The store never
// schedules its own cleanup; this is the caller's handle on that lifecycle:
//
//	ctx, cancel := context.WithCancel(context.Background())
//	go cache.RunCleanup(ctx, c, cache.DefaultCleanupInterval)
//	defer cancel()
//
// An interval <= 0 falls back to DefaultCleanupInterval.
func RunCleanup(ctx context.Context, c Cleaner, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanupExpired()
		}
	}
}
