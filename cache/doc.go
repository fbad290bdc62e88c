// Package cache provides a generic, concurrency-safe in-memory key/value
// store with time-based expiration, capacity-bounded eviction, and hit/miss
// statistics.
//
// # Cache Interface
//
// The [Cache] interface defines the capability set every implementation
// exposes: [Cache.Get], [Cache.Insert], [Cache.Remove], [Cache.Clear],
// [Cache.Size], [Cache.HitRate], and [Cache.CleanupExpired]. The interface
// is generic over the value type, so a cache of decoded API payloads and a
// cache of computed floats share the same shape without any type assertions
// at the call sites.
//
// # In-Memory Store
//
// [New] returns the in-memory implementation. Entries live in a map guarded
// by a mutex; statistics live behind a second, independent mutex so the data
// path never blocks on bookkeeping. Every entry carries its creation time
// and an access counter:
//
//   - An entry older than the configured expiration is removed on the next
//     Get that touches it, or by [Cache.CleanupExpired]. The store never
//     serves a stale value.
//   - When the store is at capacity and a new key arrives, exactly one
//     entry is evicted: the one with the earliest creation time, ties broken
//     by the lowest access count. The scan is linear, which is fine because
//     it only runs at the capacity boundary, never on reads.
//
// The store does not schedule its own cleanup. Callers that want periodic
// sweeps run [RunCleanup] in a goroutine and cancel its context to stop it:
//
//	go cache.RunCleanup(ctx, c, cache.DefaultCleanupInterval)
//
// # Statistics
//
// [Stats] counters (hits, misses, inserts, removes, cleanups) only ever
// increase, except that [Cache.Clear] resets them to zero. They are advisory:
// each operation leaves the counters consistent with its own outcome, but no
// cross-operation atomicity is promised between the entry map and the
// counters. [NewStatsCollector] exposes a store's statistics as Prometheus
// metrics.
//
// # Cache-Aside Helper
//
// [Fetcher.Fetch] combines lookup and population in one call and collapses
// concurrent loads for the same key into a single upstream call:
//
//	f := cache.NewFetcher[Pokemon](c)
//	poke, found, err := f.Fetch(ctx, "25", func(ctx context.Context) (Pokemon, bool, error) {
//	    return client.Lookup(ctx, "25")
//	})
package cache
