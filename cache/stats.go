package cache

// Stats is a snapshot of a store's aggregate counters. All counters only
// grow for the lifetime of the store, except that Clear resets them.
type Stats struct {
	// Hits counts Gets that returned a live entry.
	Hits uint64 `json:"hits"`
	// Misses counts Gets for absent or expired keys.
	Misses uint64 `json:"misses"`
	// Inserts counts successful Inserts, including overwrites.
	Inserts uint64 `json:"inserts"`
	// Removes counts physical removals: explicit Removes, evictions, and
	// expirations. A single removal is never counted twice.
	Removes uint64 `json:"removes"`
	// Cleanups counts CleanupExpired passes that removed at least one entry.
	Cleanups uint64 `json:"cleanups"`
}

// HitRate returns hits/(hits+misses), or 0.0 when there have been no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}
	return float64(s.Hits) / float64(total)
}
