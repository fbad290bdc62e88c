package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeproxy/go-cache/logger"
)

func TestStatsCollector(t *testing.T) {
	c := New[string](Config{Kind: KindMemory, MaxSize: 10, Expiration: time.Hour}, WithLogger(logger.NewTestLogger()))
	require.NoError(t, c.Insert("a", "1"))
	require.NoError(t, c.Insert("b", "2"))
	_, _ = c.Get("a")
	_, _ = c.Get("missing")

	collector := NewStatsCollector(c, "pokeproxy")

	expected := `
		# HELP pokeproxy_cache_cleanups_total Cleanup passes that removed at least one entry.
		# TYPE pokeproxy_cache_cleanups_total counter
		pokeproxy_cache_cleanups_total 0
		# HELP pokeproxy_cache_entries Entries currently stored.
		# TYPE pokeproxy_cache_entries gauge
		pokeproxy_cache_entries 2
		# HELP pokeproxy_cache_hit_ratio Hits over total lookups, 0 before any lookups.
		# TYPE pokeproxy_cache_hit_ratio gauge
		pokeproxy_cache_hit_ratio 0.5
		# HELP pokeproxy_cache_hits_total Lookups that returned a live entry.
		# TYPE pokeproxy_cache_hits_total counter
		pokeproxy_cache_hits_total 1
		# HELP pokeproxy_cache_inserts_total Successful inserts, including overwrites.
		# TYPE pokeproxy_cache_inserts_total counter
		pokeproxy_cache_inserts_total 2
		# HELP pokeproxy_cache_misses_total Lookups for absent or expired keys.
		# TYPE pokeproxy_cache_misses_total counter
		pokeproxy_cache_misses_total 1
		# HELP pokeproxy_cache_removes_total Entries physically removed: explicit removes, evictions, and expirations.
		# TYPE pokeproxy_cache_removes_total counter
		pokeproxy_cache_removes_total 0
	`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

func TestStatsCollectorDescribe(t *testing.T) {
	c := New[string](DefaultConfig(), WithLogger(logger.NewTestLogger()))
	collector := NewStatsCollector(c, "pokeproxy")

	assert.Equal(t, 7, testutil.CollectAndCount(collector))
}
