package cache

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource is the view of a store the collector scrapes. *InMemory[T]
// satisfies it for any T.
type StatsSource interface {
	Stats() Stats
	Size() int
}

// StatsCollector exposes a store's statistics as Prometheus metrics. It
// implements prometheus.Collector by snapshotting the source on every
// scrape, so it adds no overhead to the cache's data path.
//
//	prometheus.MustRegister(cache.NewStatsCollector(store, "pokeproxy"))
type StatsCollector struct {
	source StatsSource

	hits     *prometheus.Desc
	misses   *prometheus.Desc
	inserts  *prometheus.Desc
	removes  *prometheus.Desc
	cleanups *prometheus.Desc
	entries  *prometheus.Desc
	hitRatio *prometheus.Desc
}

var _ prometheus.Collector = (*StatsCollector)(nil)

// NewStatsCollector returns a collector for source. The namespace prefixes
// every metric name (e.g. "pokeproxy" yields pokeproxy_cache_hits_total).
func NewStatsCollector(source StatsSource, namespace string) *StatsCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "cache", name),
			help, nil, nil,
		)
	}
	return &StatsCollector{
		source:   source,
		hits:     desc("hits_total", "Lookups that returned a live entry."),
		misses:   desc("misses_total", "Lookups for absent or expired keys."),
		inserts:  desc("inserts_total", "Successful inserts, including overwrites."),
		removes:  desc("removes_total", "Entries physically removed: explicit removes, evictions, and expirations."),
		cleanups: desc("cleanups_total", "Cleanup passes that removed at least one entry."),
		entries:  desc("entries", "Entries currently stored."),
		hitRatio: desc("hit_ratio", "Hits over total lookups, 0 before any lookups."),
	}
}

func (c *StatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.inserts
	ch <- c.removes
	ch <- c.cleanups
	ch <- c.entries
	ch <- c.hitRatio
}

func (c *StatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(stats.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(stats.Misses))
	ch <- prometheus.MustNewConstMetric(c.inserts, prometheus.CounterValue, float64(stats.Inserts))
	ch <- prometheus.MustNewConstMetric(c.removes, prometheus.CounterValue, float64(stats.Removes))
	ch <- prometheus.MustNewConstMetric(c.cleanups, prometheus.CounterValue, float64(stats.Cleanups))
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(c.source.Size()))
	ch <- prometheus.MustNewConstMetric(c.hitRatio, prometheus.GaugeValue, stats.HitRate())
}
