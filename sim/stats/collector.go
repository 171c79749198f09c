// Package stats provides a unified interface for publishing simulation metrics.
package stats

// Metric names published by the simulators.
const (
	// Cold-start metrics.
	MetricColdStartRequests     = "cachesim_coldstart_requests_total"
	MetricColdStartHits         = "cachesim_coldstart_hits_total"
	MetricColdStartMisses       = "cachesim_coldstart_misses_total"
	MetricColdStartCacheEntries = "cachesim_coldstart_cache_entries"
	MetricColdStartMissPercent  = "cachesim_coldstart_miss_percent"

	// Resharding metrics.
	MetricReshardKeysCompared = "cachesim_reshard_keys_compared_total"
	MetricReshardKeysLost     = "cachesim_reshard_keys_lost_total"
	MetricReshardHashCache    = "cachesim_reshard_key_hash_cache_size"
	MetricReshardLostPercent  = "cachesim_reshard_lost_percent"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
