// Package sim provides the shared deterministic core of the cache simulators.
//
// # Reading Guide
//
// Start with rng.go: SequenceSource is the only state whose call order is
// load-bearing. Every simulator owns one and consumes it sequentially, so a
// fixed seed reproduces the same run byte for byte.
//
// # Architecture
//
// The simulators live in sub-packages:
//   - sim/coldstart/: miss-rate decay of an initially empty cache under steady load
//   - sim/reshard/: fraction of keys that change shard when the shard count changes
//   - sim/report/: tab-separated rendering of simulator records
//   - sim/summary/: run-level aggregates over emitted records
//   - sim/stats/: metric collectors (no-op, Prometheus)
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - coldstart.TTLPolicy: TTL of a freshly cached item, a pure function of the user id
//   - reshard.HashingAlgorithm: key to shard assignment (modulo, jump)
//   - stats.Collector: counters, gauges and histograms published per tick or pair
package sim
