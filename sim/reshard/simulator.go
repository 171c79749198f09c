// Package reshard measures how many cache keys change shard when the shard
// count changes.
package reshard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cachesim/sim/stats"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid resharding config")

// KeyPrefix is prepended to the key index to synthesize the key universe.
const KeyPrefix = "user:"

// Config groups the parameters of one resharding run.
type Config struct {
	KeyCount int64 // size of the key universe (must be > 0)
	Shards   []int // candidate shard counts (non-empty, all > 0)
}

// Validate rejects configurations that would divide by zero.
func (c Config) Validate() error {
	if c.KeyCount <= 0 {
		return fmt.Errorf("%w: keys must be positive, got %d", ErrInvalidConfig, c.KeyCount)
	}
	if len(c.Shards) == 0 {
		return fmt.Errorf("%w: at least one shard count is required", ErrInvalidConfig)
	}
	for _, s := range c.Shards {
		if s <= 0 {
			return fmt.Errorf("%w: %w, got %d", ErrInvalidConfig, ErrInvalidShardCount, s)
		}
	}
	return nil
}

// NormalizeShards returns the distinct shard counts in ascending order.
func NormalizeShards(shards []int) []int {
	seen := make(map[int]bool, len(shards))
	out := make([]int, 0, len(shards))
	for _, s := range shards {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Ints(out)
	return out
}

// LossRecord is the outcome of moving from Before to After shards.
type LossRecord struct {
	Before      int
	After       int
	Lost        int64
	LostPercent float64
}

// Result is the outcome of a complete run.
type Result struct {
	Shards           []int
	Records          []LossRecord
	HashCacheEntries int
	HashCacheBytes   int64
}

// LossMatrix returns lost key counts indexed by the positions of Before and
// After in Shards.
func (r *Result) LossMatrix() [][]int64 {
	index := make(map[int]int, len(r.Shards))
	for i, s := range r.Shards {
		index[s] = i
	}
	m := make([][]int64, len(r.Shards))
	for i := range m {
		m[i] = make([]int64, len(r.Shards))
	}
	for _, rec := range r.Records {
		m[index[rec.Before]][index[rec.After]] = rec.Lost
	}
	return m
}

// Option customizes a Simulator.
type Option func(*Simulator)

// WithCollector publishes per-pair metrics to c.
func WithCollector(c stats.Collector) Option {
	return func(s *Simulator) { s.collector = c }
}

// WithRecordHandler calls fn with every LossRecord as soon as its pair
// completes. A non-nil error aborts the run.
func WithRecordHandler(fn func(LossRecord) error) Option {
	return func(s *Simulator) { s.onRecord = fn }
}

// Simulator compares shard assignments for every ordered pair of candidate
// shard counts over a fixed key universe. The same HashingAlgorithm, and its
// memo cache, serves every pair.
type Simulator struct {
	keyCount  int64
	shards    []int
	algo      HashingAlgorithm
	collector stats.Collector
	onRecord  func(LossRecord) error
}

// New validates cfg and returns a Simulator ready to Run.
func New(cfg Config, algo HashingAlgorithm, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if algo == nil {
		return nil, fmt.Errorf("%w: hashing algorithm is nil", ErrInvalidConfig)
	}
	s := &Simulator{
		keyCount:  cfg.KeyCount,
		shards:    NormalizeShards(cfg.Shards),
		algo:      algo,
		collector: stats.Noop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Shards returns the de-duplicated, ascending candidate shard counts.
func (s *Simulator) Shards() []int { return s.shards }

// Pairs returns every ordered (before, after) pair in emission order.
func (s *Simulator) Pairs() [][2]int {
	pairs := make([][2]int, 0, len(s.shards)*len(s.shards))
	for _, before := range s.shards {
		for _, after := range s.shards {
			pairs = append(pairs, [2]int{before, after})
		}
	}
	return pairs
}

// Key returns the i-th key of the universe.
func Key(i int64) string {
	return KeyPrefix + strconv.FormatInt(i, 10)
}

// LostKeys counts the keys whose shard differs between before and after.
func (s *Simulator) LostKeys(before, after int) (LossRecord, error) {
	rec := LossRecord{Before: before, After: after}
	for i := int64(0); i < s.keyCount; i++ {
		key := Key(i)
		shardBefore, err := s.algo.KeyShard(key, before)
		if err != nil {
			return rec, err
		}
		shardAfter, err := s.algo.KeyShard(key, after)
		if err != nil {
			return rec, err
		}
		if shardBefore != shardAfter {
			rec.Lost++
		}
	}
	rec.LostPercent = 100 * float64(rec.Lost) / float64(s.keyCount)
	return rec, nil
}

// Run evaluates every pair and returns the loss records in emission order.
func (s *Simulator) Run() (*Result, error) {
	res := &Result{Shards: s.shards}
	for _, pair := range s.Pairs() {
		rec, err := s.LostKeys(pair[0], pair[1])
		if err != nil {
			return nil, fmt.Errorf("shards %d->%d: %w", pair[0], pair[1], err)
		}
		res.Records = append(res.Records, rec)

		s.collector.IncCounter(stats.MetricReshardKeysCompared, s.keyCount)
		s.collector.IncCounter(stats.MetricReshardKeysLost, rec.Lost)
		s.collector.SetGauge(stats.MetricReshardHashCache, int64(cacheEntries(s.algo)))
		s.collector.ObserveHistogram(stats.MetricReshardLostPercent, rec.LostPercent)

		logrus.Debugf("[%s] shards %d->%d lost=%d (%.2f%%)", s.algo.Name(), rec.Before, rec.After, rec.Lost, rec.LostPercent)

		if s.onRecord != nil {
			if err := s.onRecord(rec); err != nil {
				return nil, fmt.Errorf("shards %d->%d: %w", pair[0], pair[1], err)
			}
		}
	}
	res.HashCacheEntries, res.HashCacheBytes = cacheEntries(s.algo), cacheBytes(s.algo)
	logrus.Infof("resharding run finished: %d pairs over %d keys, %d key hashes memoized (~%d bytes)",
		len(res.Records), s.keyCount, res.HashCacheEntries, res.HashCacheBytes)
	return res, nil
}
