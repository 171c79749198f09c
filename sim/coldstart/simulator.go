package coldstart

import (
	"fmt"

	"github.com/DmitriyVTitov/size"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/cachesim/sim"
	"github.com/inference-sim/cachesim/sim/stats"
)

// Option customizes a Simulator.
type Option func(*Simulator)

// WithCollector publishes per-tick metrics to c.
func WithCollector(c stats.Collector) Option {
	return func(s *Simulator) { s.collector = c }
}

// WithPeriodHandler calls fn with every PeriodStats as soon as its tick
// completes. A non-nil error aborts the run.
func WithPeriodHandler(fn func(PeriodStats) error) Option {
	return func(s *Simulator) { s.onPeriod = fn }
}

// WithTTLPolicy overrides the policy selected by Config.RandomTTL.
func WithTTLPolicy(p TTLPolicy) Option {
	return func(s *Simulator) { s.ttl = p }
}

// Result is the outcome of a complete run.
type Result struct {
	Periods       []PeriodStats
	DistinctUsers int   // cache entries at the end of the run
	CacheBytes    int64 // approximate in-memory footprint of the cache state
}

// Simulator replays steady request pressure against an initially empty cache.
// The cache maps user id to expiration tick; entries are only ever overwritten.
//
// Thread-safety: NOT thread-safe. One Simulator owns its SequenceSource.
type Simulator struct {
	cfg       Config
	src       *sim.SequenceSource
	ttl       TTLPolicy
	collector stats.Collector
	onPeriod  func(PeriodStats) error

	clock int64
	cache map[int64]int64
}

// New validates cfg and returns a Simulator ready to Run.
func New(cfg Config, src *sim.SequenceSource, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmt.Errorf("%w: sequence source is nil", ErrInvalidConfig)
	}
	s := &Simulator{
		cfg:       cfg,
		src:       src,
		ttl:       NewTTLPolicy(cfg.RandomTTL),
		collector: stats.Noop{},
		cache:     make(map[int64]int64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Config returns the validated configuration.
func (s *Simulator) Config() Config { return s.cfg }

// TTLPolicy returns the active TTL policy.
func (s *Simulator) TTLPolicy() TTLPolicy { return s.ttl }

// Clock returns the next tick to be simulated.
func (s *Simulator) Clock() int64 { return s.clock }

// Done reports whether every configured tick has been simulated.
func (s *Simulator) Done() bool { return s.clock >= s.cfg.Duration }

// Step simulates the current tick and advances the clock.
func (s *Simulator) Step() PeriodStats {
	now := s.clock
	p := PeriodStats{Tick: now}

	var userIDs []int64
	if s.cfg.RecordHashes {
		userIDs = make([]int64, 0, s.cfg.RequestsPerTick)
	}

	for i := int64(0); i < s.cfg.RequestsPerTick; i++ {
		p.Requests++
		user := s.src.NextInRange(0, s.cfg.Users)

		if expires, ok := s.cache[user]; ok && now <= expires {
			p.Hits++
		} else {
			p.Misses++
			s.cache[user] = now + s.ttl.TTL(s.cfg.FixedTTL, user)
		}

		if s.cfg.RecordHashes {
			userIDs = append(userIDs, user)
		}
	}

	p.MissPercent = 100 * float64(p.Misses) / float64(p.Requests)
	if s.cfg.RecordHashes {
		p.PeriodHash = PeriodHash(userIDs)
	}

	s.collector.IncCounter(stats.MetricColdStartRequests, p.Requests)
	s.collector.IncCounter(stats.MetricColdStartHits, p.Hits)
	s.collector.IncCounter(stats.MetricColdStartMisses, p.Misses)
	s.collector.SetGauge(stats.MetricColdStartCacheEntries, int64(len(s.cache)))
	s.collector.ObserveHistogram(stats.MetricColdStartMissPercent, p.MissPercent)

	logrus.Debugf("[tick %d] requests=%d hits=%d misses=%d miss=%.2f%%",
		now, p.Requests, p.Hits, p.Misses, p.MissPercent)

	s.clock++
	return p
}

// Run simulates every remaining tick and discards the cache state on return.
func (s *Simulator) Run() (*Result, error) {
	res := &Result{Periods: make([]PeriodStats, 0, s.cfg.Duration-s.clock)}
	for !s.Done() {
		p := s.Step()
		res.Periods = append(res.Periods, p)
		if s.onPeriod != nil {
			if err := s.onPeriod(p); err != nil {
				return nil, fmt.Errorf("tick %d: %w", p.Tick, err)
			}
		}
	}
	res.DistinctUsers = len(s.cache)
	res.CacheBytes = int64(size.Of(s.cache))
	logrus.Infof("cold-start run finished: %d ticks, %d distinct users cached (~%d bytes)",
		len(res.Periods), res.DistinctUsers, res.CacheBytes)
	s.cache = make(map[int64]int64)
	return res, nil
}
