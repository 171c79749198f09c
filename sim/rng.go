package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemColdStart is the sequence source for the cold-start simulator.
	// Uses master seed directly so --seed maps 1:1 onto the drawn user sequence.
	SubsystemColdStart = "coldstart"

	// SubsystemReshard is reserved for the resharding simulator. The loss
	// computation itself draws nothing; keyed workloads may in the future.
	SubsystemReshard = "reshard"
)

// === SequenceSource ===

// SequenceSource is a seeded pseudo-random generator producing a reproducible
// sequence of bounded integers.
//
// Thread-safety: NOT thread-safe. It is owned by exactly one simulator and
// consumed in strict call order; interleaving callers breaks reproducibility.
type SequenceSource struct {
	seed int64
	rng  *rand.Rand
}

// NewSequenceSource creates a SequenceSource seeded with seed.
func NewSequenceSource(seed int64) *SequenceSource {
	s := &SequenceSource{}
	s.Seed(seed)
	return s
}

// Seed resets the source to the reproducible state identified by seed.
func (s *SequenceSource) Seed(seed int64) {
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

// SeedValue returns the seed the source was last reset with.
func (s *SequenceSource) SeedValue() int64 {
	return s.seed
}

// NextInRange returns the next integer in [min, max] inclusive.
// Panics if max < min.
func (s *SequenceSource) NextInRange(min, max int64) int64 {
	if max < min {
		panic(fmt.Sprintf("sim: NextInRange called with max %d < min %d", max, min))
	}
	return min + s.rng.Int63n(max-min+1)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated sequence sources per subsystem.
//
// Derivation formula:
//   - For SubsystemColdStart: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*SequenceSource
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*SequenceSource),
	}
}

// ForSubsystem returns a deterministically-seeded source for the named subsystem.
// The same subsystem name always returns the same *SequenceSource instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *SequenceSource {
	if src, ok := p.subsystems[name]; ok {
		return src
	}

	var derivedSeed int64
	if name == SubsystemColdStart {
		derivedSeed = int64(p.key)
	} else {
		// All other subsystems: XOR with hash for isolation.
		derivedSeed = int64(p.key) ^ fnv1a64(name)
	}

	src := NewSequenceSource(derivedSeed)
	p.subsystems[name] = src
	return src
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
