package reshard

import (
	"errors"
	"fmt"
	"sort"

	"github.com/DmitriyVTitov/size"
)

// ErrInvalidShardCount is returned when a shard count is not a positive integer.
var ErrInvalidShardCount = errors.New("shard count must be positive")

// HashingAlgorithm assigns keys to shards.
// KeyShard returns a shard index in [0, shardCount).
type HashingAlgorithm interface {
	Name() string
	KeyShard(key string, shardCount int) (int, error)
}

// Names of the supported hashing algorithms.
const (
	AlgorithmModulo = "modulo"
	AlgorithmJump   = "jump"
)

var hashingAlgorithms = map[string]func(*KeyHashCache) HashingAlgorithm{
	AlgorithmModulo: func(c *KeyHashCache) HashingAlgorithm { return &ModuloHashing{cache: c} },
	AlgorithmJump:   func(c *KeyHashCache) HashingAlgorithm { return &JumpHashing{cache: c} },
}

// NewHashingAlgorithm builds the named algorithm over the named key hasher.
// Empty names select modulo hashing over crc32.
func NewHashingAlgorithm(algorithm, hasher string) (HashingAlgorithm, error) {
	if algorithm == "" {
		algorithm = AlgorithmModulo
	}
	build, ok := hashingAlgorithms[algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: unknown hashing algorithm %q; valid: %v", ErrInvalidConfig, algorithm, ValidAlgorithms())
	}
	h, err := NewKeyHasher(hasher)
	if err != nil {
		return nil, err
	}
	return build(NewKeyHashCache(h)), nil
}

// ValidAlgorithms returns the supported algorithm names in sorted order.
func ValidAlgorithms() []string {
	names := make([]string, 0, len(hashingAlgorithms))
	for name := range hashingAlgorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// memoized is implemented by algorithms that own a KeyHashCache.
type memoized interface {
	KeyHashCache() *KeyHashCache
}

// ModuloHashing assigns hash(key) mod shardCount.
type ModuloHashing struct {
	cache *KeyHashCache
}

// NewModuloHashing creates a modulo algorithm with its own key hash cache.
func NewModuloHashing(hasher KeyHasher) *ModuloHashing {
	return &ModuloHashing{cache: NewKeyHashCache(hasher)}
}

func (m *ModuloHashing) Name() string { return AlgorithmModulo }

// KeyShard returns hash(key) mod shardCount.
func (m *ModuloHashing) KeyShard(key string, shardCount int) (int, error) {
	if shardCount <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidShardCount, shardCount)
	}
	return int(m.cache.Hash(key) % uint64(shardCount)), nil
}

// KeyHashCache exposes the memo cache for inspection.
func (m *ModuloHashing) KeyHashCache() *KeyHashCache { return m.cache }

// JumpHashing implements Google's "A Fast, Minimal Memory, Consistent Hash
// Algorithm" (Lamping & Veach, 2014) over the memoized key hash.
// Growing from n to n+1 shards moves only the keys that land on shard n.
type JumpHashing struct {
	cache *KeyHashCache
}

// NewJumpHashing creates a jump hash algorithm with its own key hash cache.
func NewJumpHashing(hasher KeyHasher) *JumpHashing {
	return &JumpHashing{cache: NewKeyHashCache(hasher)}
}

func (j *JumpHashing) Name() string { return AlgorithmJump }

// KeyShard returns the jump hash bucket of key among shardCount buckets.
func (j *JumpHashing) KeyShard(key string, shardCount int) (int, error) {
	if shardCount <= 0 {
		return 0, fmt.Errorf("%w, got %d", ErrInvalidShardCount, shardCount)
	}
	return jumpHash(j.cache.Hash(key), shardCount), nil
}

// KeyHashCache exposes the memo cache for inspection.
func (j *JumpHashing) KeyHashCache() *KeyHashCache { return j.cache }

func jumpHash(key uint64, numBuckets int) int {
	var b, j int64 = -1, 0
	for j < int64(numBuckets) {
		b = j
		key = key*2862933555777941757 + 1
		j = int64(float64(b+1) * (float64(int64(1)<<31) / float64((key>>33)+1)))
	}
	return int(b)
}

// cacheEntries reports the memo size of algo's key hash cache; zero for
// algorithms without one.
func cacheEntries(algo HashingAlgorithm) int {
	if m, ok := algo.(memoized); ok {
		return m.KeyHashCache().Len()
	}
	return 0
}

// cacheBytes approximates the memory held by algo's key hash cache.
func cacheBytes(algo HashingAlgorithm) int64 {
	if m, ok := algo.(memoized); ok {
		return int64(size.Of(m.KeyHashCache().hashes))
	}
	return 0
}
