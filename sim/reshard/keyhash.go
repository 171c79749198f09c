package reshard

import (
	"fmt"
	"hash/crc32"
	"hash/fnv"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// KeyHasher computes a stable, shard-count independent hash of a key.
type KeyHasher func(key string) uint64

// Names of the supported key hash functions.
const (
	HasherCRC32  = "crc32"
	HasherFNV1a  = "fnv1a"
	HasherXXHash = "xxhash"
)

var keyHashers = map[string]KeyHasher{
	HasherCRC32: func(key string) uint64 {
		return uint64(crc32.ChecksumIEEE([]byte(key)))
	},
	HasherFNV1a: func(key string) uint64 {
		h := fnv.New64a()
		// fnv.Write never returns an error.
		_, _ = h.Write([]byte(key))
		return h.Sum64()
	},
	HasherXXHash: xxhash.Sum64String,
}

// NewKeyHasher returns the named hash function. Empty name selects crc32.
func NewKeyHasher(name string) (KeyHasher, error) {
	if name == "" {
		name = HasherCRC32
	}
	h, ok := keyHashers[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown key hasher %q; valid: %v", ErrInvalidConfig, name, ValidHashers())
	}
	return h, nil
}

// ValidHashers returns the supported hasher names in sorted order.
func ValidHashers() []string {
	names := make([]string, 0, len(keyHashers))
	for name := range keyHashers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeyHashCache memoizes key hashes for the lifetime of one hashing algorithm.
// It grows monotonically and is never evicted: a resharding run touches a
// bounded key universe, so the memory is released with the algorithm.
type KeyHashCache struct {
	hasher KeyHasher
	hashes map[string]uint64
}

// NewKeyHashCache creates an empty cache in front of hasher.
func NewKeyHashCache(hasher KeyHasher) *KeyHashCache {
	return &KeyHashCache{
		hasher: hasher,
		hashes: make(map[string]uint64),
	}
}

// Hash returns the memoized hash of key, computing it on first use.
func (c *KeyHashCache) Hash(key string) uint64 {
	if h, ok := c.hashes[key]; ok {
		return h
	}
	h := c.hasher(key)
	c.hashes[key] = h
	return h
}

// Len returns the number of distinct keys hashed so far.
func (c *KeyHashCache) Len() int {
	return len(c.hashes)
}
