package coldstart

import "math"

// ttlFactorModulus bounds the per-user TTL multiplier to [8, 11] tenths.
const ttlFactorModulus = 4

// TTLPolicy decides how long a freshly cached item stays valid.
// Implementations must be pure functions of their arguments: they never
// consume the sequence source, so switching policies cannot change which
// users are drawn in which tick.
type TTLPolicy interface {
	Name() string
	TTL(fixedTTL, userID int64) int64
}

// FixedTTL always returns the configured TTL.
type FixedTTL struct{}

func (FixedTTL) Name() string { return "Fixed" }

func (FixedTTL) TTL(fixedTTL, _ int64) int64 { return fixedTTL }

// UserFactorTTL scales the configured TTL by a pseudo-random factor derived
// from the user id: factor = (7*userID) mod 4 + 8, TTL = round(fixed*factor/10).
type UserFactorTTL struct{}

func (UserFactorTTL) Name() string { return "Random" }

func (UserFactorTTL) TTL(fixedTTL, userID int64) int64 {
	factor := (7*userID)%ttlFactorModulus + 8
	return int64(math.Round(float64(fixedTTL*factor) / 10))
}

// NewTTLPolicy returns UserFactorTTL when random is set, FixedTTL otherwise.
func NewTTLPolicy(random bool) TTLPolicy {
	if random {
		return UserFactorTTL{}
	}
	return FixedTTL{}
}
