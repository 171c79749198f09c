package coldstart

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid cold-start config")

// Config groups the parameters of one cold-start run.
type Config struct {
	Duration        int64 // simulated ticks (must be > 0)
	Users           int64 // user ids are drawn from [0, Users] (must be > 0)
	RequestsPerTick int64 // requests issued per tick (must be > 0)
	FixedTTL        int64 // base TTL in ticks (must be > 0)
	RandomTTL       bool  // use UserFactorTTL instead of FixedTTL
	RecordHashes    bool  // compute PeriodHash for every tick
}

// Validate rejects configurations that would divide by zero or never run.
func (c Config) Validate() error {
	fields := []struct {
		name string
		val  int64
	}{
		{"duration", c.Duration},
		{"users", c.Users},
		{"requests_per_tick", c.RequestsPerTick},
		{"ttl", c.FixedTTL},
	}
	for _, f := range fields {
		if f.val <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, f.name, f.val)
		}
	}
	return nil
}
