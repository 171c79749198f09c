package coldstart

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{Duration: 100, Users: 10000, RequestsPerTick: 5000, FixedTTL: 10}
}

func TestConfig_Validate_AcceptsPositiveValues(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestConfig_Validate_RejectsNonPositive(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero duration", func(c *Config) { c.Duration = 0 }},
		{"zero users", func(c *Config) { c.Users = 0 }},
		{"zero requests per tick", func(c *Config) { c.RequestsPerTick = 0 }},
		{"negative requests per tick", func(c *Config) { c.RequestsPerTick = -1 }},
		{"zero ttl", func(c *Config) { c.FixedTTL = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
