package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Built-in defaults, used when neither a flag nor defaults.yaml sets a value.
const (
	defaultSeed            int64 = 1
	defaultDuration        int64 = 100
	defaultUsers           int64 = 10000
	defaultRequestsPerTick int64 = 5000
	defaultFixedTTL        int64 = 10
	defaultRandomTTL             = true
	defaultKeys            int64 = 1_000_000
	defaultShards                = "1-10"
	defaultsFileName             = "defaults.yaml"
)

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version   string           `yaml:"version"`
	Seed      *int64           `yaml:"seed"`
	ColdStart ColdStartDefault `yaml:"coldstart"`
	Reshard   ReshardDefault   `yaml:"reshard"`
}

// ColdStartDefault holds cold-start values; nil means "not set in YAML".
type ColdStartDefault struct {
	Duration        *int64 `yaml:"duration"`
	Users           *int64 `yaml:"users"`
	RequestsPerTick *int64 `yaml:"requests_per_tick"`
	TTL             *int64 `yaml:"ttl"`
	RandomTTL       *bool  `yaml:"random_ttl"`
}

// ReshardDefault holds resharding values; empty strings mean "not set in YAML".
type ReshardDefault struct {
	Keys      *int64 `yaml:"keys"`
	Shards    string `yaml:"shards"`
	Algorithm string `yaml:"algorithm"`
	Hash      string `yaml:"hash"`
}

// loadDefaultsConfig parses a defaults file with strict field checking:
// typos must cause errors. A missing file is tolerated when optional is set.
func loadDefaultsConfig(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			logrus.Debugf("defaults file %s not found, using built-in defaults", path)
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading defaults file: %w", err)
	}
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing defaults file %s: %w", path, err)
	}
	return &cfg, nil
}

// pickInt64 resolves flag > YAML > built-in.
func pickInt64(changed bool, flagVal int64, yamlVal *int64) int64 {
	if !changed && yamlVal != nil {
		return *yamlVal
	}
	return flagVal
}

func pickBool(changed bool, flagVal bool, yamlVal *bool) bool {
	if !changed && yamlVal != nil {
		return *yamlVal
	}
	return flagVal
}

func pickString(changed bool, flagVal string, yamlVal string) string {
	if !changed && yamlVal != "" {
		return yamlVal
	}
	return flagVal
}
