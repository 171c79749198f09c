package cmd

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseShardCounts accepts either a contiguous range "min-max" or an explicit
// list separated by commas, semicolons or whitespace. Every value must be a
// positive integer.
func ParseShardCounts(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("empty shard count list")
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		first, err := parsePositive(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid shard range %q: %w", s, err)
		}
		last, err := parsePositive(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid shard range %q: %w", s, err)
		}
		if last < first {
			return nil, fmt.Errorf("invalid shard range %q: max %d < min %d", s, last, first)
		}
		out := make([]int, 0, last-first+1)
		for v := first; v <= last; v++ {
			out = append(out, v)
		}
		return out, nil
	}

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("invalid shard list %q: no values", s)
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := parsePositive(f)
		if err != nil {
			return nil, fmt.Errorf("invalid shard list %q: %w", s, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parsePositive(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", strings.TrimSpace(s))
	}
	if v <= 0 {
		return 0, fmt.Errorf("shard count must be positive, got %d", v)
	}
	return v, nil
}
