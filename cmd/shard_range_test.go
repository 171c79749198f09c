package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShardCounts_Valid(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"1-10", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}},
		{"3-3", []int{3}},
		{" 2 - 4 ", []int{2, 3, 4}},
		{"1,2,4", []int{1, 2, 4}},
		{"8;4;2", []int{8, 4, 2}},
		{"5 6\t7", []int{5, 6, 7}},
		{"2,2,1", []int{2, 2, 1}},
		{"7", []int{7}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShardCounts(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseShardCounts_Invalid(t *testing.T) {
	for _, in := range []string{"", "   ", ",,", "a-b", "5-2", "0-3", "1-2-3", "-3", "1,x", "0", "1,-2", "2.5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseShardCounts(in)
			assert.Error(t, err)
		})
	}
}
