package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cachesim/sim/coldstart"
	"github.com/inference-sim/cachesim/sim/reshard"
)

func TestTSVWriter_HeaderOnceBeforeFirstRow(t *testing.T) {
	var buf bytes.Buffer
	w := NewTSVWriter(&buf, []string{"a", "b"})

	require.NoError(t, w.Write([]string{"1", "2"}))
	require.NoError(t, w.Write([]string{"3", "4"}))
	require.NoError(t, w.Flush())

	assert.Equal(t, "a\tb\n1\t2\n3\t4\n", buf.String())
}

func TestTSVWriter_NoRowsNoHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTSVWriter(&buf, []string{"a"})
	require.NoError(t, w.Flush())
	assert.Empty(t, buf.String())
}

func TestTSVWriter_RejectsWidthMismatch(t *testing.T) {
	w := NewTSVWriter(&bytes.Buffer{}, []string{"a", "b"})
	assert.Error(t, w.Write([]string{"1"}))
}

func TestColdStartRow_Formatting(t *testing.T) {
	p := coldstart.PeriodStats{Tick: 3, Requests: 5000, Misses: 1234, Hits: 3766, MissPercent: 24.68, PeriodHash: "abc"}

	assert.Equal(t, []string{"3", "24.68", "1234", "3766", "5000"}, ColdStartRow(p, false))
	assert.Equal(t, []string{"3", "24.68", "1234", "3766", "5000", "abc"}, ColdStartRow(p, true))
	assert.Len(t, ColdStartColumns(false), 5)
	assert.Equal(t, "period_hash", ColdStartColumns(true)[5])
}

func TestReshardRow_Formatting(t *testing.T) {
	tests := []struct {
		rec  reshard.LossRecord
		want []string
	}{
		{reshard.LossRecord{Before: 1, After: 2, Lost: 500, LostPercent: 50}, []string{"1", "2", "50.00%"}},
		{reshard.LossRecord{Before: 2, After: 2}, []string{"2", "2", "00.00%"}},
		{reshard.LossRecord{Before: 1, After: 9, Lost: 53, LostPercent: 5.3}, []string{"1", "9", "05.30%"}},
		{reshard.LossRecord{Before: 1, After: 9, Lost: 10, LostPercent: 100}, []string{"1", "9", "100.00%"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ReshardRow(tt.rec, false))
	}
	assert.Equal(t, []string{"1", "2", "50.00%", "500"}, ReshardRow(tests[0].rec, true))
	assert.Equal(t, []string{"ShardsBefore", "ShardsAfter", "LostKeysPercent", "LostKeys"}, ReshardColumns(true))
}

func TestPreambles(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteColdStartPreamble(&buf, coldstart.Config{Duration: 100, Users: 10000, RequestsPerTick: 5000, FixedTTL: 10}, "Fixed"))
	assert.Contains(t, buf.String(), "Unique users count:   10000\n")
	assert.Contains(t, buf.String(), "TTL mode: Fixed\n\n")

	buf.Reset()
	require.NoError(t, WriteReshardPreamble(&buf, 1000, []int{1, 2, 3}, "modulo"))
	assert.Equal(t, "Total keys count:\t1000\nShards count range:\t1, 2, 3\nHashing algorithm:\tmodulo\n\n", buf.String())
}
