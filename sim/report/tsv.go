// Package report renders simulation records as tab-separated text.
// The first record written emits the header line naming the columns.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inference-sim/cachesim/sim/coldstart"
	"github.com/inference-sim/cachesim/sim/reshard"
)

// TSVWriter writes one header line followed by one line per record.
type TSVWriter struct {
	w          *csv.Writer
	columns    []string
	headerDone bool
}

// NewTSVWriter creates a writer emitting the given columns to w.
func NewTSVWriter(w io.Writer, columns []string) *TSVWriter {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	return &TSVWriter{w: cw, columns: columns}
}

// Write emits row, preceded by the header on first use.
func (t *TSVWriter) Write(row []string) error {
	if len(row) != len(t.columns) {
		return fmt.Errorf("row has %d fields, expected %d", len(row), len(t.columns))
	}
	if !t.headerDone {
		if err := t.w.Write(t.columns); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
		t.headerDone = true
	}
	if err := t.w.Write(row); err != nil {
		return fmt.Errorf("writing row: %w", err)
	}
	return nil
}

// Flush writes any buffered data to the underlying writer.
func (t *TSVWriter) Flush() error {
	t.w.Flush()
	return t.w.Error()
}

// === Cold-start ===

// ColdStartColumns names the cold-start record fields.
func ColdStartColumns(withHash bool) []string {
	cols := []string{"time", "miss_percent", "period_cache_misses", "period_cache_hits", "period_requests"}
	if withHash {
		cols = append(cols, "period_hash")
	}
	return cols
}

// ColdStartRow formats p for ColdStartColumns(withHash).
func ColdStartRow(p coldstart.PeriodStats, withHash bool) []string {
	row := []string{
		strconv.FormatInt(p.Tick, 10),
		strconv.FormatFloat(p.MissPercent, 'f', 2, 64),
		strconv.FormatInt(p.Misses, 10),
		strconv.FormatInt(p.Hits, 10),
		strconv.FormatInt(p.Requests, 10),
	}
	if withHash {
		row = append(row, p.PeriodHash)
	}
	return row
}

// WriteColdStartPreamble prints the human-readable run description.
func WriteColdStartPreamble(w io.Writer, cfg coldstart.Config, ttlMode string) error {
	_, err := fmt.Fprintf(w,
		"Simulation time, sec: %d\nUnique users count:   %d\nRequests per second:  %d\nFixed TTL, seconds:   %d\nTTL mode: %s\n\n",
		cfg.Duration, cfg.Users, cfg.RequestsPerTick, cfg.FixedTTL, ttlMode)
	return err
}

// === Resharding ===

// ReshardColumns names the resharding record fields.
func ReshardColumns(withCount bool) []string {
	cols := []string{"ShardsBefore", "ShardsAfter", "LostKeysPercent"}
	if withCount {
		cols = append(cols, "LostKeys")
	}
	return cols
}

// ReshardRow formats r for ReshardColumns(withCount).
func ReshardRow(r reshard.LossRecord, withCount bool) []string {
	row := []string{
		strconv.Itoa(r.Before),
		strconv.Itoa(r.After),
		FormatPercent(r.LostPercent),
	}
	if withCount {
		row = append(row, strconv.FormatInt(r.Lost, 10))
	}
	return row
}

// FormatPercent renders a percentage zero-padded to two integer digits, e.g. "05.30%".
func FormatPercent(v float64) string {
	return fmt.Sprintf("%05.2f%%", v)
}

// WriteReshardPreamble prints the human-readable run description.
func WriteReshardPreamble(w io.Writer, keys int64, shards []int, algorithm string) error {
	parts := make([]string, len(shards))
	for i, s := range shards {
		parts[i] = strconv.Itoa(s)
	}
	_, err := fmt.Fprintf(w, "Total keys count:\t%d\nShards count range:\t%s\nHashing algorithm:\t%s\n\n",
		keys, strings.Join(parts, ", "), algorithm)
	return err
}
