// Package summary aggregates run-level statistics from simulator records.
// This package stores pure data types and never drives a simulation.
package summary

import (
	"github.com/inference-sim/cachesim/sim/coldstart"
	"github.com/inference-sim/cachesim/sim/reshard"
)

// ColdStartSummary aggregates the per-tick statistics of a cold-start run.
type ColdStartSummary struct {
	Ticks           int
	TotalRequests   int64
	TotalMisses     int64
	TotalHits       int64
	MeanMissPercent float64
	PeakMissPercent float64
	// WarmTick is the first tick whose miss percent fell below the threshold
	// passed to SummarizeColdStart; -1 if it never did.
	WarmTick int64
}

// SummarizeColdStart computes aggregate statistics over periods.
// Safe for nil or empty input (returns zero-value fields, WarmTick -1).
func SummarizeColdStart(periods []coldstart.PeriodStats, warmThreshold float64) *ColdStartSummary {
	s := &ColdStartSummary{WarmTick: -1}
	if len(periods) == 0 {
		return s
	}
	s.Ticks = len(periods)
	total := 0.0
	for _, p := range periods {
		s.TotalRequests += p.Requests
		s.TotalMisses += p.Misses
		s.TotalHits += p.Hits
		total += p.MissPercent
		if p.MissPercent > s.PeakMissPercent {
			s.PeakMissPercent = p.MissPercent
		}
		if s.WarmTick < 0 && p.MissPercent < warmThreshold {
			s.WarmTick = p.Tick
		}
	}
	s.MeanMissPercent = total / float64(len(periods))
	return s
}

// ReshardSummary aggregates the loss records of a resharding run.
type ReshardSummary struct {
	Pairs           int
	MeanLostPercent float64 // over pairs with Before != After
	MaxLostPercent  float64
	MaxLossBefore   int
	MaxLossAfter    int
}

// SummarizeReshard computes aggregate statistics over records.
// Self pairs (Before == After) are excluded from the mean.
func SummarizeReshard(records []reshard.LossRecord) *ReshardSummary {
	s := &ReshardSummary{Pairs: len(records)}
	moved, total := 0, 0.0
	for _, r := range records {
		if r.Before == r.After {
			continue
		}
		moved++
		total += r.LostPercent
		if r.LostPercent > s.MaxLostPercent {
			s.MaxLostPercent = r.LostPercent
			s.MaxLossBefore, s.MaxLossAfter = r.Before, r.After
		}
	}
	if moved > 0 {
		s.MeanLostPercent = total / float64(moved)
	}
	return s
}
