package cmd

import (
	"bufio"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cachesim/sim"
	"github.com/inference-sim/cachesim/sim/coldstart"
	"github.com/inference-sim/cachesim/sim/report"
	"github.com/inference-sim/cachesim/sim/stats"
	"github.com/inference-sim/cachesim/sim/summary"
)

// warmMissPercent is the miss rate below which the cache counts as warm in the run summary.
const warmMissPercent = 50.0

var (
	// CLI flags for the cold-start simulation
	duration        int64 // Simulated ticks
	users           int64 // Size of the user id universe
	requestsPerTick int64 // Requests issued per tick
	fixedTTL        int64 // Base cache item TTL in ticks
	randomTTL       bool  // Scale TTL by a per-user factor
	coldVerbose     bool  // Print run header and per-tick request hash
)

// coldStartOptions is the fully resolved input of one cold-start run.
type coldStartOptions struct {
	Config  coldstart.Config
	Seed    int64
	Verbose bool
}

// coldStartCmd measures miss-rate decay while an empty cache warms up
var coldStartCmd = &cobra.Command{
	Use:   "coldstart",
	Short: "Simulate cache miss-rate decay from a cold start",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := loadDefaults(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		yml := defaults.ColdStart
		opts := coldStartOptions{
			Config: coldstart.Config{
				Duration:        pickInt64(flags.Changed("duration"), duration, yml.Duration),
				Users:           pickInt64(flags.Changed("users"), users, yml.Users),
				RequestsPerTick: pickInt64(flags.Changed("requests-per-tick"), requestsPerTick, yml.RequestsPerTick),
				FixedTTL:        pickInt64(flags.Changed("ttl"), fixedTTL, yml.TTL),
				RandomTTL:       pickBool(flags.Changed("random-ttl"), randomTTL, yml.RandomTTL),
				RecordHashes:    coldVerbose,
			},
			Seed:    resolveSeed(cmd, defaults),
			Verbose: coldVerbose,
		}

		collector, flushMetrics := newCollector()
		out := bufio.NewWriter(os.Stdout)
		res, err := runColdStart(out, opts, collector)
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		if err != nil {
			return err
		}

		s := summary.SummarizeColdStart(res.Periods, warmMissPercent)
		logrus.Infof("mean miss %.2f%%, peak %.2f%%, warm (<%.0f%%) at tick %d",
			s.MeanMissPercent, s.PeakMissPercent, warmMissPercent, s.WarmTick)
		return flushMetrics()
	},
}

// runColdStart validates opts, runs the simulation and streams the report to w.
func runColdStart(w io.Writer, opts coldStartOptions, collector stats.Collector) (*coldstart.Result, error) {
	src := sim.NewPartitionedRNG(sim.NewSimulationKey(opts.Seed)).ForSubsystem(sim.SubsystemColdStart)
	tsv := report.NewTSVWriter(w, report.ColdStartColumns(opts.Verbose))

	s, err := coldstart.New(opts.Config, src,
		coldstart.WithCollector(collector),
		coldstart.WithPeriodHandler(func(p coldstart.PeriodStats) error {
			return tsv.Write(report.ColdStartRow(p, opts.Verbose))
		}),
	)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting cold-start simulation: seed=%d duration=%d users=%d rpt=%d ttl=%d mode=%s",
		opts.Seed, opts.Config.Duration, opts.Config.Users, opts.Config.RequestsPerTick,
		opts.Config.FixedTTL, s.TTLPolicy().Name())

	if opts.Verbose {
		if err := report.WriteColdStartPreamble(w, opts.Config, s.TTLPolicy().Name()); err != nil {
			return nil, err
		}
	}
	res, err := s.Run()
	if err != nil {
		return nil, err
	}
	if err := tsv.Flush(); err != nil {
		return nil, err
	}
	return res, nil
}

func init() {
	coldStartCmd.Flags().Int64Var(&duration, "duration", defaultDuration, "Simulation time (in ticks)")
	coldStartCmd.Flags().Int64Var(&users, "users", defaultUsers, "Number of unique users")
	coldStartCmd.Flags().Int64Var(&requestsPerTick, "requests-per-tick", defaultRequestsPerTick, "Requests issued per tick")
	coldStartCmd.Flags().Int64Var(&fixedTTL, "ttl", defaultFixedTTL, "Cache item TTL (in ticks)")
	coldStartCmd.Flags().BoolVar(&randomTTL, "random-ttl", defaultRandomTTL, "Scale the TTL by a per-user pseudo-random factor")
	coldStartCmd.Flags().BoolVarP(&coldVerbose, "verbose", "v", false, "Print run header and per-tick request hash")
}
