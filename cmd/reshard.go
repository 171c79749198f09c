package cmd

import (
	"bufio"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cachesim/sim/report"
	"github.com/inference-sim/cachesim/sim/reshard"
	"github.com/inference-sim/cachesim/sim/stats"
	"github.com/inference-sim/cachesim/sim/summary"
)

var (
	// CLI flags for the resharding simulation
	keyCount       int64  // Size of the key universe
	shardsArg      string // Candidate shard counts: "min-max" or a list
	algorithmName  string // Hashing algorithm
	hasherName     string // Key hash function
	reshardVerbose bool   // Print run header and absolute lost key counts
)

// reshardOptions is the fully resolved input of one resharding run.
type reshardOptions struct {
	Config    reshard.Config
	Algorithm string
	Hasher    string
	Verbose   bool
}

// reshardCmd measures key loss for every pair of candidate shard counts
var reshardCmd = &cobra.Command{
	Use:   "reshard",
	Short: "Simulate the fraction of keys that move when the shard count changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := loadDefaults(cmd)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		yml := defaults.Reshard

		shards, err := ParseShardCounts(pickString(flags.Changed("shards"), shardsArg, yml.Shards))
		if err != nil {
			return err
		}
		opts := reshardOptions{
			Config: reshard.Config{
				KeyCount: pickInt64(flags.Changed("keys"), keyCount, yml.Keys),
				Shards:   shards,
			},
			Algorithm: pickString(flags.Changed("algorithm"), algorithmName, yml.Algorithm),
			Hasher:    pickString(flags.Changed("hash"), hasherName, yml.Hash),
			Verbose:   reshardVerbose,
		}

		collector, flushMetrics := newCollector()
		out := bufio.NewWriter(os.Stdout)
		res, err := runReshard(out, opts, collector)
		if flushErr := out.Flush(); err == nil {
			err = flushErr
		}
		if err != nil {
			return err
		}

		s := summary.SummarizeReshard(res.Records)
		logrus.Infof("mean loss %.2f%% over %d pairs, worst %d->%d at %.2f%%",
			s.MeanLostPercent, s.Pairs, s.MaxLossBefore, s.MaxLossAfter, s.MaxLostPercent)
		return flushMetrics()
	},
}

// runReshard validates opts, runs the simulation and streams the report to w.
func runReshard(w io.Writer, opts reshardOptions, collector stats.Collector) (*reshard.Result, error) {
	algo, err := reshard.NewHashingAlgorithm(opts.Algorithm, opts.Hasher)
	if err != nil {
		return nil, err
	}
	tsv := report.NewTSVWriter(w, report.ReshardColumns(opts.Verbose))

	s, err := reshard.New(opts.Config, algo,
		reshard.WithCollector(collector),
		reshard.WithRecordHandler(func(r reshard.LossRecord) error {
			return tsv.Write(report.ReshardRow(r, opts.Verbose))
		}),
	)
	if err != nil {
		return nil, err
	}

	logrus.Infof("Starting resharding simulation: keys=%d shards=%v algorithm=%s",
		opts.Config.KeyCount, s.Shards(), algo.Name())

	if opts.Verbose {
		if err := report.WriteReshardPreamble(w, opts.Config.KeyCount, s.Shards(), algo.Name()); err != nil {
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
	reshardCmd.Flags().Int64Var(&keyCount, "keys", defaultKeys, "Number of keys in the universe")
	reshardCmd.Flags().StringVar(&shardsArg, "shards", defaultShards, `Candidate shard counts: range "min-max" or list "1,2,4"`)
	reshardCmd.Flags().StringVar(&algorithmName, "algorithm", reshard.AlgorithmModulo, "Hashing algorithm (modulo, jump)")
	reshardCmd.Flags().StringVar(&hasherName, "hash", reshard.HasherCRC32, "Key hash function (crc32, fnv1a, xxhash)")
	reshardCmd.Flags().BoolVarP(&reshardVerbose, "verbose", "v", false, "Print run header and absolute lost key counts")
}
