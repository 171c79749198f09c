package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/cachesim/sim/stats"
)

var (
	// Flags shared by every simulation
	seed             int64  // Seed for the deterministic sequence source
	logLevel         string // Log verbosity level
	logFile          string // Optional rotated log file
	defaultsFilePath string // Path to defaults.yaml
	metricsFile      string // Optional Prometheus text-format dump
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:           "cachesim",
	Short:         "Deterministic cache cold-start and resharding simulators",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFile)
	},
}

// loadDefaults reads the defaults file; the implicit default path may be absent.
func loadDefaults(cmd *cobra.Command) (*Config, error) {
	optional := !cmd.Flags().Changed("defaults-filepath")
	return loadDefaultsConfig(defaultsFilePath, optional)
}

// resolveSeed applies flag > defaults.yaml > built-in precedence to --seed.
func resolveSeed(cmd *cobra.Command, cfg *Config) int64 {
	return pickInt64(cmd.Flags().Changed("seed"), seed, cfg.Seed)
}

// newCollector returns a Prometheus collector when --metrics-file is set.
func newCollector() (stats.Collector, func() error) {
	if metricsFile == "" {
		return stats.Noop{}, func() error { return nil }
	}
	p := stats.NewPrometheus()
	return p, func() error {
		if err := p.WriteTextfile(metricsFile); err != nil {
			return err
		}
		logrus.Infof("metrics written to %s", metricsFile)
		return nil
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("%v", err)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", defaultSeed, "Seed for the deterministic sequence source")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs as JSON to this rotated file instead of stderr")
	rootCmd.PersistentFlags().StringVar(&defaultsFilePath, "defaults-filepath", defaultsFileName, "Path to YAML defaults")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Dump run metrics in Prometheus text format to this file")

	rootCmd.AddCommand(coldStartCmd)
	rootCmd.AddCommand(reshardCmd)
}
