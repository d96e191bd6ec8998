// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tomtom215/peercorr/internal/config"
	"github.com/tomtom215/peercorr/internal/logging"
)

// rootFlags holds command line flags. Only flags the user actually set
// override the loaded configuration.
type rootFlags struct {
	configPath  string
	workers     int
	format      string
	checkpoint  string
	fresh       bool
	metricsFile string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "peercorr <input file> <output file> [threshold]",
		Short: "Find each user's best positively correlated peer",
		Long: `peercorr reads "<user> <item> <rating>" records and, for every user, reports
the peer with the highest Pearson correlation over commonly rated items.
Peers sharing fewer than threshold items (default 6) are not considered.

Examples:
  peercorr ratings.txt peers.txt
  peercorr ratings.txt peers.txt 10
  peercorr ratings.txt peers.jsonl --format jsonl --workers 8
  peercorr ratings.txt peers.txt --checkpoint .peercorr-ckpt`,
		Args:          cobra.RangeArgs(2, 3),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd, flags, args)
			if err != nil {
				return err
			}

			// Arguments are valid from here on; failures are not usage errors.
			cmd.SilenceUsage = true

			logCfg := cfg.LoggingConfig()
			logCfg.Output = cmd.ErrOrStderr()
			logging.Init(logCfg)

			ctx := logging.ContextWithNewRunID(cmd.Context())
			return run(ctx, cfg, runOptions{fresh: flags.fresh})
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.configPath, "config", "", "YAML config file (default: $PEERCORR_CONFIG or ./peercorr.yaml)")
	f.IntVar(&flags.workers, "workers", 0, "Users correlated concurrently (0 = NumCPU)")
	f.StringVar(&flags.format, "format", "text", "Output format: text or jsonl")
	f.StringVar(&flags.checkpoint, "checkpoint", "", "BadgerDB directory for resumable runs")
	f.BoolVar(&flags.fresh, "fresh", false, "Discard checkpointed results for this input and threshold")
	f.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics to this file on exit")
	f.StringVar(&flags.logLevel, "log-level", "info", "Log level: trace, debug, info, warn, error, disabled")
	f.StringVar(&flags.logFormat, "log-format", "console", "Log format: console or json")

	return cmd
}

// buildConfig layers positional arguments and changed flags over the file
// and environment configuration, then validates the result.
func buildConfig(cmd *cobra.Command, flags *rootFlags, args []string) (*config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	cfg.Input.Path = args[0]
	cfg.Output.Path = args[1]
	if len(args) == 3 {
		threshold, err := parseThreshold(args[2])
		if err != nil {
			return nil, err
		}
		cfg.Match.Threshold = threshold
	}

	f := cmd.Flags()
	if f.Changed("workers") {
		cfg.Match.Workers = flags.workers
	}
	if f.Changed("format") {
		cfg.Output.Format = flags.format
	}
	if f.Changed("checkpoint") {
		cfg.Checkpoint.Path = flags.checkpoint
	}
	if f.Changed("metrics-file") {
		cfg.Metrics.Textfile = flags.metricsFile
	}
	if f.Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if f.Changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}

	if flags.fresh && !cfg.CheckpointEnabled() {
		return nil, fmt.Errorf("--fresh requires a checkpoint path")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func parseThreshold(s string) (int, error) {
	threshold, err := strconv.Atoi(s)
	if err != nil || threshold < 0 {
		return 0, fmt.Errorf("invalid threshold %q: must be a non-negative integer", s)
	}
	return threshold, nil
}
