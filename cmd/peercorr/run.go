// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/peercorr/internal/checkpoint"
	"github.com/tomtom215/peercorr/internal/config"
	"github.com/tomtom215/peercorr/internal/logging"
	"github.com/tomtom215/peercorr/internal/match"
	"github.com/tomtom215/peercorr/internal/metrics"
	"github.com/tomtom215/peercorr/internal/output"
	"github.com/tomtom215/peercorr/internal/ratings"
)

type runOptions struct {
	// fresh clears checkpointed results before the match pass.
	fresh bool
}

// run executes load, correlate and write. Nothing is written to the output
// path unless every phase succeeds.
func run(ctx context.Context, cfg *config.Config, opts runOptions) (err error) {
	log := logging.Ctx(ctx)

	defer func() {
		metrics.RecordRunResult(err)
		if cfg.Metrics.Textfile == "" {
			return
		}
		if werr := metrics.WriteTextfile(cfg.Metrics.Textfile); werr != nil {
			log.Warn().Err(werr).Msg("failed to write metrics textfile")
		}
	}()

	format, err := cfg.OutputFormat()
	if err != nil {
		return err
	}

	// Load
	start := time.Now()
	store, stats, err := ratings.LoadFile(ctx, cfg.Input.Path)
	if err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}
	metrics.RecordLoad(stats.Lines, stats.Users, time.Since(start))
	log.Info().
		Str("input", cfg.Input.Path).
		Int("lines", stats.Lines).
		Int("users", stats.Users).
		Msg("ratings loaded")

	// Correlate
	engine, err := match.NewEngine(cfg.EngineConfig(), *log)
	if err != nil {
		return err
	}

	if cfg.CheckpointEnabled() {
		closeCheckpoint, err := attachCheckpoint(ctx, cfg, engine, stats.Digest, opts.fresh)
		if err != nil {
			return err
		}
		defer closeCheckpoint()
	}

	start = time.Now()
	results, err := engine.Run(ctx, store)
	if err != nil {
		return fmt.Errorf("correlate users: %w", err)
	}
	elapsed := time.Since(start)
	engineStats := engine.Stats()
	metrics.RecordCorrelation(engineStats, elapsed)
	log.Info().
		Int64("matched", engineStats.Matched).
		Int64("unmatched", engineStats.Users-engineStats.Matched).
		Int64("checkpoint_hits", engineStats.CheckpointHits).
		Dur("elapsed", elapsed).
		Msg("correlation complete")

	// Write
	start = time.Now()
	lines, err := output.WriteFile(cfg.Output.Path, results, format)
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	metrics.RecordWrite(lines, time.Since(start))
	log.Info().
		Str("output", cfg.Output.Path).
		Str("format", string(format)).
		Int("lines", lines).
		Msg("results written")

	return nil
}

// attachCheckpoint opens the checkpoint store and scopes it to this input and
// threshold. The returned func closes the store.
func attachCheckpoint(ctx context.Context, cfg *config.Config, engine *match.Engine, digest uint64, fresh bool) (func(), error) {
	log := logging.Ctx(ctx)

	store, err := checkpoint.Open(cfg.CheckpointConfig())
	if err != nil {
		return nil, fmt.Errorf("open checkpoint: %w", err)
	}
	closeFn := func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close checkpoint")
		}
	}

	key := checkpoint.Key{Digest: digest, Threshold: cfg.Match.Threshold}

	if fresh {
		if err := store.Clear(ctx, key); err != nil {
			closeFn()
			return nil, fmt.Errorf("clear checkpoint: %w", err)
		}
		log.Info().Str("path", cfg.Checkpoint.Path).Msg("checkpoint cleared")
	} else if n, err := store.Count(ctx, key); err == nil && n > 0 {
		log.Info().Str("path", cfg.Checkpoint.Path).Int("users", n).Msg("resuming from checkpoint")
	}

	engine.SetCheckpoint(checkpoint.Scope(store, key))
	return closeFn, nil
}
