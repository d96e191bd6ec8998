// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package match

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/peercorr/internal/ratings"
	"github.com/tomtom215/peercorr/internal/similarity"
)

// Engine runs the best-match selection for every user in a store.
// A single Engine must not run concurrently with itself.
type Engine struct {
	config    Config
	logger    zerolog.Logger
	correlate similarity.Func

	checkpoint Checkpoint

	// Counters for the current run
	users          atomic.Int64
	matched        atomic.Int64
	comparisons    atomic.Int64
	checkpointHits atomic.Int64
}

// NewEngine creates a match engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg Config, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "match").Logger(),
		correlate: similarity.Correlate,
	}, nil
}

// SetCheckpoint enables resuming from previously stored results.
func (e *Engine) SetCheckpoint(cp Checkpoint) {
	e.checkpoint = cp
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Stats returns the counters of the most recent Run.
func (e *Engine) Stats() Stats {
	return Stats{
		Users:          e.users.Load(),
		Matched:        e.matched.Load(),
		Comparisons:    e.comparisons.Load(),
		CheckpointHits: e.checkpointHits.Load(),
	}
}

// Run resolves the best match of every user in store. Results are returned
// in ascending user id order, one per user.
func (e *Engine) Run(ctx context.Context, store *ratings.Store) ([]Result, error) {
	e.resetStats()

	start := time.Now()
	ids := store.UserIDs()
	results := make([]Result, len(ids))
	workers := e.config.workerCount()

	e.logger.Debug().
		Int("users", len(ids)).
		Int("threshold", e.config.Threshold).
		Int("workers", workers).
		Bool("checkpoint", e.checkpoint != nil).
		Msg("starting match pass")

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, id := range ids {
		if gctx.Err() != nil {
			break
		}

		i, id := i, id
		g.Go(func() error {
			r, err := e.resolve(gctx, store, id)
			if err != nil {
				return err
			}
			// Each goroutine owns one slot; the slice is the ordered merge.
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats := e.Stats()
	e.logger.Debug().
		Int64("users", stats.Users).
		Int64("matched", stats.Matched).
		Int64("comparisons", stats.Comparisons).
		Int64("checkpoint_hits", stats.CheckpointHits).
		Dur("elapsed", time.Since(start)).
		Msg("match pass complete")

	return results, nil
}

// resolve produces the result for one user, consulting the checkpoint first.
func (e *Engine) resolve(ctx context.Context, store *ratings.Store, userID int) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if e.checkpoint != nil {
		r, ok, err := e.checkpoint.Load(ctx, userID)
		if err != nil {
			return Result{}, fmt.Errorf("load checkpoint for user %d: %w", userID, err)
		}
		if ok {
			e.checkpointHits.Add(1)
			e.record(r)
			return r, nil
		}
	}

	r, comparisons, err := selectBest(store, userID, e.config.Threshold, e.correlate)
	e.comparisons.Add(int64(comparisons))
	if err != nil {
		return Result{}, err
	}

	if e.checkpoint != nil {
		if err := e.checkpoint.Save(ctx, r); err != nil {
			return Result{}, fmt.Errorf("save checkpoint for user %d: %w", userID, err)
		}
	}

	e.record(r)
	return r, nil
}

func (e *Engine) record(r Result) {
	e.users.Add(1)
	if r.Found() {
		e.matched.Add(1)
	}
}

func (e *Engine) resetStats() {
	e.users.Store(0)
	e.matched.Store(0)
	e.comparisons.Store(0)
	e.checkpointHits.Store(0)
}
