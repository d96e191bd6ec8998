// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package match selects, for every user, the single most positively
// correlated peer.
//
// # Selection Rule
//
// For a user u, every other user v in the store is scored with
// similarity.Correlate. Candidates rated fewer than Threshold items in common
// with u are discarded. Among the rest, the one with the strictly greatest
// PCC wins. Peers are visited in ascending user id and the running best is
// replaced only on a strictly greater PCC, so on an exact tie the lowest peer
// id wins. When no candidate meets the threshold the result is empty; that is
// a normal outcome, not an error.
//
// # Engine
//
// [Engine] runs the selection for every user in the store. The per-user scans
// are independent and the store is read-only, so the engine fans them out
// over a bounded worker pool and writes each result into its slot of an
// output slice indexed by position in the ascending id list. The returned
// slice is therefore always in ascending user id order regardless of
// scheduling.
//
// An optional [Checkpoint] lets a rerun over the same input skip users whose
// results were already computed.
//
// # Usage
//
//	cfg := match.DefaultConfig()
//	cfg.Threshold = 6
//
//	engine, err := match.NewEngine(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	results, err := engine.Run(ctx, store)
package match
