// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package checkpoint persists per-user match results so a long correlation
// pass can resume after an interruption.
//
// Results are only valid for the exact input and threshold that produced
// them. A [Key] captures both (the input digest from ratings.LoadFile and
// the threshold) and [Store.Scope] binds a store to a key, yielding a
// match.Checkpoint for the engine.
//
// Two stores are provided:
//
//   - [BadgerStore]: BadgerDB-backed, survives restarts
//   - [MemoryStore]: in-process only, for tests
//
// # Key Layout
//
//	result:<digest hex>:<threshold>:<user id>  ->  JSON encoded match.Result
package checkpoint
