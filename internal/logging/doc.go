// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package logging provides the zerolog-based structured logger used across
// peercorr.
//
// Diagnostics (record counts, user counts, elapsed time) go to stderr so
// they never mix with the correlation output file.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "console",
//	})
//
//	logging.Info().Int("users", n).Msg("ratings loaded")
//	logging.Error().Err(err).Msg("correlation failed")
//
// # Run IDs
//
// Every invocation gets a run id. Attach it to a context once and log
// through [Ctx] so each line carries it:
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Msg("starting")
//
// # Configuration
//
// Level is one of trace, debug, info, warn, error, fatal, panic or disabled.
// Format is json (machine readable) or console (human readable, default).
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
