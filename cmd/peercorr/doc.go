// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

/*
Command peercorr finds, for every user in a ratings file, the single peer
whose ratings correlate best with theirs.

Usage:

	peercorr <input file> <output file> [threshold] [flags]

The input holds one "<user> <item> <rating>" record per line, all integers
separated by whitespace. The output holds one line per user in ascending id
order:

	<id> (<peer>,<pcc>,<overlap>)
	<id>

The second form means no peer shared at least threshold rated items with
the user (default 6). PCC is printed with two decimals.

Flags:

	--config string         YAML config file (default: $PEERCORR_CONFIG or ./peercorr.yaml)
	--workers int           users correlated concurrently (0 = NumCPU)
	--format string         output format: text or jsonl
	--checkpoint string     BadgerDB directory for resumable runs
	--fresh                 discard checkpointed results for this input and threshold
	--metrics-file string   write Prometheus metrics here on exit
	--log-level string      trace, debug, info, warn, error or disabled
	--log-format string     console or json

Diagnostics go to stderr. A malformed input line aborts the run before any
output is written, and the output file is replaced atomically, so readers
never observe a partial result.
*/
package main
