// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package output serializes match results, one line per user in ascending
// user id order.
//
// Two formats are supported:
//
//	text   1 (2,1.00,2)      user 1 matched user 2, pcc 1.00, 2 shared items
//	       3                 user 3 had no qualifying peer
//	jsonl  {"user_id":1,"peer_id":2,"pcc":0.9999998750000235,"overlap":2}
//	       {"user_id":3}
//
// [WriteFile] renders everything in memory, writes it to a temporary file in
// the destination directory and renames it into place, so a failed run never
// leaves a partial output file behind.
package output
