// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package metrics holds the Prometheus collectors for a peercorr run.
//
// peercorr is a batch job, so nothing is scraped. When metrics.textfile is
// configured the command calls WriteTextfile at exit and node_exporter's
// textfile collector picks the file up:
//
//	peercorr ratings.txt peers.txt --metrics-file /var/lib/node_exporter/peercorr.prom
//
// Exported series:
//
//	peercorr_records_loaded
//	peercorr_users_loaded
//	peercorr_comparisons_total
//	peercorr_matched_users
//	peercorr_unmatched_users
//	peercorr_checkpoint_hits
//	peercorr_output_lines
//	peercorr_phase_duration_seconds{phase="load|correlate|write"}
//	peercorr_last_run_success
//	peercorr_last_run_timestamp_seconds
package metrics
