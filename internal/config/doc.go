// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

/*
Package config loads peercorr configuration with Koanf v2.

Sources are layered, later ones winning:

 1. Built-in defaults (threshold 6, text output, info logging)
 2. YAML file: the --config flag, else $PEERCORR_CONFIG, else peercorr.yaml
    or peercorr.yml in the working directory
 3. Environment variables listed below
 4. Command line arguments, applied by cmd/peercorr

Example peercorr.yaml:

	output:
	  format: jsonl
	match:
	  threshold: 10
	  workers: 8
	checkpoint:
	  path: /var/lib/peercorr/checkpoint
	  sync_writes: false
	metrics:
	  textfile: /var/lib/node_exporter/peercorr.prom
	logging:
	  level: debug
	  format: json

Environment variables:

	PEERCORR_INPUT            input.path
	PEERCORR_OUTPUT           output.path
	PEERCORR_FORMAT           output.format
	PEERCORR_THRESHOLD        match.threshold
	PEERCORR_WORKERS          match.workers
	PEERCORR_CHECKPOINT_PATH  checkpoint.path
	PEERCORR_CHECKPOINT_SYNC  checkpoint.sync_writes
	PEERCORR_METRICS_TEXTFILE metrics.textfile
	LOG_LEVEL                 logging.level
	LOG_FORMAT                logging.format
	LOG_CALLER                logging.caller

Load does not validate; call Validate once command line overrides are in
place.
*/
package config
