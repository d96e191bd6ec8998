// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/peercorr/internal/match"
)

// Phase labels for PhaseDuration.
const (
	PhaseLoad      = "load"
	PhaseCorrelate = "correlate"
	PhaseWrite     = "write"
)

// Registry holds every peercorr collector. It is separate from the default
// registry so the textfile export contains only run metrics.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Load Metrics
	RecordsLoaded = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_records_loaded",
			Help: "Number of rating records read from the input file",
		},
	)

	UsersLoaded = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_users_loaded",
			Help: "Number of distinct users in the input file",
		},
	)

	// Correlation Metrics
	Comparisons = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "peercorr_comparisons_total",
			Help: "Total number of user pairs correlated",
		},
	)

	MatchesFound = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_matched_users",
			Help: "Number of users with a qualifying peer",
		},
	)

	UnmatchedUsers = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_unmatched_users",
			Help: "Number of users without a qualifying peer",
		},
	)

	CheckpointHits = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_checkpoint_hits",
			Help: "Number of users whose result was reused from the checkpoint",
		},
	)

	// Output Metrics
	LinesWritten = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_output_lines",
			Help: "Number of lines written to the output file",
		},
	)

	// Run Metrics
	PhaseDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "peercorr_phase_duration_seconds",
			Help:    "Duration of each pipeline phase in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300, 900, 3600},
		},
		[]string{"phase"}, // "load", "correlate", "write"
	)

	RunSuccess = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_last_run_success",
			Help: "1 if the last run completed, 0 if it failed",
		},
	)

	LastRunTimestamp = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: "peercorr_last_run_timestamp_seconds",
			Help: "Unix time the last run finished",
		},
	)
)

// RecordLoad records the outcome of reading the input file.
func RecordLoad(records, users int, duration time.Duration) {
	RecordsLoaded.Set(float64(records))
	UsersLoaded.Set(float64(users))
	PhaseDuration.WithLabelValues(PhaseLoad).Observe(duration.Seconds())
}

// RecordCorrelation records engine statistics for one run.
func RecordCorrelation(stats match.Stats, duration time.Duration) {
	Comparisons.Add(float64(stats.Comparisons))
	MatchesFound.Set(float64(stats.Matched))
	UnmatchedUsers.Set(float64(stats.Users - stats.Matched))
	CheckpointHits.Set(float64(stats.CheckpointHits))
	PhaseDuration.WithLabelValues(PhaseCorrelate).Observe(duration.Seconds())
}

// RecordWrite records the output phase.
func RecordWrite(lines int, duration time.Duration) {
	LinesWritten.Set(float64(lines))
	PhaseDuration.WithLabelValues(PhaseWrite).Observe(duration.Seconds())
}

// RecordRunResult marks the run as finished, successfully if err is nil.
func RecordRunResult(err error) {
	if err != nil {
		RunSuccess.Set(0)
	} else {
		RunSuccess.Set(1)
	}
	LastRunTimestamp.Set(float64(time.Now().Unix()))
}

// WriteTextfile writes every collector in Registry to path in the
// Prometheus text format, for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
