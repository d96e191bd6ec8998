// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package config

import (
	"github.com/tomtom215/peercorr/internal/checkpoint"
	"github.com/tomtom215/peercorr/internal/logging"
	"github.com/tomtom215/peercorr/internal/match"
	"github.com/tomtom215/peercorr/internal/output"
)

// Config holds all configuration for one peercorr run.
type Config struct {
	Input      InputConfig      `koanf:"input"`
	Output     OutputConfig     `koanf:"output"`
	Match      MatchConfig      `koanf:"match"`
	Checkpoint CheckpointConfig `koanf:"checkpoint"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// InputConfig locates the ratings file.
type InputConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// OutputConfig controls where and how results are written.
type OutputConfig struct {
	Path   string `koanf:"path" validate:"required"`
	Format string `koanf:"format"`
}

// MatchConfig holds the correlation parameters.
type MatchConfig struct {
	// Threshold is the minimum number of commonly rated items a peer needs.
	Threshold int `koanf:"threshold" validate:"gte=0"`

	// Workers bounds the number of users correlated concurrently.
	// 0 uses runtime.NumCPU().
	Workers int `koanf:"workers" validate:"gte=0,lte=4096"`
}

// CheckpointConfig enables resumable runs. An empty Path disables
// checkpointing.
type CheckpointConfig struct {
	Path       string `koanf:"path"`
	SyncWrites bool   `koanf:"sync_writes"`
}

// MetricsConfig controls the Prometheus textfile export. An empty Textfile
// disables it.
type MetricsConfig struct {
	Textfile string `koanf:"textfile"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// EngineConfig converts the match section into the engine's configuration.
func (c *Config) EngineConfig() match.Config {
	return match.Config{
		Threshold: c.Match.Threshold,
		Workers:   c.Match.Workers,
	}
}

// OutputFormat parses the configured output format.
func (c *Config) OutputFormat() (output.Format, error) {
	return output.ParseFormat(c.Output.Format)
}

// CheckpointEnabled reports whether a checkpoint directory is configured.
func (c *Config) CheckpointEnabled() bool {
	return c.Checkpoint.Path != ""
}

// CheckpointConfig converts the checkpoint section into store options.
func (c *Config) CheckpointConfig() checkpoint.Config {
	return checkpoint.Config{
		Path:       c.Checkpoint.Path,
		SyncWrites: c.Checkpoint.SyncWrites,
	}
}

// LoggingConfig converts the logging section into logger options.
func (c *Config) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Logging.Level
	cfg.Format = c.Logging.Format
	cfg.Caller = c.Logging.Caller
	return cfg
}
