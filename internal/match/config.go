// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package match

import (
	"errors"
	"fmt"
	"runtime"
)

// DefaultThreshold is the minimum overlap used when none is given.
const DefaultThreshold = 6

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid match config")

// Config contains parameters for the match pass.
type Config struct {
	// Threshold is the minimum number of commonly rated items a peer needs
	// to be eligible.
	Threshold int `json:"threshold"`

	// Workers is the number of users scanned concurrently.
	// Zero means runtime.NumCPU().
	Workers int `json:"workers"`
}

// DefaultConfig returns the default match configuration.
func DefaultConfig() Config {
	return Config{
		Threshold: DefaultThreshold,
		Workers:   0,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Threshold < 0 {
		return fmt.Errorf("%w: threshold must be >= 0, got %d", ErrInvalidConfig, c.Threshold)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// workerCount resolves the effective worker count.
func (c Config) workerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
