// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package config

import (
	"fmt"
	"path/filepath"

	"github.com/tomtom215/peercorr/internal/validation"
)

// Validate checks struct tags first, then the rules that span fields.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	if err := c.validateOutput(); err != nil {
		return err
	}

	if err := c.validateCheckpoint(); err != nil {
		return err
	}

	return c.validateMetrics()
}

// validateOutput rejects unknown formats and an output path that would
// overwrite the input.
func (c *Config) validateOutput() error {
	if _, err := c.OutputFormat(); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if samePath(c.Input.Path, c.Output.Path) {
		return fmt.Errorf("output.path %q must differ from input.path", c.Output.Path)
	}
	return nil
}

// validateCheckpoint keeps the checkpoint directory away from the files it
// would clobber.
func (c *Config) validateCheckpoint() error {
	if !c.CheckpointEnabled() {
		return nil
	}
	if samePath(c.Checkpoint.Path, c.Input.Path) || samePath(c.Checkpoint.Path, c.Output.Path) {
		return fmt.Errorf("checkpoint.path %q must differ from input.path and output.path", c.Checkpoint.Path)
	}
	return nil
}

func (c *Config) validateMetrics() error {
	if c.Metrics.Textfile == "" {
		return nil
	}
	if samePath(c.Metrics.Textfile, c.Input.Path) || samePath(c.Metrics.Textfile, c.Output.Path) {
		return fmt.Errorf("metrics.textfile %q must differ from input.path and output.path", c.Metrics.Textfile)
	}
	return nil
}

func samePath(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return filepath.Clean(a) == filepath.Clean(b)
}
