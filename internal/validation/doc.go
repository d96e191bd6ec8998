// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so repeated validation of the same configuration type is cheap.
//
// Field names in errors are taken from the koanf tag, and nested fields are
// reported with their dotted path, so a failure reads the same way the key is
// written in peercorr.yaml:
//
//	match.threshold must be greater than or equal to 0
//
// In addition to the built-in tags, "loglevel" accepts any level name known
// to the logging package.
//
//	type LoggingConfig struct {
//	    Level string `koanf:"level" validate:"loglevel"`
//	}
//
//	if err := validation.ValidateStruct(&cfg); err != nil {
//	    for _, fe := range err.Errors() {
//	        fmt.Println(fe.Field(), fe.Tag())
//	    }
//	}
package validation
