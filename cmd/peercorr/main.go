// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/peercorr/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		logging.Error().Err(err).Msg("peercorr failed")
		os.Exit(1)
	}
}
