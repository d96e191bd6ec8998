// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package match

import (
	"context"
)

// Match is the best peer found for a user.
type Match struct {
	// PeerID is the matched user.
	PeerID int `json:"peer_id"`

	// PCC is the Pearson correlation with the peer.
	PCC float64 `json:"pcc"`

	// Overlap is the number of items both users rated.
	Overlap int `json:"overlap"`
}

// Result is the outcome of the selection for one user.
// A nil Match means no peer met the threshold.
type Result struct {
	UserID int    `json:"user_id"`
	Match  *Match `json:"match,omitempty"`
}

// Found reports whether a peer was selected.
func (r Result) Found() bool {
	return r.Match != nil
}

// Checkpoint persists per-user results so an interrupted run can resume.
// Implementations are bound to one input and threshold and must be safe for
// concurrent use.
type Checkpoint interface {
	// Load returns the stored result for userID, if any.
	Load(ctx context.Context, userID int) (Result, bool, error)

	// Save stores a computed result.
	Save(ctx context.Context, r Result) error
}

// Stats are counters from the most recent Run.
type Stats struct {
	// Users is the number of users resolved.
	Users int64 `json:"users"`

	// Matched is the number of users with a peer.
	Matched int64 `json:"matched"`

	// Comparisons is the number of Correlate calls.
	Comparisons int64 `json:"comparisons"`

	// CheckpointHits is the number of users served from the checkpoint.
	CheckpointHits int64 `json:"checkpoint_hits"`
}
