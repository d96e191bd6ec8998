// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package match

import (
	"fmt"

	"github.com/tomtom215/peercorr/internal/ratings"
	"github.com/tomtom215/peercorr/internal/similarity"
)

// BestMatch returns the most positively correlated peer of userID among
// users sharing at least threshold rated items with it.
//
// The returned Result has a nil Match when no peer qualifies. The only error
// is ratings.ErrUnknownUser.
func BestMatch(store *ratings.Store, userID, threshold int) (Result, error) {
	r, _, err := selectBest(store, userID, threshold, similarity.Correlate)
	return r, err
}

// selectBest scans every other user in ascending id order. It also returns
// the number of correlations computed.
func selectBest(store *ratings.Store, userID, threshold int, correlate similarity.Func) (Result, int, error) {
	user, err := store.Get(userID)
	if err != nil {
		return Result{}, 0, fmt.Errorf("best match: %w", err)
	}

	result := Result{UserID: userID}
	comparisons := 0

	for _, peerID := range store.UserIDs() {
		if peerID == userID {
			continue
		}

		peer, err := store.Get(peerID)
		if err != nil {
			return Result{}, comparisons, fmt.Errorf("best match: %w", err)
		}

		c := correlate(user, peer)
		comparisons++

		if c.Overlap < threshold {
			continue
		}

		// Strict > keeps the first (lowest id) peer on ties.
		if result.Match == nil || c.PCC > result.Match.PCC {
			result.Match = &Match{PeerID: peerID, PCC: c.PCC, Overlap: c.Overlap}
		}
	}

	return result, comparisons, nil
}
