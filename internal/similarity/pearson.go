// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package similarity

import (
	"math"

	"github.com/tomtom215/peercorr/internal/ratings"
)

// Epsilon is added under the square root of the PCC denominator.
const Epsilon = 1e-6

// Correlation is the PCC between two users and the number of items they
// both rated.
type Correlation struct {
	PCC     float64
	Overlap int
}

// Func scores two profiles. Correlate is the only production implementation;
// the type exists so callers can count or stub comparisons in tests.
type Func func(a, b *ratings.Profile) Correlation

// Correlate computes the Pearson correlation of a and b over their commonly
// rated items. It is pure and safe for concurrent use.
func Correlate(a, b *ratings.Profile) Correlation {
	itemsA, itemsB := a.Items(), b.Items()

	var num, denA, denB float64
	overlap := 0

	// Merge walk over the two ascending item lists.
	i, j := 0, 0
	for i < len(itemsA) && j < len(itemsB) {
		switch {
		case itemsA[i] < itemsB[j]:
			i++
		case itemsA[i] > itemsB[j]:
			j++
		default:
			item := itemsA[i]
			ra, _ := a.Rating(item)
			rb, _ := b.Rating(item)

			diffA := float64(ra) - a.Mean
			diffB := float64(rb) - b.Mean
			num += diffA * diffB
			denA += diffA * diffA
			denB += diffB * diffB

			overlap++
			i++
			j++
		}
	}

	return Correlation{
		PCC:     num / math.Sqrt(denA*denB+Epsilon),
		Overlap: overlap,
	}
}
