// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package similarity scores pairs of user profiles.
//
// [Correlate] computes the Pearson Correlation Coefficient over the items two
// users have both rated, using each user's overall mean rating (not the mean
// over the shared subset):
//
//	num  = sum (ra - meanA) * (rb - meanB)
//	denA = sum (ra - meanA)^2
//	denB = sum (rb - meanB)^2
//	pcc  = num / sqrt(denA*denB + Epsilon)
//
// Epsilon keeps the division defined when either user has zero variance on
// the shared items. In those near-degenerate cases the result may fall
// slightly outside [-1, 1]; that is expected and left as is.
//
// Shared items are visited in ascending item id, so the floating point
// accumulation is identical for Correlate(a, b) and Correlate(b, a) and
// across runs.
package similarity
