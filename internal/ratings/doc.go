// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

// Package ratings holds the user rating data that the correlation pass reads.
//
// # Overview
//
// Input is a whitespace separated text file with one rating per line:
//
//	<userId> <itemId> <rating>
//
// Records are parsed into [Record] values and folded into a [Store], which
// maps each user id to a [Profile]. A profile carries the user's mean rating
// and a sparse item -> rating map. Both are computed once and never mutated,
// so a Store is safe for concurrent readers after [Build] returns.
//
// # Ordering
//
// Map iteration order in Go is random. Anything that must be reproducible
// uses the ordered views instead:
//
//   - [Store.UserIDs] returns user ids in ascending order
//   - [Profile.Items] returns item ids in ascending order
//
// # Errors
//
// A line that does not parse into three integers aborts the load with a
// [*MalformedRecordError] (matches [ErrMalformedRecord]). Looking up a user
// that is not in the store returns [ErrUnknownUser]; callers treat this as a
// programming error rather than a data condition.
package ratings
