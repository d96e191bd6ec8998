// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package ratings

import (
	"errors"
	"fmt"
)

// ErrMalformedRecord is matched by every parse failure.
var ErrMalformedRecord = errors.New("malformed record")

// ErrUnknownUser is returned when a user id is not present in the store.
var ErrUnknownUser = errors.New("unknown user")

// Record is a single (user, item, rating) triple from the input.
type Record struct {
	UserID int `json:"user_id"`
	ItemID int `json:"item_id"`
	Rating int `json:"rating"`
}

// MalformedRecordError describes an input line that could not be parsed.
type MalformedRecordError struct {
	// Line is the 1-based line number.
	Line int

	// Text is the raw line content.
	Text string

	// Reason explains what was wrong with the line.
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is lets errors.Is match ErrMalformedRecord.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// Profile is one user's rating vector.
type Profile struct {
	// ID is the user identifier.
	ID int

	// Mean is the arithmetic mean of all ratings given by this user.
	Mean float64

	ratings map[int]int
	items   []int
}

// Rating returns the user's rating for item.
func (p *Profile) Rating(item int) (int, bool) {
	r, ok := p.ratings[item]
	return r, ok
}

// Items returns the rated item ids in ascending order.
// The returned slice must not be modified.
func (p *Profile) Items() []int {
	return p.items
}

// Len returns the number of items the user rated.
func (p *Profile) Len() int {
	return len(p.items)
}

// LoadStats summarizes a load for diagnostics and checkpoint keys.
type LoadStats struct {
	// Lines is the number of records read.
	Lines int `json:"lines"`

	// Users is the number of distinct users.
	Users int `json:"users"`

	// Digest is the xxhash of the raw input bytes.
	Digest uint64 `json:"digest"`
}
