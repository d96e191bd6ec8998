// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package ratings

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Store maps user ids to their profiles. It is read-only after Build.
type Store struct {
	profiles map[int]*Profile
	userIDs  []int
}

// Build folds records into a Store.
//
// A later record for the same (user, item) pair overwrites the earlier
// rating. Every user is created by its first record, so no profile is empty.
func Build(records []Record) *Store {
	byUser := make(map[int]map[int]int)
	for _, rec := range records {
		m, ok := byUser[rec.UserID]
		if !ok {
			m = make(map[int]int)
			byUser[rec.UserID] = m
		}
		m[rec.ItemID] = rec.Rating
	}

	s := &Store{
		profiles: make(map[int]*Profile, len(byUser)),
		userIDs:  make([]int, 0, len(byUser)),
	}

	for userID, m := range byUser {
		s.profiles[userID] = newProfile(userID, m)
		s.userIDs = append(s.userIDs, userID)
	}
	sort.Ints(s.userIDs)

	return s
}

func newProfile(id int, m map[int]int) *Profile {
	items := make([]int, 0, len(m))
	for item := range m {
		items = append(items, item)
	}
	sort.Ints(items)

	// Sum in ascending item order so the mean is identical across runs.
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = float64(m[item])
	}

	return &Profile{
		ID:      id,
		Mean:    stat.Mean(values, nil),
		ratings: m,
		items:   items,
	}
}

// Get returns the profile for userID.
func (s *Store) Get(userID int) (*Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownUser, userID)
	}
	return p, nil
}

// UserIDs returns all user ids in ascending order.
// The returned slice must not be modified.
func (s *Store) UserIDs() []int {
	return s.userIDs
}

// Len returns the number of users.
func (s *Store) Len() int {
	return len(s.userIDs)
}
