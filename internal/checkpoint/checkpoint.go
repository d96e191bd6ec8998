// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package checkpoint

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/tomtom215/peercorr/internal/match"
)

// Key identifies one input and threshold combination.
type Key struct {
	Digest    uint64
	Threshold int
}

// prefix returns the key prefix for all users of k.
func (k Key) prefix() string {
	return fmt.Sprintf("result:%016x:%d:", k.Digest, k.Threshold)
}

// userKey returns the storage key for one user.
func (k Key) userKey(userID int) []byte {
	return []byte(k.prefix() + strconv.Itoa(userID))
}

// Store persists results for any number of keys.
type Store interface {
	// Get returns the stored result for (key, userID), if present.
	Get(ctx context.Context, key Key, userID int) (match.Result, bool, error)

	// Put stores a result under key.
	Put(ctx context.Context, key Key, r match.Result) error

	// Clear removes every result stored under key.
	Clear(ctx context.Context, key Key) error

	// Close releases resources.
	Close() error
}

// scoped adapts a Store and Key to match.Checkpoint.
type scoped struct {
	store Store
	key   Key
}

// Scope binds store to key.
func Scope(store Store, key Key) match.Checkpoint {
	return &scoped{store: store, key: key}
}

func (s *scoped) Load(ctx context.Context, userID int) (match.Result, bool, error) {
	return s.store.Get(ctx, s.key, userID)
}

func (s *scoped) Save(ctx context.Context, r match.Result) error {
	return s.store.Put(ctx, s.key, r)
}

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]match.Result
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{results: make(map[string]match.Result)}
}

// Get returns the stored result.
func (m *MemoryStore) Get(_ context.Context, key Key, userID int) (match.Result, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[string(key.userKey(userID))]
	if !ok {
		return match.Result{}, false, nil
	}
	return copyResult(r), true, nil
}

// Put stores a copy of r.
func (m *MemoryStore) Put(_ context.Context, key Key, r match.Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[string(key.userKey(r.UserID))] = copyResult(r)
	return nil
}

// Clear removes all results under key.
func (m *MemoryStore) Clear(_ context.Context, key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := key.prefix()
	for k := range m.results {
		if strings.HasPrefix(k, prefix) {
			delete(m.results, k)
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error {
	return nil
}

func copyResult(r match.Result) match.Result {
	if r.Match != nil {
		m := *r.Match
		r.Match = &m
	}
	return r
}

// Ensure both stores implement the interface.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
)
