// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package checkpoint

import (
	"context"
	"testing"

	"github.com/tomtom215/peercorr/internal/match"
)

// storeFactories returns every Store implementation under test.
func storeFactories() map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(*testing.T) Store { return NewMemoryStore() },
		"badger": func(t *testing.T) Store {
			t.Helper()
			s, err := Open(Config{Path: t.TempDir()})
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			return s
		},
	}
}

func TestStore_PutGet(t *testing.T) {
	ctx := context.Background()
	key := Key{Digest: 0xfeed, Threshold: 6}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			if _, ok, err := s.Get(ctx, key, 1); err != nil || ok {
				t.Fatalf("Get() on empty store = %v, %v", ok, err)
			}

			withMatch := match.Result{UserID: 1, Match: &match.Match{PeerID: 2, PCC: 0.75, Overlap: 9}}
			noMatch := match.Result{UserID: 3}

			if err := s.Put(ctx, key, withMatch); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			if err := s.Put(ctx, key, noMatch); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, ok, err := s.Get(ctx, key, 1)
			if err != nil || !ok {
				t.Fatalf("Get(1) = %v, %v", ok, err)
			}
			if got.UserID != 1 || got.Match == nil || *got.Match != *withMatch.Match {
				t.Errorf("Get(1) = %+v, want %+v", got, withMatch)
			}

			got, ok, err = s.Get(ctx, key, 3)
			if err != nil || !ok {
				t.Fatalf("Get(3) = %v, %v", ok, err)
			}
			if got.Found() {
				t.Errorf("Get(3) = %+v, want empty match", got)
			}
		})
	}
}

func TestStore_KeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := Key{Digest: 1, Threshold: 6}
	b := Key{Digest: 1, Threshold: 60}
	c := Key{Digest: 2, Threshold: 6}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			if err := s.Put(ctx, a, match.Result{UserID: 5}); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			for _, other := range []Key{b, c} {
				if _, ok, err := s.Get(ctx, other, 5); err != nil || ok {
					t.Errorf("Get(%+v) = %v, %v, want miss", other, ok, err)
				}
			}
		})
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()
	a := Key{Digest: 7, Threshold: 2}
	b := Key{Digest: 8, Threshold: 2}

	for name, newStore := range storeFactories() {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			for _, k := range []Key{a, b} {
				if err := s.Put(ctx, k, match.Result{UserID: 1}); err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}

			if err := s.Clear(ctx, a); err != nil {
				t.Fatalf("Clear() error = %v", err)
			}

			if _, ok, _ := s.Get(ctx, a, 1); ok {
				t.Error("result under cleared key still present")
			}
			if _, ok, _ := s.Get(ctx, b, 1); !ok {
				t.Error("result under other key was cleared")
			}
		})
	}
}

func TestScope(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	cp := Scope(store, Key{Digest: 3, Threshold: 4})

	if err := cp.Save(ctx, match.Result{UserID: 11}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok, err := cp.Load(ctx, 11); err != nil || !ok {
		t.Errorf("Load(11) = %v, %v", ok, err)
	}
	if _, ok, _ := store.Get(ctx, Key{Digest: 3, Threshold: 5}, 11); ok {
		t.Error("scoped save leaked into another threshold")
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	key := Key{Digest: 1, Threshold: 1}

	r := match.Result{UserID: 1, Match: &match.Match{PeerID: 2, PCC: 0.5, Overlap: 3}}
	if err := s.Put(ctx, key, r); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	r.Match.PCC = -1

	got, _, _ := s.Get(ctx, key, 1)
	if got.Match.PCC != 0.5 {
		t.Errorf("stored PCC = %f, want 0.5", got.Match.PCC)
	}
}

func TestBadgerStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	key := Key{Digest: 0xabc, Threshold: 6}

	s, err := Open(Config{Path: dir, SyncWrites: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	for id := 1; id <= 4; id++ {
		if err := s.Put(ctx, key, match.Result{UserID: id}); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	s, err = Open(Config{Path: dir})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	n, err := s.Count(ctx, key)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 4 {
		t.Errorf("Count() = %d, want 4", n)
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Error("Open() with empty path should fail")
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s, err := Open(Config{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Put(ctx, Key{}, match.Result{UserID: 1}); err == nil {
		t.Error("Put() with canceled context should fail")
	}
	if _, _, err := s.Get(ctx, Key{}, 1); err == nil {
		t.Error("Get() with canceled context should fail")
	}
}
