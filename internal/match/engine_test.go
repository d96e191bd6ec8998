// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package match

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/peercorr/internal/ratings"
	"github.com/tomtom215/peercorr/internal/similarity"
)

// mockCheckpoint implements Checkpoint in memory.
type mockCheckpoint struct {
	mu      sync.Mutex
	results map[int]Result
	loadErr error
	saveErr error
	saves   atomic.Int32
}

func newMockCheckpoint() *mockCheckpoint {
	return &mockCheckpoint{results: make(map[int]Result)}
}

func (m *mockCheckpoint) Load(_ context.Context, userID int) (Result, bool, error) {
	if m.loadErr != nil {
		return Result{}, false, m.loadErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.results[userID]
	return r, ok, nil
}

func (m *mockCheckpoint) Save(_ context.Context, r Result) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results[r.UserID] = r
	return nil
}

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func randomStore(seed int64, users, items int) *ratings.Store {
	rng := rand.New(rand.NewSource(seed))
	var records []ratings.Record
	for u := 1; u <= users; u++ {
		n := 1 + rng.Intn(items)
		for i := 0; i < n; i++ {
			records = append(records, ratings.Record{
				UserID: u * 3, // sparse, non-contiguous ids
				ItemID: rng.Intn(items),
				Rating: 1 + rng.Intn(5),
			})
		}
	}
	return ratings.Build(records)
}

func TestNewEngine(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default config", DefaultConfig(), false},
		{"zero threshold", Config{Threshold: 0}, false},
		{"negative threshold", Config{Threshold: -1}, true},
		{"negative workers", Config{Threshold: 2, Workers: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := NewEngine(tt.cfg, zerolog.Nop())
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("NewEngine() error = %v, want ErrInvalidConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEngine() error = %v", err)
			}
			if e.Config() != tt.cfg {
				t.Errorf("Config() = %+v, want %+v", e.Config(), tt.cfg)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Threshold != 6 {
		t.Errorf("Threshold = %d, want 6", cfg.Threshold)
	}
	if cfg.workerCount() < 1 {
		t.Errorf("workerCount() = %d, want >= 1", cfg.workerCount())
	}
}

func TestEngine_Run_AscendingOnePerUser(t *testing.T) {
	store := randomStore(11, 60, 30)
	e := newTestEngine(t, Config{Threshold: 3, Workers: 8})

	results, err := e.Run(context.Background(), store)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(results) != store.Len() {
		t.Fatalf("len(results) = %d, want %d", len(results), store.Len())
	}
	for i := 1; i < len(results); i++ {
		if results[i].UserID <= results[i-1].UserID {
			t.Fatalf("results not strictly ascending at %d: %d after %d", i, results[i].UserID, results[i-1].UserID)
		}
	}
}

func TestEngine_Run_MatchesSequential(t *testing.T) {
	store := randomStore(23, 80, 25)

	for _, workers := range []int{1, 2, 7, 32} {
		e := newTestEngine(t, Config{Threshold: 4, Workers: workers})
		results, err := e.Run(context.Background(), store)
		if err != nil {
			t.Fatalf("workers=%d: Run() error = %v", workers, err)
		}

		for i, id := range store.UserIDs() {
			want, err := BestMatch(store, id, 4)
			if err != nil {
				t.Fatalf("BestMatch(%d) error = %v", id, err)
			}
			got := results[i]
			if got.UserID != want.UserID || got.Found() != want.Found() {
				t.Fatalf("workers=%d user %d: got %+v, want %+v", workers, id, got, want)
			}
			if got.Found() && *got.Match != *want.Match {
				t.Fatalf("workers=%d user %d: got %+v, want %+v", workers, id, *got.Match, *want.Match)
			}
		}
	}
}

func TestEngine_Run_Stats(t *testing.T) {
	store := threeUsers()
	e := newTestEngine(t, Config{Threshold: 2, Workers: 2})

	if _, err := e.Run(context.Background(), store); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	stats := e.Stats()
	if stats.Users != 3 {
		t.Errorf("Users = %d, want 3", stats.Users)
	}
	if stats.Matched != 3 {
		t.Errorf("Matched = %d, want 3", stats.Matched)
	}
	if stats.Comparisons != 6 {
		t.Errorf("Comparisons = %d, want 6", stats.Comparisons)
	}

	// A second run starts from zero.
	if _, err := e.Run(context.Background(), store); err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if got := e.Stats().Users; got != 3 {
		t.Errorf("Users after second run = %d, want 3", got)
	}
}

func TestEngine_Run_HighThresholdNoMatches(t *testing.T) {
	e := newTestEngine(t, Config{Threshold: 100, Workers: 2})

	results, err := e.Run(context.Background(), threeUsers())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, r := range results {
		if r.Found() {
			t.Errorf("user %d matched %+v with threshold 100", r.UserID, r.Match)
		}
	}
	if e.Stats().Matched != 0 {
		t.Errorf("Matched = %d, want 0", e.Stats().Matched)
	}
}

func TestEngine_Run_EmptyStore(t *testing.T) {
	e := newTestEngine(t, DefaultConfig())

	results, err := e.Run(context.Background(), ratings.Build(nil))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestEngine_Run_Canceled(t *testing.T) {
	e := newTestEngine(t, Config{Threshold: 1, Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx, randomStore(5, 40, 10))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestEngine_Run_Checkpoint(t *testing.T) {
	store := threeUsers()
	cp := newMockCheckpoint()

	e := newTestEngine(t, Config{Threshold: 2, Workers: 2})
	e.SetCheckpoint(cp)

	first, err := e.Run(context.Background(), store)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := cp.saves.Load(); got != 3 {
		t.Errorf("saves = %d, want 3", got)
	}
	if e.Stats().CheckpointHits != 0 {
		t.Errorf("CheckpointHits = %d, want 0 on first run", e.Stats().CheckpointHits)
	}

	var calls atomic.Int64
	e.correlate = func(a, b *ratings.Profile) similarity.Correlation {
		calls.Add(1)
		return similarity.Correlate(a, b)
	}

	second, err := e.Run(context.Background(), store)
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if calls.Load() != 0 {
		t.Errorf("Correlate called %d times on a fully checkpointed run", calls.Load())
	}
	if e.Stats().CheckpointHits != 3 {
		t.Errorf("CheckpointHits = %d, want 3", e.Stats().CheckpointHits)
	}
	for i := range first {
		if first[i].UserID != second[i].UserID || *first[i].Match != *second[i].Match {
			t.Errorf("result %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEngine_Run_CheckpointErrors(t *testing.T) {
	boom := errors.New("disk on fire")

	tests := []struct {
		name string
		cp   *mockCheckpoint
	}{
		{"load failure", &mockCheckpoint{results: map[int]Result{}, loadErr: boom}},
		{"save failure", &mockCheckpoint{results: map[int]Result{}, saveErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t, Config{Threshold: 2, Workers: 1})
			e.SetCheckpoint(tt.cp)

			_, err := e.Run(context.Background(), threeUsers())
			if !errors.Is(err, boom) {
				t.Errorf("Run() error = %v, want %v", err, boom)
			}
		})
	}
}

func BenchmarkEngine_Run(b *testing.B) {
	store := randomStore(99, 300, 200)
	e, err := NewEngine(Config{Threshold: 6}, zerolog.Nop())
	if err != nil {
		b.Fatalf("NewEngine() error = %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Run(context.Background(), store); err != nil {
			b.Fatalf("Run() error = %v", err)
		}
	}
}
