// Peercorr - Nearest-Peer Correlation for Rating Datasets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/peercorr

package checkpoint

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/peercorr/internal/logging"
	"github.com/tomtom215/peercorr/internal/match"
)

// Config holds BadgerDB options for the checkpoint store.
type Config struct {
	// Path is the BadgerDB directory.
	Path string

	// SyncWrites fsyncs every write. Slower, but nothing is lost on a crash.
	SyncWrites bool
}

// BadgerStore implements Store on BadgerDB.
type BadgerStore struct {
	db *badger.DB
}

// Open opens (or creates) a BadgerDB checkpoint store.
func Open(cfg Config) (*BadgerStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("checkpoint path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	opts.SyncWrites = cfg.SyncWrites

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Debug().
		Str("path", cfg.Path).
		Bool("sync_writes", cfg.SyncWrites).
		Msg("checkpoint store opened")

	return &BadgerStore{db: db}, nil
}

// Get returns the stored result for (key, userID).
func (b *BadgerStore) Get(ctx context.Context, key Key, userID int) (match.Result, bool, error) {
	if err := ctx.Err(); err != nil {
		return match.Result{}, false, err
	}

	var r match.Result
	found := false

	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key.userKey(userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})
	if err != nil {
		return match.Result{}, false, fmt.Errorf("load result for user %d: %w", userID, err)
	}

	return r, found, nil
}

// Put stores r under key.
func (b *BadgerStore) Put(ctx context.Context, key Key, r match.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key.userKey(r.UserID), data)
	})
}

// Clear removes every result stored under key.
func (b *BadgerStore) Clear(ctx context.Context, key Key) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.db.DropPrefix([]byte(key.prefix()))
}

// Count returns the number of results stored under key.
func (b *BadgerStore) Count(ctx context.Context, key Key) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	n := 0
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := []byte(key.prefix())
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
