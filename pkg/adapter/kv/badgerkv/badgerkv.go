// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package badgerkv provides a repo.Store which keeps its items in an
// embedded Badger database directory. Each operation runs in its own
// Badger transaction, so a Set replaces the whole value atomically.
package badgerkv

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// Store is a Badger backed repo.Store.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the Badger database in the dir directory.
// If dir is empty, the database is kept in memory and nothing is
// written to the disk.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(logger{}).
		WithLoggingLevel(badger.WARNING)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badger.Open(%q): %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Get returns a copy of the key item value.
func (s *Store) Get(_ context.Context, key string) (v []byte, found bool, err error) {
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		v, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, false, fmt.Errorf("view %q: %w", key, err)
	}
	return v, found, nil
}

// Set stores value as the key item.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes.Clone(value))
	})
	if err != nil {
		return fmt.Errorf("update %q: %w", key, err)
	}
	return nil
}

// Remove deletes the key item if it exists.
func (s *Store) Remove(_ context.Context, key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// Close flushes and closes the Badger database.
func (s *Store) Close() error {
	return s.db.Close()
}
