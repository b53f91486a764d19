// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package itemsrp

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/momeni/dispatchlog/pkg/adapter/db/sqlite"
	"github.com/momeni/dispatchlog/pkg/core/repo"
)

// FileName is the database file name which Open creates in its
// directory.
const FileName = "dispatchlog.db"

// Store adapts a Pool and an items repository to the repo.Store
// interface. Writes run in their own transactions.
type Store struct {
	pool  repo.Pool
	items repo.Items
}

// Open opens the SQLite database file in the dir directory, creates
// its storage items table if needed, and returns a Store over it.
func Open(ctx context.Context, dir string, slow time.Duration) (*Store, error) {
	p, err := sqlite.NewPool(ctx, filepath.Join(dir, FileName), slow)
	if err != nil {
		return nil, err
	}
	err = p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return Migrate(ctx, c.(*sqlite.Conn))
	})
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}
	return NewStore(p, New()), nil
}

// NewStore instantiates a Store using the p pool and items repository.
func NewStore(p repo.Pool, items repo.Items) *Store {
	return &Store{pool: p, items: items}
}

// Get returns the value of the key item and whether it exists.
func (s *Store) Get(ctx context.Context, key string) (v []byte, found bool, err error) {
	err = s.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		v, found, err = s.items.Conn(c).Get(ctx, key)
		return err
	})
	return v, found, err
}

// Set stores value as the key item.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	return s.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return s.items.Tx(tx).Set(ctx, key, value)
		})
	})
}

// Remove deletes the key item if it exists.
func (s *Store) Remove(ctx context.Context, key string) error {
	return s.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			return s.items.Tx(tx).Remove(ctx, key)
		})
	})
}

// Close closes the database pool.
func (s *Store) Close() error {
	return s.pool.Close()
}
