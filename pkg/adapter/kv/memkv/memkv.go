// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memkv provides a volatile repo.Store which keeps its items
// in a map. It backs the "memory" storage backend, which is useful for
// demonstrations and tests, since nothing is kept after Close.
package memkv

import (
	"context"
	"errors"
	"slices"
	"sync"
)

// ErrClosed is returned by the operations of a closed Store.
var ErrClosed = errors.New("store is closed")

// Store is an in-memory repo.Store. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	items  map[string][]byte
	closed bool
}

// New instantiates an empty Store.
func New() *Store {
	return &Store{items: make(map[string][]byte)}
}

// Get returns a copy of the key item.
func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.items[key]
	if !ok {
		return nil, false, nil
	}
	return slices.Clone(v), true, nil
}

// Set stores a copy of value as the key item.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.items[key] = slices.Clone(value)
	return nil
}

// Remove deletes the key item if it exists.
func (s *Store) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	delete(s.items, key)
	return nil
}

// Close drops all items.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.items = nil
	return nil
}
