// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package itemsrp implements the storage items repository over the
// SQLite adapter. Each item is one row of the storage_items table
// which is keyed by the item name.
package itemsrp

import (
	"context"

	"github.com/momeni/dispatchlog/pkg/adapter/db/sqlite"
	"github.com/momeni/dispatchlog/pkg/core/repo"
)

// Repo implements the repo.Items interface.
type Repo struct {
}

// New instantiates an items repository.
func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*sqlite.Conn
}

// Conn takes a repo.Conn and returns an ItemsQueryer which runs its
// statements on that connection.
func (items *Repo) Conn(c repo.Conn) repo.ItemsQueryer {
	cc := c.(*sqlite.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return Get(ctx, cq.Conn, key)
}

func (cq connQueryer) Set(ctx context.Context, key string, value []byte) error {
	return Set(ctx, cq.Conn, key, value)
}

func (cq connQueryer) Remove(ctx context.Context, key string) error {
	return Remove(ctx, cq.Conn, key)
}

type txQueryer struct {
	*sqlite.Tx
}

// Tx takes a repo.Tx and returns an ItemsQueryer which runs its
// statements within that transaction.
func (items *Repo) Tx(tx repo.Tx) repo.ItemsQueryer {
	tt := tx.(*sqlite.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return Get(ctx, tq.Tx, key)
}

func (tq txQueryer) Set(ctx context.Context, key string, value []byte) error {
	return Set(ctx, tq.Tx, key, value)
}

func (tq txQueryer) Remove(ctx context.Context, key string) error {
	return Remove(ctx, tq.Tx, key)
}
