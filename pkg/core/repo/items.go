// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// ItemsQueryer reads and writes storage items using one connection or
// transaction. It is the SQL counterpart of the Store operations.
type ItemsQueryer interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// Items is the storage items repository. It may be guided with a
// connection or a transaction in order to obtain an ItemsQueryer.
type Items interface {
	Conn(Conn) ItemsQueryer
	Tx(Tx) ItemsQueryer
}
