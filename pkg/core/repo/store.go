// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo contains the ports which the use cases layer expects
// the adapters layer to implement. Use cases only see these interfaces
// and never import a storage framework themselves.
package repo

import (
	"context"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Store is a client-local key/value storage. Values are opaque byte
// slices which are written and read as a whole, so a Set replaces any
// previous value of the same key atomically.
//
// Get reports a missing key by a false found flag and a nil error.
// Remove of a missing key is not an error either.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error

	// Close releases the storage resources. The Store may not be used
	// after calling Close.
	Close() error
}

// IDGenerator mints dispatch log entry ids. Successive calls must
// return distinct ids, even when they are made in quick succession.
type IDGenerator interface {
	NextID() model.EntryID
}
