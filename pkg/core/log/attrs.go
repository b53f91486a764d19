// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Valuer returns an Attr for the given slog.LogValuer value.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// EntryID returns an "entry" Attr for a dispatch log entry id.
func EntryID(id model.EntryID) slog.Attr {
	return slog.Int64("entry", int64(id))
}

// Contractor returns a "contractor" Attr.
func Contractor(name string) slog.Attr {
	return slog.String("contractor", name)
}

// StorageKey returns a "key" Attr naming a storage item.
func StorageKey(key string) slog.Attr {
	return slog.String("key", key)
}

// Count returns an Attr for the given number of items.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
