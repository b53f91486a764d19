// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr provides the categorized errors of the core layer.
// Use cases wrap their errors with one of the constructor functions of
// this package, so the outer layers (e.g., the CLI) can decide how an
// error should be reported without knowing about its origin.
// Errors without a category are considered as internal errors.
package cerr

import (
	"errors"
	"fmt"
)

// Kind categorizes an Error.
type Kind int

// Valid values for the Kind enum.
const (
	KindInternal Kind = iota // uncategorized errors

	KindValidation // invalid arguments, nothing was changed
	KindConflict   // an item with the same key already exists
	KindNotFound   // the referenced item does not exist
	KindStorage    // the persistent storage failed
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not-found"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Error wraps Err and attaches a Kind to it.
type Error struct {
	Err  error
	Kind Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Kind, e.Err.Error())
}

func Validation(err error) *Error {
	return &Error{Err: err, Kind: KindValidation}
}

func Conflict(err error) *Error {
	return &Error{Err: err, Kind: KindConflict}
}

func NotFound(err error) *Error {
	return &Error{Err: err, Kind: KindNotFound}
}

func Storage(err error) *Error {
	return &Error{Err: err, Kind: KindStorage}
}

// KindOf returns the Kind of the outermost *Error in the err chain.
// Errors which are not wrapped by this package are reported as
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// ExitCode maps err to a process exit code. A nil err gives zero.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindValidation:
		return 2
	case KindConflict:
		return 3
	case KindNotFound:
		return 4
	case KindStorage:
		return 5
	default:
		return 1
	}
}
