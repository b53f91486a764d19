// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Default overwrites the (*t) pointer, if it is nil, so it points to
// a newly allocated copy of the def value. A non-nil (*t) is kept.
func Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}

// OverwriteNil overwrites the (*dst) pointer, which should be nil,
// in order to point to a newly allocated copy of the (*src) value.
// If the (*dst) pointer was not nil or if the src was nil, this
// function will perform no action.
func OverwriteNil[T any](dst **T, src *T) {
	if (*dst) != nil || src == nil {
		return
	}
	t := *src
	(*dst) = &t
}

// Clone returns a pointer to a newly allocated copy of (*t), or nil
// if t is nil.
func Clone[T any](t *T) *T {
	if t == nil {
		return nil
	}
	tt := *t
	return &tt
}
