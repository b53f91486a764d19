// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
	"slices"
)

// OutOfRangeError indicates that a Value was out of its acceptable
// range, either less than its minimum valid value or greater than its
// maximum valid value.
type OutOfRangeError[T cmp.Ordered] struct {
	Value       T
	Min, Max    T
	LessThanMin bool // true if and only if min boundary is violated
}

// Error implements error interface and returns a string reporting that
// minimum or maximum boundary value was not respected.
func (e *OutOfRangeError[T]) Error() string {
	if e.LessThanMin {
		return fmt.Sprintf("%v is less than %v", e.Value, e.Min)
	}
	return fmt.Sprintf("%v is greater than %v", e.Value, e.Max)
}

// VerifyRange ensures that the given value is either nil or is within
// the inclusive [minb, maxb] range.
func VerifyRange[T cmp.Ordered](value *T, minb, maxb T) error {
	switch {
	case value == nil:
		return nil
	case *value < minb:
		return &OutOfRangeError[T]{
			Value: *value, Min: minb, Max: maxb, LessThanMin: true,
		}
	case *value > maxb:
		return &OutOfRangeError[T]{Value: *value, Min: minb, Max: maxb}
	}
	return nil
}

// UnsupportedValueError indicates that a Value was not one of the
// Supported values.
type UnsupportedValueError[T comparable] struct {
	Value     T
	Supported []T
}

// Error implements error interface.
func (e *UnsupportedValueError[T]) Error() string {
	return fmt.Sprintf("unsupported %v (expected one of %v)",
		e.Value, e.Supported,
	)
}

// VerifyOneOf ensures that the given value is either nil or is one of
// the supported values.
func VerifyOneOf[T comparable](value *T, supported ...T) error {
	if value == nil || slices.Contains(supported, *value) {
		return nil
	}
	return &UnsupportedValueError[T]{Value: *value, Supported: supported}
}
