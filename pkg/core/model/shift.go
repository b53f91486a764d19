// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Shift specifies one of the three operational time windows of a day.
// Although this enum is numeric, it is (de)serialized as a string.
// The numeric order of valid values matches their display order, that
// is, the chronological order of shifts within one calendar day.
type Shift int

// Valid values for the Shift enum.
const (
	ShiftInvalid Shift = iota // zero value is invalid

	ShiftNightAfterMidnight  // from midnight until the morning
	ShiftDay                 // the day shift
	ShiftNightBeforeMidnight // from the evening until midnight
)

// ErrUnknownShift indicates that a given string is not a known shift.
var ErrUnknownShift = errors.New("unknown shift")

// ShiftError indicates an invalid numeric shift value.
type ShiftError int

// Error implements the error interface.
func (e ShiftError) Error() string {
	return fmt.Sprintf("invalid shift: %d", e)
}

// Shifts returns all valid shifts in their display order.
func Shifts() []Shift {
	return []Shift{
		ShiftNightAfterMidnight, ShiftDay, ShiftNightBeforeMidnight,
	}
}

// Validate returns nil if s is valid and a ShiftError otherwise.
func (s Shift) Validate() error {
	switch s {
	case ShiftNightAfterMidnight, ShiftDay, ShiftNightBeforeMidnight:
		return nil
	default:
		return ShiftError(s)
	}
}

// String returns the persisted name of s. Invalid shifts are rendered
// with their numeric value, so they may be logged safely.
func (s Shift) String() string {
	switch s {
	case ShiftNightAfterMidnight:
		return "Night Shift After Midnight"
	case ShiftDay:
		return "Day Shift"
	case ShiftNightBeforeMidnight:
		return "Night Shift - Before Midnight"
	default:
		return fmt.Sprintf("Shift(%d)", int(s))
	}
}

// Label returns the short name of s which is used by trend charts.
func (s Shift) Label() string {
	switch s {
	case ShiftNightAfterMidnight:
		return "Night After Midnight"
	case ShiftDay:
		return "Day Shift"
	case ShiftNightBeforeMidnight:
		return "Night Before Midnight"
	default:
		return s.String()
	}
}

// Index returns the zero-based display position of a valid shift,
// or -1 for invalid values.
func (s Shift) Index() int {
	if s.Validate() != nil {
		return -1
	}
	return int(s) - 1
}

// ParseShift parses the persisted name of a shift. Short labels are
// accepted too. For unknown strings, ShiftInvalid and ErrUnknownShift
// are returned.
func ParseShift(s string) (Shift, error) {
	for _, sh := range Shifts() {
		if s == sh.String() || s == sh.Label() {
			return sh, nil
		}
	}
	return ShiftInvalid, ErrUnknownShift
}

// MarshalText implements the encoding.TextMarshaler interface.
// The invalid zero value is encoded as an empty text, so old log
// entries with no recorded shift can be stored again.
func (s Shift) MarshalText() ([]byte, error) {
	if s == ShiftInvalid {
		return []byte{}, nil
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// An empty text is decoded as ShiftInvalid.
func (s *Shift) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*s = ShiftInvalid
		return nil
	}
	sh, err := ParseShift(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", err, text)
	}
	*s = sh
	return nil
}
