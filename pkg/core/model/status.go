// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Status is the verification state of a dispatch log entry.
// It is (de)serialized as a string.
type Status int

// Valid values for the Status enum.
const (
	StatusInvalid Status = iota // zero value is invalid

	StatusDispatched // initial status of every new entry
	StatusVerified   // the delivery was confirmed at destination
)

// ErrUnknownStatus indicates that a given string is not a known status.
var ErrUnknownStatus = errors.New("unknown status")

// StatusError indicates an invalid numeric status value.
type StatusError int

// Error implements the error interface.
func (e StatusError) Error() string {
	return fmt.Sprintf("invalid status: %d", e)
}

// Statuses returns all valid statuses, starting with the initial one.
func Statuses() []Status {
	return []Status{StatusDispatched, StatusVerified}
}

// Validate returns nil if s is valid and a StatusError otherwise.
func (s Status) Validate() error {
	switch s {
	case StatusDispatched, StatusVerified:
		return nil
	default:
		return StatusError(s)
	}
}

// Toggle returns the other status. Invalid values become the
// initial status.
func (s Status) Toggle() Status {
	if s == StatusDispatched {
		return StatusVerified
	}
	return StatusDispatched
}

func (s Status) String() string {
	switch s {
	case StatusDispatched:
		return "Dispatched"
	case StatusVerified:
		return "Verified"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus parses a status name. For unknown strings,
// StatusInvalid and ErrUnknownStatus are returned.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "Dispatched":
		return StatusDispatched, nil
	case "Verified":
		return StatusVerified, nil
	default:
		return StatusInvalid, ErrUnknownStatus
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
func (s *Status) UnmarshalText(text []byte) error {
	st, err := ParseStatus(string(text))
	if err != nil {
		return fmt.Errorf("%w: %q", err, text)
	}
	*s = st
	return nil
}
