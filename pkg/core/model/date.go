// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// These layouts describe the day-first textual form of a Date.
// Dates are always written with the padded layout, while both padded
// and unpadded day and month components are accepted when parsing.
const (
	DateLayout      = "02/01/2006"
	dateParseLayout = "2/1/2006"
)

// ErrMalformedDate indicates that a string could not be parsed as
// a DD/MM/YYYY date. The offending string is known by the caller.
var ErrMalformedDate = errors.New("malformed DD/MM/YYYY date")

// Date is a calendar day with no time-of-day component. Its zero value
// represents a missing date and sorts before all other dates.
// Dates are kept in UTC so arithmetic on them never crosses a daylight
// saving transition.
type Date struct {
	t time.Time
}

// NewDate returns the Date of the given year, month, and day. Values
// out of their normal ranges are normalized like time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t as observed in its location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// Today returns the current calendar day in the local time zone.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses s which must follow the DD/MM/YYYY format.
// Surrounding spaces are ignored. An empty string is rejected too.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateParseLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return Date{t: t}, nil
}

// IsZero reports whether d is the zero (missing) date.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the midnight of d in UTC.
func (d Date) Time() time.Time {
	return d.t
}

// AddDays returns d shifted by n days (n may be negative).
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil returns the number of whole days from d to end.
// The result is negative if end comes before d.
func (d Date) DaysUntil(end Date) int {
	return int(end.t.Sub(d.t).Hours() / 24)
}

// Before reports whether d comes strictly before other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d comes strictly after other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// Equal reports whether d and other denote the same day.
func (d Date) Equal(other Date) bool {
	return d.t.Equal(other.t)
}

// String formats d as DD/MM/YYYY. The zero date is formatted as an
// empty string.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Short formats d as DD/MM which is used for chart axis labels.
func (d Date) Short() string {
	return d.t.Format("02/01")
}

// MarshalText implements the encoding.TextMarshaler interface, so
// dates are persisted with their day-first textual form in JSON and
// YAML documents.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface.
// An empty text leaves the zero date in d.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	dd, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = dd
	return nil
}
