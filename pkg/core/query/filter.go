// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package query provides the pure aggregation functions over a
// snapshot of the dispatch log. Functions of this package have no side
// effects and never access the storage. They accept any slice of
// entries (an empty slice is valid) and return freshly allocated
// results, so callers may keep or modify them freely.
package query

import (
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Filter enumerates the optional predicates of a log query.
// Zero-valued fields match everything and all non-zero fields are
// ANDed together. Start and End are inclusive day bounds.
// Search is matched case-insensitively as a substring of the textual
// columns of an entry (date, contractor, license, source, destination,
// shift, and status).
type Filter struct {
	Start       *model.Date
	End         *model.Date
	Contractor  string
	License     string
	Shift       model.Shift
	Source      string
	Destination string
	Status      model.Status
	Search      string
}

// Between returns a Filter which only restricts the date range.
func Between(start, end model.Date) Filter {
	return Filter{Start: &start, End: &end}
}

// LastDays returns the inclusive range which ends at today and starts
// n days before it, e.g., LastDays(today, 30) spans 31 calendar days.
func LastDays(today model.Date, n int) (start, end model.Date) {
	return today.AddDays(-n), today
}

// Match reports whether e satisfies all predicates of f.
func (f Filter) Match(e model.Entry) bool {
	switch {
	case f.Start != nil && e.Date.Before(*f.Start):
		return false
	case f.End != nil && e.Date.After(*f.End):
		return false
	case f.Contractor != "" && e.Contractor != f.Contractor:
		return false
	case f.License != "" && e.License != f.License:
		return false
	case f.Shift != model.ShiftInvalid && e.Shift != f.Shift:
		return false
	case f.Source != "" && e.Source != f.Source:
		return false
	case f.Destination != "" && e.Destination != f.Destination:
		return false
	case f.Status != model.StatusInvalid && e.Status != f.Status:
		return false
	}
	if f.Search == "" {
		return true
	}
	s := strings.ToLower(f.Search)
	for _, col := range [...]string{
		e.Date.String(), e.Contractor, e.License, e.Source,
		e.Destination, e.Shift.String(), e.Status.String(),
	} {
		if strings.Contains(strings.ToLower(col), s) {
			return true
		}
	}
	return false
}

// Apply returns the subsequence of entries which match f, keeping
// their relative order.
func Apply(entries []model.Entry, f Filter) []model.Entry {
	res := make([]model.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Match(e) {
			res = append(res, e)
		}
	}
	return res
}
