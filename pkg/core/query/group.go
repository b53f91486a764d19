// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Dimension names one column of the dispatch log which entries may be
// grouped by.
type Dimension string

// Supported dimensions.
const (
	ByContractor  Dimension = "contractor"
	BySource      Dimension = "source"
	ByDestination Dimension = "destination"
	ByShift       Dimension = "shift"
	ByLicense     Dimension = "license"
	ByStatus      Dimension = "status"
	ByDate        Dimension = "date"
)

// ErrUnknownDimension indicates that a string is not a known dimension.
var ErrUnknownDimension = errors.New("unknown dimension")

// Dimensions returns all supported dimensions.
func Dimensions() []Dimension {
	return []Dimension{
		ByContractor, BySource, ByDestination, ByShift,
		ByLicense, ByStatus, ByDate,
	}
}

// ParseDimension parses s case-insensitively.
func ParseDimension(s string) (Dimension, error) {
	d := Dimension(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Dimensions(), d) {
		return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
	}
	return d, nil
}

// Key returns the value of the d column of e.
func (d Dimension) Key(e model.Entry) string {
	switch d {
	case ByContractor:
		return e.Contractor
	case BySource:
		return e.Source
	case ByDestination:
		return e.Destination
	case ByShift:
		return e.Shift.String()
	case ByLicense:
		return e.License
	case ByStatus:
		return e.Status.String()
	case ByDate:
		return e.Date.String()
	default:
		return ""
	}
}

// Totals accumulates the number of entries and their total capacity.
type Totals struct {
	Count    int     `json:"count"`
	Capacity float64 `json:"capacity"`
}

// Add accumulates e into t.
func (t *Totals) Add(e model.Entry) {
	t.Count++
	t.Capacity += float64(e.Capacity)
}

// Group is one named group of a GroupBy result.
type Group struct {
	Key string `json:"key"`
	Totals
}

// GroupBy partitions entries by the d dimension. The result maps each
// distinct value to the totals of its entries, so the sum of counts
// (and capacities) equals the count (and capacity) of entries.
func GroupBy(entries []model.Entry, d Dimension) map[string]Totals {
	m := make(map[string]Totals)
	for _, e := range entries {
		k := d.Key(e)
		t := m[k]
		t.Add(e)
		m[k] = t
	}
	return m
}

// SortedGroups lists groups by their descending counts. Ties are
// ordered by their keys.
func SortedGroups(groups map[string]Totals) []Group {
	res := make([]Group, 0, len(groups))
	for k, t := range groups {
		res = append(res, Group{Key: k, Totals: t})
	}
	slices.SortFunc(res, func(a, b Group) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Key, b.Key)
	})
	return res
}
