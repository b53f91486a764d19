// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import "github.com/momeni/dispatchlog/pkg/core/model"

// Granularity tells how a TimeSeries is bucketed.
type Granularity string

// Supported granularities.
const (
	PerShift Granularity = "shift"
	PerDay   Granularity = "day"
)

// Bucket is one labeled point of a TimeSeries.
type Bucket struct {
	Label string `json:"label"`
	Totals
}

// TimeSeries is the input of the trend charts.
type TimeSeries struct {
	Granularity Granularity `json:"granularity"`
	Buckets     []Bucket    `json:"buckets"`
}

// Buckets aggregates entries of the inclusive [start, end] range over
// time. A single-day range produces three shift buckets in their
// display order. Longer ranges produce one bucket per calendar day
// (labeled as DD/MM), including the days with no entries.
// Entries out of the range are ignored and reversed bounds are
// swapped. A zero bound is replaced by the earliest (or latest) date
// of entries, and with no bounds and no entries, the series is empty.
func Buckets(entries []model.Entry, start, end model.Date) TimeSeries {
	start, end = bounds(entries, start, end)
	if end.Before(start) {
		start, end = end, start
	}
	if start.IsZero() {
		return TimeSeries{Granularity: PerDay, Buckets: []Bucket{}}
	}
	inRange := Apply(entries, Between(start, end))
	if start.Equal(end) {
		shifts := model.Shifts()
		ts := TimeSeries{
			Granularity: PerShift,
			Buckets:     make([]Bucket, len(shifts)),
		}
		for i, sh := range shifts {
			ts.Buckets[i].Label = sh.Label()
		}
		for _, e := range inRange {
			if i := e.Shift.Index(); i >= 0 {
				ts.Buckets[i].Add(e)
			}
		}
		return ts
	}
	n := start.DaysUntil(end) + 1
	ts := TimeSeries{Granularity: PerDay, Buckets: make([]Bucket, n)}
	for i := range ts.Buckets {
		ts.Buckets[i].Label = start.AddDays(i).Short()
	}
	for _, e := range inRange {
		ts.Buckets[start.DaysUntil(e.Date)].Add(e)
	}
	return ts
}

// bounds replaces zero start and end dates with the earliest and
// latest dates of entries respectively.
func bounds(entries []model.Entry, start, end model.Date) (s, e model.Date) {
	s, e = start, end
	for _, en := range entries {
		if en.Date.IsZero() {
			continue
		}
		if start.IsZero() && (s.IsZero() || en.Date.Before(s)) {
			s = en.Date
		}
		if end.IsZero() && (e.IsZero() || en.Date.After(e)) {
			e = en.Date
		}
	}
	if s.IsZero() {
		s = e
	}
	if e.IsZero() {
		e = s
	}
	return s, e
}
