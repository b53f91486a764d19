// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"slices"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// TruckReport lists the trips of one truck.
type TruckReport struct {
	License string        `json:"license"`
	Entries []model.Entry `json:"entries"`
	Totals
}

// TruckHistory returns the trips of the license truck within the
// inclusive [start, end] range, newest first. Entries of the same day
// keep their log order.
func TruckHistory(
	entries []model.Entry, license string, start, end model.Date,
) TruckReport {
	f := Between(start, end)
	f.License = license
	r := TruckReport{License: license, Entries: Apply(entries, f)}
	slices.SortStableFunc(r.Entries, func(a, b model.Entry) int {
		return b.Date.Time().Compare(a.Date.Time())
	})
	for _, e := range r.Entries {
		r.Add(e)
	}
	return r
}
