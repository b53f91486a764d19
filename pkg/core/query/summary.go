// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"math"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Summary holds the headline metrics of a dashboard or report.
type Summary struct {
	TotalEntries      int     `json:"totalEntries"`
	TotalCapacity     float64 `json:"totalCapacity"`
	ActiveContractors int     `json:"activeContractors"`
	AveragePerDay     float64 `json:"averagePerDay"`
}

// Summarize computes the metrics of entries which are expected to be
// filtered by the [start, end] range already. The average number of
// entries per day divides by the number of whole days between start
// and end (at least one, so a same-day range divides by one) and is
// rounded to one decimal digit.
func Summarize(entries []model.Entry, start, end model.Date) Summary {
	s := Summary{TotalEntries: len(entries)}
	contractors := make(map[string]struct{})
	for _, e := range entries {
		s.TotalCapacity += float64(e.Capacity)
		contractors[e.Contractor] = struct{}{}
	}
	s.ActiveContractors = len(contractors)
	days := start.DaysUntil(end)
	if days < 0 {
		days = -days
	}
	days = max(1, days)
	s.AveragePerDay = round1(float64(s.TotalEntries) / float64(days))
	return s
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
