// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"fmt"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Report bundles all derived views of one date range. It is rendered
// by the CLI and the exporters.
type Report struct {
	Title         string        `json:"title"`
	Start         model.Date    `json:"start"`
	End           model.Date    `json:"end"`
	Summary       Summary       `json:"summary"`
	Series        TimeSeries    `json:"series"`
	Flow          FlowGraph     `json:"flow"`
	BySource      []Group       `json:"bySource"`
	ByDestination []Group       `json:"byDestination"`
	ByContractor  []Group       `json:"byContractor"`
	Hierarchy     Hierarchy     `json:"hierarchy"`
	Entries       []model.Entry `json:"entries"`
}

// BuildReport filters entries by the inclusive [start, end] range and
// derives the report views from the remaining entries.
func BuildReport(entries []model.Entry, start, end model.Date) Report {
	if end.Before(start) {
		start, end = end, start
	}
	in := Apply(entries, Between(start, end))
	r := Report{
		Start:         start,
		End:           end,
		Summary:       Summarize(in, start, end),
		Series:        Buckets(in, start, end),
		Flow:          Flow(in),
		BySource:      SortedGroups(GroupBy(in, BySource)),
		ByDestination: SortedGroups(GroupBy(in, ByDestination)),
		ByContractor:  SortedGroups(GroupBy(in, ByContractor)),
		Hierarchy:     BuildHierarchy(in),
		Entries:       in,
	}
	if start.Equal(end) {
		r.Title = fmt.Sprintf("Report for %s", start)
	} else {
		r.Title = fmt.Sprintf("Report from %s to %s", start, end)
	}
	return r
}
