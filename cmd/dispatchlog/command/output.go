// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/goccy/go-json"
	"github.com/momeni/dispatchlog/pkg/adapter/export"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/spf13/cobra"
)

// table writes tab-aligned rows.
type table struct {
	tw *tabwriter.Writer
}

func (t *table) row(cells ...any) {
	s := make([]string, len(cells))
	for i, c := range cells {
		s[i] = export.FormatCell(c)
	}
	fmt.Fprintln(t.tw, strings.Join(s, "\t"))
}

// render prints v as indented JSON if --json is given, otherwise, it
// lets f fill a tab-aligned table.
func (a *app) render(cmd *cobra.Command, v any, f func(t *table)) error {
	w := cmd.OutOrStdout()
	if a.jsonOut {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	t := &table{tw: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
	f(t)
	return t.tw.Flush()
}

func summaryRows(t *table, s query.Summary) {
	t.row("Total trips", s.TotalEntries)
	t.row("Total capacity", s.TotalCapacity)
	t.row("Active contractors", s.ActiveContractors)
	t.row("Average trips per day", s.AveragePerDay)
}
