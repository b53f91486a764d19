// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package export lays out a query.Report as a series of named tables,
// so the excel and pdf sub-packages can render the same contents.
// Cells hold string, int, or float64 values.
package export

import (
	"fmt"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/query"
)

// Table is one titled table of a report export.
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
	Footer []any // optional totals row
}

// FormatCell returns the text representation of a table cell.
// Capacities are written with two decimals.
func FormatCell(v any) string {
	switch v := v.(type) {
	case float64:
		return fmt.Sprintf("%.2f", v)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// FileName returns a file name for the r report with the ext
// extension, replacing the title spaces and slashes.
func FileName(r query.Report, ext string) string {
	name := strings.NewReplacer(" ", "_", "/", "-").Replace(r.Title)
	return name + "." + ext
}

// Metrics returns the summary metrics of r.
func Metrics(r query.Report) Table {
	s := r.Summary
	return Table{
		Name:   "Metrics",
		Header: []string{"Metric", "Value"},
		Rows: [][]any{
			{"Total Trips", s.TotalEntries},
			{"Total Capacity (m³)", s.TotalCapacity},
			{"Active Contractors", s.ActiveContractors},
			{"Average Trips per Day", s.AveragePerDay},
		},
	}
}

// Summary returns the contractor, source, and destination detailed
// summary table of r.
func Summary(r query.Report) Table {
	t := Table{
		Name: "Summary",
		Header: []string{
			"Contractor", "Source", "Destination",
			"Trucks", "Total Capacity (m³)",
		},
	}
	for _, row := range r.Hierarchy.Rows() {
		t.Rows = append(t.Rows, []any{
			row.Contractor, row.Source, row.Destination,
			row.Count, row.Capacity,
		})
	}
	h := r.Hierarchy.Totals
	t.Footer = []any{"Total", "", "", h.Count, h.Capacity}
	return t
}

// Breakdowns returns the per source, destination, and contractor
// tables of r.
func Breakdowns(r query.Report) []Table {
	return []Table{
		groups("By Source", "Source", r.BySource),
		groups("By Destination", "Destination", r.ByDestination),
		groups("By Contractor", "Contractor", r.ByContractor),
	}
}

func groups(name, key string, gs []query.Group) Table {
	t := Table{Name: name, Header: []string{key, "Trips", "Capacity (m³)"}}
	var total query.Totals
	for _, g := range gs {
		t.Rows = append(t.Rows, []any{g.Key, g.Count, g.Capacity})
		total.Count += g.Count
		total.Capacity += g.Capacity
	}
	t.Footer = []any{"Total", total.Count, total.Capacity}
	return t
}

// Trend returns the time series table of r.
func Trend(r query.Report) Table {
	label := "Day"
	if r.Series.Granularity == query.PerShift {
		label = "Shift"
	}
	t := Table{Name: "Trend", Header: []string{label, "Trips", "Capacity (m³)"}}
	for _, b := range r.Series.Buckets {
		t.Rows = append(t.Rows, []any{b.Label, b.Count, b.Capacity})
	}
	return t
}

// Log returns the dispatch entries table of r.
func Log(r query.Report) Table {
	t := Table{
		Name: "Log",
		Header: []string{
			"Date", "Shift", "Contractor", "License",
			"Source", "Destination", "Capacity (m³)", "Status",
		},
	}
	for _, e := range r.Entries {
		t.Rows = append(t.Rows, []any{
			e.Date.String(), e.Shift.Label(), e.Contractor, e.License,
			e.Source, e.Destination, float64(e.Capacity), e.Status.String(),
		})
	}
	return t
}
