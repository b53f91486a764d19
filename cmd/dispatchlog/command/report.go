// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/momeni/dispatchlog/pkg/adapter/export"
	"github.com/momeni/dispatchlog/pkg/adapter/export/excel"
	"github.com/momeni/dispatchlog/pkg/adapter/export/pdf"
	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/spf13/cobra"
)

// rangeCmd creates a report command which runs f with the entries of
// its --from/--to range.
func (a *app) rangeCmd(
	use, short string, args cobra.PositionalArgs,
	f func(cmd *cobra.Command, args []string, in []model.Entry, start, end model.Date) error,
) *cobra.Command {
	var rng dateRange
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := rng.resolve(a.today())
			if err != nil {
				return err
			}
			in := query.Apply(a.uc.Entries(), query.Between(start, end))
			return f(cmd, args, in, start, end)
		},
	}
	rng.register(cmd)
	return cmd
}

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Aggregate the dispatch log of a date range",
	}
	dims := make([]string, 0, len(query.Dimensions()))
	for _, d := range query.Dimensions() {
		dims = append(dims, string(d))
	}
	cmd.AddCommand(
		a.rangeCmd("summary", "Print the summary metrics", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string, in []model.Entry, start, end model.Date) error {
				s := query.Summarize(in, start, end)
				return a.render(cmd, s, func(t *table) {
					summaryRows(t, s)
				})
			}),
		a.rangeCmd(
			"group DIMENSION",
			"Group the entries by one of "+strings.Join(dims, ", "),
			cobra.ExactArgs(1),
			func(cmd *cobra.Command, args []string, in []model.Entry, _, _ model.Date) error {
				d, err := query.ParseDimension(args[0])
				if err != nil {
					return cerr.Validation(err)
				}
				groups := query.SortedGroups(query.GroupBy(in, d))
				return a.render(cmd, groups, func(t *table) {
					t.row(strings.ToUpper(string(d)), "TRIPS", "CAPACITY")
					for _, g := range groups {
						t.row(g.Key, g.Count, g.Capacity)
					}
				})
			}),
		a.rangeCmd("flow", "Print the contractor, source, and destination flows", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string, in []model.Entry, _, _ model.Date) error {
				g := query.Flow(in)
				return a.render(cmd, g, func(t *table) {
					t.row("FROM", "TO", "TRIPS")
					for _, l := range g.Links {
						t.row(g.Nodes[l.Source].Name, g.Nodes[l.Target].Name, l.Value)
					}
				})
			}),
		a.rangeCmd("trend", "Print the trips per shift or per day", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string, in []model.Entry, start, end model.Date) error {
				s := query.Buckets(in, start, end)
				return a.render(cmd, s, func(t *table) {
					t.row(strings.ToUpper(string(s.Granularity)), "TRIPS", "CAPACITY")
					for _, b := range s.Buckets {
						t.row(b.Label, b.Count, b.Capacity)
					}
				})
			}),
		a.rangeCmd("hierarchy", "Print the detailed summary table", cobra.NoArgs,
			func(cmd *cobra.Command, _ []string, in []model.Entry, _, _ model.Date) error {
				h := query.BuildHierarchy(in)
				return a.render(cmd, h, func(t *table) {
					t.row("CONTRACTOR", "SOURCE", "DESTINATION", "TRUCKS", "CAPACITY")
					for _, r := range h.Rows() {
						t.row(r.Contractor, r.Source, r.Destination, r.Count, r.Capacity)
					}
					t.row("Total", "", "", h.Count, h.Capacity)
				})
			}),
		a.rangeCmd("truck LICENSE", "Print the history of one truck", cobra.ExactArgs(1),
			func(cmd *cobra.Command, args []string, in []model.Entry, start, end model.Date) error {
				r := query.TruckHistory(in, args[0], start, end)
				return a.render(cmd, r, func(t *table) {
					t.row("History for truck", r.License)
					t.row("Total trips", r.Count)
					t.row("Total capacity", r.Capacity)
					t.row()
					t.row("DATE", "SHIFT", "CONTRACTOR", "SOURCE", "DESTINATION", "CAPACITY", "STATUS")
					for _, e := range r.Entries {
						t.row(e.Date, e.Shift.Label(), e.Contractor, e.Source,
							e.Destination, float64(e.Capacity), e.Status)
					}
				})
			}),
		newExportCmd(a),
	)
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := a.rangeCmd("export", "Export the report as an Excel or PDF file", cobra.NoArgs,
		func(cmd *cobra.Command, _ []string, _ []model.Entry, start, end model.Date) error {
			var write func(io.Writer, query.Report) error
			switch format {
			case "xlsx":
				write = excel.Write
			case "pdf":
				write = pdf.Write
			default:
				return cerr.Validation(fmt.Errorf(
					"unsupported format %q (expected xlsx or pdf)", format,
				))
			}
			r := query.BuildReport(a.uc.Entries(), start, end)
			if output == "" {
				output = export.FileName(r, format)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %q: %w", output, err)
			}
			if err = write(f, r); err != nil {
				f.Close()
				return err
			}
			if err = f.Close(); err != nil {
				return fmt.Errorf("closing %q: %w", output, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		})
	cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "xlsx or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")
	return cmd
}
