// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"errors"
	"fmt"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/spf13/cobra"
)

// entryFlags holds the dispatch form fields.
type entryFlags struct {
	date, contractor, license, source, destination, shift, status string
	capacity                                                     float64
}

func (f *entryFlags) register(cmd *cobra.Command, withStatus bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.date, "date", "", "dispatch date (DD/MM/YYYY)")
	fs.StringVar(&f.contractor, "contractor", "", "contractor name")
	fs.StringVar(&f.license, "truck", "", "truck license")
	fs.StringVar(&f.source, "source", "", "source location")
	fs.StringVar(&f.destination, "destination", "", "destination")
	fs.StringVar(&f.shift, "shift", "", "day, night-before, or night-after")
	fs.Float64Var(&f.capacity, "capacity", 0, "capacity in m³")
	if withStatus {
		fs.StringVar(&f.status, "status", "", "Dispatched or Verified")
	}
}

func newEntryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "entry",
		Aliases: []string{"entries", "log"},
		Short:   "Record and manage the dispatch log entries",
	}
	cmd.AddCommand(
		newEntryAddCmd(a),
		newEntryListCmd(a),
		newEntryEditCmd(a),
		&cobra.Command{
			Use:   "status ID STATUS",
			Short: "Set the status of an entry",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				st, err := parseStatus(args[1])
				if err != nil {
					return err
				}
				found, err := a.uc.UpdateEntryStatus(cmd.Context(), id, st)
				return entryResult(found, err, args[0])
			},
		},
		&cobra.Command{
			Use:   "toggle ID",
			Short: "Switch an entry between Dispatched and Verified",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				found, err := a.uc.ToggleEntryStatus(cmd.Context(), id)
				return entryResult(found, err, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete ID",
			Short: "Delete an entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				found, err := a.uc.DeleteLogEntry(cmd.Context(), id)
				return entryResult(found, err, args[0])
			},
		},
	)
	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all entries of the dispatch log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if n := len(a.uc.Entries()); n > 0 && !yes {
				return cerr.Validation(fmt.Errorf(
					"clearing removes %d log entries: %w", n, errConfirm,
				))
			}
			return a.uc.ClearLog(cmd.Context())
		},
	}
	clearCmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	cmd.AddCommand(clearCmd)
	return cmd
}

func entryResult(found bool, err error, id string) error {
	if err == nil && !found {
		err = notFound("entry", id)
	}
	return err
}

func newEntryAddCmd(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a truck dispatch",
		Long: `Record a truck dispatch. The date defaults to today and the capacity
defaults to the capacity of the truck record.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ne := model.NewEntry{
				Date:        a.today(),
				Contractor:  f.contractor,
				License:     f.license,
				Capacity:    capacityFlag(cmd, f.capacity),
				Source:      f.source,
				Destination: f.destination,
			}
			var err error
			if f.date != "" {
				if ne.Date, err = parseDate(f.date); err != nil {
					return err
				}
			}
			if f.shift != "" {
				if ne.Shift, err = parseShift(f.shift); err != nil {
					return err
				}
			}
			e, err := a.uc.AddDispatchEntry(cmd.Context(), ne)
			if err != nil {
				return err
			}
			return a.render(cmd, e, func(t *table) {
				t.row("ID", e.ID)
			})
		},
	}
	f.register(cmd, false)
	return cmd
}

func newEntryEditCmd(a *app) *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit the given fields of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p, err := f.patch(cmd)
			if err != nil {
				return err
			}
			if p.IsEmpty() {
				return cerr.Validation(errors.New("no field is given"))
			}
			found, err := a.uc.UpdateLogEntry(cmd.Context(), id, p)
			return entryResult(found, err, args[0])
		},
	}
	f.register(cmd, true)
	return cmd
}

// patch collects the changed flags as an EntryPatch.
func (f *entryFlags) patch(cmd *cobra.Command) (p model.EntryPatch, err error) {
	fs := cmd.Flags()
	str := func(name string, v string) *string {
		if !fs.Changed(name) {
			return nil
		}
		return &v
	}
	p.Contractor = str("contractor", f.contractor)
	p.License = str("truck", f.license)
	p.Source = str("source", f.source)
	p.Destination = str("destination", f.destination)
	p.Capacity = capacityFlag(cmd, f.capacity)
	if fs.Changed("date") {
		d, err := parseDate(f.date)
		if err != nil {
			return p, err
		}
		p.Date = &d
	}
	if fs.Changed("shift") {
		sh, err := parseShift(f.shift)
		if err != nil {
			return p, err
		}
		p.Shift = &sh
	}
	if fs.Changed("status") {
		st, err := parseStatus(f.status)
		if err != nil {
			return p, err
		}
		p.Status = &st
	}
	return p, nil
}

func newEntryListCmd(a *app) *cobra.Command {
	var (
		f      entryFlags
		rng    dateRange
		search string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the dispatch log entries, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flt := query.Filter{
				Contractor:  f.contractor,
				License:     f.license,
				Source:      f.source,
				Destination: f.destination,
				Search:      search,
			}
			if !all {
				start, end, err := rng.resolve(a.today())
				if err != nil {
					return err
				}
				flt.Start, flt.End = &start, &end
			}
			var err error
			if f.shift != "" {
				if flt.Shift, err = parseShift(f.shift); err != nil {
					return err
				}
			}
			if f.status != "" {
				if flt.Status, err = parseStatus(f.status); err != nil {
					return err
				}
			}
			entries := a.uc.FilteredLogs(flt)
			return a.render(cmd, entries, func(t *table) {
				t.row(
					"ID", "DATE", "SHIFT", "CONTRACTOR", "TRUCK",
					"SOURCE", "DESTINATION", "CAPACITY", "STATUS",
				)
				for _, e := range entries {
					t.row(
						e.ID, e.Date, e.Shift.Label(), e.Contractor,
						e.License, e.Source, e.Destination,
						float64(e.Capacity), e.Status,
					)
				}
			})
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&f.contractor, "contractor", "", "only this contractor")
	fs.StringVar(&f.license, "truck", "", "only this truck license")
	fs.StringVar(&f.source, "source", "", "only this source")
	fs.StringVar(&f.destination, "destination", "", "only this destination")
	fs.StringVar(&f.shift, "shift", "", "only this shift")
	fs.StringVar(&f.status, "status", "", "only this status")
	fs.StringVar(&search, "search", "", "case-insensitive text search")
	fs.BoolVar(&all, "all", false, "ignore the date range")
	rng.register(cmd)
	return cmd
}
