// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands of the dispatchlog
// CLI. Commands are organized using the cobra library. The root command
// prints the dashboard of the last 30 days while the sub-commands
// manage the reference data, record and edit dispatch log entries, and
// produce reports.
//
//	./dispatchlog [-c /path/of/config.yaml] [--from DD/MM/YYYY] [--to DD/MM/YYYY]
//	./dispatchlog contractor list|add|rename|delete
//	./dispatchlog truck list|add|update|delete
//	./dispatchlog source list|add|delete
//	./dispatchlog destination list|add|delete
//	./dispatchlog entry add|list|status|toggle|edit|delete|clear
//	./dispatchlog report summary|group|flow|trend|hierarchy|truck|export
package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/momeni/dispatchlog/pkg/adapter/config"
	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/event"
	"github.com/momeni/dispatchlog/pkg/core/log"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/momeni/dispatchlog/pkg/core/usecase/dispatchuc"
	"github.com/spf13/cobra"
)

// app holds the state which is shared by all commands of one run.
type app struct {
	cfgPath string
	jsonOut bool

	uc     *dispatchuc.UseCase
	bus    *event.Bus
	unsubs []func()
	today  func() model.Date
}

func newRootCmd(a *app) *cobra.Command {
	var rng dateRange
	root := &cobra.Command{
		Use:   "dispatchlog",
		Short: "A truck dispatch log with reporting",
		Long: `A truck dispatch log which keeps the contractors, their trucks and
destinations, and the source locations as reference data, records each
truck movement as a dispatch log entry, and aggregates the log into
summaries, breakdowns, flows, trends, and exportable reports.
Without a sub-command, it prints the dashboard of the given range
(last 30 days by default).`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, end, err := rng.resolve(a.today())
			if err != nil {
				return err
			}
			return a.dashboard(cmd, start, end)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(
		&a.cfgPath, "config", "c", "", "config file path",
	)
	root.PersistentFlags().BoolVar(
		&a.jsonOut, "json", false, "print the results as JSON",
	)
	rng.register(root)
	root.AddCommand(
		newContractorCmd(a),
		newTruckCmd(a),
		newSourceCmd(a),
		newDestinationCmd(a),
		newEntryCmd(a),
		newReportCmd(a),
	)
	return root
}

// setup loads the config file, configures the default logger, and
// loads the dispatch use case from its storage.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	path := config.Path(a.cfgPath)
	c, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("config.Load(%q): %w", path, err)
	}
	slog.SetDefault(c.NewLogger(
		cmd.ErrOrStderr(), slog.String("session", uuid.NewString()),
	))
	a.bus = event.NewBus()
	uc, err := c.NewDispatchUseCase(ctx, a.bus)
	if err != nil {
		return fmt.Errorf("creating dispatch use case: %w", err)
	}
	a.uc = uc
	if err = uc.Load(ctx); err != nil {
		return fmt.Errorf("loading dispatch state: %w", err)
	}
	a.subscribe(cmd.ErrOrStderr())
	return nil
}

// subscribe registers the listeners which pull fresh snapshots after
// each notification and report their sizes.
func (a *app) subscribe(w io.Writer) {
	a.unsubs = append(a.unsubs,
		a.bus.DataUpdated.Subscribe(func(event.DataUpdated) {
			fmt.Fprintf(w, "reference data: %d contractors, %d sources\n",
				len(a.uc.Contractors()), len(a.uc.Sources()),
			)
		}),
		a.bus.LogUpdated.Subscribe(func(event.LogUpdated) {
			fmt.Fprintf(w, "dispatch log: %d entries\n", len(a.uc.Entries()))
		}),
	)
}

func (a *app) close() error {
	for _, unsub := range a.unsubs {
		unsub()
	}
	if a.uc == nil {
		return nil
	}
	if err := a.uc.Close(); err != nil {
		return cerr.Storage(fmt.Errorf("closing storage: %w", err))
	}
	return nil
}

func (a *app) dashboard(cmd *cobra.Command, start, end model.Date) error {
	in := query.Apply(a.uc.Entries(), query.Between(start, end))
	d := struct {
		Start        model.Date    `json:"start"`
		End          model.Date    `json:"end"`
		Summary      query.Summary `json:"summary"`
		ByContractor []query.Group `json:"byContractor"`
	}{
		Start:        start,
		End:          end,
		Summary:      query.Summarize(in, start, end),
		ByContractor: query.SortedGroups(query.GroupBy(in, query.ByContractor)),
	}
	return a.render(cmd, d, func(t *table) {
		t.row("Range", fmt.Sprintf("%s - %s", start, end))
		summaryRows(t, d.Summary)
		t.row()
		t.row("CONTRACTOR", "TRIPS", "CAPACITY")
		for _, g := range d.ByContractor {
			t.row(g.Key, g.Count, g.Capacity)
		}
	})
}

// Run parses args, runs the most specific command, and returns its
// exit code. Errors are printed to stderr and their exit codes are
// chosen based on their cerr kinds.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return run(ctx, &app{today: model.Today}, args, stdout, stderr)
}

func run(ctx context.Context, a *app, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	err = errors.Join(err, a.close())
	if err != nil {
		log.Debug(ctx, "command failed", log.Err("err", err))
		fmt.Fprintln(stderr, "Error:", err)
		return cerr.ExitCode(err)
	}
	return 0
}

// Execute runs the root command using the process arguments and exits
// with its exit code.
func Execute() {
	os.Exit(Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
