// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"github.com/spf13/cobra"
)

func newSourceCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "source",
		Aliases: []string{"sources"},
		Short:   "Manage the source locations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the source locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.names(cmd, "SOURCE", a.uc.Sources())
		},
	}, &cobra.Command{
		Use:   "add NAME",
		Short: "Add a source location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.AddSource(cmd.Context(), args[0])
		},
	}, &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a source location, keeping its log entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.uc.DeleteSource(cmd.Context(), args[0])
			if err == nil && !found {
				err = notFound("source", args[0])
			}
			return err
		},
	})
	return cmd
}

func newDestinationCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "destination",
		Aliases: []string{"destinations"},
		Short:   "Manage the destinations of contractors",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list [CONTRACTOR]",
		Short: "List the destinations of a contractor, or of all of them",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return a.names(cmd, "DESTINATION", a.uc.AllDestinations())
			}
			dsts := a.uc.DestinationsForContractor(args[0])
			return a.names(cmd, "DESTINATION", dsts)
		},
	}, &cobra.Command{
		Use:   "add CONTRACTOR NAME",
		Short: "Add a destination to a contractor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.AddDestination(cmd.Context(), args[0], args[1])
		},
	}, &cobra.Command{
		Use:   "delete CONTRACTOR NAME",
		Short: "Delete a destination of a contractor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.uc.DeleteDestination(
				cmd.Context(), args[0], args[1],
			)
			if err == nil && !found {
				err = notFound("destination", args[1])
			}
			return err
		},
	})
	return cmd
}

func (a *app) names(cmd *cobra.Command, header string, names []string) error {
	return a.render(cmd, names, func(t *table) {
		t.row(header)
		for _, n := range names {
			t.row(n)
		}
	})
}
