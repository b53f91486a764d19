// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/spf13/cobra"
)

func newContractorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contractor",
		Aliases: []string{"contractors"},
		Short:   "Manage the contractors",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the contractors with their fleet sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rd := a.uc.ReferenceData()
			names := a.uc.Contractors()
			return a.render(cmd, rd.Contractors, func(t *table) {
				t.row("CONTRACTOR", "TRUCKS", "DESTINATIONS")
				for _, n := range names {
					c := rd.Contractors[n]
					t.row(n, len(c.Trucks), len(c.Destinations))
				}
			})
		},
	}, &cobra.Command{
		Use:   "add NAME",
		Short: "Add a contractor with no trucks and destinations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.AddContractor(cmd.Context(), args[0])
		},
	}, &cobra.Command{
		Use:   "rename OLD NEW",
		Short: "Rename a contractor and its log entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.RenameContractor(cmd.Context(), args[0], args[1])
		},
	})
	var yes bool
	del := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a contractor and its log entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f := query.Filter{Contractor: args[0]}
			if n := len(a.uc.FilteredLogs(f)); n > 0 && !yes {
				return cerr.Validation(fmt.Errorf(
					"deleting %q removes %d log entries: %w",
					args[0], n, errConfirm,
				))
			}
			n, err := a.uc.DeleteContractor(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d log entries\n", n)
			return nil
		},
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	cmd.AddCommand(del)
	return cmd
}
