// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/spf13/cobra"
)

func newTruckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "truck",
		Aliases: []string{"trucks"},
		Short:   "Manage the trucks of a contractor",
	}
	list := &cobra.Command{
		Use:   "list CONTRACTOR",
		Short: "List the trucks of a contractor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trucks := a.uc.TrucksForContractor(args[0])
			return a.render(cmd, trucks, func(t *table) {
				t.row("LICENSE", "CAPACITY")
				for _, tr := range trucks {
					t.row(tr.License, capacityCell(tr))
				}
			})
		},
	}
	var capacity float64
	add := &cobra.Command{
		Use:   "add CONTRACTOR LICENSE",
		Short: "Add a truck, omit --capacity to enter it on each dispatch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.uc.AddTruck(
				cmd.Context(), args[0], args[1], capacityFlag(cmd, capacity),
			)
		},
	}
	add.Flags().Float64Var(&capacity, "capacity", 0, "capacity in m³")
	update := &cobra.Command{
		Use:   "update CONTRACTOR LICENSE",
		Short: "Replace the capacity of a truck, omit --capacity to clear it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.uc.UpdateTruck(
				cmd.Context(), args[0], args[1], capacityFlag(cmd, capacity),
			)
			if err == nil && !found {
				err = notFound("truck", args[1])
			}
			return err
		},
	}
	update.Flags().Float64Var(&capacity, "capacity", 0, "capacity in m³")
	del := &cobra.Command{
		Use:   "delete CONTRACTOR LICENSE",
		Short: "Delete a truck, keeping its log entries",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := a.uc.DeleteTruck(cmd.Context(), args[0], args[1])
			if err == nil && !found {
				err = notFound("truck", args[1])
			}
			return err
		},
	}
	cmd.AddCommand(list, add, update, del)
	return cmd
}

func capacityCell(tr model.Truck) any {
	if tr.Capacity == nil {
		return "manual"
	}
	return *tr.Capacity
}
