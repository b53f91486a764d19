// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dispatchuc

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/log"
	"github.com/momeni/dispatchlog/pkg/core/model"
)

type truckInput struct {
	License  string   `validate:"required"`
	Capacity *float64 `validate:"omitempty,gt=0"`
}

func nameOf(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", cerr.Validation(ErrEmptyName)
	}
	return s, nil
}

// AddContractor creates the name contractor with no trucks and no
// destinations.
func (uc *UseCase) AddContractor(ctx context.Context, name string) error {
	n, err := nameOf(name)
	if err != nil {
		return err
	}
	err = uc.mutate(ctx, func(st *state) (change, error) {
		if _, ok := st.data.Contractors[n]; ok {
			return change{}, cerr.Conflict(
				fmt.Errorf("%q: %w", n, ErrContractorExists),
			)
		}
		st.data.Contractors[n] = model.Contractor{
			Trucks:       []model.Truck{},
			Destinations: []string{},
		}
		return change{data: true}, nil
	})
	if err == nil {
		log.Debug(ctx, "contractor is added", log.Contractor(n))
	}
	return err
}

// RenameContractor moves the oldName contractor to newName and
// rewrites the contractor column of all of its log entries, so no
// entry references the old name afterwards. Both collections are
// persisted and both notifications are published.
func (uc *UseCase) RenameContractor(
	ctx context.Context, oldName, newName string,
) error {
	n, err := nameOf(newName)
	if err != nil {
		return err
	}
	renamed := 0
	err = uc.mutate(ctx, func(st *state) (change, error) {
		c, ok := st.data.Contractors[oldName]
		if !ok {
			return change{}, cerr.NotFound(
				fmt.Errorf("%q: %w", oldName, ErrContractorNotFound),
			)
		}
		if n == oldName {
			return change{}, nil
		}
		if _, ok := st.data.Contractors[n]; ok {
			return change{}, cerr.Conflict(
				fmt.Errorf("%q: %w", n, ErrContractorExists),
			)
		}
		delete(st.data.Contractors, oldName)
		st.data.Contractors[n] = c
		for i := range st.log {
			if st.log[i].Contractor == oldName {
				st.log[i].Contractor = n
				renamed++
			}
		}
		return change{data: true, log: true}, nil
	})
	if err == nil && n != oldName {
		log.Debug(
			ctx, "contractor is renamed",
			log.Contractor(oldName), slog.String("new", n),
			log.Count("entries", renamed),
		)
	}
	return err
}

// DeleteContractor removes the name contractor (with its trucks and
// destinations) and every log entry which references it. The number
// of removed log entries is returned.
func (uc *UseCase) DeleteContractor(
	ctx context.Context, name string,
) (removed int, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		if _, ok := st.data.Contractors[name]; !ok {
			return change{}, cerr.NotFound(
				fmt.Errorf("%q: %w", name, ErrContractorNotFound),
			)
		}
		delete(st.data.Contractors, name)
		n := len(st.log)
		st.log = slices.DeleteFunc(st.log, func(e model.Entry) bool {
			return e.Contractor == name
		})
		removed = n - len(st.log)
		return change{data: true, log: removed > 0}, nil
	})
	if err != nil {
		return 0, err
	}
	log.Debug(
		ctx, "contractor is deleted",
		log.Contractor(name), log.Count("entries", removed),
	)
	return removed, nil
}

// contractor returns the name contractor or a cerr.NotFound error.
func contractor(st *state, name string) (model.Contractor, error) {
	c, ok := st.data.Contractors[name]
	if !ok {
		return c, cerr.NotFound(
			fmt.Errorf("%q: %w", name, ErrContractorNotFound),
		)
	}
	return c, nil
}

// AddTruck adds the license truck to the contractor trucks. A nil
// capacity means that the capacity is entered manually whenever the
// truck is dispatched. A non-nil capacity must be positive.
func (uc *UseCase) AddTruck(
	ctx context.Context, contractorName, license string, capacity *float64,
) error {
	in := truckInput{License: strings.TrimSpace(license), Capacity: capacity}
	if err := uc.validateStruct(in); err != nil {
		return err
	}
	return uc.mutate(ctx, func(st *state) (change, error) {
		c, err := contractor(st, contractorName)
		if err != nil {
			return change{}, err
		}
		if c.TruckIndex(in.License) >= 0 {
			return change{}, cerr.Conflict(
				fmt.Errorf("%q: %w", in.License, ErrTruckExists),
			)
		}
		c.Trucks = append(c.Trucks, model.Truck{
			License: in.License, Capacity: capacity,
		}.Clone())
		st.data.Contractors[contractorName] = c
		return change{data: true}, nil
	})
}

// UpdateTruck replaces the capacity of the license truck. It returns
// false (with no error) if the contractor or truck is not found.
func (uc *UseCase) UpdateTruck(
	ctx context.Context, contractorName, license string, capacity *float64,
) (found bool, err error) {
	in := truckInput{License: license, Capacity: capacity}
	if err := uc.validateStruct(in); err != nil {
		return false, err
	}
	err = uc.mutate(ctx, func(st *state) (change, error) {
		c, ok := st.data.Contractors[contractorName]
		if !ok {
			return change{}, nil
		}
		i := c.TruckIndex(license)
		if i < 0 {
			return change{}, nil
		}
		found = true
		c.Trucks[i] = model.Truck{License: license, Capacity: capacity}.Clone()
		st.data.Contractors[contractorName] = c
		return change{data: true}, nil
	})
	return found && err == nil, err
}

// DeleteTruck removes the license truck. Log entries of the truck are
// kept. It returns false (with no error) if the truck is not found.
func (uc *UseCase) DeleteTruck(
	ctx context.Context, contractorName, license string,
) (found bool, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		c, ok := st.data.Contractors[contractorName]
		if !ok {
			return change{}, nil
		}
		i := c.TruckIndex(license)
		if i < 0 {
			return change{}, nil
		}
		found = true
		c.Trucks = slices.Delete(c.Trucks, i, i+1)
		st.data.Contractors[contractorName] = c
		return change{data: true}, nil
	})
	return found && err == nil, err
}

// AddSource adds the name source location.
func (uc *UseCase) AddSource(ctx context.Context, name string) error {
	n, err := nameOf(name)
	if err != nil {
		return err
	}
	return uc.mutate(ctx, func(st *state) (change, error) {
		if slices.Contains(st.data.Sources, n) {
			return change{}, cerr.Conflict(
				fmt.Errorf("%q: %w", n, ErrSourceExists),
			)
		}
		st.data.Sources = append(st.data.Sources, n)
		return change{data: true}, nil
	})
}

// DeleteSource removes the name source location. It returns false
// (with no error) if the source is not found.
func (uc *UseCase) DeleteSource(
	ctx context.Context, name string,
) (found bool, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		i := slices.Index(st.data.Sources, name)
		if i < 0 {
			return change{}, nil
		}
		found = true
		st.data.Sources = slices.Delete(st.data.Sources, i, i+1)
		return change{data: true}, nil
	})
	return found && err == nil, err
}

// AddDestination adds the name destination to the contractor.
func (uc *UseCase) AddDestination(
	ctx context.Context, contractorName, name string,
) error {
	n, err := nameOf(name)
	if err != nil {
		return err
	}
	return uc.mutate(ctx, func(st *state) (change, error) {
		c, err := contractor(st, contractorName)
		if err != nil {
			return change{}, err
		}
		if c.HasDestination(n) {
			return change{}, cerr.Conflict(
				fmt.Errorf("%q: %w", n, ErrDestinationExists),
			)
		}
		c.Destinations = append(c.Destinations, n)
		st.data.Contractors[contractorName] = c
		return change{data: true}, nil
	})
}

// DeleteDestination removes the name destination of the contractor.
// It returns false (with no error) if the destination is not found.
func (uc *UseCase) DeleteDestination(
	ctx context.Context, contractorName, name string,
) (found bool, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		c, ok := st.data.Contractors[contractorName]
		if !ok {
			return change{}, nil
		}
		i := slices.Index(c.Destinations, name)
		if i < 0 {
			return change{}, nil
		}
		found = true
		c.Destinations = slices.Delete(c.Destinations, i, i+1)
		st.data.Contractors[contractorName] = c
		return change{data: true}, nil
	})
	return found && err == nil, err
}

// Contractors returns the contractor names in sorted order.
func (uc *UseCase) Contractors() []string {
	var names []string
	uc.read(func(st *state) {
		names = make([]string, 0, len(st.data.Contractors))
		for n := range st.data.Contractors {
			names = append(names, n)
		}
	})
	slices.Sort(names)
	return names
}

// Sources returns the source locations in their insertion order.
func (uc *UseCase) Sources() []string {
	var sources []string
	uc.read(func(st *state) {
		sources = slices.Clone(st.data.Sources)
	})
	if sources == nil {
		sources = []string{}
	}
	return sources
}

// TrucksForContractor returns the trucks of the name contractor.
// An unknown contractor has no trucks.
func (uc *UseCase) TrucksForContractor(name string) []model.Truck {
	var trucks []model.Truck
	uc.read(func(st *state) {
		trucks = st.data.Contractors[name].Clone().Trucks
	})
	return trucks
}

// DestinationsForContractor returns the destinations of the name
// contractor. An unknown contractor has no destinations.
func (uc *UseCase) DestinationsForContractor(name string) []string {
	var dsts []string
	uc.read(func(st *state) {
		dsts = st.data.Contractors[name].Clone().Destinations
	})
	return dsts
}

// AllDestinations returns the sorted union of all destinations.
func (uc *UseCase) AllDestinations() []string {
	dsts := []string{}
	uc.read(func(st *state) {
		for _, c := range st.data.Contractors {
			dsts = append(dsts, c.Destinations...)
		}
	})
	slices.Sort(dsts)
	return slices.Compact(dsts)
}

// CapacityForTruck returns the recorded capacity of the license truck
// of the contractor. It returns nil if the truck is unknown or if its
// capacity is entered manually.
func (uc *UseCase) CapacityForTruck(contractorName, license string) *float64 {
	var capacity *float64
	uc.read(func(st *state) {
		c := st.data.Contractors[contractorName]
		if i := c.TruckIndex(license); i >= 0 {
			capacity = c.Trucks[i].Clone().Capacity
		}
	})
	return capacity
}

// ReferenceData returns a deep copy of the whole reference data.
func (uc *UseCase) ReferenceData() model.ReferenceData {
	var rd model.ReferenceData
	uc.read(func(st *state) {
		rd = st.data.Clone()
	})
	return rd
}
