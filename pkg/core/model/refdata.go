// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"slices"
)

// Truck belongs to exactly one contractor and is identified by its
// license plate within that contractor. A nil Capacity means that the
// capacity has to be entered manually whenever the truck is dispatched.
type Truck struct {
	License  string   `json:"license" yaml:"license"`
	Capacity *float64 `json:"capacity" yaml:"capacity"`
}

// Clone returns a copy of t which does not share its Capacity pointer.
func (t Truck) Clone() Truck {
	if t.Capacity != nil {
		c := *t.Capacity
		t.Capacity = &c
	}
	return t
}

// Contractor is a trucking company, owning a set of trucks and the
// set of destinations which it may ship to. Contractors are keyed by
// their names in the ReferenceData.Contractors map.
type Contractor struct {
	Trucks       []Truck  `json:"trucks" yaml:"trucks"`
	Destinations []string `json:"destinations" yaml:"destinations"`
}

// Clone returns a deep copy of c. Nil slices become empty slices, so
// they are serialized as JSON arrays.
func (c Contractor) Clone() Contractor {
	cc := Contractor{
		Trucks:       make([]Truck, 0, len(c.Trucks)),
		Destinations: make([]string, len(c.Destinations)),
	}
	for _, t := range c.Trucks {
		cc.Trucks = append(cc.Trucks, t.Clone())
	}
	copy(cc.Destinations, c.Destinations)
	return cc
}

// TruckIndex returns the index of the license truck or -1.
func (c Contractor) TruckIndex(license string) int {
	return slices.IndexFunc(c.Trucks, func(t Truck) bool {
		return t.License == license
	})
}

// HasDestination reports whether c ships to the name destination.
func (c Contractor) HasDestination(name string) bool {
	return slices.Contains(c.Destinations, name)
}

// ReferenceData contains the contractors (and their trucks and
// destinations) and the global list of source locations.
type ReferenceData struct {
	Contractors map[string]Contractor `json:"contractors" yaml:"contractors"`
	Sources     []string              `json:"sources" yaml:"sources"`
}

// ErrMissingContractors and ErrMissingSources indicate a reference
// data document which lacks one of its required top-level members.
var (
	ErrMissingContractors = errors.New("missing contractors mapping")
	ErrMissingSources     = errors.New("missing sources list")
)

// Validate checks that rd has the required shape. Both top-level
// members must be present (an empty mapping or list is acceptable),
// contractor names and truck licenses must be non-empty, and licenses
// must be unique within each contractor.
func (rd *ReferenceData) Validate() error {
	if rd.Contractors == nil {
		return ErrMissingContractors
	}
	if rd.Sources == nil {
		return ErrMissingSources
	}
	for name, c := range rd.Contractors {
		if name == "" {
			return errors.New("empty contractor name")
		}
		seen := make(map[string]bool, len(c.Trucks))
		for _, t := range c.Trucks {
			if t.License == "" {
				return fmt.Errorf("contractor %q: empty license", name)
			}
			if seen[t.License] {
				return fmt.Errorf(
					"contractor %q: duplicate license %q",
					name, t.License,
				)
			}
			seen[t.License] = true
		}
	}
	return nil
}

// Clone returns a deep copy of rd, so the copy may be changed
// without affecting rd.
func (rd *ReferenceData) Clone() ReferenceData {
	cc := ReferenceData{
		Contractors: make(map[string]Contractor, len(rd.Contractors)),
		Sources:     make([]string, len(rd.Sources)),
	}
	for name, c := range rd.Contractors {
		cc.Contractors[name] = c.Clone()
	}
	copy(cc.Sources, rd.Sources)
	return cc
}

func capacity(c float64) *float64 {
	return &c
}

// DefaultReferenceData returns the built-in dataset which is used
// when no (valid) reference data could be loaded from the storage.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Contractors: map[string]Contractor{
			"Elsamy - السامي": {
				Trucks: []Truck{
					{License: "6141-7523", Capacity: capacity(47)},
					{License: "6536-8561", Capacity: capacity(49)},
				},
				Destinations: []string{
					"Abu Madi - أبو ماضي",
					"Elaalamya - العالمية",
					"Eldawlya - الدولية",
					"Ultra Extract - ألترا اكستراكت",
					"Unico - يونيكو",
				},
			},
			"Elbassyouny - البسيوني": {
				Trucks: []Truck{
					{License: "1859-2397", Capacity: capacity(49)},
					{License: "4327-9482", Capacity: capacity(51)},
				},
				Destinations: []string{
					"Abu Madi - أبو ماضي",
					"Elaalamya - العالمية",
				},
			},
			"Petrotreatment - بتروتريتمنت": {
				Trucks: []Truck{
					{License: "1954-5398"},
					{License: "6359-4932"},
					{License: "1932-5417"},
				},
				Destinations: []string{"Unico - يونيكو"},
			},
		},
		Sources: []string{
			"Off-spec Condensate Tank",
			"Rich MEG Tank",
			"Open Drains - P01 Area",
			"Open Drain - S01 Area",
			"Inspection Tank",
		},
	}
}
