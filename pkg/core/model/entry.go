// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the dispatch log business models. This layer may not
// depend on outter layers, while all other layers may depend on it.
// It is acceptable to annotate structs in this package with the
// serialization and validation tags which are required by adapters
// since adding more tags does not complicate definition of a struct,
// but can prevent unnecessary structs duplication.
package model

import (
	"bytes"
	"strconv"
	"strings"
)

// EntryID identifies one dispatch log entry. IDs are unique within a
// log and are minted by a repo.IDGenerator.
type EntryID int64

// Capacity is a truck load volume (in cubic meters). Stored documents
// may carry capacities as numbers, numeric strings, or null. Missing
// and non-numeric values are decoded as zero, so aggregations can sum
// capacities without further checks.
type Capacity float64

// MarshalJSON always encodes c as a JSON number.
func (c Capacity) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, float64(c), 'f', -1, 64), nil
}

// UnmarshalJSON decodes a number, a numeric string, or null.
func (c *Capacity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		u, err := strconv.Unquote(s)
		if err != nil {
			*c = 0
			return nil
		}
		s = strings.TrimSpace(u)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*c = 0
		return nil
	}
	*c = Capacity(f)
	return nil
}

// Entry models one recorded truck movement, i.e., a dispatch log
// entry. The Contractor and License fields should reference an
// existing truck, however, later edits of the reference data are not
// propagated (except for contractor renames and deletions).
type Entry struct {
	ID          EntryID  `json:"id"`
	Date        Date     `json:"date"`
	Contractor  string   `json:"contractor" validate:"required"`
	License     string   `json:"license" validate:"required"`
	Capacity    Capacity `json:"capacity" validate:"gte=0"`
	Source      string   `json:"source" validate:"required"`
	Destination string   `json:"destination" validate:"required,nefield=Source"`
	Shift       Shift    `json:"shift"`
	Status      Status   `json:"status"`
}

// NewEntry carries the fields of a dispatch form submission. The ID
// and Status of the resulting Entry are assigned by the use case.
// A nil Capacity asks for the capacity of the truck record.
type NewEntry struct {
	Date        Date
	Contractor  string   `validate:"required"`
	License     string   `validate:"required"`
	Capacity    *float64 `validate:"omitempty,gt=0"`
	Source      string   `validate:"required"`
	Destination string   `validate:"required,nefield=Source"`
	Shift       Shift    `validate:"required"`
}

// EntryPatch lists the optional fields of an entry edit operation.
// Nil fields are kept unchanged.
type EntryPatch struct {
	Date        *Date
	Contractor  *string
	License     *string
	Capacity    *float64
	Source      *string
	Destination *string
	Shift       *Shift
	Status      *Status
}

// IsEmpty reports whether p changes no field at all.
func (p EntryPatch) IsEmpty() bool {
	return p == EntryPatch{}
}

// Apply returns a copy of e which its fields are replaced by the
// non-nil fields of p. The ID is never changed.
func (p EntryPatch) Apply(e Entry) Entry {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Contractor != nil {
		e.Contractor = strings.TrimSpace(*p.Contractor)
	}
	if p.License != nil {
		e.License = strings.TrimSpace(*p.License)
	}
	if p.Capacity != nil {
		e.Capacity = Capacity(*p.Capacity)
	}
	if p.Source != nil {
		e.Source = strings.TrimSpace(*p.Source)
	}
	if p.Destination != nil {
		e.Destination = strings.TrimSpace(*p.Destination)
	}
	if p.Shift != nil {
		e.Shift = *p.Shift
	}
	if p.Status != nil {
		e.Status = *p.Status
	}
	return e
}
