// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dispatchuc

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/log"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
)

// AddDispatchEntry validates a dispatch form submission and prepends
// its entry to the log. The contractor, license, source, and
// destination must reference the current reference data. A nil
// capacity is taken from the truck record and trucks without a
// recorded capacity need a manual one. The new entry gets a fresh
// id and the initial status.
func (uc *UseCase) AddDispatchEntry(
	ctx context.Context, ne model.NewEntry,
) (e model.Entry, err error) {
	ne.Contractor = strings.TrimSpace(ne.Contractor)
	ne.License = strings.TrimSpace(ne.License)
	ne.Source = strings.TrimSpace(ne.Source)
	ne.Destination = strings.TrimSpace(ne.Destination)
	var errs cerr.FieldErrors
	if err = uc.validateStruct(ne); err != nil {
		if !errors.As(err, &errs) {
			return e, err
		}
	}
	errs.Assert(!ne.Date.IsZero(), "Date", "required")
	if ne.Shift != model.ShiftInvalid && ne.Shift.Validate() != nil {
		errs.Add("Shift", "oneof")
	}
	if err = errs.Err(); err != nil {
		return e, err
	}
	err = uc.mutate(ctx, func(st *state) (change, error) {
		c, err := contractor(st, ne.Contractor)
		if err != nil {
			return change{}, err
		}
		i := c.TruckIndex(ne.License)
		if i < 0 {
			return change{}, cerr.NotFound(
				fmt.Errorf("%q: %w", ne.License, ErrTruckNotFound),
			)
		}
		if !slices.Contains(st.data.Sources, ne.Source) {
			return change{}, cerr.NotFound(
				fmt.Errorf("%q: %w", ne.Source, ErrSourceNotFound),
			)
		}
		if !c.HasDestination(ne.Destination) {
			return change{}, cerr.NotFound(
				fmt.Errorf("%q: %w", ne.Destination, ErrDestinationNotFound),
			)
		}
		capacity := ne.Capacity
		if capacity == nil {
			capacity = c.Trucks[i].Capacity
		}
		if capacity == nil {
			return change{}, cerr.Validation(
				fmt.Errorf("%q: %w", ne.License, ErrCapacityRequired),
			)
		}
		e = model.Entry{
			ID:          uc.nextID(st),
			Date:        ne.Date,
			Contractor:  ne.Contractor,
			License:     ne.License,
			Capacity:    model.Capacity(*capacity),
			Source:      ne.Source,
			Destination: ne.Destination,
			Shift:       ne.Shift,
			Status:      model.StatusDispatched,
		}
		st.log = slices.Insert(st.log, 0, e)
		return change{log: true}, nil
	})
	if err != nil {
		return model.Entry{}, err
	}
	log.Debug(ctx, "dispatch entry is added", log.EntryID(e.ID))
	return e, nil
}

// nextID draws ids until one does not collide with existing entries.
func (uc *UseCase) nextID(st *state) model.EntryID {
	for {
		id := uc.ids.NextID()
		if indexOf(st.log, id) < 0 {
			return id
		}
	}
}

func indexOf(entries []model.Entry, id model.EntryID) int {
	return slices.IndexFunc(entries, func(e model.Entry) bool {
		return e.ID == id
	})
}

// UpdateEntryStatus sets the status of the id entry. It returns false
// (with no error) if the entry is not found.
func (uc *UseCase) UpdateEntryStatus(
	ctx context.Context, id model.EntryID, status model.Status,
) (found bool, err error) {
	if err = status.Validate(); err != nil {
		return false, cerr.Validation(err)
	}
	return uc.updateEntry(ctx, id, func(e *model.Entry) error {
		e.Status = status
		return nil
	})
}

// ToggleEntryStatus switches the id entry between the dispatched and
// verified statuses. It returns false (with no error) if the entry is
// not found.
func (uc *UseCase) ToggleEntryStatus(
	ctx context.Context, id model.EntryID,
) (found bool, err error) {
	return uc.updateEntry(ctx, id, func(e *model.Entry) error {
		e.Status = e.Status.Toggle()
		return nil
	})
}

// UpdateLogEntry applies the non-nil fields of p to the id entry.
// The edited entry must still be valid, although its references to
// the reference data are not checked (so old entries remain editable
// after their trucks are deleted). It returns false (with no error)
// if the entry is not found.
func (uc *UseCase) UpdateLogEntry(
	ctx context.Context, id model.EntryID, p model.EntryPatch,
) (found bool, err error) {
	return uc.updateEntry(ctx, id, func(e *model.Entry) error {
		edited := p.Apply(*e)
		var errs cerr.FieldErrors
		if err := uc.validateStruct(edited); err != nil {
			if !errors.As(err, &errs) {
				return err
			}
		}
		errs.Assert(!edited.Date.IsZero(), "Date", "required")
		errs.Assert(edited.Shift.Validate() == nil, "Shift", "oneof")
		errs.Assert(edited.Status.Validate() == nil, "Status", "oneof")
		if err := errs.Err(); err != nil {
			return err
		}
		*e = edited
		return nil
	})
}

func (uc *UseCase) updateEntry(
	ctx context.Context, id model.EntryID, f func(e *model.Entry) error,
) (found bool, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		i := indexOf(st.log, id)
		if i < 0 {
			return change{}, nil
		}
		found = true
		if err := f(&st.log[i]); err != nil {
			return change{}, err
		}
		return change{log: true}, nil
	})
	if err != nil {
		return false, err
	}
	if found {
		log.Debug(ctx, "dispatch entry is updated", log.EntryID(id))
	}
	return found, nil
}

// DeleteLogEntry removes the id entry. It returns false (with no
// error) if the entry is not found.
func (uc *UseCase) DeleteLogEntry(
	ctx context.Context, id model.EntryID,
) (found bool, err error) {
	err = uc.mutate(ctx, func(st *state) (change, error) {
		i := indexOf(st.log, id)
		if i < 0 {
			return change{}, nil
		}
		found = true
		st.log = slices.Delete(st.log, i, i+1)
		return change{log: true}, nil
	})
	return found && err == nil, err
}

// ClearLog empties the dispatch log and removes its storage key.
func (uc *UseCase) ClearLog(ctx context.Context) error {
	n := 0
	err := uc.mutate(ctx, func(st *state) (change, error) {
		n = len(st.log)
		st.log = []model.Entry{}
		return change{log: true, clearLog: true}, nil
	})
	if err == nil {
		log.Info(ctx, "dispatch log is cleared", log.Count("entries", n))
	}
	return err
}

// Entries returns a copy of the dispatch log, newest first.
func (uc *UseCase) Entries() []model.Entry {
	var entries []model.Entry
	uc.read(func(st *state) {
		entries = slices.Clone(st.log)
	})
	if entries == nil {
		entries = []model.Entry{}
	}
	return entries
}

// Entry returns the id entry and whether it is found.
func (uc *UseCase) Entry(id model.EntryID) (e model.Entry, found bool) {
	uc.read(func(st *state) {
		if i := indexOf(st.log, id); i >= 0 {
			e, found = st.log[i], true
		}
	})
	return e, found
}

// FilteredLogs returns the log entries which match f, newest first.
func (uc *UseCase) FilteredLogs(f query.Filter) []model.Entry {
	var entries []model.Entry
	uc.read(func(st *state) {
		entries = query.Apply(st.log, f)
	})
	return entries
}
