// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/momeni/dispatchlog/pkg/core/model"
	"github.com/momeni/dispatchlog/pkg/core/query"
	"github.com/spf13/cobra"
)

// DefaultDays is the length of the default reporting range which ends
// at today.
const DefaultDays = 30

var (
	errConfirm       = errors.New("pass --yes to confirm")
	errStartAfterEnd = errors.New("start date cannot be after the end date")
)

// dateRange holds the --from and --to flags.
type dateRange struct {
	from, to string
}

func (r *dateRange) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "range start (DD/MM/YYYY)")
	cmd.Flags().StringVar(&r.to, "to", "", "range end (DD/MM/YYYY)")
}

// resolve parses the range bounds. A missing end is today and a
// missing start is DefaultDays days before the end. A start after the
// end is rejected.
func (r *dateRange) resolve(today model.Date) (start, end model.Date, err error) {
	end = today
	if r.to != "" {
		if end, err = parseDate(r.to); err != nil {
			return start, end, err
		}
	}
	start, _ = query.LastDays(end, DefaultDays)
	if r.from != "" {
		if start, err = parseDate(r.from); err != nil {
			return start, end, err
		}
	}
	if end.Before(start) {
		return start, end, cerr.Validation(errStartAfterEnd)
	}
	return start, end, nil
}

func parseDate(s string) (model.Date, error) {
	d, err := model.ParseDate(s)
	if err != nil {
		return d, cerr.Validation(err)
	}
	return d, nil
}

var shiftAliases = map[string]model.Shift{
	"day":          model.ShiftDay,
	"night-before": model.ShiftNightBeforeMidnight,
	"night-after":  model.ShiftNightAfterMidnight,
}

// parseShift accepts the short aliases (day, night-before, and
// night-after) in addition to the shift names and labels.
func parseShift(s string) (model.Shift, error) {
	if sh, ok := shiftAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return sh, nil
	}
	sh, err := model.ParseShift(s)
	if err != nil {
		return sh, cerr.Validation(fmt.Errorf("%q: %w", s, err))
	}
	return sh, nil
}

func parseStatus(s string) (model.Status, error) {
	for _, st := range model.Statuses() {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	st, err := model.ParseStatus(s)
	if err != nil {
		return st, cerr.Validation(fmt.Errorf("%q: %w", s, err))
	}
	return st, nil
}

func parseID(s string) (model.EntryID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, cerr.Validation(fmt.Errorf("entry id %q: %w", s, err))
	}
	return model.EntryID(id), nil
}

func notFound(what, name string) error {
	return cerr.NotFound(fmt.Errorf("%s %q is not found", what, name))
}

// capacityFlag returns the --capacity flag value, or nil if it is not
// given.
func capacityFlag(cmd *cobra.Command, v float64) *float64 {
	if !cmd.Flags().Changed("capacity") {
		return nil
	}
	return &v
}
