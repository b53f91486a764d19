// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr

import (
	"slices"
	"strings"
)

// FieldErrors maps the names of invalid input fields to their error
// messages. It is wrapped by a Validation error when a form input
// fails to be validated.
type FieldErrors map[string][]string

// Add appends msgs to the name field messages, allocating *errs map
// if it is nil.
func (errs *FieldErrors) Add(name string, msgs ...string) {
	if *errs == nil {
		*errs = make(FieldErrors)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

// Assert adds msgs for the name field if ok is false. The ok value is
// returned, so a series of checks may be chained.
func (errs *FieldErrors) Assert(ok bool, name string, msgs ...string) bool {
	if !ok {
		errs.Add(name, msgs...)
	}
	return ok
}

// Err returns nil if errs is empty and a Validation error otherwise.
func (errs FieldErrors) Err() error {
	if len(errs) == 0 {
		return nil
	}
	return Validation(errs)
}

// Error lists the fields in sorted order, so the message is stable.
func (errs FieldErrors) Error() string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	slices.Sort(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(errs[name], ", "))
	}
	return sb.String()
}
