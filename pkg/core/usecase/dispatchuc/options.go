// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dispatchuc

import (
	"errors"
	"fmt"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Option is a functional option for the dispatch use case.
type Option func(uc *UseCase) error

// WithDefaultReferenceData option replaces the built-in dataset which
// is used when the storage contains no (valid) reference data, e.g.,
// by the contents of a seed file. This option may be passed to the
// New() function at most once.
func WithDefaultReferenceData(rd model.ReferenceData) Option {
	return func(uc *UseCase) error {
		if err := rd.Validate(); err != nil {
			return fmt.Errorf("default reference data: %w", err)
		}
		if uc.defaults != nil {
			return errors.New("default reference data is already configured")
		}
		cc := rd.Clone()
		uc.defaults = &cc
		return nil
	}
}

// WithStorageKeys option configures the storage keys of the reference
// data and the dispatch log. Keys must be non-empty and distinct.
func WithStorageKeys(dataKey, logKey string) Option {
	return func(uc *UseCase) error {
		switch {
		case dataKey == "" || logKey == "":
			return errors.New("storage keys may not be empty")
		case dataKey == logKey:
			return fmt.Errorf("storage keys are equal: %q", dataKey)
		case uc.dataKey != "":
			return errors.New("storage keys are already configured")
		}
		uc.dataKey, uc.logKey = dataKey, logKey
		return nil
	}
}
