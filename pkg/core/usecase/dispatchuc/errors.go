// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dispatchuc

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/momeni/dispatchlog/pkg/core/cerr"
)

// These errors are wrapped by cerr errors and returned by the use
// case operations. The offending names are known by the caller.
var (
	ErrEmptyName           = errors.New("name may not be empty")
	ErrContractorExists    = errors.New("contractor already exists")
	ErrContractorNotFound  = errors.New("contractor not found")
	ErrTruckExists         = errors.New("truck already exists")
	ErrTruckNotFound       = errors.New("truck not found")
	ErrSourceExists        = errors.New("source already exists")
	ErrSourceNotFound      = errors.New("source not found")
	ErrDestinationExists   = errors.New("destination already exists")
	ErrDestinationNotFound = errors.New("destination not found")
	ErrCapacityRequired    = errors.New("truck has no recorded capacity")
)

// validateStruct validates s using its validate struct tags and
// translates the validator errors into cerr.FieldErrors.
func (uc *UseCase) validateStruct(s any) error {
	switch err := uc.validate.Struct(s).(type) {
	case nil:
		return nil
	case *validator.InvalidValidationError:
		return fmt.Errorf("validating %T: %w", s, err)
	case validator.ValidationErrors:
		var errs cerr.FieldErrors
		for _, ferr := range err {
			errs.Add(ferr.Field(), ferr.Tag())
		}
		return errs.Err()
	default:
		return cerr.Validation(err)
	}
}
