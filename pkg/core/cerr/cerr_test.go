// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package cerr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/dispatchlog/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")
	cases := []struct {
		err  error
		kind cerr.Kind
		code int
	}{
		{nil, cerr.KindInternal, 0},
		{base, cerr.KindInternal, 1},
		{cerr.Validation(base), cerr.KindValidation, 2},
		{cerr.Conflict(base), cerr.KindConflict, 3},
		{fmt.Errorf("wrapped: %w", cerr.NotFound(base)), cerr.KindNotFound, 4},
		{cerr.Storage(base), cerr.KindStorage, 5},
	}
	for _, c := range cases {
		assert.Equal(t, c.kind, cerr.KindOf(c.err), "err=%v", c.err)
		assert.Equal(t, c.code, cerr.ExitCode(c.err), "err=%v", c.err)
	}
}

func TestFieldErrors(t *testing.T) {
	var errs cerr.FieldErrors
	assert.NoError(t, errs.Err())
	assert.True(t, errs.Assert(true, "Source", "ignored"))
	assert.False(t, errs.Assert(false, "Source", "required"))
	errs.Add("Capacity", "gt")
	errs.Add("Source", "nefield")
	err := errs.Err()
	assert.Equal(t, cerr.KindValidation, cerr.KindOf(err))
	assert.EqualError(t, err,
		"[validation] Capacity: gt; Source: required, nefield",
	)
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("disk full")
	err := fmt.Errorf("saving: %w", cerr.Storage(base))
	assert.ErrorIs(t, err, base)
	assert.EqualError(t, err, "saving: [storage] disk full")
}
