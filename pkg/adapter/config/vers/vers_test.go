// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package vers_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/momeni/dispatchlog/pkg/adapter/config/vers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ExampleLoad() {
	vc, err := vers.Load([]byte("storage:\n  backend: memory\nversions:\n  config: 1.0\n"))
	fmt.Println(err)
	fmt.Println(vc.Versions.Config)
	// Output:
	// <nil>
	// 1.0.0
}

func TestValidate(t *testing.T) {
	latest := vers.SemVer{1, 2, 0}
	for _, c := range []struct {
		v  vers.SemVer
		ok bool
	}{
		{vers.SemVer{1, 0, 0}, true},
		{vers.SemVer{1, 2, 9}, true},
		{vers.SemVer{1, 3, 0}, false},
		{vers.SemVer{2, 0, 0}, false},
		{vers.SemVer{0, 1, 0}, false},
	} {
		vc := vers.Config{Versions: vers.Versions{Config: c.v}}
		err := vc.Validate(latest)
		if c.ok {
			assert.NoError(t, err, "version %s", c.v)
			continue
		}
		var mm *vers.MismatchingSemVerError
		require.True(t, errors.As(err, &mm), "version %s", c.v)
		assert.Equal(t, c.v, mm.Actual)
	}
}

func TestSemVerUnmarshal(t *testing.T) {
	var sv vers.SemVer
	assert.Error(t, sv.UnmarshalText([]byte("1.2.3.4")))
	assert.Error(t, sv.UnmarshalText([]byte("1.x")))
	assert.Error(t, sv.UnmarshalText([]byte("-1")))
	assert.Equal(t, vers.SemVer{}, sv)
	require.NoError(t, sv.UnmarshalText([]byte("3.1.4")))
	assert.Equal(t, "3.1.4", sv.String())
}
