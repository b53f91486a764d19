// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/momeni/dispatchlog/pkg/adapter/config/settings"
	"github.com/stretchr/testify/assert"
)

func ExampleDuration_Marshal() {
	for _, d := range []time.Duration{
		0, 250 * time.Millisecond, time.Hour, 90 * time.Minute,
	} {
		dd := settings.Duration(d)
		fmt.Println(*dd.Marshal())
	}
	// Output:
	// 0s
	// 250ms
	// 1h
	// 1h30m
}

func TestDefault(t *testing.T) {
	var s *string
	settings.Default(&s, "badger")
	assert.Equal(t, "badger", *s)
	settings.Default(&s, "sqlite")
	assert.Equal(t, "badger", *s)

	var dst *int
	settings.OverwriteNil(&dst, nil)
	assert.Nil(t, dst)
	src := 3
	settings.OverwriteNil(&dst, &src)
	src = 4
	assert.Equal(t, 3, *dst)

	c := settings.Clone(dst)
	*c = 5
	assert.Equal(t, 3, *dst)
	assert.Nil(t, settings.Clone[int](nil))
}

func TestVerify(t *testing.T) {
	n := int64(1024)
	err := settings.VerifyRange(&n, 0, 1023)
	assert.EqualError(t, err, "1024 is greater than 1023")
	n = -1
	assert.EqualError(t,
		settings.VerifyRange(&n, 0, 1023), "-1 is less than 0",
	)
	assert.NoError(t, settings.VerifyRange[int64](nil, 0, 1023))

	b := "redis"
	assert.EqualError(t,
		settings.VerifyOneOf(&b, "badger", "sqlite"),
		"unsupported redis (expected one of [badger sqlite])",
	)
	b = "sqlite"
	assert.NoError(t, settings.VerifyOneOf(&b, "badger", "sqlite"))
}
