// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package memkv_test

import (
	"context"
	"testing"

	"github.com/momeni/dispatchlog/internal/test/storetest"
	"github.com/momeni/dispatchlog/pkg/adapter/kv/memkv"
	"github.com/momeni/dispatchlog/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

var _ repo.Store = (*memkv.Store)(nil)

func TestStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.Suite{
		Open: func(context.Context, string) (repo.Store, error) {
			return memkv.New(), nil
		},
	})
}

func TestClosedStore(t *testing.T) {
	ctx := context.Background()
	s := memkv.New()
	assert.NoError(t, s.Close())
	_, _, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, memkv.ErrClosed)
	assert.ErrorIs(t, s.Set(ctx, "k", nil), memkv.ErrClosed)
	assert.ErrorIs(t, s.Remove(ctx, "k"), memkv.ErrClosed)
}
