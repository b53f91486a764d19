// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package badgerkv_test

import (
	"context"
	"testing"

	"github.com/momeni/dispatchlog/internal/test/storetest"
	"github.com/momeni/dispatchlog/pkg/adapter/kv/badgerkv"
	"github.com/momeni/dispatchlog/pkg/core/repo"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var _ repo.Store = (*badgerkv.Store)(nil)

func TestStoreSuite(t *testing.T) {
	suite.Run(t, &storetest.Suite{
		Open: func(_ context.Context, dir string) (repo.Store, error) {
			return badgerkv.Open(dir)
		},
		Persistent: true,
	})
}

func TestInMemory(t *testing.T) {
	ctx := context.Background()
	s, err := badgerkv.Open("")
	require.NoError(t, err)
	defer s.Close()
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "v", string(v))
}
