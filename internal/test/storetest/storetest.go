// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package storetest is an internal helper for the test packages.
// It provides a testify suite which verifies that a repo.Store
// implementation conforms to the expected key/value semantics.
// Each storage adapter test package embeds the Suite and provides an
// Open function which creates its Store in a temporary directory.
package storetest

import (
	"context"

	"github.com/momeni/dispatchlog/pkg/core/repo"
	"github.com/stretchr/testify/suite"
)

// Suite verifies a repo.Store implementation. The Open function must
// open (or create) a store in the dir directory. If Persistent is true,
// items are expected to survive after closing and reopening a store in
// the same directory.
type Suite struct {
	suite.Suite

	Open       func(ctx context.Context, dir string) (repo.Store, error)
	Persistent bool

	Ctx   context.Context
	dir   string
	store repo.Store
}

// SetupTest opens a fresh store for each test.
func (s *Suite) SetupTest() {
	if s.Ctx == nil {
		s.Ctx = context.Background()
	}
	s.dir = s.T().TempDir()
	st, err := s.Open(s.Ctx, s.dir)
	s.Require().NoError(err, "opening store in %q", s.dir)
	s.store = st
}

// TearDownTest closes the store unless a test closed it already.
func (s *Suite) TearDownTest() {
	if s.store != nil {
		s.NoError(s.store.Close(), "closing store")
		s.store = nil
	}
}

func (s *Suite) TestMissingKey() {
	v, found, err := s.store.Get(s.Ctx, "appData")
	s.NoError(err)
	s.False(found)
	s.Nil(v)
	s.NoError(s.store.Remove(s.Ctx, "appData"), "removing a missing key")
}

func (s *Suite) TestSetGetOverwrite() {
	r := s.Require()
	r.NoError(s.store.Set(s.Ctx, "dispatchLog", []byte(`[1]`)))
	r.NoError(s.store.Set(s.Ctx, "appData", []byte(`{}`)))
	r.NoError(s.store.Set(s.Ctx, "dispatchLog", []byte(`[1,2]`)))

	v, found, err := s.store.Get(s.Ctx, "dispatchLog")
	r.NoError(err)
	r.True(found)
	s.Equal(`[1,2]`, string(v))

	v, found, err = s.store.Get(s.Ctx, "appData")
	r.NoError(err)
	r.True(found)
	s.Equal(`{}`, string(v))
}

func (s *Suite) TestRemove() {
	r := s.Require()
	r.NoError(s.store.Set(s.Ctx, "dispatchLog", []byte(`[]`)))
	r.NoError(s.store.Remove(s.Ctx, "dispatchLog"))
	_, found, err := s.store.Get(s.Ctx, "dispatchLog")
	r.NoError(err)
	s.False(found)
}

func (s *Suite) TestValueIsolation() {
	r := s.Require()
	in := []byte("abc")
	r.NoError(s.store.Set(s.Ctx, "k", in))
	in[0] = 'x'
	v, _, err := s.store.Get(s.Ctx, "k")
	r.NoError(err)
	s.Equal("abc", string(v))
	v[1] = 'y'
	v, _, err = s.store.Get(s.Ctx, "k")
	r.NoError(err)
	s.Equal("abc", string(v))
}

func (s *Suite) TestUnicodeValue() {
	r := s.Require()
	want := `{"contractors":{"Elsamy - السامي":{}}}`
	r.NoError(s.store.Set(s.Ctx, "appData", []byte(want)))
	v, found, err := s.store.Get(s.Ctx, "appData")
	r.NoError(err)
	r.True(found)
	s.Equal(want, string(v))
}

func (s *Suite) TestReopen() {
	if !s.Persistent {
		s.T().Skip("store is volatile")
	}
	r := s.Require()
	r.NoError(s.store.Set(s.Ctx, "appData", []byte(`{"sources":[]}`)))
	r.NoError(s.store.Set(s.Ctx, "dispatchLog", []byte(`[]`)))
	r.NoError(s.store.Remove(s.Ctx, "dispatchLog"))
	r.NoError(s.store.Close())
	s.store = nil

	st, err := s.Open(s.Ctx, s.dir)
	r.NoError(err, "reopening store in %q", s.dir)
	s.store = st
	v, found, err := st.Get(s.Ctx, "appData")
	r.NoError(err)
	r.True(found)
	s.Equal(`{"sources":[]}`, string(v))
	_, found, err = st.Get(s.Ctx, "dispatchLog")
	r.NoError(err)
	s.False(found)
}
