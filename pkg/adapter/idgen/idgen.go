// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package idgen implements the repo.IDGenerator interface using the
// snowflake algorithm. Generated ids are time ordered and remain
// distinct within one node even when many entries are submitted in
// the same millisecond.
package idgen

import (
	"fmt"

	"github.com/bwmarrin/snowflake"
	"github.com/momeni/dispatchlog/pkg/core/model"
)

// These constants are the inclusive range of acceptable node numbers.
const (
	MinNode = 0
	MaxNode = 1023
)

// Snowflake generates the dispatch log entry ids.
type Snowflake struct {
	node *snowflake.Node
}

// New instantiates a Snowflake generator for the given node number.
func New(node int64) (*Snowflake, error) {
	n, err := snowflake.NewNode(node)
	if err != nil {
		return nil, fmt.Errorf("snowflake.NewNode(%d): %w", node, err)
	}
	return &Snowflake{node: n}, nil
}

// NextID returns a fresh entry id.
func (s *Snowflake) NextID() model.EntryID {
	return model.EntryID(s.node.Generate().Int64())
}
