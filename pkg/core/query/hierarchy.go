// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import (
	"slices"
	"strings"

	"github.com/momeni/dispatchlog/pkg/core/model"
)

// Node is one level of a Hierarchy. Leaves have no children.
type Node struct {
	Name string `json:"name"`
	Totals
	Children []Node `json:"children,omitempty"`
}

// Hierarchy is the contractor to source to destination summary.
// Nodes of every level are sorted by their names.
type Hierarchy struct {
	Contractors []Node `json:"contractors"`
	Totals
}

// HierarchyRow is one flattened leaf of a Hierarchy.
type HierarchyRow struct {
	Contractor  string `json:"contractor"`
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Totals
}

// BuildHierarchy groups entries by their contractor, source, and
// destination columns.
func BuildHierarchy(entries []model.Entry) Hierarchy {
	tree := make(map[string]map[string]map[string]Totals)
	var h Hierarchy
	for _, e := range entries {
		h.Add(e)
		sources, ok := tree[e.Contractor]
		if !ok {
			sources = make(map[string]map[string]Totals)
			tree[e.Contractor] = sources
		}
		dsts, ok := sources[e.Source]
		if !ok {
			dsts = make(map[string]Totals)
			sources[e.Source] = dsts
		}
		t := dsts[e.Destination]
		t.Add(e)
		dsts[e.Destination] = t
	}
	h.Contractors = make([]Node, 0, len(tree))
	for c, sources := range tree {
		cn := Node{Name: c}
		for s, dsts := range sources {
			sn := Node{Name: s}
			for d, t := range dsts {
				sn.Children = append(sn.Children, Node{Name: d, Totals: t})
				sn.Count += t.Count
				sn.Capacity += t.Capacity
			}
			sortNodes(sn.Children)
			cn.Children = append(cn.Children, sn)
			cn.Count += sn.Count
			cn.Capacity += sn.Capacity
		}
		sortNodes(cn.Children)
		h.Contractors = append(h.Contractors, cn)
	}
	sortNodes(h.Contractors)
	return h
}

func sortNodes(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int {
		return strings.Compare(a.Name, b.Name)
	})
}

// Rows flattens h into its leaves, in the sorted order.
func (h Hierarchy) Rows() []HierarchyRow {
	rows := make([]HierarchyRow, 0)
	for _, c := range h.Contractors {
		for _, s := range c.Children {
			for _, d := range s.Children {
				rows = append(rows, HierarchyRow{
					Contractor:  c.Name,
					Source:      s.Name,
					Destination: d.Name,
					Totals:      d.Totals,
				})
			}
		}
	}
	return rows
}
