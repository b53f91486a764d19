// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package query

import "github.com/momeni/dispatchlog/pkg/core/model"

// FlowNode is one named node of a FlowGraph.
type FlowNode struct {
	Name string `json:"name"`
}

// FlowLink connects two nodes by their indices in FlowGraph.Nodes.
type FlowLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

// FlowGraph is the input of Sankey and chord charts.
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

type edge struct {
	from, to string
}

// Flow derives the source to contractor to destination flow graph.
// Nodes are indexed in their order of first appearance (visiting the
// source, contractor, and destination of each entry). There is one
// link per distinct (source, contractor) and (contractor, destination)
// pair, weighted by its number of occurrences, and links are ordered
// by their first appearance too.
//
// A name which appears in more than one role (e.g., a destination
// which is also a source) is represented by a single node.
func Flow(entries []model.Entry) FlowGraph {
	g := FlowGraph{Nodes: []FlowNode{}, Links: []FlowLink{}}
	nodes := make(map[string]int)
	node := func(name string) int {
		i, ok := nodes[name]
		if !ok {
			i = len(g.Nodes)
			nodes[name] = i
			g.Nodes = append(g.Nodes, FlowNode{Name: name})
		}
		return i
	}
	links := make(map[edge]int)
	link := func(from, to string) {
		k := edge{from: from, to: to}
		if i, ok := links[k]; ok {
			g.Links[i].Value++
			return
		}
		links[k] = len(g.Links)
		g.Links = append(g.Links, FlowLink{
			Source: nodes[from], Target: nodes[to], Value: 1,
		})
	}
	for _, e := range entries {
		node(e.Source)
		node(e.Contractor)
		node(e.Destination)
		link(e.Source, e.Contractor)
		link(e.Contractor, e.Destination)
	}
	return g
}
