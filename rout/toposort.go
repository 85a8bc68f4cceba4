// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"errors"

	"github.com/cpmech/godrain/inp"
	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/dfs"
)

// buildGraph assembles the directed graph of the network in its input
// orientation
func (o *Domain) buildGraph() *core.Graph {
	g := core.NewGraph(core.WithDirected(true), core.WithLoops(), core.WithMultiEdges())
	for _, nd := range o.Sim.Nodes {
		g.AddVertex(nd.Name)
	}
	for _, ld := range o.Sim.Links {
		g.AddEdge(o.Sim.Nodes[ld.IdxUp].Name, o.Sim.Nodes[ld.IdxDn].Name, 0)
	}
	return g
}

// sortLinks validates the network topology and, for the kinematic and
// steady models, produces the link routing order from a topological sort
// of the node graph. Loops are fatal for those models; the dynamic wave
// solver handles looped networks and skips the sort.
func (o *Domain) sortLinks() error {

	err := o.validateDividers()
	if err != nil {
		return err
	}

	if o.Sim.Routing.Model == inp.DynWave {
		return nil
	}

	g := o.buildGraph()
	order, err := dfs.TopologicalSort(g)
	if err != nil {
		if errors.Is(err, dfs.ErrCycleDetected) {
			return newErr(ErrTopology, "network has a loop (%s) and cannot be routed with the %q model",
				o.shortestLoop(g), o.Sim.Routing.Model)
		}
		return newErr(ErrTopology, "topological sort failed: %v", err)
	}

	// rank nodes, then order links by the rank of their upstream node
	rank := make(map[string]int)
	for k, name := range order {
		rank[name] = k
	}
	o.SortedLinks = make([]int, len(o.Links))
	for j := range o.Links {
		o.SortedLinks[j] = j
	}
	up := func(j int) int { return rank[o.Sim.Nodes[o.Sim.Links[j].IdxUp].Name] }
	for a := 1; a < len(o.SortedLinks); a++ {
		for b := a; b > 0 && up(o.SortedLinks[b]) < up(o.SortedLinks[b-1]); b-- {
			o.SortedLinks[b], o.SortedLinks[b-1] = o.SortedLinks[b-1], o.SortedLinks[b]
		}
	}
	return nil
}

// shortestLoop reports the shortest cycle found by probing each link as a
// chord: a breadth-first path from the link's downstream node back to its
// upstream node closes a loop through that link
func (o *Domain) shortestLoop(g *core.Graph) string {
	best := ""
	bestLen := -1
	for _, ld := range o.Sim.Links {
		from := o.Sim.Nodes[ld.IdxDn].Name
		to := o.Sim.Nodes[ld.IdxUp].Name
		res, err := bfs.BFS(g, from)
		if err != nil {
			continue
		}
		path, err := res.PathTo(to)
		if err != nil {
			continue
		}
		if bestLen < 0 || len(path) < bestLen {
			bestLen = len(path)
			best = ld.Name
			for _, name := range path {
				best += " -> " + name
			}
		}
	}
	if best == "" {
		return "unlocated"
	}
	return best
}
