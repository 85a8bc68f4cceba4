// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"testing"

	"github.com/cpmech/godrain/inp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeSim builds a Y-shaped tree: two branches joining at a junction that
// drains to an outfall
func treeSim() *inp.Simulation {
	pipe := func(nm, up, dn string) *inp.LinkData {
		return &inp.LinkData{
			Name: nm, Type: "conduit", NodeUp: up, NodeDn: dn,
			Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.013,
		}
	}
	return &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.KinWave},
		Nodes: []*inp.NodeData{
			{Name: "A", Type: "junction", InvertElev: 110, FullDepth: 4},
			{Name: "B", Type: "junction", InvertElev: 108, FullDepth: 4},
			{Name: "C", Type: "junction", InvertElev: 105, FullDepth: 4},
			{Name: "O", Type: "outfall", InvertElev: 100, OutfallKind: "free"},
		},
		Links: []*inp.LinkData{
			pipe("L3", "C", "O"),
			pipe("L1", "A", "C"),
			pipe("L2", "B", "C"),
		},
	}
}

func Test_toposort01(tst *testing.T) {

	//verbose()
	sim := treeSim()
	require.NoError(tst, sim.Derive())

	dom, err := Open(sim)
	require.NoError(tst, err)
	defer dom.Close()

	require.Len(tst, dom.SortedLinks, 3)

	// both branch pipes must route before the downstream pipe
	pos := make(map[string]int)
	for k, j := range dom.SortedLinks {
		pos[sim.Links[j].Name] = k
	}
	assert.Less(tst, pos["L1"], pos["L3"])
	assert.Less(tst, pos["L2"], pos["L3"])
}

func Test_toposort02(tst *testing.T) {

	//verbose()
	sim := treeSim()

	// close a loop: C drains back up to A
	sim.Links = append(sim.Links, &inp.LinkData{
		Name: "L4", Type: "conduit", NodeUp: "C", NodeDn: "A",
		Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.013,
	})
	require.NoError(tst, sim.Derive())

	// kinematic routing rejects the loop with a topology error
	_, err := Open(sim)
	require.Error(tst, err)
	assert.Equal(tst, ErrTopology, CodeOf(err))

	// the dynamic wave model accepts the same looped network
	sim2 := treeSim()
	sim2.Links = append(sim2.Links, &inp.LinkData{
		Name: "L4", Type: "conduit", NodeUp: "C", NodeDn: "A",
		Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.013,
	})
	sim2.Routing.Model = inp.DynWave
	require.NoError(tst, sim2.Derive())
	dom, err := Open(sim2)
	require.NoError(tst, err)
	dom.Close()
}

func Test_toposort03(tst *testing.T) {

	//verbose()

	// a divider with a single outflow is invalid
	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.KinWave},
		Nodes: []*inp.NodeData{
			{Name: "D", Type: "divider", DividerKind: "cutoff", DivertedLink: "L1",
				InvertElev: 105, FullDepth: 4, QMin: 1},
			{Name: "O", Type: "outfall", InvertElev: 100, OutfallKind: "free"},
		},
		Links: []*inp.LinkData{
			{Name: "L1", Type: "conduit", NodeUp: "D", NodeDn: "O",
				Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.013},
		},
	}
	require.NoError(tst, sim.Derive())
	_, err := Open(sim)
	require.Error(tst, err)
	assert.Equal(tst, ErrValidation, CodeOf(err))
}
