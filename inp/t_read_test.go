// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

const simJSON = `{
  "data" : { "desc":"single pipe to outfall", "tf":3600, "dt":30 },
  "routing" : { "model":"dynwave" },
  "functions" : [
    { "name":"inflowA", "type":"cte", "prms":[{"n":"c", "v":1.0}] }
  ],
  "curves" : [
    { "name":"pmp3", "kind":"pump3", "x":[0,10,20], "y":[2,1,0] }
  ],
  "nodes" : [
    { "name":"J1", "type":"junction", "invert":100, "fulldepth":4, "inflowfunc":"inflowA" },
    { "name":"O1", "type":"outfall", "invert":96, "outfallkind":"free" }
  ],
  "links" : [
    { "name":"C1", "type":"conduit", "nodeup":"J1", "nodedn":"O1",
      "shape":"circular", "geom":[1.0], "length":400, "rough":0.01 }
  ]
}`

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. read sim file and derive network")

	fn := filepath.Join(os.TempDir(), "godrain_read01.sim")
	err := os.WriteFile(fn, []byte(simJSON), 0644)
	if err != nil {
		tst.Errorf("cannot write temporary sim file:\n%v", err)
		return
	}
	defer os.Remove(fn)

	sim, err := ReadSim(fn)
	if err != nil {
		tst.Errorf("ReadSim failed:\n%v", err)
		return
	}

	chk.IntAssert(len(sim.Nodes), 2)
	chk.IntAssert(len(sim.Links), 1)
	chk.IntAssert(sim.Links[0].IdxUp, 0)
	chk.IntAssert(sim.Links[0].IdxDn, 1)
	chk.Float64(tst, "courant default", 1e-15, sim.Routing.CourantFactor, 0.75)
	chk.Float64(tst, "headtol default", 1e-15, sim.Routing.HeadTol, DefaultHeadTol)
	chk.IntAssert(sim.Routing.MaxTrials, DefaultMaxTrials)
	chk.Float64(tst, "barrels default", 1e-15, float64(sim.Links[0].Barrels), 1)

	// the conduit got a real cross section
	xs := sim.Links[0].Xs
	if xs == nil {
		tst.Errorf("conduit cross section was not built")
		return
	}
	chk.Float64(tst, "yFull", 1e-15, xs.YFull, 1.0)

	// the inflow function resolves and returns the constant value
	io.Pf("inflow(0) = %v\n", sim.Nodes[0].LateralInflow(0))
	chk.Float64(tst, "inflow", 1e-15, sim.Nodes[0].LateralInflow(1234.0), 1.0)
}

func Test_read02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read02. validation failures")

	// equal endpoints
	sim := &Simulation{
		Nodes: []*NodeData{
			{Name: "J1", Type: "junction", FullDepth: 4},
		},
		Links: []*LinkData{
			{Name: "C1", Type: "conduit", NodeUp: "J1", NodeDn: "J1",
				Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.01},
		},
	}
	if err := sim.Derive(); err == nil {
		tst.Errorf("equal endpoints must fail validation")
		return
	}

	// unknown cross-section shape
	sim = &Simulation{
		Nodes: []*NodeData{
			{Name: "J1", Type: "junction", FullDepth: 4},
			{Name: "O1", Type: "outfall", InvertElev: 1},
		},
		Links: []*LinkData{
			{Name: "C1", Type: "conduit", NodeUp: "J1", NodeDn: "O1",
				Shape: "hexagonal", Geom: []float64{1}, Length: 100, Rough: 0.01},
		},
	}
	if err := sim.Derive(); err == nil {
		tst.Errorf("unknown shape must fail validation")
		return
	}

	// divider pointing at a missing link
	sim = &Simulation{
		Nodes: []*NodeData{
			{Name: "D1", Type: "divider", DividerKind: "cutoff", DivertedLink: "none", FullDepth: 4},
			{Name: "O1", Type: "outfall"},
		},
		Links: []*LinkData{
			{Name: "C1", Type: "conduit", NodeUp: "D1", NodeDn: "O1",
				Shape: "circular", Geom: []float64{1}, Length: 100, Rough: 0.01},
		},
	}
	if err := sim.Derive(); err == nil {
		tst.Errorf("unresolved diverted link must fail validation")
	}
}
