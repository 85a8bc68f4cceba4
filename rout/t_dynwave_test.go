// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
	"testing"

	"github.com/cpmech/godrain/ana"
	"github.com/cpmech/godrain/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// openSim derives a programmatic project and opens the routing core
func openSim(tst *testing.T, sim *inp.Simulation) *Domain {
	if err := sim.Derive(); err != nil {
		tst.Fatalf("cannot derive project:\n%v", err)
	}
	dom, err := Open(sim)
	if err != nil {
		tst.Fatalf("cannot open project:\n%v", err)
	}
	return dom
}

// advance runs the simulation to tf with the given fixed step
func advance(tst *testing.T, dom *Domain, tf, dt float64) {
	for dom.Time < tf {
		step := dom.RoutingStep(dt)
		if dom.Time+step > tf {
			step = tf - dom.Time
		}
		if err := dom.Execute(step); err != nil {
			tst.Fatalf("Execute failed at t=%g:\n%v", dom.Time, err)
		}
	}
}

func Test_dynwave01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave01. single pipe reaches uniform flow")

	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
		Functions: inp.FuncsData{
			{Name: "steady1", Type: "cte", Prms: fun.Prms{&fun.Prm{N: "c", V: 1.0}}},
		},
		Nodes: []*inp.NodeData{
			{Name: "J1", Type: "junction", InvertElev: 100, FullDepth: 4, InflowFunc: "steady1"},
			{Name: "O1", Type: "outfall", InvertElev: 96, OutfallKind: "free"},
		},
		Links: []*inp.LinkData{
			{Name: "C1", Type: "conduit", NodeUp: "J1", NodeDn: "O1",
				Shape: "circular", Geom: []float64{1.0}, Length: 400, Rough: 0.01},
		},
	}
	dom := openSim(tst, sim)
	defer dom.Close()

	advance(tst, dom, 3600, 30)

	// flow settles at the steady inflow
	chk.Float64(tst, "linkFlow", 0.02, dom.LinkFlow(0), 1.0)

	// depth settles near the Manning normal depth
	var uf ana.PipeUniformFlow
	uf.Init(1.0, 0.01, 0.01)
	yn := uf.NormalDepth(1.0)
	io.Pforan("depth = %v  yn = %v\n", dom.LinkDepth(0), yn)
	chk.Float64(tst, "linkDepth", 0.05*yn+0.01, dom.LinkDepth(0), yn)
}

func Test_dynwave02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave02. two tanks equalise through a bottom orifice")

	diam := math.Sqrt(4.0 / math.Pi) // 1 ft2 opening
	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
		Nodes: []*inp.NodeData{
			{Name: "A", Type: "storage", InvertElev: 0, FullDepth: 12, InitDepth: 10, AConst: 1000},
			{Name: "B", Type: "storage", InvertElev: 0, FullDepth: 12, InitDepth: 0, AConst: 1000},
		},
		Links: []*inp.LinkData{
			{Name: "OR1", Type: "orifice", NodeUp: "A", NodeDn: "B", OrificeKind: "bottom",
				Shape: "circular", Geom: []float64{diam}, Cd: 0.65},
		},
	}
	dom := openSim(tst, sim)
	defer dom.Close()

	advance(tst, dom, 7200, 30)

	// both tanks sit within one inch of the 5 ft equilibrium
	io.Pforan("hA = %v  hB = %v\n", dom.NodeDepth(0), dom.NodeDepth(1))
	chk.Float64(tst, "hA", 1.0/12.0, dom.NodeDepth(0), 5.0)
	chk.Float64(tst, "hB", 1.0/12.0, dom.NodeDepth(1), 5.0)

	// the analytic equalisation finishes well within the simulated window
	var tt ana.TwoTankOrifice
	tt.Init(1000, 1000, 0.65, 1.0, 10, 0)
	if tt.TimeToEqualise(2.0/12.0) > 7200 {
		tst.Errorf("analytic equalisation slower than expected")
	}
}

func Test_dynwave03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave03. v-notch weir drawdown follows the analytic trace")

	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
		Nodes: []*inp.NodeData{
			{Name: "R", Type: "storage", InvertElev: 0, FullDepth: 3, InitDepth: 2, AConst: 500},
			{Name: "O", Type: "outfall", InvertElev: -1, OutfallKind: "free"},
		},
		Links: []*inp.LinkData{
			// 90-degree notch: triangular opening twice as wide as high
			{Name: "W1", Type: "weir", NodeUp: "R", NodeDn: "O", WeirKind: "vnotch",
				OffsetUp: 1.0, Shape: "triangular", Geom: []float64{1.0, 2.0}, Cd: 0.58},
		},
	}
	dom := openSim(tst, sim)
	defer dom.Close()

	var dd ana.VnotchDrawdown
	dd.Init(500, 0.58, math.Pi/2.0, 1.0, false)

	// compare the head over the crest against the analytic drawdown
	checks := []float64{600, 1800, 3600}
	k := 0
	for dom.Time < 3600 {
		if err := dom.Execute(2); err != nil {
			tst.Fatalf("Execute failed:\n%v", err)
		}
		if k < len(checks) && dom.Time >= checks[k] {
			head := dom.NodeDepth(0) - 1.0
			ref := dd.Calc(dom.Time)
			io.Pf("t=%6.0f  head=%8.5f  ref=%8.5f\n", dom.Time, head, ref)
			chk.Float64(tst, io.Sf("head(t=%g)", dom.Time), 0.03*ref+0.005, head, ref)
			k++
		}
	}
}

func Test_dynwave04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave04. type 3 pump interpolates its head-flow curve")

	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
		Curves: inp.CurvesData{
			{Name: "p3", Kind: "pump3", X: []float64{0, 10, 20}, Y: []float64{2, 1, 0}},
		},
		Nodes: []*inp.NodeData{
			{Name: "WW", Type: "storage", InvertElev: 0, FullDepth: 10, InitDepth: 5, AConst: 1e6},
			{Name: "RC", Type: "outfall", InvertElev: 0, OutfallKind: "fixed", StageElev: 10},
		},
		Links: []*inp.LinkData{
			{Name: "P1", Type: "pump", NodeUp: "WW", NodeDn: "RC", PumpCurve: "p3"},
		},
	}
	dom := openSim(tst, sim)
	defer dom.Close()

	advance(tst, dom, 600, 30)

	// 5 ft of static lift interpolates to 1.5 cfs
	chk.Float64(tst, "pump flow", 0.02, dom.LinkFlow(0), 1.5)

	// a zero setting stops the pump entirely
	dom.Links[0].TargetSetting = 0
	advance(tst, dom, 660, 30)
	chk.Float64(tst, "stopped pump", 1e-12, dom.LinkFlow(0), 0.0)
}

func Test_dynwave05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave05. flap gate blocks reverse flow")

	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
		Nodes: []*inp.NodeData{
			{Name: "LO", Type: "storage", InvertElev: 0, FullDepth: 10, InitDepth: 1, AConst: 1000},
			{Name: "HI", Type: "storage", InvertElev: 0, FullDepth: 10, InitDepth: 8, AConst: 1000},
		},
		Links: []*inp.LinkData{
			{Name: "OR1", Type: "orifice", NodeUp: "LO", NodeDn: "HI", OrificeKind: "side",
				Shape: "circular", Geom: []float64{0.5}, Cd: 0.6, FlapGate: true},
		},
	}
	dom := openSim(tst, sim)
	defer dom.Close()

	advance(tst, dom, 600, 30)

	// the adverse head would drive reverse flow; the gate holds it at zero
	chk.Float64(tst, "gated flow", 1e-12, dom.LinkFlow(0), 0.0)
	chk.Float64(tst, "lo depth", 1e-6, dom.NodeDepth(0), 1.0)
}

// newGrid builds a looped grid of nr x nc junctions draining to one outfall
func newGrid(nr, nc int) *inp.Simulation {
	sim := &inp.Simulation{
		Routing: inp.RoutingData{Model: inp.DynWave},
	}
	name := func(r, c int) string { return io.Sf("J%d%d", r, c) }
	for r := 0; r < nr; r++ {
		for c := 0; c < nc; c++ {
			nd := &inp.NodeData{
				Name:       name(r, c),
				Type:       "junction",
				InvertElev: 100.0 - 3.0*float64(r) - 3.0*float64(c),
				FullDepth:  6,
			}
			if r == nr-1 && c == nc-1 {
				nd.Type = "outfall"
				nd.OutfallKind = "free"
			}
			sim.Nodes = append(sim.Nodes, nd)
		}
	}
	addPipe := func(nm, up, dn string) {
		sim.Links = append(sim.Links, &inp.LinkData{
			Name: nm, Type: "conduit", NodeUp: up, NodeDn: dn,
			Shape: "circular", Geom: []float64{1.5}, Length: 200, Rough: 0.013,
		})
	}
	for r := 0; r < nr; r++ {
		for c := 0; c+1 < nc; c++ {
			addPipe(io.Sf("H%d%d", r, c), name(r, c), name(r, c+1))
		}
	}
	for r := 0; r+1 < nr; r++ {
		for c := 0; c < nc-2; c++ {
			addPipe(io.Sf("V%d%d", r, c), name(r, c), name(r+1, c))
		}
	}
	return sim
}

func Test_dynwave06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("dynwave06. loopy grid under a square wave stays conservative")

	sim := newGrid(4, 5)
	dom := openSim(tst, sim)
	defer dom.Close()

	// square-wave inflow at the head of the grid, supplied through the
	// external inflow callback
	dom.LatInflow = func(node int, t float64) float64 {
		if node != 0 {
			return 0
		}
		if math.Mod(t, 1200.0) < 600.0 {
			return 3.0
		}
		return 0
	}

	advance(tst, dom, 7200, 30)

	io.Pforan("steps = %d  nonconverged = %d  continuity error = %.4f\n",
		dom.Steps, dom.NonConverged, dom.ContinuityError())

	// every step either converged or was counted as non-converged
	if dom.Steps <= 0 {
		tst.Errorf("no steps were taken")
		return
	}
	if dom.NonConverged < 0 || dom.NonConverged > dom.Steps {
		tst.Errorf("inconsistent convergence bookkeeping")
		return
	}

	// volume continuity holds within a few percent
	if math.Abs(dom.ContinuityError()) > 0.03 {
		tst.Errorf("continuity error too large: %g", dom.ContinuityError())
	}

	// flows leave through the outfall in the canonical direction; the
	// last horizontal pipe of the last row feeds the outfall
	qOut := dom.LinkFlow(3*4 + 3)
	if qOut < 0 {
		tst.Errorf("outfall link flows backwards: %g", qOut)
	}
}
