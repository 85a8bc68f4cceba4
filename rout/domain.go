// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rout implements hydraulic flow routing through drainage networks:
// a dynamic wave solver based on Picard iterations over the coupled
// continuity and momentum equations, plus kinematic wave and steady flow
// alternatives sharing the same network model
package rout

import (
	"math"

	"github.com/cpmech/godrain/inp"
	"github.com/cpmech/godrain/xsect"
	"github.com/cpmech/gosl/chk"
)

// node types
const (
	Junction = iota
	Outfall
	Storage
	Divider
)

// link types
const (
	Conduit = iota
	Pump
	Orifice
	Weir
	Outlet
)

// flow classes of a conduit
const (
	SubCritical = iota // subcritical flow
	SupCritical        // supercritical flow
	UpCritical         // critical depth control at upstream end
	DnCritical         // critical depth control at downstream end
	UpDry              // upstream end dry
	DnDry              // downstream end dry
	DryLink            // both ends dry
)

// full states of a conduit
const (
	NeitherEndFull = iota
	UpstreamFull
	DownstreamFull
	BothEndsFull
)

// small depth/area tolerance (ft, ft2)
const fudge = 0.0001

// flow tolerance (cfs)
const flowTol = 0.00001

// largest allowed velocity (ft/s)
const maxVelocity = 50.0

// Gravity is the gravitational acceleration in ft/s2
const Gravity = xsect.Gravity

// Node holds the mutable state of one network node
type Node struct {

	// definition
	Data       *inp.NodeData // input record
	Type       int           // node type
	InvertElev float64       // invert elevation (ft)
	FullDepth  float64       // depth to ground/rim (ft)
	SurDepth   float64       // extra surcharge depth (ft)
	PondedArea float64       // ponded surface area (ft2)
	CrownElev  float64       // highest conduit crown elevation (ft)

	// state
	OldDepth   float64 // depth at start of step (ft)
	NewDepth   float64 // current iterate of depth (ft)
	OldVolume  float64 // volume at start of step (ft3)
	NewVolume  float64 // current volume (ft3)
	OldLatFlow float64 // lateral inflow at start of step (cfs)
	NewLatFlow float64 // lateral inflow now (cfs)
	Inflow     float64 // total inflow this iteration (cfs)
	Outflow    float64 // total outflow this iteration (cfs)
	Overflow   float64 // flooding overflow (cfs)
	LossRate   float64 // evaporation + exfiltration (cfs)

	// iteration workspace
	SurfArea    float64 // assembled surface area (ft2)
	OldSurfArea float64 // surface area of previous step (ft2)
	SumDqDh     float64 // sum of dq/dh from adjoining links (ft2/s)
	DYdT        float64 // rate of change of depth (ft/s)
	Converged   bool    // node converged this step
}

// Head returns the current hydraulic head (ft)
func (o *Node) Head() float64 { return o.InvertElev + o.NewDepth }

// MaxDepth returns the depth at which flooding starts (ft)
func (o *Node) MaxDepth() float64 { return o.FullDepth + o.SurDepth }

// Link holds the mutable state of one network link
type Link struct {

	// definition
	Data     *inp.LinkData // input record
	Type     int           // link type
	Up, Dn   int           // node indices (after any slope reversal)
	OffsetUp float64       // invert offset above upstream node invert (ft)
	OffsetDn float64       // invert offset above downstream node invert (ft)
	Xs       *xsect.Xsect  // cross section (nil for pumps/outlets)

	// conduit constants
	Length      float64 // conduit length (ft)
	Slope       float64 // conduit slope (always >= 0 after reversal)
	Beta        float64 // phi/n conveyance factor
	RoughFactor float64 // g (n/phi)^2 friction factor
	QFull       float64 // Manning full flow per barrel (cfs)
	Barrels     float64 // number of barrels
	HasLosses   bool    // any minor loss coefficient present
	Culv        *culvert // culvert inlet-control data (nil if none)

	// state
	OldFlow   float64 // flow at start of step (cfs)
	NewFlow   float64 // current iterate of flow (cfs)
	LastFlow  float64 // flow of previous iteration (cfs)
	OldDepth  float64 // midpoint depth at start of step (ft)
	NewDepth  float64 // current midpoint depth (ft)
	OldVolume float64 // stored volume at start of step (ft3)
	NewVolume float64 // current stored volume (ft3)
	AOld      float64 // midpoint area of previous time step (ft2)

	// regulator state
	Setting       float64 // current setting in [0,1]; a pump keeps targets above 1
	TargetSetting float64 // setting requested by controls

	// iteration results
	SurfArea1 float64 // surface area assigned to upstream node (ft2)
	SurfArea2 float64 // surface area assigned to downstream node (ft2)
	Froude    float64 // Froude number
	DqDh      float64 // derivative of flow w.r.t. head (ft2/s)
	Direction int     // +1 or -1 relative to input node order
	FlowClass int     // flow class
	FullState int     // full state

	// flags
	Bypassed      bool // skipped in remaining iterations of this step
	NormalFlowLtd bool // normal flow limit applied
	InletCtrl     bool // culvert inlet control applied
	CapacityLtd   bool // flowing at full capacity
}

// Domain is the explicit context owning every node, link and buffer of one
// simulation. All allocation happens in Open; Execute never allocates.
type Domain struct {

	// input
	Sim *inp.Simulation // project data

	// network
	Nodes []*Node // all nodes
	Links []*Link // all links
	Adj   [][]int // link indices adjoining each node

	// external collaborators (optional; defaults read the project data)
	LatInflow     func(node int, t float64) float64                    // lateral inflow
	Losses        func(node int, t, depth float64) (evap, seep float64) // node losses
	TargetSetting func(link int) float64                               // control settings

	// routing order for kinematic/steady models
	SortedLinks []int

	// solver
	solver Solver  // active routing solver
	Time   float64 // current simulation time (s)

	// iteration workspace (per-worker partial sums for parallel sweeps)
	nWorkers  int
	partSurf  [][]float64 // [worker][node] surface area partials
	partDqdh  [][]float64 // [worker][node] dqdh partials
	partQin   [][]float64 // [worker][node] inflow partials
	partQout  [][]float64 // [worker][node] outflow partials

	// statistics
	Warnings     int     // accumulated warnings
	NonConverged int     // steps that failed to converge
	Steps        int     // routing steps taken
	TotInflow    float64 // total lateral inflow volume (ft3)
	TotOutflow   float64 // total outfall discharge volume (ft3)
	TotOverflow  float64 // total flooding volume (ft3)
	TotLosses    float64 // total evaporation/exfiltration volume (ft3)
	InitVolume   float64 // stored volume at open (ft3)
}

// NumNodes returns the number of nodes
func (o *Domain) NumNodes() int { return len(o.Nodes) }

// NumLinks returns the number of links
func (o *Domain) NumLinks() int { return len(o.Links) }

// newDomain builds the runtime network from the project
func newDomain(sim *inp.Simulation) (o *Domain, err error) {

	o = new(Domain)
	o.Sim = sim

	// nodes
	o.Nodes = make([]*Node, len(sim.Nodes))
	for i, nd := range sim.Nodes {
		n := &Node{
			Data:       nd,
			InvertElev: nd.InvertElev,
			FullDepth:  nd.FullDepth,
			SurDepth:   nd.SurDepth,
			PondedArea: nd.PondedArea,
		}
		switch nd.Type {
		case "junction":
			n.Type = Junction
		case "outfall":
			n.Type = Outfall
		case "storage":
			n.Type = Storage
		case "divider":
			n.Type = Divider
		}
		n.OldDepth = nd.InitDepth
		n.NewDepth = nd.InitDepth
		o.Nodes[i] = n
	}

	// links
	o.Links = make([]*Link, len(sim.Links))
	for j, ld := range sim.Links {
		l := &Link{
			Data:      ld,
			Up:        ld.IdxUp,
			Dn:        ld.IdxDn,
			OffsetUp:  ld.OffsetUp,
			OffsetDn:  ld.OffsetDn,
			Xs:        ld.Xs,
			Direction: 1,
			Setting:   ld.InitSetting,
			Barrels:   1,
		}
		l.TargetSetting = l.Setting
		switch ld.Type {
		case "conduit":
			l.Type = Conduit
			l.Setting = 1
			l.TargetSetting = 1
			err = o.setConduitParams(l)
			if err != nil {
				return nil, err
			}
		case "pump":
			l.Type = Pump
		case "orifice":
			l.Type = Orifice
		case "weir":
			l.Type = Weir
		case "outlet":
			l.Type = Outlet
		}
		l.OldFlow = ld.InitFlow
		l.NewFlow = ld.InitFlow
		o.Links[j] = l
	}

	// adjacency lists
	o.Adj = make([][]int, len(o.Nodes))
	for j, l := range o.Links {
		o.Adj[l.Up] = append(o.Adj[l.Up], j)
		o.Adj[l.Dn] = append(o.Adj[l.Dn], j)
	}

	// crown elevations and default full depths
	o.setCrownElevs()

	// initial volumes
	for _, n := range o.Nodes {
		n.OldVolume = o.nodeVolume(n, n.OldDepth)
		n.NewVolume = n.OldVolume
		o.InitVolume += n.OldVolume
	}
	for _, l := range o.Links {
		if l.Type == Conduit {
			l.OldDepth = l.Xs.YofA(o.initConduitArea(l))
			l.NewDepth = l.OldDepth
			l.OldVolume = o.initConduitArea(l) * l.Length * l.Barrels
			l.NewVolume = l.OldVolume
			l.AOld = o.initConduitArea(l)
			o.InitVolume += l.OldVolume
		}
	}

	// default collaborators read the project records
	o.LatInflow = func(node int, t float64) float64 {
		return sim.Nodes[node].LateralInflow(t)
	}
	o.TargetSetting = func(link int) float64 {
		return o.Links[link].TargetSetting
	}

	// per-worker partial sums
	o.nWorkers = sim.Routing.NumThreads
	if o.nWorkers < 1 {
		o.nWorkers = 1
	}
	nn := len(o.Nodes)
	o.partSurf = allocPartials(o.nWorkers, nn)
	o.partDqdh = allocPartials(o.nWorkers, nn)
	o.partQin = allocPartials(o.nWorkers, nn)
	o.partQout = allocPartials(o.nWorkers, nn)
	return
}

func allocPartials(nw, nn int) [][]float64 {
	p := make([][]float64, nw)
	for i := range p {
		p[i] = make([]float64, nn)
	}
	return p
}

// setConduitParams computes the conduit constants, reversing the link when
// its slope is negative so that Slope is always non-negative
func (o *Domain) setConduitParams(l *Link) (err error) {
	ld := l.Data
	l.Length = ld.Length
	l.Barrels = float64(ld.Barrels)
	if l.Xs.Type == xsect.Irregular {
		l.Length *= l.Xs.LengthFactor
	}

	z1 := o.Nodes[l.Up].InvertElev + l.OffsetUp
	z2 := o.Nodes[l.Dn].InvertElev + l.OffsetDn
	if z1 < z2 {
		// reverse so flow convention runs down the slope
		l.Up, l.Dn = l.Dn, l.Up
		l.OffsetUp, l.OffsetDn = l.OffsetDn, l.OffsetUp
		z1, z2 = z2, z1
		l.Direction = -1
	}
	l.Slope = (z1 - z2) / l.Length

	n := ld.Rough
	l.Beta = phi / n
	l.RoughFactor = Gravity * (n / phi) * (n / phi)
	if l.Slope > 0 {
		l.QFull = l.Beta * l.Xs.SofA(l.Xs.AFull) * math.Sqrt(l.Slope)
	}
	l.HasLosses = ld.KInlet > 0 || ld.KOutlet > 0 || ld.KAvg > 0

	// culvert inlet control
	if ld.CulvCode > 0 {
		l.Culv, err = newCulvert(ld.CulvCode, l.Xs)
		if err != nil {
			return chk.Err("conduit %q: %v", ld.Name, err)
		}
	}
	return
}

// phi is the Manning equation constant for US units
const phi = 1.486

// initConduitArea returns the initial midpoint flow area of a conduit
func (o *Domain) initConduitArea(l *Link) float64 {
	if l.Data.InitFlow <= 0 || l.Slope <= 0 {
		return 0
	}
	a := l.Xs.AofS(l.Data.InitFlow / l.Barrels / (l.Beta * math.Sqrt(l.Slope)))
	return a
}

// setCrownElevs propagates conduit crown elevations onto nodes and fills
// default junction full depths from them
func (o *Domain) setCrownElevs() {
	for _, n := range o.Nodes {
		n.CrownElev = n.InvertElev
	}
	for _, l := range o.Links {
		if l.Type != Conduit {
			continue
		}
		z1 := o.Nodes[l.Up].InvertElev + l.OffsetUp + l.Xs.YFull
		z2 := o.Nodes[l.Dn].InvertElev + l.OffsetDn + l.Xs.YFull
		if z1 > o.Nodes[l.Up].CrownElev {
			o.Nodes[l.Up].CrownElev = z1
		}
		if z2 > o.Nodes[l.Dn].CrownElev {
			o.Nodes[l.Dn].CrownElev = z2
		}
	}
	for _, n := range o.Nodes {
		if n.FullDepth == 0 {
			n.FullDepth = n.CrownElev - n.InvertElev
		}
	}
}
