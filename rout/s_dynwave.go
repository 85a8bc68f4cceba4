// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/la"
)

// DynWave solves the coupled continuity and momentum equations with Picard
// iterations (successive approximations) at every routing step
type DynWave struct {
	d *Domain
}

// set factory
func init() {
	allocators["dynwave"] = func(d *Domain) Solver {
		return &DynWave{d: d}
	}
}

// TimeStep returns the adaptive routing step bounded by fixedStep, from
// the Courant condition on every wet conduit and a filling criterion on
// every node
func (o *DynWave) TimeStep(fixedStep float64) float64 {
	d := o.d
	dt := fixedStep

	// Courant condition over conduits carrying significant depth
	for _, l := range d.Links {
		if l.Type != Conduit {
			continue
		}
		y := l.NewDepth
		if y <= 0.1*l.Xs.YFull {
			continue
		}
		a := l.Xs.AofY(y)
		if a < fudge {
			continue
		}
		v := math.Abs(l.NewFlow) / l.Barrels / a
		w := l.Xs.WofY(y)
		yHyd := y
		if w > fudge {
			yHyd = a / w
		}
		c := v + math.Sqrt(Gravity*yHyd)
		if c < fudge {
			continue
		}
		t := d.Sim.Routing.CourantFactor * l.Length / c
		if t < dt {
			dt = t
		}
	}

	// node filling criterion
	for _, n := range d.Nodes {
		if n.Type == Outfall {
			continue
		}
		qNet := math.Abs(n.Inflow - n.Outflow)
		if qNet < fudge || n.FullDepth <= 0 {
			continue
		}
		area := math.Max(n.SurfArea, d.Sim.Routing.MinSurfArea)
		t := 0.5 * area * n.FullDepth / qNet
		if t < dt {
			dt = t
		}
	}

	if dt < d.Sim.Routing.MinVarStep {
		dt = d.Sim.Routing.MinVarStep
	}
	if dt > fixedStep {
		dt = fixedStep
	}
	return dt
}

// Step advances the network state by dt using Picard iterations: a link
// sweep followed by a node sweep, repeated until every node's head change
// falls below the tolerance or the trial limit is reached
func (o *DynWave) Step(dt float64) error {
	d := o.d

	// initialise iterates from the previous step
	for _, l := range d.Links {
		l.LastFlow = l.OldFlow
		l.NewFlow = l.OldFlow
		l.Bypassed = false
		l.InletCtrl = false
		l.NormalFlowLtd = false
		l.CapacityLtd = false
	}
	for _, n := range d.Nodes {
		n.NewDepth = n.OldDepth
		n.Converged = false
		n.Overflow = 0
	}

	converged := false
	for trial := 1; trial <= d.Sim.Routing.MaxTrials; trial++ {

		// link sweep: new flows from the snapshot of node heads
		o.findLinkFlows(dt)

		// node sweep: new depths from the snapshot of link flows
		allOk := o.findNodeDepths(dt)

		if allOk && trial > 1 {
			converged = true
			break
		}

		// next iteration sees the flows just computed
		for _, l := range d.Links {
			if !l.Bypassed {
				l.Bypassed = o.canBypass(l)
			}
			l.LastFlow = l.NewFlow
		}
	}
	if !converged {
		d.NonConverged++
	}

	// capacity-limited conduits
	for _, l := range d.Links {
		if l.Type != Conduit || l.QFull <= 0 {
			continue
		}
		if math.Abs(l.NewFlow)/l.Barrels >= l.QFull-fudge &&
			d.Nodes[l.Up].NewDepth >= d.Nodes[l.Up].FullDepth &&
			d.Nodes[l.Dn].NewDepth >= d.Nodes[l.Dn].FullDepth {
			l.CapacityLtd = true
		}
	}

	// commit the step
	for _, l := range d.Links {
		l.OldFlow = l.NewFlow
		l.OldDepth = l.NewDepth
		l.OldVolume = l.NewVolume
		if l.Type == Conduit {
			l.AOld = l.Xs.AofY(l.NewDepth)
		}
	}
	for _, n := range d.Nodes {
		n.OldDepth = n.NewDepth
		n.OldVolume = n.NewVolume
		n.OldSurfArea = n.SurfArea
	}
	return nil
}

// canBypass tells whether a link may be skipped for the rest of the step:
// its flow barely changed and both of its nodes have converged
func (o *DynWave) canBypass(l *Link) bool {
	d := o.d
	if !d.Nodes[l.Up].Converged || !d.Nodes[l.Dn].Converged {
		return false
	}
	dq := math.Abs(l.NewFlow - l.LastFlow)
	if l.NewFlow != 0 {
		return dq/math.Abs(l.NewFlow) < 0.05
	}
	return dq < flowTol
}

// findLinkFlows runs the link sweep, computing every non-bypassed link's
// flow and reducing the per-worker surface-area, dqdh and flow partials
// into the nodes
func (o *DynWave) findLinkFlows(dt float64) {
	d := o.d
	nw := d.nWorkers

	for w := 0; w < nw; w++ {
		la.VecFill(d.partSurf[w], 0)
		la.VecFill(d.partDqdh[w], 0)
		la.VecFill(d.partQin[w], 0)
		la.VecFill(d.partQout[w], 0)
	}

	sweep := func(w, j0, j1 int) {
		for j := j0; j < j1; j++ {
			l := d.Links[j]
			if l.Bypassed {
				o.accumulateLink(w, l)
				continue
			}
			switch l.Type {
			case Conduit:
				l.NewFlow = d.conduitFlow(l, dt)
			case Pump:
				l.NewFlow = d.pumpFlow(l)
			case Orifice:
				l.NewFlow = d.orificeFlow(l)
			case Weir:
				l.NewFlow = d.weirFlow(l)
			case Outlet:
				l.NewFlow = d.outletFlow(l)
			}
			o.accumulateLink(w, l)
		}
	}

	if nw <= 1 {
		sweep(0, 0, len(d.Links))
	} else {
		var wg sync.WaitGroup
		chunk := (len(d.Links) + nw - 1) / nw
		for w := 0; w < nw; w++ {
			j0 := w * chunk
			j1 := j0 + chunk
			if j1 > len(d.Links) {
				j1 = len(d.Links)
			}
			if j0 >= j1 {
				continue
			}
			wg.Add(1)
			go func(w, j0, j1 int) {
				defer wg.Done()
				sweep(w, j0, j1)
			}(w, j0, j1)
		}
		wg.Wait()
	}

	// deterministic reduction in index order keeps results identical to
	// the serial sweep
	for i, n := range d.Nodes {
		n.SurfArea = 0
		n.SumDqDh = 0
		n.Inflow = n.NewLatFlow
		n.Outflow = 0
		if n.NewLatFlow < 0 {
			n.Inflow = 0
			n.Outflow = -n.NewLatFlow
		}
		for w := 0; w < nw; w++ {
			n.SurfArea += d.partSurf[w][i]
			n.SumDqDh += d.partDqdh[w][i]
			n.Inflow += d.partQin[w][i]
			n.Outflow += d.partQout[w][i]
		}
	}
}

// accumulateLink adds one link's surface-area, dqdh and flow contributions
// into the worker's partial sums
func (o *DynWave) accumulateLink(w int, l *Link) {
	d := o.d
	d.partSurf[w][l.Up] += l.SurfArea1
	d.partSurf[w][l.Dn] += l.SurfArea2
	d.partDqdh[w][l.Up] += l.DqDh
	d.partDqdh[w][l.Dn] += l.DqDh
	q := l.NewFlow
	if q >= 0 {
		d.partQout[w][l.Up] += q
		d.partQin[w][l.Dn] += q
	} else {
		d.partQin[w][l.Up] += -q
		d.partQout[w][l.Dn] += -q
	}
}

// findNodeDepths runs the node sweep and reports whether every node
// converged. Outfall stages resolve after all interior nodes.
func (o *DynWave) findNodeDepths(dt float64) bool {
	d := o.d

	run := func(i0, i1 int) {
		for i := i0; i < i1; i++ {
			if d.Nodes[i].Type == Outfall {
				continue
			}
			d.setNodeDepth(i, dt)
		}
	}

	if d.nWorkers <= 1 {
		run(0, len(d.Nodes))
	} else {
		var wg sync.WaitGroup
		chunk := (len(d.Nodes) + d.nWorkers - 1) / d.nWorkers
		for w := 0; w < d.nWorkers; w++ {
			i0 := w * chunk
			i1 := i0 + chunk
			if i1 > len(d.Nodes) {
				i1 = len(d.Nodes)
			}
			if i0 >= i1 {
				continue
			}
			wg.Add(1)
			go func(i0, i1 int) {
				defer wg.Done()
				run(i0, i1)
			}(i0, i1)
		}
		wg.Wait()
	}

	// outfalls update last so they see the interior heads of this sweep
	for i, n := range d.Nodes {
		if n.Type == Outfall {
			d.setOutfallDepth(i)
		}
	}

	for _, n := range d.Nodes {
		if !n.Converged {
			return false
		}
	}
	return true
}
