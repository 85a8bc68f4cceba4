// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"

	"github.com/cpmech/godrain/roots"
)

// KinWave routes flows with the kinematic wave approximation over the
// topologically sorted network: each conduit holds normal flow and
// attenuates through its storage continuity; backwater is ignored
type KinWave struct {
	d *Domain
}

// set factory
func init() {
	allocators["kinwave"] = func(d *Domain) Solver {
		return &KinWave{d: d}
	}
}

// TimeStep returns the fixed step; kinematic routing has no Courant search
func (o *KinWave) TimeStep(fixedStep float64) float64 { return fixedStep }

// Step routes every link once in topological order
func (o *KinWave) Step(dt float64) error {
	d := o.d

	// node inflows restart from the lateral flows
	for _, n := range d.Nodes {
		n.Inflow = math.Max(n.NewLatFlow, 0)
		n.Outflow = 0
		n.Overflow = 0
		n.Converged = true
	}

	for _, j := range d.SortedLinks {
		l := d.Links[j]
		up := d.Nodes[l.Data.IdxUp]

		// available inflow, reduced by an upstream divider
		qIn := up.Inflow - up.Outflow
		if qIn < 0 {
			qIn = 0
		}
		if up.Type == Divider {
			qDiv := d.dividerFlow(l.Data.IdxUp, up.Inflow)
			if j == up.Data.DivertedIdx {
				qIn = qDiv
			} else {
				qIn = up.Inflow - qDiv
			}
		}

		var qOut float64
		switch l.Type {
		case Conduit:
			qOut = o.routeConduit(l, qIn, dt)
		case Pump:
			qOut = d.pumpFlow(l)
		case Orifice:
			qOut = math.Max(d.orificeFlow(l), 0)
		case Weir:
			qOut = math.Max(d.weirFlow(l), 0)
		case Outlet:
			qOut = math.Max(d.outletFlow(l), 0)
		}

		l.LastFlow = l.NewFlow
		l.NewFlow = qOut
		l.OldFlow = qOut
		up.Outflow += qIn
		d.Nodes[l.Data.IdxDn].Inflow += qOut
	}

	// node bookkeeping: storages integrate their continuity, junction
	// depths echo their deepest adjoining conduit
	for i, n := range d.Nodes {
		switch n.Type {
		case Storage:
			o.updateStorage(i, dt)
		case Outfall:
			d.setOutfallDepth(i)
		default:
			y := 0.0
			for _, j := range d.Adj[i] {
				l := d.Links[j]
				if l.Type == Conduit && l.NewDepth > y {
					y = l.NewDepth
				}
			}
			n.NewDepth = math.Min(y, n.MaxDepth())
			n.NewVolume = d.nodeVolume(n, n.NewDepth)
		}
		n.OldDepth = n.NewDepth
		n.OldVolume = n.NewVolume
	}
	return nil
}

// routeConduit advances the conduit storage continuity by dt and returns
// the new outflow. The outflow area solves
//   a - aOld = dt/L (qIn - beta sqrt(S) Sf(a))
// by the bracketed Newton method; inflow beyond the full-flow capacity
// passes through unattenuated.
func (o *KinWave) routeConduit(l *Link, qIn, dt float64) float64 {

	qExcess := 0.0
	if l.QFull > 0 && qIn > l.QFull*l.Barrels {
		qExcess = qIn - l.QFull*l.Barrels
		qIn = l.QFull * l.Barrels
	}
	qb := qIn / l.Barrels

	if l.Slope <= 0 {
		// kinematic conduits need a positive slope; pass flow through
		l.NewDepth = l.Xs.YFull
		l.NewFlow = qIn
		return qIn + qExcess
	}

	conv := l.Beta * math.Sqrt(l.Slope)
	aOld := l.AOld

	f := func(a float64) (fv, dfv float64) {
		fv = a - aOld - dt/l.Length*(qb-conv*l.Xs.SofA(a))
		dfv = 1.0 + dt/l.Length*conv*l.Xs.DSdA(a)
		return
	}
	aGuess := aOld
	if aGuess < fudge {
		aGuess = math.Min(l.Xs.AofS(qb/conv), l.Xs.AFull)
	}
	a, _, err := roots.Newton(aGuess, 0, l.Xs.AFull, 0.0001*l.Xs.AFull, f)
	if err != nil || a < 0 {
		a = math.Min(l.Xs.AofS(qb/conv), l.Xs.AFull)
	}

	qOut := conv * l.Xs.SofA(a)
	l.AOld = a
	l.NewDepth = l.Xs.YofA(a)
	l.NewVolume = a * l.Length * l.Barrels
	l.OldVolume = l.NewVolume
	return qOut*l.Barrels + qExcess
}

// updateStorage integrates a storage unit's continuity and inverts its
// volume relation for the new depth
func (o *KinWave) updateStorage(i int, dt float64) {
	d := o.d
	n := d.Nodes[i]

	vNew := n.OldVolume + (n.Inflow-n.Outflow-d.storageSeepage(n)-n.LossRate)*dt
	if vNew < 0 {
		vNew = 0
	}

	// flooded storage spills the excess
	yMax := n.MaxDepth()
	vMax := d.storageVolume(n, yMax)
	if vNew > vMax {
		n.Overflow = (vNew - vMax) / dt
		n.NewDepth = yMax
		n.NewVolume = vMax
		return
	}

	// invert the volume relation by bracketed Newton on the depth
	f := func(y float64) (fv, dfv float64) {
		fv = d.storageVolume(n, y) - vNew
		dfv = math.Max(d.storageArea(n, y), fudge)
		return
	}
	y, _, err := roots.Newton(n.NewDepth, 0, yMax, 1e-6, f)
	if err != nil || y < 0 {
		y = n.NewDepth
	}
	n.NewDepth = y
	n.NewVolume = vNew
}
