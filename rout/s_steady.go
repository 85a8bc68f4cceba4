// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// SteadyFlow translates inflows instantaneously through the sorted network:
// every conduit carries its inflow at normal depth with no attenuation
type SteadyFlow struct {
	d *Domain
}

// set factory
func init() {
	allocators["steady"] = func(d *Domain) Solver {
		return &SteadyFlow{d: d}
	}
}

// TimeStep returns the fixed step
func (o *SteadyFlow) TimeStep(fixedStep float64) float64 { return fixedStep }

// Step propagates the current inflows through the network
func (o *SteadyFlow) Step(dt float64) error {
	d := o.d

	for _, n := range d.Nodes {
		n.Inflow = math.Max(n.NewLatFlow, 0)
		n.Outflow = 0
		n.Overflow = 0
		n.Converged = true
	}

	for _, j := range d.SortedLinks {
		l := d.Links[j]
		up := d.Nodes[l.Data.IdxUp]

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

		l.LastFlow = l.NewFlow
		l.NewFlow = qIn
		l.OldFlow = qIn
		if l.Type == Conduit {
			l.NewDepth = d.conduitNormalDepth(l, qIn/l.Barrels)
			a := l.Xs.AofY(l.NewDepth)
			l.NewVolume = a * l.Length * l.Barrels
			l.OldVolume = l.NewVolume
		}
		up.Outflow += qIn
		d.Nodes[l.Data.IdxDn].Inflow += qIn
	}

	for i, n := range d.Nodes {
		switch n.Type {
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
