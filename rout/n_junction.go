// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// setNodeDepth updates the depth of one non-outfall node from the flows
// and surface areas assembled during the link sweep, and flags convergence
func (o *Domain) setNodeDepth(i int, dt float64) {

	n := o.Nodes[i]
	yLast := n.NewDepth
	yMax := n.MaxDepth()
	canPond := n.PondedArea > 0

	// net inflow including lateral flow and losses
	qNet := n.Inflow - n.Outflow - n.LossRate - o.storageSeepage(n)

	// surface area: link contributions plus storage geometry
	area := n.SurfArea
	if n.Type == Storage {
		area += o.storageArea(n, yLast)
	}
	if area < o.Sim.Routing.MinSurfArea {
		area = o.Sim.Routing.MinSurfArea
	}
	if canPond && yLast > n.FullDepth {
		area = n.PondedArea
	}

	// pressurised junction: Newton step on the conduit dq/dh alone
	var dy float64
	if n.Type == Junction && o.isSurcharged(i, yLast) {
		denom := n.SumDqDh
		if denom < fudge {
			denom = fudge
		}
		dy = qNet / denom
		yNew := yLast + dy
		yCrown := n.CrownElev - n.InvertElev
		if yNew < yCrown {
			// dropping below the crown leaves the pressurised regime
			yNew = yCrown - fudge
		}
		n.NewDepth = math.Min(yNew, yMax)
	} else {
		denom := area + dt*n.SumDqDh
		if denom < fudge {
			denom = fudge
		}
		dy = dt * qNet / denom
		yNew := yLast + dy
		if yNew < 0 {
			yNew = 0
		}
		n.NewDepth = math.Min(yNew, yMax)
	}

	// flooding: excess volume above the rim is lost unless ponded
	n.Overflow = 0
	if n.NewDepth >= yMax && dy > 0 && qNet > 0 {
		if !canPond {
			n.Overflow = qNet - (yMax-yLast)*area/dt
			if n.Overflow < 0 {
				n.Overflow = 0
			}
		}
	}

	n.DYdT = (n.NewDepth - n.OldDepth) / dt
	n.NewVolume = o.nodeVolume(n, n.NewDepth)
	n.Converged = math.Abs(n.NewDepth-yLast) <= o.Sim.Routing.HeadTol
}

// isSurcharged tells whether the Extran surcharge algorithm applies: the
// junction is above its crown and every adjoining conduit is full somewhere
func (o *Domain) isSurcharged(i int, y float64) bool {
	if o.Sim.Routing.Surcharge != "extran" {
		return false
	}
	n := o.Nodes[i]
	if n.InvertElev+y < n.CrownElev {
		return false
	}
	found := false
	for _, j := range o.Adj[i] {
		l := o.Links[j]
		if l.Type != Conduit {
			continue
		}
		found = true
		if l.FullState == NeitherEndFull {
			return false
		}
	}
	return found
}

// nodeVolume returns the stored volume of a node at depth y. Junction
// shafts store only their ponded volume; storage units integrate their
// area relation.
func (o *Domain) nodeVolume(n *Node, y float64) float64 {
	switch n.Type {
	case Storage:
		return o.storageVolume(n, y)
	default:
		if n.PondedArea > 0 && y > n.FullDepth {
			return (y - n.FullDepth) * n.PondedArea
		}
		return 0
	}
}

// storageSeepage returns the exfiltration rate through a storage bed
func (o *Domain) storageSeepage(n *Node) float64 {
	if n.Type != Storage || n.Data.SeepRate <= 0 || n.NewDepth <= 0 {
		return 0
	}
	return n.Data.SeepRate * o.storageArea(n, n.NewDepth)
}
