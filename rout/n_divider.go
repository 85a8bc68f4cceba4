// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// dividerFlow returns the portion of the total inflow qIn diverted into the
// divider's diverted link. Dividers act only under kinematic routing; the
// dynamic wave solver treats them as junctions.
func (o *Domain) dividerFlow(i int, qIn float64) float64 {

	n := o.Nodes[i]
	nd := n.Data
	if qIn <= nd.QMin {
		return 0
	}

	switch nd.DividerKind {

	case "cutoff":
		return qIn - nd.QMin

	case "overflow":
		// everything above the non-diverted capacity spills over
		return qIn - nd.QMin

	case "tabular":
		return math.Min(nd.FlowTbl.Lookup(qIn), qIn)

	case "weir":
		// linear-in-head weir behaviour between qMin and the flow that
		// fills the weir opening
		qMax := nd.DWeirCoeff * math.Pow(nd.DWeirDepth, 1.5)
		qExcess := qIn - nd.QMin
		f := qExcess / math.Max(qMax-nd.QMin, fudge)
		if f >= 1 {
			return qExcess
		}
		return qExcess * math.Pow(f, 0.5)
	}
	return 0
}

// validateDividers checks that every divider has exactly two outflow links,
// one of them its diverted link
func (o *Domain) validateDividers() error {
	for i, n := range o.Nodes {
		if n.Type != Divider {
			continue
		}
		nOut := 0
		divertedLeaves := false
		for _, j := range o.Adj[i] {
			l := o.Links[j]
			if l.Data.IdxUp == i {
				nOut++
				if j == n.Data.DivertedIdx {
					divertedLeaves = true
				}
			}
		}
		if nOut != 2 || !divertedLeaves {
			return newErr(ErrValidation,
				"divider %q must have exactly two outflow links, one of them the diverted link",
				n.Data.Name)
		}
	}
	return nil
}
