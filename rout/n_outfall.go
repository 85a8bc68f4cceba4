// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// setOutfallDepth resolves the stage of an outfall node. Outfalls update
// after every other node so the connecting conduit's flow is current.
func (o *Domain) setOutfallDepth(i int) {

	n := o.Nodes[i]
	n.Converged = true

	switch n.Data.OutfallKind {

	case "fixed":
		n.NewDepth = math.Max(n.Data.StageElev-n.InvertElev, 0)

	case "tidal":
		// tide curves are indexed by the hour of the day
		hour := math.Mod(o.Time/3600.0, 24.0)
		n.NewDepth = math.Max(n.Data.TideTbl.Lookup(hour)-n.InvertElev, 0)

	case "timeseries":
		n.NewDepth = math.Max(n.Data.StageTbl.Lookup(o.Time)-n.InvertElev, 0)

	case "normal":
		if l, q := o.outfallConduit(i); l != nil {
			n.NewDepth = o.conduitNormalDepth(l, q)
		} else {
			n.NewDepth = 0
		}

	default: // free discharge
		if l, q := o.outfallConduit(i); l != nil {
			yn := o.conduitNormalDepth(l, q)
			yc, _ := l.Xs.Ycrit(q)
			n.NewDepth = math.Min(yc, yn)
		} else {
			n.NewDepth = 0
		}
	}
	n.NewVolume = 0
}

// outfallConduit returns the single conduit connected to an outfall and
// the magnitude of its current flow per barrel
func (o *Domain) outfallConduit(i int) (*Link, float64) {
	for _, j := range o.Adj[i] {
		l := o.Links[j]
		if l.Type == Conduit {
			return l, math.Abs(l.NewFlow) / l.Barrels
		}
	}
	return nil, 0
}

// conduitNormalDepth returns the Manning normal depth of a conduit for
// flow q, falling back to the full depth on adverse slopes
func (o *Domain) conduitNormalDepth(l *Link, q float64) float64 {
	if l.Slope <= 0 {
		return l.Xs.YFull
	}
	return l.Xs.YofA(l.Xs.AofS(q / (l.Beta * math.Sqrt(l.Slope))))
}
