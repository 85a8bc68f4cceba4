// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// orificeFlow returns the orifice discharge for the current node heads.
// Small heads fall back to an equivalent weir equation so the flow varies
// smoothly from zero.
func (o *Domain) orificeFlow(l *Link) float64 {

	up := o.Nodes[l.Up]
	dn := o.Nodes[l.Dn]
	l.DqDh = 0
	if l.Setting <= 0 {
		return 0
	}

	// effective opening scaled by the setting
	hOpen := l.Xs.YFull * l.Setting
	aOpen := l.Xs.AFull * l.Setting
	if hOpen <= fudge {
		return 0
	}

	// crest and head; reverse heads drive reverse flow unless gated
	zCrest := up.InvertElev + l.OffsetUp
	h1 := up.Head()
	h2 := dn.Head()
	dir := 1.0
	if h2 > h1 {
		h1, h2 = h2, h1
		dir = -1.0
	}
	if dir < 0 && l.Data.FlapGate {
		return 0
	}

	// head on the orifice: full submergence uses the head difference,
	// otherwise the depth of water above the opening midpoint
	var head float64
	zMid := zCrest + 0.5*hOpen
	if l.Data.OrificeKind == "bottom" {
		zMid = zCrest
	}
	switch {
	case h1 <= zCrest:
		return 0
	case h2 > zMid:
		head = h1 - h2
	default:
		head = h1 - zMid
		if l.Data.OrificeKind == "bottom" {
			head = h1 - zCrest
		}
	}
	if head <= 0 {
		return 0
	}

	cOrif := l.Data.Cd * aOpen * math.Sqrt(2.0*Gravity)

	// weir-type flow before the opening is fully submerged
	hCrit := hOpen
	if l.Data.OrificeKind == "bottom" {
		hCrit = l.Xs.YFull
	}
	var q float64
	if head < hCrit {
		cWeir := cOrif * math.Sqrt(hCrit) / math.Pow(hCrit, 1.5)
		q = cWeir * math.Pow(head, 1.5)
		l.DqDh = 1.5 * q / head
	} else {
		q = cOrif * math.Sqrt(head)
		l.DqDh = 0.5 * q / head
	}

	l.NewDepth = math.Min(math.Max(h1-zCrest, 0), hOpen)
	if l.Data.MaxFlow > 0 && q > l.Data.MaxFlow {
		q = l.Data.MaxFlow
	}
	return dir * q
}
