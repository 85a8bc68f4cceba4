// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// Villemonte exponent for submerged sharp-crested weirs
const villemonteExp = 0.385

// weirFlow returns the weir discharge for the current node heads
func (o *Domain) weirFlow(l *Link) float64 {

	up := o.Nodes[l.Up]
	dn := o.Nodes[l.Dn]
	l.DqDh = 0
	if l.Setting <= 0 {
		return 0
	}

	// the setting raises the effective crest, closing the opening
	yFull := l.Xs.YFull
	zCrest := up.InvertElev + l.OffsetUp + (1.0-l.Setting)*yFull

	if l.Data.WeirKind == "roadway" {
		return o.roadwayFlow(l, zCrest)
	}

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
	head := h1 - zCrest
	if head <= fudge {
		l.NewDepth = 0
		return 0
	}
	l.NewDepth = math.Min(head, yFull)

	// both ends above the opening: switch to equivalent orifice flow
	zTop := zCrest + yFull*l.Setting
	if l.Data.CanSurcharge && h1 > zTop && h2 > zTop {
		cSur := l.Data.Cd * effLength(l, yFull) * math.Sqrt(yFull*l.Setting)
		hDiff := h1 - h2
		if hDiff <= 0 {
			return 0
		}
		q := cSur * math.Sqrt(hDiff)
		l.DqDh = 0.5 * q / hDiff
		return dir * q
	}

	// weir equation by kind
	var q, expo float64
	switch l.Data.WeirKind {

	case "transverse":
		expo = 1.5
		q = l.Data.Cd * effLength(l, head) * math.Pow(head, expo)

	case "sideflow":
		// reverse flow turns a sideflow weir into a transverse one
		if dir < 0 {
			expo = 1.5
			q = l.Data.Cd * effLength(l, head) * math.Pow(head, expo)
		} else {
			expo = 5.0 / 3.0
			q = l.Data.Cd * effLength(l, head) * math.Pow(head, expo)
		}

	case "vnotch":
		expo = 2.5
		// side slope of the triangular section is tan(theta/2)
		q = l.Data.Cd * 8.0 / 15.0 * math.Sqrt(2.0*Gravity) * l.Xs.SBot * math.Pow(head, expo)

	case "trapezoidal":
		expo = 1.5
		cd2 := l.Data.Cd2
		if cd2 == 0 {
			cd2 = l.Data.Cd
		}
		q = l.Data.Cd*effLength(l, head)*math.Pow(head, expo) +
			cd2*8.0/15.0*math.Sqrt(2.0*Gravity)*l.Xs.SlopeL*math.Pow(head, 2.5)
	}

	// Villemonte reduction for a submerged downstream end
	if h2 > zCrest {
		r := (h2 - zCrest) / head
		q *= math.Pow(1.0-math.Pow(r, 1.5), villemonteExp)
	}

	l.DqDh = expo * q / head
	if l.Data.MaxFlow > 0 && q > l.Data.MaxFlow {
		q = l.Data.MaxFlow
	}
	return dir * q
}

// effLength returns the crest length reduced by end contractions
func effLength(l *Link, head float64) float64 {
	length := l.Xs.WMax
	if l.Data.EndCon > 0 {
		length -= 0.1 * float64(l.Data.EndCon) * head
	}
	if length < 0 {
		length = 0
	}
	return length
}
