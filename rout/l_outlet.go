// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// outletFlow returns the discharge of a rating-curve or functional outlet
func (o *Domain) outletFlow(l *Link) float64 {

	up := o.Nodes[l.Up]
	dn := o.Nodes[l.Dn]
	l.DqDh = 0
	if l.Setting <= 0 {
		return 0
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

	// rating argument: water depth above the outlet offset, or the
	// difference of the piezometric heads
	var h float64
	zCrest := up.InvertElev + l.OffsetUp
	if l.Data.OutletKind == "head" {
		h = h1 - math.Max(h2, zCrest)
	} else {
		h = h1 - zCrest
	}
	if h <= fudge {
		l.NewDepth = 0
		return 0
	}
	l.NewDepth = h

	var q float64
	if l.Data.RateTbl != nil {
		q = l.Data.RateTbl.Lookup(h)
	} else {
		q = l.Data.Coeff * math.Pow(h, l.Data.Expon)
	}
	q *= l.Setting

	// numerical slope of the rating feeds the node update
	eps := 0.001 * math.Max(h, 1.0)
	var q2 float64
	if l.Data.RateTbl != nil {
		q2 = l.Data.RateTbl.Lookup(h + eps)
	} else {
		q2 = l.Data.Coeff * math.Pow(h+eps, l.Data.Expon)
	}
	l.DqDh = math.Abs(q2*l.Setting-q) / eps

	if l.Data.MaxFlow > 0 && q > l.Data.MaxFlow {
		q = l.Data.MaxFlow
	}
	return dir * q
}
