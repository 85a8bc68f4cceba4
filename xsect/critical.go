// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"

	"github.com/cpmech/godrain/roots"
)

// Gravity is the gravitational acceleration in ft/s2
const Gravity = 32.2

// Ycrit returns the critical depth for flow q, where q2 W(y) = g A(y)3.
// Rectangular and triangular families use closed forms; other shapes use
// Ridder's method on the bracketed residual, falling back to an enumeration
// of tabulated depths. ok reports whether a genuine solution was found; on
// failure the full depth is returned and the caller decides whether that
// substitute is acceptable.
func (o *Xsect) Ycrit(q float64) (yc float64, ok bool) {
	if q <= 0 {
		return 0, true
	}

	switch o.Type {
	case RectClosed, RectOpen:
		yc = math.Pow(q*q/(Gravity*o.WMax*o.WMax), 1.0/3.0)
		if yc > o.YFull {
			return o.YFull, false
		}
		return yc, true
	case Triangular:
		yc = math.Pow(2.0*q*q/(Gravity*o.SBot*o.SBot), 0.2)
		if yc > o.YFull {
			return o.YFull, false
		}
		return yc, true
	}

	// residual g(y) = q2 W(y) - g A(y)3, positive for small y
	g := func(y float64) float64 {
		a := o.AofY(y)
		w := o.WofY(y)
		return q*q*w - Gravity*a*a*a
	}

	y1 := fudge * o.YFull
	y2 := o.YFull
	if g(y2) > 0 {
		// flow exceeds the critical flow of the full section
		return o.YFull, false
	}
	if g(y1) <= 0 {
		return y1, true
	}
	yc, _, err := roots.Ridder(y1, y2, 0.001*o.YFull, g)
	if err == nil {
		return yc, true
	}

	// enumeration fallback over tabulated depths
	yPrev := y1
	gPrev := g(yPrev)
	for i := 1; i <= Ntbl; i++ {
		y := float64(i) / float64(Ntbl) * o.YFull
		gi := g(y)
		if gi <= 0 {
			f := gPrev / (gPrev - gi)
			return yPrev + f*(y-yPrev), true
		}
		yPrev, gPrev = y, gi
	}
	return o.YFull, false
}
