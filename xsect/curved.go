// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// The curved closed shapes (eggshaped, horseshoe, gothic, catenary,
// semielliptical, baskethandle, semicircular, the ellipses and arches) are
// defined by their width profile w(y). The profile is tabulated once at
// construction into the same normalised 51-entry tables used for irregular
// transects, so every lookup shares one code path.

// default width/height ratios when the input omits the maximum width
var curvedWidthRatio = map[int]float64{
	HorizEllipse:   1.5,
	VertEllipse:    1.0 / 1.5,
	Arch:           1.5,
	Eggshaped:      1.0 / 1.5,
	Horseshoe:      1.0,
	Gothic:         0.84,
	Catenary:       0.9,
	Semielliptical: 1.0,
	Baskethandle:   0.944,
	Semicircular:   1.64,
}

// setCurved fills the canonical constants of a profile-defined shape
func (o *Xsect) setCurved(h, w float64) (err error) {
	if h <= 0 {
		return chk.Err("shape %d requires a positive full height", o.Type)
	}
	if w <= 0 {
		w = curvedWidthRatio[o.Type] * h
	}
	o.YFull = h
	profile, err := o.widthProfile(h, w)
	if err != nil {
		return
	}
	o.buildFromProfile(profile)
	return
}

// widthProfile returns w(y) for the shape
func (o *Xsect) widthProfile(h, w float64) (func(y float64) float64, error) {
	switch o.Type {

	case HorizEllipse, VertEllipse:
		return func(y float64) float64 {
			t := 2.0*y/h - 1.0
			return w * math.Sqrt(math.Max(0, 1.0-t*t))
		}, nil

	case Arch:
		// vertical side walls to 20% of rise, elliptical crown above
		ys := 0.2 * h
		return func(y float64) float64 {
			if y <= ys {
				return w
			}
			t := (y - ys) / (h - ys)
			return w * math.Sqrt(math.Max(0, 1.0-t*t))
		}, nil

	case Eggshaped:
		// classical three-centred egg standing on its small end:
		// bottom arc radius B/4, flanks radius 3B/2, top arc radius B/2,
		// with B = h/1.5
		b := h / 1.5
		r2 := 0.25 * b
		r3 := 1.5 * b
		r1 := 0.5 * b
		return func(y float64) float64 {
			switch {
			case y <= 0.1*b:
				return 2.0 * math.Sqrt(math.Max(0, y*(2.0*r2-y)))
			case y <= b:
				x := -b + math.Sqrt(math.Max(0, r3*r3-(y-b)*(y-b)))
				return 2.0 * x
			default:
				return 2.0 * math.Sqrt(math.Max(0, r1*r1-(y-b)*(y-b)))
			}
		}, nil

	case Horseshoe:
		// flank arcs of radius h below mid-rise, semicircular crown
		return func(y float64) float64 {
			if y <= 0.5*h {
				x := -0.5*h + math.Sqrt(math.Max(0, h*h-(y-0.5*h)*(y-0.5*h)))
				return 2.0 * x
			}
			return 2.0 * math.Sqrt(math.Max(0, 0.25*h*h-(y-0.5*h)*(y-0.5*h)))
		}, nil

	case Gothic:
		// elliptical invert to 45% of rise, pointed twin-arc crown above
		ys := 0.45 * h
		rho := ((h-ys)*(h-ys) + 0.25*w*w) / w // crown arc radius closing at the apex
		c := rho - 0.5*w
		return func(y float64) float64 {
			if y <= ys {
				t := (ys - y) / ys
				return w * math.Sqrt(math.Max(0, 1.0-t*t))
			}
			x := -c + math.Sqrt(math.Max(0, rho*rho-(y-ys)*(y-ys)))
			return 2.0 * math.Max(0, x)
		}, nil

	case Catenary:
		// smooth ovoid widest at a quarter of the rise
		return func(y float64) float64 {
			t := y / h
			return w * math.Sin(math.Pi*math.Sqrt(t))
		}, nil

	case Semielliptical:
		// flat-sided base to 10% of rise, elliptical crown
		ys := 0.1 * h
		return func(y float64) float64 {
			if y <= ys {
				return w
			}
			t := (y - ys) / (h - ys)
			return w * math.Sqrt(math.Max(0, 1.0-t*t))
		}, nil

	case Baskethandle:
		// vertical walls to mid-rise, semicircular crown
		return func(y float64) float64 {
			if y <= 0.5*h {
				return w
			}
			t := (y - 0.5*h) / (0.5 * h)
			return w * math.Sqrt(math.Max(0, 1.0-t*t))
		}, nil

	case Semicircular:
		// quarter-round: widest at the invert, closing at the crown
		return func(y float64) float64 {
			t := y / h
			return w * math.Sqrt(math.Max(0, 1.0-t*t))
		}, nil
	}
	return nil, chk.Err("shape %d has no width profile", o.Type)
}

// nFine is the fine sampling used to integrate width profiles
const nFine = 501

// buildFromProfile integrates the width profile into area and wetted
// perimeter, records wMax/ywMax, and fills the normalised tables
func (o *Xsect) buildFromProfile(w func(y float64) float64) {

	// fine sampling of width, cumulative area and wetted perimeter
	dy := o.YFull / float64(nFine-1)
	wF := make([]float64, nFine)
	aF := make([]float64, nFine)
	pF := make([]float64, nFine)
	wF[0] = w(0)
	pF[0] = wF[0] // flat invert contribution (zero for pointed inverts)
	for i := 1; i < nFine; i++ {
		y := float64(i) * dy
		wF[i] = w(y)
		aF[i] = aF[i-1] + 0.5*(wF[i]+wF[i-1])*dy
		dw := 0.5 * (wF[i] - wF[i-1])
		pF[i] = pF[i-1] + 2.0*math.Hypot(dy, dw)
	}

	// canonical constants
	o.AFull = aF[nFine-1]
	o.RFull = o.AFull / pF[nFine-1]
	o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
	o.WMax = 0
	for i := 0; i < nFine; i++ {
		if wF[i] > o.WMax {
			o.WMax = wF[i]
			o.YwMax = float64(i) * dy
		}
	}

	// maximum section factor
	o.SMax = 0
	for i := 1; i < nFine; i++ {
		if pF[i] <= 0 {
			continue
		}
		r := aF[i] / pF[i]
		s := aF[i] * math.Pow(r, 2.0/3.0)
		if s > o.SMax {
			o.SMax = s
		}
	}

	// normalised tables at 51 uniform depths
	o.areaTbl = make([]float64, Ntbl)
	o.hradTbl = make([]float64, Ntbl)
	o.widthTbl = make([]float64, Ntbl)
	for i := 0; i < Ntbl; i++ {
		t := float64(i) / float64(Ntbl-1)
		j := int(t * float64(nFine-1))
		if j >= nFine-1 {
			j = nFine - 1
		}
		o.areaTbl[i] = aF[j] / o.AFull
		o.widthTbl[i] = wF[j] / o.WMax
		if pF[j] > 0 {
			o.hradTbl[i] = (aF[j] / pF[j]) / o.RFull
		}
	}
	o.areaTbl[Ntbl-1] = 1.0
	o.hradTbl[Ntbl-1] = 1.0
}
