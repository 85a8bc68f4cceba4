// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Transect holds an irregular natural channel cross section surveyed as
// station-elevation pairs, with Manning's n split across left overbank,
// main channel and right overbank
type Transect struct {

	// input
	Name      string    `json:"name"`      // transect name
	Stations  []float64 `json:"stations"`  // horizontal station of each point (ft)
	Elevs     []float64 `json:"elevs"`     // elevation of each point (ft)
	NLeft     float64   `json:"nleft"`     // Manning's n of left overbank
	NRight    float64   `json:"nright"`    // Manning's n of right overbank
	NChan     float64   `json:"nchan"`     // Manning's n of main channel
	XLeftBank float64   `json:"xleftbank"` // station of left overbank edge
	XRightBank float64  `json:"xrightbank"` // station of right overbank edge
	YFull     float64   `json:"yfull"`     // max depth; 0 means use highest point
	Meander   float64   `json:"meander"`   // main channel meander ratio (>= 1)
}

// phi is the Manning equation constant for US units
const phi = 1.486

// NewFromTransect tabulates an irregular section from a surveyed transect.
// The tables hold conveyance-equivalent hydraulic radii so that the Manning
// equation with the main-channel roughness reproduces the compound-section
// conveyance.
func NewFromTransect(t *Transect) (o *Xsect, err error) {

	// validate
	n := len(t.Stations)
	if n < 2 || n != len(t.Elevs) {
		return nil, chk.Err("transect %q needs at least two station-elevation pairs", t.Name)
	}
	for i := 1; i < n; i++ {
		if t.Stations[i] < t.Stations[i-1] {
			return nil, chk.Err("transect %q stations must be non-decreasing", t.Name)
		}
	}
	if t.NChan <= 0 {
		return nil, chk.Err("transect %q requires a positive channel roughness", t.Name)
	}

	// invert and full depth
	zMin, zMax := t.Elevs[0], t.Elevs[0]
	for _, z := range t.Elevs {
		zMin = math.Min(zMin, z)
		zMax = math.Max(zMax, z)
	}
	yFull := t.YFull
	if yFull <= 0 {
		yFull = zMax - zMin
	}
	if yFull <= 0 {
		return nil, chk.Err("transect %q has zero depth", t.Name)
	}

	o = new(Xsect)
	o.Type = Irregular
	o.YFull = yFull
	o.LengthFactor = 1.0
	o.RoughFactor = 1.0
	if t.Meander > 1.0 {
		o.LengthFactor = t.Meander
	}

	// slice the section at Ntbl depth levels
	o.areaTbl = make([]float64, Ntbl)
	o.hradTbl = make([]float64, Ntbl)
	o.widthTbl = make([]float64, Ntbl)
	widths := make([]float64, Ntbl)
	areas := make([]float64, Ntbl)
	hrads := make([]float64, Ntbl)
	for k := 1; k < Ntbl; k++ {
		level := zMin + float64(k)/float64(Ntbl-1)*yFull
		a, wTop, conv := sliceTransect(t, level)
		areas[k] = a
		widths[k] = wTop
		if a > 0 {
			// conveyance-equivalent hydraulic radius
			s := conv * t.NChan / phi
			hrads[k] = math.Pow(s/a, 1.5)
		}
	}

	// canonical constants; wMax and its depth come from the slice widths
	o.AFull = areas[Ntbl-1]
	o.RFull = hrads[Ntbl-1]
	if o.AFull <= 0 {
		return nil, chk.Err("transect %q encloses no area", t.Name)
	}
	o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
	for k := 0; k < Ntbl; k++ {
		if widths[k] > o.WMax {
			o.WMax = widths[k]
			o.YwMax = float64(k) / float64(Ntbl-1) * yFull
		}
	}

	// normalise; scan the tabulated section factor for its maximum
	o.SMax = 0
	for k := 0; k < Ntbl; k++ {
		o.areaTbl[k] = areas[k] / o.AFull
		o.widthTbl[k] = widths[k] / o.WMax
		o.hradTbl[k] = hrads[k] / o.RFull
		s := areas[k] * math.Pow(hrads[k], 2.0/3.0)
		if s > o.SMax {
			o.SMax = s
		}
	}
	o.areaTbl[Ntbl-1] = 1.0
	o.hradTbl[Ntbl-1] = 1.0
	o.AMax = amaxRatio[Irregular] * o.AFull
	return
}

// sliceTransect returns the wetted area, surface width and compound-section
// conveyance of the transect below the water level
func sliceTransect(t *Transect, level float64) (area, width, conv float64) {

	// per-region accumulators: 0=left overbank, 1=channel, 2=right overbank
	var aReg, pReg [3]float64
	nReg := [3]float64{t.NLeft, t.NChan, t.NRight}
	if nReg[0] <= 0 {
		nReg[0] = t.NChan
	}
	if nReg[2] <= 0 {
		nReg[2] = t.NChan
	}

	region := func(x float64) int {
		if x < t.XLeftBank {
			return 0
		}
		if x > t.XRightBank {
			return 2
		}
		return 1
	}

	n := len(t.Stations)
	for i := 1; i < n; i++ {
		x1, z1 := t.Stations[i-1], t.Elevs[i-1]
		x2, z2 := t.Stations[i], t.Elevs[i]
		d1 := level - z1
		d2 := level - z2
		if d1 <= 0 && d2 <= 0 {
			continue
		}
		// clip the segment to the water line
		if d1 < 0 || d2 < 0 {
			xc := x1 + (x2-x1)*(level-z1)/(z2-z1)
			if d1 < 0 {
				x1, d1 = xc, 0
			} else {
				x2, d2 = xc, 0
			}
		}
		dx := x2 - x1
		r := region(0.5 * (x1 + x2))
		aReg[r] += 0.5 * (d1 + d2) * dx
		pReg[r] += math.Hypot(dx, d2-d1)
		width += dx
	}

	for r := 0; r < 3; r++ {
		if aReg[r] <= 0 || pReg[r] <= 0 {
			continue
		}
		area += aReg[r]
		rh := aReg[r] / pReg[r]
		conv += phi / nReg[r] * aReg[r] * math.Pow(rh, 2.0/3.0)
	}
	return
}
