// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_transect01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transect01. symmetric trapezoidal transect")

	// a surveyed section shaped exactly like a trapezoid: base 4 ft,
	// side slopes 2H:1V, depth 2 ft
	tr := &Transect{
		Name:       "trap",
		Stations:   []float64{0, 4, 8, 12},
		Elevs:      []float64{2, 0, 0, 2},
		NChan:      0.03,
		XLeftBank:  0,
		XRightBank: 12,
	}
	x, err := NewFromTransect(tr)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	// exact trapezoid for comparison
	ref, err := New(Trapezoidal, []float64{2, 4, 2, 2})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	chk.Float64(tst, "yFull", 1e-12, x.YFull, 2.0)
	chk.Float64(tst, "wMax", 1e-12, x.WMax, 12.0)
	chk.Float64(tst, "ywMax", 1e-12, x.YwMax, 2.0)
	chk.Float64(tst, "aFull", 1e-3*ref.AFull, x.AFull, ref.AFull)
	chk.Float64(tst, "rFull", 0.01*ref.RFull, x.RFull, ref.RFull)

	for _, t := range utl.LinSpace(0.1, 0.9, 9) {
		y := t * 2.0
		chk.Float64(tst, "a(y)", 0.01*ref.AFull, x.AofY(y), ref.AofY(y))
	}
}

func Test_transect02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("transect02. compound channel with overbanks")

	// main channel 2 ft deep flanked by rough overbanks
	tr := &Transect{
		Name:       "compound",
		Stations:   []float64{0, 20, 20, 24, 28, 28, 48},
		Elevs:      []float64{4, 4, 2, 0, 2, 4, 4},
		NChan:      0.025,
		NLeft:      0.08,
		NRight:     0.08,
		XLeftBank:  20,
		XRightBank: 28,
		Meander:    1.2,
	}
	x, err := NewFromTransect(tr)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Float64(tst, "lengthFactor", 1e-12, x.LengthFactor, 1.2)
	chk.Float64(tst, "yFull", 1e-12, x.YFull, 4.0)
	chk.Float64(tst, "wMax", 1e-12, x.WMax, 48.0)

	// the rough overbanks depress the conveyance-equivalent hydraulic
	// radius relative to a single-roughness section
	tr2 := *tr
	tr2.NLeft = tr.NChan
	tr2.NRight = tr.NChan
	x2, err := NewFromTransect(&tr2)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	if x.RofY(3.0) >= x2.RofY(3.0) {
		tst.Errorf("overbank roughness should depress the effective hydraulic radius")
	}

	// area must keep increasing through the overbank transition
	aPrev := 0.0
	for _, t := range utl.LinSpace(0.05, 1, 20) {
		a := x.AofY(t * 4.0)
		if a < aPrev {
			tst.Errorf("area not monotone at y=%g", t*4.0)
			return
		}
		aPrev = a
	}
}

func Test_custom01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("custom01. custom closed shape from a curve")

	// a crude circle drawn as a shape curve (width as multiple of depth)
	yn := []float64{0, 0.1, 0.3, 0.5, 0.7, 0.9, 1}
	wn := make([]float64, len(yn))
	for i, t := range yn {
		wn[i] = 2.0 * math.Sqrt(t*(1.0-t))
	}
	x, err := NewFromCurve(2.0, yn, wn)
	if err != nil {
		tst.Errorf("%v", err)
		return
	}

	if x.IsOpen() {
		tst.Errorf("custom shapes are closed")
		return
	}
	chk.Float64(tst, "wMax", 0.05, x.WMax, 2.0)
	// area of the faceted circle is close to the true circle
	chk.Float64(tst, "aFull", 0.1*math.Pi, x.AFull, math.Pi)
	// round trip through the tables
	a := x.AofY(1.0)
	chk.Float64(tst, "y(a(1))", 0.05, x.YofA(a), 1.0)
}
