// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/num"
	"github.com/cpmech/gosl/utl"
)

// allShapes builds one instance of every parametric shape
func allShapes(tst *testing.T) map[string]*Xsect {
	shapes := map[string]struct {
		typ int
		p   []float64
	}{
		"circular":       {Circular, []float64{2.0}},
		"force_main":     {ForceMain, []float64{2.0, 130, 0}},
		"filled":         {FilledCircular, []float64{2.0, 0.4}},
		"rect_closed":    {RectClosed, []float64{3.0, 2.0}},
		"rect_open":      {RectOpen, []float64{3.0, 2.0}},
		"trapezoidal":    {Trapezoidal, []float64{3.0, 4.0, 2.0, 3.0}},
		"triangular":     {Triangular, []float64{3.0, 4.0}},
		"parabolic":      {Parabolic, []float64{3.0, 4.0}},
		"power":          {PowerFunc, []float64{3.0, 4.0, 1.5}},
		"rect_triang":    {RectTriang, []float64{3.0, 4.0, 1.0}},
		"rect_round":     {RectRound, []float64{3.0, 4.0, 3.0}},
		"mod_basket":     {ModBasket, []float64{3.0, 4.0, 3.0}},
		"horiz_ellipse":  {HorizEllipse, []float64{2.0, 3.0}},
		"vert_ellipse":   {VertEllipse, []float64{3.0, 2.0}},
		"arch":           {Arch, []float64{2.0, 3.0}},
		"eggshaped":      {Eggshaped, []float64{3.0, 0}},
		"horseshoe":      {Horseshoe, []float64{3.0, 0}},
		"gothic":         {Gothic, []float64{3.0, 0}},
		"catenary":       {Catenary, []float64{3.0, 0}},
		"semielliptical": {Semielliptical, []float64{3.0, 0}},
		"baskethandle":   {Baskethandle, []float64{3.0, 0}},
		"semicircular":   {Semicircular, []float64{3.0, 0}},
	}
	res := make(map[string]*Xsect)
	for name, s := range shapes {
		x, err := New(s.typ, s.p)
		if err != nil {
			tst.Errorf("cannot create %q section:\n%v", name, err)
			return nil
		}
		res[name] = x
	}
	return res
}

func Test_xsect01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect01. depth-area round trips for all shapes")

	for name, x := range allShapes(tst) {
		for _, t := range utl.LinSpace(0.05, 0.95, 10) {
			y := t * x.YFull
			a := x.AofY(y)
			yb := x.YofA(a)
			ab := x.AofY(yb)
			if math.Abs(ab-a) > 1e-3*x.AFull {
				tst.Errorf("%s: area round trip failed at y=%g: a=%g ab=%g", name, y, a, ab)
				return
			}
		}
	}
}

func Test_xsect02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect02. monotone area and non-negative width")

	for name, x := range allShapes(tst) {
		aPrev := 0.0
		for _, t := range utl.LinSpace(0.01, 1, 40) {
			y := t * x.YFull
			a := x.AofY(y)
			w := x.WofY(y)
			if a < aPrev-1e-12 {
				tst.Errorf("%s: area not monotone at y=%g", name, y)
				return
			}
			if w < 0 {
				tst.Errorf("%s: negative width at y=%g", name, y)
				return
			}
			aPrev = a
		}
		// closed shapes have no free surface at the crown
		if !x.IsOpen() {
			if x.WofY(x.YFull) != 0 {
				tst.Errorf("%s: closed shape has nonzero width at crown", name)
				return
			}
		}
	}
}

func Test_xsect03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect03. circular section constants")

	x, err := New(Circular, []float64{2.0})
	if err != nil {
		tst.Errorf("%v", err)
		return
	}
	chk.Float64(tst, "aFull", 1e-12, x.AFull, math.Pi)
	chk.Float64(tst, "rFull", 1e-12, x.RFull, 0.5)
	chk.Float64(tst, "wMax", 1e-12, x.WMax, 2.0)
	chk.Float64(tst, "ywMax", 1e-12, x.YwMax, 1.0)

	// half-full circle
	chk.Float64(tst, "a(D/2)", 1e-6, x.AofY(1.0), math.Pi/2.0)
	chk.Float64(tst, "w(D/2)", 1e-6, x.WofY(1.0), 2.0)
	chk.Float64(tst, "r(D/2)", 1e-6, x.RofY(1.0), 0.5)

	// the maximum section factor of a closed pipe occurs below the crown
	if x.SMax <= x.SFull {
		tst.Errorf("sMax (%g) must exceed sFull (%g) for a circular pipe", x.SMax, x.SFull)
	}
}

func Test_xsect04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect04. section factor derivative on ascending branch")

	for _, name := range []string{"circular", "rect_closed", "trapezoidal", "eggshaped"} {
		x := allShapes(tst)[name]
		for _, f := range utl.LinSpace(0.13, 0.83, 8) {
			a := f * x.AFull
			dana := x.DSdA(a)
			if dana < 0 {
				tst.Errorf("%s: dSdA < 0 at a/aFull=%g", name, f)
				return
			}
			dnum, _ := num.DerivCentral(func(aa float64, args ...interface{}) (res float64) {
				return x.SofA(aa)
			}, a, 1e-4*x.AFull)
			chk.Float64(tst, io.Sf("%s dSdA(%.2f)", name, f), 0.1*math.Abs(dnum)+1e-7, dana, dnum)
		}
	}
}

func Test_xsect05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect05. inverse section factor")

	for _, name := range []string{"circular", "rect_closed", "trapezoidal", "horseshoe"} {
		x := allShapes(tst)[name]
		for _, f := range utl.LinSpace(0.1, 0.85, 6) {
			a := f * x.AFull
			s := x.SofA(a)
			if s >= x.SMax {
				continue
			}
			ab := x.AofS(s)
			if math.Abs(ab-a) > 0.02*x.AFull {
				tst.Errorf("%s: AofS round trip failed: a=%g ab=%g", name, a, ab)
				return
			}
		}
		// at or above the maximum the area at maximum flow is returned
		chk.Float64(tst, name+" AofS(sMax)", 1e-12, x.AofS(2.0*x.SMax), x.AMax)
	}
}

func Test_xsect06(tst *testing.T) {

	//verbose()
	chk.PrintTitle("xsect06. critical depth residual vanishes")

	for _, name := range []string{"circular", "rect_open", "trapezoidal", "triangular", "eggshaped"} {
		x := allShapes(tst)[name]
		for _, q := range []float64{0.5, 2.0, 5.0} {
			yc, ok := x.Ycrit(q)
			if !ok {
				continue // flow beyond the section's critical capacity
			}
			a := x.AofY(yc)
			w := x.WofY(yc)
			resid := q*q*w - Gravity*a*a*a
			scale := Gravity * math.Pow(x.AofY(x.YFull), 3.0)
			if math.Abs(resid)/scale > 1e-4 {
				tst.Errorf("%s: critical depth residual too large for q=%g: %g", name, q, resid/scale)
				return
			}
		}
	}
}
