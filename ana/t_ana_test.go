// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_drawdown01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("drawdown01. orifice drawdown: closed form vs ODE")

	var dd OrificeDrawdown
	dd.Init(1000.0, 0.65, 1.0, 10.0, true)

	for _, t := range utl.LinSpace(0, 1000, 5) {
		ha := dd.Calc(t)
		hn := dd.CalcNum(t)
		chk.Float64(tst, "h(t)", 1e-4*dd.H0, ha, hn)
	}
}

func Test_drawdown02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("drawdown02. v-notch drawdown: closed form vs ODE")

	var dd VnotchDrawdown
	dd.Init(500.0, 0.58, math.Pi/2.0, 1.0, true)

	for _, t := range utl.LinSpace(0, 3600, 5) {
		ha := dd.Calc(t)
		hn := dd.CalcNum(t)
		chk.Float64(tst, "h(t)", 1e-4, ha, hn)
	}
}

func Test_twotank01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("twotank01. two-tank equalisation")

	var tt TwoTankOrifice
	tt.Init(1000, 1000, 0.65, 1.0, 10.0, 0.0)

	chk.Float64(tst, "equilibrium", 1e-15, tt.Equilibrium(), 5.0)

	// mass is conserved along the trajectory
	for _, t := range utl.LinSpace(0, 2000, 6) {
		h1, h2 := tt.Calc(t)
		chk.Float64(tst, "volume", 1e-10, 1000*h1+1000*h2, 1000.0*10.0)
		if h2 > h1+1e-12 {
			tst.Errorf("tank 2 cannot exceed tank 1 during equalisation")
			return
		}
	}

	// within one inch of equilibrium in less than two hours
	teq := tt.TimeToEqualise(2.0 / 12.0)
	if teq > 7200 {
		tst.Errorf("equalisation takes too long: %g s", teq)
	}
}

func Test_uniform01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("uniform01. normal and critical depth of a circular pipe")

	var uf PipeUniformFlow
	uf.Init(1.0, 0.01, 0.01)

	// the normal depth must give back the demanded flow through Manning
	yn := uf.NormalDepth(1.0)
	if yn <= 0 || yn >= 1.0 {
		tst.Errorf("normal depth out of range: %g", yn)
		return
	}
	theta := 2.0 * math.Acos(1.0-2.0*yn)
	a := 1.0 / 8.0 * (theta - math.Sin(theta))
	r := a / (0.5 * theta)
	qBack := 1.486 / uf.N * a * math.Pow(r, 2.0/3.0) * math.Sqrt(uf.Slope)
	chk.Float64(tst, "q(yn)", 0.03, qBack, 1.0)

	// the full pipe capacity must exceed the demanded flow
	if uf.Qfull() <= 1.0 {
		tst.Errorf("full pipe capacity must exceed 1 cfs: %g", uf.Qfull())
		return
	}

	// critical depth sits inside the pipe for this mild flow
	yc := uf.CriticalDepth(1.0)
	if yc <= 0 || yc >= 1.0 {
		tst.Errorf("critical depth out of range: %g", yc)
	}
}
