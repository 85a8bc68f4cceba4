// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package roots

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func Test_newton01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton01. cubic with known root")

	// f(x) = x³ - 2x - 5  has a root at x ≈ 2.0945514815423265
	fdf := func(x float64) (f, df float64) {
		f = x*x*x - 2.0*x - 5.0
		df = 3.0*x*x - 2.0
		return
	}

	root, nfev, err := Newton(2.5, 2.0, 3.0, 1e-10, fdf)
	if err != nil {
		tst.Errorf("Newton failed:\n%v", err)
		return
	}
	io.Pforan("root = %v (%d evaluations)\n", root, nfev)
	chk.Float64(tst, "root", 1e-9, root, 2.0945514815423265)
}

func Test_newton02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("newton02. flat function forces bisection steps")

	// nearly flat derivative away from the root
	fdf := func(x float64) (f, df float64) {
		f = math.Tanh(x - 1.0)
		df = 1.0 - f*f
		return
	}

	root, _, err := Newton(4.0, -5.0, 5.0, 1e-10, fdf)
	if err != nil {
		tst.Errorf("Newton failed:\n%v", err)
		return
	}
	chk.Float64(tst, "root", 1e-8, root, 1.0)
}

func Test_ridder01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ridder01. transcendental equation")

	// f(x) = cos(x) - x  has a root at x ≈ 0.7390851332151607
	f := func(x float64) float64 { return math.Cos(x) - x }

	root, nfev, err := Ridder(0.0, 1.0, 1e-12, f)
	if err != nil {
		tst.Errorf("Ridder failed:\n%v", err)
		return
	}
	io.Pforan("root = %v (%d evaluations)\n", root, nfev)
	chk.Float64(tst, "root", 1e-10, root, 0.7390851332151607)
}

func Test_ridder02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("ridder02. unbracketed root must fail")

	f := func(x float64) float64 { return x*x + 1.0 }
	_, _, err := Ridder(-1.0, 1.0, 1e-10, f)
	if err == nil {
		tst.Errorf("Ridder should have failed with an unbracketed root")
	}
}
