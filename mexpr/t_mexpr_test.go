// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mexpr

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

// vlookup maps {C, Q} to indices 0 and 1
func vlookup(name string) int {
	switch name {
	case "C":
		return 0
	case "Q":
		return 1
	}
	return -1
}

func Test_mexpr01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mexpr01. arithmetic and precedence")

	expr, err := Parse("1 + 2*3 - 4/2 + 2^3", vlookup)
	if err != nil {
		tst.Errorf("Parse failed:\n%v", err)
		return
	}
	res := expr.Eval(func(i int) float64 { return 0 })
	chk.Float64(tst, "1+2*3-4/2+2^3", 1e-15, res, 13.0)

	expr, err = Parse("-(1+2)*2", vlookup)
	if err != nil {
		tst.Errorf("Parse failed:\n%v", err)
		return
	}
	res = expr.Eval(func(i int) float64 { return 0 })
	chk.Float64(tst, "-(1+2)*2", 1e-15, res, -6.0)
}

func Test_mexpr02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mexpr02. variables and functions")

	// first-order removal:  C * exp(-0.5) for C=10
	expr, err := Parse("C * EXP(-0.5)", vlookup)
	if err != nil {
		tst.Errorf("Parse failed:\n%v", err)
		return
	}
	vals := []float64{10.0, 2.5}
	res := expr.Eval(func(i int) float64 { return vals[i] })
	chk.Float64(tst, "C*exp(-0.5)", 1e-14, res, 10.0*math.Exp(-0.5))

	// treatment-style expression with two variables
	expr, err = Parse("0.5*C*step(Q - 1) + sqrt(Q)*log10(100)", vlookup)
	if err != nil {
		tst.Errorf("Parse failed:\n%v", err)
		return
	}
	res = expr.Eval(func(i int) float64 { return vals[i] })
	chk.Float64(tst, "res", 1e-14, res, 0.5*10.0+math.Sqrt(2.5)*2.0)
}

func Test_mexpr03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("mexpr03. parse errors")

	if _, err := Parse("1 + unknown", vlookup); err == nil {
		tst.Errorf("unknown variable must fail")
		return
	}
	if _, err := Parse("sin(1", vlookup); err == nil {
		tst.Errorf("unbalanced parenthesis must fail")
		return
	}
	if _, err := Parse("1 + * 2", vlookup); err == nil {
		tst.Errorf("dangling operator must fail")
	}
}
