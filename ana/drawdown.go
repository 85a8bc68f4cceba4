// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana implements analytic solutions for drainage hydraulics used
// to verify the numerical routing solvers
package ana

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// gravitational acceleration (ft/s2)
const gravity = 32.2

// OrificeDrawdown computes the depth of a prismatic tank draining through
// an orifice in its floor:
//
//   A dh/dt = -Cd Ao sqrt(2 g h)
//
// which integrates to a linear decay of sqrt(h)
type OrificeDrawdown struct {
	Area float64 // tank plan area
	Cd   float64 // orifice discharge coefficient
	Ao   float64 // orifice opening area
	H0   float64 // initial depth
	sol  ode.ODE // numerical reference solver
}

// Init initialises this structure
func (o *OrificeDrawdown) Init(area, cd, ao, h0 float64, withNum bool) {
	o.Area = area
	o.Cd = cd
	o.Ao = ao
	o.H0 = h0
	if withNum {
		silent := true
		o.sol.Init("Radau5", 1, func(f []float64, dt, t float64, y []float64, args ...interface{}) error {
			h := math.Max(y[0], 0)
			f[0] = -o.Cd * o.Ao * math.Sqrt(2.0*gravity*h) / o.Area
			return nil
		}, nil, nil, nil, silent)
		o.sol.Distr = false
	}
}

// Calc returns the depth at time t
func (o OrificeDrawdown) Calc(t float64) float64 {
	k := o.Cd * o.Ao * math.Sqrt(2.0*gravity) / (2.0 * o.Area)
	s := math.Sqrt(o.H0) - k*t
	if s < 0 {
		return 0
	}
	return s * s
}

// CalcNum returns the depth at time t using the ODE solver
func (o OrificeDrawdown) CalcNum(t float64) float64 {
	if t <= 0 {
		return o.H0
	}
	y := []float64{o.H0}
	err := o.sol.Solve(y, 0, t, t, false)
	if err != nil {
		chk.Panic("OrificeDrawdown failed when integrating the drawdown ODE: %v", err)
	}
	return y[0]
}

// VnotchDrawdown computes the head of a reservoir draining over a V-notch
// weir with vertex angle theta:
//
//   A dh/dt = -Cd sqrt(2 g) 8/15 tan(theta/2) h^(5/2)
type VnotchDrawdown struct {
	Area  float64 // reservoir plan area
	Cd    float64 // weir discharge coefficient
	Theta float64 // notch vertex angle (rad)
	H0    float64 // initial head over the notch vertex
	sol   ode.ODE // numerical reference solver
}

// Init initialises this structure
func (o *VnotchDrawdown) Init(area, cd, theta, h0 float64, withNum bool) {
	o.Area = area
	o.Cd = cd
	o.Theta = theta
	o.H0 = h0
	if withNum {
		silent := true
		o.sol.Init("Radau5", 1, func(f []float64, dt, t float64, y []float64, args ...interface{}) error {
			h := math.Max(y[0], 0)
			f[0] = -o.k() * math.Pow(h, 2.5) / o.Area
			return nil
		}, nil, nil, nil, silent)
		o.sol.Distr = false
	}
}

// k returns the lumped weir coefficient
func (o VnotchDrawdown) k() float64 {
	return o.Cd * math.Sqrt(2.0*gravity) * 8.0 / 15.0 * math.Tan(0.5*o.Theta)
}

// Calc returns the head at time t from the closed-form integral
func (o VnotchDrawdown) Calc(t float64) float64 {
	arg := math.Pow(o.H0, -1.5) + 1.5*o.k()/o.Area*t
	return math.Pow(arg, -2.0/3.0)
}

// CalcNum returns the head at time t using the ODE solver
func (o VnotchDrawdown) CalcNum(t float64) float64 {
	if t <= 0 {
		return o.H0
	}
	y := []float64{o.H0}
	err := o.sol.Solve(y, 0, t, t, false)
	if err != nil {
		chk.Panic("VnotchDrawdown failed when integrating the drawdown ODE: %v", err)
	}
	return y[0]
}

// TwoTankOrifice computes the equalisation of two prismatic tanks joined
// by an orifice at their floors. The head difference obeys
//
//   d(dh)/dt = -Cd Ao sqrt(2 g dh) (1/A1 + 1/A2)
type TwoTankOrifice struct {
	A1, A2 float64 // tank plan areas
	Cd     float64 // orifice discharge coefficient
	Ao     float64 // orifice opening area
	H10    float64 // initial depth of tank 1
	H20    float64 // initial depth of tank 2
}

// Init initialises this structure
func (o *TwoTankOrifice) Init(a1, a2, cd, ao, h10, h20 float64) {
	o.A1, o.A2 = a1, a2
	o.Cd = cd
	o.Ao = ao
	o.H10, o.H20 = h10, h20
}

// Equilibrium returns the common final head
func (o TwoTankOrifice) Equilibrium() float64 {
	return (o.A1*o.H10 + o.A2*o.H20) / (o.A1 + o.A2)
}

// Calc returns the two depths at time t
func (o TwoTankOrifice) Calc(t float64) (h1, h2 float64) {
	c := 1.0/o.A1 + 1.0/o.A2
	k := 0.5 * o.Cd * o.Ao * math.Sqrt(2.0*gravity) * c
	s := math.Sqrt(o.H10-o.H20) - k*t
	if s < 0 {
		s = 0
	}
	dh := s * s
	// split the difference according to the area ratio
	heq := o.Equilibrium()
	h1 = heq + dh*o.A2/(o.A1+o.A2)
	h2 = heq - dh*o.A1/(o.A1+o.A2)
	return
}

// TimeToEqualise returns the time for the head difference to fall to dh
func (o TwoTankOrifice) TimeToEqualise(dh float64) float64 {
	c := 1.0/o.A1 + 1.0/o.A2
	k := 0.5 * o.Cd * o.Ao * math.Sqrt(2.0*gravity) * c
	return (math.Sqrt(o.H10-o.H20) - math.Sqrt(dh)) / k
}
