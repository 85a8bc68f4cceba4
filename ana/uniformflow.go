// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"

	"github.com/cpmech/godrain/xsect"
	"github.com/cpmech/gosl/chk"
)

// PipeUniformFlow computes uniform (normal) and critical flow conditions
// in a circular pipe with the Manning equation
type PipeUniformFlow struct {
	Diam  float64      // pipe diameter
	Slope float64      // bed slope
	N     float64      // Manning's n
	xs    *xsect.Xsect // circular section
}

// Init initialises this structure
func (o *PipeUniformFlow) Init(diam, slope, n float64) {
	o.Diam = diam
	o.Slope = slope
	o.N = n
	var err error
	o.xs, err = xsect.New(xsect.Circular, []float64{diam})
	if err != nil {
		chk.Panic("PipeUniformFlow cannot build the circular section: %v", err)
	}
}

// Qfull returns the Manning capacity of the full pipe
func (o PipeUniformFlow) Qfull() float64 {
	return 1.486 / o.N * o.xs.SofA(o.xs.AFull) * math.Sqrt(o.Slope)
}

// NormalDepth returns the uniform flow depth for discharge q
func (o PipeUniformFlow) NormalDepth(q float64) float64 {
	s := q * o.N / (1.486 * math.Sqrt(o.Slope))
	return o.xs.YofA(o.xs.AofS(s))
}

// CriticalDepth returns the critical depth for discharge q
func (o PipeUniformFlow) CriticalDepth(q float64) float64 {
	yc, ok := o.xs.Ycrit(q)
	if !ok {
		return o.Diam
	}
	return yc
}

// Velocity returns the uniform flow velocity for discharge q
func (o PipeUniformFlow) Velocity(q float64) float64 {
	y := o.NormalDepth(q)
	a := o.xs.AofY(y)
	if a <= 0 {
		return 0
	}
	return q / a
}
