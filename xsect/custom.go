// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"github.com/cpmech/gosl/chk"
)

// NewFromCurve creates a closed custom section from a shape curve giving
// normalised width (as a multiple of the full depth) versus normalised
// depth. yNorm must start at 0, end at 1 and be strictly increasing.
func NewFromCurve(yFull float64, yNorm, wNorm []float64) (o *Xsect, err error) {

	// validate
	n := len(yNorm)
	if n < 2 || n != len(wNorm) {
		return nil, chk.Err("custom shape curve needs at least two points")
	}
	if yFull <= 0 {
		return nil, chk.Err("custom section requires a positive full depth")
	}
	if yNorm[0] != 0 || yNorm[n-1] != 1 {
		return nil, chk.Err("custom shape curve must span depths 0 to 1")
	}
	for i := 1; i < n; i++ {
		if yNorm[i] <= yNorm[i-1] {
			return nil, chk.Err("custom shape curve depths must be strictly increasing")
		}
		if wNorm[i] < 0 {
			return nil, chk.Err("custom shape curve widths must be non-negative")
		}
	}

	o = new(Xsect)
	o.Type = Custom
	o.YFull = yFull
	o.LengthFactor = 1.0
	o.RoughFactor = 1.0
	o.buildFromProfile(func(y float64) float64 {
		return yFull * interpCurve(y/yFull, yNorm, wNorm)
	})
	o.AMax = amaxRatio[Custom] * o.AFull
	return
}

// interpCurve linearly interpolates the shape curve at normalised depth t
func interpCurve(t float64, yNorm, wNorm []float64) float64 {
	n := len(yNorm)
	if t <= yNorm[0] {
		return wNorm[0]
	}
	if t >= yNorm[n-1] {
		return wNorm[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if yNorm[mid] <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	f := (t - yNorm[lo]) / (yNorm[hi] - yNorm[lo])
	return (1.0-f)*wNorm[lo] + f*wNorm[hi]
}
