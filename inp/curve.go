// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
)

// curve kinds
const (
	CurvePump1      = "pump1"      // wet-well volume vs flow (step lookup)
	CurvePump2      = "pump2"      // inlet depth vs flow (step lookup)
	CurvePump3      = "pump3"      // head differential vs flow (interpolated)
	CurvePump4      = "pump4"      // inlet depth vs flow (interpolated)
	CurveStorage    = "storage"    // depth vs surface area
	CurveRating     = "rating"     // head or depth vs outlet discharge
	CurveDiversion  = "diversion"  // total inflow vs diverted flow
	CurveTidal      = "tidal"      // hour of day vs outfall stage
	CurveShape      = "shape"      // normalised depth vs normalised width
	CurveTimeSeries = "timeseries" // time (s) vs value
)

// CurveData holds one lookup table
type CurveData struct {
	Name string    `json:"name"` // curve name
	Kind string    `json:"kind"` // curve kind
	X    []float64 `json:"x"`    // abscissae, strictly increasing
	Y    []float64 `json:"y"`    // ordinates
}

// CurvesData holds all curves of a simulation
type CurvesData []*CurveData

// Derive validates all curves
func (o CurvesData) Derive() (err error) {
	seen := make(map[string]bool)
	for _, c := range o {
		if c.Name == "" {
			return chk.Err("curve with kind %q has no name", c.Kind)
		}
		if seen[c.Name] {
			return chk.Err("curve name %q is not unique", c.Name)
		}
		seen[c.Name] = true
		if len(c.X) < 2 || len(c.X) != len(c.Y) {
			return chk.Err("curve %q needs matching x and y lists with at least two points", c.Name)
		}
		for i := 1; i < len(c.X); i++ {
			if c.X[i] <= c.X[i-1] {
				return chk.Err("curve %q abscissae must be strictly increasing", c.Name)
			}
		}
	}
	return
}

// Get returns a curve by name, optionally constrained to a kind
func (o CurvesData) Get(name, kind string) (c *CurveData, err error) {
	for _, cv := range o {
		if cv.Name == name {
			if kind != "" && cv.Kind != kind {
				return nil, chk.Err("curve %q has kind %q but %q is required", name, cv.Kind, kind)
			}
			return cv, nil
		}
	}
	return nil, chk.Err("cannot find curve named %q", name)
}

// Lookup interpolates the curve at x, holding the end values outside the
// table range
func (o *CurveData) Lookup(x float64) float64 {
	n := len(o.X)
	if x <= o.X[0] {
		return o.Y[0]
	}
	if x >= o.X[n-1] {
		return o.Y[n-1]
	}
	lo, hi := 0, n-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if o.X[mid] <= x {
			lo = mid
		} else {
			hi = mid
		}
	}
	f := (x - o.X[lo]) / (o.X[hi] - o.X[lo])
	return (1.0-f)*o.Y[lo] + f*o.Y[hi]
}

// LookupStep returns the ordinate of the last point at or below x
// (staircase lookup, used by type 1 and type 2 pump curves)
func (o *CurveData) LookupStep(x float64) float64 {
	n := len(o.X)
	if x < o.X[0] {
		return 0
	}
	for i := n - 1; i >= 0; i-- {
		if x >= o.X[i] {
			return o.Y[i]
		}
	}
	return 0
}

// Integrate returns the integral of y dx from the first abscissa to x,
// used to convert storage area curves into volumes
func (o *CurveData) Integrate(x float64) float64 {
	n := len(o.X)
	v := 0.0
	for i := 1; i < n; i++ {
		if x <= o.X[i-1] {
			return v
		}
		x2 := o.X[i]
		y2 := o.Y[i]
		if x < x2 {
			y2 = o.Lookup(x)
			x2 = x
		}
		v += 0.5 * (o.Y[i-1] + y2) * (x2 - o.X[i-1])
	}
	// extrapolate with the last ordinate held constant
	if x > o.X[n-1] {
		v += o.Y[n-1] * (x - o.X[n-1])
	}
	return v
}

// InverseMax returns the abscissa at which a non-increasing ordinate (pump
// head curves) first falls to y, interpolated linearly; it returns the first
// abscissa when the first ordinate is already at or below y, and the last
// abscissa when no ordinate falls to y
func (o *CurveData) InverseMax(y float64) float64 {
	n := len(o.X)
	for i := 0; i < n; i++ {
		if o.Y[i] <= y {
			if i == 0 {
				return o.X[0]
			}
			f := (o.Y[i-1] - y) / (o.Y[i-1] - o.Y[i])
			return o.X[i-1] + f*(o.X[i]-o.X[i-1])
		}
	}
	return o.X[n-1]
}
