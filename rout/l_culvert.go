// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"

	"github.com/cpmech/godrain/roots"
	"github.com/cpmech/godrain/xsect"
	"github.com/cpmech/gosl/chk"
)

// FHWA HEC-5 culvert inlet-control coefficients, indexed by culvert code.
// Columns: equation form, K, M, C, Y.
var culvertParams = [58][5]float64{
	{0.0, 0.0, 0.0, 0.0, 0.00},

	// Circular concrete
	{1.0, 0.0098, 2.00, 0.0398, 0.67}, // Square edge w/headwall
	{1.0, 0.0018, 2.00, 0.0292, 0.74}, // Groove end w/headwall
	{1.0, 0.0045, 2.00, 0.0317, 0.69}, // Groove end projecting

	// Circular corrugated metal pipe
	{1.0, 0.0078, 2.00, 0.0379, 0.69}, // Headwall
	{1.0, 0.0210, 1.33, 0.0463, 0.75}, // Mitered to slope
	{1.0, 0.0340, 1.50, 0.0553, 0.54}, // Projecting

	// Circular pipe, beveled ring entrance
	{1.0, 0.0018, 2.50, 0.0300, 0.74}, // Beveled ring, 45 deg bevels
	{1.0, 0.0018, 2.50, 0.0243, 0.83}, // Beveled ring, 33.7 deg bevels

	// Rectangular box with flared wingwalls
	{1.0, 0.026, 1.0, 0.0347, 0.81},  // 30-75 deg wingwall flares
	{1.0, 0.061, 0.75, 0.0400, 0.80}, // 90 or 15 deg wingwall flares
	{1.0, 0.061, 0.75, 0.0423, 0.82}, // 0 deg wingwall flares (straight sides)

	// Rectangular box with flared wingwalls and top edge bevel
	{2.0, 0.510, 0.667, 0.0309, 0.80}, // 45 deg flare; 0.43D top edge bevel
	{2.0, 0.486, 0.667, 0.0249, 0.83}, // 18-33.7 deg flare; 0.083D top edge bevel

	// Rectangular box; 90-deg headwall; chamfered or beveled inlet edges
	{2.0, 0.515, 0.667, 0.0375, 0.79},  // chamfered 3/4-in
	{2.0, 0.495, 0.667, 0.0314, 0.82},  // beveled 1/2-in/ft at 45 deg (1:1)
	{2.0, 0.486, 0.667, 0.0252, 0.865}, // beveled 1-in/ft at 33.7 deg (1:1.5)

	// Rectangular box; skewed headwall; chamfered or beveled inlet edges
	{2.0, 0.545, 0.667, 0.04505, 0.73}, // 3/4" chamfered edge, 45 deg skewed headwall
	{2.0, 0.533, 0.667, 0.0425, 0.705}, // 3/4" chamfered edge, 30 deg skewed headwall
	{2.0, 0.522, 0.667, 0.0402, 0.68},  // 3/4" chamfered edge, 15 deg skewed headwall
	{2.0, 0.498, 0.667, 0.0327, 0.75},  // 45 deg beveled edge, 10-45 deg skewed headwall

	// Rectangular box, non-offset flared wingwalls; 3/4" chamfer at top of inlet
	{2.0, 0.497, 0.667, 0.0339, 0.803}, // 45 deg (1:1) wingwall flare
	{2.0, 0.493, 0.667, 0.0361, 0.806}, // 18.4 deg (3:1) wingwall flare
	{2.0, 0.495, 0.667, 0.0386, 0.71},  // 18.4 deg (3:1) wingwall flare, 30 deg inlet skew

	// Rectangular box, offset flared wingwalls, beveled edge at inlet top
	{2.0, 0.497, 0.667, 0.0302, 0.835}, // 45 deg (1:1) flare, 0.042D top edge bevel
	{2.0, 0.495, 0.667, 0.0252, 0.881}, // 33.7 deg (1.5:1) flare, 0.083D top edge bevel
	{2.0, 0.493, 0.667, 0.0227, 0.887}, // 18.4 deg (3:1) flare, 0.083D top edge bevel

	// Corrugated metal box
	{1.0, 0.0083, 2.00, 0.0379, 0.69}, // 90 deg headwall
	{1.0, 0.0145, 1.75, 0.0419, 0.64}, // Thick wall projecting
	{1.0, 0.0340, 1.50, 0.0496, 0.57}, // Thin wall projecting

	// Horizontal ellipse concrete
	{1.0, 0.0100, 2.00, 0.0398, 0.67}, // Square edge w/headwall
	{1.0, 0.0018, 2.50, 0.0292, 0.74}, // Grooved end w/headwall
	{1.0, 0.0045, 2.00, 0.0317, 0.69}, // Grooved end projecting

	// Vertical ellipse concrete
	{1.0, 0.0100, 2.00, 0.0398, 0.67}, // Square edge w/headwall
	{1.0, 0.0018, 2.50, 0.0292, 0.74}, // Grooved end w/headwall
	{1.0, 0.0095, 2.00, 0.0317, 0.69}, // Grooved end projecting

	// Pipe arch, 18" corner radius, corrugated metal
	{1.0, 0.0083, 2.00, 0.0379, 0.69}, // 90 deg headwall
	{1.0, 0.0300, 1.00, 0.0463, 0.75}, // Mitered to slope
	{1.0, 0.0340, 1.50, 0.0496, 0.57}, // Projecting

	// Pipe arch, 18" corner radius, corrugated metal
	{1.0, 0.0300, 1.50, 0.0496, 0.57}, // Projecting
	{1.0, 0.0088, 2.00, 0.0368, 0.68}, // No bevels
	{1.0, 0.0030, 2.00, 0.0269, 0.77}, // 33.7 deg bevels

	// Pipe arch, 31" corner radius, corrugated metal
	{1.0, 0.0300, 1.50, 0.0496, 0.57}, // Projecting
	{1.0, 0.0088, 2.00, 0.0368, 0.68}, // No bevels
	{1.0, 0.0030, 2.00, 0.0269, 0.77}, // 33.7 deg bevels

	// Arch, corrugated metal
	{1.0, 0.0083, 2.00, 0.0379, 0.69}, // 90 deg headwall
	{1.0, 0.0300, 1.00, 0.0473, 0.75}, // Mitered to slope
	{1.0, 0.0340, 1.50, 0.0496, 0.57}, // Thin wall projecting

	// Circular culvert
	{2.0, 0.534, 0.555, 0.0196, 0.90}, // Smooth tapered inlet throat
	{2.0, 0.519, 0.640, 0.0210, 0.90}, // Rough tapered inlet throat

	// Elliptical inlet face
	{2.0, 0.536, 0.622, 0.0368, 0.83},  // Tapered inlet, beveled edges
	{2.0, 0.5035, 0.719, 0.0478, 0.80}, // Tapered inlet, square edges
	{2.0, 0.547, 0.800, 0.0598, 0.75},  // Tapered inlet, thin edge projecting

	// Rectangular
	{2.0, 0.475, 0.667, 0.0179, 0.97}, // Tapered inlet throat

	// Rectangular concrete
	{2.0, 0.560, 0.667, 0.0446, 0.85}, // Side tapered, less favorable edges
	{2.0, 0.560, 0.667, 0.0378, 0.87}, // Side tapered, more favorable edges

	// Rectangular concrete
	{2.0, 0.500, 0.667, 0.0446, 0.65}, // Slope tapered, less favorable edges
	{2.0, 0.500, 0.667, 0.0378, 0.71}, // Slope tapered, more favorable edges
}

// mitered inlet codes receive a positive slope correction
var miteredCodes = map[int]bool{5: true, 37: true, 46: true}

// culvert holds the inlet-control data of one culvert conduit
type culvert struct {
	code    int          // index into the coefficient table
	form    int          // equation form (1 or 2)
	k, m    float64      // unsubmerged flow coefficients
	c, y    float64      // submerged flow coefficients
	mitered bool         // mitered inlet
	xs      *xsect.Xsect // culvert barrel section
	ad      float64      // aFull * sqrt(yFull)
}

// newCulvert validates the inlet code and prepares the coefficient set
func newCulvert(code int, xs *xsect.Xsect) (*culvert, error) {
	if code < 1 || code >= len(culvertParams) {
		return nil, chk.Err("culvert inlet code %d is out of range", code)
	}
	p := culvertParams[code]
	return &culvert{
		code:    code,
		form:    int(p[0]),
		k:       p[1],
		m:       p[2],
		c:       p[3],
		y:       p[4],
		mitered: miteredCodes[code],
		xs:      xs,
		ad:      xs.AFull * math.Sqrt(xs.YFull),
	}, nil
}

// inletControlFlow returns the inlet-controlled capacity for headwater
// depth hw above the culvert inlet invert; a negative return means the
// inlet does not restrict the flow
func (o *culvert) inletControlFlow(hw, slope float64) float64 {
	if hw <= fudge {
		return 0
	}

	// slope correction factor
	scf := -0.5 * slope
	if o.mitered {
		scf = 0.7 * slope
	}

	y := hw / o.xs.YFull
	const yLow, yHigh = 1.2, 1.4
	switch {
	case y < yLow:
		return o.unsubmergedFlow(hw, scf)
	case y > yHigh:
		return o.submergedFlow(hw, scf)
	default:
		// linear transition between the two regimes
		q1 := o.unsubmergedFlow(yLow*o.xs.YFull, scf)
		q2 := o.submergedFlow(yHigh*o.xs.YFull, scf)
		f := (y - yLow) / (yHigh - yLow)
		return (1.0-f)*q1 + f*q2
	}
}

// submergedFlow evaluates the orifice-type submerged inlet equation
func (o *culvert) submergedFlow(hw, scf float64) float64 {
	arg := hw/o.xs.YFull - o.y - scf
	if arg <= 0 {
		return 0
	}
	return o.ad * math.Sqrt(arg/o.c)
}

// unsubmergedFlow evaluates the weir-type unsubmerged inlet equation.
// Form 1 balances the inlet energy head through the critical depth; Form 2
// is explicit in the flow.
func (o *culvert) unsubmergedFlow(hw, scf float64) float64 {
	d := o.xs.YFull
	if o.form == 2 {
		arg := (hw/d - scf) / o.k
		if arg <= 0 {
			return 0
		}
		return o.ad * math.Pow(arg, 1.0/o.m)
	}

	// Form 1: find the critical depth whose energy head plus the inlet
	// loss matches the headwater
	f := func(yc float64) (fv, dfv float64) {
		fv = o.form1Resid(yc, hw, scf)
		dy := 0.001 * d
		y2 := math.Min(yc+dy, d)
		y1 := math.Max(yc-dy, fudge)
		dfv = (o.form1Resid(y2, hw, scf) - o.form1Resid(y1, hw, scf)) / (y2 - y1)
		return
	}
	y1 := fudge * d
	y2 := d
	f1 := o.form1Resid(y1, hw, scf)
	f2 := o.form1Resid(y2, hw, scf)
	if f1*f2 > 0 {
		// inlet passes more than the barrel's critical capacity
		return -1.0
	}
	if f1 > f2 {
		y1, y2 = y2, y1
	}
	yc, _, err := roots.Newton(0.5*d, y1, y2, 0.001*d, f)
	if err != nil {
		return -1.0
	}
	return o.critFlow(yc)
}

// critFlow returns the critical flow at depth yc
func (o *culvert) critFlow(yc float64) float64 {
	a := o.xs.AofY(yc)
	w := o.xs.WofY(yc)
	if w <= 0 {
		return 0
	}
	return math.Sqrt(Gravity * a * a * a / w)
}

// form1Resid is the Form-1 energy balance residual at critical depth yc
func (o *culvert) form1Resid(yc, hw, scf float64) float64 {
	a := o.xs.AofY(yc)
	w := math.Max(o.xs.WofY(yc), fudge)
	d := o.xs.YFull
	qc := o.critFlow(yc)
	hc := yc + 0.5*a/w // specific energy at critical depth
	return hc/d + o.k*math.Pow(qc/o.ad, o.m) + scf - hw/d
}
