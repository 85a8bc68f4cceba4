// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package xsect implements cross-section geometry for drainage conduits:
// conversions between flow depth, area, top width, hydraulic radius and
// section factor for closed and open shapes, including irregular surveyed
// transects and user-defined custom shapes
package xsect

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// shape codes
const (
	Dummy = iota
	Circular
	FilledCircular
	RectClosed
	RectOpen
	Trapezoidal
	Triangular
	Parabolic
	PowerFunc
	RectTriang
	RectRound
	ModBasket
	HorizEllipse
	VertEllipse
	Arch
	Eggshaped
	Horseshoe
	Gothic
	Catenary
	Semielliptical
	Baskethandle
	Semicircular
	Irregular
	Custom
	ForceMain
)

// NumShapes is the number of shape codes
const NumShapes = ForceMain + 1

// Ntbl is the size of the normalised geometry tables
const Ntbl = 51

// ShapeByName maps input keywords to shape codes
var ShapeByName = map[string]int{
	"dummy":          Dummy,
	"circular":       Circular,
	"filled_circular": FilledCircular,
	"rect_closed":    RectClosed,
	"rect_open":      RectOpen,
	"trapezoidal":    Trapezoidal,
	"triangular":     Triangular,
	"parabolic":      Parabolic,
	"power":          PowerFunc,
	"rect_triang":    RectTriang,
	"rect_round":     RectRound,
	"mod_basket":     ModBasket,
	"horiz_ellipse":  HorizEllipse,
	"vert_ellipse":   VertEllipse,
	"arch":           Arch,
	"eggshaped":      Eggshaped,
	"horseshoe":      Horseshoe,
	"gothic":         Gothic,
	"catenary":       Catenary,
	"semielliptical": Semielliptical,
	"baskethandle":   Baskethandle,
	"semicircular":   Semicircular,
	"irregular":      Irregular,
	"custom":         Custom,
	"force_main":     ForceMain,
}

// amaxRatio is the ratio of area at maximum flow to full area
// (1.0 for open shapes, < 1.0 for closed shapes)
var amaxRatio = [NumShapes]float64{
	1.0,    // Dummy
	0.9756, // Circular
	0.9756, // FilledCircular
	0.97,   // RectClosed
	1.0,    // RectOpen
	1.0,    // Trapezoidal
	1.0,    // Triangular
	1.0,    // Parabolic
	1.0,    // PowerFunc
	0.98,   // RectTriang
	0.98,   // RectRound
	0.96,   // ModBasket
	0.96,   // HorizEllipse
	0.96,   // VertEllipse
	0.92,   // Arch
	0.96,   // Eggshaped
	0.96,   // Horseshoe
	0.96,   // Gothic
	0.98,   // Catenary
	0.98,   // Semielliptical
	0.96,   // Baskethandle
	0.96,   // Semicircular
	1.0,    // Irregular
	0.96,   // Custom
	0.9756, // ForceMain
}

// fudge tolerance for depths and areas (ft, ft2)
const fudge = 0.0001

// Xsect holds the validated-to-canonical form of one cross section. The
// geometric constants are computed once by New; the lookup methods never
// allocate.
type Xsect struct {

	// identification
	Type int // shape code

	// canonical constants
	YFull float64 // depth when full (ft)
	WMax  float64 // maximum top width (ft)
	YwMax float64 // depth at maximum top width (ft)
	AFull float64 // area when full (ft2)
	RFull float64 // hydraulic radius when full (ft)
	SFull float64 // section factor when full (ft^8/3)
	SMax  float64 // maximum section factor (ft^8/3)
	AMax  float64 // area at maximum flow (ft2)

	// shape parameters
	Base     float64 // bottom width for rectangular/trapezoidal family (ft)
	SlopeL   float64 // left side slope (horizontal:vertical)
	SlopeR   float64 // right side slope (horizontal:vertical)
	Exponent float64 // exponent for power-function shape
	YBot     float64 // depth of bottom section (filled, rect_triang, rect_round) (ft)
	ABot     float64 // area of bottom section (ft2)
	RBot     float64 // radius of bottom section (rect_round, mod_basket) (ft)
	SBot     float64 // slope of bottom section (rect_triang)
	WBot     float64 // width of bottom section (ft)

	// force main friction
	HwC     float64 // Hazen-Williams coefficient
	DwRough float64 // Darcy-Weisbach roughness height (ft)

	// normalised tables (tabulated shapes): value at y/yFull or a/aFull
	areaTbl  []float64 // a/aFull as function of y/yFull
	hradTbl  []float64 // r/rFull as function of y/yFull
	widthTbl []float64 // w/wMax as function of y/yFull
	sectTbl  []float64 // s/sFull as function of a/aFull

	// transect extras
	LengthFactor float64 // conveyance length / main channel length
	RoughFactor  float64 // roughness multiplier; 1.0 for every section built here (overbank roughness enters hradTbl)
}

// IsOpen tells whether the shape has a free surface at full depth
func (o *Xsect) IsOpen() bool {
	switch o.Type {
	case RectOpen, Trapezoidal, Triangular, Parabolic, PowerFunc, Irregular:
		return true
	}
	return false
}

// New creates a cross section of the given shape with geometry parameters p.
// The meaning of p follows the shape:
//   circular, force_main:        p[0]=diameter (plus C or e for force mains)
//   filled_circular:             p[0]=diameter, p[1]=sediment depth
//   rect_closed, rect_open:      p[0]=full height, p[1]=width
//   trapezoidal:                 p[0]=full height, p[1]=base width, p[2]=left slope, p[3]=right slope
//   triangular:                  p[0]=full height, p[1]=top width
//   parabolic:                   p[0]=full height, p[1]=top width
//   power:                       p[0]=full height, p[1]=top width, p[2]=exponent
//   rect_triang:                 p[0]=full height, p[1]=top width, p[2]=triangle height
//   rect_round:                  p[0]=full height, p[1]=top width, p[2]=bottom radius
//   mod_basket:                  p[0]=full height, p[1]=base width, p[2]=top radius
//   curved closed shapes:        p[0]=full height (p[1]=max width for ellipses/arch)
// Irregular and custom sections are created with NewFromTransect and
// NewFromCurve instead.
func New(shapeType int, p []float64) (o *Xsect, err error) {
	o = new(Xsect)
	o.Type = shapeType
	o.LengthFactor = 1.0
	o.RoughFactor = 1.0
	err = o.setParams(p)
	if err != nil {
		return nil, err
	}
	return
}

// setParams validates p and computes the canonical constants
func (o *Xsect) setParams(p []float64) (err error) {
	get := func(i int) float64 {
		if i < len(p) {
			return p[i]
		}
		return 0
	}
	switch o.Type {

	case Dummy:
		o.YFull, o.WMax, o.AFull, o.RFull, o.SFull, o.SMax = fudge, fudge, fudge, fudge, fudge, fudge

	case Circular, ForceMain:
		d := get(0)
		if d <= 0 {
			return chk.Err("circular section requires a positive diameter")
		}
		o.setCircular(d)
		if o.Type == ForceMain {
			o.HwC = get(1)
			o.DwRough = get(2)
		}

	case FilledCircular:
		err = o.setFilledCircular(get(0), get(1))

	case RectClosed:
		h, w := get(0), get(1)
		if h <= 0 || w <= 0 {
			return chk.Err("closed rectangular section requires positive height and width")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.AFull = h * w
		o.RFull = o.AFull / (2.0 * (h + w))
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		o.SMax = o.sofaRectClosed(0.97 * o.AFull)

	case RectOpen:
		h, w := get(0), get(1)
		if h <= 0 || w <= 0 {
			return chk.Err("open rectangular section requires positive height and width")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.AFull = h * w
		o.RFull = o.AFull / (2.0*h + w)
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		o.SMax = o.SFull

	case Trapezoidal:
		h, b, sl, sr := get(0), get(1), get(2), get(3)
		if h <= 0 || b < 0 || sl < 0 || sr < 0 || b+sl+sr <= 0 {
			return chk.Err("trapezoidal section requires positive height and non-negative widths/slopes")
		}
		o.YFull = h
		o.Base = b
		o.SlopeL = sl
		o.SlopeR = sr
		o.WMax = b + h*(sl+sr)
		o.YwMax = h
		o.AFull = (b + 0.5*h*(sl+sr)) * h
		perim := b + h*(math.Sqrt(1+sl*sl)+math.Sqrt(1+sr*sr))
		o.RFull = o.AFull / perim
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		o.SMax = o.SFull

	case Triangular:
		h, w := get(0), get(1)
		if h <= 0 || w <= 0 {
			return chk.Err("triangular section requires positive height and width")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.SBot = 0.5 * w / h
		o.AFull = 0.5 * h * w
		o.RFull = o.AFull / (2.0 * h * math.Sqrt(1.0+o.SBot*o.SBot))
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		o.SMax = o.SFull

	case Parabolic:
		h, w := get(0), get(1)
		if h <= 0 || w <= 0 {
			return chk.Err("parabolic section requires positive height and width")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.AFull = 2.0 / 3.0 * h * w
		o.RFull = o.AFull / o.parabPerim(h)
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		o.SMax = o.SFull

	case PowerFunc:
		h, w, m := get(0), get(1), get(2)
		if h <= 0 || w <= 0 || m <= 0 {
			return chk.Err("power-function section requires positive height, width and exponent")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.Exponent = m
		o.AFull = h * w / (m + 1.0)
		o.buildFromProfile(func(y float64) float64 {
			return w * math.Pow(y/h, m)
		})

	case RectTriang:
		h, w, yb := get(0), get(1), get(2)
		if h <= 0 || w <= 0 || yb <= 0 || yb > h {
			return chk.Err("rect-triangular section requires positive height, width and triangle height <= height")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.YBot = yb
		o.SBot = 0.5 * w / yb
		o.ABot = 0.5 * yb * w
		o.AFull = o.ABot + (h-yb)*w
		perim := 2.0*yb*math.Sqrt(1.0+o.SBot*o.SBot) + 2.0*(h-yb) + w
		o.RFull = o.AFull / perim
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		alfMax := 0.98
		o.SMax = o.SofA(alfMax * o.AFull)

	case RectRound:
		h, w, rb := get(0), get(1), get(2)
		if h <= 0 || w <= 0 || rb < w/2.0 {
			return chk.Err("rect-round section requires positive height, width and bottom radius >= half width")
		}
		o.YFull = h
		o.WMax = w
		o.YwMax = h
		o.RBot = rb
		// bottom circular segment subtending the section width
		theta := 2.0 * math.Asin(w/2.0/rb)
		o.YBot = rb * (1.0 - math.Cos(theta/2.0))
		o.ABot = 0.5 * rb * rb * (theta - math.Sin(theta))
		o.SBot = theta // central angle kept for segment lookups
		o.AFull = o.ABot + (h-o.YBot)*w
		perim := rb*theta + 2.0*(h-o.YBot) + w
		o.RFull = o.AFull / perim
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		alfMax := 0.98
		o.SMax = o.SofA(alfMax * o.AFull)

	case ModBasket:
		h, b, rt := get(0), get(1), get(2)
		if h <= 0 || b <= 0 || rt < b/2.0 {
			return chk.Err("modified baskethandle requires positive height, base and top radius >= half base")
		}
		o.YFull = h
		o.WMax = b
		o.Base = b
		o.RBot = rt
		// height of the crown arc above the rectangular walls
		theta := 2.0 * math.Asin(b/2.0/rt)
		o.YBot = rt * (1.0 - math.Cos(theta/2.0)) // crown rise
		o.SBot = theta
		aTop := 0.5*rt*rt*(theta-math.Sin(theta))
		o.AFull = b*(h-o.YBot) + aTop
		o.YwMax = h - o.YBot
		perim := 2.0*(h-o.YBot) + b + rt*theta
		o.RFull = o.AFull / perim
		o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
		alfMax := 0.96
		o.SMax = o.SofA(alfMax * o.AFull)

	case HorizEllipse, VertEllipse, Arch, Eggshaped, Horseshoe, Gothic,
		Catenary, Semielliptical, Baskethandle, Semicircular:
		err = o.setCurved(get(0), get(1))

	case Irregular, Custom:
		return chk.Err("irregular and custom sections must be created from a transect or shape curve")

	default:
		return chk.Err("unknown cross-section shape code %d", o.Type)
	}
	if err != nil {
		return
	}
	o.AMax = amaxRatio[o.Type] * o.AFull
	if o.SMax == 0 {
		o.SMax = o.SFull
	}
	return
}

// AofY returns the flow area for depth y
func (o *Xsect) AofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y >= o.YFull {
		return o.AFull
	}
	switch o.Type {
	case Dummy:
		return 0
	case ForceMain, Circular:
		return o.AFull * circSegAlpha(y/o.YFull)
	case FilledCircular:
		return o.filledAofY(y)
	case RectClosed, RectOpen:
		return y * o.WMax
	case Trapezoidal:
		return y * (o.Base + 0.5*y*(o.SlopeL+o.SlopeR))
	case Triangular:
		return y * y * o.SBot
	case Parabolic:
		return 2.0 / 3.0 * o.WMax * y * math.Sqrt(y/o.YFull)
	case RectTriang:
		if y <= o.YBot {
			return y * y * o.SBot
		}
		return o.ABot + (y-o.YBot)*o.WMax
	case RectRound:
		if y <= o.YBot {
			return segAreaOfY(o.RBot, y)
		}
		return o.ABot + (y-o.YBot)*o.WMax
	case ModBasket:
		if y <= o.YwMax {
			return y * o.Base
		}
		// subtract the dry part of the crown segment
		yc := o.YBot - (y - o.YwMax) // remaining crown rise above surface
		return o.AFull - segAreaOfY(o.RBot, yc)
	}
	return o.AFull * lookup(y/o.YFull, o.areaTbl)
}

// YofA returns the flow depth for area a
func (o *Xsect) YofA(a float64) float64 {
	if a <= 0 {
		return 0
	}
	if a >= o.AFull {
		return o.YFull
	}
	alpha := a / o.AFull
	switch o.Type {
	case Dummy:
		return 0
	case ForceMain, Circular:
		return o.YFull * circSegYofAlpha(alpha)
	case FilledCircular:
		return o.filledYofA(a)
	case RectClosed, RectOpen:
		return a / o.WMax
	case Trapezoidal:
		s := 0.5 * (o.SlopeL + o.SlopeR)
		if s == 0 {
			return a / o.Base
		}
		return (math.Sqrt(o.Base*o.Base+4.0*s*a) - o.Base) / (2.0 * s)
	case Triangular:
		return math.Sqrt(a / o.SBot)
	case Parabolic:
		return math.Pow(3.0*a*math.Sqrt(o.YFull)/(2.0*o.WMax), 2.0/3.0)
	case RectTriang:
		if a <= o.ABot {
			return math.Sqrt(a / o.SBot)
		}
		return o.YBot + (a-o.ABot)/o.WMax
	case RectRound:
		if a <= o.ABot {
			return segYofArea(o.RBot, a)
		}
		return o.YBot + (a-o.ABot)/o.WMax
	case ModBasket:
		aRect := o.Base * o.YwMax
		if a <= aRect {
			return a / o.Base
		}
		yc := segYofArea(o.RBot, o.AFull-a)
		return o.YFull - yc
	}
	return o.YFull * invLookup(alpha, o.areaTbl)
}

// WofY returns the top width for depth y. Zero signals a closed crown.
func (o *Xsect) WofY(y float64) float64 {
	if y < 0 {
		return 0
	}
	switch o.Type {
	case Dummy:
		return 0
	case ForceMain, Circular:
		if y >= o.YFull {
			return 0
		}
		t := y / o.YFull
		return o.WMax * 2.0 * math.Sqrt(t*(1.0-t))
	case FilledCircular:
		return o.filledWofY(y)
	case RectClosed:
		if y >= o.YFull {
			return 0 // closed at crown by definition
		}
		return o.WMax
	case RectOpen:
		return o.WMax
	case Trapezoidal:
		if y > o.YFull {
			y = o.YFull
		}
		return o.Base + y*(o.SlopeL+o.SlopeR)
	case Triangular:
		if y > o.YFull {
			y = o.YFull
		}
		return 2.0 * o.SBot * y
	case Parabolic:
		if y > o.YFull {
			y = o.YFull
		}
		return o.WMax * math.Sqrt(y/o.YFull)
	case RectTriang:
		if y >= o.YFull {
			return 0
		}
		if y <= o.YBot {
			return 2.0 * o.SBot * y
		}
		return o.WMax
	case RectRound:
		if y >= o.YFull {
			return 0
		}
		if y <= o.YBot {
			return segWidthOfY(o.RBot, y)
		}
		return o.WMax
	case ModBasket:
		if y >= o.YFull {
			return 0
		}
		if y <= o.YwMax {
			return o.Base
		}
		yc := o.YBot - (y - o.YwMax)
		return segWidthOfY(o.RBot, yc)
	}
	if y >= o.YFull {
		if o.IsOpen() {
			return o.WMax * o.widthTbl[Ntbl-1]
		}
		return 0
	}
	return o.WMax * lookup(y/o.YFull, o.widthTbl)
}

// RofY returns the hydraulic radius for depth y
func (o *Xsect) RofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y >= o.YFull {
		return o.RFull
	}
	switch o.Type {
	case Dummy:
		return 0
	case ForceMain, Circular:
		return o.RFull * circSegRho(y/o.YFull)
	case FilledCircular:
		return o.filledRofY(y)
	case RectClosed:
		return y * o.WMax / (o.WMax + 2.0*y)
	case RectOpen:
		return y * o.WMax / (o.WMax + 2.0*y)
	case Trapezoidal:
		a := o.AofY(y)
		p := o.Base + y*(math.Sqrt(1.0+o.SlopeL*o.SlopeL)+math.Sqrt(1.0+o.SlopeR*o.SlopeR))
		return a / p
	case Triangular:
		return o.SBot * y / (2.0 * math.Sqrt(1.0+o.SBot*o.SBot))
	case Parabolic:
		return o.AofY(y) / o.parabPerim(y)
	case RectTriang:
		if y <= o.YBot {
			return o.SBot * y / (2.0 * math.Sqrt(1.0+o.SBot*o.SBot))
		}
		a := o.ABot + (y-o.YBot)*o.WMax
		p := 2.0*o.YBot*math.Sqrt(1.0+o.SBot*o.SBot) + 2.0*(y-o.YBot)
		return a / p
	case RectRound:
		if y <= o.YBot {
			theta := 2.0 * math.Acos(1.0-y/o.RBot)
			return 0.5 * o.RBot * (1.0 - math.Sin(theta)/theta)
		}
		a := o.ABot + (y-o.YBot)*o.WMax
		p := o.RBot*o.SBot + 2.0*(y-o.YBot)
		return a / p
	case ModBasket:
		if y <= o.YwMax {
			return y * o.Base / (o.Base + 2.0*y)
		}
		yc := o.YBot - (y - o.YwMax)
		thetaWet := o.SBot - 2.0*math.Acos(1.0-yc/o.RBot) // wetted part of crown arc
		if thetaWet < 0 {
			thetaWet = 0
		}
		a := o.AofY(y)
		p := 2.0*o.YwMax + o.Base + o.RBot*thetaWet
		return a / p
	}
	return o.RFull * lookup(y/o.YFull, o.hradTbl)
}

// RofA returns the hydraulic radius for area a
func (o *Xsect) RofA(a float64) float64 {
	if a <= 0 {
		return 0
	}
	return o.RofY(o.YofA(a))
}

// SofA returns the section factor a * r(a)^(2/3)
func (o *Xsect) SofA(a float64) float64 {
	if a <= 0 {
		return 0
	}
	switch o.Type {
	case ForceMain, Circular:
		if a > o.AFull {
			a = o.AFull
		}
		return o.SFull * lookup(a/o.AFull, o.sectTbl)
	}
	r := o.RofA(a)
	return a * math.Pow(r, 2.0/3.0)
}

// sofaRectClosed is SofA before the canonical constants are finalised
func (o *Xsect) sofaRectClosed(a float64) float64 {
	y := a / o.WMax
	r := y * o.WMax / (o.WMax + 2.0*y)
	return a * math.Pow(r, 2.0/3.0)
}

// AofS returns the flow area with section factor s, inverting SofA on its
// ascending branch; s at or above the maximum returns the area at maximum
// flow.
func (o *Xsect) AofS(s float64) float64 {
	if s <= 0 {
		return 0
	}
	if s >= o.SMax {
		return o.AMax
	}
	switch o.Type {
	case ForceMain, Circular:
		return o.AFull * invLookup(s/o.SFull, o.sectTbl)
	}
	// Newton on S(a) - s over the ascending branch
	a := o.AMax * s / o.SMax // secant initial guess
	for it := 0; it < 40; it++ {
		f := o.SofA(a) - s
		df := o.DSdA(a)
		if df <= 0 {
			break
		}
		da := f / df
		a -= da
		if a < fudge {
			a = fudge
		}
		if a > o.AMax {
			a = o.AMax
		}
		if math.Abs(da) < 0.001*o.AFull {
			return a
		}
	}
	return a
}

// DSdA returns the derivative of the section factor with respect to area,
// via central differences of 0.2% of the full area
func (o *Xsect) DSdA(a float64) float64 {
	da := 0.002 * o.AFull
	a1 := a - da
	if a1 < 0 {
		a1 = 0
	}
	a2 := a + da
	if a2 > o.AMax {
		a2 = o.AMax
		if a1 >= a2 {
			a1 = a2 - 2.0*da
		}
	}
	return (o.SofA(a2) - o.SofA(a1)) / (a2 - a1)
}

// parabPerim returns the wetted perimeter of the parabolic shape at depth y
func (o *Xsect) parabPerim(y float64) float64 {
	// half-width x(y) = (wMax/2) sqrt(y/yFull);  dx/dy = k/sqrt(y)
	k := o.WMax / (4.0 * math.Sqrt(o.YFull))
	k2 := k * k
	// arc length of x(y): Int sqrt(1 + k2/y) dy has a closed form
	arc := math.Sqrt(y*(y+k2)) + k2*math.Log((math.Sqrt(y)+math.Sqrt(y+k2))/k)
	return 2.0 * arc
}

// lookup interpolates table (uniform abscissae on [0,1]) at x
func lookup(x float64, table []float64) float64 {
	n := len(table)
	if x <= 0 {
		return table[0]
	}
	if x >= 1 {
		return table[n-1]
	}
	dx := 1.0 / float64(n-1)
	i := int(x / dx)
	if i >= n-1 {
		i = n - 2
	}
	f := (x - float64(i)*dx) / dx
	return (1.0-f)*table[i] + f*table[i+1]
}

// invLookup finds the normalised abscissa where a non-decreasing table
// reaches value v (ascending branch only)
func invLookup(v float64, table []float64) float64 {
	n := len(table)
	if v <= table[0] {
		return 0
	}
	// scan only the ascending branch
	imax := 0
	for i := 1; i < n; i++ {
		if table[i] < table[i-1] {
			break
		}
		imax = i
	}
	if v >= table[imax] {
		return float64(imax) / float64(n-1)
	}
	lo, hi := 0, imax
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if table[mid] < v {
			lo = mid
		} else {
			hi = mid
		}
	}
	dx := 1.0 / float64(n-1)
	f := (v - table[lo]) / (table[hi] - table[lo])
	return (float64(lo) + f) * dx
}

// segAreaOfY returns the area of a circular segment of radius r filled to
// depth y above the lowest point
func segAreaOfY(r, y float64) float64 {
	if y <= 0 {
		return 0
	}
	if y > 2.0*r {
		y = 2.0 * r
	}
	theta := 2.0 * math.Acos(1.0-y/r)
	return 0.5 * r * r * (theta - math.Sin(theta))
}

// segWidthOfY returns the chord width of a circular segment
func segWidthOfY(r, y float64) float64 {
	if y <= 0 || y >= 2.0*r {
		return 0
	}
	return 2.0 * math.Sqrt(y*(2.0*r-y))
}

// segYofArea inverts segAreaOfY by Newton iteration on the central angle
func segYofArea(r, a float64) float64 {
	if a <= 0 {
		return 0
	}
	full := math.Pi * r * r
	if a >= full {
		return 2.0 * r
	}
	// solve theta - sin(theta) = 2 a / r^2
	k := 2.0 * a / (r * r)
	theta := math.Pow(12.0*k, 1.0/3.0) // small-angle start
	if theta > 2.0*math.Pi {
		theta = 2.0 * math.Pi
	}
	for it := 0; it < 30; it++ {
		f := theta - math.Sin(theta) - k
		df := 1.0 - math.Cos(theta)
		if df < 1e-12 {
			break
		}
		dt := f / df
		theta -= dt
		if math.Abs(dt) < 1e-10 {
			break
		}
	}
	return r * (1.0 - math.Cos(theta/2.0))
}
