// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package xsect

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// The circular family works with the central angle theta of the wetted
// segment. With t = y/yFull:
//   theta = 2 acos(1 - 2 t)
//   alpha = a/aFull = (theta - sin(theta)) / (2 pi)
//   rho   = r/rFull = 1 - sin(theta)/theta
// The inverse relations have no closed form; they use 51-entry normalised
// tables built once at package load from the direct relations.

// normalised circular tables, indexed by uniform alpha
var (
	circDepthTbl [Ntbl]float64 // t as function of alpha
	circSectTbl  [Ntbl]float64 // s/sFull as function of alpha
	circSmaxNorm float64       // max of circSectTbl
)

func init() {
	for i := 0; i < Ntbl; i++ {
		alpha := float64(i) / float64(Ntbl-1)
		t := circTofAlpha(alpha)
		circDepthTbl[i] = t
		circSectTbl[i] = alpha * math.Pow(circRhoOfT(t), 2.0/3.0)
		if circSectTbl[i] > circSmaxNorm {
			circSmaxNorm = circSectTbl[i]
		}
	}
}

// circAlphaOfT returns a/aFull for t = y/yFull
func circAlphaOfT(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	theta := 2.0 * math.Acos(1.0-2.0*t)
	return (theta - math.Sin(theta)) / (2.0 * math.Pi)
}

// circRhoOfT returns r/rFull for t = y/yFull
func circRhoOfT(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	theta := 2.0 * math.Acos(1.0-2.0*t)
	return 1.0 - math.Sin(theta)/theta
}

// circTofAlpha inverts circAlphaOfT by Newton iteration on theta
func circTofAlpha(alpha float64) float64 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 1
	}
	k := 2.0 * math.Pi * alpha
	theta := math.Pow(12.0*k, 1.0/3.0)
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
		if math.Abs(dt) < 1e-12 {
			break
		}
	}
	return 0.5 * (1.0 - math.Cos(theta/2.0))
}

// circSegAlpha returns a/aFull at t = y/yFull
func circSegAlpha(t float64) float64 {
	return circAlphaOfT(t)
}

// circSegRho returns r/rFull at t = y/yFull
func circSegRho(t float64) float64 {
	return circRhoOfT(t)
}

// circSegYofAlpha returns t = y/yFull at alpha = a/aFull
func circSegYofAlpha(alpha float64) float64 {
	if alpha <= 0 {
		return 0
	}
	if alpha >= 1 {
		return 1
	}
	return lookup(alpha, circDepthTbl[:])
}

// setCircular fills the canonical constants for a circular section
func (o *Xsect) setCircular(d float64) {
	o.YFull = d
	o.WMax = d
	o.YwMax = 0.5 * d
	o.AFull = math.Pi / 4.0 * d * d
	o.RFull = 0.25 * d
	o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
	o.SMax = circSmaxNorm * o.SFull
	o.sectTbl = circSectTbl[:]
}

// filled circular sections: a circular pipe with a flat sediment bed of
// depth YBot; depths are measured from the sediment surface

// setFilledCircular fills the canonical constants for a sediment-filled pipe
func (o *Xsect) setFilledCircular(d, yBot float64) error {
	if d <= 0 || yBot < 0 || yBot >= d {
		return errFilled(d, yBot)
	}
	if yBot == 0 {
		o.Type = Circular
		o.setCircular(d)
		return nil
	}
	r := 0.5 * d
	o.YBot = yBot
	o.ABot = segAreaOfY(r, yBot)
	o.WBot = segWidthOfY(r, yBot)
	o.RBot = r
	o.YFull = d - yBot
	o.AFull = math.Pi*r*r - o.ABot
	if yBot >= r {
		o.WMax = o.WBot
		o.YwMax = 0
	} else {
		o.WMax = d
		o.YwMax = r - yBot
	}
	o.RFull = o.filledRofY(o.YFull)
	o.SFull = o.AFull * math.Pow(o.RFull, 2.0/3.0)
	o.SMax = o.SofA(amaxRatio[FilledCircular] * o.AFull)
	return nil
}

func (o *Xsect) filledAofY(y float64) float64 {
	return segAreaOfY(o.RBot, y+o.YBot) - o.ABot
}

func (o *Xsect) filledYofA(a float64) float64 {
	return segYofArea(o.RBot, a+o.ABot) - o.YBot
}

func (o *Xsect) filledWofY(y float64) float64 {
	if y >= o.YFull {
		return 0
	}
	return segWidthOfY(o.RBot, y+o.YBot)
}

func (o *Xsect) filledRofY(y float64) float64 {
	if y <= 0 {
		return 0
	}
	yAbs := y + o.YBot
	if yAbs > 2.0*o.RBot {
		yAbs = 2.0 * o.RBot
	}
	a := segAreaOfY(o.RBot, yAbs) - o.ABot
	thetaTop := 2.0 * math.Acos(1.0-yAbs/o.RBot)
	thetaBot := 2.0 * math.Acos(1.0-o.YBot/o.RBot)
	p := o.RBot*(thetaTop-thetaBot) + o.WBot
	return a / p
}

func errFilled(d, yBot float64) error {
	return chk.Err("filled circular section requires 0 <= sediment depth < diameter (got d=%g, yBot=%g)", d, yBot)
}
