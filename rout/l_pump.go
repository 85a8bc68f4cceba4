// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"

	"github.com/cpmech/godrain/inp"
)

// pumpFlow returns the pump discharge for the current node states
func (o *Domain) pumpFlow(l *Link) float64 {

	up := o.Nodes[l.Up]
	dn := o.Nodes[l.Dn]
	l.DqDh = 0

	// hysteretic startup/shutoff on the inlet depth
	if l.Data.YOn > 0 && l.Setting == 0 && up.NewDepth >= l.Data.YOn {
		l.Setting = 1
		l.TargetSetting = 1
	}
	if l.Data.YOff > 0 && l.Setting > 0 && up.NewDepth <= l.Data.YOff {
		l.Setting = 0
		l.TargetSetting = 0
	}
	if l.Setting <= 0 {
		return 0
	}

	var q float64
	tbl := l.Data.PumpTbl
	if tbl == nil {
		// ideal pump conveys whatever arrives at its inlet
		q = math.Max(up.Inflow, 0)
	} else {
		switch tbl.Kind {
		case inp.CurvePump1:
			q = tbl.LookupStep(up.NewVolume)
		case inp.CurvePump2:
			q = tbl.LookupStep(up.NewDepth)
		case inp.CurvePump3:
			dh := dn.Head() - up.Head()
			if dh < tbl.X[0] {
				dh = tbl.X[0]
			}
			q = tbl.Lookup(dh)
			// slope of the head-flow curve feeds the node Newton update
			eps := 0.01
			l.DqDh = math.Abs(tbl.Lookup(dh+eps)-tbl.Lookup(dh-eps)) / (2.0 * eps)
		case inp.CurvePump4:
			q = tbl.Lookup(up.NewDepth)
		}
	}
	if q < 0 {
		q = 0
	}

	// setting scales the pump speed linearly
	q *= l.Setting

	if l.Data.MaxFlow > 0 && q > l.Data.MaxFlow {
		q = l.Data.MaxFlow
	}

	// a pump with a dry inlet cannot deliver
	if up.NewDepth <= fudge {
		q = 0
	}
	return q
}
