// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"

	"github.com/cpmech/godrain/xsect"
)

// conduitData holds the intermediate cross-section state of one conduit
// during a momentum solve
type conduitData struct {
	y1, y2     float64 // upstream/downstream flow depth (ft)
	h1, h2     float64 // upstream/downstream hydraulic head (ft)
	z1, z2     float64 // upstream/downstream conduit invert elevation (ft)
	a1, a2     float64 // upstream/downstream flow area (ft2)
	r1         float64 // upstream hydraulic radius (ft)
	yMid       float64 // midstream depth (ft)
	aMid       float64 // midstream area (ft2)
	rMid       float64 // midstream hydraulic radius (ft)
	yFull      float64 // full depth (ft)
	yCrit      float64 // critical depth for the current flow (ft)
	yNorm      float64 // normal depth for the current flow (ft)
	fasnh      float64 // fraction between normal and critical depth control
	aWtd, rWtd float64 // upstream-weighted area and hydraulic radius
	velocity   float64 // flow velocity (ft/s)
	sigma      float64 // inertial damping factor
	length     float64 // effective conduit length (ft)
	qLast      float64 // flow of the previous iteration, per barrel (cfs)
	isFull     bool    // conduit flows full
	dq1, dq5   float64 // friction and local-loss denominator terms
}

// conduitFlow advances the momentum equation of one conduit by dt and
// returns the new flow (all barrels). Surface-area and dqdh contributions
// for the adjoining nodes are stored on the link.
func (o *Domain) conduitFlow(l *Link, dt float64) float64 {

	cd := conduitData{
		yFull:  l.Xs.YFull,
		length: l.Length,
		qLast:  l.LastFlow / l.Barrels,
	}
	qOld := l.OldFlow / l.Barrels

	// heads and depths at the two ends
	up, dn := o.Nodes[l.Up], o.Nodes[l.Dn]
	cd.z1 = up.InvertElev + l.OffsetUp
	cd.z2 = dn.InvertElev + l.OffsetDn
	cd.h1 = math.Max(up.Head(), cd.z1)
	cd.h2 = math.Max(dn.Head(), cd.z2)
	cd.y1 = math.Min(math.Max(cd.h1-cd.z1, fudge), cd.yFull)
	cd.y2 = math.Min(math.Max(cd.h2-cd.z2, fudge), cd.yFull)

	// dry conduit carries no flow
	if cd.y1 <= fudge && cd.y2 <= fudge && math.Abs(qOld) < flowTol {
		l.FlowClass = DryLink
		l.SurfArea1 = fudge * cd.length / 2.0 * l.Barrels
		l.SurfArea2 = l.SurfArea1
		l.DqDh = 0
		l.Froude = 0
		o.saveConduitResult(l, &cd, 0)
		return 0
	}

	// flow class, critical/normal depths and control interpolation
	o.findFlowClass(l, &cd)

	// surface areas and the depths used by the momentum equation
	o.findSurfArea(l, &cd)

	// section geometry at the adjusted depths
	cd.yMid = 0.5 * (cd.y1 + cd.y2)
	if cd.yMid < fudge {
		cd.yMid = fudge
	}
	cd.a1 = l.Xs.AofY(cd.y1)
	cd.a2 = l.Xs.AofY(cd.y2)
	cd.aMid = math.Max(l.Xs.AofY(cd.yMid), fudge)
	cd.rMid = math.Max(l.Xs.RofY(cd.yMid), fudge)
	cd.r1 = math.Max(l.Xs.RofY(cd.y1), fudge)
	cd.isFull = cd.y1 >= cd.yFull && cd.y2 >= cd.yFull

	// velocity from the previous iteration's flow
	cd.velocity = cd.qLast / cd.aMid
	if math.Abs(cd.velocity) > maxVelocity {
		cd.velocity = maxVelocity * sign(cd.qLast)
	}

	// Froude number and inertial damping
	o.applyInertialDamping(l, &cd)

	// upstream weighting of area and hydraulic radius
	rho := 1.0
	if !cd.isFull && l.FlowClass == SubCritical && l.Froude > 0.5 {
		rho = cd.sigma
	}
	cd.aWtd = cd.a1 + (cd.aMid-cd.a1)*rho
	cd.rWtd = cd.r1 + (cd.rMid-cd.r1)*rho

	// momentum equation solved algebraically for the new flow
	q := o.solveMomentumEqn(l, &cd, qOld, dt)

	// under-relaxation with the previous iterate
	omega := o.Sim.Routing.Omega
	q = (1.0-omega)*cd.qLast + omega*q

	// flow cannot reverse direction within one step
	if q*qOld < 0 {
		q = 0.001 * sign(q)
	}

	// culvert inlet control
	if l.Culv != nil && q > 0 {
		qIC := l.Culv.inletControlFlow(cd.h1-cd.z1, l.Slope)
		if qIC >= 0 && qIC < q {
			q = qIC
			l.InletCtrl = true
		} else {
			l.InletCtrl = false
		}
	}

	// normal flow limit
	q = o.checkNormalFlow(l, &cd, q)

	// user imposed flow limit
	if l.Data.MaxFlow > 0 {
		qLim := l.Data.MaxFlow / l.Barrels
		if math.Abs(q) > qLim {
			q = qLim * sign(q)
		}
	}

	// flap gates on the link or on a gated outfall prevent reverse flow
	if q < 0 {
		if l.Data.FlapGate {
			q = 0
		} else if dn.Type == Outfall && dn.Data.FlapGate {
			q = 0
		}
	}

	// derivative of flow w.r.t. head for the node updater
	denom := 1.0 + cd.dq1 + cd.dq5
	l.DqDh = Gravity * dt * cd.aWtd / cd.length / denom * l.Barrels

	o.saveConduitResult(l, &cd, q)
	return q * l.Barrels
}

// findFlowClass determines the conduit flow class and the fraction fasnh
// interpolating between normal and critical depth control
func (o *Domain) findFlowClass(l *Link, cd *conduitData) {

	l.FlowClass = SubCritical
	cd.fasnh = 1.0
	q := math.Abs(cd.qLast)

	// critical and normal depths for the current flow
	var okc bool
	cd.yCrit, okc = l.Xs.Ycrit(q)
	if !okc {
		cd.yCrit = cd.yFull // conservative substitute legitimised here
	}
	cd.yNorm = cd.yFull
	if l.Slope > 0 {
		cd.yNorm = l.Xs.YofA(l.Xs.AofS(q / (l.Beta * math.Sqrt(l.Slope))))
	}

	wetUp := cd.h1-cd.z1 > fudge
	wetDn := cd.h2-cd.z2 > fudge
	switch {
	case !wetUp && !wetDn:
		l.FlowClass = DryLink
	case !wetUp:
		l.FlowClass = UpDry
	case !wetDn:
		l.FlowClass = DnDry
	default:
		ycMin := math.Min(cd.yCrit, cd.yNorm)
		ycMax := math.Max(cd.yCrit, cd.yNorm)
		// the control end is the one the flow leaves through
		yCtl := cd.y2
		if cd.qLast < 0 {
			yCtl = cd.y1
		}
		if yCtl < ycMin {
			l.FlowClass = SupCritical
		} else if yCtl < ycMax {
			if ycMax-ycMin < fudge {
				cd.fasnh = 0
			} else {
				cd.fasnh = (yCtl - ycMin) / (ycMax - ycMin)
			}
		}
	}
}

// findSurfArea adjusts the end depths according to the flow class and
// accumulates the free-surface areas assigned to the end nodes
func (o *Domain) findSurfArea(l *Link, cd *conduitData) {

	switch l.FlowClass {

	case SubCritical:
		// interpolate the control depth between its actual value and the
		// smaller of the normal and critical depths
		ycMin := math.Min(cd.yCrit, cd.yNorm)
		if cd.qLast >= 0 {
			cd.y2 = cd.fasnh*cd.y2 + (1.0-cd.fasnh)*ycMin
			if cd.y2 < cd.yCrit {
				cd.y2 = cd.yCrit
				l.FlowClass = DnCritical
			}
		} else {
			cd.y1 = cd.fasnh*cd.y1 + (1.0-cd.fasnh)*ycMin
			if cd.y1 < cd.yCrit {
				cd.y1 = cd.yCrit
				l.FlowClass = UpCritical
			}
		}

	case SupCritical:
		// upstream control; the leaving end sits at the smaller of the
		// normal and critical depths
		ycMin := math.Min(cd.yCrit, cd.yNorm)
		if cd.qLast >= 0 {
			cd.y2 = math.Max(ycMin, fudge)
		} else {
			cd.y1 = math.Max(ycMin, fudge)
		}

	case UpDry:
		cd.y1 = fudge
		if cd.qLast < 0 && cd.y2 > cd.yCrit {
			// free fall into the dry upstream end
			cd.y1 = cd.yCrit
			l.FlowClass = UpCritical
		}

	case DnDry:
		cd.y2 = fudge
		if cd.qLast > 0 && cd.y1 > cd.yCrit {
			// free overfall at the downstream end
			cd.y2 = cd.yCrit
			l.FlowClass = DnCritical
		}
	}

	yMid := 0.5 * (cd.y1 + cd.y2)
	w1 := o.surfWidth(l, cd.y1)
	w2 := o.surfWidth(l, cd.y2)
	wMid := o.surfWidth(l, yMid)
	l.SurfArea1 = (w1 + wMid) * cd.length / 4.0 * l.Barrels
	l.SurfArea2 = (wMid + w2) * cd.length / 4.0 * l.Barrels
}

// surfWidth returns the free-surface width at depth y, substituting the
// Preissmann slot width above the crown when the slot method is active
func (o *Domain) surfWidth(l *Link, y float64) float64 {
	if y >= l.Xs.YFull && !l.Xs.IsOpen() {
		if o.Sim.Routing.Surcharge == "slot" {
			return slotWidth(l.Xs, y)
		}
		return 0
	}
	w := l.Xs.WofY(y)
	if w < fudge {
		w = fudge
	}
	return w
}

// slotWidth returns the Preissmann slot width above the conduit crown,
// floored at 1% of the maximum section width
func slotWidth(xs *xsect.Xsect, y float64) float64 {
	ratio := y / xs.YFull
	w := 0.5423 * math.Exp(-math.Pow(ratio, 2.4)) * xs.WMax
	if w < 0.01*xs.WMax {
		w = 0.01 * xs.WMax
	}
	return w
}

// applyInertialDamping computes the Froude number and the damping factor
// sigma according to the inertial-terms option
func (o *Domain) applyInertialDamping(l *Link, cd *conduitData) {
	w := l.Xs.WofY(cd.yMid)
	l.Froude = 0
	if w > fudge && !cd.isFull {
		yHyd := cd.aMid / w
		l.Froude = math.Abs(cd.velocity) / math.Sqrt(Gravity*yHyd)
	}
	switch o.Sim.Routing.InertialTerms {
	case "full":
		cd.sigma = 1.0
	case "none":
		cd.sigma = 0.0
	default: // partial: damp by the Froude number
		switch {
		case cd.isFull || l.Froude >= 1.0:
			cd.sigma = 0.0
		case l.Froude <= 0.5:
			cd.sigma = 1.0
		default:
			cd.sigma = 2.0 * (1.0 - l.Froude)
		}
	}
}

// solveMomentumEqn assembles and solves the discretised momentum equation
// for the new flow
func (o *Domain) solveMomentumEqn(l *Link, cd *conduitData, qOld, dt float64) float64 {

	v := cd.velocity

	// friction term (denominator)
	cd.dq1 = o.frictionTerm(l, cd, dt)

	// gravity term
	dq2 := dt * Gravity * cd.aWtd * (cd.h2 - cd.h1) / cd.length

	// inertial terms
	dq3 := 2.0 * v * (cd.aMid - l.AOld) * cd.sigma
	dq4 := dt * v * v * (cd.a2 - cd.a1) / cd.length * cd.sigma

	// local losses (denominator)
	cd.dq5 = 0
	if l.HasLosses {
		cd.dq5 = o.findLocalLosses(l, cd) * dt / cd.length
	}

	q := (qOld - dq2 + dq3 + dq4) / (1.0 + cd.dq1 + cd.dq5)

	// uniform seepage loss over the wetted width
	if l.Data.SeepRate > 0 {
		qLoss := l.Data.SeepRate * l.Xs.WofY(cd.yMid) * cd.length
		if q > 0 {
			q = math.Max(0, q-0.5*qLoss)
		} else {
			q = math.Min(0, q+0.5*qLoss)
		}
	}
	return q
}

// frictionTerm returns the friction contribution to the momentum equation
// denominator: dt g Sf / |v|. Partial flow and ordinary conduits use the
// Manning friction slope; pressurised force mains use Hazen-Williams or
// Darcy-Weisbach according to the force-main option.
func (o *Domain) frictionTerm(l *Link, cd *conduitData, dt float64) float64 {
	v := math.Abs(cd.velocity)
	if l.Xs.Type == xsect.ForceMain && cd.isFull && v > fudge {
		r := cd.rWtd
		var sf float64
		if o.Sim.Routing.ForceMainEqn == "d-w" {
			// Swamee-Jain approximation of the Colebrook-White factor
			const viscosity = 1.1e-5
			re := math.Max(4.0*r*v/viscosity, 4000.0)
			arg := l.Xs.DwRough/(14.8*r) + 5.74/math.Pow(re, 0.9)
			f := 0.25 / math.Pow(math.Log10(arg), 2.0)
			sf = f * v * v / (8.0 * Gravity * r)
		} else {
			c := l.Xs.HwC
			if c <= 0 {
				c = 130.0
			}
			sf = math.Pow(v/(1.318*c*math.Pow(r, 0.63)), 1.0/0.54)
		}
		return dt * Gravity * sf / v
	}
	return dt * l.RoughFactor * v / math.Pow(cd.rWtd, 4.0/3.0)
}

// findLocalLosses returns the combined minor loss coefficient term
func (o *Domain) findLocalLosses(l *Link, cd *conduitData) float64 {
	q := math.Abs(cd.qLast)
	v1 := q / math.Max(cd.a1, fudge)
	v2 := q / math.Max(cd.a2, fudge)
	vm := q / cd.aMid
	return (l.Data.KInlet*v1 + l.Data.KOutlet*v2 + l.Data.KAvg*vm) / 2.0
}

// checkNormalFlow caps the flow at the Manning normal flow computed from
// the upstream section when the selected criterion triggers
func (o *Domain) checkNormalFlow(l *Link, cd *conduitData, q float64) float64 {
	l.NormalFlowLtd = false
	if l.Slope <= 0 || q <= 0 {
		return q
	}
	hasOutfall := o.Nodes[l.Up].Type == Outfall || o.Nodes[l.Dn].Type == Outfall

	limit := false
	crit := o.Sim.Routing.NormalFlowLim
	if (crit == "slope" || crit == "both") && !hasOutfall {
		// water surface slope flatter than the conduit slope
		if cd.y1 < cd.y2 {
			limit = true
		}
	}
	if !limit && (crit == "froude" || crit == "both") {
		v1 := q / math.Max(cd.a1, fudge)
		w1 := l.Xs.WofY(cd.y1)
		if w1 > fudge {
			fr1 := math.Abs(v1) / math.Sqrt(Gravity*cd.a1/w1)
			if fr1 >= 1.0 {
				limit = true
			}
		}
	}
	if !limit {
		return q
	}

	qNorm := l.Beta * l.Xs.SofA(cd.a1) * math.Sqrt(l.Slope)
	if qNorm < q {
		l.NormalFlowLtd = true
		return qNorm
	}
	return q
}

// saveConduitResult stores the per-iteration outputs on the link
func (o *Domain) saveConduitResult(l *Link, cd *conduitData, q float64) {
	l.NewFlow = q * l.Barrels
	yMid := 0.5 * (cd.y1 + cd.y2)
	if yMid < fudge {
		yMid = fudge
	}
	l.NewDepth = math.Min(yMid, cd.yFull)
	aMid := l.Xs.AofY(l.NewDepth)
	l.NewVolume = aMid * cd.length * l.Barrels

	// full state at the two ends
	upFull := cd.y1 >= cd.yFull
	dnFull := cd.y2 >= cd.yFull
	switch {
	case upFull && dnFull:
		l.FullState = BothEndsFull
	case upFull:
		l.FullState = UpstreamFull
	case dnFull:
		l.FullState = DownstreamFull
	default:
		l.FullState = NeitherEndFull
	}
}

// sign returns +1.0 or -1.0 following x
func sign(x float64) float64 {
	if x < 0 {
		return -1.0
	}
	return 1.0
}
