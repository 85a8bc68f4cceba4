// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"github.com/cpmech/godrain/inp"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ErrorCode enumerates the failure kinds surfaced by the routing core
type ErrorCode int

const (
	ErrNone       ErrorCode = iota
	ErrValidation           // invalid network or option at Open
	ErrTopology             // cycle or bad tree layout
	ErrNumerical            // numerical failure inside a solver
	ErrResource             // allocation failure at Open
)

// Error carries an error code together with its description
type Error struct {
	Code ErrorCode
	Msg  string
}

// Error implements the error interface
func (o *Error) Error() string { return o.Msg }

// newErr builds a coded error
func newErr(code ErrorCode, msg string, prm ...interface{}) *Error {
	return &Error{Code: code, Msg: io.Sf(msg, prm...)}
}

// CodeOf extracts the ErrorCode of an error returned by this package
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrNone
	}
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ErrValidation
}

// Open accepts an already-parsed project and prepares the routing core:
// cross sections are already tabulated by inp; Open validates the topology,
// sorts the links for the non-dynamic models, assigns initial depths and
// allocates every per-step buffer. No allocation happens after Open.
func Open(sim *inp.Simulation) (o *Domain, err error) {
	if sim == nil {
		return nil, newErr(ErrValidation, "project handle is nil")
	}
	o, err = newDomain(sim)
	if err != nil {
		return nil, newErr(ErrValidation, "%v", err)
	}

	// topology checks and routing order
	err = o.sortLinks()
	if err != nil {
		return nil, err
	}

	// solver
	alloc, ok := allocators[sim.Routing.Model]
	if !ok {
		return nil, newErr(ErrValidation, "cannot find routing solver named %q", sim.Routing.Model)
	}
	o.solver = alloc(o)
	return
}

// RoutingStep returns the routing time step the solver would take next,
// bounded above by fixedStep, without advancing any state
func (o *Domain) RoutingStep(fixedStep float64) float64 {
	return o.solver.TimeStep(fixedStep)
}

// Execute advances the simulation state by dt seconds
func (o *Domain) Execute(dt float64) (err error) {
	if dt < inp.MinTimeStep {
		dt = inp.MinTimeStep
	}

	// regulator settings ramp toward their targets
	o.updateSettings(dt)

	// lateral inflows at the new time
	t := o.Time + dt
	for i, n := range o.Nodes {
		n.OldLatFlow = n.NewLatFlow
		n.NewLatFlow = o.LatInflow(i, t)
		if o.Losses != nil {
			evap, seep := o.Losses(i, t, n.NewDepth)
			n.LossRate = evap + seep
		}
	}

	err = o.solver.Step(dt)
	o.Time = t
	o.Steps++

	// mass balance totals
	for _, n := range o.Nodes {
		o.TotInflow += 0.5 * (n.OldLatFlow + n.NewLatFlow) * dt
		o.TotOverflow += n.Overflow * dt
		o.TotLosses += (n.LossRate + o.storageSeepage(n)) * dt
		if n.Type == Outfall {
			o.TotOutflow += (n.Inflow - n.Outflow) * dt
		}
	}
	return
}

// Close releases the domain. The core allocates only Go-managed memory, so
// Close just drops the references and invalidates the handle.
func (o *Domain) Close() {
	o.Nodes = nil
	o.Links = nil
	o.Adj = nil
	o.partSurf, o.partDqdh, o.partQin, o.partQout = nil, nil, nil, nil
	o.solver = nil
}

// Run advances the simulation to Sim.Data.Tf using the adaptive step,
// printing progress when verbose is on
func (o *Domain) Run() (err error) {
	tf := o.Sim.Data.Tf
	fixed := o.Sim.Data.Dt
	if tf <= 0 {
		return chk.Err("simulation needs a positive total time")
	}
	if fixed <= 0 {
		fixed = 30
	}
	for o.Time < tf {
		dt := o.RoutingStep(fixed)
		if o.Time+dt > tf {
			dt = tf - o.Time
		}
		err = o.Execute(dt)
		if err != nil {
			return
		}
		if o.Sim.Data.Verbose {
			io.Pf("%30.6f\r", o.Time)
		}
	}
	return
}

// read-only accessors ////////////////////////////////////////////////////////

// NodeDepth returns the current water depth at node i (ft)
func (o *Domain) NodeDepth(i int) float64 { return o.Nodes[i].NewDepth }

// NodeHead returns the current hydraulic head at node i (ft)
func (o *Domain) NodeHead(i int) float64 { return o.Nodes[i].Head() }

// NodeInflow returns the current total inflow to node i (cfs)
func (o *Domain) NodeInflow(i int) float64 { return o.Nodes[i].Inflow }

// NodeOverflow returns the current flooding overflow at node i (cfs)
func (o *Domain) NodeOverflow(i int) float64 { return o.Nodes[i].Overflow }

// LinkFlow returns the current flow in link j in its canonical direction (cfs)
func (o *Domain) LinkFlow(j int) float64 {
	l := o.Links[j]
	return l.NewFlow * float64(l.Direction)
}

// LinkDepth returns the current midpoint flow depth of link j (ft)
func (o *Domain) LinkDepth(j int) float64 { return o.Links[j].NewDepth }

// LinkVolume returns the current stored volume of link j (ft3)
func (o *Domain) LinkVolume(j int) float64 { return o.Links[j].NewVolume }

// LinkSetting returns the current setting of link j
func (o *Domain) LinkSetting(j int) float64 { return o.Links[j].Setting }

// LinkFroude returns the Froude number of link j
func (o *Domain) LinkFroude(j int) float64 { return o.Links[j].Froude }

// LinkFullState returns the full state of link j
func (o *Domain) LinkFullState(j int) int { return o.Links[j].FullState }

// ContinuityError returns the relative volume continuity error accumulated
// since Open, as a fraction of total inflow
func (o *Domain) ContinuityError() float64 {
	stored := 0.0
	for _, n := range o.Nodes {
		stored += n.NewVolume
	}
	for _, l := range o.Links {
		stored += l.NewVolume
	}
	dStored := stored - o.InitVolume
	resid := o.TotInflow - o.TotOutflow - o.TotOverflow - o.TotLosses - dStored
	denom := o.TotInflow + o.InitVolume
	if denom <= 0 {
		return 0
	}
	return resid / denom
}

// updateSettings ramps regulator settings toward their targets, bounded by
// the actuation rate, and clips out-of-range targets with a warning
func (o *Domain) updateSettings(dt float64) {
	for j, l := range o.Links {
		if l.Type == Conduit {
			continue
		}
		target := o.TargetSetting(j)
		if target < 0 {
			target = 0
			o.Warnings++
		}
		if target > 1 && l.Type != Pump {
			target = 1
			o.Warnings++
		}
		orate := l.Data.ORate
		if orate > 0 {
			maxStep := dt / orate
			if target > l.Setting+maxStep {
				target = l.Setting + maxStep
			}
			if target < l.Setting-maxStep {
				target = l.Setting - maxStep
			}
		}
		l.Setting = target
	}
}
