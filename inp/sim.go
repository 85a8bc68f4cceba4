// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the project data read from a (.sim) JSON file:
// the drainage network (nodes, links, cross sections), curves, transects
// and time functions consumed by the routing core
package inp

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// routing model names
const (
	DynWave = "dynwave"
	KinWave = "kinwave"
	Steady  = "steady"
)

// Data holds global data for simulations
type Data struct {
	Desc    string  `json:"desc"`    // description of simulation
	Tf      float64 `json:"tf"`      // total simulation time (s)
	Dt      float64 `json:"dt"`      // fixed routing step (s)
	DtOut   float64 `json:"dtout"`   // output interval (s); 0 means every step
	Verbose bool    `json:"verbose"` // show progress messages
}

// RoutingData holds routing solver options
type RoutingData struct {

	// solver selection
	Model string `json:"model"` // routing model: dynwave, kinwave, steady

	// dynamic wave options
	InertialTerms string  `json:"inertial"`    // "full", "partial" or "none" momentum inertial terms
	NormalFlowLim string  `json:"normalflow"`  // normal flow criterion: "slope", "froude" or "both"
	Surcharge     string  `json:"surcharge"`   // surcharge method: "extran" or "slot"
	ForceMainEqn  string  `json:"forcemain"`   // force main friction: "h-w" or "d-w"
	CourantFactor float64 `json:"courant"`     // Courant time step factor, in (0, 2]
	MinSurfArea   float64 `json:"minsurfarea"` // minimum nodal surface area (ft2)
	HeadTol       float64 `json:"headtol"`     // node head convergence tolerance (ft)
	MaxTrials     int     `json:"maxtrials"`   // max Picard iterations per step
	MinVarStep    float64 `json:"minvarstep"`  // floor of the variable time step (s)
	Omega         float64 `json:"omega"`       // under-relaxation factor
	NumThreads    int     `json:"nthreads"`    // parallel sweep workers; 0 or 1 means serial
}

// default routing constants
const (
	DefaultSurfArea  = 12.566 // min. nodal surface area (~4 ft diameter)
	DefaultHeadTol   = 0.005  // default head tolerance (ft)
	DefaultMaxTrials = 8      // max trials per time step
	DefaultOmega     = 0.5    // under-relaxation parameter
	MinTimeStep      = 0.001  // smallest routing step (s)
)

// SetDefaults fills zero-valued options with their defaults and validates
// the ranges of the ones given
func (o *RoutingData) SetDefaults() (err error) {
	if o.Model == "" {
		o.Model = DynWave
	}
	switch o.Model {
	case DynWave, KinWave, Steady:
	default:
		return chk.Err("unknown routing model %q", o.Model)
	}
	if o.InertialTerms == "" {
		o.InertialTerms = "partial"
	}
	if o.NormalFlowLim == "" {
		o.NormalFlowLim = "both"
	}
	if o.Surcharge == "" {
		o.Surcharge = "extran"
	}
	if o.ForceMainEqn == "" {
		o.ForceMainEqn = "h-w"
	}
	if o.CourantFactor == 0 {
		o.CourantFactor = 0.75
	}
	if o.CourantFactor <= 0 || o.CourantFactor > 2 {
		return chk.Err("courant factor must be within (0, 2]: %g is invalid", o.CourantFactor)
	}
	if o.MinSurfArea == 0 {
		o.MinSurfArea = DefaultSurfArea
	}
	if o.HeadTol == 0 {
		o.HeadTol = DefaultHeadTol
	}
	if o.MaxTrials == 0 {
		o.MaxTrials = DefaultMaxTrials
	}
	if o.MinVarStep == 0 {
		o.MinVarStep = 0.5
	}
	if o.Omega == 0 {
		o.Omega = DefaultOmega
	}
	return
}

// Simulation holds one already-parsed project: the network and every table
// or time function the routing core consumes
type Simulation struct {

	// input
	Data      Data          `json:"data"`      // global data
	Routing   RoutingData   `json:"routing"`   // solver options
	Nodes     []*NodeData   `json:"nodes"`     // all nodes
	Links     []*LinkData   `json:"links"`     // all links
	Curves    CurvesData    `json:"curves"`    // lookup tables
	Transects TransectsData `json:"transects"` // irregular sections
	Functions FuncsData     `json:"functions"` // time functions
}

// ReadSim reads a simulation from a JSON file and resolves all references
func ReadSim(simfilepath string) (o *Simulation, err error) {
	b, err := io.ReadFile(simfilepath)
	if err != nil {
		return nil, chk.Err("cannot read simulation file %q:\n%v", simfilepath, err)
	}
	o = new(Simulation)
	err = json.Unmarshal(b, o)
	if err != nil {
		return nil, chk.Err("cannot parse simulation file %q:\n%v", simfilepath, err)
	}
	err = o.Derive()
	if err != nil {
		return nil, err
	}
	return
}

// Derive resolves names to indices, builds cross sections and validates the
// network. It must be called before the project is handed to the solver;
// ReadSim calls it automatically.
func (o *Simulation) Derive() (err error) {

	// options
	err = o.Routing.SetDefaults()
	if err != nil {
		return
	}

	// curve subsets
	err = o.Curves.Derive()
	if err != nil {
		return
	}

	// node indices
	nodeIdx := make(map[string]int)
	for i, nd := range o.Nodes {
		if nd.Name == "" {
			return chk.Err("node %d has no name", i)
		}
		if _, ok := nodeIdx[nd.Name]; ok {
			return chk.Err("node name %q is not unique", nd.Name)
		}
		nodeIdx[nd.Name] = i
		err = nd.Derive(o)
		if err != nil {
			return
		}
	}

	// links: indices, cross sections and subtype data
	linkIdx := make(map[string]int)
	for i, ln := range o.Links {
		if ln.Name == "" {
			return chk.Err("link %d has no name", i)
		}
		if _, ok := linkIdx[ln.Name]; ok {
			return chk.Err("link name %q is not unique", ln.Name)
		}
		linkIdx[ln.Name] = i
	}
	for _, ln := range o.Links {
		up, ok := nodeIdx[ln.NodeUp]
		if !ok {
			return chk.Err("link %q references unknown upstream node %q", ln.Name, ln.NodeUp)
		}
		dn, ok := nodeIdx[ln.NodeDn]
		if !ok {
			return chk.Err("link %q references unknown downstream node %q", ln.Name, ln.NodeDn)
		}
		if up == dn {
			return chk.Err("link %q has the same node %q at both ends", ln.Name, ln.NodeUp)
		}
		ln.IdxUp, ln.IdxDn = up, dn
		err = ln.Derive(o)
		if err != nil {
			return
		}
	}

	// divider diverted-link resolution
	for _, nd := range o.Nodes {
		if nd.Type != "divider" {
			continue
		}
		j, ok := linkIdx[nd.DivertedLink]
		if !ok {
			return chk.Err("divider %q references unknown diverted link %q", nd.Name, nd.DivertedLink)
		}
		nd.DivertedIdx = j
	}
	return
}
