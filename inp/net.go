// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/godrain/xsect"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// NodeData holds one node record of the project
type NodeData struct {

	// common input
	Name       string  `json:"name"`       // node name
	Type       string  `json:"type"`       // "junction", "outfall", "storage" or "divider"
	InvertElev float64 `json:"invert"`     // invert elevation (ft)
	FullDepth  float64 `json:"fulldepth"`  // depth from invert to ground/rim (ft)
	InitDepth  float64 `json:"initdepth"`  // initial water depth (ft)
	SurDepth   float64 `json:"surdepth"`   // extra depth above rim before flooding (ft)
	PondedArea float64 `json:"pondedarea"` // area ponded once flooded (ft2)

	// lateral inflow
	InflowFunc   string  `json:"inflowfunc"`   // name of inflow time function
	InflowSeries string  `json:"inflowseries"` // name of inflow time-series curve
	BaseInflow   float64 `json:"baseinflow"`   // constant inflow added to the above (cfs)

	// storage
	AConst       float64 `json:"aconst"`  // constant term of funnel storage area (ft2)
	ACoeff       float64 `json:"acoeff"`  // coefficient of funnel storage area
	AExpon       float64 `json:"aexpon"`  // exponent of funnel storage area
	StorageCurve string  `json:"storagecurve"` // name of depth-area curve
	FEvap        float64 `json:"fevap"`   // fraction of evaporation realised
	SeepRate     float64 `json:"seeprate"` // exfiltration rate (ft/s)

	// outfall
	OutfallKind string  `json:"outfallkind"` // "free", "normal", "fixed", "tidal" or "timeseries"
	StageElev   float64 `json:"stage"`       // fixed stage elevation (ft)
	TideCurve   string  `json:"tidecurve"`   // name of tidal curve
	StageSeries string  `json:"stageseries"` // name of stage time-series curve
	FlapGate    bool    `json:"flapgate"`    // backflow prevented
	RouteTo     string  `json:"routeto"`     // subcatchment receiving overflow (opaque)

	// divider
	DividerKind  string  `json:"dividerkind"` // "cutoff", "overflow", "tabular" or "weir"
	DivertedLink string  `json:"diverted"`    // name of the diverted link
	QMin         float64 `json:"qmin"`        // minimum flow before diversion (cfs)
	DWeirDepth   float64 `json:"dweirdepth"`  // weir divider: depth at full diversion (ft)
	DWeirCoeff   float64 `json:"dweircoeff"`  // weir divider: discharge coefficient
	FlowCurve    string  `json:"flowcurve"`   // tabular divider: diversion curve

	// derived
	InflowFcn   fun.Func   `json:"-"` // inflow time function (may be nil)
	InflowTbl   *CurveData `json:"-"` // inflow time series (may be nil)
	StorageTbl  *CurveData `json:"-"` // storage area curve (may be nil)
	TideTbl     *CurveData `json:"-"` // tidal curve (may be nil)
	StageTbl    *CurveData `json:"-"` // stage time series (may be nil)
	FlowTbl     *CurveData `json:"-"` // diversion curve (may be nil)
	DivertedIdx int        `json:"-"` // index of the diverted link
}

// Derive validates the record and resolves its curve and function names
func (o *NodeData) Derive(sim *Simulation) (err error) {
	switch o.Type {
	case "junction":
	case "outfall":
		switch o.OutfallKind {
		case "", "free":
			o.OutfallKind = "free"
		case "normal":
		case "fixed":
		case "tidal":
			o.TideTbl, err = sim.Curves.Get(o.TideCurve, CurveTidal)
			if err != nil {
				return
			}
		case "timeseries":
			o.StageTbl, err = sim.Curves.Get(o.StageSeries, CurveTimeSeries)
			if err != nil {
				return
			}
		default:
			return chk.Err("node %q has unknown outfall kind %q", o.Name, o.OutfallKind)
		}
	case "storage":
		if o.StorageCurve != "" {
			o.StorageTbl, err = sim.Curves.Get(o.StorageCurve, CurveStorage)
			if err != nil {
				return
			}
		} else if o.AConst <= 0 && o.ACoeff <= 0 {
			return chk.Err("storage node %q needs a storage curve or funnel coefficients", o.Name)
		}
	case "divider":
		switch o.DividerKind {
		case "cutoff", "overflow":
		case "weir":
			if o.DWeirDepth <= 0 || o.DWeirCoeff <= 0 {
				return chk.Err("weir divider %q needs positive depth and coefficient", o.Name)
			}
		case "tabular":
			o.FlowTbl, err = sim.Curves.Get(o.FlowCurve, CurveDiversion)
			if err != nil {
				return
			}
		default:
			return chk.Err("node %q has unknown divider kind %q", o.Name, o.DividerKind)
		}
	default:
		return chk.Err("node %q has unknown type %q", o.Name, o.Type)
	}

	if o.FullDepth < 0 || o.InitDepth < 0 || o.InitDepth > o.FullDepth+o.SurDepth {
		return chk.Err("node %q has inconsistent depths", o.Name)
	}

	// lateral inflow sources
	if o.InflowFunc != "" {
		o.InflowFcn, err = sim.Functions.Get(o.InflowFunc)
		if err != nil {
			return
		}
	}
	if o.InflowSeries != "" {
		o.InflowTbl, err = sim.Curves.Get(o.InflowSeries, CurveTimeSeries)
		if err != nil {
			return
		}
	}
	return
}

// LateralInflow returns the externally supplied inflow at time t
func (o *NodeData) LateralInflow(t float64) (q float64) {
	q = o.BaseInflow
	if o.InflowFcn != nil {
		q += o.InflowFcn.F(t, nil)
	}
	if o.InflowTbl != nil {
		q += o.InflowTbl.Lookup(t)
	}
	return
}

// LinkData holds one link record of the project
type LinkData struct {

	// common input
	Name     string  `json:"name"`     // link name
	Type     string  `json:"type"`     // "conduit", "pump", "orifice", "weir" or "outlet"
	NodeUp   string  `json:"nodeup"`   // upstream node name
	NodeDn   string  `json:"nodedn"`   // downstream node name
	OffsetUp float64 `json:"offsetup"` // offset of link invert above upstream node invert (ft)
	OffsetDn float64 `json:"offsetdn"` // offset of link invert above downstream node invert (ft)
	InitFlow float64 `json:"initflow"` // initial flow (cfs)
	MaxFlow  float64 `json:"maxflow"`  // flow limit; 0 means none (cfs)
	FlapGate bool    `json:"flapgate"` // reverse flow prevented

	// cross-section geometry
	Shape      string    `json:"shape"`    // shape keyword (see xsect)
	Geom       []float64 `json:"geom"`     // shape parameters
	TransectNm string    `json:"transect"` // irregular: transect name
	ShapeCurve string    `json:"shapecurve"` // custom: shape curve name

	// conduit
	Length   float64 `json:"length"`   // conduit length (ft)
	Rough    float64 `json:"rough"`    // Manning's n
	Barrels  int     `json:"barrels"`  // number of identical parallel barrels
	KInlet   float64 `json:"kinlet"`   // entrance minor loss coefficient
	KOutlet  float64 `json:"koutlet"`  // exit minor loss coefficient
	KAvg     float64 `json:"kavg"`     // distributed minor loss coefficient
	SeepRate float64 `json:"seeprate"` // uniform seepage rate (ft/s)
	CulvCode int     `json:"culvert"`  // FHWA culvert inlet code; 0 means not a culvert

	// pump
	PumpCurve   string  `json:"pumpcurve"`   // pump curve name; empty means ideal pump
	InitSetting float64 `json:"initsetting"` // initial setting; pumps: 1=on, 0=off
	YOn         float64 `json:"yon"`         // startup depth at inlet node (ft)
	YOff        float64 `json:"yoff"`        // shutoff depth at inlet node (ft)

	// orifice
	OrificeKind string  `json:"orificekind"` // "side" or "bottom"
	Cd          float64 `json:"cd"`          // discharge coefficient
	ORate       float64 `json:"orate"`       // time to open/close fully (s); 0 means instant

	// weir
	WeirKind     string  `json:"weirkind"` // "transverse", "sideflow", "vnotch", "trapezoidal" or "roadway"
	Cd2          float64 `json:"cd2"`      // second coefficient (trapezoidal ends)
	EndCon       int     `json:"endcon"`   // number of end contractions
	CanSurcharge bool    `json:"cansurcharge"` // weir may switch to orifice flow
	RoadWidth    float64 `json:"roadwidth"`    // roadway width in flow direction (ft)
	RoadSurface  string  `json:"roadsurface"`  // "paved" or "gravel"

	// outlet
	RatingCurve string  `json:"ratingcurve"` // rating curve name; empty means functional
	Coeff       float64 `json:"coeff"`       // functional rating coefficient
	Expon       float64 `json:"expon"`       // functional rating exponent
	OutletKind  string  `json:"outletkind"`  // "depth" or "head"

	// derived
	IdxUp   int          `json:"-"` // upstream node index
	IdxDn   int          `json:"-"` // downstream node index
	Xs      *xsect.Xsect `json:"-"` // cross section (nil for pumps and outlets)
	PumpTbl *CurveData   `json:"-"` // pump curve (may be nil)
	RateTbl *CurveData   `json:"-"` // rating curve (may be nil)
}

// Derive validates the record, builds the cross section and resolves curves
func (o *LinkData) Derive(sim *Simulation) (err error) {
	switch o.Type {

	case "conduit":
		if o.Length <= 0 || o.Rough <= 0 {
			return chk.Err("conduit %q needs positive length and roughness", o.Name)
		}
		if o.Barrels == 0 {
			o.Barrels = 1
		}
		err = o.buildXsect(sim)
		if err != nil {
			return
		}

	case "pump":
		if o.PumpCurve != "" {
			o.PumpTbl, err = sim.Curves.Get(o.PumpCurve, "")
			if err != nil {
				return
			}
			switch o.PumpTbl.Kind {
			case CurvePump1, CurvePump2, CurvePump3, CurvePump4:
			default:
				return chk.Err("pump %q curve %q has kind %q", o.Name, o.PumpCurve, o.PumpTbl.Kind)
			}
		}
		if o.InitSetting == 0 {
			o.InitSetting = 1
		}

	case "orifice":
		switch o.OrificeKind {
		case "", "side":
			o.OrificeKind = "side"
		case "bottom":
		default:
			return chk.Err("orifice %q has unknown kind %q", o.Name, o.OrificeKind)
		}
		if o.Cd <= 0 {
			return chk.Err("orifice %q needs a positive discharge coefficient", o.Name)
		}
		err = o.buildXsect(sim)
		if err != nil {
			return
		}
		switch o.Xs.Type {
		case xsect.Circular, xsect.RectClosed:
		default:
			return chk.Err("orifice %q must be circular or closed rectangular", o.Name)
		}
		if o.InitSetting == 0 {
			o.InitSetting = 1
		}

	case "weir":
		switch o.WeirKind {
		case "", "transverse":
			o.WeirKind = "transverse"
		case "sideflow", "vnotch", "trapezoidal":
		case "roadway":
			if o.RoadSurface == "" {
				o.RoadSurface = "paved"
			}
			if o.RoadSurface != "paved" && o.RoadSurface != "gravel" {
				return chk.Err("roadway weir %q has unknown surface %q", o.Name, o.RoadSurface)
			}
		default:
			return chk.Err("weir %q has unknown kind %q", o.Name, o.WeirKind)
		}
		err = o.buildXsect(sim)
		if err != nil {
			return
		}
		if o.InitSetting == 0 {
			o.InitSetting = 1
		}

	case "outlet":
		if o.RatingCurve != "" {
			o.RateTbl, err = sim.Curves.Get(o.RatingCurve, CurveRating)
			if err != nil {
				return
			}
		} else if o.Coeff <= 0 {
			return chk.Err("outlet %q needs a rating curve or functional coefficients", o.Name)
		}
		if o.OutletKind == "" {
			o.OutletKind = "depth"
		}
		if o.InitSetting == 0 {
			o.InitSetting = 1
		}

	default:
		return chk.Err("link %q has unknown type %q", o.Name, o.Type)
	}
	return
}

// buildXsect creates the link's cross section from its shape fields
func (o *LinkData) buildXsect(sim *Simulation) (err error) {
	if o.TransectNm != "" {
		tr, e := sim.Transects.Get(o.TransectNm)
		if e != nil {
			return e
		}
		o.Xs, err = xsect.NewFromTransect(tr)
		return
	}
	if o.ShapeCurve != "" {
		cv, e := sim.Curves.Get(o.ShapeCurve, CurveShape)
		if e != nil {
			return e
		}
		if len(o.Geom) < 1 || o.Geom[0] <= 0 {
			return chk.Err("link %q custom shape needs a positive full depth in geom[0]", o.Name)
		}
		o.Xs, err = xsect.NewFromCurve(o.Geom[0], cv.X, cv.Y)
		return
	}
	code, ok := xsect.ShapeByName[o.Shape]
	if !ok {
		return chk.Err("link %q has unknown cross-section shape %q", o.Name, o.Shape)
	}
	o.Xs, err = xsect.New(code, o.Geom)
	if err != nil {
		return chk.Err("link %q: %v", o.Name, err)
	}
	return
}

// TransectsData holds all transects of a simulation
type TransectsData []*xsect.Transect

// Get returns a transect by name
func (o TransectsData) Get(name string) (t *xsect.Transect, err error) {
	for _, tr := range o {
		if tr.Name == name {
			return tr, nil
		}
	}
	return nil, chk.Err("cannot find transect named %q", name)
}
