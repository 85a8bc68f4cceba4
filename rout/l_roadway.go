// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// FHWA HDS-5 roadway overtopping coefficients: discharge coefficient versus
// head for low head-to-width ratio, versus head/width for high ratio, and
// the submergence factor versus the downstream/upstream head ratio

var crLowPaved = [][2]float64{{0.0, 2.85}, {0.2, 2.95}, {0.7, 3.03}, {4.0, 3.05}}

var crLowGravel = [][2]float64{
	{0.0, 2.5}, {0.5, 2.7}, {1.0, 2.8}, {1.5, 2.9}, {2.0, 2.98},
	{2.5, 3.02}, {3.0, 3.03}, {4.0, 3.05}}

var crHighPaved = [][2]float64{{0.15, 3.05}, {0.25, 3.10}}

var crHighGravel = [][2]float64{{0.15, 2.95}, {0.30, 3.10}}

var ktPaved = [][2]float64{
	{0.8, 1.0}, {0.85, 0.98}, {0.90, 0.92}, {0.93, 0.85}, {0.95, 0.80},
	{0.97, 0.70}, {0.98, 0.60}, {0.99, 0.50}, {1.00, 0.40}}

var ktGravel = [][2]float64{
	{0.75, 1.00}, {0.80, 0.985}, {0.83, 0.97}, {0.86, 0.93}, {0.89, 0.90},
	{0.90, 0.87}, {0.92, 0.80}, {0.94, 0.70}, {0.96, 0.60}, {0.98, 0.50},
	{0.99, 0.40}, {1.00, 0.24}}

// roadwayFlow returns the flow overtopping a roadway embankment
func (o *Domain) roadwayFlow(l *Link, zCrest float64) float64 {

	up := o.Nodes[l.Up]
	dn := o.Nodes[l.Dn]
	h1 := up.Head()
	h2 := dn.Head()
	dir := 1.0
	if h2 > h1 {
		h1, h2 = h2, h1
		dir = -1.0
	}
	if dir < 0 && l.Data.FlapGate {
		return 0
	}
	hUp := h1 - zCrest
	if hUp <= fudge {
		l.NewDepth = 0
		return 0
	}
	hDn := math.Max(h2-zCrest, 0)
	l.NewDepth = math.Min(hUp, l.Xs.YFull)

	cr := roadwayCd(hUp, l.Data.RoadWidth, l.Data.RoadSurface)

	// submergence factor from the head ratio
	kt := 1.0
	if hDn > 0 {
		ratio := hDn / hUp
		if l.Data.RoadSurface == "gravel" {
			kt = tableY(ratio, ktGravel)
		} else {
			kt = tableY(ratio, ktPaved)
		}
	}

	q := cr * kt * l.Xs.WMax * math.Pow(hUp, 1.5)
	l.DqDh = 1.5 * q / hUp
	if l.Data.MaxFlow > 0 && q > l.Data.MaxFlow {
		q = l.Data.MaxFlow
	}
	return dir * q
}

// roadwayCd returns the HDS-5 discharge coefficient
func roadwayCd(hUp, roadWidth float64, surface string) float64 {
	gravel := surface == "gravel"
	if roadWidth > 0 && hUp/roadWidth > 0.15 {
		if gravel {
			return tableY(hUp/roadWidth, crHighGravel)
		}
		return tableY(hUp/roadWidth, crHighPaved)
	}
	if gravel {
		return tableY(hUp, crLowGravel)
	}
	return tableY(hUp, crLowPaved)
}

// tableY interpolates a two-column table, holding the end values
func tableY(x float64, table [][2]float64) float64 {
	n := len(table)
	if x <= table[0][0] {
		return table[0][1]
	}
	if x >= table[n-1][0] {
		return table[n-1][1]
	}
	for i := 1; i < n; i++ {
		if x <= table[i][0] {
			f := (x - table[i-1][0]) / (table[i][0] - table[i-1][0])
			return (1.0-f)*table[i-1][1] + f*table[i][1]
		}
	}
	return table[n-1][1]
}
