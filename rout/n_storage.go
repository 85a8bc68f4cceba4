// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

import (
	"math"
)

// storageArea returns the surface area of a storage unit at depth y, from
// either its tabulated depth-area curve or the funnel relation
//   area = aConst + aCoeff * y^aExpon
func (o *Domain) storageArea(n *Node, y float64) float64 {
	if y < 0 {
		y = 0
	}
	if tbl := n.Data.StorageTbl; tbl != nil {
		return tbl.Lookup(y)
	}
	a := n.Data.AConst
	if n.Data.ACoeff > 0 {
		a += n.Data.ACoeff * math.Pow(y, n.Data.AExpon)
	}
	return a
}

// storageVolume integrates the storage area relation from the bottom to y
func (o *Domain) storageVolume(n *Node, y float64) float64 {
	if y <= 0 {
		return 0
	}
	if tbl := n.Data.StorageTbl; tbl != nil {
		return tbl.Integrate(y)
	}
	v := n.Data.AConst * y
	if n.Data.ACoeff > 0 {
		v += n.Data.ACoeff * math.Pow(y, n.Data.AExpon+1.0) / (n.Data.AExpon + 1.0)
	}
	return v
}
