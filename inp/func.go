// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// FuncData holds the definition of a named time function; e.g. a lateral
// inflow hydrograph, a tide variation or a regulator setting schedule
type FuncData struct {
	Name string   `json:"name"` // name of function. ex: zero, inflowA, tideB
	Type string   `json:"type"` // type of function. ex: cte, rmp, sin
	Prms fun.Prms `json:"prms"` // parameters
}

// FuncsData holds all functions of a simulation
type FuncsData []*FuncData

// Get returns a function by name
func (o FuncsData) Get(name string) (fcn fun.Func, err error) {
	if name == "zero" || name == "none" || name == "" {
		fcn = &fun.Zero
		return
	}
	for _, f := range o {
		if f.Name == name {
			fcn = fun.New(f.Type, f.Prms)
			if fcn == nil {
				err = chk.Err("cannot allocate function named %q of type %q", name, f.Type)
			}
			return
		}
	}
	err = chk.Err("cannot find function named %q", name)
	return
}

// String prints one function
func (o FuncData) String() string {
	return io.Sf("    {\"name\":%q, \"type\":%q, \"prms\":%v}", o.Name, o.Type, o.Prms)
}

// String prints functions
func (o FuncsData) String() string {
	if len(o) == 0 {
		return "  \"functions\" : []"
	}
	l := "  \"functions\" : [\n"
	for i, f := range o {
		if i > 0 {
			l += ",\n"
		}
		l += io.Sf("%v", f)
	}
	l += "\n  ]"
	return l
}
