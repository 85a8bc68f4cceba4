// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/godrain/inp"
	"github.com/cpmech/godrain/rout"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	// message
	io.PfWhite("\nGodrain -- Go Drainage Network Hydraulics\n\n")

	// simulation filenamepath
	flag.Parse()
	if flag.NArg() < 1 {
		chk.Panic("missing input: godrain simulation.sim")
	}
	simfilepath := flag.Arg(0)

	// read project
	sim, err := inp.ReadSim(simfilepath)
	if err != nil {
		chk.Panic("cannot read simulation file:\n%v", err)
	}
	io.Pf("> Simulation (.sim) file read\n")
	if sim.Data.Desc != "" {
		io.Pf("> %s\n", sim.Data.Desc)
	}

	// open routing core
	dom, err := rout.Open(sim)
	if err != nil {
		chk.Panic("cannot open routing core:\n%v", err)
	}
	defer dom.Close()
	io.Pf("> Routing core opened with the %q model\n", sim.Routing.Model)

	// run
	err = dom.Run()
	if err != nil {
		io.PfRed("> Failed\n")
		chk.Panic("simulation failed:\n%v", err)
	}

	// summary
	io.PfGreen("\n> Success\n")
	io.Pf("> steps             = %d\n", dom.Steps)
	io.Pf("> non-converged     = %d\n", dom.NonConverged)
	io.Pf("> warnings          = %d\n", dom.Warnings)
	io.Pf("> continuity error  = %.4f %%\n", 100.0*dom.ContinuityError())
}
