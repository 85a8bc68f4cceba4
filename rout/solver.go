// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rout

// Solver advances the network state through one routing step
type Solver interface {
	TimeStep(fixedStep float64) float64 // next routing step, without advancing state
	Step(dt float64) error              // advance state by dt
}

// allocators holds all available routing solvers
var allocators = make(map[string]func(d *Domain) Solver)
