// Copyright 2017 The Godrain Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package roots implements scalar root finding with the bracketed
// Newton-Raphson and Ridder methods
package roots

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// MaxIt is the iteration cap shared by both methods
const MaxIt = 60

// Ffcn returns f(x) for Ridder's method
type Ffcn func(x float64) float64

// FdFfcn returns f(x) and df/dx(x) for the Newton method
type FdFfcn func(x float64) (f, df float64)

// Newton finds the root of fdf bracketed between x1 and x2 using a
// combination of Newton-Raphson and bisection. x0 is the initial guess and
// xacc the required accuracy on x. The signs of f(x1) and f(x2) must differ
// and, if f(x1) > f(x2), the caller must switch x1 and x2.
//  Output:
//   root -- refined root
//   nfev -- number of function evaluations
func Newton(x0, x1, x2, xacc float64, fdf FdFfcn) (root float64, nfev int, err error) {

	// initialise the "stepsize before last" and the last step
	x := x0
	xlo, xhi := x1, x2
	dxold := math.Abs(x2 - x1)
	dx := dxold
	f, df := fdf(x)
	nfev = 1

	// loop over allowed iterations
	for j := 1; j <= MaxIt; j++ {

		// bisect if Newton out of range or not decreasing fast enough
		if ((x-xhi)*df-f)*((x-xlo)*df-f) >= 0.0 || math.Abs(2.0*f) > math.Abs(dxold*df) {
			dxold = dx
			dx = 0.5 * (xhi - xlo)
			x = xlo + dx
			if xlo == x {
				root = x
				return
			}
		} else {
			dxold = dx
			dx = f / df
			temp := x
			x -= dx
			if temp == x {
				root = x
				return
			}
		}

		// convergence criterion
		if math.Abs(dx) < xacc {
			root = x
			return
		}

		// evaluate function and maintain bracket on the root
		f, df = fdf(x)
		nfev++
		if f < 0.0 {
			xlo = x
		} else {
			xhi = x
		}
	}
	root = x
	err = chk.Err("Newton did not converge after %d iterations", MaxIt)
	return
}

// Ridder finds the root of f bracketed between x1 and x2 using Ridder's
// method. The function values at x1 and x2 must have opposite signs.
func Ridder(x1, x2, xacc float64, f Ffcn) (root float64, nfev int, err error) {

	flo := f(x1)
	fhi := f(x2)
	nfev = 2
	if flo == 0.0 {
		return x1, nfev, nil
	}
	if fhi == 0.0 {
		return x2, nfev, nil
	}
	if !((flo > 0.0 && fhi < 0.0) || (flo < 0.0 && fhi > 0.0)) {
		err = chk.Err("Ridder: root is not bracketed in [%g,%g]", x1, x2)
		return
	}

	ans := 0.5 * (x1 + x2)
	xlo, xhi := x1, x2
	for j := 1; j <= MaxIt; j++ {
		xm := 0.5 * (xlo + xhi)
		fm := f(xm)
		nfev++
		s := math.Sqrt(fm*fm - flo*fhi)
		if s == 0.0 {
			return ans, nfev, nil
		}
		sign := 1.0
		if flo < fhi {
			sign = -1.0
		}
		xnew := xm + (xm-xlo)*(sign*fm/s)
		if math.Abs(xnew-ans) <= xacc {
			return xnew, nfev, nil
		}
		ans = xnew
		fnew := f(ans)
		nfev++
		switch {
		case sameSign(fm, fnew) != fm:
			xlo = xm
			flo = fm
			xhi = ans
			fhi = fnew
		case sameSign(flo, fnew) != flo:
			xhi = ans
			fhi = fnew
		case sameSign(fhi, fnew) != fhi:
			xlo = ans
			flo = fnew
		default:
			return ans, nfev, nil
		}
		if math.Abs(xhi-xlo) <= xacc {
			return ans, nfev, nil
		}
	}
	err = chk.Err("Ridder did not converge after %d iterations", MaxIt)
	root = ans
	return
}

// sameSign returns |a| with the sign of b
func sameSign(a, b float64) float64 {
	if b >= 0.0 {
		return math.Abs(a)
	}
	return -math.Abs(a)
}
