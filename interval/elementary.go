// SPDX-License-Identifier: MIT

// Package interval - elementary functions.
//
// Purpose:
//   - Powers (integer, constant real, interval-valued), square root,
//     trigonometric and inverse-trigonometric functions, log and exp.
//   - Each function is monotone on its branch or handles its interior
//     extrema explicitly, so endpoints suffice to bound the image.
//
// Domain policy (see doc.go):
//   - Touched domain ⇒ clamp/widen; disjoint domain ⇒ ErrDomain.
//
// AI-Hints:
//   - Endpoint images are computed with the same math.* calls used by the
//     exact evaluation path, then widened by two ulps.

package interval

import "math"

const (
	twoPi = 2 * math.Pi

	// phaseSlack widens the extremum detection of Sin/Cos so that a peak
	// lying within rounding distance of an endpoint is always included.
	phaseSlack = 1e-9
)

// PowInt returns a^n for an integer exponent n.
// Negative exponents fail with ErrDomain when a intersects [-tol, tol].
//
// Complexity: O(1).
func PowInt(a Interval, n int, tol float64) (Interval, error) {
	switch {
	case n == 0:
		return Point(1), nil
	case n == 1:
		return a, nil
	case n == 2:
		return Sq(a), nil
	}

	fn := float64(n)
	pl, ph := math.Pow(a.lo, fn), math.Pow(a.hi, fn)
	if n < 0 {
		if a.ContainsZero(tol) {
			return Interval{}, intervalErrorf("PowInt", a, ErrDomain)
		}
		// a lies on one side of zero; x^n decreases there unless n is even
		// and a is negative.
		switch {
		case n%2 != 0:
			return widen2(ph, pl), nil
		case a.hi < 0:
			return clampLo(widen2(pl, ph), 0), nil
		default:
			return clampLo(widen2(ph, pl), 0), nil
		}
	}
	if n%2 == 1 {
		return widen2(pl, ph), nil // odd powers are monotone increasing
	}
	// Even powers behave like |x|^n.
	switch {
	case a.lo >= 0:
		return clampLo(widen2(pl, ph), 0), nil
	case a.hi <= 0:
		return clampLo(widen2(ph, pl), 0), nil
	default:
		return Interval{lo: 0, hi: up(up(math.Max(pl, ph)))}, nil
	}
}

// Pow returns a^e for a constant, non-integer real exponent e.
// MAIN DESCRIPTION:
//   - Real powers are defined on x ≥ 0 (x > 0 when e < 0).
//
// Implementation:
//   - Stage 1: reject boxes lying entirely below -tol.
//   - Stage 2: clamp the lower endpoint to 0 (touched domain).
//   - Stage 3: negative exponents additionally reject boxes touching 0.
//   - Stage 4: monotone image, widened by two ulps.
//
// Errors:
//   - ErrDomain as described above.
//
// Complexity:
//   - Time O(1), Space O(1).
func Pow(a Interval, e float64, tol float64) (Interval, error) {
	if a.hi < -tol {
		return Interval{}, intervalErrorf("Pow", a, ErrDomain)
	}
	a = clampLo(a, 0)
	if e < 0 {
		if a.lo <= tol {
			return Interval{}, intervalErrorf("Pow", a, ErrDomain)
		}
		return clampLo(widen2(math.Pow(a.hi, e), math.Pow(a.lo, e)), 0), nil
	}

	return clampLo(widen2(math.Pow(a.lo, e), math.Pow(a.hi, e)), 0), nil
}

// PowInterval returns a^b with an interval-valued exponent, computed as
// exp(b·log a). A base touching zero contributes log 0 = -Inf, which the
// 0·∞ = 0 convention of Mul maps to the correct limits.
func PowInterval(a, b Interval, tol float64) (Interval, error) {
	if a.hi < -tol {
		return Interval{}, intervalErrorf("PowInterval", a, ErrDomain)
	}
	a = clampLo(a, 0)
	la := widen2(math.Log(a.lo), math.Log(a.hi)) // log 0 = -Inf is legal here

	return Exp(Mul(b, la)), nil
}

// Sqrt returns √a. Boxes straddling zero are clamped: Sqrt([-1, 4]) = [0, 2].
// Boxes lying entirely below -tol fail with ErrDomain.
func Sqrt(a Interval, tol float64) (Interval, error) {
	if a.hi < -tol {
		return Interval{}, intervalErrorf("Sqrt", a, ErrDomain)
	}
	a = clampLo(a, 0)

	return clampLo(widen1(math.Sqrt(a.lo), math.Sqrt(a.hi)), 0), nil
}

// containsPhase reports whether [lo, hi] contains phase + 2kπ for some k.
func containsPhase(a Interval, phase float64) bool {
	k := math.Ceil((a.lo-phase)/twoPi - phaseSlack)

	return (a.hi-phase)/twoPi+phaseSlack >= k
}

// Sin returns sin(a).
// Implementation:
//   - Stage 1: boxes wider than a period map to [-1, 1].
//   - Stage 2: endpoint images, raised to 1 / lowered to -1 when the box
//     contains π/2 + 2kπ / -π/2 + 2kπ.
//   - Stage 3: widen and clamp into [-1, 1].
//
// Complexity: O(1).
func Sin(a Interval) Interval {
	if a.Width() >= twoPi || math.IsInf(a.lo, 0) || math.IsInf(a.hi, 0) {
		return Interval{lo: -1, hi: 1}
	}
	sl, sh := math.Sin(a.lo), math.Sin(a.hi)
	mn, mx := math.Min(sl, sh), math.Max(sl, sh)
	if containsPhase(a, math.Pi/2) {
		mx = 1
	}
	if containsPhase(a, -math.Pi/2) {
		mn = -1
	}

	return clamp(widen2(mn, mx), -1, 1)
}

// Cos returns cos(a); maxima at 2kπ, minima at π + 2kπ.
func Cos(a Interval) Interval {
	if a.Width() >= twoPi || math.IsInf(a.lo, 0) || math.IsInf(a.hi, 0) {
		return Interval{lo: -1, hi: 1}
	}
	cl, ch := math.Cos(a.lo), math.Cos(a.hi)
	mn, mx := math.Min(cl, ch), math.Max(cl, ch)
	if containsPhase(a, 0) {
		mx = 1
	}
	if containsPhase(a, math.Pi) {
		mn = -1
	}

	return clamp(widen2(mn, mx), -1, 1)
}

// Tan returns tan(a). Fails with ErrDomain when cos(a) intersects
// [-tol, tol], i.e. when the box reaches a pole.
func Tan(a Interval, tol float64) (Interval, error) {
	if Cos(a).ContainsZero(tol) {
		return Interval{}, intervalErrorf("Tan", a, ErrDomain)
	}

	// Between two poles tan is monotone increasing.
	return widen2(math.Tan(a.lo), math.Tan(a.hi)), nil
}

// Asin returns asin(a). Boxes straddling ±1 are clamped; boxes entirely
// outside [-1-tol, 1+tol] fail with ErrDomain.
func Asin(a Interval, tol float64) (Interval, error) {
	if a.hi < -1-tol || a.lo > 1+tol {
		return Interval{}, intervalErrorf("Asin", a, ErrDomain)
	}
	a = clamp(a, -1, 1)

	return clamp(widen2(math.Asin(a.lo), math.Asin(a.hi)), -math.Pi/2, math.Pi/2), nil
}

// Acos returns acos(a); monotone decreasing on [-1, 1].
func Acos(a Interval, tol float64) (Interval, error) {
	if a.hi < -1-tol || a.lo > 1+tol {
		return Interval{}, intervalErrorf("Acos", a, ErrDomain)
	}
	a = clamp(a, -1, 1)

	return clamp(widen2(math.Acos(a.hi), math.Acos(a.lo)), 0, math.Pi), nil
}

// Log returns ln(a). Boxes with hi <= 0 fail with ErrDomain; boxes touching
// zero get a -Inf lower bound.
func Log(a Interval) (Interval, error) {
	if a.hi <= 0 {
		return Interval{}, intervalErrorf("Log", a, ErrDomain)
	}
	lo := math.Inf(-1)
	if a.lo > 0 {
		lo = math.Log(a.lo)
	}

	return widen2(lo, math.Log(a.hi)), nil
}

// Exp returns e^a.
func Exp(a Interval) Interval {
	return clampLo(widen2(math.Exp(a.lo), math.Exp(a.hi)), 0)
}
