// SPDX-License-Identifier: MIT

// Package interval - core type & basic arithmetic.
//
// Purpose:
//   - Define the immutable Interval value and its constructors.
//   - Provide + - * / with outward rounding (one ulp per endpoint).
//
// AI-Hints:
//   - Interval is a small value type; pass it by value, never by pointer.
//   - Use Point(x) for exact constants: it does NOT widen.

package interval

import (
	"fmt"
	"math"
)

// Interval is the closed set [lo, hi] of real numbers.
// The zero value is the degenerate interval [0, 0].
type Interval struct {
	lo, hi float64 // lo <= hi for every interval built through this package
}

// New returns [lo, hi]; swapped endpoints are normalized so that lo <= hi.
// Complexity: O(1).
func New(lo, hi float64) Interval {
	if lo > hi {
		lo, hi = hi, lo
	}

	return Interval{lo: lo, hi: hi}
}

// Point returns the degenerate interval [x, x].
func Point(x float64) Interval { return Interval{lo: x, hi: x} }

// Entire returns (-Inf, +Inf).
func Entire() Interval { return Interval{lo: math.Inf(-1), hi: math.Inf(1)} }

// Lo returns the lower endpoint.
func (a Interval) Lo() float64 { return a.lo }

// Hi returns the upper endpoint.
func (a Interval) Hi() float64 { return a.hi }

// Width returns hi - lo.
func (a Interval) Width() float64 { return a.hi - a.lo }

// Mid returns the midpoint (lo+hi)/2, computed without overflow.
func (a Interval) Mid() float64 { return a.lo + 0.5*(a.hi-a.lo) }

// IsPoint reports whether lo == hi.
func (a Interval) IsPoint() bool { return a.lo == a.hi }

// Valid reports whether the interval is well formed (no NaN, lo <= hi).
func (a Interval) Valid() bool {
	return !math.IsNaN(a.lo) && !math.IsNaN(a.hi) && a.lo <= a.hi
}

// Check returns ErrEmpty when a is not well formed. Intervals assembled by
// struct literal elsewhere (or carrying NaN endpoints) are rejected here.
func Check(a Interval) error {
	if !a.Valid() {
		return intervalErrorf("Check", a, ErrEmpty)
	}

	return nil
}

// Contains reports whether lo <= x <= hi.
func (a Interval) Contains(x float64) bool { return a.lo <= x && x <= a.hi }

// ContainsInterval reports whether b ⊆ a.
func (a Interval) ContainsInterval(b Interval) bool { return a.lo <= b.lo && b.hi <= a.hi }

// ContainsZero reports whether the interval intersects [-tol, tol].
// This is the tolerance-aware zero test used for divisors.
func (a Interval) ContainsZero(tol float64) bool { return a.lo <= tol && a.hi >= -tol }

// IsZero reports whether the whole interval lies within [-tol, tol].
func (a Interval) IsZero(tol float64) bool {
	return math.Abs(a.lo) <= tol && math.Abs(a.hi) <= tol
}

// Near reports whether both endpoints of a and b differ by at most tol.
func (a Interval) Near(b Interval, tol float64) bool {
	return math.Abs(a.lo-b.lo) <= tol && math.Abs(a.hi-b.hi) <= tol
}

// Hull returns the smallest interval containing both a and b.
func Hull(a, b Interval) Interval {
	return Interval{lo: math.Min(a.lo, b.lo), hi: math.Max(a.hi, b.hi)}
}

// String renders "[lo, hi]".
func (a Interval) String() string { return fmt.Sprintf("[%g, %g]", a.lo, a.hi) }

// ---------- outward rounding ----------

// down moves x one ulp towards -Inf; infinities and NaN pass through.
func down(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}

	return math.Nextafter(x, math.Inf(-1))
}

// up moves x one ulp towards +Inf; infinities and NaN pass through.
func up(x float64) float64 {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return x
	}

	return math.Nextafter(x, math.Inf(1))
}

// widen1 rounds [lo, hi] outward by one ulp (correctly rounded ops).
func widen1(lo, hi float64) Interval { return Interval{lo: down(lo), hi: up(hi)} }

// widen2 rounds [lo, hi] outward by two ulps (library transcendental ops).
func widen2(lo, hi float64) Interval { return Interval{lo: down(down(lo)), hi: up(up(hi))} }

// mulEndpoint multiplies two endpoints with the interval convention 0·∞ = 0.
func mulEndpoint(x, y float64) float64 {
	if x == 0 || y == 0 {
		return 0
	}

	return x * y
}

// ---------- arithmetic ----------

// Add returns a + b.
func Add(a, b Interval) Interval { return widen1(a.lo+b.lo, a.hi+b.hi) }

// Sub returns a - b.
func Sub(a, b Interval) Interval { return widen1(a.lo-b.hi, a.hi-b.lo) }

// Neg returns -a. Negation is exact; no widening is applied.
func Neg(a Interval) Interval { return Interval{lo: -a.hi, hi: -a.lo} }

// AddScalar returns a + k.
func AddScalar(a Interval, k float64) Interval {
	if k == 0 {
		return a
	}

	return widen1(a.lo+k, a.hi+k)
}

// Scale returns k·a for a real constant k.
// Complexity: O(1).
func Scale(k float64, a Interval) Interval {
	switch {
	case k == 0:
		return Point(0) // 0·∞ = 0 by convention
	case k == 1:
		return a
	case k == -1:
		return Neg(a)
	case k > 0:
		return widen1(k*a.lo, k*a.hi)
	default:
		return widen1(k*a.hi, k*a.lo)
	}
}

// Mul returns a·b.
// MAIN DESCRIPTION:
//   - Product of two boxes: min/max over the four endpoint products.
//
// Implementation:
//   - Stage 1: evaluate lo·lo, lo·hi, hi·lo, hi·hi with 0·∞ = 0.
//   - Stage 2: round outward by one ulp.
//
// Complexity:
//   - Time O(1), Space O(1).
func Mul(a, b Interval) Interval {
	p1 := mulEndpoint(a.lo, b.lo)
	p2 := mulEndpoint(a.lo, b.hi)
	p3 := mulEndpoint(a.hi, b.lo)
	p4 := mulEndpoint(a.hi, b.hi)

	lo := math.Min(math.Min(p1, p2), math.Min(p3, p4))
	hi := math.Max(math.Max(p1, p2), math.Max(p3, p4))

	return widen1(lo, hi)
}

// Div returns a / b. It fails with ErrDomain when b intersects [-tol, tol].
// Complexity: O(1).
func Div(a, b Interval, tol float64) (Interval, error) {
	if b.ContainsZero(tol) {
		return Interval{}, intervalErrorf("Div", b, ErrDomain)
	}
	q1 := a.lo / b.lo
	q2 := a.lo / b.hi
	q3 := a.hi / b.lo
	q4 := a.hi / b.hi

	lo := math.Min(math.Min(q1, q2), math.Min(q3, q4))
	hi := math.Max(math.Max(q1, q2), math.Max(q3, q4))

	return widen1(lo, hi), nil
}

// Sq returns a², which is tighter than Mul(a, a) when a straddles zero.
func Sq(a Interval) Interval {
	switch {
	case a.lo >= 0:
		return clampLo(widen1(a.lo*a.lo, a.hi*a.hi), 0)
	case a.hi <= 0:
		return clampLo(widen1(a.hi*a.hi, a.lo*a.lo), 0)
	default:
		m := math.Max(a.lo*a.lo, a.hi*a.hi)
		return Interval{lo: 0, hi: up(m)}
	}
}

// clampLo raises the lower endpoint to at least floor.
func clampLo(a Interval, floor float64) Interval {
	if a.lo < floor {
		a.lo = floor
	}
	if a.hi < floor {
		a.hi = floor
	}

	return a
}

// clamp restricts both endpoints into [lo, hi].
func clamp(a Interval, lo, hi float64) Interval {
	a.lo = math.Max(lo, math.Min(hi, a.lo))
	a.hi = math.Max(lo, math.Min(hi, a.hi))

	return a
}
