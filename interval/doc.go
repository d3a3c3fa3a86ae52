// SPDX-License-Identifier: MIT

// Package interval provides a closed-interval number type used as the
// conservative ("bounds") evaluation domain of lvlexpr expressions.
//
// What & Why:
//
//	An Interval [lo, hi] stands for every real number between its endpoints.
//	Each operation returns an Interval that contains the result of applying
//	the operation to ANY pair of points taken from its operands (containment
//	property). Endpoints are rounded outward by one ulp for the basic
//	arithmetic operations and by two ulps for transcendental functions, so
//	the double-precision result of a point evaluation never escapes the box.
//
// Domain policy:
//   - An operation whose domain is merely touched by the operand box widens
//     or clamps instead of failing: Sqrt([-1, 4]) == [0, 2].
//   - An operation whose domain contains no point of the box fails with
//     ErrDomain: Sqrt([-1, -1]), Log([-2, -1]), Asin([2, 3]).
//   - Division by a box that contains zero (within the given tolerance)
//     fails with ErrDomain.
//
// Complexity:
//
//	Every operation is O(1) and allocation-free.
package interval
