// SPDX-License-Identifier: MIT

// Package matrix - Bounds helpers bridging exact and conservative buffers.
//
// Purpose:
//   - Lift Values into degenerate (point) Bounds.
//   - Check that exact results sit inside conservative results.
//   - Reduce Bounds back to a representative Values (midpoints).

package matrix

import "github.com/katalvlaran/lvlexpr/interval"

const opContainsAll = "ContainsAll"

// ToBounds lifts every cell of v to a point interval.
func ToBounds(v *Values) *Bounds {
	return Map(v, interval.Point)
}

// Midpoints returns the center of every interval cell.
func Midpoints(b *Bounds) *Values {
	return Map(b, interval.Interval.Mid)
}

// Widths returns the width of every interval cell.
func Widths(b *Bounds) *Values {
	return Map(b, interval.Interval.Width)
}

// ContainsAll reports whether every exact cell of v lies in the matching cell
// of b, allowing an absolute slack on each side.
// MAIN DESCRIPTION:
//   - Containment check used by tests and diagnostics: v ⊆ b (cell-wise).
//
// Implementation:
//   - Stage 1: validate shapes and slack.
//   - Stage 2: walk the flat buffers; first violation returns (false, nil).
//
// Complexity:
//   - Time O(r*c), Space O(1).
func ContainsAll(b *Bounds, v *Values, slack float64) (bool, error) {
	s, err := validateTol(opContainsAll, slack)
	if err != nil {
		return false, err
	}
	if err = ValidateSameShape(b, v); err != nil {
		return false, matrixErrorf(opContainsAll, err)
	}
	for k, x := range v.data {
		iv := b.data[k]
		if !(iv.Lo()-s <= x && x <= iv.Hi()+s) {
			return false, nil
		}
	}

	return true, nil
}
