// SPDX-License-Identifier: MIT

package expr

// Components returns the node selecting output rows [start, start+count).
// MAIN DESCRIPTION:
//   - Push the slice down through n so the graph stays shallow; a generic
//     Components wrapper is created only where no operand-level slice exists.
//
// Implementation:
//   - Stage 1: validate the window; the full window returns n itself.
//   - Stage 2: per kind, slice constants, bases and offsets directly, slice
//     operands of component-wise operators, and route concatenations to the
//     side(s) the window covers.
//   - Stage 3: otherwise wrap (Cross, Normalized).
//
// Panics:
//   - ErrStructural when start < 0, count < 1 or start+count > NumDimensions.
//
// Complexity:
//   - O(depth of the pushed-down chain) new nodes.
func (n *Node) Components(start, count int) *Node {
	if start < 0 || count < 1 || start+count > n.dims {
		structuralf("Components: window [%d, %d) outside %d dimensions", start, start+count, n.dims)
	}
	if start == 0 && count == n.dims {
		return n
	}
	end := start + count
	switch n.kind {
	case KindConstant:
		return constant(n.params, vecClone(n.vec[start:end]))
	case KindIdentity:
		if count == 1 {
			return Parameter(start, n.params)
		}
		return linear(make([]float64, count), selector(start, count, n.params))
	case KindLinear:
		return linear(vecClone(n.vec[start:end]), mustMatrix(n.mat.RowRange(start, count)))
	case KindSum:
		return n.a.Components(start, count).Plus(n.b.Components(start, count))
	case KindDifference:
		return n.a.Components(start, count).Minus(n.b.Components(start, count))
	case KindNegated:
		return n.a.Components(start, count).Negated()
	case KindScaled:
		return n.a.Components(start, count).Scaled(n.k)
	case KindTranslated:
		return n.a.Components(start, count).Translated(n.vec[start:end])
	case KindTransformed:
		return n.a.transformed(mustMatrix(n.mat.RowRange(start, count)))
	case KindProduct:
		return n.a.Times(n.b.Components(start, count))
	case KindQuotient:
		return n.a.Components(start, count).DividedBy(n.b)
	case KindConcatenation:
		split := n.a.dims
		switch {
		case end <= split:
			return n.a.Components(start, count)
		case start >= split:
			return n.b.Components(start-split, count)
		default:
			return n.a.Components(start, split-start).Concat(n.b.Components(0, end-split))
		}
	case KindComponents:
		return n.a.Components(n.start+start, count)
	case KindComposition:
		return n.a.Components(start, count).Compose(n.b)
	}
	m := unary(KindComponents, n, count)
	m.start, m.count = start, count

	return m
}

// Component returns output row i as a scalar node.
func (n *Node) Component(i int) *Node { return n.Components(i, 1) }
