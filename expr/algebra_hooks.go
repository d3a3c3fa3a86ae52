// SPDX-License-Identifier: MIT

// Package expr - algebraic operators and their construction-time folds.
//
// Purpose:
//   - Offer the arithmetic surface of *Node (Plus, Minus, Times, ...).
//   - Fold each operation into its operand whenever the result is exactly
//     representable (negation of a negation, scale of a linear map, ...).
//
// Notes:
//   - A fold never changes the values the graph computes. Folds that would
//     hide an evaluation-time domain error (e.g. dividing by a constant 0)
//     are skipped so the error still surfaces when evaluated.

package expr

import (
	"math"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// Negated returns -n.
// Folding: -(-a) = a; constants and linear maps absorb the sign; -(k·a) = (-k)·a;
// -(a-b) = b-a.
func (n *Node) Negated() *Node {
	switch n.kind {
	case KindNegated:
		return n.a
	case KindConstant:
		return constant(n.params, vecScale(-1, n.vec))
	case KindLinear:
		return linear(vecScale(-1, n.vec), mustMatrix(matrix.Scale(n.mat, -1)))
	case KindScaled:
		return n.a.Scaled(-n.k)
	case KindDifference:
		return n.b.Minus(n.a)
	}
	m := operate(KindNegated, n.dims, n, nil)

	return m
}

// Scaled returns k·n.
// MAIN DESCRIPTION:
//   - Multiply every output component by the constant k.
//
// Implementation:
//   - Stage 1: trivial factors (1 → n, 0 → zero constant unless n can fail
//     with ErrDomain, -1 → Negated).
//   - Stage 2: absorb k into constants, linear maps, nested scales and transforms.
//   - Stage 3: otherwise wrap in a Scaled node.
//
// Complexity:
//   - O(1) nodes; folding into a linear map costs O(dims·params).
func (n *Node) Scaled(k float64) *Node {
	switch {
	case k == 1:
		return n
	case k == 0 && n.total:
		return Zero(n.dims, n.params)
	case k == -1:
		return n.Negated()
	}
	switch n.kind {
	case KindConstant:
		return constant(n.params, vecScale(k, n.vec))
	case KindLinear:
		return linear(vecScale(k, n.vec), mustMatrix(matrix.Scale(n.mat, k)))
	case KindScaled:
		return n.a.Scaled(k * n.k)
	case KindNegated:
		return n.a.Scaled(-k)
	case KindTransformed:
		return n.a.Transformed(mustMatrix(matrix.Scale(n.mat, k)))
	}
	m := operate(KindScaled, n.dims, n, nil)
	m.k = k

	return m
}

// Transformed returns M·n where M has n.NumDimensions() columns.
// Folding: constants and linear maps multiply through; nested transforms and
// scales collapse into one matrix; Identity becomes a Linear map.
func (n *Node) Transformed(mat *matrix.Values) *Node {
	if mat == nil || mat.Cols() != n.dims || mat.Rows() == 0 {
		structuralf("Transformed: matrix shape does not match %d dimensions", n.dims)
	}
	mat = mat.Clone()

	return n.transformed(mat)
}

// transformed is Transformed without the defensive copy.
func (n *Node) transformed(mat *matrix.Values) *Node {
	switch n.kind {
	case KindConstant:
		return constant(n.params, mustVector(matrix.MatVec(mat, n.vec)))
	case KindIdentity:
		return linear(make([]float64, mat.Rows()), mat)
	case KindLinear:
		return linear(mustVector(matrix.MatVec(mat, n.vec)), mustMatrix(matrix.Mul(mat, n.mat)))
	case KindTransformed:
		return n.a.transformed(mustMatrix(matrix.Mul(mat, n.mat)))
	case KindScaled:
		return n.a.transformed(mustMatrix(matrix.Scale(mat, n.k)))
	case KindNegated:
		return n.a.transformed(mustMatrix(matrix.Scale(mat, -1)))
	}
	m := operate(KindTransformed, mat.Rows(), n, nil)
	m.mat = mat

	return m
}

// Translated returns n + v.
// Folding: zero offsets vanish; constants, linear maps and nested translations
// absorb v; Identity becomes a Linear map.
func (n *Node) Translated(v []float64) *Node {
	if len(v) != n.dims {
		structuralf("Translated: offset has %d entries, node has %d dimensions", len(v), n.dims)
	}
	if vecIsZero(v) {
		return n
	}
	switch n.kind {
	case KindConstant:
		return constant(n.params, vecAdd(n.vec, v))
	case KindIdentity:
		return linear(vecClone(v), matrix.Identity(n.dims))
	case KindLinear:
		return linear(vecAdd(n.vec, v), n.mat)
	case KindTranslated:
		return n.a.Translated(vecAdd(n.vec, v))
	}
	m := operate(KindTranslated, n.dims, n, nil)
	m.vec = vecClone(v)

	return m
}

// Plus returns n + o.
func (n *Node) Plus(o *Node) *Node {
	checkSameShape("Plus", n, o)
	switch {
	case o.kind == KindConstant:
		return n.Translated(o.vec)
	case n.kind == KindConstant:
		return o.Translated(n.vec)
	case n.kind == KindLinear && o.kind == KindLinear:
		return linear(vecAdd(n.vec, o.vec), mustMatrix(matrix.Add(n.mat, o.mat)))
	case o.kind == KindNegated:
		return n.Minus(o.a)
	}
	m := operate(KindSum, n.dims, n, o)

	return m
}

// Minus returns n - o. Subtracting a node that cannot fail from itself
// yields zero.
func (n *Node) Minus(o *Node) *Node {
	checkSameShape("Minus", n, o)
	switch {
	case n == o && n.total:
		return Zero(n.dims, n.params)
	case o.kind == KindConstant:
		return n.Translated(vecScale(-1, o.vec))
	case n.kind == KindConstant:
		return o.Negated().Translated(n.vec)
	case n.kind == KindLinear && o.kind == KindLinear:
		return linear(vecAdd(n.vec, vecScale(-1, o.vec)), mustMatrix(matrix.Sub(n.mat, o.mat)))
	case o.kind == KindNegated:
		return n.Plus(o.a)
	}
	m := operate(KindDifference, n.dims, n, o)

	return m
}

// Times returns the product of a scalar node and a node of any dimension.
// Either side may be the scalar; panics when neither is.
// Folding: a constant scalar becomes Scaled.
func (n *Node) Times(o *Node) *Node {
	checkParams("Times", n, o)
	s, v := n, o
	if n.dims != 1 {
		s, v = o, n
	}
	if s.dims != 1 {
		structuralf("Times: one operand must be scalar, got %d and %d dimensions", n.dims, o.dims)
	}
	switch {
	case s.kind == KindConstant:
		return v.Scaled(s.vec[0])
	case v.dims == 1 && v.kind == KindConstant:
		return s.Scaled(v.vec[0])
	}
	m := operate(KindProduct, v.dims, s, v)

	return m
}

// DividedBy returns n / o for a scalar o.
// Folding: a constant divisor outside the zero tolerance becomes Scaled(1/c).
func (n *Node) DividedBy(o *Node) *Node {
	checkParams("DividedBy", n, o)
	checkScalar("DividedBy", o)
	if o.kind == KindConstant && math.Abs(o.vec[0]) > DefaultTolerance {
		return n.Scaled(1 / o.vec[0])
	}
	m := operate(KindQuotient, n.dims, n, o)

	return m
}

// Dot returns the scalar n·o.
func (n *Node) Dot(o *Node) *Node {
	checkSameShape("Dot", n, o)
	switch {
	case n.kind == KindConstant && o.kind == KindConstant:
		return constant(n.params, []float64{vecDot(n.vec, o.vec)})
	case (n.IsZero() && o.total) || (o.IsZero() && n.total):
		return Zero(1, n.params)
	case n.dims == 1:
		return n.Times(o)
	}
	m := operate(KindDot, 1, n, o)

	return m
}

// Cross returns the 3-vector cross product n×o.
func (n *Node) Cross(o *Node) *Node {
	checkSameShape("Cross", n, o)
	if n.dims != 3 {
		structuralf("Cross: operands must be 3-vectors, have %d dimensions", n.dims)
	}
	switch {
	case n.kind == KindConstant && o.kind == KindConstant:
		x, y := n.vec, o.vec
		return constant(n.params, []float64{
			x[1]*y[2] - x[2]*y[1],
			x[2]*y[0] - x[0]*y[2],
			x[0]*y[1] - x[1]*y[0],
		})
	case (n.IsZero() && o.total) || (o.IsZero() && n.total):
		return Zero(3, n.params)
	}
	m := operate(KindCross, 3, n, o)

	return m
}

// Concat stacks the outputs of n above those of o.
// Folding: two constants merge; adjacent slices of one node re-join.
func (n *Node) Concat(o *Node) *Node {
	checkParams("Concat", n, o)
	switch {
	case n.kind == KindConstant && o.kind == KindConstant:
		return constant(n.params, append(vecClone(n.vec), o.vec...))
	case n.kind == KindComponents && o.kind == KindComponents && n.a == o.a && n.start+n.count == o.start:
		return n.a.Components(n.start, n.count+o.count)
	}
	m := operate(KindConcatenation, n.dims+o.dims, n, o)

	return m
}
