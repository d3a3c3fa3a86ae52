// SPDX-License-Identifier: MIT

// Package expr - norm family, elementary functions and powers.
//
// Purpose:
//   - Scalar functions (Sin ... Exp, Pow) require a scalar operand.
//   - Norm family works on any dimension.
//   - Constants fold only when the value lies in the function's domain;
//     otherwise the node is kept so evaluation reports ErrDomain.

package expr

import (
	"math"
)

// unary wraps a in a new node of the given kind and output size.
func unary(kind Kind, a *Node, dims int) *Node {
	return operate(kind, dims, a, nil)
}

// scalarConst returns the value of a scalar Constant node.
func (n *Node) scalarConst() (float64, bool) {
	if n.kind == KindConstant && n.dims == 1 {
		return n.vec[0], true
	}

	return 0, false
}

// Norm returns the Euclidean norm |n|.
func (n *Node) Norm() *Node {
	switch n.kind {
	case KindConstant:
		return constant(n.params, []float64{math.Sqrt(vecDot(n.vec, n.vec))})
	case KindNegated:
		return n.a.Norm()
	}

	return unary(KindNorm, n, 1)
}

// SquaredNorm returns n·n.
func (n *Node) SquaredNorm() *Node {
	switch n.kind {
	case KindConstant:
		return constant(n.params, []float64{vecDot(n.vec, n.vec)})
	case KindNegated:
		return n.a.SquaredNorm()
	}
	if n.dims == 1 {
		return n.Pow(2)
	}

	return unary(KindSquaredNorm, n, 1)
}

// Normalized returns n/|n|. Evaluation fails with ErrDomain where |n| is
// within the tolerance of zero.
// Folding: normalizing a unit vector or a positively scaled vector drops the
// redundant step; nonzero constants are normalized eagerly.
func (n *Node) Normalized() *Node {
	switch n.kind {
	case KindConstant:
		if nrm := math.Sqrt(vecDot(n.vec, n.vec)); nrm > DefaultTolerance {
			return constant(n.params, vecScale(1/nrm, n.vec))
		}
	case KindNormalized:
		return n
	case KindScaled:
		if n.k > 0 {
			return n.a.Normalized()
		}
	}

	return unary(KindNormalized, n, n.dims)
}

// Sin returns sin(n) for a scalar n.
func (n *Node) Sin() *Node {
	checkScalar("Sin", n)
	if c, ok := n.scalarConst(); ok {
		return constant(n.params, []float64{math.Sin(c)})
	}

	return unary(KindSin, n, 1)
}

// Cos returns cos(n) for a scalar n.
func (n *Node) Cos() *Node {
	checkScalar("Cos", n)
	if c, ok := n.scalarConst(); ok {
		return constant(n.params, []float64{math.Cos(c)})
	}

	return unary(KindCos, n, 1)
}

// Tan returns tan(n) for a scalar n; fails at evaluation where cos(n) vanishes.
func (n *Node) Tan() *Node {
	checkScalar("Tan", n)
	if c, ok := n.scalarConst(); ok && math.Abs(math.Cos(c)) > DefaultTolerance {
		return constant(n.params, []float64{math.Tan(c)})
	}

	return unary(KindTan, n, 1)
}

// Asin returns asin(n) for a scalar n.
func (n *Node) Asin() *Node {
	checkScalar("Asin", n)
	if c, ok := n.scalarConst(); ok && math.Abs(c) <= 1 {
		return constant(n.params, []float64{math.Asin(c)})
	}

	return unary(KindAsin, n, 1)
}

// Acos returns acos(n) for a scalar n.
func (n *Node) Acos() *Node {
	checkScalar("Acos", n)
	if c, ok := n.scalarConst(); ok && math.Abs(c) <= 1 {
		return constant(n.params, []float64{math.Acos(c)})
	}

	return unary(KindAcos, n, 1)
}

// Sqrt returns √n for a scalar n.
func (n *Node) Sqrt() *Node {
	checkScalar("Sqrt", n)
	if c, ok := n.scalarConst(); ok && c >= 0 {
		return constant(n.params, []float64{math.Sqrt(c)})
	}

	return unary(KindSqrt, n, 1)
}

// Log returns ln n for a scalar n.
func (n *Node) Log() *Node {
	checkScalar("Log", n)
	if c, ok := n.scalarConst(); ok && c > 0 {
		return constant(n.params, []float64{math.Log(c)})
	}

	return unary(KindLog, n, 1)
}

// Exp returns e^n for a scalar n.
func (n *Node) Exp() *Node {
	checkScalar("Exp", n)
	if c, ok := n.scalarConst(); ok {
		return constant(n.params, []float64{math.Exp(c)})
	}

	return unary(KindExp, n, 1)
}

// Squared returns n² for a scalar n.
func (n *Node) Squared() *Node { return n.Pow(2) }

// Pow returns n^e for a scalar n and constant exponent e.
// MAIN DESCRIPTION:
//   - Classify the exponent once, at construction time.
//
// Implementation:
//   - Stage 1: e == 0 yields the constant 1, e == 1 yields n.
//   - Stage 2: e within DefaultIntegerExponentTolerance of an integer no
//     larger than maxIntegerExponent in magnitude selects the integer path
//     (valid for negative bases); otherwise the real path (requires a
//     non-negative base).
//   - Stage 3: constant bases in the domain fold to a constant.
//
// Complexity:
//   - O(1).
func (n *Node) Pow(e float64) *Node {
	checkScalar("Pow", n)
	if math.IsNaN(e) || math.IsInf(e, 0) {
		structuralf("Pow: exponent %g must be finite", e)
	}
	switch e {
	case 0:
		return constant(n.params, []float64{1})
	case 1:
		return n
	}
	m := unary(KindPower, n, 1)
	if r := math.Round(e); math.Abs(e-r) <= DefaultIntegerExponentTolerance && math.Abs(r) <= maxIntegerExponent {
		m.expKind, m.n = exponentInteger, int(r)
		m.total = n.total && m.n > 0
	} else {
		m.expKind, m.k = exponentReal, e
	}
	if c, ok := n.scalarConst(); ok {
		switch {
		case m.expKind == exponentInteger && (c != 0 || m.n > 0):
			return constant(n.params, []float64{math.Pow(c, float64(m.n))})
		case m.expKind == exponentReal && c > 0:
			return constant(n.params, []float64{math.Pow(c, e)})
		}
	}

	return m
}

// PowNode returns n^e for scalar nodes n and e. A constant exponent defers to
// Pow; otherwise the general path exp(e·ln n) is used, which requires n ≥ 0.
func (n *Node) PowNode(e *Node) *Node {
	checkScalar("PowNode", n)
	checkScalar("PowNode", e)
	checkParams("PowNode", n, e)
	if c, ok := e.scalarConst(); ok {
		return n.Pow(c)
	}
	m := unary(KindPower, n, 1)
	m.b = e
	m.expKind = exponentNode

	return m
}
