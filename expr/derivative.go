// SPDX-License-Identifier: MIT

// Package expr - symbolic differentiation.
//
// Purpose:
//   - Build ∂n/∂x_i as a new graph using the per-operator rules below.
//   - Differentiate each distinct subgraph once per call (memo by node ID),
//     so shared subexpressions keep sharing their derivatives.
//
// Rules (a' = ∂a/∂x_i):
//   - constant: 0            identity: e_i            parameter j: δ_ij
//   - linear: basis column i
//   - sum, difference, negated, scaled, transformed: applied to the operand derivatives
//   - translated: a'         product s·v: s'·v + s·v'  quotient v/s: v'/s − (v/s)·s'/s
//   - a^n: n·a^(n-1)·a'      a^b: a^b·(b'·ln a + b·a'/a)
//   - dot: a'·b + a·b'       cross: a'×b + a×b'
//   - |a|²: 2a·a'            |a|: a·a'/|a|          a/|a|: (a' − n(n·a'))/|a|
//   - sin: cos a·a'          cos: −sin a·a'         tan: a'/cos a/cos a
//   - asin: a'/√(1−a²)       acos: −a'/√(1−a²)      sqrt: a'/(2√a)
//   - log: a'/a              exp: e^a·a'
//   - concat: concat(a', b') components: slice of a'
//   - outer∘inner: Σ_j inner'_j · (∂outer/∂y_j ∘ inner)

package expr

// differentiator carries the variable index and the per-call memo.
type differentiator struct {
	i    int
	memo map[uint64]*Node
}

// Derivative returns the graph of ∂n/∂x_i. The result has the same
// dimensions and parameters as n. It is rebuilt on every call; reuse the
// returned node (or run Dedup) to share work.
//
// Panics:
//   - ErrStructural when i is not a valid parameter index.
func (n *Node) Derivative(i int) *Node {
	if i < 0 || i >= n.params {
		structuralf("Derivative: parameter %d out of range for %d parameters", i, n.params)
	}
	d := differentiator{i: i, memo: make(map[uint64]*Node)}

	return d.diff(n)
}

func (d *differentiator) diff(n *Node) *Node {
	if r, ok := d.memo[n.id]; ok {
		return r
	}
	r := d.rule(n)
	d.memo[n.id] = r

	return r
}

// rule applies the derivative rule of n's kind.
// MAIN DESCRIPTION:
//   - One case per Kind; operands are differentiated through diff (memoized).
//
// Implementation:
//   - Stage 1: leaves produce constants.
//   - Stage 2: single-operand kinds short-circuit to zero when a' is zero,
//     so no quotient is built that could fail where the derivative is 0.
//   - Stage 3: per-kind rule; the construction-time folds simplify the result.
//
// AI-Hints:
//   - Any new Kind needs a case here; the fall-through panics with ErrUnimplemented.
func (d *differentiator) rule(n *Node) *Node {
	switch n.kind {
	case KindConstant:
		return Zero(n.dims, n.params)
	case KindIdentity:
		e := make([]float64, n.dims)
		e[d.i] = 1
		return constant(n.params, e)
	case KindParameter:
		if n.start == d.i {
			return constant(n.params, []float64{1})
		}
		return Zero(1, n.params)
	case KindLinear:
		col, err := n.mat.Column(d.i)
		if err != nil {
			structuralf("Derivative: %v", err)
		}
		return constant(n.params, col)
	case KindComposition:
		return d.chain(n) // outer lives in a different parameter space
	}

	a, b := n.a, n.b
	da := d.diff(a)
	if b == nil && da.IsZero() {
		return Zero(n.dims, n.params)
	}

	switch n.kind {
	case KindSum:
		return da.Plus(d.diff(b))
	case KindDifference:
		return da.Minus(d.diff(b))
	case KindNegated:
		return da.Negated()
	case KindScaled:
		return da.Scaled(n.k)
	case KindTransformed:
		return da.transformed(n.mat)
	case KindTranslated:
		return da
	case KindProduct:
		// a is the scalar factor, b the vector
		return da.Times(b).Plus(a.Times(d.diff(b)))
	case KindQuotient:
		// a is the numerator, b the scalar divisor
		db := d.diff(b)
		if db.IsZero() {
			return da.DividedBy(b)
		}
		return da.DividedBy(b).Minus(n.Times(db).DividedBy(b))
	case KindPower:
		return d.power(n, da)
	case KindDot:
		return da.Dot(b).Plus(a.Dot(d.diff(b)))
	case KindCross:
		return da.Cross(b).Plus(a.Cross(d.diff(b)))
	case KindSquaredNorm:
		return a.Dot(da).Scaled(2)
	case KindNorm:
		return a.Dot(da).DividedBy(n)
	case KindNormalized:
		return da.Minus(n.Times(n.Dot(da))).DividedBy(a.Norm())
	case KindSin:
		return a.Cos().Times(da)
	case KindCos:
		return a.Sin().Times(da).Negated()
	case KindTan:
		c := a.Cos()
		return da.DividedBy(c).DividedBy(c)
	case KindAsin:
		return da.DividedBy(d.one(n).Minus(a.Squared()).Sqrt())
	case KindAcos:
		return da.DividedBy(d.one(n).Minus(a.Squared()).Sqrt()).Negated()
	case KindSqrt:
		return da.DividedBy(n).Scaled(0.5)
	case KindLog:
		return da.DividedBy(a)
	case KindExp:
		return n.Times(da)
	case KindConcatenation:
		return da.Concat(d.diff(b))
	case KindComponents:
		return da.Components(n.start, n.count)
	}
	unimplemented("Derivative", n.kind)

	return nil
}

// one returns the scalar constant 1 over n's parameters.
func (d *differentiator) one(n *Node) *Node { return constant(n.params, []float64{1}) }

// power differentiates the three exponent paths of a KindPower node.
func (d *differentiator) power(n, da *Node) *Node {
	a := n.a
	switch n.expKind {
	case exponentInteger:
		return a.Pow(float64(n.n - 1)).Scaled(float64(n.n)).Times(da)
	case exponentReal:
		return a.Pow(n.k - 1).Scaled(n.k).Times(da)
	}
	// a^b · (b'·ln a + b·a'/a)
	b := n.b
	db := d.diff(b)
	var inner *Node
	if !db.IsZero() {
		inner = db.Times(a.Log())
	}
	if !da.IsZero() {
		t := b.Times(da).DividedBy(a)
		if inner == nil {
			inner = t
		} else {
			inner = inner.Plus(t)
		}
	}
	if inner == nil {
		return Zero(1, n.params)
	}

	return n.Times(inner)
}

// chain applies the multivariate chain rule to outer∘inner.
// MAIN DESCRIPTION:
//   - ∂(outer∘inner)/∂x_i = Σ_j ∂inner_j/∂x_i · (∂outer/∂y_j ∘ inner).
//
// Implementation:
//   - Stage 1: differentiate inner w.r.t. x_i (memoized in this call).
//   - Stage 2: for each inner output j with a nonzero partial, differentiate
//     outer w.r.t. its own parameter j (a fresh call) and compose it back.
//   - Stage 3: sum the terms; no terms means zero.
//
// Complexity:
//   - inner.NumDimensions() derivative calls on outer.
func (d *differentiator) chain(n *Node) *Node {
	outer, inner := n.a, n.b
	di := d.diff(inner)
	var sum *Node
	for j := 0; j < inner.dims; j++ {
		dij := di.Component(j)
		if dij.IsZero() {
			continue
		}
		term := dij.Times(outer.Derivative(j).Compose(inner))
		if sum == nil {
			sum = term
		} else {
			sum = sum.Plus(term)
		}
	}
	if sum == nil {
		return Zero(n.dims, n.params)
	}

	return sum
}

// Gradient returns ∂n/∂x_i for every parameter i.
func Gradient(n *Node) []*Node {
	out := make([]*Node, n.params)
	for i := range out {
		out[i] = n.Derivative(i)
	}

	return out
}

// DerivativeOrder returns the k-th derivative of n with respect to x_i,
// deduplicating between steps to keep repeated differentiation compact.
// k == 0 returns n.
func DerivativeOrder(n *Node, i, k int) *Node {
	if k < 0 {
		structuralf("DerivativeOrder: negative order %d", k)
	}
	for step := 0; step < k; step++ {
		n = Dedup(n.Derivative(i))
	}

	return n
}
