// SPDX-License-Identifier: MIT

package expr

// Compose returns n∘inner, i.e. x ↦ n(inner(x)). n must take as many
// parameters as inner has output dimensions; the result takes inner's
// parameters.
//
// Folding:
//   - identity on either side disappears,
//   - constant outers re-home onto inner's parameters,
//   - a Parameter outer selects the matching component of inner,
//   - linear outers become a transform plus translation of inner,
//   - negation, scaling, translation and transform are pulled out of the
//     composition,
//   - nested compositions re-associate to the right.
//
// Operators that are not linear in their operand stay as a Composition node,
// so a shared outer subgraph is never duplicated per use. A sliced outer also
// stays whole: Components pushes windows into compositions, never out.
func (n *Node) Compose(inner *Node) *Node {
	if n.params != inner.dims {
		structuralf("Compose: outer takes %d parameters, inner has %d dimensions", n.params, inner.dims)
	}
	if inner.kind == KindIdentity {
		return n
	}
	switch n.kind {
	case KindIdentity:
		return inner
	case KindConstant:
		return constant(inner.params, n.vec)
	case KindParameter:
		return inner.Components(n.start, 1)
	case KindLinear:
		return inner.transformed(n.mat).Translated(n.vec)
	case KindNegated:
		return n.a.Compose(inner).Negated()
	case KindScaled:
		return n.a.Compose(inner).Scaled(n.k)
	case KindTranslated:
		return n.a.Compose(inner).Translated(n.vec)
	case KindTransformed:
		return n.a.Compose(inner).transformed(n.mat)
	case KindComposition:
		return n.a.Compose(n.b.Compose(inner))
	}
	m := newNode(KindComposition, n.dims, inner.params)
	m.a, m.b = n, inner
	m.total = n.total && inner.total

	return m
}
