// SPDX-License-Identifier: MIT

// Package expr - leaf constructors.
//
// Purpose:
//   - Create the graph leaves: constants, identity, single parameters and
//     affine maps.
//   - Validate shapes eagerly; violations panic with ErrStructural.

package expr

import (
	"github.com/katalvlaran/lvlexpr/matrix"
)

// Constant returns a node that ignores its params parameters and yields value
// for every sample.
// Panics (ErrStructural) when value is empty or params is negative.
func Constant(params int, value ...float64) *Node {
	if len(value) == 0 {
		structuralf("Constant: empty value")
	}
	if params < 0 {
		structuralf("Constant: negative parameter count %d", params)
	}

	return constant(params, vecClone(value))
}

// constant wraps v without copying; callers hand over ownership.
func constant(params int, v []float64) *Node {
	n := newNode(KindConstant, len(v), params)
	n.vec = v
	n.total = true

	return n
}

// Zero returns the dims-vector of zeros over params parameters.
func Zero(dims, params int) *Node {
	if dims <= 0 {
		structuralf("Zero: dimension %d must be positive", dims)
	}

	return constant(params, make([]float64, dims))
}

// Identity returns x ↦ x over n parameters.
func Identity(n int) *Node {
	if n <= 0 {
		structuralf("Identity: dimension %d must be positive", n)
	}

	id := newNode(KindIdentity, n, n)
	id.total = true

	return id
}

// Parameter returns x ↦ x[i] over n parameters.
func Parameter(i, n int) *Node {
	if n <= 0 || i < 0 || i >= n {
		structuralf("Parameter: index %d out of range for %d parameters", i, n)
	}
	p := newNode(KindParameter, 1, n)
	p.start = i
	p.total = true

	return p
}

// Linear returns x ↦ origin + basis·x. basis is dims×params and origin has
// dims entries; both are copied.
//
// Folding:
//   - an all-zero basis yields a Constant,
//   - a zero origin with a square identity basis yields Identity.
func Linear(origin []float64, basis *matrix.Values) *Node {
	if basis == nil {
		structuralf("Linear: nil basis")
	}
	if len(origin) != basis.Rows() || basis.Rows() == 0 {
		structuralf("Linear: origin has %d entries, basis has %d rows", len(origin), basis.Rows())
	}

	return linear(vecClone(origin), basis.Clone())
}

// linear builds the folded affine node without copying its inputs.
func linear(origin []float64, basis *matrix.Values) *Node {
	rows, cols := basis.Shape()
	zeroBasis, identity := true, rows == cols
	for i := 0; i < rows; i++ {
		for j, v := range basis.Row(i) {
			if v != 0 {
				zeroBasis = false
			}
			if (i == j && v != 1) || (i != j && v != 0) {
				identity = false
			}
		}
	}
	switch {
	case zeroBasis:
		return constant(cols, origin)
	case identity && vecIsZero(origin):
		return Identity(rows)
	}
	n := newNode(KindLinear, rows, cols)
	n.vec = origin
	n.mat = basis
	n.total = true

	return n
}

// selector returns the count×n basis picking rows [start, start+count).
func selector(start, count, n int) *matrix.Values {
	m := matrix.Zeros[float64](count, n)
	for i := 0; i < count; i++ {
		m.Row(i)[start+i] = 1
	}

	return m
}

// mustMatrix turns a kernel error on pre-validated shapes into a structural panic.
func mustMatrix(m *matrix.Values, err error) *matrix.Values {
	if err != nil {
		structuralf("%v", err)
	}

	return m
}

// mustVector is the slice form of mustMatrix.
func mustVector(v []float64, err error) []float64 {
	if err != nil {
		structuralf("%v", err)
	}

	return v
}

// ---------- shape checks ----------

func checkParams(op string, a, b *Node) {
	if a.params != b.params {
		structuralf("%s: parameter count %d != %d", op, a.params, b.params)
	}
}

func checkSameShape(op string, a, b *Node) {
	checkParams(op, a, b)
	if a.dims != b.dims {
		structuralf("%s: dimension %d != %d", op, a.dims, b.dims)
	}
}

func checkScalar(op string, a *Node) {
	if a.dims != 1 {
		structuralf("%s: operand must be scalar, has %d dimensions", op, a.dims)
	}
}
