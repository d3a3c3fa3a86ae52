// SPDX-License-Identifier: MIT
// Package expr_test contains shared fixtures for the expression tests.
//
// Purpose:
//   • One catalogue of graphs covering every operator kind, valid over the
//     box x ∈ [0.2, 1.2], y ∈ [0.3, 0.9].
//   • Finite-difference oracles (gonum diff/fd) and random sampling helpers
//     with fixed seeds.

package expr_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlexpr/expr"
	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

// Parameter domain shared by the catalogue.
const (
	xLo, xHi = 0.2, 1.2
	yLo, yHi = 0.3, 0.9
)

// fdStep is the central-difference step; fdTol the accepted mismatch.
const (
	fdStep = 1e-6
	fdTol  = 1e-5
)

// namedNode pairs a catalogue graph with a label for sub-tests.
type namedNode struct {
	name string
	node *expr.Node
}

// catalogue returns graphs over two parameters covering every kind.
// Implementation:
//   - Stage 1: scalar parameters x, y and a 3-vector v = (x, y, x·y).
//   - Stage 2: one entry per operator, built so the folds keep the kind.
func catalogue() []namedNode {
	x, y := expr.Parameter(0, 2), expr.Parameter(1, 2)
	v := x.Concat(y).Concat(x.Times(y))
	m := matrix.Zeros[float64](2, 3)
	copy(m.Row(0), []float64{1, -2, 0.5})
	copy(m.Row(1), []float64{0, 3, 1})
	basis, _ := matrix.FromRows([][]float64{{2, 1}, {0, 3}})

	u, w := expr.Parameter(0, 2), expr.Parameter(1, 2)
	outer := u.Sin().Times(w).Plus(w.Squared())
	inner := x.Times(y).Concat(x.Plus(y))

	return []namedNode{
		{"constant", expr.Constant(2, 1.5, -2)},
		{"identity", expr.Identity(2)},
		{"parameter", y},
		{"linear", expr.Linear([]float64{1, -1}, basis)},
		{"sum", x.Sin().Plus(y.Cos())},
		{"difference", x.Exp().Minus(y.Squared())},
		{"negated", x.Sin().Negated()},
		{"scaled", x.Sin().Scaled(3)},
		{"transformed", v.Transformed(m)},
		{"translated", v.Translated([]float64{1, 2, 3})},
		{"product", x.Sin().Times(v)},
		{"quotient", v.DividedBy(y.Translated([]float64{1}))},
		{"power_int", x.Plus(y).Pow(3)},
		{"power_negative", x.Pow(-2)},
		{"power_real", x.Pow(1.5)},
		{"power_node", x.PowNode(y)},
		{"dot", v.Dot(v.Translated([]float64{0.5, -1, 2}))},
		{"cross", v.Cross(v.Translated([]float64{1, 0, 0}))},
		{"norm", v.Norm()},
		{"squared_norm", v.SquaredNorm()},
		{"normalized", v.Normalized()},
		{"sin", x.Times(y).Sin()},
		{"cos", x.Times(y).Cos()},
		{"tan", x.Tan()},
		{"asin", x.Scaled(0.5).Asin()},
		{"acos", y.Acos()},
		{"sqrt", x.Plus(y).Sqrt()},
		{"log", x.Log()},
		{"exp", x.Times(y).Exp()},
		{"concat", x.Sin().Concat(y.Exp())},
		{"components", v.Cross(v.Translated([]float64{0, 1, 0})).Components(1, 2)},
		{"composition", outer.Compose(inner)},
		{"nested_composition", outer.Compose(inner).Sin().Compose(expr.Identity(2).Scaled(0.5))},
	}
}

// randomPoint draws a point in the catalogue domain.
func randomPoint(rng *rand.Rand) []float64 {
	return []float64{
		xLo + rng.Float64()*(xHi-xLo),
		yLo + rng.Float64()*(yHi-yLo),
	}
}

// randomBox draws a sub-box of the catalogue domain with widths ≤ 0.1.
func randomBox(rng *rand.Rand) []interval.Interval {
	lx := xLo + rng.Float64()*(xHi-xLo-0.1)
	ly := yLo + rng.Float64()*(yHi-yLo-0.1)

	return []interval.Interval{
		interval.New(lx, lx+rng.Float64()*0.1),
		interval.New(ly, ly+rng.Float64()*0.1),
	}
}

// sampleBox draws a point inside box.
func sampleBox(rng *rand.Rand, box []interval.Interval) []float64 {
	out := make([]float64, len(box))
	for i, b := range box {
		out[i] = b.Lo() + rng.Float64()*b.Width()
	}

	return out
}

// mustEvalAt evaluates n at point or fails the test.
func mustEvalAt(t *testing.T, n *expr.Node, point ...float64) []float64 {
	t.Helper()
	v, err := n.EvaluateAt(point...)
	require.NoError(t, err)

	return v
}

// finiteJacobian approximates the Jacobian of n at point by central
// differences.
func finiteJacobian(t *testing.T, n *expr.Node, point []float64) *mat.Dense {
	t.Helper()
	jac := mat.NewDense(n.NumDimensions(), n.NumParameters(), nil)
	fd.Jacobian(jac, func(y, x []float64) {
		copy(y, mustEvalAt(t, n, x...))
	}, point, &fd.JacobianSettings{Formula: fd.Central, Step: fdStep})

	return jac
}

// finiteDifference returns column i of finiteJacobian.
func finiteDifference(t *testing.T, n *expr.Node, point []float64, i int) []float64 {
	t.Helper()

	return mat.Col(nil, i, finiteJacobian(t, n, point))
}

// finiteDerivative approximates n'(p) for a scalar node of one parameter.
func finiteDerivative(t *testing.T, n *expr.Node, p float64) float64 {
	t.Helper()

	return fd.Derivative(func(x float64) float64 {
		return mustEvalAt(t, n, x)[0]
	}, p, &fd.Settings{Formula: fd.Central, Step: fdStep})
}

// requireClose asserts |got-want| ≤ tol·(1+|want|) component-wise.
func requireClose(t *testing.T, want, got []float64, tol float64, msgAndArgs ...any) {
	t.Helper()
	require.Len(t, got, len(want), msgAndArgs...)
	for k := range want {
		require.LessOrEqual(t, math.Abs(got[k]-want[k]), tol*(1+math.Abs(want[k])), msgAndArgs...)
	}
}

// column returns column j of m or fails the test.
func column(t *testing.T, m *matrix.Values, j int) []float64 {
	t.Helper()
	c, err := m.Column(j)
	require.NoError(t, err)

	return c
}
