// SPDX-License-Identifier: MIT

package expr_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlexpr/expr"
	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

func TestScenario_ConstantOverBatch(t *testing.T) {
	c := expr.Constant(1, 5)
	params, err := matrix.FromRows([][]float64{{0, 1, 2}})
	require.NoError(t, err)

	out, err := c.Evaluate(params)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 5, 5}, out.Row(0))

	d, err := c.Derivative(0).Evaluate(params)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0}, d.Row(0))
}

func TestScenario_IdentityComposedWithLinear(t *testing.T) {
	basis, err := matrix.FromRows([][]float64{{2}})
	require.NoError(t, err)
	f := expr.Identity(1).Compose(expr.Linear([]float64{3}, basis))

	assert.Equal(t, []float64{11}, mustEvalAt(t, f, 4))

	d := f.Derivative(0)
	v, ok := d.ConstantValue()
	require.True(t, ok, "derivative of an affine map is constant: %s", d)
	assert.Equal(t, []float64{2}, v)
}

func TestScenario_SqrtDomain(t *testing.T) {
	neg := expr.Constant(1, -1).Sqrt()
	require.Equal(t, expr.KindSqrt, neg.Kind())

	_, err := neg.EvaluateAt(0)
	require.ErrorIs(t, err, expr.ErrDomain)

	_, err = neg.EvaluateBounds(matrix.FromColumn([]interval.Interval{interval.Point(-1)}))
	require.ErrorIs(t, err, expr.ErrDomain)

	root := expr.Parameter(0, 1).Sqrt()
	_, err = root.EvaluateBounds(matrix.FromColumn([]interval.Interval{interval.Point(-1)}))
	require.ErrorIs(t, err, expr.ErrDomain)

	out, err := root.EvaluateBounds(matrix.FromColumn([]interval.Interval{interval.New(-1, 4)}))
	require.NoError(t, err)
	b := out.Row(0)[0]
	assert.Equal(t, 0.0, b.Lo())
	assert.InDelta(t, 2.0, b.Hi(), 1e-12)
}

func TestScenario_TanJacobianNearPole(t *testing.T) {
	tan := expr.Parameter(0, 1).Tan()
	ev := expr.Compile(tan)

	_, err := ev.Jacobian([]float64{math.Pi / 2})
	require.ErrorIs(t, err, expr.ErrDomain)

	j, err := ev.Jacobian([]float64{math.Pi / 4})
	require.NoError(t, err)
	assert.InDelta(t, 2.0, j.Row(0)[0], 1e-12)
}

func TestScenario_ComponentsOfConcatenation(t *testing.T) {
	x, y := expr.Parameter(0, 2), expr.Parameter(1, 2)
	a := x.Sin().Concat(y.Cos())
	b := x.Times(y)
	cat := a.Concat(b)
	require.Equal(t, 3, cat.NumDimensions())

	got := cat.Components(2, 1)
	assert.Same(t, b, got)
	assert.NotEqual(t, expr.KindComponents, got.Kind())

	first := cat.Components(0, 2)
	assert.Same(t, a, first)

	// A window straddling the split re-concatenates the covered parts.
	mid := cat.Components(1, 2)
	assert.Equal(t, expr.KindConcatenation, mid.Kind())
	requireClose(t, []float64{math.Cos(0.5), 0.15}, mustEvalAt(t, mid, 0.3, 0.5), 1e-15)
}
