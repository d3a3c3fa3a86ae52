// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlexpr/matrix"
)

func TestMul_Basic(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {0, 1}})
	b := MustRows(t, [][]float64{{3, 0, 1}, {1, 1, 0}})
	p, err := matrix.Mul(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 2, 1}, p.Row(0))
	assert.Equal(t, []float64{1, 1, 0}, p.Row(1))

	_, err = matrix.Mul(b, b)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.Mul(nil, b)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestMul_IdentityIsNeutral(t *testing.T) {
	a := matrix.Zeros[float64](3, 3)
	fillSeq(a)
	p, err := matrix.Mul(matrix.Identity(3), a)
	require.NoError(t, err)
	ok, err := matrix.AllClose(p, a, 0, 0)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatVec(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 0, 2}, {0, 3, 0}})
	y, err := matrix.MatVec(m, []float64{1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 3}, y)

	_, err = matrix.MatVec(m, []float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAddSubScaleTranspose(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := MustRows(t, [][]float64{{1, 1}, {1, 1}})

	s, err := matrix.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, s.Row(0))

	d, err := matrix.Sub(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, d.Row(1))

	k, err := matrix.Scale(a, -2)
	require.NoError(t, err)
	assert.Equal(t, []float64{-6, -8}, k.Row(1))

	tr, err := matrix.Transpose(a)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3}, tr.Row(0))

	_, err = matrix.Add(a, matrix.Zeros[float64](1, 2))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestAllClose_Tolerances(t *testing.T) {
	a := MustRows(t, [][]float64{{1, 100}})
	b := MustRows(t, [][]float64{{1 + 1e-13, 100 + 1e-9}})

	ok, err := matrix.AllClose(a, b, 1e-10, 1e-12)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-12)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	assert.False(t, matrix.SliceClose([]float64{math.NaN()}, []float64{math.NaN()}, 1, 1))
}
