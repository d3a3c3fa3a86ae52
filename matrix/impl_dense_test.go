// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense[float64](0, 3)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	_, err = matrix.NewDense[float64](2, -1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	m, err := matrix.NewDense[float64](2, 3)
	require.NoError(t, err)
	r, c := m.Shape()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
}

func TestZeros_AllowsEmptyBatch(t *testing.T) {
	m := matrix.Zeros[float64](3, 0)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, 0, m.Cols())
	assert.Empty(t, m.Row(1))
	assert.Panics(t, func() { matrix.Zeros[float64](-1, 2) })
}

func TestAtSet_OutOfRange(t *testing.T) {
	m := matrix.Zeros[float64](2, 2)
	require.NoError(t, m.Set(1, 0, 7))
	assert.Equal(t, 7.0, MustAt(t, m, 1, 0))

	_, err := m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)

	var nilM *matrix.Values
	_, err = nilM.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestRow_AliasesBuffer(t *testing.T) {
	m := matrix.Zeros[float64](2, 3)
	m.Row(1)[2] = 5
	assert.Equal(t, 5.0, MustAt(t, m, 1, 2))
}

func TestRowRange_And_Column(t *testing.T) {
	m := matrix.Zeros[float64](4, 2)
	fillSeq(m)

	w, err := m.RowRange(1, 2)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, w.Row(0))
	assert.Equal(t, []float64{4, 5}, w.Row(1))

	w.Row(0)[0] = -1 // copy, not a view
	assert.Equal(t, 2.0, MustAt(t, m, 1, 0))

	_, err = m.RowRange(3, 2)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	col, err := m.Column(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 3, 5, 7}, col)
	_, err = m.Column(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestFromRows_Ragged(t *testing.T) {
	_, err := matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrBadShape)
	_, err = matrix.FromRows[float64](nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestBroadcast_Stack_Map(t *testing.T) {
	b := matrix.Broadcast([]float64{1, 2}, 3)
	assert.Equal(t, []float64{1, 1, 1}, b.Row(0))
	assert.Equal(t, []float64{2, 2, 2}, b.Row(1))

	s, err := matrix.Stack(b, matrix.FromColumn([]float64{9, 9, 9}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	assert.Nil(t, s)

	s, err = matrix.Stack(b, matrix.Broadcast([]float64{3}, 3))
	require.NoError(t, err)
	assert.Equal(t, 3, s.Rows())
	assert.Equal(t, []float64{3, 3, 3}, s.Row(2))

	iv := matrix.Map(s, interval.Point)
	assert.Equal(t, interval.Point(2), iv.Row(1)[0])
}

func TestClone_IsDeep(t *testing.T) {
	m := MustRows(t, [][]float64{{1, 2}})
	c := m.Clone()
	c.Row(0)[0] = 10
	assert.Equal(t, 1.0, MustAt(t, m, 0, 0))
	assert.Equal(t, "[1, 2]\n", m.String())
}
