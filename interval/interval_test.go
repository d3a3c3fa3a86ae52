// SPDX-License-Identifier: MIT
// Package interval_test verifies the containment contract of interval ops.
//
// Purpose:
//   - Lock in endpoint semantics of constructors and basic arithmetic.
//   - Property-check containment: op(x, y) ∈ Op(X, Y) for sampled x ∈ X, y ∈ Y.

package interval_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlexpr/interval"
)

const tol = 1e-12

// sample draws a point uniformly inside a.
func sample(rng *rand.Rand, a interval.Interval) float64 {
	return a.Lo() + rng.Float64()*(a.Hi()-a.Lo())
}

// randomBox draws a box with endpoints in [-scale, scale].
func randomBox(rng *rand.Rand, scale float64) interval.Interval {
	return interval.New((rng.Float64()*2-1)*scale, (rng.Float64()*2-1)*scale)
}

func TestNew_NormalizesEndpoints(t *testing.T) {
	a := interval.New(3, -1)
	assert.Equal(t, -1.0, a.Lo())
	assert.Equal(t, 3.0, a.Hi())
	assert.Equal(t, 4.0, a.Width())
	assert.Equal(t, 1.0, a.Mid())
	assert.True(t, a.Valid())
	assert.False(t, a.IsPoint())
	assert.True(t, interval.Point(2).IsPoint())
}

func TestCheck_RejectsNaN(t *testing.T) {
	require.NoError(t, interval.Check(interval.New(0, 1)))
	require.NoError(t, interval.Check(interval.Entire()))
	require.ErrorIs(t, interval.Check(interval.New(math.NaN(), 1)), interval.ErrEmpty)
	require.ErrorIs(t, interval.Check(interval.Point(math.NaN())), interval.ErrEmpty)
}

func TestContainsZero_Tolerance(t *testing.T) {
	assert.True(t, interval.New(-1, 1).ContainsZero(0))
	assert.True(t, interval.New(1e-13, 1).ContainsZero(tol))
	assert.False(t, interval.New(1e-3, 1).ContainsZero(tol))
	assert.True(t, interval.New(-1e-13, 1e-13).IsZero(tol))
	assert.False(t, interval.New(-1, 1e-13).IsZero(tol))
}

func TestHull_And_ContainsInterval(t *testing.T) {
	h := interval.Hull(interval.New(0, 1), interval.New(3, 4))
	assert.Equal(t, 0.0, h.Lo())
	assert.Equal(t, 4.0, h.Hi())
	assert.True(t, h.ContainsInterval(interval.New(0.5, 3.5)))
	assert.False(t, h.ContainsInterval(interval.New(-0.5, 3.5)))
}

func TestScale_Zero_IsExact(t *testing.T) {
	s := interval.Scale(0, interval.Entire())
	assert.Equal(t, interval.Point(0), s)
	assert.Equal(t, interval.New(-3, -1), interval.Scale(-1, interval.New(1, 3)))
}

func TestDiv_ZeroDivisor_Domain(t *testing.T) {
	_, err := interval.Div(interval.Point(1), interval.New(-1, 1), tol)
	require.ErrorIs(t, err, interval.ErrDomain)

	q, err := interval.Div(interval.New(1, 2), interval.New(2, 4), tol)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, q.Lo(), 1e-15)
	assert.InDelta(t, 1.0, q.Hi(), 1e-15)
}

func TestSq_Straddling(t *testing.T) {
	s := interval.Sq(interval.New(-3, 2))
	assert.Equal(t, 0.0, s.Lo())
	assert.InDelta(t, 9.0, s.Hi(), 1e-14)
}

// TestArithmetic_Containment samples random boxes and points; every exact
// result must lie in the interval result.
func TestArithmetic_Containment(t *testing.T) {
	rng := rand.New(rand.NewSource(1337))
	for iter := 0; iter < 2000; iter++ {
		a, b := randomBox(rng, 10), randomBox(rng, 10)
		x, y := sample(rng, a), sample(rng, b)

		require.True(t, interval.Add(a, b).Contains(x+y), "add %v %v", a, b)
		require.True(t, interval.Sub(a, b).Contains(x-y), "sub %v %v", a, b)
		require.True(t, interval.Mul(a, b).Contains(x*y), "mul %v %v", a, b)
		require.True(t, interval.Neg(a).Contains(-x), "neg %v", a)
		require.True(t, interval.Scale(-2.5, a).Contains(-2.5*x), "scale %v", a)
		require.True(t, interval.Sq(a).Contains(x*x), "sq %v", a)
		if q, err := interval.Div(a, b, tol); err == nil {
			require.True(t, q.Contains(x/y), "div %v %v", a, b)
		} else {
			require.True(t, b.ContainsZero(tol))
		}
	}
}

func TestPoint_Arithmetic_IsTight(t *testing.T) {
	r := interval.Add(interval.Point(0.1), interval.Point(0.2))
	assert.True(t, r.Contains(0.1+0.2))
	assert.Less(t, r.Width(), 1e-15)
	assert.False(t, math.IsNaN(r.Mid()))
}
