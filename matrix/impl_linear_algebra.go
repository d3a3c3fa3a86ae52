// SPDX-License-Identifier: MIT
// Package matrix: float linear-algebra kernels over Values.
//
// Purpose:
//   - Fold linear maps (basis·x + origin) at expression-construction time.
//   - Compare float buffers with a combined absolute/relative tolerance.
//
// Notes:
//   - All kernels use the central validators and wrap failures via matrixErrorf.
//   - Outputs are always freshly allocated; inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opAllClose  = "AllClose"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil to avoid creating a non-nil wrapper around a nil cause.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Identity returns the n×n identity.
func Identity(n int) *Values {
	m := Zeros[float64](n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}

	return m
}

// addSub is the shared kernel behind Add and Sub: out = a + sign·b.
func addSub(a, b *Values, sign float64, opTag string) (*Values, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	out := Zeros[float64](a.r, a.c)
	for k := range out.data {
		out.data[k] = a.data[k] + sign*b.data[k]
	}

	return out, nil
}

// Add returns a + b element-wise.
func Add(a, b *Values) (*Values, error) { return addSub(a, b, +1, opAdd) }

// Sub returns a − b element-wise.
func Sub(a, b *Values) (*Values, error) { return addSub(a, b, -1, opSub) }

// Mul computes the matrix product a·b.
// MAIN DESCRIPTION:
//   - Standard (r×n)·(n×c) product used to fold nested linear maps.
//
// Implementation:
//   - Stage 1: validate non-nil operands and a.Cols == b.Rows.
//   - Stage 2: i-k-j loop order on the flat buffers; zero entries of a are skipped.
//
// Behavior highlights:
//   - Deterministic accumulation order (fixed loops).
//   - Sparse-ish bases (identity rows, selectors) skip most inner loops.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (wrapped with "Mul").
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b *Values) (*Values, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	r, n, c := a.r, a.c, b.c
	out := Zeros[float64](r, c)
	for i := 0; i < r; i++ {
		orow := out.data[i*c : (i+1)*c]
		for k := 0; k < n; k++ {
			av := a.data[i*n+k]
			if av == 0 {
				continue // skip: contributes nothing
			}
			brow := b.data[k*c : (k+1)*c]
			for j := range orow {
				orow[j] += av * brow[j]
			}
		}
	}

	return out, nil
}

// MatVec computes y = m·x.
func MatVec(m *Values, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	for i := range y {
		var sum float64
		row := m.data[i*m.c : (i+1)*m.c]
		for j, v := range row {
			sum += v * x[j]
		}
		y[i] = sum
	}

	return y, nil
}

// Scale returns alpha·m.
func Scale(m *Values, alpha float64) (*Values, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := Zeros[float64](m.r, m.c)
	for k, v := range m.data {
		out.data[k] = alpha * v
	}

	return out, nil
}

// Transpose returns mᵀ.
func Transpose(m *Values) (*Values, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := Zeros[float64](m.c, m.r)
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			out.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return out, nil
}

// AllClose reports whether |a−b| ≤ atol + rtol·|b| holds cell-wise.
// MAIN DESCRIPTION:
//   - Tolerance comparison used for constant deduplication and in tests.
//
// Implementation:
//   - Stage 1: validate tolerances (finite; negative values are taken by magnitude).
//   - Stage 2: validate shapes.
//   - Stage 3: early exit on first violation.
//
// Behavior highlights:
//   - NaN cells never compare close.
//
// Errors:
//   - ErrNaNInf for non-finite tolerances; ErrNilMatrix/ErrDimensionMismatch for shapes.
func AllClose(a, b *Values, rtol, atol float64) (bool, error) {
	rt, err := validateTol(opAllClose, rtol)
	if err != nil {
		return false, err
	}
	at, err := validateTol(opAllClose, atol)
	if err != nil {
		return false, err
	}
	if err = ValidateSameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	return SliceClose(a.data, b.data, rt, at), nil
}

// SliceClose is the flat-slice form of AllClose; lengths must match.
func SliceClose(a, b []float64, rtol, atol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !(math.Abs(a[k]-b[k]) <= atol+rtol*math.Abs(b[k])) {
			return false
		}
	}

	return true
}
