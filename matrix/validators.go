// SPDX-License-Identifier: MIT
// Package matrix: centralized validators for shape and argument checks.
//
// Purpose:
//   - One place for "is this operand usable" checks shared by every kernel.
//   - Return sentinel errors wrapped with the validator tag; never panic.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the buffer is non-nil.
func ValidateNotNil[T any](m *Dense[T]) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures both operands are non-nil and share rows and cols.
func ValidateSameShape[T, U any](a *Dense[T], b *Dense[U]) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.r != b.r {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateVecLen ensures x is non-nil and has length n.
func ValidateVecLen[T any](x []T, n int) error {
	if x == nil && n > 0 {
		return validatorErrorf("ValidateVecLen", ErrNilMatrix)
	}
	if len(x) != n {
		return validatorErrorf("ValidateVecLen", ErrDimensionMismatch)
	}

	return nil
}

// ValidateRows ensures m is non-nil and has exactly n rows.
func ValidateRows[T any](m *Dense[T], n int) error {
	if m == nil {
		return validatorErrorf("ValidateRows", ErrNilMatrix)
	}
	if m.r != n {
		return validatorErrorf("ValidateRows", ErrDimensionMismatch)
	}

	return nil
}

// ValidateMulCompatible ensures a.Cols == b.Rows.
func ValidateMulCompatible(a, b *Values) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateMulCompatible", ErrNilMatrix)
	}
	if a.c != b.r {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// validateTol rejects NaN/Inf tolerances and returns |tol|.
func validateTol(tag string, tol float64) (float64, error) {
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return 0, validatorErrorf(tag, ErrNaNInf)
	}

	return math.Abs(tol), nil
}
