// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   • Provide small, deterministic test fixtures for buffers and kernels.
//   • Keep all data finite and well-formed.

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// MustRows BUILDS a *Values from literal rows or fails the test (fatal on error).
// Implementation:
//   - Stage 1: Call matrix.FromRows(rows).
//   - Stage 2: t.Fatalf on error to abort the test early.
func MustRows(t *testing.T, rows [][]float64) *matrix.Values {
	t.Helper()
	m, err := matrix.FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows(%v): %v", rows, err)
	}

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt[T any](t *testing.T, m *matrix.Dense[T], i, j int) T {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// fillSeq writes 0,1,2,... in row-major order.
func fillSeq(m *matrix.Values) {
	r, c := m.Shape()
	for i := 0; i < r; i++ {
		row := m.Row(i)
		for j := 0; j < c; j++ {
			row[j] = float64(i*c + j)
		}
	}
}
