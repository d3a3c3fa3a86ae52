// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// Package-level sinks keep the compiler from eliding benchmarked work.
var (
	sinkValues *matrix.Values
	sinkVec    []float64
)

func BenchmarkMul_16x16(b *testing.B) {
	a := matrix.Zeros[float64](16, 16)
	fillSeq(a)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkValues, _ = matrix.Mul(a, a)
	}
}

func BenchmarkMatVec_64(b *testing.B) {
	a := matrix.Zeros[float64](64, 64)
	fillSeq(a)
	x := make([]float64, 64)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkVec, _ = matrix.MatVec(a, x)
	}
}
