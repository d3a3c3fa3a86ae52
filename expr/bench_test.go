// SPDX-License-Identifier: MIT

package expr_test

import (
	"testing"

	"github.com/katalvlaran/lvlexpr/expr"
	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

// Package-level sinks keep the compiler from eliding benchmarked work.
var (
	sinkValues *matrix.Values
	sinkBounds *matrix.Bounds
	sinkNode   *expr.Node
)

// helix returns (cos t, sin t, t/4) with a shared angle node.
func helix() *expr.Node {
	t := expr.Parameter(0, 1)
	return t.Cos().Concat(t.Sin()).Concat(t.Scaled(0.25))
}

func BenchmarkEvaluate_Batch256(b *testing.B) {
	ev := expr.Compile(helix().Normalized())
	params := matrix.Zeros[float64](1, 256)
	for s := range params.Row(0) {
		params.Row(0)[s] = float64(s) / 64
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkValues, _ = ev.Evaluate(params)
	}
}

func BenchmarkEvaluateBounds_Batch256(b *testing.B) {
	ev := expr.Compile(helix().Normalized())
	params := matrix.Zeros[interval.Interval](1, 256)
	for s := range params.Row(0) {
		lo := float64(s) / 64
		params.Row(0)[s] = interval.New(lo, lo+1.0/64)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkBounds, _ = ev.EvaluateBounds(params)
	}
}

func BenchmarkJacobian(b *testing.B) {
	ev := expr.Compile(catalogue()[len(catalogue())-1].node)
	p := []float64{0.5, 0.5}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkValues, _ = ev.Jacobian(p)
	}
}

func BenchmarkDerivativeAndDedup(b *testing.B) {
	f := helix().Normalized().Cross(helix())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sinkNode = expr.Dedup(f.Derivative(0))
	}
}
