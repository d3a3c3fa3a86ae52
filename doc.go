// Package lvlexpr is a symbolic expression engine for vector-valued
// functions of a parameter vector: build a graph once, then evaluate it
// exactly, bound it over boxes, and differentiate it symbolically or in
// forward mode.
//
// What is inside?
//
//	An expression DAG with construction-time folding, plus:
//		• Exact evaluation over batches of samples (one column per sample)
//		• Conservative interval bounds over parameter boxes
//		• Symbolic partial derivatives, gradients and higher orders
//		• Forward-mode Jacobians, exact or bounded
//		• Structural deduplication (hash-consing) of shared subgraphs
//		• A compiled evaluator that computes every shared node once
//
// Why lvlexpr?
//
//   - Shared subgraphs stay shared: evaluation, Jacobians and derivatives
//     never blow up on DAGs with heavy reuse.
//   - Domain violations are values: evaluation returns ErrDomain instead of
//     NaN, and bounds clamp where a domain edge is merely touched.
//   - Shape errors surface at construction, where they are made.
//
// Under the hood, everything is organized under three subpackages:
//
//	interval/ — closed intervals with outward rounding and elementary functions
//	matrix/   — generic dense buffers (Values, Bounds) and linear-algebra kernels
//	expr/     — nodes, folding hooks, derivatives, dedup, compiled evaluator
//
// Quick example:
//
//	t := expr.Parameter(0, 1)
//	circle := t.Cos().Concat(t.Sin())
//	ev := expr.Compile(circle)
//	box, _ := ev.EvaluateBounds(matrix.FromColumn([]interval.Interval{interval.New(0, 1)}))
//
// See examples/ for runnable demos (circle bounds, helix tangent, interval
// Newton).
//
//	go get github.com/katalvlaran/lvlexpr
package lvlexpr
