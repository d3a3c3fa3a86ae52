// Package expr builds, evaluates and differentiates parametric expression
// graphs.
//
// An expression is an immutable *Node in a directed acyclic graph. Every node
// maps a parameter vector of fixed arity (NumParameters) to an output vector
// of fixed size (NumDimensions). Graphs are assembled bottom-up:
//
//	t := expr.Parameter(0, 1)                   // scalar parameter t
//	circle := t.Cos().Concat(t.Sin()).Scaled(2) // (2cos t, 2sin t)
//	tangent := circle.Derivative(0)             // (-2sin t, 2cos t)
//
// Each construction step normalizes trivial cases on the spot: negating a
// negation returns the operand, scaling a linear map folds into its basis,
// slicing a concatenation routes to the correct side, and so on. Graphs are
// therefore kept shallow without a separate simplifier.
//
// Evaluation:
//
//   - Evaluate / EvaluateBounds run a batch of N samples (one per column) in
//     double precision or in interval arithmetic. For every point p inside a
//     box B, the exact result at p lies inside the bounds result for B.
//   - Jacobian / JacobianBounds return the NumDimensions×NumParameters matrix
//     of first partials at a single sample.
//   - An Evaluator compiles a graph once into a linear program of
//     instructions over workspace slots; a node shared by many parents runs
//     once per distinct input per call.
//
// Differentiation: Derivative(i) returns a new graph for ∂n/∂x_i built with
// the chain, product and quotient rules. Dedup collapses structurally
// duplicated subgraphs (hash-consing) without changing results.
//
// Errors: construction-time misuse (dimension mismatches, bad slices) panics
// with an error wrapping ErrStructural; use Build to recover it as a value.
// Evaluation outside an operator's domain returns an error wrapping ErrDomain.
//
// Concurrency: nodes are immutable and safe to share. Each Evaluate call uses
// its own workspace, so an Evaluator may be shared between goroutines.
package expr
