// Package matrix offers the fixed-stride 2-D buffers consumed by the
// expression engine.
//
// The matrix package provides:
//
//   - Dense[T], a row-major buffer generic over its element type, with
//     safe accessors (At/Set return errors, never panic), row views, row-range
//     slicing, column extraction and column-wise broadcast of a vector.
//   - Values (Dense[float64]) for exact evaluation and Bounds
//     (Dense[interval.Interval]) for conservative evaluation.
//   - Float linear-algebra kernels (Mul, MatVec, Add, Sub, Scale, Transpose,
//     AllClose) used to fold linear maps at graph-construction time.
//
// Layout: one expression output dimension per row, one sample per column.
// A batch of N parameter samples of arity p is a p×N buffer.
//
// See the examples in this package and in expr for usage patterns.
package matrix
