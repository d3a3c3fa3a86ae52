// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Serve both exact (float64) and conservative (interval) evaluation with one layout.
//
// AI-Hints:
//   - Row(i) returns a slice aliasing the buffer; kernels write output rows through it.
//   - Use RowRange(start, count) to materialize a row window (copy).
//   - Broadcast(vec, n) replicates a column vector across n samples.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/Row: O(1); Clone/Column: O(r*c)/O(r); RowRange: O(count*c).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSet      = "Set"      // method tag used in error wrappers
	ctxRowRange = "RowRange" // method tag used in error wrappers
	ctxColumn   = "Column"   // method tag used in error wrappers
	ctxFromRows = "FromRows" // ctor tag used in error wrappers
	ctxStack    = "Stack"    // ctor tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// MAIN DESCRIPTION:
//   - Attach method context and coordinates to a sentinel error for diagnostics.
//
// Implementation:
//   - Stage 1: format "Dense.<method>(row,col): %w".
//   - Stage 2: return wrapped error.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// AI-Hints:
//   - Prefer to wrap at the nearest detection site for precise coordinates.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major buffer generic over its element type.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense[T any] struct {
	r, c int // row and column counts (>=0; zero allowed only through Zeros)
	data []T // contiguous row-major storage (len == r*c)
}

// NewDense creates an r×c zero buffer using row-major storage.
// MAIN DESCRIPTION:
//   - Public constructor for Dense with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - Forbids empty dimensions to avoid accidental 0×0 buffers.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
//
// AI-Hints:
//   - Evaluation code that may legitimately see zero samples uses Zeros instead.
func NewDense[T any](rows, cols int) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// Zeros allocates an r×c zero buffer and accepts zero-sized shapes.
// A batch of zero samples is a valid evaluation input, so cols == 0 is allowed.
// Panics on negative dimensions (programmer error).
func Zeros[T any](rows, cols int) *Dense[T] {
	if rows < 0 || cols < 0 {
		panic(fmt.Sprintf("matrix.Zeros: negative shape %dx%d", rows, cols))
	}

	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}
}

// FromRows builds a buffer from a slice of equally long rows (deep copy).
// Returns ErrBadShape when rows are ragged, ErrInvalidDimensions when empty.
func FromRows[T any](rows [][]T) (*Dense[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	d := Zeros[T](len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, denseErrorf(ctxFromRows, i, len(row), ErrBadShape)
		}
		copy(d.data[i*c:(i+1)*c], row)
	}

	return d, nil
}

// FromColumn builds an n×1 buffer holding vec (deep copy).
func FromColumn[T any](vec []T) *Dense[T] {
	d := Zeros[T](len(vec), 1)
	copy(d.data, vec)

	return d
}

// Broadcast replicates vec into every one of n columns.
// MAIN DESCRIPTION:
//   - Column-wise broadcast used by constant expressions: every sample sees vec.
//
// Implementation:
//   - Stage 1: allocate len(vec)×n.
//   - Stage 2: fill each row with its component value.
//
// Complexity:
//   - Time O(len(vec)*n), Space O(len(vec)*n).
func Broadcast[T any](vec []T, n int) *Dense[T] {
	d := Zeros[T](len(vec), n)
	for i, v := range vec {
		row := d.data[i*n : (i+1)*n]
		for j := range row {
			row[j] = v
		}
	}

	return d
}

// Stack places b's rows below a's rows; column counts must agree.
func Stack[T any](a, b *Dense[T]) (*Dense[T], error) {
	if a == nil || b == nil {
		return nil, denseErrorf(ctxStack, 0, 0, ErrNilMatrix)
	}
	if a.c != b.c {
		return nil, denseErrorf(ctxStack, a.c, b.c, ErrDimensionMismatch)
	}
	d := Zeros[T](a.r+b.r, a.c)
	copy(d.data, a.data)
	copy(d.data[len(a.data):], b.data)

	return d, nil
}

// Map applies f to every cell of src and returns a new buffer with the results.
// Row-major traversal; deterministic.
func Map[T, U any](src *Dense[T], f func(T) U) *Dense[U] {
	d := Zeros[U](src.r, src.c)
	for k, v := range src.data {
		d.data[k] = f(v)
	}

	return d
}

// Rows returns the number of rows.
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense[T]) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense[T]) Shape() (int, int) { return m.r, m.c }

// indexOf converts (i,j) to a flat offset after bounds checks.
func (m *Dense[T]) indexOf(method string, i, j int) (int, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, denseErrorf(method, i, j, ErrOutOfRange)
	}

	return i*m.c + j, nil
}

// At returns the element at (i,j) or ErrOutOfRange.
func (m *Dense[T]) At(i, j int) (T, error) {
	var zero T
	if m == nil {
		return zero, denseErrorf(ctxAt, i, j, ErrNilMatrix)
	}
	k, err := m.indexOf(ctxAt, i, j)
	if err != nil {
		return zero, err
	}

	return m.data[k], nil
}

// Set writes v at (i,j) or returns ErrOutOfRange.
func (m *Dense[T]) Set(i, j int, v T) error {
	if m == nil {
		return denseErrorf(ctxSet, i, j, ErrNilMatrix)
	}
	k, err := m.indexOf(ctxSet, i, j)
	if err != nil {
		return err
	}
	m.data[k] = v

	return nil
}

// Row returns row i as a slice aliasing the buffer (no copy).
// Panics when i is out of range; callers index rows they allocated.
func (m *Dense[T]) Row(i int) []T {
	return m.data[i*m.c : (i+1)*m.c]
}

// RowRange copies rows [start, start+count) into a new count×cols buffer.
// Returns ErrBadShape when the window does not fit.
func (m *Dense[T]) RowRange(start, count int) (*Dense[T], error) {
	if start < 0 || count < 0 || start+count > m.r {
		return nil, denseErrorf(ctxRowRange, start, count, ErrBadShape)
	}
	d := Zeros[T](count, m.c)
	copy(d.data, m.data[start*m.c:(start+count)*m.c])

	return d, nil
}

// Column copies column j into a fresh slice.
func (m *Dense[T]) Column(j int) ([]T, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxColumn, 0, j, ErrOutOfRange)
	}
	out := make([]T, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Clone returns a deep copy.
func (m *Dense[T]) Clone() *Dense[T] {
	d := Zeros[T](m.r, m.c)
	copy(d.data, m.data)

	return d
}

// String renders the buffer row by row.
func (m *Dense[T]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(_fmtSep)
			}
			fmt.Fprint(&sb, m.data[i*m.c+j])
		}
		sb.WriteString(_fmtRowClose)
	}

	return sb.String()
}
