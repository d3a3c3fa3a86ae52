// SPDX-License-Identifier: MIT

// Package expr - compiled evaluator facade.
//
// Purpose:
//   - Compile a graph once (value and Jacobian programs, lazily and
//     independently) and run it over many batches.
//   - Validate caller buffers; convert shapes into matrix sentinels.
//
// AI-Hints:
//   - Reuse one Evaluator per graph in hot loops; the Node convenience
//     methods compile on every call.
//   - Programs are immutable after compilation and every call allocates its
//     own workspace, so one Evaluator may serve many goroutines.

package expr

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

// Operation tags used in error wrappers.
const (
	tagEvaluate = "Evaluate"
	tagJacobian = "Jacobian"
)

// evaluatorErrorf wraps err with an operation tag.
func evaluatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Evaluator runs a compiled expression graph.
type Evaluator struct {
	root *Node
	opts Options

	valueOnce sync.Once
	valueProg *program

	jacOnce sync.Once
	jacProg *program
}

// Compile prepares n for evaluation. Programs are built on first use.
func Compile(n *Node, opts ...Option) *Evaluator {
	if n == nil {
		structuralf("Compile: nil node")
	}

	return &Evaluator{root: n, opts: gatherOptions(opts...)}
}

// Node returns the compiled root.
func (e *Evaluator) Node() *Node { return e.root }

func (e *Evaluator) values() *program {
	e.valueOnce.Do(func() { e.valueProg = compileValues(e.root) })

	return e.valueProg
}

func (e *Evaluator) jacobian() *program {
	e.jacOnce.Do(func() { e.jacProg = compileJacobian(e.root) })

	return e.jacProg
}

// Instructions returns the length of the value program: the number of value
// kernels one Evaluate call runs.
func (e *Evaluator) Instructions() int { return len(e.values().code) }

// JacobianInstructions returns the length of the Jacobian program, value
// instructions included.
func (e *Evaluator) JacobianInstructions() int { return len(e.jacobian().code) }

// Evaluate computes the root over a batch: params is NumParameters×N (one
// sample per column) and the result is NumDimensions×N.
//
// Errors:
//   - matrix.ErrNilMatrix / matrix.ErrDimensionMismatch on a bad buffer.
//   - matrix.ErrNaNInf on a non-finite sample (interval.ErrEmpty on a
//     malformed box for EvaluateBounds).
//   - ErrDomain when any sample leaves an operator's domain.
func (e *Evaluator) Evaluate(params *matrix.Values) (*matrix.Values, error) {
	return evaluate(e, floatAlgebra{tol: e.opts.tol}, params)
}

// EvaluateBounds computes conservative bounds of the root over a batch of
// parameter boxes. For every point inside a column's boxes, the exact value
// lies inside that column of the result.
func (e *Evaluator) EvaluateBounds(params *matrix.Bounds) (*matrix.Bounds, error) {
	return evaluate(e, boundsAlgebra{tol: e.opts.tol}, params)
}

// EvaluateAt evaluates the root at a single parameter vector.
func (e *Evaluator) EvaluateAt(point ...float64) ([]float64, error) {
	out, err := e.Evaluate(matrix.FromColumn(point))
	if err != nil {
		return nil, err
	}

	return out.Column(0)
}

// Jacobian returns the NumDimensions×NumParameters matrix of first partials
// at point.
func (e *Evaluator) Jacobian(point []float64) (*matrix.Values, error) {
	return jacobian(e, floatAlgebra{tol: e.opts.tol}, point)
}

// JacobianBounds returns conservative bounds of every first partial over the
// parameter box point.
func (e *Evaluator) JacobianBounds(point []interval.Interval) (*matrix.Bounds, error) {
	return jacobian(e, boundsAlgebra{tol: e.opts.tol}, point)
}

// evaluate is the shared batched path of Evaluate and EvaluateBounds.
func evaluate[T any](e *Evaluator, alg algebra[T], params *matrix.Dense[T]) (*matrix.Dense[T], error) {
	if err := matrix.ValidateRows(params, e.root.params); err != nil {
		return nil, evaluatorErrorf(tagEvaluate, err)
	}
	for i := 0; i < params.Rows(); i++ {
		if err := checkCells(alg, params.Row(i)); err != nil {
			return nil, evaluatorErrorf(tagEvaluate, err)
		}
	}
	p := e.values()
	ws, err := execute(p, alg, &e.opts, params, nil)
	if err != nil {
		return nil, evaluatorErrorf(tagEvaluate, err)
	}
	if p.root == 0 {
		return params.Clone(), nil // identity root: never hand back the caller's buffer
	}

	return ws.values[p.root], nil
}

// jacobian is the shared single-sample path of Jacobian and JacobianBounds.
// MAIN DESCRIPTION:
//   - Forward mode: seed the parameters with I and propagate Jacobians.
//
// Implementation:
//   - Stage 1: validate the point length.
//   - Stage 2: install the point as a P×1 value and I (P×P) as the seed.
//   - Stage 3: run the Jacobian program and return the root slot.
func jacobian[T any](e *Evaluator, alg algebra[T], point []T) (*matrix.Dense[T], error) {
	np := e.root.params
	if err := matrix.ValidateVecLen(point, np); err != nil {
		return nil, evaluatorErrorf(tagJacobian, err)
	}
	if err := checkCells(alg, point); err != nil {
		return nil, evaluatorErrorf(tagJacobian, err)
	}
	seed := matrix.Zeros[T](np, np)
	for i := 0; i < np; i++ {
		seed.Row(i)[i] = alg.lift(1)
	}
	p := e.jacobian()
	ws, err := execute(p, alg, &e.opts, matrix.FromColumn(point), seed)
	if err != nil {
		return nil, evaluatorErrorf(tagJacobian, err)
	}

	return ws.jacs[p.root], nil
}

// checkCells rejects NaN/Inf samples and malformed boxes.
func checkCells[T any](alg algebra[T], cells []T) error {
	for _, x := range cells {
		if err := alg.check(x); err != nil {
			return err
		}
	}

	return nil
}

// ---------- Node conveniences (compile per call) ----------

// Evaluate is Compile(n).Evaluate(params).
func (n *Node) Evaluate(params *matrix.Values) (*matrix.Values, error) {
	return Compile(n).Evaluate(params)
}

// EvaluateBounds is Compile(n).EvaluateBounds(params).
func (n *Node) EvaluateBounds(params *matrix.Bounds) (*matrix.Bounds, error) {
	return Compile(n).EvaluateBounds(params)
}

// EvaluateAt is Compile(n).EvaluateAt(point...).
func (n *Node) EvaluateAt(point ...float64) ([]float64, error) {
	return Compile(n).EvaluateAt(point...)
}

// Jacobian is Compile(n).Jacobian(point).
func (n *Node) Jacobian(point []float64) (*matrix.Values, error) {
	return Compile(n).Jacobian(point)
}

// JacobianBounds is Compile(n).JacobianBounds(point).
func (n *Node) JacobianBounds(point []interval.Interval) (*matrix.Bounds, error) {
	return Compile(n).JacobianBounds(point)
}
