// SPDX-License-Identifier: MIT

// Package expr - value kernels and the program interpreter.
//
// Purpose:
//   - Run a compiled program over a per-call workspace.
//   - One generic value kernel per Kind, batched over N sample columns.
//
// Notes:
//   - Kernels never mutate their inputs; every output is a fresh buffer
//     (or an operand buffer returned unchanged).
//   - The zero value of T is the additive zero of both algebras
//     (0.0 and the point interval [0, 0]).

package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// workspace holds the slot buffers of one program run.
type workspace[T any] struct {
	values []*matrix.Dense[T]
	jacs   []*matrix.Dense[T]
}

// execute runs p over input (value slot 0) and seed (Jacobian slot 0).
// MAIN DESCRIPTION:
//   - Straight-line interpretation; the first kernel error aborts the run.
//
// Implementation:
//   - Stage 1: allocate the slot tables, install input and seed.
//   - Stage 2: execute each instruction in order, store its output slot.
//   - Stage 3: report the executed node to the matching hook.
//
// Errors:
//   - the kernel error tagged with the failing node (wraps ErrDomain or
//     ErrUnimplemented).
//
// Complexity:
//   - Time: sum of kernel costs; Space: one buffer per slot.
func execute[T any](p *program, alg algebra[T], opts *Options, input, seed *matrix.Dense[T]) (*workspace[T], error) {
	ws := &workspace[T]{
		values: make([]*matrix.Dense[T], p.valueSlots),
		jacs:   make([]*matrix.Dense[T], p.jacSlots),
	}
	ws.values[0] = input
	ws.jacs[0] = seed
	for k := range p.code {
		ins := &p.code[k]
		switch ins.op {
		case opValue:
			out, err := evalValue(alg, ins, ws)
			if err != nil {
				return nil, evalErrorf(ins.node, err)
			}
			ws.values[ins.out] = out
			if opts.computeHook != nil {
				opts.computeHook(ins.node)
			}
		case opJacobian:
			out, err := evalJacobian(alg, ins, ws)
			if err != nil {
				return nil, evalErrorf(ins.node, err)
			}
			ws.jacs[ins.out] = out
			if opts.jacobianHook != nil {
				opts.jacobianHook(ins.node)
			}
		}
	}

	return ws, nil
}

// slot returns the value buffer at s, or nil for noSlot.
func (ws *workspace[T]) slot(s int) *matrix.Dense[T] {
	if s == noSlot {
		return nil
	}

	return ws.values[s]
}

// jslot returns the Jacobian buffer at s, or nil for noSlot.
func (ws *workspace[T]) jslot(s int) *matrix.Dense[T] {
	if s == noSlot {
		return nil
	}

	return ws.jacs[s]
}

// evalValue computes the value of ins.node over every sample column.
func evalValue[T any](alg algebra[T], ins *instruction, ws *workspace[T]) (*matrix.Dense[T], error) {
	n := ins.node
	in := ws.values[ins.in]
	a, b := ws.slot(ins.a), ws.slot(ins.b)
	switch n.kind {
	case KindConstant:
		return matrix.Broadcast(liftVec(alg, n.vec), in.Cols()), nil
	case KindParameter:
		out := matrix.Zeros[T](1, in.Cols())
		copy(out.Row(0), in.Row(n.start))
		return out, nil
	case KindLinear:
		return affine(alg, n.mat, n.vec, in), nil
	case KindSum:
		return zip(a, b, alg.add), nil
	case KindDifference:
		return zip(a, b, alg.sub), nil
	case KindNegated:
		return matrix.Map(a, alg.neg), nil
	case KindScaled:
		return matrix.Map(a, func(x T) T { return alg.scale(n.k, x) }), nil
	case KindTransformed:
		return affine(alg, n.mat, nil, a), nil
	case KindTranslated:
		out := matrix.Zeros[T](a.Rows(), a.Cols())
		for i, off := range n.vec {
			orow, arow := out.Row(i), a.Row(i)
			for s, x := range arow {
				orow[s] = alg.shift(x, off)
			}
		}
		return out, nil
	case KindProduct:
		return scalarRows(a, b, func(s, x T) (T, error) { return alg.mul(s, x), nil })
	case KindQuotient:
		return scalarRows(b, a, func(s, x T) (T, error) { return alg.div(x, s) })
	case KindPower:
		return powerValue(alg, n, a, b)
	case KindDot:
		return reduceRows(alg, a, b, alg.mul), nil
	case KindSquaredNorm:
		return reduceRows(alg, a, a, func(x, _ T) T { return alg.sq(x) }), nil
	case KindNorm:
		return mapErr(reduceRows(alg, a, a, func(x, _ T) T { return alg.sq(x) }), alg.sqrt)
	case KindNormalized:
		nrm, err := mapErr(reduceRows(alg, a, a, func(x, _ T) T { return alg.sq(x) }), alg.sqrt)
		if err != nil {
			return nil, err
		}
		return scalarRows(nrm, a, func(s, x T) (T, error) { return alg.div(x, s) })
	case KindCross:
		return crossValue(alg, a, b), nil
	case KindSin:
		return matrix.Map(a, alg.sin), nil
	case KindCos:
		return matrix.Map(a, alg.cos), nil
	case KindExp:
		return matrix.Map(a, alg.exp), nil
	case KindTan:
		return mapErr(a, alg.tan)
	case KindAsin:
		return mapErr(a, alg.asin)
	case KindAcos:
		return mapErr(a, alg.acos)
	case KindSqrt:
		return mapErr(a, alg.sqrt)
	case KindLog:
		return mapErr(a, alg.log)
	case KindConcatenation:
		return matrix.Stack(a, b)
	case KindComponents:
		return a.RowRange(n.start, n.count)
	}

	return nil, fmt.Errorf("value of %s: %w", n.kind, ErrUnimplemented)
}

// ---------- generic row helpers ----------

func liftVec[T any](alg algebra[T], v []float64) []T {
	out := make([]T, len(v))
	for i, x := range v {
		out[i] = alg.lift(x)
	}

	return out
}

// affine computes origin + mat·x column by column; origin may be nil.
// Zero matrix entries are skipped; a row with no terms yields 0 (+ origin).
func affine[T any](alg algebra[T], mat *matrix.Values, origin []float64, x *matrix.Dense[T]) *matrix.Dense[T] {
	rows, inner := mat.Shape()
	cols := x.Cols()
	out := matrix.Zeros[T](rows, cols)
	xrows := make([][]T, inner)
	for k := range xrows {
		xrows[k] = x.Row(k)
	}
	for i := 0; i < rows; i++ {
		mrow, orow := mat.Row(i), out.Row(i)
		for s := 0; s < cols; s++ {
			var acc T
			started := false
			for k, m := range mrow {
				if m == 0 {
					continue // skip: contributes nothing
				}
				t := alg.scale(m, xrows[k][s])
				if started {
					acc = alg.add(acc, t)
				} else {
					acc, started = t, true
				}
			}
			if origin != nil {
				acc = alg.shift(acc, origin[i])
			}
			orow[s] = acc
		}
	}

	return out
}

// zip combines two same-shaped buffers cell by cell.
func zip[T any](a, b *matrix.Dense[T], f func(x, y T) T) *matrix.Dense[T] {
	out := matrix.Zeros[T](a.Rows(), a.Cols())
	for i := 0; i < a.Rows(); i++ {
		orow, arow, brow := out.Row(i), a.Row(i), b.Row(i)
		for s := range orow {
			orow[s] = f(arow[s], brow[s])
		}
	}

	return out
}

// mapErr applies a fallible f to every cell; the first error aborts.
func mapErr[T any](a *matrix.Dense[T], f func(T) (T, error)) (*matrix.Dense[T], error) {
	out := matrix.Zeros[T](a.Rows(), a.Cols())
	for i := 0; i < a.Rows(); i++ {
		orow, arow := out.Row(i), a.Row(i)
		for s, x := range arow {
			y, err := f(x)
			if err != nil {
				return nil, err
			}
			orow[s] = y
		}
	}

	return out, nil
}

// scalarRows applies f(s[0][col], v[i][col]) for every row i of v.
func scalarRows[T any](s, v *matrix.Dense[T], f func(s, x T) (T, error)) (*matrix.Dense[T], error) {
	out := matrix.Zeros[T](v.Rows(), v.Cols())
	srow := s.Row(0)
	for i := 0; i < v.Rows(); i++ {
		orow, vrow := out.Row(i), v.Row(i)
		for c, x := range vrow {
			y, err := f(srow[c], x)
			if err != nil {
				return nil, err
			}
			orow[c] = y
		}
	}

	return out, nil
}

// reduceRows returns the 1×N buffer Σ_i f(a[i], b[i]) per column.
func reduceRows[T any](alg algebra[T], a, b *matrix.Dense[T], f func(x, y T) T) *matrix.Dense[T] {
	out := matrix.Zeros[T](1, a.Cols())
	orow := out.Row(0)
	for i := 0; i < a.Rows(); i++ {
		arow, brow := a.Row(i), b.Row(i)
		for c := range orow {
			t := f(arow[c], brow[c])
			if i == 0 {
				orow[c] = t
			} else {
				orow[c] = alg.add(orow[c], t)
			}
		}
	}

	return out
}

// crossValue computes a×b per column.
func crossValue[T any](alg algebra[T], a, b *matrix.Dense[T]) *matrix.Dense[T] {
	out := matrix.Zeros[T](3, a.Cols())
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		orow := out.Row(i)
		aj, ak, bj, bk := a.Row(j), a.Row(k), b.Row(j), b.Row(k)
		for c := range orow {
			orow[c] = alg.sub(alg.mul(aj[c], bk[c]), alg.mul(ak[c], bj[c]))
		}
	}

	return out
}

// powerValue evaluates the three exponent paths of a KindPower node.
func powerValue[T any](alg algebra[T], n *Node, a, b *matrix.Dense[T]) (*matrix.Dense[T], error) {
	switch n.expKind {
	case exponentInteger:
		return mapErr(a, func(x T) (T, error) { return alg.powInt(x, n.n) })
	case exponentReal:
		return mapErr(a, func(x T) (T, error) { return alg.pow(x, n.k) })
	}

	return scalarRows(b, a, func(e, x T) (T, error) { return alg.powGeneral(x, e) })
}
