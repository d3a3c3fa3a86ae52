// SPDX-License-Identifier: MIT

// Package expr - forward-mode Jacobian kernels.
//
// Purpose:
//   - Compute J(node) = ∂node/∂x (dims×P) at one sample from the operands'
//     Jacobians and, where the rule needs them, operand values.
//
// Notes:
//   - Values in a Jacobian run are dims×1 (a single sample column).
//   - seed is ∂in/∂x for the input the node sees: I at top level, the inner
//     Jacobian under a composition.

package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// evalJacobian computes the Jacobian of ins.node.
// MAIN DESCRIPTION:
//   - One case per Kind mirroring the symbolic rules of Derivative, applied
//     numerically on Jacobian rows.
//
// Errors:
//   - ErrDomain where the rule divides by a value within the tolerance of 0
//     (tan and its cos, sqrt at 0, normalization of a zero vector, ...).
func evalJacobian[T any](alg algebra[T], ins *instruction, ws *workspace[T]) (*matrix.Dense[T], error) {
	n := ins.node
	seed := ws.jacs[ins.seed]
	p := seed.Cols()
	ja, jb := ws.jslot(ins.ja), ws.jslot(ins.jb)
	a, b, self := ws.slot(ins.a), ws.slot(ins.b), ws.slot(ins.self)
	switch n.kind {
	case KindConstant:
		return matrix.Zeros[T](n.dims, p), nil
	case KindParameter:
		out := matrix.Zeros[T](1, p)
		copy(out.Row(0), seed.Row(n.start))
		return out, nil
	case KindLinear:
		return affine(alg, n.mat, nil, seed), nil
	case KindSum:
		return zip(ja, jb, alg.add), nil
	case KindDifference:
		return zip(ja, jb, alg.sub), nil
	case KindNegated:
		return matrix.Map(ja, alg.neg), nil
	case KindScaled:
		return matrix.Map(ja, func(x T) T { return alg.scale(n.k, x) }), nil
	case KindTransformed:
		return affine(alg, n.mat, nil, ja), nil
	case KindTranslated:
		return ja, nil
	case KindProduct:
		// (s·v)' = v·s' + s·v'
		s, js := at(a, 0), ja.Row(0)
		out := matrix.Zeros[T](n.dims, p)
		for i := 0; i < n.dims; i++ {
			vi, jv, orow := at(b, i), jb.Row(i), out.Row(i)
			for c := range orow {
				orow[c] = alg.add(alg.mul(vi, js[c]), alg.mul(s, jv[c]))
			}
		}
		return out, nil
	case KindQuotient:
		// (v/s)' = (v' − q·s')/s with q = v/s
		s, js := at(b, 0), jb.Row(0)
		return rowsErr(n.dims, p, func(i, c int) (T, error) {
			return alg.div(alg.sub(ja.Row(i)[c], alg.mul(at(self, i), js[c])), s)
		})
	case KindPower:
		return powerJacobian(alg, n, p, a, b, self, ja, jb)
	case KindDot:
		out := matrix.Zeros[T](1, p)
		orow := out.Row(0)
		for i := 0; i < a.Rows(); i++ {
			ai, bi, jai, jbi := at(a, i), at(b, i), ja.Row(i), jb.Row(i)
			for c := range orow {
				t := alg.add(alg.mul(jai[c], bi), alg.mul(ai, jbi[c]))
				if i == 0 {
					orow[c] = t
				} else {
					orow[c] = alg.add(orow[c], t)
				}
			}
		}
		return out, nil
	case KindCross:
		return crossJacobian(alg, p, a, b, ja, jb), nil
	case KindSquaredNorm:
		return matrix.Map(projected(alg, a, ja, p), func(x T) T { return alg.scale(2, x) }), nil
	case KindNorm:
		nrm := at(self, 0)
		return mapErr(projected(alg, a, ja, p), func(x T) (T, error) { return alg.div(x, nrm) })
	case KindNormalized:
		// (a/|a|)' = (a' − u(u·a'))/|a| with u = a/|a|
		nrm, err := alg.sqrt(at(reduceRows(alg, a, a, func(x, _ T) T { return alg.sq(x) }), 0))
		if err != nil {
			return nil, err
		}
		t := projected(alg, self, ja, p).Row(0)
		return rowsErr(n.dims, p, func(i, c int) (T, error) {
			return alg.div(alg.sub(ja.Row(i)[c], alg.mul(at(self, i), t[c])), nrm)
		})
	case KindSin:
		return scaleRow(alg, ja, alg.cos(at(a, 0))), nil
	case KindCos:
		return scaleRow(alg, ja, alg.neg(alg.sin(at(a, 0)))), nil
	case KindTan:
		c := alg.cos(at(a, 0))
		return mapErr(ja, func(x T) (T, error) {
			y, err := alg.div(x, c)
			if err != nil {
				return y, err
			}
			return alg.div(y, c)
		})
	case KindAsin, KindAcos:
		r, err := alg.sqrt(alg.sub(alg.lift(1), alg.sq(at(a, 0))))
		if err != nil {
			return nil, err
		}
		if n.kind == KindAcos {
			r = alg.neg(r)
		}
		return mapErr(ja, func(x T) (T, error) { return alg.div(x, r) })
	case KindSqrt:
		r := alg.scale(2, at(self, 0))
		return mapErr(ja, func(x T) (T, error) { return alg.div(x, r) })
	case KindLog:
		x := at(a, 0)
		return mapErr(ja, func(y T) (T, error) { return alg.div(y, x) })
	case KindExp:
		return scaleRow(alg, ja, at(self, 0)), nil
	case KindConcatenation:
		return matrix.Stack(ja, jb)
	case KindComponents:
		return ja.RowRange(n.start, n.count)
	}

	return nil, fmt.Errorf("jacobian of %s: %w", n.kind, ErrUnimplemented)
}

// at reads row i of a single-sample buffer.
func at[T any](m *matrix.Dense[T], i int) T { return m.Row(i)[0] }

// rowsErr builds a rows×cols buffer from a fallible cell function.
func rowsErr[T any](rows, cols int, f func(i, c int) (T, error)) (*matrix.Dense[T], error) {
	out := matrix.Zeros[T](rows, cols)
	for i := 0; i < rows; i++ {
		orow := out.Row(i)
		for c := range orow {
			v, err := f(i, c)
			if err != nil {
				return nil, err
			}
			orow[c] = v
		}
	}

	return out, nil
}

// scaleRow multiplies every cell of j by the scalar k.
func scaleRow[T any](alg algebra[T], j *matrix.Dense[T], k T) *matrix.Dense[T] {
	return matrix.Map(j, func(x T) T { return alg.mul(k, x) })
}

// projected returns the 1×p row Σ_i u[i]·J[i].
func projected[T any](alg algebra[T], u, j *matrix.Dense[T], p int) *matrix.Dense[T] {
	out := matrix.Zeros[T](1, p)
	orow := out.Row(0)
	for i := 0; i < u.Rows(); i++ {
		ui, ji := at(u, i), j.Row(i)
		for c := range orow {
			t := alg.mul(ui, ji[c])
			if i == 0 {
				orow[c] = t
			} else {
				orow[c] = alg.add(orow[c], t)
			}
		}
	}

	return out
}

// crossJacobian computes (a×b)' = a'×b + a×b' column by column.
func crossJacobian[T any](alg algebra[T], p int, a, b, ja, jb *matrix.Dense[T]) *matrix.Dense[T] {
	out := matrix.Zeros[T](3, p)
	for i := 0; i < 3; i++ {
		j, k := (i+1)%3, (i+2)%3
		aj, ak, bj, bk := at(a, j), at(a, k), at(b, j), at(b, k)
		daj, dak, dbj, dbk := ja.Row(j), ja.Row(k), jb.Row(j), jb.Row(k)
		orow := out.Row(i)
		for c := range orow {
			plus := alg.add(alg.mul(daj[c], bk), alg.mul(aj, dbk[c]))
			minus := alg.add(alg.mul(dak[c], bj), alg.mul(ak, dbj[c]))
			orow[c] = alg.sub(plus, minus)
		}
	}

	return out
}

// powerJacobian differentiates the three exponent paths of a KindPower node.
func powerJacobian[T any](alg algebra[T], n *Node, p int, a, b, self, ja, jb *matrix.Dense[T]) (*matrix.Dense[T], error) {
	x := at(a, 0)
	var d T
	var err error
	switch n.expKind {
	case exponentInteger:
		d, err = alg.powInt(x, n.n-1)
		d = alg.scale(float64(n.n), d)
	case exponentReal:
		d, err = alg.pow(x, n.k-1)
		d = alg.scale(n.k, d)
	default:
		// (x^e)' = x^e·(e'·ln x + e·x'/x)
		lg, lerr := alg.log(x)
		if lerr != nil {
			return nil, lerr
		}
		e, v := at(b, 0), at(self, 0)
		jx, je := ja.Row(0), jb.Row(0)
		return rowsErr(1, p, func(_, c int) (T, error) {
			q, qerr := alg.div(alg.mul(e, jx[c]), x)
			if qerr != nil {
				return q, qerr
			}
			return alg.mul(v, alg.add(alg.mul(je[c], lg), q)), nil
		})
	}
	if err != nil {
		return nil, err
	}

	return scaleRow(alg, ja, d), nil
}
