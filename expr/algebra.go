// SPDX-License-Identifier: MIT

// Package expr - numeric domains shared by the kernels.
//
// Purpose:
//   - One generic kernel set serves exact (float64) and conservative
//     (interval.Interval) evaluation through the algebra[T] interface.
//   - Exact operations mirror the interval ones call for call (same math.*
//     functions on the same arguments), so exact results at a point land in
//     the bounds of any box containing it.
//
// Domain policy:
//   - Exact: any value outside the domain (beyond tol) fails with ErrDomain.
//   - Bounds: boxes merely touching a domain edge are clamped; boxes fully
//     outside fail; divisor boxes containing zero fail.

package expr

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

// algebra is the scalar operation set every kernel is written against.
type algebra[T any] interface {
	lift(x float64) T
	add(x, y T) T
	sub(x, y T) T
	neg(x T) T
	scale(k float64, x T) T
	shift(x T, k float64) T
	mul(x, y T) T
	sq(x T) T
	div(x, y T) (T, error)
	sqrt(x T) (T, error)
	sin(x T) T
	cos(x T) T
	tan(x T) (T, error)
	asin(x T) (T, error)
	acos(x T) (T, error)
	log(x T) (T, error)
	exp(x T) T
	powInt(x T, n int) (T, error)
	pow(x T, e float64) (T, error)
	powGeneral(x, e T) (T, error)
	check(x T) error // rejects malformed caller input
}

// ---------- exact ----------

// floatAlgebra evaluates in double precision with zero tolerance tol.
type floatAlgebra struct{ tol float64 }

var _ algebra[float64] = floatAlgebra{}

func (floatAlgebra) lift(x float64) float64 { return x }
func (floatAlgebra) add(x, y float64) float64 { return x + y }
func (floatAlgebra) sub(x, y float64) float64 { return x - y }
func (floatAlgebra) neg(x float64) float64 { return -x }
func (floatAlgebra) scale(k float64, x float64) float64 { return k * x }
func (floatAlgebra) shift(x float64, k float64) float64 { return x + k }
func (floatAlgebra) mul(x, y float64) float64 { return x * y }
func (floatAlgebra) sq(x float64) float64 { return x * x }
func (floatAlgebra) sin(x float64) float64 { return math.Sin(x) }
func (floatAlgebra) cos(x float64) float64 { return math.Cos(x) }
func (floatAlgebra) exp(x float64) float64 { return math.Exp(x) }
func (f floatAlgebra) nearZero(x float64) bool { return math.Abs(x) <= f.tol }
func (f floatAlgebra) below(x, floor float64) bool { return x < floor-f.tol }
func (f floatAlgebra) outside(x, lo, hi float64) bool { return x < lo-f.tol || x > hi+f.tol }
func (floatAlgebra) clamp(x, lo, hi float64) float64 { return math.Min(math.Max(x, lo), hi) }
func (floatAlgebra) fail(op string, x float64) (float64, error) {
	return 0, domainErrorf(op, x)
}

func (floatAlgebra) check(x float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fmt.Errorf("parameter %g: %w", x, matrix.ErrNaNInf)
	}

	return nil
}

func (f floatAlgebra) div(x, y float64) (float64, error) {
	if f.nearZero(y) {
		return f.fail("div", y)
	}

	return x / y, nil
}

func (f floatAlgebra) sqrt(x float64) (float64, error) {
	if f.below(x, 0) {
		return f.fail("sqrt", x)
	}

	return math.Sqrt(math.Max(x, 0)), nil
}

func (f floatAlgebra) tan(x float64) (float64, error) {
	if f.nearZero(math.Cos(x)) {
		return f.fail("tan", x)
	}

	return math.Tan(x), nil
}

func (f floatAlgebra) asin(x float64) (float64, error) {
	if f.outside(x, -1, 1) {
		return f.fail("asin", x)
	}

	return math.Asin(f.clamp(x, -1, 1)), nil
}

func (f floatAlgebra) acos(x float64) (float64, error) {
	if f.outside(x, -1, 1) {
		return f.fail("acos", x)
	}

	return math.Acos(f.clamp(x, -1, 1)), nil
}

func (f floatAlgebra) log(x float64) (float64, error) {
	if x <= 0 {
		return f.fail("log", x)
	}

	return math.Log(x), nil
}

func (f floatAlgebra) powInt(x float64, n int) (float64, error) {
	switch {
	case n == 0:
		return 1, nil
	case n == 1:
		return x, nil
	case n == 2:
		return x * x, nil
	case n < 0:
		r := math.Pow(x, float64(n))
		if f.nearZero(x) || math.IsInf(r, 0) {
			return f.fail("pow", x)
		}
		return r, nil
	}

	return math.Pow(x, float64(n)), nil
}

func (f floatAlgebra) pow(x float64, e float64) (float64, error) {
	if f.below(x, 0) {
		return f.fail("pow", x)
	}
	x = math.Max(x, 0)
	if e < 0 && x <= f.tol {
		return f.fail("pow", x)
	}

	return math.Pow(x, e), nil
}

func (f floatAlgebra) powGeneral(x, e float64) (float64, error) {
	if f.below(x, 0) {
		return f.fail("pow", x)
	}
	x = math.Max(x, 0)
	if x == 0 {
		switch {
		case e > 0:
			return 0, nil
		case e == 0:
			return 1, nil
		default:
			return f.fail("pow", x)
		}
	}

	return math.Exp(e * math.Log(x)), nil
}

// ---------- bounds ----------

// boundsAlgebra evaluates in outward-rounded interval arithmetic.
type boundsAlgebra struct{ tol float64 }

var _ algebra[interval.Interval] = boundsAlgebra{}

// wrap lifts an interval-package error into ErrDomain.
func wrap(r interval.Interval, err error) (interval.Interval, error) {
	if err != nil {
		return interval.Interval{}, fmt.Errorf("%w: %w", ErrDomain, err)
	}

	return r, nil
}

func (boundsAlgebra) lift(x float64) interval.Interval { return interval.Point(x) }
func (boundsAlgebra) add(x, y interval.Interval) interval.Interval {
	return interval.Add(x, y)
}
func (boundsAlgebra) sub(x, y interval.Interval) interval.Interval {
	return interval.Sub(x, y)
}
func (boundsAlgebra) neg(x interval.Interval) interval.Interval { return interval.Neg(x) }
func (boundsAlgebra) scale(k float64, x interval.Interval) interval.Interval {
	return interval.Scale(k, x)
}
func (boundsAlgebra) shift(x interval.Interval, k float64) interval.Interval {
	return interval.AddScalar(x, k)
}
func (boundsAlgebra) mul(x, y interval.Interval) interval.Interval { return interval.Mul(x, y) }
func (boundsAlgebra) sq(x interval.Interval) interval.Interval { return interval.Sq(x) }
func (boundsAlgebra) sin(x interval.Interval) interval.Interval { return interval.Sin(x) }
func (boundsAlgebra) cos(x interval.Interval) interval.Interval { return interval.Cos(x) }
func (boundsAlgebra) exp(x interval.Interval) interval.Interval { return interval.Exp(x) }

func (boundsAlgebra) check(x interval.Interval) error { return interval.Check(x) }

func (b boundsAlgebra) div(x, y interval.Interval) (interval.Interval, error) {
	return wrap(interval.Div(x, y, b.tol))
}

func (b boundsAlgebra) sqrt(x interval.Interval) (interval.Interval, error) {
	return wrap(interval.Sqrt(x, b.tol))
}

func (b boundsAlgebra) tan(x interval.Interval) (interval.Interval, error) {
	return wrap(interval.Tan(x, b.tol))
}

func (b boundsAlgebra) asin(x interval.Interval) (interval.Interval, error) {
	return wrap(interval.Asin(x, b.tol))
}

func (b boundsAlgebra) acos(x interval.Interval) (interval.Interval, error) {
	return wrap(interval.Acos(x, b.tol))
}

func (boundsAlgebra) log(x interval.Interval) (interval.Interval, error) {
	return wrap(interval.Log(x))
}

func (b boundsAlgebra) powInt(x interval.Interval, n int) (interval.Interval, error) {
	return wrap(interval.PowInt(x, n, b.tol))
}

func (b boundsAlgebra) pow(x interval.Interval, e float64) (interval.Interval, error) {
	return wrap(interval.Pow(x, e, b.tol))
}

func (b boundsAlgebra) powGeneral(x, e interval.Interval) (interval.Interval, error) {
	return wrap(interval.PowInterval(x, e, b.tol))
}
