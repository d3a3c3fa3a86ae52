// SPDX-License-Identifier: MIT

// Package expr: functional configuration for evaluation. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Hooks are observation only; they never change results.
package expr

import (
	"math"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTolerance is the zero tolerance used at evaluation time:
	// divisors, cos under tan, norms under normalization, square roots of
	// slightly negative round-off.
	DefaultTolerance = 1e-12

	// DefaultDuplicateTolerance bounds the absolute difference under which
	// two embedded constants are considered equal by IsDuplicateOf and Dedup.
	DefaultDuplicateTolerance = 1e-12

	// DefaultIntegerExponentTolerance classifies a constant exponent as
	// integer-valued, which selects the repeated-multiplication power path.
	DefaultIntegerExponentTolerance = 1e-12
)

// maxIntegerExponent caps the integer power path; larger exponents take the
// real path so the exponent always fits an int with room to negate.
const maxIntegerExponent = 1<<31 - 1

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicToleranceInvalid = "expr: WithTolerance: tol must be finite, non-negative"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
// Constructors MUST panic only on nonsensical values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	tol          float64     // >= 0; DefaultTolerance
	computeHook  func(*Node) // called once per executed value instruction
	jacobianHook func(*Node) // called once per executed Jacobian instruction
}

// WithTolerance sets the evaluation zero tolerance.
// Implementation:
//   - Stage 1: validate tol is finite and ≥ 0.
//   - Stage 2: return a setter that writes tol into Options.
//
// Behavior highlights:
//   - Panics on NaN, ±Inf or negative tol.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol < 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithComputeHook registers f to be called with the node of every value
// instruction the evaluator executes. A node shared k times in a graph is
// reported once per distinct input per call.
func WithComputeHook(f func(*Node)) Option {
	return func(o *Options) { o.computeHook = f }
}

// WithJacobianHook registers f to be called with the node of every Jacobian
// instruction the evaluator executes.
func WithJacobianHook(f func(*Node)) Option {
	return func(o *Options) { o.jacobianHook = f }
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) Options {
	o := Options{tol: DefaultTolerance}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
