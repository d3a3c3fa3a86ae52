// SPDX-License-Identifier: MIT
// Package expr: sentinel error set.
// Every message is prefixed with "expr: ..." and callers match the sentinels
// with errors.Is. Evaluation errors are returned; construction errors panic
// with a stack-carrying wrapper (see structuralf) and are recoverable via Build.

package expr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDomain indicates an operator evaluated outside its mathematical
	// domain: sqrt of a negative value, tan where cos vanishes, division by
	// (a box containing) zero, normalization of a zero vector, and so on.
	ErrDomain = stderrors.New("expr: domain violation")

	// ErrStructural indicates a construction-time contract violation:
	// mismatched dimensions or parameter arities, bad component slices,
	// composition of incompatible nodes.
	ErrStructural = stderrors.New("expr: structural violation")

	// ErrUnimplemented guards exhaustive switches over Kind. Reaching it
	// means a kind exists without a kernel for the requested operation.
	ErrUnimplemented = stderrors.New("expr: operation not implemented")
)

// structuralf panics with an ErrStructural wrapper carrying a stack trace.
func structuralf(format string, args ...any) {
	panic(errors.Wrapf(ErrStructural, format, args...))
}

// unimplemented panics with an ErrUnimplemented wrapper for the given kind.
func unimplemented(op string, k Kind) {
	panic(errors.Wrapf(ErrUnimplemented, "%s of %s", op, k))
}

// domainErrorf wraps ErrDomain with the operation and the offending value.
func domainErrorf(op string, x any) error {
	return fmt.Errorf("%s(%v): %w", op, x, ErrDomain)
}

// evalErrorf tags an evaluation error with the failing node.
func evalErrorf(n *Node, err error) error {
	return fmt.Errorf("%s#%d: %w", n.kind, n.id, err)
}

// Build runs fn and converts a structural panic raised while constructing a
// graph into a returned error. Other panics propagate unchanged.
//
// Example:
//
//	n, err := expr.Build(func() *expr.Node {
//		return a.Plus(b) // a and b may have different dimensions
//	})
func Build(fn func() *Node) (n *Node, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if e, ok := r.(error); ok && (stderrors.Is(e, ErrStructural) || stderrors.Is(e, ErrUnimplemented)) {
			n, err = nil, e
			return
		}
		panic(r)
	}()

	return fn(), nil
}
