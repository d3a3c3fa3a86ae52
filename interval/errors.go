// SPDX-License-Identifier: MIT
// Package interval: sentinel error set.
// Every message is prefixed with "interval: ..." and callers match the
// sentinels with errors.Is.

package interval

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain indicates that no point of the operand box lies inside the
	// mathematical domain of the operation (e.g. Sqrt of [-2, -1]), or that a
	// divisor box contains zero.
	ErrDomain = errors.New("interval: domain violation")

	// ErrEmpty indicates that an interval with lo > hi or a NaN endpoint was
	// requested where a well-formed interval is required.
	ErrEmpty = errors.New("interval: empty or NaN interval")
)

// intervalErrorf wraps err with an operation tag and the offending operand.
func intervalErrorf(op string, a Interval, err error) error {
	return fmt.Errorf("%s(%s): %w", op, a, err)
}
