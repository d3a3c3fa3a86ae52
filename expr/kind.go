// SPDX-License-Identifier: MIT

package expr

import "fmt"

// Kind tags the operator of a Node. The set is closed: every switch over Kind
// in this package is exhaustive and falls through to ErrUnimplemented.
type Kind uint8

const (
	KindConstant      Kind = iota // fixed vector, broadcast over the batch
	KindIdentity                  // returns the whole parameter vector
	KindParameter                 // returns one parameter
	KindLinear                    // origin + basis·x
	KindSum                       // a + b
	KindDifference                // a - b
	KindNegated                   // -a
	KindScaled                    // k·a
	KindTransformed               // M·a
	KindTranslated                // a + v
	KindProduct                   // scalar a times vector b
	KindQuotient                  // vector a divided by scalar b
	KindPower                     // scalar a raised to a constant or scalar-node exponent
	KindDot                       // a·b
	KindCross                     // a×b, 3-vectors
	KindNorm                      // |a|
	KindSquaredNorm               // |a|²
	KindNormalized                // a/|a|
	KindSin                       // sin a
	KindCos                       // cos a
	KindTan                       // tan a
	KindAsin                      // asin a
	KindAcos                      // acos a
	KindSqrt                      // √a
	KindLog                       // ln a
	KindExp                       // e^a
	KindConcatenation             // rows of a followed by rows of b
	KindComponents                // rows [start, start+count) of a
	KindComposition               // a(b(x))

	numKinds
)

var kindNames = [numKinds]string{
	KindConstant:      "constant",
	KindIdentity:      "identity",
	KindParameter:     "parameter",
	KindLinear:        "linear",
	KindSum:           "sum",
	KindDifference:    "difference",
	KindNegated:       "negated",
	KindScaled:        "scaled",
	KindTransformed:   "transformed",
	KindTranslated:    "translated",
	KindProduct:       "product",
	KindQuotient:      "quotient",
	KindPower:         "power",
	KindDot:           "dot",
	KindCross:         "cross",
	KindNorm:          "norm",
	KindSquaredNorm:   "squaredNorm",
	KindNormalized:    "normalized",
	KindSin:           "sin",
	KindCos:           "cos",
	KindTan:           "tan",
	KindAsin:          "asin",
	KindAcos:          "acos",
	KindSqrt:          "sqrt",
	KindLog:           "log",
	KindExp:           "exp",
	KindConcatenation: "concat",
	KindComponents:    "components",
	KindComposition:   "compose",
}

// String returns the lower-case operator name.
func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}

	return fmt.Sprintf("kind(%d)", uint8(k))
}

// isLinearInOperands reports whether the Jacobian of k depends only on the
// operands' Jacobians (no operand values needed).
func (k Kind) isLinearInOperands() bool {
	switch k {
	case KindSum, KindDifference, KindNegated, KindScaled, KindTransformed,
		KindTranslated, KindConcatenation, KindComponents:
		return true
	default:
		return false
	}
}

// isRestricted reports whether evaluating k can fail with ErrDomain.
// Integer powers are restricted here; Pow marks positive ones total.
func (k Kind) isRestricted() bool {
	switch k {
	case KindQuotient, KindPower, KindNormalized, KindTan, KindAsin, KindAcos,
		KindSqrt, KindLog:
		return true
	default:
		return false
	}
}
