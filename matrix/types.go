// SPDX-License-Identifier: MIT

// Package matrix: domain types.
// This file contains ONLY the buffer aliases used by the evaluation engine.
package matrix

import "github.com/katalvlaran/lvlexpr/interval"

// Values is the exact-evaluation buffer: rows are output dimensions,
// columns are samples.
type Values = Dense[float64]

// Bounds is the conservative-evaluation buffer holding one closed interval
// per cell.
type Bounds = Dense[interval.Interval]
