// SPDX-License-Identifier: MIT

// Package expr - Node representation & introspection.
//
// Purpose:
//   - One immutable struct for every operator, tagged by Kind.
//   - Stable identity through a process-wide monotonically increasing ID,
//     so caches never depend on allocator addresses.
//
// AI-Hints:
//   - Never mutate a *Node after newNode returns it; graphs are shared.
//   - Variant tests (IsConstant, IsIdentity, ...) read the tag only.

package expr

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/katalvlaran/lvlexpr/matrix"
)

// exponentKind selects the numeric path of a KindPower node.
type exponentKind uint8

const (
	exponentInteger exponentKind = iota // repeated multiplication, exponent in n
	exponentReal                        // constant real exponent in k
	exponentNode                        // scalar exponent node in b
)

// nextID is the global identity counter; 0 is never handed out.
var nextID atomic.Uint64

// Node is one operator instance of an expression graph.
//
// Field usage per kind:
//   - vec: Constant value, Linear origin, Translated offset.
//   - mat: Linear basis (dims×params), Transformed matrix (dims×a.dims).
//   - k:   Scaled factor, real Power exponent.
//   - start/count: Components slice; Parameter index in start.
//   - a, b: operands; Composition stores outer in a and inner in b.
type Node struct {
	kind   Kind
	id     uint64
	dims   int
	params int

	a, b *Node

	vec   []float64
	mat   *matrix.Values
	k     float64
	start int
	count int

	expKind exponentKind
	n       int // integer exponent

	total bool // no domain-restricted kind is reachable from here
}

// newNode allocates a node with a fresh identity. Callers fill the payload
// before publishing the pointer. The node starts out partial; leaves and
// operate mark it total.
func newNode(kind Kind, dims, params int) *Node {
	return &Node{kind: kind, id: nextID.Add(1), dims: dims, params: params}
}

// operate allocates a node of kind over operands a and b (b may be nil),
// taking a's parameter count.
func operate(kind Kind, dims int, a, b *Node) *Node {
	m := newNode(kind, dims, a.params)
	m.a, m.b = a, b
	m.total = !kind.isRestricted() && a.total && (b == nil || b.total)

	return m
}

// Kind returns the operator tag.
func (n *Node) Kind() Kind { return n.kind }

// ID returns the node identity. IDs are unique for the process lifetime and
// increase with construction order, so an operand's ID is always smaller
// than its parent's.
func (n *Node) ID() uint64 { return n.id }

// NumDimensions returns the size of the output vector.
func (n *Node) NumDimensions() int { return n.dims }

// NumParameters returns the size of the input parameter vector.
func (n *Node) NumParameters() int { return n.params }

// Operands returns the child nodes (0, 1 or 2). For a composition the outer
// node comes first.
func (n *Node) Operands() []*Node {
	out := make([]*Node, 0, 2)
	if n.a != nil {
		out = append(out, n.a)
	}
	if n.b != nil {
		out = append(out, n.b)
	}

	return out
}

// IsConstant reports whether n is a Constant node.
func (n *Node) IsConstant() bool { return n.kind == KindConstant }

// IsIdentity reports whether n is an Identity node.
func (n *Node) IsIdentity() bool { return n.kind == KindIdentity }

// IsZero reports whether n is a Constant node whose entries are all exactly 0.
func (n *Node) IsZero() bool {
	return n.kind == KindConstant && vecIsZero(n.vec)
}

// ConstantValue returns a copy of the value of a Constant node.
func (n *Node) ConstantValue() ([]float64, bool) {
	if n.kind != KindConstant {
		return nil, false
	}

	return vecClone(n.vec), true
}

// String renders the graph in prefix notation. Shared subgraphs are printed
// at every use.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)

	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.kind {
	case KindConstant:
		fmt.Fprintf(sb, "%v", n.vec)
		return
	case KindIdentity:
		fmt.Fprintf(sb, "x[%d]", n.params)
		return
	case KindParameter:
		fmt.Fprintf(sb, "x%d", n.start)
		return
	case KindLinear:
		fmt.Fprintf(sb, "linear(%v, %dx%d)", n.vec, n.mat.Rows(), n.mat.Cols())
		return
	}
	sb.WriteString(n.kind.String())
	sb.WriteByte('(')
	n.a.write(sb)
	switch n.kind {
	case KindScaled:
		fmt.Fprintf(sb, ", %g", n.k)
	case KindTransformed:
		fmt.Fprintf(sb, ", %dx%d", n.mat.Rows(), n.mat.Cols())
	case KindTranslated:
		fmt.Fprintf(sb, ", %v", n.vec)
	case KindComponents:
		fmt.Fprintf(sb, ", %d, %d", n.start, n.count)
	case KindPower:
		switch n.expKind {
		case exponentInteger:
			fmt.Fprintf(sb, ", %d", n.n)
		case exponentReal:
			fmt.Fprintf(sb, ", %g", n.k)
		}
	}
	if n.b != nil {
		sb.WriteString(", ")
		n.b.write(sb)
	}
	sb.WriteByte(')')
}

// NodeCount returns the number of distinct node instances reachable from n.
// Complexity: O(V) time and space over distinct nodes.
func NodeCount(n *Node) int {
	seen := make(map[uint64]struct{})
	var walk func(*Node)
	walk = func(m *Node) {
		if m == nil {
			return
		}
		if _, ok := seen[m.id]; ok {
			return
		}
		seen[m.id] = struct{}{}
		walk(m.a)
		walk(m.b)
	}
	walk(n)

	return len(seen)
}

// ---------- small vector helpers ----------

func vecClone(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)

	return out
}

func vecIsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}

func vecAdd(x, y []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] + y[i]
	}

	return out
}

func vecScale(k float64, x []float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = k * x[i]
	}

	return out
}

func vecDot(x, y []float64) float64 {
	var s float64
	for i := range x {
		s += x[i] * y[i]
	}

	return s
}
