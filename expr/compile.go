// SPDX-License-Identifier: MIT

// Package expr - graph linearization into a slot program.
//
// Purpose:
//   - Turn a DAG into a flat instruction list in dependency order (post-order
//     DFS), each instruction writing exactly one workspace slot.
//   - Give every (node, input slot) pair exactly one value slot, so a node
//     shared by many parents executes once per distinct input.
//
// Slots:
//   - value slot 0 holds the caller's parameters; Jacobian slot 0 holds the
//     seed ∂x/∂x = I.
//   - Identity emits nothing: its value slot is its input slot and its
//     Jacobian slot is its seed slot.
//   - Composition emits nothing: the outer node is compiled with the inner
//     node's value slot as input (and the inner Jacobian slot as seed).
//
// AI-Hints:
//   - Emission order is deterministic for a given graph: operands in field
//     order (a before b), then the node itself.

package expr

// opcode selects which kernel an instruction runs.
type opcode uint8

const (
	opValue    opcode = iota // write node value, dims×N
	opJacobian               // write node Jacobian, dims×P
)

// noSlot marks an unused slot reference.
const noSlot = -1

// instruction is one kernel invocation over workspace slots.
type instruction struct {
	op   opcode
	node *Node
	out  int // slot written (value or Jacobian space, per op)
	in   int // value slot of the parameters seen by node
	seed int // Jacobian slot of ∂in/∂x (Jacobian instructions only)

	a, b   int // operand value slots
	self   int // node's own value slot (Jacobian instructions that need it)
	ja, jb int // operand Jacobian slots
}

// program is a compiled graph: straight-line code plus slot counts.
type program struct {
	code       []instruction
	valueSlots int
	jacSlots   int
	root       int // slot of the root result (value or Jacobian space)
}

// valueKey identifies one value slot: a node seen through one input slot.
type valueKey struct {
	node uint64
	in   int
}

// compiler assigns slots and emits instructions.
type compiler struct {
	prog   *program
	values map[valueKey]int
	jacs   *jacobianCache
}

func newCompiler() *compiler {
	return &compiler{
		prog:   &program{valueSlots: 1, jacSlots: 1},
		values: make(map[valueKey]int),
		jacs:   newJacobianCache(),
	}
}

// compileValues builds the value program of root.
func compileValues(root *Node) *program {
	c := newCompiler()
	c.prog.root = c.value(root, 0)
	log.Debug("compiled value program of {{kind}}: {{instructions}} instructions, {{slots}} slots",
		"kind", root.kind, "instructions", len(c.prog.code), "slots", c.prog.valueSlots)

	return c.prog
}

// compileJacobian builds the Jacobian program of root; value instructions
// are emitted only where a Jacobian kernel needs them.
func compileJacobian(root *Node) *program {
	c := newCompiler()
	c.prog.root = c.jacobian(root, 0, 0)
	log.Debug("compiled jacobian program of {{kind}}: {{instructions}} instructions, {{values}} value slots, {{jacobians}} jacobian slots, {{hits}} shared",
		"kind", root.kind, "instructions", len(c.prog.code), "values", c.prog.valueSlots,
		"jacobians", c.prog.jacSlots, "hits", c.jacs.hits)

	return c.prog
}

func (c *compiler) emit(ins instruction) int {
	if ins.op == opValue {
		ins.out = c.prog.valueSlots
		c.prog.valueSlots++
	} else {
		ins.out = c.prog.jacSlots
		c.prog.jacSlots++
	}
	c.prog.code = append(c.prog.code, ins)

	return ins.out
}

func blank(op opcode, n *Node, in int) instruction {
	return instruction{op: op, node: n, in: in, seed: noSlot, a: noSlot, b: noSlot, self: noSlot, ja: noSlot, jb: noSlot}
}

// value returns the value slot of n evaluated on input slot in.
// MAIN DESCRIPTION:
//   - Memoized post-order DFS: a (node, input) pair already compiled returns
//     its slot; otherwise operands are compiled first and one instruction
//     is appended.
//
// Complexity:
//   - O(1) amortized per distinct (node, input) pair.
func (c *compiler) value(n *Node, in int) int {
	key := valueKey{node: n.id, in: in}
	if slot, ok := c.values[key]; ok {
		return slot
	}
	var slot int
	switch n.kind {
	case KindIdentity:
		slot = in
	case KindComposition:
		slot = c.value(n.a, c.value(n.b, in))
	default:
		ins := blank(opValue, n, in)
		if n.a != nil {
			ins.a = c.value(n.a, in)
		}
		if n.b != nil {
			ins.b = c.value(n.b, in)
		}
		slot = c.emit(ins)
	}
	c.values[key] = slot

	return slot
}

// jacobian returns the Jacobian slot of n on input slot in with seed slot seed.
func (c *compiler) jacobian(n *Node, in, seed int) int {
	key := jacobianKey{node: n.id, in: in, seed: seed}
	if slot, ok := c.jacs.lookup(key); ok {
		return slot
	}
	var slot int
	switch n.kind {
	case KindIdentity:
		slot = seed
	case KindComposition:
		innerValue := c.value(n.b, in)
		innerJac := c.jacobian(n.b, in, seed)
		slot = c.jacobian(n.a, innerValue, innerJac)
	default:
		ins := blank(opJacobian, n, in)
		ins.seed = seed
		if n.a != nil {
			ins.ja = c.jacobian(n.a, in, seed)
		}
		if n.b != nil {
			ins.jb = c.jacobian(n.b, in, seed)
		}
		if !n.kind.isLinearInOperands() {
			if n.a != nil {
				ins.a = c.value(n.a, in)
			}
			if n.b != nil {
				ins.b = c.value(n.b, in)
			}
			if n.needsSelfForJacobian() {
				ins.self = c.value(n, in)
			}
		}
		slot = c.emit(ins)
	}
	c.jacs.store(key, slot)

	return slot
}

// needsSelfForJacobian reports whether the Jacobian kernel of n reads n's
// own value.
func (n *Node) needsSelfForJacobian() bool {
	switch n.kind {
	case KindQuotient, KindNorm, KindNormalized, KindSqrt, KindExp:
		return true
	case KindPower:
		return n.expKind == exponentNode
	default:
		return false
	}
}
