// SPDX-License-Identifier: MIT

package expr_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlexpr/expr"
	"github.com/katalvlaran/lvlexpr/interval"
	"github.com/katalvlaran/lvlexpr/matrix"
)

// counter records how often each node ID was reported by a hook.
type counter struct {
	mu   sync.Mutex
	hits map[uint64]int
}

func newCounter() *counter { return &counter{hits: make(map[uint64]int)} }

func (c *counter) hook(n *expr.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits[n.ID()]++
}

func (c *counter) get(n *expr.Node) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits[n.ID()]
}

func TestEvaluate_SharedNodeComputedOnce(t *testing.T) {
	x, y := expr.Parameter(0, 2), expr.Parameter(1, 2)
	shared := x.Times(y).Sin()
	f := shared.Plus(shared.Exp()).Minus(shared.Cos()).Times(shared)

	c := newCounter()
	ev := expr.Compile(f, expr.WithComputeHook(c.hook))
	params, err := matrix.FromRows([][]float64{{0.1, 0.2, 0.3}, {1, 2, 3}})
	require.NoError(t, err)
	_, err = ev.Evaluate(params)
	require.NoError(t, err)
	assert.Equal(t, 1, c.get(shared))

	// Every executed instruction is reported exactly once per call.
	total := 0
	for _, v := range c.hits {
		total += v
	}
	assert.Equal(t, ev.Instructions(), total)

	_, err = ev.Evaluate(params)
	require.NoError(t, err)
	assert.Equal(t, 2, c.get(shared), "no state carried between calls")
}

func TestEvaluate_CompositionPerInput(t *testing.T) {
	u := expr.Parameter(0, 1)
	outer := u.Sin().Times(u.Exp())
	x := expr.Parameter(0, 1)
	in1, in2 := x.Squared(), x.Cos()

	// The same outer over the same inner is one instruction; over two
	// different inners it runs twice.
	same := outer.Compose(in1).Plus(outer.Compose(in1))
	twice := outer.Compose(in1).Plus(outer.Compose(in2))

	c := newCounter()
	_, err := expr.Compile(same, expr.WithComputeHook(c.hook)).EvaluateAt(0.4)
	require.NoError(t, err)
	assert.Equal(t, 1, c.get(outer))

	c = newCounter()
	v, err := expr.Compile(twice, expr.WithComputeHook(c.hook)).EvaluateAt(0.4)
	require.NoError(t, err)
	assert.Equal(t, 2, c.get(outer))

	g := func(z float64) float64 { return math.Sin(z) * math.Exp(z) }
	requireClose(t, []float64{g(0.16) + g(math.Cos(0.4))}, v, 1e-14)
}

func TestJacobian_HookAndSharing(t *testing.T) {
	x, y := expr.Parameter(0, 2), expr.Parameter(1, 2)
	shared := x.Times(y).Exp()
	f := shared.Times(shared).Plus(shared.Sin())

	jc, vc := newCounter(), newCounter()
	ev := expr.Compile(f, expr.WithJacobianHook(jc.hook), expr.WithComputeHook(vc.hook))
	jac, err := ev.Jacobian([]float64{0.3, 0.7})
	require.NoError(t, err)
	assert.Equal(t, 1, jc.get(shared))
	assert.LessOrEqual(t, vc.get(shared), 1)

	e := math.Exp(0.21)
	d := 2*e*e + math.Cos(e)*e // ∂/∂(xy) of e² + sin e, times e from the inner exp
	assert.InDelta(t, d*0.7, jac.Row(0)[0], 1e-12)
	assert.InDelta(t, d*0.3, jac.Row(0)[1], 1e-12)
}

func TestEvaluate_InputShapeErrors(t *testing.T) {
	f := expr.Parameter(0, 2).Sin()
	ev := expr.Compile(f)

	_, err := ev.Evaluate(matrix.FromColumn([]float64{1, 2, 3}))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = ev.Evaluate(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = ev.EvaluateAt(1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = ev.Jacobian([]float64{1})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = ev.JacobianBounds([]interval.Interval{interval.Point(1), interval.Point(2), interval.Point(3)})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestEvaluate_IdentityRootIsCopied(t *testing.T) {
	in := matrix.FromColumn([]float64{1, 2})
	out, err := expr.Identity(2).Evaluate(in)
	require.NoError(t, err)
	assert.NotSame(t, in, out)
	out.Row(0)[0] = 42
	assert.Equal(t, 1.0, in.Row(0)[0])
	assert.Equal(t, 0, expr.Compile(expr.Identity(2)).Instructions())
}

func TestEvaluate_DomainErrorNamesNode(t *testing.T) {
	f := expr.Parameter(0, 1).Log()
	_, err := f.EvaluateAt(-1)
	require.ErrorIs(t, err, expr.ErrDomain)
	assert.Contains(t, err.Error(), "log")
}

func TestWithTolerance(t *testing.T) {
	assert.Panics(t, func() { expr.WithTolerance(-1) })
	assert.Panics(t, func() { expr.WithTolerance(math.NaN()) })
	assert.Panics(t, func() { expr.WithTolerance(math.Inf(1)) })

	f := expr.Parameter(0, 1).Sqrt()
	_, err := f.EvaluateAt(-1e-9)
	require.ErrorIs(t, err, expr.ErrDomain)

	v, err := expr.Compile(f, expr.WithTolerance(1e-6)).EvaluateAt(-1e-9)
	require.NoError(t, err)
	assert.Equal(t, []float64{0}, v)
}

func TestEvaluator_ConcurrentUse(t *testing.T) {
	f := catalogue()[len(catalogue())-1].node
	ev := expr.Compile(f)
	want := mustEvalAt(t, f, 0.5, 0.5)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := ev.EvaluateAt(0.5, 0.5)
			if err != nil {
				errs <- err
				return
			}
			if got[0] != want[0] {
				errs <- assert.AnError
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}

func TestEvaluate_RejectsMalformedInput(t *testing.T) {
	ev := expr.Compile(expr.Parameter(0, 1).Exp())

	_, err := ev.EvaluateAt(math.NaN())
	require.ErrorIs(t, err, matrix.ErrNaNInf)
	_, err = ev.Jacobian([]float64{math.Inf(1)})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	bad := []interval.Interval{interval.New(math.NaN(), 1)}
	_, err = ev.EvaluateBounds(matrix.FromColumn(bad))
	require.ErrorIs(t, err, interval.ErrEmpty)
	assert.NotErrorIs(t, err, expr.ErrDomain)
	_, err = ev.JacobianBounds(bad)
	require.ErrorIs(t, err, interval.ErrEmpty)
}
