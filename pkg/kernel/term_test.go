package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermSharing(t *testing.T) {
	sig := NewSignature()
	a := sig.AddFunction("a", 0)
	f := sig.AddFunction("f", 2)

	ta1 := sig.NewTerm(a)
	ta2 := sig.NewTerm(a)
	assert.Same(t, ta1, ta2, "structurally equal terms must be pointer-identical")

	x := sig.NewVar(0)
	fa1 := sig.NewTerm(f, ta1, x)
	fa2 := sig.NewTerm(f, ta2, sig.NewVar(0))
	assert.Same(t, fa1, fa2)

	g := sig.NewTerm(f, x, ta1)
	assert.NotSame(t, fa1, g)
}

func TestTermCachedAttributes(t *testing.T) {
	sig := NewSignature()
	a := sig.AddFunction("a", 0)
	f := sig.AddFunction("f", 2)

	x := sig.NewVar(0)
	y := sig.NewVar(1)
	ta := sig.NewTerm(a)
	fxy := sig.NewTerm(f, x, y)
	fxx := sig.NewTerm(f, x, x)
	ffa := sig.NewTerm(f, ta, sig.NewTerm(f, ta, ta))

	assert.Equal(t, 3, fxy.Weight())
	assert.Equal(t, 2, fxy.NumVarOccs())
	assert.Equal(t, 2, fxy.NumDistinctVars())
	assert.False(t, fxy.Ground())

	assert.Equal(t, 2, fxx.NumVarOccs())
	assert.Equal(t, 1, fxx.NumDistinctVars())

	assert.True(t, ffa.Ground())
	assert.Equal(t, 0, ffa.NumVarOccs())
	assert.Equal(t, 5, ffa.Weight())
}

func TestSpecialVariablesAreDistinct(t *testing.T) {
	sig := NewSignature()
	x := sig.NewVar(3)
	s := sig.NewSpecialVar(3)
	assert.NotSame(t, x, s)
	assert.True(t, s.IsSpecialVar())
	assert.False(t, x.IsSpecialVar())
}

func TestReplaceSubterm(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	b := sig.NewTerm(sig.AddFunction("b", 0))
	f := sig.AddFunction("f", 2)
	g := sig.AddFunction("g", 1)

	// f(g(a), a) with a -> b gives f(g(b), b)
	term := sig.NewTerm(f, sig.NewTerm(g, a), a)
	replaced := term.ReplaceSubterm(a, b)
	assert.Same(t, sig.NewTerm(f, sig.NewTerm(g, b), b), replaced)

	// untouched terms come back shared
	assert.Same(t, term, term.ReplaceSubterm(b, a))
}

func TestEqualityNormalisation(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	b := sig.NewTerm(sig.AddFunction("b", 0))

	lr := sig.NewEquality(true, a, b)
	rl := sig.NewEquality(true, b, a)
	assert.Same(t, lr, rl, "equality argument order must not matter")

	neg := sig.NewEquality(false, a, b)
	assert.NotSame(t, lr, neg)
	assert.Same(t, neg, lr.Negated())
	assert.True(t, lr.ComplementaryTo(neg))
}

func TestLiteralHelpers(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	p := sig.AddPredicate("p", 1)

	pa := sig.NewLiteral(p, true, a)
	require.False(t, pa.IsEquality())
	assert.Equal(t, "p(a)", pa.String())
	assert.Equal(t, "~p(a)", pa.Negated().String())

	eq := sig.NewEquality(true, a, a)
	assert.True(t, eq.IsEqTautology())
}

func TestClauseStoreTransitions(t *testing.T) {
	sig := NewSignature()
	p := sig.AddPredicate("p", 0)
	c := sig.NewClause([]*Literal{sig.NewLiteral(p, true)}, InputInference())

	assert.Equal(t, StoreNone, c.Store())
	c.SetStore(StoreUnprocessed)
	c.SetStore(StoreNone)
	c.SetStore(StorePassive)

	assert.PanicsWithError(t,
		"invariant violation: clause 0 moved from passive to active without release",
		func() { c.SetStore(StoreActive) })
}

func TestClauseAgeAndSelection(t *testing.T) {
	sig := NewSignature()
	p := sig.AddPredicate("p", 0)
	q := sig.AddPredicate("q", 0)
	lp := sig.NewLiteral(p, true)
	lq := sig.NewLiteral(q, false)

	parent := sig.NewClause([]*Literal{lp}, InputInference())
	child := sig.NewClause([]*Literal{lp, lq}, NewInference(RuleBinaryResolution, parent))
	assert.Equal(t, 0, parent.Age())
	assert.Equal(t, 1, child.Age())

	child.SetSelection([]int{1})
	require.Equal(t, 1, child.Selected())
	assert.Equal(t, []*Literal{lq}, child.SelectedLiterals())
	assert.Equal(t, 2, child.Len())
}
