package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnifyAcrossBanks(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	f := sig.AddFunction("f", 2)
	g := sig.AddFunction("g", 1)
	x := sig.NewVar(0)
	y := sig.NewVar(1)

	// f(X, g(Y)) in the query bank against f(g(a), X) in the result bank:
	// the two Xs are independent.
	s := NewRobSubstitution(sig)
	q := sig.NewTerm(f, x, sig.NewTerm(g, y))
	r := sig.NewTerm(f, sig.NewTerm(g, a), x)
	require.True(t, s.Unify(q, QueryBank, r, ResultBank))

	qa := s.Apply(q, QueryBank)
	ra := s.Apply(r, ResultBank)
	assert.Same(t, qa, ra, "both sides must dereference to the same term")
	assert.Same(t, sig.NewTerm(f, sig.NewTerm(g, a), sig.NewTerm(g, sig.NewVar(0))), qa)
}

func TestUnifyOccursCheck(t *testing.T) {
	sig := NewSignature()
	f := sig.AddFunction("f", 1)
	x := sig.NewVar(0)

	s := NewRobSubstitution(sig)
	assert.False(t, s.Unify(x, QueryBank, sig.NewTerm(f, x), QueryBank))
	// failure must restore the substitution
	assert.True(t, s.Unify(x, QueryBank, sig.NewVar(1), QueryBank))
}

func TestUnifyFailureRestoresBindings(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	b := sig.NewTerm(sig.AddFunction("b", 0))
	f := sig.AddFunction("f", 2)
	x := sig.NewVar(0)

	s := NewRobSubstitution(sig)
	// f(X, a) vs f(b, b) fails after binding X
	require.False(t, s.Unify(sig.NewTerm(f, x, a), QueryBank, sig.NewTerm(f, b, b), QueryBank))
	// X must be free again
	require.True(t, s.Unify(x, QueryBank, a, QueryBank))
	assert.Same(t, a, s.Apply(x, QueryBank))
}

func TestMatchIsOneSided(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	f := sig.AddFunction("f", 2)
	x := sig.NewVar(0)

	s := NewRobSubstitution(sig)
	pattern := sig.NewTerm(f, x, x)
	instance := sig.NewTerm(f, a, a)
	require.True(t, s.Match(pattern, QueryBank, instance, ResultBank))
	assert.Same(t, a, s.Apply(x, QueryBank))

	s.Reset()
	// the instance side may not be bound: f(a, a) does not match onto f(X, X)
	assert.False(t, s.Match(instance, QueryBank, pattern, ResultBank))

	s.Reset()
	// non-linear pattern against distinct constants
	b := sig.NewTerm(sig.AddFunction("b", 0))
	assert.False(t, s.Match(pattern, QueryBank, sig.NewTerm(f, a, b), ResultBank))
}

func TestBacktrackToMark(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	b := sig.NewTerm(sig.AddFunction("b", 0))
	x := sig.NewVar(0)
	y := sig.NewVar(1)

	s := NewRobSubstitution(sig)
	require.True(t, s.Unify(x, QueryBank, a, QueryBank))
	m := s.Mark()
	require.True(t, s.Unify(y, QueryBank, b, QueryBank))
	s.BacktrackTo(m)

	assert.Same(t, a, s.Apply(x, QueryBank))
	// y is unbound again and maps to a fresh output variable
	assert.True(t, s.Apply(y, QueryBank).IsVar())
	require.True(t, s.Unify(y, QueryBank, a, QueryBank))
}

func TestApplyRenamesApart(t *testing.T) {
	sig := NewSignature()
	f := sig.AddFunction("f", 2)
	x := sig.NewVar(0)

	s := NewRobSubstitution(sig)
	// unbound X in the query bank and unbound X in the result bank are
	// distinct variables and must stay distinct after application.
	q := sig.NewTerm(f, x, x)
	qa := s.Apply(q, QueryBank)
	ra := s.Apply(sig.NewTerm(f, x, x), ResultBank)
	assert.NotSame(t, qa, ra)
}

func TestMatchLiteralEqualitySwap(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	g := sig.AddFunction("g", 1)
	x := sig.NewVar(0)

	ga := sig.NewTerm(g, a)
	pattern := sig.NewEquality(true, x, ga)
	instance := sig.NewEquality(true, a, ga)

	// one of the two argument orders must match
	s := NewRobSubstitution(sig)
	matched := s.MatchLiteral(pattern, QueryBank, instance, ResultBank, false) ||
		s.MatchLiteral(pattern, QueryBank, instance, ResultBank, true)
	assert.True(t, matched)
}

func TestIsRenamingOn(t *testing.T) {
	sig := NewSignature()
	a := sig.NewTerm(sig.AddFunction("a", 0))
	x := sig.NewVar(0)
	y := sig.NewVar(1)
	z := sig.NewVar(2)

	s := NewRobSubstitution(sig)
	require.True(t, s.Unify(x, ResultBank, y, QueryBank))
	assert.True(t, s.IsRenamingOn(ResultBank))

	require.True(t, s.Unify(z, ResultBank, a, QueryBank))
	assert.False(t, s.IsRenamingOn(ResultBank))
}
