package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inpefess/vampire/pkg/kernel"
)

func TestParseSimpleProblem(t *testing.T) {
	sig := kernel.NewSignature()
	clauses, err := ParseString(`
% resolution example
cnf(ax1, axiom, ( p(a) | ~q(f(X)) )).
cnf(goal, negated_conjecture, ~p(a)).
`, sig)
	require.NoError(t, err)
	require.Len(t, clauses, 2)

	assert.Equal(t, "ax1", clauses[0].Name)
	assert.Equal(t, "axiom", clauses[0].Role)
	assert.Equal(t, "p(a) | ~q(f(X0))", clauses[0].Clause.String())
	assert.Equal(t, kernel.RuleInput, clauses[0].Clause.Inference().Rule)

	assert.Equal(t, "goal", clauses[1].Name)
	assert.Equal(t, "~p(a)", clauses[1].Clause.String())
}

func TestParseEquality(t *testing.T) {
	sig := kernel.NewSignature()
	clauses, err := ParseString(`
cnf(eq1, axiom, f(X) = X).
cnf(eq2, axiom, a != b).
cnf(eq3, axiom, ~ a = b).
`, sig)
	require.NoError(t, err)
	require.Len(t, clauses, 3)

	lit := clauses[0].Clause.Literals()[0]
	assert.True(t, lit.IsEquality())
	assert.True(t, lit.Positive())

	neg := clauses[1].Clause.Literals()[0]
	assert.True(t, neg.IsEquality())
	assert.False(t, neg.Positive())

	// ~ a = b and a != b denote the same shared literal
	assert.Same(t, neg, clauses[2].Clause.Literals()[0])
}

func TestParseSharedSymbols(t *testing.T) {
	sig := kernel.NewSignature()
	clauses, err := ParseString(`
cnf(c1, axiom, p(a)).
cnf(c2, axiom, ~p(a)).
`, sig)
	require.NoError(t, err)
	require.Len(t, clauses, 2)
	assert.True(t, clauses[0].Clause.Literals()[0].ComplementaryTo(clauses[1].Clause.Literals()[0]))
}

func TestParseVariablesScopedPerClause(t *testing.T) {
	sig := kernel.NewSignature()
	clauses, err := ParseString(`
cnf(c1, axiom, ( p(X) | q(X) )).
cnf(c2, axiom, p(X)).
`, sig)
	require.NoError(t, err)
	c1 := clauses[0].Clause
	assert.Same(t, c1.Literals()[0].Args()[0], c1.Literals()[1].Args()[0],
		"the same variable name shares a variable within a clause")
}

func TestParseErrors(t *testing.T) {
	sig := kernel.NewSignature()

	_, err := ParseString(`cnf(bad, axiom, p(a)`, sig)
	assert.Error(t, err, "unterminated clause")

	_, err = ParseString(`cnf(bad, axiom, X(a)).`, sig)
	assert.Error(t, err, "variable used as a symbol head")
}
