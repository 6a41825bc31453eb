package saturation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inpefess/vampire/internal/parser"
	"github.com/inpefess/vampire/pkg/kernel"
	"github.com/inpefess/vampire/pkg/saturation"
)

func prove(t *testing.T, input string, strategy saturation.Strategy) saturation.Result {
	t.Helper()
	sig := kernel.NewSignature()
	parsed, err := parser.ParseString(input, sig)
	require.NoError(t, err)
	clauses := make([]*kernel.Clause, len(parsed))
	for i, p := range parsed {
		clauses[i] = p.Clause
	}
	result, err := saturation.Saturate(context.Background(), sig, clauses, strategy)
	require.NoError(t, err)
	return result
}

func timed(strategy saturation.Strategy, d time.Duration) saturation.Strategy {
	strategy.TimeLimit = d
	return strategy
}

func TestRefutationByResolution(t *testing.T) {
	result := prove(t, `
cnf(c1, axiom, p(a)).
cnf(c2, negated_conjecture, ~p(a)).
`, timed(saturation.DefaultStrategy(), 5*time.Second))

	require.Equal(t, saturation.Refutation, result.Reason)
	require.NotNil(t, result.Empty)
	assert.True(t, result.Empty.IsEmpty())

	proof := result.Proof()
	require.NotNil(t, proof)
	last := proof.Steps[len(proof.Steps)-1].Clause
	assert.True(t, last.IsEmpty(), "the proof is rooted at the empty clause")
	assert.GreaterOrEqual(t, len(proof.Steps), 3, "two inputs and the empty clause")
}

func TestRefutationByDemodulationAndResolution(t *testing.T) {
	result := prove(t, `
cnf(eq, axiom, f(X) = X).
cnf(c1, axiom, p(f(f(a)))).
cnf(c2, negated_conjecture, ~p(a)).
`, timed(saturation.DefaultStrategy(), 10*time.Second))

	require.Equal(t, saturation.Refutation, result.Reason)
	proof := result.Proof()
	require.NotNil(t, proof)

	demodulations := 0
	for _, s := range proof.Steps {
		if s.Clause.Inference().Rule == kernel.RuleForwardDemodulation {
			demodulations++
			assert.Len(t, s.Clause.Inference().Parents, 2)
		}
	}
	assert.GreaterOrEqual(t, demodulations, 1, "the proof rewrites through f(X) = X")
}

func TestRefutationByFactoringAndResolution(t *testing.T) {
	result := prove(t, `
cnf(c1, axiom, p(a)).
cnf(c2, axiom, q(b)).
cnf(c3, negated_conjecture, ( ~p(X) | ~q(Y) )).
`, timed(saturation.DefaultStrategy(), 10*time.Second))

	assert.Equal(t, saturation.Refutation, result.Reason)
}

func TestSatisfiableWhenPassiveDrains(t *testing.T) {
	result := prove(t, `
cnf(c1, axiom, p(a)).
`, timed(saturation.DefaultStrategy(), 5*time.Second))

	assert.Equal(t, saturation.Satisfiable, result.Reason)
}

func TestIncompleteStrategyGivesUnknown(t *testing.T) {
	strategy := saturation.DefaultStrategy()
	strategy.Generators = []saturation.GeneratorKind{saturation.GenBinaryResolution}
	strategy.TimeLimit = 5 * time.Second

	result := prove(t, `cnf(c1, axiom, p(a)).`, strategy)
	assert.Equal(t, saturation.Unknown, result.Reason)
}

func TestCommutativityDoesNotRefute(t *testing.T) {
	result := prove(t, `
cnf(comm, axiom, f(X, Y) = f(Y, X)).
`, timed(saturation.DefaultStrategy(), 100*time.Millisecond))

	assert.NotEqual(t, saturation.Refutation, result.Reason)
	assert.Contains(t,
		[]saturation.TerminationReason{saturation.TimeLimit, saturation.Satisfiable},
		result.Reason, "a tight budget ends the run cleanly")
}

func TestContextCancellationStopsBetweenClauses(t *testing.T) {
	sig := kernel.NewSignature()
	parsed, err := parser.ParseString(`cnf(comm, axiom, f(X, Y) = f(Y, X)).`, sig)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := saturation.Saturate(ctx, sig,
		[]*kernel.Clause{parsed[0].Clause}, saturation.DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, saturation.Unknown, result.Reason)
}

func TestEmptyInputClauseRefutesImmediately(t *testing.T) {
	sig := kernel.NewSignature()
	empty := sig.NewClause(nil, kernel.InputInference())
	result, err := saturation.Saturate(context.Background(), sig,
		[]*kernel.Clause{empty}, saturation.DefaultStrategy())
	require.NoError(t, err)
	assert.Equal(t, saturation.Refutation, result.Reason)
}

func TestStrategyValidation(t *testing.T) {
	sig := kernel.NewSignature()

	bad := saturation.DefaultStrategy()
	bad.Generators = append(bad.Generators, saturation.GeneratorKind("hyper_resolution"))
	_, err := saturation.NewAlgorithm(sig, bad)
	assert.Error(t, err, "unknown generators are user errors at construction")

	bad = saturation.DefaultStrategy()
	bad.AgeRatio = 0
	bad.WeightRatio = 0
	_, err = saturation.NewAlgorithm(sig, bad)
	assert.Error(t, err)

	alg, err := saturation.NewAlgorithm(sig, saturation.DefaultStrategy())
	require.NoError(t, err)
	alg.Close()
}

func TestActivationLimit(t *testing.T) {
	strategy := saturation.DefaultStrategy()
	strategy.ActivationLimit = 1
	strategy.TimeLimit = 5 * time.Second

	result := prove(t, `
cnf(c1, axiom, p(a)).
cnf(c2, axiom, q(b)).
`, strategy)
	assert.Equal(t, saturation.Unknown, result.Reason)
	assert.LessOrEqual(t, result.Activations, 1)
}
