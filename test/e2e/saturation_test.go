package e2e

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/internal/parser"
	"github.com/inpefess/vampire/pkg/kernel"
	"github.com/inpefess/vampire/pkg/saturation"
)

func saturate(input string, strategy saturation.Strategy) saturation.Result {
	sig := kernel.NewSignature()
	parsed, err := parser.ParseString(input, sig)
	Expect(err).To(BeNil())
	clauses := make([]*kernel.Clause, len(parsed))
	for i, p := range parsed {
		clauses[i] = p.Clause
	}
	result, err := saturation.Saturate(context.Background(), sig, clauses, strategy)
	Expect(err).To(BeNil())
	return result
}

func withTime(d time.Duration) saturation.Strategy {
	strategy := saturation.DefaultStrategy()
	strategy.TimeLimit = d
	return strategy
}

var _ = Describe("Saturation", func() {
	It("refutes a complementary pair in one resolution step", func() {
		result := saturate(`
cnf(c1, axiom, p(a)).
cnf(c2, negated_conjecture, ~p(a)).
`, withTime(5*time.Second))
		Expect(result.Reason).To(Equal(saturation.Refutation))
		Expect(result.Proof()).NotTo(BeNil())
	})

	It("refutes through two demodulation steps and a resolution", func() {
		result := saturate(`
cnf(eq, axiom, f(X) = X).
cnf(c1, axiom, p(f(f(a)))).
cnf(c2, negated_conjecture, ~p(a)).
`, withTime(10*time.Second))
		Expect(result.Reason).To(Equal(saturation.Refutation))

		rules := map[kernel.Rule]int{}
		for _, s := range result.Proof().Steps {
			rules[s.Clause.Inference().Rule]++
		}
		Expect(rules[kernel.RuleForwardDemodulation]).To(BeNumerically(">=", 1))
	})

	It("refutes a conjunction goal by resolution", func() {
		result := saturate(`
cnf(c1, axiom, p(a)).
cnf(c2, axiom, q(b)).
cnf(c3, negated_conjecture, ( ~p(X) | ~q(Y) )).
`, withTime(10*time.Second))
		Expect(result.Reason).To(Equal(saturation.Refutation))
	})

	It("reports satisfiability once the passive set drains", func() {
		result := saturate(`cnf(c1, axiom, p(a)).`, withTime(5*time.Second))
		Expect(result.Reason).To(Equal(saturation.Satisfiable))
	})

	It("survives a commutativity axiom under a tight time budget", func() {
		result := saturate(`cnf(comm, axiom, f(X, Y) = f(Y, X)).`, withTime(100*time.Millisecond))
		Expect(result.Reason).NotTo(Equal(saturation.Refutation))
		Expect(result.Reason).To(BeElementOf(saturation.TimeLimit, saturation.Satisfiable))
	})

	It("proves a small equational fact by demodulation", func() {
		result := saturate(`
cnf(left_identity, axiom, mult(e, X) = X).
cnf(goal, negated_conjecture, mult(e, a) != a).
`, withTime(10*time.Second))
		Expect(result.Reason).To(Equal(saturation.Refutation))
	})
})

var _ = Describe("Substitution tree", func() {
	It("answers the three retrieval modes over f(a,b), f(x,b), f(a,y)", func() {
		sig := kernel.NewSignature()
		f := sig.AddFunction("f", 2)
		a := sig.NewTerm(sig.AddFunction("a", 0))
		b := sig.NewTerm(sig.AddFunction("b", 0))
		x := sig.NewVar(0)
		y := sig.NewVar(1)
		p := sig.AddPredicate("p", 0)

		is := indexing.NewTermIndexingStructure(sig)
		entries := []*kernel.Term{
			sig.NewTerm(f, a, b),
			sig.NewTerm(f, x, b),
			sig.NewTerm(f, a, y),
		}
		for _, e := range entries {
			c := sig.NewClause([]*kernel.Literal{sig.NewLiteral(p, true)}, kernel.InputInference())
			is.Insert(e, nil, c)
		}

		count := func(it indexing.ResultIterator) int {
			n := 0
			for it.HasNext() {
				it.Next()
				n++
			}
			return n
		}

		Expect(count(is.GetGeneralizations(sig.NewTerm(f, a, b)))).To(Equal(3))
		Expect(count(is.GetInstances(sig.NewTerm(f, x, y)))).To(Equal(3))
		Expect(count(is.GetVariants(sig.NewTerm(f, a, b)))).To(Equal(1))
	})
})
