// Package checks provides a ground entailment oracle used by tests to
// validate the soundness of simplifying inferences: the premises and the
// negated conclusion are grounded, normalised by the ground unit equalities
// among the premises, propositionally abstracted, and handed to a SAT
// solver.
package checks

import (
	"fmt"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/inpefess/vampire/pkg/kernel"
)

// maxRewriteRounds bounds the ground completion loop; oriented ground
// rewriting terminates long before this under a simplification ordering.
const maxRewriteRounds = 64

// Entails reports whether the ground premises entail the ground conclusion
// clause. Non-ground clauses must be grounded first (see GroundInstance).
func Entails(sig *kernel.Signature, ord kernel.Ordering, premises []*kernel.Clause, conclusion *kernel.Clause) bool {
	for _, p := range premises {
		mustGround(p)
	}
	mustGround(conclusion)

	rules := orientedEqualities(ord, premises)

	g := gini.New()
	atoms := newAtomTable()

	// Premises.
	for _, p := range premises {
		if !addClause(g, atoms, ord, rules, p.Literals()) {
			continue // the clause holds trivially after normalisation
		}
	}
	// Negated conclusion: one unit clause per negated literal.
	for _, l := range conclusion.Literals() {
		nl := normalizeLiteral(ord, rules, l.Negated())
		if nl == nil {
			// The negated literal normalised to truth; the negation is
			// consistent so far.
			continue
		}
		if isFalseEquality(nl) {
			// The negated literal is t != t: the conclusion literal holds
			// outright, hence so does the conclusion.
			return true
		}
		g.Add(atoms.lit(nl))
		g.Add(0)
	}

	return g.Solve() == -1
}

// GroundInstance replaces every variable of c with a fresh constant,
// consistently across the clause.
func GroundInstance(sig *kernel.Signature, c *kernel.Clause) *kernel.Clause {
	consts := make(map[int]*kernel.Term)
	lits := make([]*kernel.Literal, c.Len())
	for i, l := range c.Literals() {
		args := make([]*kernel.Term, l.Arity())
		for j, a := range l.Args() {
			args[j] = groundTerm(sig, a, consts)
		}
		if l.IsEquality() {
			lits[i] = sig.NewEquality(l.Positive(), args[0], args[1])
		} else {
			lits[i] = sig.NewLiteral(l.Predicate(), l.Positive(), args...)
		}
	}
	return sig.NewClause(lits, c.Inference())
}

func groundTerm(sig *kernel.Signature, t *kernel.Term, consts map[int]*kernel.Term) *kernel.Term {
	if t.Ground() {
		return t
	}
	if t.IsVar() {
		c, ok := consts[t.VarNum()]
		if !ok {
			f := sig.AddFunction(fmt.Sprintf("$sk%d", t.VarNum()), 0)
			c = sig.NewTerm(f)
			consts[t.VarNum()] = c
		}
		return c
	}
	args := make([]*kernel.Term, t.Arity())
	for i, a := range t.Args() {
		args[i] = groundTerm(sig, a, consts)
	}
	return sig.NewTerm(t.Functor(), args...)
}

func mustGround(c *kernel.Clause) {
	for _, l := range c.Literals() {
		if !l.Ground() {
			panic(fmt.Sprintf("checks: non-ground clause %s", c))
		}
	}
}

type rewriteRule struct {
	lhs, rhs *kernel.Term
}

// orientedEqualities collects the ground unit equalities among the premises,
// oriented by the ordering.
func orientedEqualities(ord kernel.Ordering, premises []*kernel.Clause) []rewriteRule {
	var rules []rewriteRule
	for _, p := range premises {
		if !p.IsUnitEquality() {
			continue
		}
		lit := p.Literals()[0]
		switch ord.Compare(lit.Args()[0], lit.Args()[1]) {
		case kernel.Greater:
			rules = append(rules, rewriteRule{lhs: lit.Args()[0], rhs: lit.Args()[1]})
		case kernel.Less:
			rules = append(rules, rewriteRule{lhs: lit.Args()[1], rhs: lit.Args()[0]})
		}
	}
	return rules
}

// normalizeLiteral rewrites the literal's arguments to normal form. It
// returns nil when the literal became the true equality t = t.
func normalizeLiteral(ord kernel.Ordering, rules []rewriteRule, l *kernel.Literal) *kernel.Literal {
	nl := l
	for round := 0; round < maxRewriteRounds; round++ {
		next := nl
		for _, r := range rules {
			next = next.ReplaceSubterm(r.lhs, r.rhs)
		}
		if next == nl {
			break
		}
		nl = next
	}
	if nl.IsEqTautology() {
		return nil
	}
	return nl
}

func isFalseEquality(l *kernel.Literal) bool {
	return l.IsEquality() && l.Negative() && l.Args()[0] == l.Args()[1]
}

// addClause abstracts one clause; it reports false when the clause is
// trivially true after normalisation and was skipped.
func addClause(g *gini.Gini, atoms *atomTable, ord kernel.Ordering, rules []rewriteRule, lits []*kernel.Literal) bool {
	var ms []z.Lit
	for _, l := range lits {
		nl := normalizeLiteral(ord, rules, l)
		if nl == nil {
			return false // contains t = t, trivially true
		}
		if isFalseEquality(nl) {
			continue // a false literal drops out of the disjunction
		}
		ms = append(ms, atoms.lit(nl))
	}
	for _, m := range ms {
		g.Add(m)
	}
	g.Add(0)
	return true
}

// atomTable maps ground atoms to SAT variables.
type atomTable struct {
	vars map[*kernel.Literal]z.Var
	next z.Var
}

func newAtomTable() *atomTable {
	return &atomTable{vars: make(map[*kernel.Literal]z.Var), next: 1}
}

func (t *atomTable) lit(l *kernel.Literal) z.Lit {
	atom := l
	if atom.Negative() {
		atom = atom.Negated()
	}
	v, ok := t.vars[atom]
	if !ok {
		v = t.next
		t.next++
		t.vars[atom] = v
	}
	if l.Negative() {
		return v.Neg()
	}
	return v.Pos()
}
