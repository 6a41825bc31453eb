package inferences

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// EqualityFactoring factors two positive equality literals s = t and
// u = v of the given clause on a unifier of s and u, producing
// σ(t != v | u = v | rest).
type EqualityFactoring struct {
	attached
}

// NewEqualityFactoring returns the rule.
func NewEqualityFactoring() *EqualityFactoring {
	return &EqualityFactoring{}
}

func (e *EqualityFactoring) GenerateClauses(c *kernel.Clause) kernel.ClauseIterator {
	sig := e.st.Signature()
	ord := e.st.Ordering()
	var out []*kernel.Clause
	selected := c.SelectedLiterals()
	for i, lit1 := range selected {
		if !lit1.IsEquality() || !lit1.Positive() {
			continue
		}
		// Selected literals form a prefix of the clause, so index i names
		// the same literal in both slices.
		for j, lit2 := range c.Literals() {
			if j == i {
				continue
			}
			if !lit2.IsEquality() || !lit2.Positive() {
				continue
			}
			for _, s := range []int{0, 1} {
				lhs1 := lit1.Args()[s]
				rhs1 := lit1.Args()[1-s]
				if lhs1.IsVar() {
					continue
				}
				if ord.EqualityArgumentOrder(lit1) == orientedAgainst(s) {
					continue
				}
				for _, u := range []int{0, 1} {
					lhs2 := lit2.Args()[u]
					rhs2 := lit2.Args()[1-u]
					subst := kernel.NewRobSubstitution(sig)
					if !subst.Unify(lhs1, kernel.QueryBank, lhs2, kernel.QueryBank) {
						continue
					}
					lits := make([]*kernel.Literal, 0, c.Len())
					lits = append(lits, sig.NewEquality(false,
						subst.Apply(rhs1, kernel.QueryBank),
						subst.Apply(rhs2, kernel.QueryBank)))
					for k, l := range c.Literals() {
						if k == i {
							continue
						}
						lits = append(lits, subst.ApplyLiteral(l, kernel.QueryBank))
					}
					out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleEqualityFactoring, c)))
				}
			}
		}
	}
	return kernel.ClauseIteratorOf(out...)
}

// orientedAgainst maps a side index to the argument order that makes that
// side the strictly smaller one.
func orientedAgainst(side int) kernel.Result {
	if side == 0 {
		return kernel.Less
	}
	return kernel.Greater
}
