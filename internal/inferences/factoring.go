package inferences

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// Factoring unifies two selected literals of the given clause with the same
// predicate and polarity and keeps one of them. Equality literals are left
// to equality factoring.
type Factoring struct {
	attached
}

// NewFactoring returns the rule.
func NewFactoring() *Factoring {
	return &Factoring{}
}

func (e *Factoring) GenerateClauses(c *kernel.Clause) kernel.ClauseIterator {
	sig := e.st.Signature()
	selected := c.SelectedLiterals()
	if len(selected) < 2 {
		return kernel.EmptyClauseIterator()
	}
	var out []*kernel.Clause
	for i := 0; i < len(selected); i++ {
		li := selected[i]
		if li.IsEquality() {
			continue
		}
		for j := i + 1; j < len(selected); j++ {
			lj := selected[j]
			if lj.Predicate() != li.Predicate() || lj.Positive() != li.Positive() {
				continue
			}
			subst := kernel.NewRobSubstitution(sig)
			if !subst.UnifyLiterals(li, kernel.QueryBank, lj, kernel.QueryBank) {
				continue
			}
			lits := make([]*kernel.Literal, 0, c.Len()-1)
			for k, l := range c.Literals() {
				if k == j {
					continue
				}
				lits = append(lits, subst.ApplyLiteral(l, kernel.QueryBank))
			}
			out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleFactoring, c)))
		}
	}
	return kernel.ClauseIteratorOf(out...)
}
