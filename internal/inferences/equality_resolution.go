package inferences

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// EqualityResolution resolves a selected negative equality s != t of the
// given clause by unifying its sides.
type EqualityResolution struct {
	attached
}

// NewEqualityResolution returns the rule.
func NewEqualityResolution() *EqualityResolution {
	return &EqualityResolution{}
}

func (e *EqualityResolution) GenerateClauses(c *kernel.Clause) kernel.ClauseIterator {
	sig := e.st.Signature()
	var out []*kernel.Clause
	for li, lit := range c.SelectedLiterals() {
		if !lit.IsEquality() || !lit.Negative() {
			continue
		}
		subst := kernel.NewRobSubstitution(sig)
		if !subst.Unify(lit.Args()[0], kernel.QueryBank, lit.Args()[1], kernel.QueryBank) {
			continue
		}
		lits := make([]*kernel.Literal, 0, c.Len()-1)
		for k, l := range c.Literals() {
			if k == li {
				continue
			}
			lits = append(lits, subst.ApplyLiteral(l, kernel.QueryBank))
		}
		out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleEqualityResolution, c)))
	}
	return kernel.ClauseIteratorOf(out...)
}
