package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// ForwardDemodulation rewrites a candidate clause with oriented unit
// equalities from Active: for a subterm t of the clause and an active
// equality u = v with a substitution σu = t, the subterm is replaced by σv
// provided t > σv under the ordering. Exactly one rewrite is performed per
// call; the driver re-runs the chain on the replacement.
type ForwardDemodulation struct {
	attached
	index *indexing.DemodulationLHSIndex

	preorderedOnly     bool
	encompass          bool
	redundancyCheckOff bool
}

// NewForwardDemodulation returns the rule. preorderedOnly restricts
// rewriting to equalities whose sides were comparable at insertion;
// encompass and redundancyCheckOff select the premise-redundancy
// discipline.
func NewForwardDemodulation(preorderedOnly, encompass, redundancyCheckOff bool) *ForwardDemodulation {
	return &ForwardDemodulation{
		preorderedOnly:     preorderedOnly,
		encompass:          encompass,
		redundancyCheckOff: redundancyCheckOff,
	}
}

func (e *ForwardDemodulation) Attach(st State) {
	e.attached.Attach(st)
	e.index = st.IndexManager().Request(indexing.DemodulationLHSKind).(*indexing.DemodulationLHSIndex)
}

func (e *ForwardDemodulation) Detach() {
	e.index = nil
	e.st.IndexManager().Release(indexing.DemodulationLHSKind)
	e.attached.Detach()
}

func (e *ForwardDemodulation) Perform(cl *kernel.Clause) (*kernel.Clause, []*kernel.Clause, bool) {
	ord := e.st.Ordering()
	sig := e.st.Signature()

	// Once a term has been attempted without success its proper subterms
	// need not be revisited in this call: they were either attempted
	// transitively before or are irrelevant under the ordering.
	attempted := make(map[*kernel.Term]bool)

	for li, lit := range cl.Literals() {
		it := kernel.NewSubtermIterator(lit)
		for it.HasNext() {
			trm := it.Next()
			if attempted[trm] {
				it.Right()
				continue
			}
			attempted[trm] = true

			redundancyCheck := e.redundancyCheckNeededForPremise(cl, lit, trm)

			git := e.index.GetGeneralizations(trm)
			for git.HasNext() {
				qr := git.Next()
				eq := qr.Data.Clause
				eqLit := qr.Data.Literal
				lhs := qr.Data.Term
				if eq.Len() != 1 {
					panic(&kernel.InvariantViolation{Msg: "non-unit clause in demodulation LHS index"})
				}
				if !kernel.ColorCompatible(cl.Color(), eq.Color()) {
					continue
				}

				// A variable left-hand side carries no sort information
				// through the index; match the equality's argument sort
				// against the rewritten term's sort in an auxiliary
				// substitution and give up on mismatch.
				if lhs.IsVar() {
					vSubst := kernel.NewRobSubstitution(sig)
					if !vSubst.Match(eqLit.EqualityArgumentSort(), kernel.QueryBank, trm.Sort(), kernel.ResultBank) {
						continue
					}
				}

				rhs := eqLit.OtherEqualitySide(lhs)
				argOrder := ord.EqualityArgumentOrder(eqLit)
				preordered := argOrder == kernel.Less || argOrder == kernel.Greater

				rhsS := qr.Substitution.ApplyToResult(rhs)

				if !preordered && (e.preorderedOnly || !ord.IsGreater(trm, rhsS)) {
					continue
				}

				// Encompassing demodulation is fine when rewriting the
				// strictly smaller side of an equality literal.
				if redundancyCheck && e.encompass {
					litOrder := ord.EqualityArgumentOrder(lit)
					if (trm == lit.Args()[0] && litOrder == kernel.Less) ||
						(trm == lit.Args()[1] && litOrder == kernel.Greater) {
						redundancyCheck = false
					}
				}

				if redundancyCheck && !e.isPremiseRedundant(lit, trm, rhsS, qr.Substitution) {
					continue
				}

				resLit := lit.ReplaceSubterm(trm, rhsS)
				if resLit.IsEqTautology() {
					// The clause simplifies to an equality tautology and
					// is deleted outright.
					return nil, []*kernel.Clause{eq}, true
				}

				lits := make([]*kernel.Literal, 0, cl.Len())
				lits = append(lits, resLit)
				for i, curr := range cl.Literals() {
					if i != li {
						lits = append(lits, curr)
					}
				}
				res := sig.NewClause(lits, kernel.NewInference(kernel.RuleForwardDemodulation, cl, eq))
				return res, []*kernel.Clause{eq}, true
			}
		}
	}
	return nil, nil, false
}

// redundancyCheckNeededForPremise: rewriting the top side of a unit
// equality risks invalidating the redundancy criterion; everywhere else the
// rewritten clause is necessarily larger than the premise instance.
func (e *ForwardDemodulation) redundancyCheckNeededForPremise(cl *kernel.Clause, lit *kernel.Literal, trm *kernel.Term) bool {
	if e.redundancyCheckOff {
		return false
	}
	return cl.Len() == 1 && lit.IsEquality() &&
		(trm == lit.Args()[0] || trm == lit.Args()[1])
}

// isPremiseRedundant verifies that the rewriting equality instance is
// smaller than the unit equality being rewritten, so the replacement keeps
// the premise redundant. In encompassing mode a strict (non-renaming)
// match already suffices.
func (e *ForwardDemodulation) isPremiseRedundant(lit *kernel.Literal, trm, rhsS *kernel.Term, subst indexing.ResultSubstitution) bool {
	if e.encompass && !subst.IsRenamingOnResult() {
		return true
	}
	other := lit.OtherEqualitySide(trm)
	return e.st.Ordering().Compare(rhsS, other) == kernel.Less
}
