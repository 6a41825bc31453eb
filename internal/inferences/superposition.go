package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// Superposition rewrites with positive equalities across clauses, in both
// directions relative to the given clause: equalities of the given clause
// into subterms of active clauses, and active equalities into subterms of
// the given clause. The rewrite is ordering-restricted: the instantiated
// left-hand side must not be smaller than or equal to the right-hand side.
type Superposition struct {
	attached
	subtermIndex *indexing.SuperpositionSubtermIndex
	lhsIndex     *indexing.SuperpositionLHSIndex
}

// NewSuperposition returns the rule.
func NewSuperposition() *Superposition {
	return &Superposition{}
}

func (e *Superposition) Attach(st State) {
	e.attached.Attach(st)
	e.subtermIndex = st.IndexManager().Request(indexing.SuperpositionSubtermKind).(*indexing.SuperpositionSubtermIndex)
	e.lhsIndex = st.IndexManager().Request(indexing.SuperpositionLHSKind).(*indexing.SuperpositionLHSIndex)
}

func (e *Superposition) Detach() {
	e.subtermIndex = nil
	e.lhsIndex = nil
	e.st.IndexManager().Release(indexing.SuperpositionSubtermKind)
	e.st.IndexManager().Release(indexing.SuperpositionLHSKind)
	e.attached.Detach()
}

func (e *Superposition) GenerateClauses(c *kernel.Clause) kernel.ClauseIterator {
	var out []*kernel.Clause
	out = e.fromGivenEqualities(c, out)
	out = e.intoGivenSubterms(c, out)
	return kernel.ClauseIteratorOf(out...)
}

// eligibleSides lists the non-variable sides of a positive equality that
// are not strictly smaller than the other side.
func eligibleSides(ord kernel.Ordering, lit *kernel.Literal) []*kernel.Term {
	var sides []*kernel.Term
	order := ord.EqualityArgumentOrder(lit)
	if order != kernel.Less && !lit.Args()[0].IsVar() {
		sides = append(sides, lit.Args()[0])
	}
	if order != kernel.Greater && !lit.Args()[1].IsVar() {
		sides = append(sides, lit.Args()[1])
	}
	return sides
}

// fromGivenEqualities superposes selected equalities of c into indexed
// subterms of active clauses.
func (e *Superposition) fromGivenEqualities(c *kernel.Clause, out []*kernel.Clause) []*kernel.Clause {
	sig := e.st.Signature()
	ord := e.st.Ordering()
	for li, lit := range c.SelectedLiterals() {
		if !lit.IsEquality() || !lit.Positive() {
			continue
		}
		for _, lhs := range eligibleSides(ord, lit) {
			rhs := lit.OtherEqualitySide(lhs)
			it := e.subtermIndex.GetUnifications(lhs)
			for it.HasNext() {
				qr := it.Next()
				d := qr.Data.Clause
				dLit := qr.Data.Literal
				if !kernel.ColorCompatible(c.Color(), d.Color()) {
					continue
				}
				subst := qr.Substitution
				lhsS := subst.ApplyToQuery(lhs)
				rhsS := subst.ApplyToQuery(rhs)
				if r := ord.Compare(lhsS, rhsS); r == kernel.Less || r == kernel.Equal {
					continue
				}
				dLitS := subst.ApplyToResultLiteral(dLit)
				resLit := dLitS.ReplaceSubterm(lhsS, rhsS)
				lits := make([]*kernel.Literal, 0, c.Len()+d.Len()-1)
				lits = append(lits, resLit)
				replacedOne := false
				for _, l := range d.Literals() {
					if l == dLit && !replacedOne {
						replacedOne = true
						continue
					}
					lits = append(lits, subst.ApplyToResultLiteral(l))
				}
				for k, l := range c.Literals() {
					if k != li {
						lits = append(lits, subst.ApplyToQueryLiteral(l))
					}
				}
				out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleSuperposition, d, c)))
			}
		}
	}
	return out
}

// intoGivenSubterms superposes indexed active equalities into the
// non-variable subterms of c's selected literals.
func (e *Superposition) intoGivenSubterms(c *kernel.Clause, out []*kernel.Clause) []*kernel.Clause {
	sig := e.st.Signature()
	ord := e.st.Ordering()
	for li, lit := range c.SelectedLiterals() {
		sit := kernel.NewSubtermIterator(lit)
		for sit.HasNext() {
			trm := sit.Next()
			it := e.lhsIndex.GetUnifications(trm)
			for it.HasNext() {
				qr := it.Next()
				d := qr.Data.Clause
				eqLit := qr.Data.Literal
				lhs := qr.Data.Term
				if !kernel.ColorCompatible(c.Color(), d.Color()) {
					continue
				}
				subst := qr.Substitution
				lhsS := subst.ApplyToResult(lhs)
				rhsS := subst.ApplyToResult(eqLit.OtherEqualitySide(lhs))
				if r := ord.Compare(lhsS, rhsS); r == kernel.Less || r == kernel.Equal {
					continue
				}
				litS := subst.ApplyToQueryLiteral(lit)
				resLit := litS.ReplaceSubterm(lhsS, rhsS)
				lits := make([]*kernel.Literal, 0, c.Len()+d.Len()-1)
				lits = append(lits, resLit)
				for k, l := range c.Literals() {
					if k != li {
						lits = append(lits, subst.ApplyToQueryLiteral(l))
					}
				}
				replacedOne := false
				for _, l := range d.Literals() {
					if l == eqLit && !replacedOne {
						replacedOne = true
						continue
					}
					lits = append(lits, subst.ApplyToResultLiteral(l))
				}
				out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleSuperposition, c, d)))
			}
		}
	}
	return out
}
