package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// BinaryResolution resolves a selected literal of the given clause against
// complementary unifiable selected literals of active clauses. Equality
// literals are left to the equational rules.
type BinaryResolution struct {
	attached
	index *indexing.BinaryResolutionIndex
}

// NewBinaryResolution returns the rule.
func NewBinaryResolution() *BinaryResolution {
	return &BinaryResolution{}
}

func (e *BinaryResolution) Attach(st State) {
	e.attached.Attach(st)
	e.index = st.IndexManager().Request(indexing.BinaryResolutionSubstKind).(*indexing.BinaryResolutionIndex)
}

func (e *BinaryResolution) Detach() {
	e.index = nil
	e.st.IndexManager().Release(indexing.BinaryResolutionSubstKind)
	e.attached.Detach()
}

func (e *BinaryResolution) GenerateClauses(c *kernel.Clause) kernel.ClauseIterator {
	sig := e.st.Signature()
	var out []*kernel.Clause
	for li, lit := range c.SelectedLiterals() {
		if lit.IsEquality() {
			continue
		}
		it := e.index.GetComplementaryUnifications(lit)
		for it.HasNext() {
			qr := it.Next()
			d := qr.Data.Clause
			dLit := qr.Data.Literal
			if !kernel.ColorCompatible(c.Color(), d.Color()) {
				continue
			}
			subst := qr.Substitution
			lits := make([]*kernel.Literal, 0, c.Len()+d.Len()-2)
			for i, l := range c.Literals() {
				if i != li {
					lits = append(lits, subst.ApplyToQueryLiteral(l))
				}
			}
			skippedSide := false
			for _, l := range d.Literals() {
				if l == dLit && !skippedSide {
					skippedSide = true
					continue
				}
				lits = append(lits, subst.ApplyToResultLiteral(l))
			}
			out = append(out, sig.NewClause(lits, kernel.NewInference(kernel.RuleBinaryResolution, c, d)))
		}
	}
	return kernel.ClauseIteratorOf(out...)
}
