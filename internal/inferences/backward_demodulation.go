package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// BackwardDemodulation rewrites active clauses with a newly activated unit
// equality. Victims are collected into a buffer first; the driver performs
// the container mutations.
type BackwardDemodulation struct {
	attached
	index *indexing.DemodulationSubtermIndex

	preorderedOnly bool
}

// NewBackwardDemodulation returns the rule; preorderedOnly restricts
// rewriting to pre-ordered equalities.
func NewBackwardDemodulation(preorderedOnly bool) *BackwardDemodulation {
	return &BackwardDemodulation{preorderedOnly: preorderedOnly}
}

func (e *BackwardDemodulation) Attach(st State) {
	e.attached.Attach(st)
	e.index = st.IndexManager().Request(indexing.DemodulationSubtermKind).(*indexing.DemodulationSubtermIndex)
}

func (e *BackwardDemodulation) Detach() {
	e.index = nil
	e.st.IndexManager().Release(indexing.DemodulationSubtermKind)
	e.attached.Detach()
}

func (e *BackwardDemodulation) Perform(c *kernel.Clause) []BwSimplificationRecord {
	if !c.IsUnitEquality() {
		return nil
	}
	ord := e.st.Ordering()
	sig := e.st.Signature()
	lit := c.Literals()[0]

	argOrder := ord.EqualityArgumentOrder(lit)
	if e.preorderedOnly && argOrder != kernel.Less && argOrder != kernel.Greater {
		return nil
	}

	// A pre-ordered equality stays oriented under any substitution, so the
	// per-hit ordering check can be skipped.
	preordered := argOrder == kernel.Less || argOrder == kernel.Greater

	var records []BwSimplificationRecord
	hit := make(map[uint32]bool)

	for _, side := range demodulationSidesFor(argOrder, lit) {
		rhs := lit.OtherEqualitySide(side)
		it := e.index.GetInstances(side)
		for it.HasNext() {
			qr := it.Next()
			victim := qr.Data.Clause
			vLit := qr.Data.Literal
			trm := qr.Data.Term
			if victim == c || hit[victim.ID()] {
				continue
			}
			if !kernel.ColorCompatible(victim.Color(), c.Color()) {
				continue
			}
			rhsS := qr.Substitution.ApplyToQuery(rhs)
			if !preordered && !ord.IsGreater(trm, rhsS) {
				continue
			}
			resLit := vLit.ReplaceSubterm(trm, rhsS)
			hit[victim.ID()] = true
			if resLit.IsEqTautology() {
				records = append(records, BwSimplificationRecord{Victim: victim})
				continue
			}
			lits := make([]*kernel.Literal, 0, victim.Len())
			replacedOne := false
			for _, curr := range victim.Literals() {
				if curr == vLit && !replacedOne {
					lits = append(lits, resLit)
					replacedOne = true
					continue
				}
				lits = append(lits, curr)
			}
			replacement := sig.NewClause(lits,
				kernel.NewInference(kernel.RuleBackwardDemodulation, victim, c))
			records = append(records, BwSimplificationRecord{Victim: victim, Replacement: replacement})
		}
	}
	return records
}

// demodulationSidesFor lists the usable left-hand sides given the cached
// argument order of the equality.
func demodulationSidesFor(argOrder kernel.Result, lit *kernel.Literal) []*kernel.Term {
	switch argOrder {
	case kernel.Greater:
		return []*kernel.Term{lit.Args()[0]}
	case kernel.Less:
		return []*kernel.Term{lit.Args()[1]}
	case kernel.Incomparable:
		return []*kernel.Term{lit.Args()[0], lit.Args()[1]}
	}
	return nil
}
