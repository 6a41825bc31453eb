package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// Subsumes reports whether sub subsumes target: some substitution maps
// sub's literals injectively onto a sub-multiset of target's literals. The
// search backtracks over literal assignments and, for equality literals,
// over the two argument orders.
func Subsumes(sig *kernel.Signature, sub, target *kernel.Clause) bool {
	if sub.Len() > target.Len() {
		return false
	}
	subst := kernel.NewRobSubstitution(sig)
	used := make([]bool, target.Len())
	return matchRemaining(subst, sub.Literals(), 0, target.Literals(), used)
}

func matchRemaining(subst *kernel.RobSubstitution, pats []*kernel.Literal, i int, insts []*kernel.Literal, used []bool) bool {
	if i == len(pats) {
		return true
	}
	p := pats[i]
	orders := []bool{false}
	if p.IsEquality() {
		orders = []bool{false, true}
	}
	for j, inst := range insts {
		if used[j] {
			continue
		}
		for _, swap := range orders {
			m := subst.Mark()
			if !subst.MatchLiteral(p, kernel.QueryBank, inst, kernel.ResultBank, swap) {
				continue
			}
			used[j] = true
			if matchRemaining(subst, pats, i+1, insts, used) {
				return true
			}
			used[j] = false
			subst.BacktrackTo(m)
		}
	}
	return false
}

// ForwardSubsumption deletes a new clause that is subsumed by an active
// clause. Candidate subsumers are found by generalisation queries on the
// subsumption literal index; the full multiset check runs on each
// candidate.
type ForwardSubsumption struct {
	attached
	index *indexing.SubsumptionLiteralIndex
}

// NewForwardSubsumption returns the rule.
func NewForwardSubsumption() *ForwardSubsumption {
	return &ForwardSubsumption{}
}

func (e *ForwardSubsumption) Attach(st State) {
	e.attached.Attach(st)
	e.index = st.IndexManager().Request(indexing.FwSubsumptionKind).(*indexing.SubsumptionLiteralIndex)
}

func (e *ForwardSubsumption) Detach() {
	e.index = nil
	e.st.IndexManager().Release(indexing.FwSubsumptionKind)
	e.attached.Detach()
}

func (e *ForwardSubsumption) Perform(cl *kernel.Clause) (*kernel.Clause, []*kernel.Clause, bool) {
	sig := e.st.Signature()
	checked := make(map[uint32]bool)
	for _, lit := range cl.Literals() {
		it := e.index.GetGeneralizations(lit)
		for it.HasNext() {
			qr := it.Next()
			d := qr.Data.Clause
			if checked[d.ID()] || d.Len() > cl.Len() {
				continue
			}
			checked[d.ID()] = true
			if !kernel.ColorCompatible(cl.Color(), d.Color()) {
				continue
			}
			if Subsumes(sig, d, cl) {
				return nil, []*kernel.Clause{d}, true
			}
		}
	}
	return nil, nil, false
}

// BackwardSubsumption removes active clauses subsumed by a newly activated
// clause. Candidates come from instance queries on the first literal; the
// index holds active clauses only, so passive clauses are not examined.
// Victims are buffered.
type BackwardSubsumption struct {
	attached
	index *indexing.SubsumptionLiteralIndex
}

// NewBackwardSubsumption returns the rule.
func NewBackwardSubsumption() *BackwardSubsumption {
	return &BackwardSubsumption{}
}

func (e *BackwardSubsumption) Attach(st State) {
	e.attached.Attach(st)
	e.index = st.IndexManager().Request(indexing.BwSubsumptionKind).(*indexing.SubsumptionLiteralIndex)
}

func (e *BackwardSubsumption) Detach() {
	e.index = nil
	e.st.IndexManager().Release(indexing.BwSubsumptionKind)
	e.attached.Detach()
}

func (e *BackwardSubsumption) Perform(c *kernel.Clause) []BwSimplificationRecord {
	if c.Len() == 0 {
		return nil
	}
	sig := e.st.Signature()
	var records []BwSimplificationRecord
	checked := make(map[uint32]bool)
	it := e.index.GetInstances(c.Literals()[0])
	for it.HasNext() {
		qr := it.Next()
		victim := qr.Data.Clause
		if victim == c || checked[victim.ID()] || victim.Len() < c.Len() {
			continue
		}
		checked[victim.ID()] = true
		if !kernel.ColorCompatible(victim.Color(), c.Color()) {
			continue
		}
		if Subsumes(sig, c, victim) {
			records = append(records, BwSimplificationRecord{Victim: victim})
		}
	}
	return records
}
