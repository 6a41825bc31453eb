package containers

import (
	"container/heap"

	"github.com/inpefess/vampire/pkg/kernel"
)

// clauseHeap is a priority queue over clauses with lazy deletion: stale
// entries are skipped at pop time against the container's membership map.
type clauseHeap struct {
	clauses []*kernel.Clause
	less    func(a, b *kernel.Clause) bool
}

func (h *clauseHeap) Len() int           { return len(h.clauses) }
func (h *clauseHeap) Less(i, j int) bool { return h.less(h.clauses[i], h.clauses[j]) }
func (h *clauseHeap) Swap(i, j int)      { h.clauses[i], h.clauses[j] = h.clauses[j], h.clauses[i] }
func (h *clauseHeap) Push(x interface{}) { h.clauses = append(h.clauses, x.(*kernel.Clause)) }
func (h *clauseHeap) Pop() interface{} {
	c := h.clauses[len(h.clauses)-1]
	h.clauses = h.clauses[:len(h.clauses)-1]
	return c
}

func ageLess(a, b *kernel.Clause) bool {
	if a.Age() != b.Age() {
		return a.Age() < b.Age()
	}
	if a.Weight() != b.Weight() {
		return a.Weight() < b.Weight()
	}
	return a.ID() < b.ID()
}

func weightLess(a, b *kernel.Clause) bool {
	if a.Weight() != b.Weight() {
		return a.Weight() < b.Weight()
	}
	if a.Age() != b.Age() {
		return a.Age() < b.Age()
	}
	return a.ID() < b.ID()
}

// Passive holds retained clauses awaiting activation. Selection alternates
// between an age-priority queue and a weight-priority queue in the
// configured ratio; ties break on the monotonically increasing clause id.
type Passive struct {
	byAge    *clauseHeap
	byWeight *clauseHeap
	in       map[uint32]*kernel.Clause

	ageRatio    int
	weightRatio int
	balance     int

	Added    ClauseEvent
	Removed  ClauseEvent
	Selected ClauseEvent
}

// NewPassive returns an empty container with the given age:weight selection
// ratio. A non-positive pair falls back to pure age selection.
func NewPassive(ageRatio, weightRatio int) *Passive {
	if ageRatio <= 0 && weightRatio <= 0 {
		ageRatio = 1
		weightRatio = 0
	}
	return &Passive{
		byAge:       &clauseHeap{less: ageLess},
		byWeight:    &clauseHeap{less: weightLess},
		in:          make(map[uint32]*kernel.Clause),
		ageRatio:    ageRatio,
		weightRatio: weightRatio,
	}
}

// Add retains c in the passive queue.
func (p *Passive) Add(c *kernel.Clause) {
	c.SetStore(kernel.StorePassive)
	p.in[c.ID()] = c
	heap.Push(p.byAge, c)
	heap.Push(p.byWeight, c)
	p.Added.Fire(c)
}

// Remove deletes c from the queue; it reports whether c was present.
func (p *Passive) Remove(c *kernel.Clause) bool {
	if _, ok := p.in[c.ID()]; !ok {
		return false
	}
	delete(p.in, c.ID())
	c.SetStore(kernel.StoreNone)
	p.Removed.Fire(c)
	return true
}

// PopSelected removes and returns the next clause under the age/weight
// alternation; nil when empty.
func (p *Passive) PopSelected() *kernel.Clause {
	if len(p.in) == 0 {
		return nil
	}
	h := p.byAge
	if p.ageRatio <= 0 || (p.weightRatio > 0 && p.balance >= p.ageRatio) {
		h = p.byWeight
	}
	p.balance++
	if p.balance >= p.ageRatio+p.weightRatio {
		p.balance = 0
	}
	for h.Len() > 0 {
		c := heap.Pop(h).(*kernel.Clause)
		if _, ok := p.in[c.ID()]; !ok {
			continue // stale entry of a removed clause
		}
		delete(p.in, c.ID())
		c.SetStore(kernel.StoreNone)
		p.Selected.Fire(c)
		return c
	}
	// The chosen queue ran dry of live entries; the other one cannot be
	// empty while the membership map is not.
	other := p.byAge
	if h == p.byAge {
		other = p.byWeight
	}
	for other.Len() > 0 {
		c := heap.Pop(other).(*kernel.Clause)
		if _, ok := p.in[c.ID()]; !ok {
			continue
		}
		delete(p.in, c.ID())
		c.SetStore(kernel.StoreNone)
		p.Selected.Fire(c)
		return c
	}
	return nil
}

// IsEmpty reports whether the container holds no clauses.
func (p *Passive) IsEmpty() bool { return len(p.in) == 0 }

// Size returns the number of held clauses.
func (p *Passive) Size() int { return len(p.in) }

// Contains reports whether c is currently passive.
func (p *Passive) Contains(c *kernel.Clause) bool {
	_, ok := p.in[c.ID()]
	return ok
}
