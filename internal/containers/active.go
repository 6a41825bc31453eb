package containers

import (
	"sort"

	"github.com/inpefess/vampire/pkg/kernel"
)

// Active is the set of activated clauses. The saturation driver subscribes
// to its events to keep every live index coherent with the container.
type Active struct {
	in map[uint32]*kernel.Clause

	Added   ClauseEvent
	Removed ClauseEvent
}

// NewActive returns an empty container.
func NewActive() *Active {
	return &Active{in: make(map[uint32]*kernel.Clause)}
}

// Add activates c.
func (a *Active) Add(c *kernel.Clause) {
	c.SetStore(kernel.StoreActive)
	a.in[c.ID()] = c
	a.Added.Fire(c)
}

// Remove deactivates c; it reports whether c was present. The removed event
// fires after the clause left the container.
func (a *Active) Remove(c *kernel.Clause) bool {
	if _, ok := a.in[c.ID()]; !ok {
		return false
	}
	delete(a.in, c.ID())
	c.SetStore(kernel.StoreNone)
	a.Removed.Fire(c)
	return true
}

// Contains reports whether c is active.
func (a *Active) Contains(c *kernel.Clause) bool {
	_, ok := a.in[c.ID()]
	return ok
}

// Size returns the number of active clauses.
func (a *Active) Size() int { return len(a.in) }

// Clauses returns the active clauses in activation (id) order.
func (a *Active) Clauses() []*kernel.Clause {
	out := make([]*kernel.Clause, 0, len(a.in))
	for _, c := range a.in {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
