// Package inferences implements the inference engines of the saturation
// loop. An engine implements one or more of four capability roles:
// immediate simplification, forward simplification, backward simplification
// and generation. Engines acquire the indices they need in Attach and
// release them in Detach.
package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// State is the saturation algorithm as visible to an attached engine.
type State interface {
	Signature() *kernel.Signature
	Ordering() kernel.Ordering
	IndexManager() *indexing.Manager
}

// GeneratingEngine derives new clauses from an activated clause and the
// active set, through the indices.
type GeneratingEngine interface {
	Attach(st State)
	Detach()
	GenerateClauses(c *kernel.Clause) kernel.ClauseIterator
}

// ImmediateSimplificationEngine simplifies a clause without consulting the
// search state. Simplify returns the simplified clause, c itself when
// nothing applies, or nil to discard c as redundant. Running Simplify on
// its own output must be a no-op.
type ImmediateSimplificationEngine interface {
	Simplify(c *kernel.Clause) *kernel.Clause
}

// ForwardSimplificationEngine simplifies a new clause using active clauses.
// Perform reports whether c was simplified; on true, replacement is the
// clause that replaces c (nil meaning deletion) and premises lists the
// active clauses used, for proof accounting.
type ForwardSimplificationEngine interface {
	Attach(st State)
	Detach()
	Perform(c *kernel.Clause) (replacement *kernel.Clause, premises []*kernel.Clause, performed bool)
}

// BwSimplificationRecord names one clause simplified by a newly activated
// clause: the victim leaves its container, and the replacement, when
// non-nil, enters Unprocessed.
type BwSimplificationRecord struct {
	Victim      *kernel.Clause
	Replacement *kernel.Clause
}

// BackwardSimplificationEngine simplifies active and passive clauses using
// a newly activated clause. The records are buffered: engines must not
// mutate an index they are iterating.
type BackwardSimplificationEngine interface {
	Attach(st State)
	Detach()
	Perform(c *kernel.Clause) []BwSimplificationRecord
}

// attached is the embeddable attach/detach state shared by engines.
type attached struct {
	st State
}

func (a *attached) Attach(st State) { a.st = st }
func (a *attached) Detach()         { a.st = nil }

// CompositeImmediateSimplifier chains immediate simplifiers and runs them
// to a fixed point, which makes the composite idempotent.
type CompositeImmediateSimplifier struct {
	inners []ImmediateSimplificationEngine
}

// NewCompositeImmediateSimplifier composes the given simplifiers in order.
func NewCompositeImmediateSimplifier(inners ...ImmediateSimplificationEngine) *CompositeImmediateSimplifier {
	return &CompositeImmediateSimplifier{inners: inners}
}

func (s *CompositeImmediateSimplifier) Simplify(c *kernel.Clause) *kernel.Clause {
	for {
		changed := false
		for _, inner := range s.inners {
			next := inner.Simplify(c)
			if next == nil {
				return nil
			}
			if next != c {
				c = next
				changed = true
			}
		}
		if !changed {
			return c
		}
	}
}
