package indexing

import (
	"fmt"

	"github.com/inpefess/vampire/pkg/kernel"
)

// Kind names an index an inference engine can request from the manager.
type Kind int

const (
	BinaryResolutionSubstKind Kind = iota
	SuperpositionSubtermKind
	SuperpositionLHSKind
	DemodulationLHSKind
	DemodulationSubtermKind
	FwSubsumptionKind
	BwSubsumptionKind
)

func (k Kind) String() string {
	switch k {
	case BinaryResolutionSubstKind:
		return "BINARY_RESOLUTION_SUBST"
	case SuperpositionSubtermKind:
		return "SUPERPOSITION_SUBTERM"
	case SuperpositionLHSKind:
		return "SUPERPOSITION_LHS"
	case DemodulationLHSKind:
		return "DEMODULATION_LHS"
	case DemodulationSubtermKind:
		return "DEMODULATION_SUBTERM"
	case FwSubsumptionKind:
		return "FW_SUBSUMPTION_LIT"
	case BwSubsumptionKind:
		return "BACKWARD_SUBSUMPTION_LIT"
	}
	return fmt.Sprintf("INDEX_KIND(%d)", int(k))
}

type managedIndex struct {
	index Index
	refs  int
}

// Manager lazily instantiates indices on first request, shares them between
// engines by reference counting, and destroys them when the last client
// releases. A newly created index is backfilled from the current active
// clause set so that index coherence holds at every point.
type Manager struct {
	sig     *kernel.Signature
	ord     kernel.Ordering
	active  func() []*kernel.Clause
	indices map[Kind]*managedIndex
}

// NewManager returns a manager over the given signature and ordering.
// active enumerates the clauses currently in the Active container.
func NewManager(sig *kernel.Signature, ord kernel.Ordering, active func() []*kernel.Clause) *Manager {
	return &Manager{
		sig:     sig,
		ord:     ord,
		active:  active,
		indices: make(map[Kind]*managedIndex),
	}
}

// Request returns the shared index of the given kind, constructing it on
// first request, and increments its reference count. Every Request must be
// paired with exactly one Release over an engine's attached lifetime.
func (m *Manager) Request(k Kind) Index {
	mi, ok := m.indices[k]
	if !ok {
		mi = &managedIndex{index: m.create(k)}
		for _, c := range m.active() {
			mi.index.Handle(c, true)
		}
		m.indices[k] = mi
	}
	mi.refs++
	return mi.index
}

// Release decrements the reference count of the index of kind k and
// destroys the index when it reaches zero.
func (m *Manager) Release(k Kind) {
	mi, ok := m.indices[k]
	if !ok {
		panic(&kernel.InvariantViolation{Msg: fmt.Sprintf("release of unrequested index %s", k)})
	}
	mi.refs--
	if mi.refs == 0 {
		delete(m.indices, k)
	}
}

func (m *Manager) create(k Kind) Index {
	switch k {
	case BinaryResolutionSubstKind:
		return NewBinaryResolutionIndex(m.sig)
	case SuperpositionSubtermKind:
		return NewSuperpositionSubtermIndex(m.sig)
	case SuperpositionLHSKind:
		return NewSuperpositionLHSIndex(m.sig, m.ord)
	case DemodulationLHSKind:
		return NewDemodulationLHSIndex(m.sig, m.ord)
	case DemodulationSubtermKind:
		return NewDemodulationSubtermIndex(m.sig)
	case FwSubsumptionKind:
		return NewSubsumptionLiteralIndex(m.sig)
	case BwSubsumptionKind:
		return NewSubsumptionLiteralIndex(m.sig)
	}
	panic(&kernel.InvariantViolation{Msg: fmt.Sprintf("unknown index kind %d", int(k))})
}

// OnActiveAdded inserts the clause's entries into every live index.
func (m *Manager) OnActiveAdded(c *kernel.Clause) {
	for _, mi := range m.indices {
		mi.index.Handle(c, true)
	}
}

// OnActiveRemoved removes the clause's entries from every live index.
func (m *Manager) OnActiveRemoved(c *kernel.Clause) {
	for _, mi := range m.indices {
		mi.index.Handle(c, false)
	}
}

// Live reports whether an index of kind k currently exists; used by
// invariant checks in tests.
func (m *Manager) Live(k Kind) bool {
	_, ok := m.indices[k]
	return ok
}
