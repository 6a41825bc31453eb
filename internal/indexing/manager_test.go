package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inpefess/vampire/pkg/kernel"
)

func managerFixture() (*kernel.Signature, kernel.Ordering, *[]*kernel.Clause, *Manager) {
	sig := kernel.NewSignature()
	ord := kernel.NewKBO(sig)
	var active []*kernel.Clause
	m := NewManager(sig, ord, func() []*kernel.Clause { return active })
	return sig, ord, &active, m
}

func unitEquality(sig *kernel.Signature) *kernel.Clause {
	f := sig.AddFunction("f", 1)
	x := sig.NewVar(0)
	lit := sig.NewEquality(true, sig.NewTerm(f, x), x)
	return sig.NewClause([]*kernel.Literal{lit}, kernel.InputInference())
}

func TestManagerSharesIndices(t *testing.T) {
	_, _, _, m := managerFixture()

	i1 := m.Request(DemodulationLHSKind)
	i2 := m.Request(DemodulationLHSKind)
	assert.Same(t, i1, i2, "the same kind is shared between clients")
	assert.True(t, m.Live(DemodulationLHSKind))

	m.Release(DemodulationLHSKind)
	assert.True(t, m.Live(DemodulationLHSKind), "still referenced by the second client")
	m.Release(DemodulationLHSKind)
	assert.False(t, m.Live(DemodulationLHSKind), "destroyed on last release")
}

func TestManagerBackfillsLateIndices(t *testing.T) {
	sig, _, active, m := managerFixture()
	c := unitEquality(sig)
	*active = append(*active, c)

	// requested after c became active: the index must already contain c
	idx := m.Request(DemodulationLHSKind).(*DemodulationLHSIndex)
	defer m.Release(DemodulationLHSKind)

	it := idx.GetGeneralizations(rewritableTerm(sig))
	require.True(t, it.HasNext())
	assert.Same(t, c, it.Next().Data.Clause)
}

// rewritableTerm builds f(a), an instance of the indexed side f(X) of the
// test equality f(X) = X.
func rewritableTerm(sig *kernel.Signature) *kernel.Term {
	f := sig.AddFunction("f", 1)
	a := sig.NewTerm(sig.AddFunction("a", 0))
	return sig.NewTerm(f, a)
}

func TestManagerMaintainsCoherence(t *testing.T) {
	sig, _, _, m := managerFixture()
	idx := m.Request(DemodulationLHSKind).(*DemodulationLHSIndex)
	defer m.Release(DemodulationLHSKind)

	c := unitEquality(sig)
	lhs := rewritableTerm(sig)

	m.OnActiveAdded(c)
	it := idx.GetGeneralizations(lhs)
	require.True(t, it.HasNext(), "entries present while active")

	m.OnActiveRemoved(c)
	it = idx.GetGeneralizations(lhs)
	assert.False(t, it.HasNext(), "no entries after removal from Active")
}

func TestManagerReleaseWithoutRequestPanics(t *testing.T) {
	_, _, _, m := managerFixture()
	assert.Panics(t, func() { m.Release(FwSubsumptionKind) })
}
