package inferences

import (
	"github.com/inpefess/vampire/internal/indexing"
	"github.com/inpefess/vampire/pkg/kernel"
)

// testState is a minimal saturation state for exercising engines: a
// signature, an ordering, and an index manager over a hand-maintained
// active set.
type testState struct {
	sig    *kernel.Signature
	ord    kernel.Ordering
	imgr   *indexing.Manager
	active []*kernel.Clause
}

func newTestState() *testState {
	st := &testState{sig: kernel.NewSignature()}
	st.ord = kernel.NewKBO(st.sig)
	st.imgr = indexing.NewManager(st.sig, st.ord, func() []*kernel.Clause { return st.active })
	return st
}

func (st *testState) Signature() *kernel.Signature    { return st.sig }
func (st *testState) Ordering() kernel.Ordering       { return st.ord }
func (st *testState) IndexManager() *indexing.Manager { return st.imgr }

// activate runs literal selection and inserts the clause into every live
// index, as the driver would on activation.
func (st *testState) activate(c *kernel.Clause) {
	kernel.NewMaximalSelector(st.ord).Select(c)
	c.SetStore(kernel.StoreActive)
	st.active = append(st.active, c)
	st.imgr.OnActiveAdded(c)
}

func (st *testState) clause(lits ...*kernel.Literal) *kernel.Clause {
	return st.sig.NewClause(lits, kernel.InputInference())
}
