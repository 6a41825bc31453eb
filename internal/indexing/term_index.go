package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// TermIndexingStructure stores (term, literal, clause) triples keyed by the
// term, with the four substitution-tree retrieval modes.
type TermIndexingStructure struct {
	sig  *kernel.Signature
	tree *SubstitutionTree
}

// NewTermIndexingStructure returns an empty term index.
func NewTermIndexingStructure(sig *kernel.Signature) *TermIndexingStructure {
	return &TermIndexingStructure{sig: sig, tree: NewSubstitutionTree(sig, 1)}
}

// Size returns the number of stored entries.
func (s *TermIndexingStructure) Size() int { return s.tree.Size() }

// normalized computes the insertion renaming. Variables are normalised over
// the whole literal when one is given, so that terms retrieved from the same
// entry (such as the other side of an equality) share the numbering.
func (s *TermIndexingStructure) normalized(t *kernel.Term, lit *kernel.Literal) (*kernel.Term, map[int]int) {
	ren := kernel.NewRenaming(s.sig)
	if lit != nil {
		ren.NormalizeLiteral(lit)
	} else {
		ren.Normalize(t)
	}
	return ren.Apply(t), ren.Mapping()
}

// Insert adds the triple to the index.
func (s *TermIndexingStructure) Insert(t *kernel.Term, lit *kernel.Literal, c *kernel.Clause) {
	nt, norm := s.normalized(t, lit)
	s.tree.Insert([]*kernel.Term{nt}, LeafData{Clause: c, Literal: lit, Term: t}, norm)
}

// Remove deletes one matching triple from the index.
func (s *TermIndexingStructure) Remove(t *kernel.Term, lit *kernel.Literal, c *kernel.Clause) bool {
	nt, _ := s.normalized(t, lit)
	return s.tree.Remove([]*kernel.Term{nt}, LeafData{Clause: c, Literal: lit, Term: t})
}

// GetUnifications yields entries whose term is unifiable with t.
func (s *TermIndexingStructure) GetUnifications(t *kernel.Term) ResultIterator {
	return s.tree.Retrieve(RetrieveUnifications, []*kernel.Term{t})
}

// GetGeneralizations yields entries whose term matches onto t.
func (s *TermIndexingStructure) GetGeneralizations(t *kernel.Term) ResultIterator {
	return s.tree.Retrieve(RetrieveGeneralizations, []*kernel.Term{t})
}

// GetInstances yields entries whose term is an instance of t.
func (s *TermIndexingStructure) GetInstances(t *kernel.Term) ResultIterator {
	return s.tree.Retrieve(RetrieveInstances, []*kernel.Term{t})
}

// GetVariants yields entries equal to t up to renaming.
func (s *TermIndexingStructure) GetVariants(t *kernel.Term) ResultIterator {
	return s.tree.Retrieve(RetrieveVariants, []*kernel.Term{t})
}
