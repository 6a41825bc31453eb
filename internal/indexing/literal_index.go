package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

type litRootKey struct {
	predicate int
	positive  bool
}

// LiteralIndexingStructure stores (literal, clause) pairs keyed by the
// literal, bucketed by predicate and polarity, with the four retrieval
// modes. Equality literal queries are tried under both argument orders.
type LiteralIndexingStructure struct {
	sig   *kernel.Signature
	trees map[litRootKey]*SubstitutionTree
	size  int
}

// NewLiteralIndexingStructure returns an empty literal index.
func NewLiteralIndexingStructure(sig *kernel.Signature) *LiteralIndexingStructure {
	return &LiteralIndexingStructure{sig: sig, trees: make(map[litRootKey]*SubstitutionTree)}
}

// Size returns the number of stored entries.
func (s *LiteralIndexingStructure) Size() int { return s.size }

func (s *LiteralIndexingStructure) key(lit *kernel.Literal, complementary bool) litRootKey {
	pos := lit.Positive()
	if complementary {
		pos = !pos
	}
	return litRootKey{predicate: lit.Predicate(), positive: pos}
}

// Insert adds the pair to the index.
func (s *LiteralIndexingStructure) Insert(lit *kernel.Literal, c *kernel.Clause) {
	k := s.key(lit, false)
	tree, ok := s.trees[k]
	if !ok {
		tree = NewSubstitutionTree(s.sig, lit.Arity())
		s.trees[k] = tree
	}
	ren := kernel.NewRenaming(s.sig)
	ren.NormalizeLiteral(lit)
	nl := ren.ApplyLiteral(lit)
	tree.Insert(nl.Args(), LeafData{Clause: c, Literal: lit}, ren.Mapping())
	s.size++
}

// Remove deletes one matching pair from the index.
func (s *LiteralIndexingStructure) Remove(lit *kernel.Literal, c *kernel.Clause) bool {
	tree, ok := s.trees[s.key(lit, false)]
	if !ok {
		return false
	}
	ren := kernel.NewRenaming(s.sig)
	ren.NormalizeLiteral(lit)
	nl := ren.ApplyLiteral(lit)
	if !tree.Remove(nl.Args(), LeafData{Clause: c, Literal: lit}) {
		return false
	}
	s.size--
	return true
}

func (s *LiteralIndexingStructure) retrieve(mode RetrievalMode, lit *kernel.Literal, complementary bool) ResultIterator {
	tree, ok := s.trees[s.key(lit, complementary)]
	if !ok {
		return EmptyResultIterator()
	}
	it := tree.Retrieve(mode, lit.Args())
	if !lit.IsEquality() {
		return it
	}
	swapped := []*kernel.Term{lit.Args()[1], lit.Args()[0]}
	return ChainResultIterators(it, tree.Retrieve(mode, swapped))
}

// GetUnifications yields entries unifiable with lit, or with its complement.
func (s *LiteralIndexingStructure) GetUnifications(lit *kernel.Literal, complementary bool) ResultIterator {
	return s.retrieve(RetrieveUnifications, lit, complementary)
}

// GetGeneralizations yields entries that match onto lit.
func (s *LiteralIndexingStructure) GetGeneralizations(lit *kernel.Literal, complementary bool) ResultIterator {
	return s.retrieve(RetrieveGeneralizations, lit, complementary)
}

// GetInstances yields entries that are instances of lit.
func (s *LiteralIndexingStructure) GetInstances(lit *kernel.Literal, complementary bool) ResultIterator {
	return s.retrieve(RetrieveInstances, lit, complementary)
}

// GetVariants yields entries equal to lit up to renaming.
func (s *LiteralIndexingStructure) GetVariants(lit *kernel.Literal, complementary bool) ResultIterator {
	return s.retrieve(RetrieveVariants, lit, complementary)
}
