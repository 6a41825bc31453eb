package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// Index maintains entries for activated clauses. Handle is called once per
// clause on activation (insert) and on removal from Active; a clause has
// entries in an index exactly while it is active.
type Index interface {
	Handle(c *kernel.Clause, insert bool)
}

// demodulationSides returns the sides of a unit equality usable as rewrite
// left-hand sides: the greater side when the equality is preordered, both
// sides when the sides are incomparable, none for t = t.
func demodulationSides(ord kernel.Ordering, lit *kernel.Literal) []*kernel.Term {
	switch ord.EqualityArgumentOrder(lit) {
	case kernel.Greater:
		return []*kernel.Term{lit.Args()[0]}
	case kernel.Less:
		return []*kernel.Term{lit.Args()[1]}
	case kernel.Incomparable:
		return []*kernel.Term{lit.Args()[0], lit.Args()[1]}
	}
	return nil
}

// DemodulationLHSIndex indexes the usable left-hand sides of unit positive
// equalities in Active; forward demodulation queries it for
// generalisations.
type DemodulationLHSIndex struct {
	is  *TermIndexingStructure
	ord kernel.Ordering
}

// NewDemodulationLHSIndex returns an empty demodulation LHS index.
func NewDemodulationLHSIndex(sig *kernel.Signature, ord kernel.Ordering) *DemodulationLHSIndex {
	return &DemodulationLHSIndex{is: NewTermIndexingStructure(sig), ord: ord}
}

func (i *DemodulationLHSIndex) Handle(c *kernel.Clause, insert bool) {
	if !c.IsUnitEquality() {
		return
	}
	lit := c.Literals()[0]
	for _, side := range demodulationSides(i.ord, lit) {
		if insert {
			i.is.Insert(side, lit, c)
		} else {
			i.is.Remove(side, lit, c)
		}
	}
}

// GetGeneralizations yields stored equality sides matching onto t.
func (i *DemodulationLHSIndex) GetGeneralizations(t *kernel.Term) ResultIterator {
	return i.is.GetGeneralizations(t)
}

// DemodulationSubtermIndex indexes every non-variable subterm of every
// literal of active clauses; backward demodulation queries it for
// instances of a new equality's left-hand side.
type DemodulationSubtermIndex struct {
	is *TermIndexingStructure
}

// NewDemodulationSubtermIndex returns an empty demoduland index.
func NewDemodulationSubtermIndex(sig *kernel.Signature) *DemodulationSubtermIndex {
	return &DemodulationSubtermIndex{is: NewTermIndexingStructure(sig)}
}

func (i *DemodulationSubtermIndex) Handle(c *kernel.Clause, insert bool) {
	for _, lit := range c.Literals() {
		it := kernel.NewSubtermIterator(lit)
		for it.HasNext() {
			t := it.Next()
			if insert {
				i.is.Insert(t, lit, c)
			} else {
				i.is.Remove(t, lit, c)
			}
		}
	}
}

// GetInstances yields stored subterms that are instances of t.
func (i *DemodulationSubtermIndex) GetInstances(t *kernel.Term) ResultIterator {
	return i.is.GetInstances(t)
}

// SuperpositionSubtermIndex indexes the non-variable subterms of the
// selected literals of active clauses.
type SuperpositionSubtermIndex struct {
	is *TermIndexingStructure
}

// NewSuperpositionSubtermIndex returns an empty superposition subterm index.
func NewSuperpositionSubtermIndex(sig *kernel.Signature) *SuperpositionSubtermIndex {
	return &SuperpositionSubtermIndex{is: NewTermIndexingStructure(sig)}
}

func (i *SuperpositionSubtermIndex) Handle(c *kernel.Clause, insert bool) {
	for _, lit := range c.SelectedLiterals() {
		it := kernel.NewSubtermIterator(lit)
		for it.HasNext() {
			t := it.Next()
			if insert {
				i.is.Insert(t, lit, c)
			} else {
				i.is.Remove(t, lit, c)
			}
		}
	}
}

// GetUnifications yields stored subterms unifiable with t.
func (i *SuperpositionSubtermIndex) GetUnifications(t *kernel.Term) ResultIterator {
	return i.is.GetUnifications(t)
}

// SuperpositionLHSIndex indexes the potentially maximal non-variable sides
// of selected positive equality literals of active clauses.
type SuperpositionLHSIndex struct {
	is  *TermIndexingStructure
	ord kernel.Ordering
}

// NewSuperpositionLHSIndex returns an empty superposition LHS index.
func NewSuperpositionLHSIndex(sig *kernel.Signature, ord kernel.Ordering) *SuperpositionLHSIndex {
	return &SuperpositionLHSIndex{is: NewTermIndexingStructure(sig), ord: ord}
}

func (i *SuperpositionLHSIndex) Handle(c *kernel.Clause, insert bool) {
	for _, lit := range c.SelectedLiterals() {
		if !lit.IsEquality() || !lit.Positive() {
			continue
		}
		for _, side := range superpositionSides(i.ord, lit) {
			if insert {
				i.is.Insert(side, lit, c)
			} else {
				i.is.Remove(side, lit, c)
			}
		}
	}
}

// superpositionSides returns the non-variable sides of a positive equality
// that are not strictly smaller than the other side.
func superpositionSides(ord kernel.Ordering, lit *kernel.Literal) []*kernel.Term {
	var sides []*kernel.Term
	order := ord.EqualityArgumentOrder(lit)
	if order != kernel.Less && !lit.Args()[0].IsVar() {
		sides = append(sides, lit.Args()[0])
	}
	if order != kernel.Greater && !lit.Args()[1].IsVar() {
		sides = append(sides, lit.Args()[1])
	}
	return sides
}

// GetUnifications yields stored equality sides unifiable with t.
func (i *SuperpositionLHSIndex) GetUnifications(t *kernel.Term) ResultIterator {
	return i.is.GetUnifications(t)
}

// BinaryResolutionIndex indexes the selected non-equality literals of
// active clauses for complementary unification queries.
type BinaryResolutionIndex struct {
	is *LiteralIndexingStructure
}

// NewBinaryResolutionIndex returns an empty resolution literal index.
func NewBinaryResolutionIndex(sig *kernel.Signature) *BinaryResolutionIndex {
	return &BinaryResolutionIndex{is: NewLiteralIndexingStructure(sig)}
}

func (i *BinaryResolutionIndex) Handle(c *kernel.Clause, insert bool) {
	for _, lit := range c.SelectedLiterals() {
		if lit.IsEquality() {
			continue
		}
		if insert {
			i.is.Insert(lit, c)
		} else {
			i.is.Remove(lit, c)
		}
	}
}

// GetComplementaryUnifications yields stored literals unifiable with the
// complement of lit.
func (i *BinaryResolutionIndex) GetComplementaryUnifications(lit *kernel.Literal) ResultIterator {
	return i.is.GetUnifications(lit, true)
}

// SubsumptionLiteralIndex indexes every literal of active clauses; forward
// subsumption queries generalisations, backward subsumption instances.
type SubsumptionLiteralIndex struct {
	is *LiteralIndexingStructure
}

// NewSubsumptionLiteralIndex returns an empty subsumption literal index.
func NewSubsumptionLiteralIndex(sig *kernel.Signature) *SubsumptionLiteralIndex {
	return &SubsumptionLiteralIndex{is: NewLiteralIndexingStructure(sig)}
}

func (i *SubsumptionLiteralIndex) Handle(c *kernel.Clause, insert bool) {
	for _, lit := range c.Literals() {
		if insert {
			i.is.Insert(lit, c)
		} else {
			i.is.Remove(lit, c)
		}
	}
}

// GetGeneralizations yields stored literals matching onto lit.
func (i *SubsumptionLiteralIndex) GetGeneralizations(lit *kernel.Literal) ResultIterator {
	return i.is.GetGeneralizations(lit, false)
}

// GetInstances yields stored literals that are instances of lit.
func (i *SubsumptionLiteralIndex) GetInstances(lit *kernel.Literal) ResultIterator {
	return i.is.GetInstances(lit, false)
}
