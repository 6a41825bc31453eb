// Package kernel implements the shared first-order term model used by the
// saturation engine: hash-consed terms and literals, clauses with inference
// records, the simplification ordering, and Robinson substitutions over
// independent variable banks.
package kernel

import "fmt"

// EqualityPredicate is the predicate number reserved for the built-in
// equality predicate in every Signature.
const EqualityPredicate = 0

// Symbol describes one function or predicate symbol.
type Symbol struct {
	Name  string
	Arity int
}

type symKey struct {
	name  string
	arity int
}

// Signature owns the symbol tables, the shared-term bank and the clause id
// counter for one problem. Terms and literals built through the same
// Signature are hash-consed: structural equality coincides with pointer
// identity. The bank only grows; terms are never released individually.
type Signature struct {
	funcs     []Symbol
	preds     []Symbol
	funcIndex map[symKey]int
	predIndex map[symKey]int

	terms map[termKey]*Term
	lits  map[litKey]*Literal

	sortIndividual *Term

	nextTermID   uint32
	nextLitID    uint32
	nextClauseID uint32
}

// NewSignature returns an empty signature. Predicate 0 is pre-registered as
// the equality predicate.
func NewSignature() *Signature {
	s := &Signature{
		funcIndex: make(map[symKey]int),
		predIndex: make(map[symKey]int),
		terms:     make(map[termKey]*Term),
		lits:      make(map[litKey]*Literal),
	}
	s.preds = append(s.preds, Symbol{Name: "=", Arity: 2})
	s.predIndex[symKey{"=", 2}] = EqualityPredicate
	// The single individual sort. Symbols are monomorphic; the sort is
	// modelled as a shared term so that sort matching can reuse the
	// ordinary substitution machinery.
	s.sortIndividual = s.NewTerm(s.AddFunction("$i", 0))
	return s
}

// AddFunction registers a function symbol and returns its functor number.
// Registering the same name/arity pair twice returns the original number.
func (s *Signature) AddFunction(name string, arity int) int {
	k := symKey{name, arity}
	if f, ok := s.funcIndex[k]; ok {
		return f
	}
	f := len(s.funcs)
	s.funcs = append(s.funcs, Symbol{Name: name, Arity: arity})
	s.funcIndex[k] = f
	return f
}

// AddPredicate registers a predicate symbol and returns its predicate number.
func (s *Signature) AddPredicate(name string, arity int) int {
	k := symKey{name, arity}
	if p, ok := s.predIndex[k]; ok {
		return p
	}
	p := len(s.preds)
	s.preds = append(s.preds, Symbol{Name: name, Arity: arity})
	s.predIndex[k] = p
	return p
}

// Function returns the symbol registered under functor f.
func (s *Signature) Function(f int) Symbol { return s.funcs[f] }

// Predicate returns the symbol registered under predicate number p.
func (s *Signature) Predicate(p int) Symbol { return s.preds[p] }

// Functions returns the number of registered function symbols.
func (s *Signature) Functions() int { return len(s.funcs) }

// Predicates returns the number of registered predicate symbols.
func (s *Signature) Predicates() int { return len(s.preds) }

// SortIndividual returns the shared term standing for the individual sort.
func (s *Signature) SortIndividual() *Term { return s.sortIndividual }

func (s *Signature) functionName(f int) string {
	if f < 0 || f >= len(s.funcs) {
		return fmt.Sprintf("f%d", f)
	}
	return s.funcs[f].Name
}

func (s *Signature) predicateName(p int) string {
	if p < 0 || p >= len(s.preds) {
		return fmt.Sprintf("p%d", p)
	}
	return s.preds[p].Name
}
