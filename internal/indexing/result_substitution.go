package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// ResultSubstitution is the abstract substitution a retrieval hands to an
// inference rule. The rule may apply it to terms of its own (query) bank and
// to terms retrieved from the index's (result) bank; result-side terms are
// the originals stored in the leaf data.
type ResultSubstitution interface {
	ApplyToQuery(t *kernel.Term) *kernel.Term
	ApplyToQueryLiteral(l *kernel.Literal) *kernel.Literal
	ApplyToResult(t *kernel.Term) *kernel.Term
	ApplyToResultLiteral(l *kernel.Literal) *kernel.Literal
	// IsRenamingOnResult reports whether the result side is bound by a
	// variable renaming only, i.e. the entry is matched up to renaming.
	IsRenamingOnResult() bool
}

// treeResultSubstitution interprets the live retrieval substitution through
// the entry's insertion renaming. Valid only until the owning iterator
// advances.
type treeResultSubstitution struct {
	sig   *kernel.Signature
	subst *kernel.RobSubstitution
	norm  map[int]int
}

func (r *treeResultSubstitution) ApplyToQuery(t *kernel.Term) *kernel.Term {
	return r.subst.Apply(t, kernel.QueryBank)
}

func (r *treeResultSubstitution) ApplyToQueryLiteral(l *kernel.Literal) *kernel.Literal {
	return r.subst.ApplyLiteral(l, kernel.QueryBank)
}

func (r *treeResultSubstitution) ApplyToResult(t *kernel.Term) *kernel.Term {
	return r.subst.Apply(r.renameTerm(t), kernel.ResultBank)
}

func (r *treeResultSubstitution) ApplyToResultLiteral(l *kernel.Literal) *kernel.Literal {
	return r.subst.ApplyLiteral(r.renameLiteral(l), kernel.ResultBank)
}

func (r *treeResultSubstitution) IsRenamingOnResult() bool {
	return r.subst.IsRenamingOn(kernel.ResultBank)
}

// renameTerm rewrites an original entry-side term into the normalised
// variable numbering the tree stored it under.
func (r *treeResultSubstitution) renameTerm(t *kernel.Term) *kernel.Term {
	if t.Ground() {
		return t
	}
	if t.IsVar() {
		n, ok := r.norm[t.VarNum()]
		if !ok {
			// A variable outside the insertion renaming cannot be
			// interpreted; keeping it unbound yields a fresh output
			// variable, which is the correct reading.
			return t
		}
		return r.sig.NewVar(n)
	}
	args := make([]*kernel.Term, t.Arity())
	for i, a := range t.Args() {
		args[i] = r.renameTerm(a)
	}
	return r.sig.NewTerm(t.Functor(), args...)
}

func (r *treeResultSubstitution) renameLiteral(l *kernel.Literal) *kernel.Literal {
	args := make([]*kernel.Term, l.Arity())
	for i, a := range l.Args() {
		args[i] = r.renameTerm(a)
	}
	if l.IsEquality() {
		return r.sig.NewEquality(l.Positive(), args[0], args[1])
	}
	return r.sig.NewLiteral(l.Predicate(), l.Positive(), args...)
}

// emptyIterator is the iterator over no results.
type emptyIterator struct{}

func (emptyIterator) HasNext() bool     { return false }
func (emptyIterator) Next() QueryResult { panic("Next on empty index iterator") }

// EmptyResultIterator returns an exhausted iterator.
func EmptyResultIterator() ResultIterator { return emptyIterator{} }

// chainIterator concatenates result iterators.
type chainIterator struct {
	its []ResultIterator
}

func (c *chainIterator) HasNext() bool {
	for len(c.its) > 0 {
		if c.its[0].HasNext() {
			return true
		}
		c.its = c.its[1:]
	}
	return false
}

func (c *chainIterator) Next() QueryResult {
	if !c.HasNext() {
		panic("Next on exhausted chained iterator")
	}
	return c.its[0].Next()
}

// ChainResultIterators concatenates iterators into one stream.
func ChainResultIterators(its ...ResultIterator) ResultIterator {
	return &chainIterator{its: its}
}
