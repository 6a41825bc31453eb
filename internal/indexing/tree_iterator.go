package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// RetrievalMode selects which entries a query retrieves.
type RetrievalMode int8

const (
	// RetrieveUnifications yields entries unifiable with the query.
	RetrieveUnifications RetrievalMode = iota
	// RetrieveGeneralizations yields entries that match onto the query.
	RetrieveGeneralizations
	// RetrieveInstances yields entries the query matches onto.
	RetrieveInstances
	// RetrieveVariants yields entries equal to the query up to renaming.
	RetrieveVariants
)

func (m RetrievalMode) bindMode() kernel.BindMode {
	switch m {
	case RetrieveUnifications:
		return kernel.BindBoth
	case RetrieveInstances:
		return kernel.BindQuery
	default:
		return kernel.BindResult
	}
}

// QueryResult is one retrieval hit: the entry's leaf data and the result
// substitution relating it to the query. The substitution is owned by the
// iterator and is only valid until the iterator advances.
type QueryResult struct {
	Data         LeafData
	Substitution ResultSubstitution
}

// ResultIterator is a lazy, restartable, single-owner stream of query
// results, produced in depth-first tree order.
type ResultIterator interface {
	HasNext() bool
	Next() QueryResult
}

type frame struct {
	n    *node
	next int
	mark int
}

type treeIterator struct {
	tree  *SubstitutionTree
	query []*kernel.Term
	mode  RetrievalMode

	subst   *kernel.RobSubstitution
	stack   []frame
	leaf    *node
	leafPos int

	current QueryResult
	ready   bool
	done    bool
}

// Retrieve returns an iterator over the entries selected by mode for the
// given query tuple. A well-formed query always yields a (possibly empty)
// iterator.
func (t *SubstitutionTree) Retrieve(mode RetrievalMode, query []*kernel.Term) ResultIterator {
	it := &treeIterator{tree: t, query: query, mode: mode}
	it.Reset()
	return it
}

// Reset restarts the iteration from the beginning.
func (it *treeIterator) Reset() {
	it.subst = kernel.NewRobSubstitution(it.tree.sig)
	for i, q := range it.query {
		it.subst.BindSpecial(i, q, kernel.QueryBank)
	}
	it.stack = it.stack[:0]
	it.leaf = nil
	it.ready = false
	it.done = false
	root := it.tree.root
	if root.childVar < 0 {
		it.leaf = root
		it.leafPos = 0
	} else {
		it.stack = append(it.stack, frame{n: root, mark: it.subst.Mark()})
	}
}

func (it *treeIterator) HasNext() bool {
	if it.done {
		return false
	}
	if !it.ready {
		it.advance()
	}
	return it.ready
}

func (it *treeIterator) Next() QueryResult {
	if !it.HasNext() {
		panic("Next on exhausted index iterator")
	}
	it.ready = false
	return it.current
}

func (it *treeIterator) advance() {
	for {
		if it.leaf != nil {
			for it.leafPos < len(it.leaf.entries) {
				e := it.leaf.entries[it.leafPos]
				it.leafPos++
				if it.mode == RetrieveVariants && !it.subst.IsRenamingOn(kernel.ResultBank) {
					continue
				}
				it.current = QueryResult{
					Data: e.data,
					Substitution: &treeResultSubstitution{
						sig:   it.tree.sig,
						subst: it.subst,
						norm:  e.norm,
					},
				}
				it.ready = true
				return
			}
			it.leaf = nil
		}
		if len(it.stack) == 0 {
			it.done = true
			return
		}
		f := &it.stack[len(it.stack)-1]
		descended := false
		for f.next < len(f.n.children) {
			c := f.n.children[f.next]
			f.next++
			it.subst.BacktrackTo(f.mark)
			sv := it.tree.sig.NewSpecialVar(f.n.childVar)
			if !it.subst.Associate(sv, kernel.QueryBank, c.term, kernel.ResultBank, it.mode.bindMode()) {
				continue
			}
			if c.childVar < 0 {
				if len(c.entries) == 0 {
					continue
				}
				it.leaf = c
				it.leafPos = 0
			} else {
				it.stack = append(it.stack, frame{n: c, mark: it.subst.Mark()})
			}
			descended = true
			break
		}
		if !descended {
			it.subst.BacktrackTo(f.mark)
			it.stack = it.stack[:len(it.stack)-1]
		}
	}
}
