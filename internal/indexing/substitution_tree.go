// Package indexing implements the term and literal indices of the
// saturation engine: a substitution tree supporting unification, matching,
// instance and variant retrieval, the concrete index kinds built on it, and
// the reference-counted index manager.
package indexing

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// LeafData is the payload of one index entry: the clause, the indexed
// literal, and, for term indices, the indexed term.
type LeafData struct {
	Clause  *kernel.Clause
	Literal *kernel.Literal
	Term    *kernel.Term
}

// entry pairs the leaf data with the insertion renaming; the renaming is
// needed to interpret the stored bindings against the original terms.
type entry struct {
	data LeafData
	norm map[int]int
}

// node is a substitution-tree node. The incoming edge binds the parent's
// child variable to term. Inner nodes name the special variable their
// children resolve next; leaves (childVar < 0) carry the entries.
type node struct {
	term     *kernel.Term
	childVar int
	children []*node
	entries  []entry
}

func (n *node) findChild(tt *kernel.Term) *node {
	for _, c := range n.children {
		if tt.IsVar() {
			if c.term == tt {
				return c
			}
		} else if !c.term.IsVar() && c.term.Functor() == tt.Functor() {
			return c
		}
	}
	return nil
}

func (n *node) removeChild(c *node) {
	for i, cc := range n.children {
		if cc == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			return
		}
	}
}

// SubstitutionTree is a discrimination index over tuples of terms. Each
// edge binds one tree special variable to a one-symbol sub-pattern whose
// argument positions are fresh special variables; entries that differ only
// by variable renaming collide on the same path. The tree is a multiset:
// inserting a variant of an existing entry creates a distinct leaf entry.
//
// The tree is not safe for mutation during iteration; callers that need to
// mutate while retrieving must buffer the mutation.
type SubstitutionTree struct {
	sig         *kernel.Signature
	arity       int
	root        *node
	nextSpecial int
	size        int
}

// NewSubstitutionTree returns an empty tree over term tuples of the given
// arity.
func NewSubstitutionTree(sig *kernel.Signature, arity int) *SubstitutionTree {
	cv := 0
	if arity == 0 {
		cv = -1
	}
	return &SubstitutionTree{
		sig:         sig,
		arity:       arity,
		root:        &node{childVar: cv},
		nextSpecial: arity,
	}
}

// Size returns the number of stored entries.
func (t *SubstitutionTree) Size() int { return t.size }

func minKey(m map[int]*kernel.Term) int {
	first := true
	min := 0
	for k := range m {
		if first || k < min {
			min = k
			first = false
		}
	}
	return min
}

// Insert stores the entry reachable through the normalised argument tuple.
// norm is the renaming that normalised the entry (original variable number
// to normalised number).
func (t *SubstitutionTree) Insert(args []*kernel.Term, data LeafData, norm map[int]int) {
	if len(args) != t.arity {
		panic("substitution tree arity mismatch")
	}
	t.size++
	bind := make(map[int]*kernel.Term, len(args))
	for i, a := range args {
		bind[i] = a
	}
	cur := t.root
	for cur.childVar >= 0 {
		v := cur.childVar
		tt := bind[v]
		delete(bind, v)
		child := cur.findChild(tt)
		if child == nil {
			child = &node{term: t.skeleton(tt), childVar: -1}
			cur.children = append(cur.children, child)
		}
		if !tt.IsVar() {
			for i, sa := range child.term.Args() {
				bind[sa.VarNum()] = tt.Args()[i]
			}
		}
		if len(bind) > 0 && child.childVar < 0 {
			child.childVar = minKey(bind)
		}
		cur = child
	}
	cur.entries = append(cur.entries, entry{data: data, norm: norm})
}

// skeleton returns the one-symbol pattern for tt: the variable itself, or
// its head symbol applied to fresh special variables.
func (t *SubstitutionTree) skeleton(tt *kernel.Term) *kernel.Term {
	if tt.IsVar() {
		return tt
	}
	args := make([]*kernel.Term, tt.Arity())
	for i := range args {
		args[i] = t.sig.NewSpecialVar(t.nextSpecial)
		t.nextSpecial++
	}
	return t.sig.NewTerm(tt.Functor(), args...)
}

// Remove deletes one entry with the given normalised argument tuple and
// leaf data, pruning emptied nodes. It reports whether an entry was found.
func (t *SubstitutionTree) Remove(args []*kernel.Term, data LeafData) bool {
	bind := make(map[int]*kernel.Term, len(args))
	for i, a := range args {
		bind[i] = a
	}
	path := []*node{t.root}
	cur := t.root
	for cur.childVar >= 0 {
		v := cur.childVar
		tt := bind[v]
		delete(bind, v)
		child := cur.findChild(tt)
		if child == nil {
			return false
		}
		if !tt.IsVar() {
			for i, sa := range child.term.Args() {
				bind[sa.VarNum()] = tt.Args()[i]
			}
		}
		path = append(path, child)
		cur = child
	}
	found := false
	for i := range cur.entries {
		if cur.entries[i].data == data {
			cur.entries = append(cur.entries[:i], cur.entries[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}
	t.size--
	for i := len(path) - 1; i >= 1; i-- {
		n := path[i]
		if len(n.entries) > 0 || len(n.children) > 0 {
			break
		}
		path[i-1].removeChild(n)
	}
	return true
}
