package inferences

import (
	"github.com/inpefess/vampire/pkg/kernel"
)

// DuplicateLiteralRemoval deletes repeated occurrences of a literal.
// Literals are shared, so duplication is pointer equality.
type DuplicateLiteralRemoval struct {
	sig *kernel.Signature
}

// NewDuplicateLiteralRemoval returns the duplicate-literal simplifier.
func NewDuplicateLiteralRemoval(sig *kernel.Signature) *DuplicateLiteralRemoval {
	return &DuplicateLiteralRemoval{sig: sig}
}

func (e *DuplicateLiteralRemoval) Simplify(c *kernel.Clause) *kernel.Clause {
	seen := make(map[*kernel.Literal]bool, c.Len())
	kept := make([]*kernel.Literal, 0, c.Len())
	for _, l := range c.Literals() {
		if seen[l] {
			continue
		}
		seen[l] = true
		kept = append(kept, l)
	}
	if len(kept) == c.Len() {
		return c
	}
	return e.sig.NewClause(kept, kernel.NewInference(kernel.RuleDuplicateLiteralRemoval, c))
}

// TrivialInequalityRemoval drops literals of the form t != t.
type TrivialInequalityRemoval struct {
	sig *kernel.Signature
}

// NewTrivialInequalityRemoval returns the trivial-inequality simplifier.
func NewTrivialInequalityRemoval(sig *kernel.Signature) *TrivialInequalityRemoval {
	return &TrivialInequalityRemoval{sig: sig}
}

func (e *TrivialInequalityRemoval) Simplify(c *kernel.Clause) *kernel.Clause {
	kept := make([]*kernel.Literal, 0, c.Len())
	for _, l := range c.Literals() {
		if l.IsEquality() && l.Negative() && l.Args()[0] == l.Args()[1] {
			continue
		}
		kept = append(kept, l)
	}
	if len(kept) == c.Len() {
		return c
	}
	return e.sig.NewClause(kept, kernel.NewInference(kernel.RuleTrivialInequalityRemoval, c))
}

// TautologyDeletion discards clauses containing a complementary literal
// pair or a literal t = t. It serves both as an immediate simplifier and as
// a stateless forward simplifier, so it can appear in either chain.
type TautologyDeletion struct{}

// NewTautologyDeletion returns the tautology-deletion rule.
func NewTautologyDeletion() *TautologyDeletion {
	return &TautologyDeletion{}
}

func isTautology(c *kernel.Clause) bool {
	seen := make(map[*kernel.Literal]bool, c.Len())
	for _, l := range c.Literals() {
		if l.IsEqTautology() {
			return true
		}
		if seen[l.Negated()] {
			return true
		}
		seen[l] = true
	}
	return false
}

func (e *TautologyDeletion) Simplify(c *kernel.Clause) *kernel.Clause {
	if isTautology(c) {
		return nil
	}
	return c
}

// Attach implements the forward-simplification role; tautology deletion
// needs no search state.
func (e *TautologyDeletion) Attach(State) {}

// Detach implements the forward-simplification role.
func (e *TautologyDeletion) Detach() {}

// Perform deletes tautologies from the forward-simplification chain.
func (e *TautologyDeletion) Perform(c *kernel.Clause) (*kernel.Clause, []*kernel.Clause, bool) {
	if isTautology(c) {
		return nil, nil, true
	}
	return nil, nil, false
}
