package saturation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inpefess/vampire/pkg/kernel"
)

// TerminationReason classifies how a saturation run ended.
type TerminationReason int

const (
	// Refutation: the empty clause was derived; the input is
	// unsatisfiable.
	Refutation TerminationReason = iota
	// Satisfiable: the passive set drained under a complete strategy.
	Satisfiable
	// Unknown: the search ended without a verdict (incomplete strategy or
	// activation limit).
	Unknown
	// TimeLimit: the time budget was exhausted between clauses.
	TimeLimit
	// MemoryLimit: the memory budget was exhausted between clauses.
	MemoryLimit
)

func (r TerminationReason) String() string {
	switch r {
	case Refutation:
		return "REFUTATION"
	case Satisfiable:
		return "SATISFIABLE"
	case Unknown:
		return "UNKNOWN"
	case TimeLimit:
		return "TIME_LIMIT"
	case MemoryLimit:
		return "MEMORY_LIMIT"
	}
	return fmt.Sprintf("TERMINATION(%d)", int(r))
}

// Result is the outcome of one saturation run.
type Result struct {
	Reason TerminationReason
	// Empty is the derived empty clause when Reason is Refutation.
	Empty *kernel.Clause

	Activations int
	Generated   int
}

// ProofStep is one clause of a refutation listing.
type ProofStep struct {
	Clause *kernel.Clause
}

// Proof is the refutation DAG rooted at the empty clause, listed in clause
// id order so parents precede children.
type Proof struct {
	Steps []ProofStep
}

// Proof extracts the refutation DAG; nil unless a refutation was found.
func (r Result) Proof() *Proof {
	if r.Reason != Refutation || r.Empty == nil {
		return nil
	}
	seen := make(map[uint32]*kernel.Clause)
	var walk func(c *kernel.Clause)
	walk = func(c *kernel.Clause) {
		if _, ok := seen[c.ID()]; ok {
			return
		}
		seen[c.ID()] = c
		for _, p := range c.Inference().Parents {
			walk(p)
		}
	}
	walk(r.Empty)
	clauses := make([]*kernel.Clause, 0, len(seen))
	for _, c := range seen {
		clauses = append(clauses, c)
	}
	sort.Slice(clauses, func(i, j int) bool { return clauses[i].ID() < clauses[j].ID() })
	p := &Proof{Steps: make([]ProofStep, len(clauses))}
	for i, c := range clauses {
		p.Steps[i] = ProofStep{Clause: c}
	}
	return p
}

func (p *Proof) String() string {
	var b strings.Builder
	for _, s := range p.Steps {
		c := s.Clause
		inf := c.Inference()
		fmt.Fprintf(&b, "[%d] %s <- %s", c.ID(), c, inf.Rule)
		if len(inf.Parents) > 0 {
			ids := make([]string, len(inf.Parents))
			for i, par := range inf.Parents {
				ids[i] = fmt.Sprintf("%d", par.ID())
			}
			fmt.Fprintf(&b, "(%s)", strings.Join(ids, ","))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
