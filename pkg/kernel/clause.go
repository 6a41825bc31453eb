package kernel

import (
	"fmt"
	"strings"
)

// Store identifies the container currently holding a clause. A clause's
// store tag matches exactly the container that holds it; StoreNone means no
// container holds it.
type Store int8

const (
	StoreNone Store = iota
	StoreUnprocessed
	StorePassive
	StoreActive
	StoreRewritten
)

func (s Store) String() string {
	switch s {
	case StoreNone:
		return "none"
	case StoreUnprocessed:
		return "unprocessed"
	case StorePassive:
		return "passive"
	case StoreActive:
		return "active"
	case StoreRewritten:
		return "rewritten"
	}
	return fmt.Sprintf("store(%d)", int8(s))
}

// Color partitions clauses for proof splitting. Most clauses are
// transparent; left and right clauses may not be combined by an inference.
type Color int8

const (
	ColorTransparent Color = iota
	ColorLeft
	ColorRight
)

// ColorCompatible reports whether clauses of colours a and b may participate
// in a common inference: at most one of them may be non-transparent, unless
// they agree.
func ColorCompatible(a, b Color) bool {
	return a == ColorTransparent || b == ColorTransparent || a == b
}

// Clause is an ordered multiset of literals together with its inference
// record and the bookkeeping the saturation driver relies on. After literal
// selection the selected literals form a prefix of Literals().
type Clause struct {
	id   uint32
	lits []*Literal
	inf  Inference

	age      int
	weight   int
	selected int
	store    Store
	color    Color
}

// NewClause creates a clause over the given literals. Ids are assigned
// monotonically; the age is one more than the maximal parent age, and the
// colour is inherited from the non-transparent parents.
func (s *Signature) NewClause(lits []*Literal, inf Inference) *Clause {
	c := &Clause{
		id:    s.nextClauseID,
		lits:  lits,
		inf:   inf,
		store: StoreNone,
	}
	s.nextClauseID++
	for _, l := range lits {
		c.weight += l.Weight()
	}
	for _, p := range inf.Parents {
		if p.age >= c.age {
			c.age = p.age + 1
		}
		if p.color != ColorTransparent {
			c.color = p.color
		}
	}
	return c
}

// ID returns the clause's monotonically assigned identifier.
func (c *Clause) ID() uint32 { return c.id }

// Literals returns the clause's literals. Callers must not mutate the slice
// except through the literal selector.
func (c *Clause) Literals() []*Literal { return c.lits }

// Len returns the number of literals.
func (c *Clause) Len() int { return len(c.lits) }

// IsEmpty reports whether the clause is the empty clause, i.e. a refutation.
func (c *Clause) IsEmpty() bool { return len(c.lits) == 0 }

// IsUnit reports whether the clause has exactly one literal.
func (c *Clause) IsUnit() bool { return len(c.lits) == 1 }

// IsUnitEquality reports whether the clause is a unit positive equality.
func (c *Clause) IsUnitEquality() bool {
	return len(c.lits) == 1 && c.lits[0].IsEquality() && c.lits[0].Positive()
}

// Inference returns the clause's inference record.
func (c *Clause) Inference() Inference { return c.inf }

// Age returns the proof-search depth of the clause.
func (c *Clause) Age() int { return c.age }

// Weight returns the cached symbol-count weight of the clause.
func (c *Clause) Weight() int { return c.weight }

// Store returns the clause's container tag.
func (c *Clause) Store() Store { return c.store }

// SetStore moves the clause between store tags. Transitions are validated:
// a clause may only be tagged for a container when it is currently in none
// or already carries that same tag.
func (c *Clause) SetStore(s Store) {
	if s != StoreNone && c.store != StoreNone && c.store != s {
		panicInvariant("clause %d moved from %s to %s without release", c.id, c.store, s)
	}
	c.store = s
}

// Color returns the clause's proof-splitting colour.
func (c *Clause) Color() Color { return c.color }

// SetColor assigns the clause's colour; input clauses only.
func (c *Clause) SetColor(col Color) { c.color = col }

// Selected returns the number of selected literals; 0 means selection has
// not run yet.
func (c *Clause) Selected() int { return c.selected }

// SelectedLiterals returns the selected prefix of the clause's literals, or
// all literals when selection has not run.
func (c *Clause) SelectedLiterals() []*Literal {
	if c.selected == 0 {
		return c.lits
	}
	return c.lits[:c.selected]
}

// SetSelection reorders the clause's literals so the literals at the given
// positions come first and records the selection count.
func (c *Clause) SetSelection(positions []int) {
	picked := make(map[int]bool, len(positions))
	for _, i := range positions {
		picked[i] = true
	}
	sel := make([]*Literal, 0, len(c.lits))
	rest := make([]*Literal, 0, len(c.lits))
	for i, l := range c.lits {
		if picked[i] {
			sel = append(sel, l)
		} else {
			rest = append(rest, l)
		}
	}
	c.lits = append(sel, rest...)
	c.selected = len(sel)
}

// ContainsLiteral reports whether lit occurs in the clause.
func (c *Clause) ContainsLiteral(lit *Literal) bool {
	for _, l := range c.lits {
		if l == lit {
			return true
		}
	}
	return false
}

func (c *Clause) String() string {
	if len(c.lits) == 0 {
		return "$false"
	}
	parts := make([]string, len(c.lits))
	for i, l := range c.lits {
		parts[i] = l.String()
	}
	return strings.Join(parts, " | ")
}
