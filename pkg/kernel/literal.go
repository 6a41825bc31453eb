package kernel

import "strings"

// Literal is a shared predicate application with a polarity bit. Equality
// literals are normalised at construction so that the two argument orders of
// s = t collide on the same shared literal; neither side is canonically the
// left one.
type Literal struct {
	predicate int
	positive  bool
	args      []*Term

	sig *Signature

	id     uint32
	weight int
	ground bool
	hash   uint64

	// Cached result of Ordering.EqualityArgumentOrder. The cache refers to
	// the argument order as stored, which for shared literals is fixed.
	eqOrder      Result
	eqOrderKnown bool
}

type litKey struct {
	predicate int
	positive  bool
	args      string
}

// NewLiteral returns the shared literal for predicate p with the given
// polarity and arguments. Equality literals are routed through NewEquality.
func (s *Signature) NewLiteral(p int, positive bool, args ...*Term) *Literal {
	if p == EqualityPredicate {
		if len(args) != 2 {
			panicInvariant("equality applied to %d arguments", len(args))
		}
		return s.NewEquality(positive, args[0], args[1])
	}
	if s.preds[p].Arity != len(args) {
		panicInvariant("arity mismatch for %s/%d applied to %d arguments",
			s.preds[p].Name, s.preds[p].Arity, len(args))
	}
	return s.internLiteral(p, positive, args)
}

// NewEquality returns the shared (dis)equality literal over l and r. The
// argument order is normalised by term identity, so NewEquality(pos, l, r)
// and NewEquality(pos, r, l) return the same literal.
func (s *Signature) NewEquality(positive bool, l, r *Term) *Literal {
	if l.id > r.id {
		l, r = r, l
	}
	return s.internLiteral(EqualityPredicate, positive, []*Term{l, r})
}

func (s *Signature) internLiteral(p int, positive bool, args []*Term) *Literal {
	k := litKey{predicate: p, positive: positive, args: argsKey(args)}
	if l, ok := s.lits[k]; ok {
		return l
	}
	l := &Literal{
		predicate: p,
		positive:  positive,
		args:      args,
		sig:       s,
		id:        s.nextLitID,
		weight:    1,
		ground:    true,
		hash:      hashLiteral(p, positive, args),
	}
	s.nextLitID++
	for _, a := range args {
		l.weight += a.weight
		if !a.ground {
			l.ground = false
		}
	}
	s.lits[k] = l
	return l
}

// Predicate returns the predicate number.
func (l *Literal) Predicate() int { return l.predicate }

// Positive reports the literal's polarity.
func (l *Literal) Positive() bool { return l.positive }

// Negative reports whether the literal is negated.
func (l *Literal) Negative() bool { return !l.positive }

// Args returns the argument terms. Callers must not mutate the slice.
func (l *Literal) Args() []*Term { return l.args }

// Arity returns the number of arguments.
func (l *Literal) Arity() int { return len(l.args) }

// IsEquality reports whether the literal is a (dis)equality.
func (l *Literal) IsEquality() bool { return l.predicate == EqualityPredicate }

// Weight returns the cached symbol-count weight.
func (l *Literal) Weight() int { return l.weight }

// Ground reports whether the literal contains no variables.
func (l *Literal) Ground() bool { return l.ground }

// Hash returns the cached structural hash.
func (l *Literal) Hash() uint64 { return l.hash }

// ID returns the literal's bank-unique identifier.
func (l *Literal) ID() uint32 { return l.id }

// Negated returns the shared literal with the opposite polarity.
func (l *Literal) Negated() *Literal {
	return l.sig.internLiteral(l.predicate, !l.positive, l.args)
}

// ComplementaryTo reports whether l and m form a complementary pair.
func (l *Literal) ComplementaryTo(m *Literal) bool {
	return l.predicate == m.predicate && l.positive != m.positive &&
		argsEqual(l.args, m.args)
}

func argsEqual(a, b []*Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// EqualityArgumentSort returns the sort of the equality's arguments; it
// panics on non-equality literals.
func (l *Literal) EqualityArgumentSort() *Term {
	if !l.IsEquality() {
		panicInvariant("EqualityArgumentSort on non-equality literal %s", l)
	}
	return l.args[0].Sort()
}

// OtherEqualitySide returns the side of the equality other than side.
func (l *Literal) OtherEqualitySide(side *Term) *Term {
	if l.args[0] == side {
		return l.args[1]
	}
	return l.args[0]
}

// IsEqTautology reports whether the literal has the form t = t.
func (l *Literal) IsEqTautology() bool {
	return l.IsEquality() && l.positive && l.args[0] == l.args[1]
}

// ReplaceSubterm returns the literal with every occurrence of from replaced
// by to in its arguments.
func (l *Literal) ReplaceSubterm(from, to *Term) *Literal {
	args := make([]*Term, len(l.args))
	changed := false
	for i, a := range l.args {
		args[i] = a.ReplaceSubterm(from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return l
	}
	if l.IsEquality() {
		return l.sig.NewEquality(l.positive, args[0], args[1])
	}
	return l.sig.internLiteral(l.predicate, l.positive, args)
}

func (l *Literal) String() string {
	var b strings.Builder
	if l.IsEquality() {
		l.args[0].print(&b)
		if l.positive {
			b.WriteString(" = ")
		} else {
			b.WriteString(" != ")
		}
		l.args[1].print(&b)
		return b.String()
	}
	if !l.positive {
		b.WriteByte('~')
	}
	b.WriteString(l.sig.predicateName(l.predicate))
	if len(l.args) > 0 {
		b.WriteByte('(')
		for i, a := range l.args {
			if i > 0 {
				b.WriteByte(',')
			}
			a.print(&b)
		}
		b.WriteByte(')')
	}
	return b.String()
}

func hashLiteral(p int, positive bool, args []*Term) uint64 {
	h := mix(hashSeed, uint64(p)+0x200)
	if positive {
		h = mix(h, 1)
	}
	for _, a := range args {
		h = mix(h, a.hash)
	}
	return h
}
