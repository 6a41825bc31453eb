package kernel

// Bank is an independent variable namespace. A substitution over two banks
// can describe the unifier of terms from independently-numbered variable
// pools without renaming either side first.
type Bank int8

const (
	QueryBank  Bank = 0
	ResultBank Bank = 1

	// specialBank holds the tree-internal special variables; they form a
	// single namespace regardless of the bank a term was passed in.
	specialBank Bank = 2
)

// BindMode restricts which ordinary variables an association may bind.
// Special variables are always bindable.
type BindMode int8

const (
	// BindBoth permits binding variables of either bank: full unification.
	BindBoth BindMode = iota
	// BindQuery permits binding only query-bank variables: the result side
	// acts as a pattern instance.
	BindQuery
	// BindResult permits binding only result-bank variables: one-sided
	// matching of the result side onto the query.
	BindResult
)

type varSpec struct {
	num  int
	bank Bank
}

type binding struct {
	term *Term
	bank Bank
}

func specOf(t *Term, b Bank) varSpec {
	if t.special {
		return varSpec{t.vnum, specialBank}
	}
	return varSpec{t.vnum, b}
}

// RobSubstitution is a Robinson-style substitution over banked variables
// with union-find-style binding chains and a trail for backtracking. It is
// the sole state the indexing layer hands to inference rules.
type RobSubstitution struct {
	sig      *Signature
	bindings map[varSpec]binding
	trail    []varSpec

	outputs    map[varSpec]*Term
	nextOutput int
}

// NewRobSubstitution returns an empty substitution over terms of sig.
func NewRobSubstitution(sig *Signature) *RobSubstitution {
	return &RobSubstitution{
		sig:      sig,
		bindings: make(map[varSpec]binding),
		outputs:  make(map[varSpec]*Term),
	}
}

// Reset clears all bindings.
func (s *RobSubstitution) Reset() {
	s.bindings = make(map[varSpec]binding)
	s.trail = s.trail[:0]
	s.clearOutputs()
}

// Mark returns a trail position for a later BacktrackTo.
func (s *RobSubstitution) Mark() int { return len(s.trail) }

// BacktrackTo undoes every binding made since the corresponding Mark.
func (s *RobSubstitution) BacktrackTo(mark int) {
	for len(s.trail) > mark {
		vs := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		delete(s.bindings, vs)
	}
	s.clearOutputs()
}

func (s *RobSubstitution) clearOutputs() {
	if len(s.outputs) > 0 {
		s.outputs = make(map[varSpec]*Term)
	}
	s.nextOutput = 0
}

func (s *RobSubstitution) bind(vs varSpec, t *Term, b Bank) {
	s.bindings[vs] = binding{term: t, bank: b}
	s.trail = append(s.trail, vs)
	s.clearOutputs()
}

// BindSpecial binds special variable n to t in bank b. Used by the term
// indices to seed a retrieval.
func (s *RobSubstitution) BindSpecial(n int, t *Term, b Bank) {
	s.bind(varSpec{n, specialBank}, t, b)
}

// deref follows binding chains until an unbound variable or a non-variable
// term is reached.
func (s *RobSubstitution) deref(t *Term, b Bank) (*Term, Bank) {
	for t.IsVar() {
		bd, ok := s.bindings[specOf(t, b)]
		if !ok {
			return t, b
		}
		t, b = bd.term, bd.bank
	}
	return t, b
}

func (s *RobSubstitution) bindable(vs varSpec, mode BindMode) bool {
	switch vs.bank {
	case specialBank:
		return true
	case QueryBank:
		return mode == BindBoth || mode == BindQuery
	default:
		return mode == BindBoth || mode == BindResult
	}
}

// occurs reports whether the variable vs occurs in t (under b), following
// bindings.
func (s *RobSubstitution) occurs(vs varSpec, t *Term, b Bank) bool {
	t, b = s.deref(t, b)
	if t.IsVar() {
		return specOf(t, b) == vs
	}
	for _, a := range t.args {
		if s.occurs(vs, a, b) {
			return true
		}
	}
	return false
}

// Unify extends the substitution with a most general unifier of t1 and t2.
// On failure the substitution is restored.
func (s *RobSubstitution) Unify(t1 *Term, b1 Bank, t2 *Term, b2 Bank) bool {
	return s.Associate(t1, b1, t2, b2, BindBoth)
}

// Match extends the substitution so that the pattern equals the instance;
// only variables of the pattern's bank may be bound. On failure the
// substitution is restored.
func (s *RobSubstitution) Match(pattern *Term, pb Bank, instance *Term, ib Bank) bool {
	mode := BindResult
	if pb == QueryBank {
		mode = BindQuery
	}
	return s.Associate(pattern, pb, instance, ib, mode)
}

// Associate unifies t1 and t2 subject to the binding restrictions of mode.
// On failure the substitution is restored to its state at entry.
func (s *RobSubstitution) Associate(t1 *Term, b1 Bank, t2 *Term, b2 Bank, mode BindMode) bool {
	m := s.Mark()
	if s.assoc(t1, b1, t2, b2, mode) {
		return true
	}
	s.BacktrackTo(m)
	return false
}

func (s *RobSubstitution) assoc(t1 *Term, b1 Bank, t2 *Term, b2 Bank, mode BindMode) bool {
	t1, b1 = s.deref(t1, b1)
	t2, b2 = s.deref(t2, b2)

	if t1.IsVar() && t2.IsVar() {
		v1, v2 := specOf(t1, b1), specOf(t2, b2)
		if v1 == v2 {
			return true
		}
		switch {
		case s.bindable(v1, mode):
			s.bind(v1, t2, b2)
		case s.bindable(v2, mode):
			s.bind(v2, t1, b1)
		default:
			return false
		}
		return true
	}
	if t1.IsVar() {
		v1 := specOf(t1, b1)
		if !s.bindable(v1, mode) || s.occurs(v1, t2, b2) {
			return false
		}
		s.bind(v1, t2, b2)
		return true
	}
	if t2.IsVar() {
		v2 := specOf(t2, b2)
		if !s.bindable(v2, mode) || s.occurs(v2, t1, b1) {
			return false
		}
		s.bind(v2, t1, b1)
		return true
	}
	if t1.functor != t2.functor {
		return false
	}
	for i := range t1.args {
		if !s.assoc(t1.args[i], b1, t2.args[i], b2, mode) {
			return false
		}
	}
	return true
}

// UnifyLiterals unifies two literals argument-wise. The predicates and
// polarities must already agree (or be complementary; polarity is not
// inspected here).
func (s *RobSubstitution) UnifyLiterals(l1 *Literal, b1 Bank, l2 *Literal, b2 Bank) bool {
	if l1.predicate != l2.predicate {
		return false
	}
	m := s.Mark()
	for i := range l1.args {
		if !s.assoc(l1.args[i], b1, l2.args[i], b2, BindBoth) {
			s.BacktrackTo(m)
			return false
		}
	}
	return true
}

// MatchLiteral matches the pattern literal onto the instance literal,
// binding only pattern-bank variables. For equality literals swap selects
// which argument order is attempted.
func (s *RobSubstitution) MatchLiteral(pattern *Literal, pb Bank, inst *Literal, ib Bank, swap bool) bool {
	if pattern.predicate != inst.predicate || pattern.positive != inst.positive {
		return false
	}
	pa := pattern.args
	ia := inst.args
	if swap {
		if !pattern.IsEquality() {
			return false
		}
		ia = []*Term{ia[1], ia[0]}
	}
	mode := BindResult
	if pb == QueryBank {
		mode = BindQuery
	}
	m := s.Mark()
	for i := range pa {
		if !s.assoc(pa[i], pb, ia[i], ib, mode) {
			s.BacktrackTo(m)
			return false
		}
	}
	return true
}

// Apply dereferences t in bank b to its current normal form as a shared
// term. Unbound variables are mapped to fresh output variables numbered from
// zero in first-use order, so applying to both banks of a unifier yields
// consistently renamed-apart results.
func (s *RobSubstitution) Apply(t *Term, b Bank) *Term {
	t, b = s.deref(t, b)
	if t.IsVar() {
		vs := specOf(t, b)
		out, ok := s.outputs[vs]
		if !ok {
			out = s.sig.NewVar(s.nextOutput)
			s.nextOutput++
			s.outputs[vs] = out
		}
		return out
	}
	if t.ground {
		return t
	}
	args := make([]*Term, len(t.args))
	for i, a := range t.args {
		args[i] = s.Apply(a, b)
	}
	return s.sig.NewTerm(t.functor, args...)
}

// ApplyLiteral applies the substitution to every argument of l in bank b.
func (s *RobSubstitution) ApplyLiteral(l *Literal, b Bank) *Literal {
	args := make([]*Term, len(l.args))
	for i, a := range l.args {
		args[i] = s.Apply(a, b)
	}
	if l.IsEquality() {
		return l.sig.NewEquality(l.positive, args[0], args[1])
	}
	return l.sig.internLiteral(l.predicate, l.positive, args)
}

// IsRenamingOn reports whether the bindings of bank b form a variable
// renaming: every bound variable maps to a distinct unbound variable.
func (s *RobSubstitution) IsRenamingOn(b Bank) bool {
	seen := make(map[varSpec]bool)
	for vs, bd := range s.bindings {
		if vs.bank != b {
			continue
		}
		t, tb := s.deref(bd.term, bd.bank)
		if !t.IsVar() || t.special {
			return false
		}
		img := specOf(t, tb)
		if seen[img] {
			return false
		}
		seen[img] = true
	}
	return true
}
