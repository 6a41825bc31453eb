package kernel

import (
	"strings"
)

const varFunctor = -1

// Term is a shared first-order term: either a variable or a function symbol
// applied to shared argument terms. All terms are created through a
// Signature, which hash-conses them; two structurally equal terms are the
// same pointer. Weight, variable counts, groundness and hash are cached at
// construction.
type Term struct {
	functor int
	vnum    int
	special bool
	args    []*Term

	sig *Signature

	id     uint32
	weight int
	vocc   int
	dvars  int
	ground bool
	hash   uint64
}

type termKey struct {
	functor int
	vnum    int
	special bool
	args    string
}

func argsKey(args []*Term) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(4 * len(args))
	for _, a := range args {
		id := a.id
		b.WriteByte(byte(id))
		b.WriteByte(byte(id >> 8))
		b.WriteByte(byte(id >> 16))
		b.WriteByte(byte(id >> 24))
	}
	return b.String()
}

// NewVar returns the shared term for the ordinary variable with number n.
func (s *Signature) NewVar(n int) *Term {
	return s.internVar(n, false)
}

// NewSpecialVar returns the shared term for special variable n. Special
// variables form an independent namespace used internally by the term
// indices; they never occur in clauses.
func (s *Signature) NewSpecialVar(n int) *Term {
	return s.internVar(n, true)
}

func (s *Signature) internVar(n int, special bool) *Term {
	k := termKey{functor: varFunctor, vnum: n, special: special}
	if t, ok := s.terms[k]; ok {
		return t
	}
	t := &Term{
		functor: varFunctor,
		vnum:    n,
		special: special,
		sig:     s,
		id:      s.nextTermID,
		weight:  1,
		vocc:    1,
		dvars:   1,
		hash:    hashVar(n, special),
	}
	s.nextTermID++
	s.terms[k] = t
	return t
}

// NewTerm returns the shared term f(args...). It panics if the arity of f
// does not match len(args), which is a programmer error.
func (s *Signature) NewTerm(f int, args ...*Term) *Term {
	if s.funcs[f].Arity != len(args) {
		panicInvariant("arity mismatch for %s/%d applied to %d arguments",
			s.funcs[f].Name, s.funcs[f].Arity, len(args))
	}
	k := termKey{functor: f, args: argsKey(args)}
	if t, ok := s.terms[k]; ok {
		return t
	}
	t := &Term{
		functor: f,
		args:    args,
		sig:     s,
		id:      s.nextTermID,
		weight:  1,
		ground:  true,
		hash:    hashTerm(f, args),
	}
	s.nextTermID++
	seen := make(map[int]struct{})
	for _, a := range args {
		t.weight += a.weight
		t.vocc += a.vocc
		if !a.ground {
			t.ground = false
		}
		a.collectVars(seen)
	}
	t.dvars = len(seen)
	s.terms[k] = t
	return t
}

func (t *Term) collectVars(seen map[int]struct{}) {
	if t.ground {
		return
	}
	if t.IsVar() {
		seen[t.varKeyNum()] = struct{}{}
		return
	}
	for _, a := range t.args {
		a.collectVars(seen)
	}
}

// varKeyNum folds the special bit into the variable number so ordinary and
// special variables never collide in a plain int key.
func (t *Term) varKeyNum() int {
	if t.special {
		return -t.vnum - 1
	}
	return t.vnum
}

// IsVar reports whether the term is a variable.
func (t *Term) IsVar() bool { return t.functor == varFunctor }

// IsSpecialVar reports whether the term is a tree-internal special variable.
func (t *Term) IsSpecialVar() bool { return t.functor == varFunctor && t.special }

// VarNum returns the variable number; only meaningful for variables.
func (t *Term) VarNum() int { return t.vnum }

// Functor returns the function symbol number; only meaningful for non-variables.
func (t *Term) Functor() int { return t.functor }

// Args returns the argument terms. Callers must not mutate the slice.
func (t *Term) Args() []*Term { return t.args }

// Arity returns the number of arguments.
func (t *Term) Arity() int { return len(t.args) }

// ID returns the term's bank-unique identifier.
func (t *Term) ID() uint32 { return t.id }

// Weight returns the cached symbol-count weight (1 per symbol or variable
// occurrence).
func (t *Term) Weight() int { return t.weight }

// Ground reports whether the term contains no variables.
func (t *Term) Ground() bool { return t.ground }

// NumVarOccs returns the cached number of variable occurrences.
func (t *Term) NumVarOccs() int { return t.vocc }

// NumDistinctVars returns the cached number of distinct variables.
func (t *Term) NumDistinctVars() int { return t.dvars }

// Hash returns the cached structural hash.
func (t *Term) Hash() uint64 { return t.hash }

// Sort returns the result sort of the term. All symbols are monomorphic over
// the individual sort.
func (t *Term) Sort() *Term { return t.sig.sortIndividual }

// ContainsSubterm reports whether sub occurs in t (including t itself).
func (t *Term) ContainsSubterm(sub *Term) bool {
	if t == sub {
		return true
	}
	for _, a := range t.args {
		if a.ContainsSubterm(sub) {
			return true
		}
	}
	return false
}

// ReplaceSubterm returns t with every occurrence of from replaced by to.
func (t *Term) ReplaceSubterm(from, to *Term) *Term {
	if t == from {
		return to
	}
	if t.IsVar() {
		return t
	}
	changed := false
	args := make([]*Term, len(t.args))
	for i, a := range t.args {
		args[i] = a.ReplaceSubterm(from, to)
		if args[i] != a {
			changed = true
		}
	}
	if !changed {
		return t
	}
	return t.sig.NewTerm(t.functor, args...)
}

func (t *Term) String() string {
	var b strings.Builder
	t.print(&b)
	return b.String()
}

func (t *Term) print(b *strings.Builder) {
	if t.IsVar() {
		if t.special {
			b.WriteByte('S')
		} else {
			b.WriteByte('X')
		}
		writeInt(b, t.vnum)
		return
	}
	b.WriteString(t.sig.functionName(t.functor))
	if len(t.args) == 0 {
		return
	}
	b.WriteByte('(')
	for i, a := range t.args {
		if i > 0 {
			b.WriteByte(',')
		}
		a.print(b)
	}
	b.WriteByte(')')
}

func writeInt(b *strings.Builder, n int) {
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	if n >= 10 {
		writeInt(b, n/10)
	}
	b.WriteByte(byte('0' + n%10))
}

const (
	hashSeed  = 1469598103934665603
	hashPrime = 1099511628211
)

func mix(h, x uint64) uint64 {
	return (h ^ x) * hashPrime
}

func hashVar(n int, special bool) uint64 {
	h := mix(hashSeed, uint64(n)+1)
	if special {
		h = mix(h, 0x53)
	}
	return h
}

func hashTerm(f int, args []*Term) uint64 {
	h := mix(hashSeed, uint64(f)+0x100)
	for _, a := range args {
		h = mix(h, a.hash)
	}
	return h
}
