package kernel

// Renaming maps variables to variables numbered from zero in
// first-occurrence order. Normalising the terms of an index entry makes
// entries that differ only by renaming collide on the same tree path.
type Renaming struct {
	sig  *Signature
	m    map[int]int
	next int
}

// NewRenaming returns an empty renaming.
func NewRenaming(sig *Signature) *Renaming {
	return &Renaming{sig: sig, m: make(map[int]int)}
}

// Normalize records normalised numbers for every variable of t, in
// left-to-right first-occurrence order.
func (r *Renaming) Normalize(t *Term) {
	if t.ground {
		return
	}
	if t.IsVar() {
		if _, ok := r.m[t.vnum]; !ok {
			r.m[t.vnum] = r.next
			r.next++
		}
		return
	}
	for _, a := range t.args {
		r.Normalize(a)
	}
}

// NormalizeLiteral records normalised numbers for every variable of l.
func (r *Renaming) NormalizeLiteral(l *Literal) {
	for _, a := range l.args {
		r.Normalize(a)
	}
}

// Apply returns t with every variable replaced by its normalised image.
// Variables not seen by Normalize are assigned fresh numbers on the fly.
func (r *Renaming) Apply(t *Term) *Term {
	if t.ground {
		return t
	}
	if t.IsVar() {
		n, ok := r.m[t.vnum]
		if !ok {
			n = r.next
			r.next++
			r.m[t.vnum] = n
		}
		return r.sig.NewVar(n)
	}
	args := make([]*Term, len(t.args))
	for i, a := range t.args {
		args[i] = r.Apply(a)
	}
	return r.sig.NewTerm(t.functor, args...)
}

// ApplyLiteral returns l with every variable replaced by its normalised
// image.
func (r *Renaming) ApplyLiteral(l *Literal) *Literal {
	if l.ground {
		return l
	}
	args := make([]*Term, len(l.args))
	for i, a := range l.args {
		args[i] = r.Apply(a)
	}
	if l.IsEquality() {
		return l.sig.NewEquality(l.positive, args[0], args[1])
	}
	return l.sig.internLiteral(l.predicate, l.positive, args)
}

// Mapping returns the variable mapping accumulated so far.
func (r *Renaming) Mapping() map[int]int { return r.m }
