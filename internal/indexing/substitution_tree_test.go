package indexing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inpefess/vampire/pkg/kernel"
)

type fixture struct {
	sig *kernel.Signature
	f   int
	g   int
	a   *kernel.Term
	b   *kernel.Term
}

func newFixture() *fixture {
	sig := kernel.NewSignature()
	return &fixture{
		sig: sig,
		f:   sig.AddFunction("f", 2),
		g:   sig.AddFunction("g", 1),
		a:   sig.NewTerm(sig.AddFunction("a", 0)),
		b:   sig.NewTerm(sig.AddFunction("b", 0)),
	}
}

func (fx *fixture) clause(name string) *kernel.Clause {
	p := fx.sig.AddPredicate(name, 0)
	return fx.sig.NewClause([]*kernel.Literal{fx.sig.NewLiteral(p, true)}, kernel.InputInference())
}

func collect(it ResultIterator) []LeafData {
	var out []LeafData
	for it.HasNext() {
		out = append(out, it.Next().Data)
	}
	return out
}

func terms(ds []LeafData) map[*kernel.Term]int {
	m := make(map[*kernel.Term]int)
	for _, d := range ds {
		m[d.Term]++
	}
	return m
}

// The E6 scenario: f(a,b), f(x,b) and f(a,y) under generalisation,
// instance and variant queries.
func TestRetrievalModes(t *testing.T) {
	fx := newFixture()
	is := NewTermIndexingStructure(fx.sig)

	x := fx.sig.NewVar(0)
	y := fx.sig.NewVar(1)
	fab := fx.sig.NewTerm(fx.f, fx.a, fx.b)
	fxb := fx.sig.NewTerm(fx.f, x, fx.b)
	fay := fx.sig.NewTerm(fx.f, fx.a, y)

	c1, c2, c3 := fx.clause("c1"), fx.clause("c2"), fx.clause("c3")
	is.Insert(fab, nil, c1)
	is.Insert(fxb, nil, c2)
	is.Insert(fay, nil, c3)

	gens := terms(collect(is.GetGeneralizations(fab)))
	assert.Equal(t, map[*kernel.Term]int{fab: 1, fxb: 1, fay: 1}, gens,
		"all three entries generalise f(a,b)")

	insts := terms(collect(is.GetInstances(fx.sig.NewTerm(fx.f, x, y))))
	assert.Equal(t, map[*kernel.Term]int{fab: 1, fxb: 1, fay: 1}, insts,
		"all three entries are instances of f(x,y)")

	vars := terms(collect(is.GetVariants(fab)))
	assert.Equal(t, map[*kernel.Term]int{fab: 1}, vars,
		"only f(a,b) itself is a variant of f(a,b)")

	unis := terms(collect(is.GetUnifications(fx.sig.NewTerm(fx.f, x, fx.b))))
	assert.Equal(t, map[*kernel.Term]int{fab: 1, fxb: 1, fay: 1}, unis)
}

func TestVariableEntriesAndQueries(t *testing.T) {
	fx := newFixture()
	is := NewTermIndexingStructure(fx.sig)
	x := fx.sig.NewVar(0)

	c1, c2 := fx.clause("c1"), fx.clause("c2")
	is.Insert(x, nil, c1)
	is.Insert(fx.sig.NewTerm(fx.g, fx.a), nil, c2)

	// a variable query unifies with every entry
	all := collect(is.GetUnifications(fx.sig.NewVar(5)))
	assert.Len(t, all, 2)

	// a variable entry generalises any query
	gens := collect(is.GetGeneralizations(fx.sig.NewTerm(fx.g, fx.b)))
	require.Len(t, gens, 1)
	assert.Same(t, c1, gens[0].Clause)

	// every entry, variable or not, is an instance of a variable query
	insts := collect(is.GetInstances(fx.sig.NewVar(7)))
	assert.Len(t, insts, 2, "every entry is an instance of a variable query")

	// a non-variable query has no variable instances
	insts = collect(is.GetInstances(fx.sig.NewTerm(fx.g, fx.a)))
	require.Len(t, insts, 1)
	assert.Same(t, c2, insts[0].Clause)
}

func TestMultisetSemanticsAndRemoval(t *testing.T) {
	fx := newFixture()
	is := NewTermIndexingStructure(fx.sig)
	x := fx.sig.NewVar(0)
	y := fx.sig.NewVar(1)

	c1, c2 := fx.clause("c1"), fx.clause("c2")
	gx := fx.sig.NewTerm(fx.g, x)
	gy := fx.sig.NewTerm(fx.g, y)

	// variants of one another collide on the same path but stay distinct
	// entries keyed by (term, clause)
	is.Insert(gx, nil, c1)
	is.Insert(gy, nil, c2)
	assert.Equal(t, 2, is.Size())

	vars := collect(is.GetVariants(gx))
	assert.Len(t, vars, 2)

	require.True(t, is.Remove(gx, nil, c1))
	assert.False(t, is.Remove(gx, nil, c1), "removal is per entry")
	assert.Equal(t, 1, is.Size())

	vars = collect(is.GetVariants(gx))
	require.Len(t, vars, 1)
	assert.Same(t, c2, vars[0].Clause)

	require.True(t, is.Remove(gy, nil, c2))
	assert.Equal(t, 0, is.Size())
	assert.Empty(t, collect(is.GetUnifications(x)))
}

// The index round-trip property: generalisation retrieval returns exactly
// the entries whose term matches the query.
func TestGeneralizationRoundTrip(t *testing.T) {
	fx := newFixture()
	is := NewTermIndexingStructure(fx.sig)
	x := fx.sig.NewVar(0)
	y := fx.sig.NewVar(1)

	entries := []*kernel.Term{
		fx.a,
		fx.b,
		x,
		fx.sig.NewTerm(fx.g, x),
		fx.sig.NewTerm(fx.g, fx.a),
		fx.sig.NewTerm(fx.f, x, y),
		fx.sig.NewTerm(fx.f, x, x),
		fx.sig.NewTerm(fx.f, fx.a, x),
		fx.sig.NewTerm(fx.f, fx.a, fx.b),
		fx.sig.NewTerm(fx.f, fx.sig.NewTerm(fx.g, x), fx.b),
	}
	clauses := make([]*kernel.Clause, len(entries))
	for i, e := range entries {
		clauses[i] = fx.clause(string(rune('q' + i)))
		is.Insert(e, nil, clauses[i])
	}

	queries := []*kernel.Term{
		fx.a,
		fx.sig.NewTerm(fx.g, fx.b),
		fx.sig.NewTerm(fx.f, fx.a, fx.b),
		fx.sig.NewTerm(fx.f, fx.a, fx.a),
		fx.sig.NewTerm(fx.f, fx.sig.NewTerm(fx.g, fx.a), fx.b),
		fx.sig.NewTerm(fx.f, x, fx.b),
	}
	for _, q := range queries {
		want := make(map[*kernel.Term]int)
		for _, e := range entries {
			s := kernel.NewRobSubstitution(fx.sig)
			if s.Match(e, kernel.ResultBank, q, kernel.QueryBank) {
				want[e]++
			}
		}
		got := terms(collect(is.GetGeneralizations(q)))
		if len(want) == 0 {
			assert.Empty(t, got, "query %s", q)
		} else {
			assert.Equal(t, want, got, "query %s", q)
		}
	}
}

// The result substitution must map the entry onto the query.
func TestResultSubstitutionComposition(t *testing.T) {
	fx := newFixture()
	is := NewTermIndexingStructure(fx.sig)
	// use high variable numbers so insertion normalisation matters
	v7 := fx.sig.NewVar(7)
	entryTerm := fx.sig.NewTerm(fx.f, v7, fx.b)

	c := fx.clause("c")
	is.Insert(entryTerm, nil, c)

	query := fx.sig.NewTerm(fx.f, fx.sig.NewTerm(fx.g, fx.a), fx.b)
	it := is.GetGeneralizations(query)
	require.True(t, it.HasNext())
	qr := it.Next()
	assert.Same(t, query, qr.Substitution.ApplyToResult(entryTerm),
		"applying the result substitution to the entry yields the query")
	assert.Same(t, query, qr.Substitution.ApplyToQuery(query),
		"the query side is untouched by a generalisation match")
	assert.False(t, it.HasNext())
}

func TestLiteralIndexRetrieval(t *testing.T) {
	fx := newFixture()
	is := NewLiteralIndexingStructure(fx.sig)
	p := fx.sig.AddPredicate("p", 1)
	x := fx.sig.NewVar(0)

	c1, c2 := fx.clause("c1"), fx.clause("c2")
	px := fx.sig.NewLiteral(p, true, x)
	npa := fx.sig.NewLiteral(p, false, fx.a)
	is.Insert(px, c1)
	is.Insert(npa, c2)
	assert.Equal(t, 2, is.Size())

	// complementary unification: ~p(a) against stored p(X)
	hits := collect(is.GetUnifications(npa, true))
	require.Len(t, hits, 1)
	assert.Same(t, c1, hits[0].Clause)

	// same-polarity generalisations of p(a)
	pa := fx.sig.NewLiteral(p, true, fx.a)
	gens := collect(is.GetGeneralizations(pa, false))
	require.Len(t, gens, 1)
	assert.Same(t, px, gens[0].Literal)

	require.True(t, is.Remove(px, c1))
	assert.Empty(t, collect(is.GetUnifications(npa, true)))
}

func TestLiteralIndexEqualityBothOrders(t *testing.T) {
	fx := newFixture()
	is := NewLiteralIndexingStructure(fx.sig)
	x := fx.sig.NewVar(0)

	c := fx.clause("c")
	// g(X) = X stored; query the instance g(a) = a with either side first
	eq := fx.sig.NewEquality(true, fx.sig.NewTerm(fx.g, x), x)
	is.Insert(eq, c)

	query := fx.sig.NewEquality(true, fx.sig.NewTerm(fx.g, fx.a), fx.a)
	gens := collect(is.GetGeneralizations(query, false))
	require.NotEmpty(t, gens, "equality retrieval must try both argument orders")
	assert.Same(t, c, gens[0].Clause)
}
