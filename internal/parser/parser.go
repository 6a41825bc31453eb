// Package parser reads problems in a minimal TPTP-style CNF dialect:
//
//	% a comment
//	cnf(axiom_1, axiom, ( p(X) | ~q(f(a)) )).
//	cnf(eq_1, axiom, f(X) = X).
//	cnf(goal, negated_conjecture, ~p(a)).
//
// Uppercase names are variables, lowercase names are symbols; = and != are
// the equality literals. The parser only covers clause-normal input; full
// TPTP is out of scope.
package parser

import (
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"

	"github.com/inpefess/vampire/pkg/kernel"
)

type problemAST struct {
	Clauses []*clauseAST `parser:"@@*"`
}

type clauseAST struct {
	Name string    `parser:"'cnf' '(' @Ident ','"`
	Role string    `parser:"@Ident ','"`
	Lits []*litAST `parser:"( '(' @@ ( '|' @@ )* ')' | @@ ( '|' @@ )* ) ')' '.'"`
}

type litAST struct {
	Neg   bool     `parser:"@'~'?"`
	Left  *termAST `parser:"@@"`
	Op    string   `parser:"( @( '!=' | '=' )"`
	Right *termAST `parser:"@@ )?"`
}

type termAST struct {
	Name string     `parser:"@( Ident | Var )"`
	Args []*termAST `parser:"( '(' @@ ( ',' @@ )* ')' )?"`
}

var cnfLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `%[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "NotEq", Pattern: `!=`},
	{Name: "Var", Pattern: `[A-Z_][A-Za-z0-9_]*`},
	{Name: "Ident", Pattern: `[a-z$][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),.|~=]`},
})

var cnfParser = participle.MustBuild[problemAST](
	participle.Lexer(cnfLexer),
	participle.Elide("Whitespace", "Comment"),
)

// Clause is one parsed input clause with its source annotations.
type Clause struct {
	Name   string
	Role   string
	Clause *kernel.Clause
}

// Parse reads a CNF problem from r, registering its symbols in sig.
func Parse(r io.Reader, sig *kernel.Signature) ([]Clause, error) {
	ast, err := cnfParser.Parse("", r)
	if err != nil {
		return nil, errors.Wrap(err, "parsing cnf input")
	}
	return build(ast, sig)
}

// ParseString reads a CNF problem from a string.
func ParseString(input string, sig *kernel.Signature) ([]Clause, error) {
	return Parse(strings.NewReader(input), sig)
}

func build(ast *problemAST, sig *kernel.Signature) ([]Clause, error) {
	out := make([]Clause, 0, len(ast.Clauses))
	for _, ca := range ast.Clauses {
		vars := make(map[string]int)
		lits := make([]*kernel.Literal, 0, len(ca.Lits))
		for _, la := range ca.Lits {
			lit, err := buildLiteral(la, sig, vars)
			if err != nil {
				return nil, errors.Wrapf(err, "clause %s", ca.Name)
			}
			lits = append(lits, lit)
		}
		out = append(out, Clause{
			Name:   ca.Name,
			Role:   ca.Role,
			Clause: sig.NewClause(lits, kernel.InputInference()),
		})
	}
	return out, nil
}

func buildLiteral(la *litAST, sig *kernel.Signature, vars map[string]int) (*kernel.Literal, error) {
	if la.Op != "" {
		left, err := buildTerm(la.Left, sig, vars)
		if err != nil {
			return nil, err
		}
		right, err := buildTerm(la.Right, sig, vars)
		if err != nil {
			return nil, err
		}
		positive := la.Op == "="
		if la.Neg {
			positive = !positive
		}
		return sig.NewEquality(positive, left, right), nil
	}
	if isVariableName(la.Left.Name) {
		return nil, errors.Errorf("variable %s used as a predicate", la.Left.Name)
	}
	args := make([]*kernel.Term, len(la.Left.Args))
	for i, aa := range la.Left.Args {
		t, err := buildTerm(aa, sig, vars)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	p := sig.AddPredicate(la.Left.Name, len(args))
	return sig.NewLiteral(p, !la.Neg, args...), nil
}

func buildTerm(ta *termAST, sig *kernel.Signature, vars map[string]int) (*kernel.Term, error) {
	if isVariableName(ta.Name) {
		if len(ta.Args) > 0 {
			return nil, errors.Errorf("variable %s applied to arguments", ta.Name)
		}
		n, ok := vars[ta.Name]
		if !ok {
			n = len(vars)
			vars[ta.Name] = n
		}
		return sig.NewVar(n), nil
	}
	args := make([]*kernel.Term, len(ta.Args))
	for i, aa := range ta.Args {
		t, err := buildTerm(aa, sig, vars)
		if err != nil {
			return nil, err
		}
		args[i] = t
	}
	f := sig.AddFunction(ta.Name, len(args))
	return sig.NewTerm(f, args...), nil
}

func isVariableName(name string) bool {
	if name == "" {
		return false
	}
	c := name[0]
	return c >= 'A' && c <= 'Z' || c == '_'
}
