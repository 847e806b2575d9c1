package parser

import (
	"fmt"
	"testing"

	"github.com/ava12/notation"
	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/internal/test"
	"github.com/ava12/notation/lexer"
)

type arith struct {
	tk *lexer.Tokenizer
	g  *grammar.Grammar
}

func (a *arith) literal(t *testing.T, text string) grammar.Symbol {
	id, e := a.tk.Add(lexer.Literal(text))
	test.ExpectSuccess(t, e)
	return grammar.LiteralSymbol(id, text)
}

func (a *arith) pattern(t *testing.T, re string) grammar.Symbol {
	id, e := a.tk.Add(lexer.Pattern(re))
	test.ExpectSuccess(t, e)
	return grammar.PatternSymbol(id, re)
}

func nt(name string) grammar.Symbol {
	return grammar.NonTermSymbol(name)
}

// sum = sum '+' product | product; product = product '*' atom | atom; atom = num | '(' sum ')'
func newArith(t *testing.T) *arith {
	a := &arith{lexer.New("arith"), grammar.New("sum")}
	a.g.AddRule("sum", []grammar.Symbol{nt("sum"), a.literal(t, "+"), nt("product")}, nil)
	a.g.AddRule("sum", []grammar.Symbol{nt("product")}, nil)
	a.g.AddRule("product", []grammar.Symbol{nt("product"), a.literal(t, "*"), nt("atom")}, nil)
	a.g.AddRule("product", []grammar.Symbol{nt("atom")}, nil)
	a.g.AddRule("atom", []grammar.Symbol{nt("num")}, nil)
	a.g.AddRule("atom", []grammar.Symbol{a.literal(t, "("), nt("sum"), a.literal(t, ")")}, nil)
	a.g.AddRule("num", []grammar.Symbol{a.pattern(t, `\d+`)}, nil)
	return a
}

func (a *arith) parse(src string) (any, error) {
	tokens, e := a.tk.Tokenize(src)
	if e != nil {
		return nil, e
	}
	return New(a.g).Parse(tokens)
}

func TestParse(t *testing.T) {
	samples := []struct {
		src, tree string
	}{
		{"2", "[sum [product [atom [num 2]]]]"},
		{"1+2", "[sum [sum [product [atom [num 1]]]] + [product [atom [num 2]]]]"},
		{"1+2+3", "[sum [sum [sum [product [atom [num 1]]]] + [product [atom [num 2]]]] + [product [atom [num 3]]]]"},
		{"1+2*3", "[sum [sum [product [atom [num 1]]]] + [product [product [atom [num 2]]] * [atom [num 3]]]]"},
		{"(1)", "[sum [product [atom ( [sum [product [atom [num 1]]]] )]]]"},
	}

	a := newArith(t)
	for i, s := range samples {
		res, e := a.parse(s.src)
		if e != nil {
			t.Fatalf("sample #%d (%q): unexpected error: %s", i, s.src, e)
		}

		got := fmt.Sprint(res)
		if got != s.tree {
			t.Fatalf("sample #%d (%q): expecting %s, got %s", i, s.src, s.tree, got)
		}
	}
}

func TestErrors(t *testing.T) {
	samples := []struct {
		src  string
		code int
	}{
		{"", UnexpectedEoiError},
		{"1+", UnexpectedEoiError},
		{"(1+2", UnexpectedEoiError},
		{"1 2", UnexpectedTokenError},
		{"1+*2", UnexpectedTokenError},
		{")", UnexpectedTokenError},
	}

	a := newArith(t)
	for i, s := range samples {
		_, e := a.parse(s.src)
		if !notation.HasCode(e, s.code) {
			t.Fatalf("sample #%d (%q): expecting error code %d, got %v", i, s.src, s.code, e)
		}
		test.ExpectBool(t, true, notation.IsInputError(e))
	}
}

func TestFirstRuleWins(t *testing.T) {
	tk := lexer.New("")
	id, _ := tk.Add(lexer.Pattern(`\d+`))
	g := grammar.New("e")
	g.AddRule("e", []grammar.Symbol{nt("b")}, nil)
	g.AddRule("e", []grammar.Symbol{nt("a")}, nil)
	g.AddRule("a", []grammar.Symbol{grammar.PatternSymbol(id, `\d+`)}, nil)
	g.AddRule("b", []grammar.Symbol{grammar.PatternSymbol(id, `\d+`)}, nil)

	tokens, e := tk.Tokenize("42")
	test.ExpectSuccess(t, e)
	res, e := New(g).Parse(tokens)
	test.ExpectSuccess(t, e)
	test.ExpectString(t, "[e [b 42]]", fmt.Sprint(res))
}

func TestCycle(t *testing.T) {
	tk := lexer.New("")
	id, _ := tk.Add(lexer.Pattern(`\d+`))
	g := grammar.New("a")
	g.AddRule("a", []grammar.Symbol{nt("b")}, nil)
	g.AddRule("b", []grammar.Symbol{nt("a")}, nil)
	g.AddRule("b", []grammar.Symbol{grammar.PatternSymbol(id, `\d+`)}, nil)

	tokens, _ := tk.Tokenize("7")
	res, e := New(g).Parse(tokens)
	test.ExpectSuccess(t, e)
	test.ExpectString(t, "[a [b 7]]", fmt.Sprint(res))
}

func TestSnapshot(t *testing.T) {
	a := newArith(t)
	p := New(a.g)
	a.g.AddRule("sum", []grammar.Symbol{a.literal(t, "-"), nt("sum")}, nil)
	tokens, e := a.tk.Tokenize("-1")
	test.ExpectSuccess(t, e)
	_, e = p.Parse(tokens)
	test.ExpectErrorCode(t, UnexpectedTokenError, e)
	_, e = New(a.g).Parse(tokens)
	test.ExpectSuccess(t, e)
}
