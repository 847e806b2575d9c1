package converter

import (
	"testing"

	"github.com/ava12/notation/ast"
	"github.com/ava12/notation/internal/test"
	"github.com/ava12/notation/registry"
)

func newArith(t *testing.T, named bool) *Converter {
	c, e := New(Options{})
	test.ExpectSuccess(t, e)

	concepts := []struct {
		name, parent string
		pattern      registry.Pattern
	}{
		{"number", "atomicnumberexpr", registry.Terminal(`\d+(?:\.\d+)?`)},
		{"variable", "atomicnumberexpr", registry.Terminal(`[a-w]`)},
		{"addition", "sumexpr", registry.Putdown("(+ sumexpr productexpr)")},
		{"subtraction", "sumexpr", registry.Putdown("(- sumexpr productexpr)")},
		{"multiplication", "productexpr", registry.Putdown("(* productexpr factorexpr)")},
		{"negative", "factorexpr", registry.Putdown("(- factorexpr)")},
		{"less", "propositionexpr", registry.Putdown("(< numberexpr numberexpr)")},
	}
	for _, s := range concepts {
		test.ExpectSuccess(t, c.AddConcept(s.name, s.parent, s.pattern))
	}

	test.ExpectSuccess(t, c.AddLanguage("infix", []string{"(", ")"}, nil, LanguageOptions{}))
	test.ExpectSuccess(t, c.AddLanguage("prefix", nil, nil, LanguageOptions{FlatPrecedence: true}))

	star, cross := "", ""
	if named {
		star, cross = "star", "cross"
	}
	notations := []struct {
		lang, concept, text, name string
	}{
		{"infix", "addition", "A + B", ""},
		{"infix", "subtraction", "A - B", ""},
		{"infix", "multiplication", "A * B", star},
		{"infix", "multiplication", "A x B", cross},
		{"infix", "negative", "-A", ""},
		{"infix", "less", "A < B", ""},
		{"prefix", "addition", "+ A B", ""},
		{"prefix", "subtraction", "- A B", ""},
		{"prefix", "multiplication", "* A B", star},
		{"prefix", "multiplication", "x A B", cross},
		{"prefix", "negative", "neg A", ""},
		{"prefix", "less", "< A B", ""},
	}
	for _, s := range notations {
		test.ExpectSuccess(t, c.AddNotation(s.lang, s.concept, s.text, registry.NotationOptions{Name: s.name}))
	}
	return c
}

func convert(t *testing.T, c *Converter, src, dst, text string) string {
	t.Helper()
	res, ok, e := c.Convert(src, dst, text)
	test.ExpectSuccess(t, e)
	test.Assert(t, ok, "cannot convert %q from %s to %s", text, src, dst)
	return res
}

func TestConvert(t *testing.T) {
	named := newArith(t, true)
	unnamed := newArith(t, false)
	samples := []struct {
		c            *Converter
		src, dst, in string
		expected     string
	}{
		{named, "infix", "prefix", "2+3", "+ 2 3"},
		{named, "infix", "prefix", "2x3", "x 2 3"},
		{unnamed, "infix", "prefix", "2x3", "* 2 3"},
		{named, "infix", "prefix", "10+20x40", "+ 10 x 20 40"},
		{named, "putdown", "prefix", "(- 453789)", "neg 453789"},
		{named, "prefix", "putdown", "neg 453789", "(- 453789)"},
		{named, "infix", "putdown", "a - (b - c)", "(- a (- b c))"},
		{named, "putdown", "infix", "(- (- a b) c)", "a - b - c"},
		{named, "putdown", "infix", "(- a (- b c))", "a - (b - c)"},
		{named, "infix", "prefix", "a + 1 < 2.5", "< + a 1 2.5"},
		{named, "prefix", "infix", "x - 1 2 3", "(1 - 2) x 3"},
		{named, "infix", "infix", "not even parsed", "not even parsed"},
		{named, "infix", "ast", "2 * (3 + 4)", `["multiplication",["number","2"],["addition",["number","3"],["number","4"]]]`},
		{named, "ast", "infix", `["multiplication",["number","2"],["addition",["number","3"],["number","4"]]]`, "2 * (3 + 4)"},
		{named, "ast", "prefix", `["expression",["sumexpr",["addition",["number",1],["variable","a"]]]]`, "+ 1 a"},
	}

	for i, s := range samples {
		got := convert(t, s.c, s.src, s.dst, s.in)
		if got != s.expected {
			t.Fatalf("sample #%d (%s %q -> %s): expecting %q, got %q", i, s.src, s.in, s.dst, s.expected, got)
		}
	}
}

func TestSoftFailure(t *testing.T) {
	c := newArith(t, true)
	samples := []struct {
		src, dst, text string
	}{
		{"infix", "putdown", "2 +"},
		{"infix", "putdown", "2 $ 3"},
		{"infix", "putdown", "(2"},
		{"prefix", "putdown", "+ 2"},
		{"putdown", "infix", "(+ 1 2"},
		{"putdown", "infix", "1 + 2"},
		{"putdown", "prefix", "(+ 1 2))"},
	}

	for _, s := range samples {
		res, ok, e := c.Convert(s.src, s.dst, s.text)
		test.ExpectSuccess(t, e)
		test.Assert(t, !ok, "%s %q: conversion succeeded: %q", s.src, s.text, res)
		test.ExpectString(t, "", res)
	}
}

func TestErrors(t *testing.T) {
	c := newArith(t, true)
	_, _, e := c.Convert("nosuch", "infix", "1")
	test.ExpectErrorCode(t, registry.UnknownLanguageError, e)
	_, _, e = c.Convert("infix", "nosuch", "1")
	test.ExpectErrorCode(t, registry.UnknownLanguageError, e)
	_, _, e = c.Convert("nosuch", "nosuch", "1")
	test.ExpectErrorCode(t, registry.UnknownLanguageError, e)

	_, _, e = c.Convert("ast", "infix", `[]`)
	test.ExpectErrorCode(t, ast.EmptyTreeError, e)
	_, _, e = c.Convert("ast", "infix", `["productexpr",["sumexpr","1"]]`)
	test.ExpectErrorCode(t, ast.NotSupertypeError, e)
	_, _, e = c.Convert("ast", "infix", `["addition",["number","1"]]`)
	test.ExpectErrorCode(t, ast.ArityError, e)
	_, _, e = c.Convert("ast", "infix", `["mystery","1"]`)
	test.ExpectErrorCode(t, ast.UnknownHeadError, e)

	test.ExpectErrorCode(t, registry.WrongNameError, c.AddLanguage("ast", nil, nil, LanguageOptions{}))
	test.ExpectErrorCode(t, registry.LanguageDefinedError, c.AddLanguage("putdown", nil, nil, LanguageOptions{}))

	test.ExpectSuccess(t, c.AddLanguage("words", nil, nil, LanguageOptions{}))
	test.ExpectSuccess(t, c.AddNotation("words", "addition", "A plus B", registry.NotationOptions{}))
	test.ExpectSuccess(t, c.AddNotation("words", "multiplication", "A times B", registry.NotationOptions{}))
	_, _, e = c.Convert("infix", "words", "(1 + 2) * 3")
	test.ExpectErrorCode(t, ast.NoGroupersError, e)
	_, _, e = c.Convert("infix", "words", "1 - 2")
	test.ExpectErrorCode(t, ast.NoNotationError, e)
	test.ExpectString(t, "1 plus 2 times 3", convert(t, c, "infix", "words", "1 + 2 * 3"))
}

func TestParseRender(t *testing.T) {
	c := newArith(t, true)
	tree, ok, e := c.Parse("infix", "2x3")
	test.ExpectSuccess(t, e)
	test.Assert(t, ok, "cannot parse")
	test.ExpectString(t, "cross", tree.Name)

	for _, l := range []string{"putdown", "infix", "prefix"} {
		text, e := c.Render(tree, l)
		test.ExpectSuccess(t, e)
		back, ok, e := c.Parse(l, text)
		test.ExpectSuccess(t, e)
		test.Assert(t, ok, "cannot parse %q in %s", text, l)
		test.Assert(t, back.Equal(tree), "%s: expecting %s, got %s", l, tree, back)
	}

	res, e := c.Render(ast.New("sumexpr", ast.New("number", ast.Leaf("5"))), "ast")
	test.ExpectSuccess(t, e)
	test.ExpectString(t, `["number","5"]`, res)
}

func TestLanguages(t *testing.T) {
	c := newArith(t, true)
	got := c.Languages()
	test.ExpectInt(t, 3, len(got))
	test.ExpectString(t, "putdown", got[0])
	test.ExpectString(t, "infix", got[1])
	test.ExpectString(t, "prefix", got[2])

	rules, e := c.Rules("prefix")
	test.ExpectSuccess(t, e)
	test.Assert(t, len(rules) > 0, "no rules")
	test.ExpectString(t, "expression = numberexpr", rules[0].String())
	_, e = c.Rules("ast")
	test.ExpectErrorCode(t, registry.UnknownLanguageError, e)
}

func TestPutdownLinter(t *testing.T) {
	samples := [][2]string{
		{"( - 453789 )", "(- 453789)"},
		{"(+ 1 (* 2 3) )", "(+ 1 (* 2 3))"},
		{"[ a ] { b }", "[a] {b}"},
		{"plain", "plain"},
	}

	for _, s := range samples {
		test.ExpectString(t, s[1], PutdownLinter(s[0]))
	}
}

func TestChains(t *testing.T) {
	c, e := New(Options{
		Chains:    [][]string{{"expression", "sum", "product", "atom"}},
		Variables: []string{"X", "Y"},
	})
	test.ExpectSuccess(t, e)
	test.ExpectSuccess(t, c.AddConcept("number", "atom", registry.Terminal(`\d+`)))
	test.ExpectSuccess(t, c.AddConcept("plus", "sum", registry.Putdown("(plus sum product)")))
	test.ExpectSuccess(t, c.AddLanguage("infix", []string{"[", "]"}, nil, LanguageOptions{}))
	test.ExpectSuccess(t, c.AddNotation("infix", "plus", "X + Y", registry.NotationOptions{}))

	test.ExpectString(t, "(plus 1 2)", convert(t, c, "infix", "putdown", "1 + 2"))
	test.ExpectString(t, "1 + [2 + 3]", convert(t, c, "putdown", "infix", "(plus 1 (plus 2 3))"))
	test.ExpectString(t, "(plus 1 2)", convert(t, c, "infix", "putdown", "[[1] + 2]"))

	_, e = New(Options{Chains: [][]string{{}}})
	test.Assert(t, e != nil, "empty chain accepted")
}
