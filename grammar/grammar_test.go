package grammar

import (
	"testing"

	"github.com/ava12/notation/internal/test"
	"github.com/ava12/notation/template"
)

func TestAddRule(t *testing.T) {
	g := New("expression")
	test.ExpectString(t, "expression", g.Start())

	_, added := g.AddRule("expression", []Symbol{NonTermSymbol("sumexpr")}, nil)
	test.ExpectBool(t, true, added)
	_, added = g.AddRule("expression", []Symbol{NonTermSymbol("sumexpr")}, nil)
	test.ExpectBool(t, false, added)

	tpl := template.MustParse("A+B", template.DefaultVariables())
	p := &Production{Concept: "addition", Template: tpl, ToCanonical: []int{0, 1}, FromCanonical: []int{0, 1}}
	symbols := []Symbol{NonTermSymbol("sumexpr"), LiteralSymbol(0, "+"), NonTermSymbol("productexpr")}
	r, added := g.AddRule("addition", symbols, p)
	test.ExpectBool(t, true, added)
	test.ExpectString(t, "addition = sumexpr, '+', productexpr", r.String())
	_, added = g.AddRule("addition", symbols, &Production{Concept: "addition", Template: tpl, Name: "plus"})
	test.ExpectBool(t, true, added)

	test.ExpectInt(t, 2, len(g.Productions("addition")))
	test.ExpectInt(t, 3, len(g.AllRules()))
	test.ExpectString(t, "expression addition", g.NonTerms()[0]+" "+g.NonTerms()[1])
	test.ExpectBool(t, true, g.HasNonTerm("addition"))
	test.ExpectBool(t, false, g.HasNonTerm("sumexpr"))
}

func TestRemoveRules(t *testing.T) {
	g := New("expression")
	g.AddRule("number", []Symbol{PatternSymbol(0, `\d+`)}, &Production{Concept: "number", Terminal: `\d+`, Seeded: true})
	g.AddRule("number", []Symbol{PatternSymbol(1, `[0-9]+`)}, &Production{Concept: "number", Terminal: `[0-9]+`})
	cnt := g.RemoveRules(func(r *Rule) bool {
		return r.Production != nil && r.Production.Seeded
	})
	test.ExpectInt(t, 1, cnt)
	ps := g.Productions("number")
	test.ExpectInt(t, 1, len(ps))
	test.ExpectString(t, `[0-9]+`, ps[0].Text())
	test.ExpectBool(t, true, ps[0].IsTerminal())
}

func TestSymbolMatches(t *testing.T) {
	test.ExpectBool(t, true, LiteralSymbol(0, "+").Matches("+"))
	test.ExpectBool(t, false, LiteralSymbol(0, "+").Matches("++"))
	test.ExpectBool(t, true, PatternSymbol(1, `\d+`).Matches("123"))
	test.ExpectBool(t, false, PatternSymbol(1, `\d+`).Matches("12a"))
	test.ExpectBool(t, false, NonTermSymbol("sumexpr").Matches("sumexpr"))
	test.ExpectString(t, `/\d+/`, PatternSymbol(1, `\d+`).String())
}
