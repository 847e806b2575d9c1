// Package parser defines an Earley parser for grammars built from notations.
//
// Parse result is a nested array: []any{nonTerm, child...}, where each child is either
// a nested array or token text. When input has several derivations, rules are tried in
// registration order and the first rule that yields a complete derivation wins.
package parser

import (
	"sort"

	"github.com/ava12/notation/grammar"
	"github.com/ava12/notation/lexer"
)

type item struct {
	rule, dot, origin int
}

type span struct {
	name       string
	start, end int
}

type ruleSpan struct {
	rule, start, end int
}

// Parser is an immutable snapshot of a grammar, it is safe for concurrent use.
type Parser struct {
	start     string
	rules     []*grammar.Rule
	byNonTerm map[string][]int
}

// New creates a parser for the current state of g. Later changes of g do not affect the parser.
func New(g *grammar.Grammar) *Parser {
	p := &Parser{start: g.Start(), byNonTerm: make(map[string][]int)}
	for _, r := range g.AllRules() {
		if len(r.Symbols) == 0 {
			continue
		}

		p.byNonTerm[r.NonTerm] = append(p.byNonTerm[r.NonTerm], len(p.rules))
		p.rules = append(p.rules, r)
	}
	return p
}

// Parse builds the derivation tree of tokens for the start nonterminal.
// Returns *notation.Error of SyntaxErrors class if tokens do not conform to the grammar.
func (p *Parser) Parse(tokens []*lexer.Token) (any, error) {
	return p.ParseFrom(p.start, tokens)
}

// ParseFrom is like Parse but uses given start nonterminal.
func (p *Parser) ParseFrom(start string, tokens []*lexer.Token) (any, error) {
	pc := newParseContext(p, tokens)
	if e := pc.recognize(start); e != nil {
		return nil, e
	}

	res, ok := pc.build(start, 0, len(tokens))
	if !ok {
		return nil, unresolvedError(start)
	}
	return res, nil
}

type itemSet struct {
	items []item
	index map[item]bool
}

func (s *itemSet) add(it item) {
	if !s.index[it] {
		s.index[it] = true
		s.items = append(s.items, it)
	}
}

// ParseContext holds the state of a single Parse call.
type ParseContext struct {
	parser    *Parser
	tokens    []*lexer.Token
	sets      []*itemSet
	ruleSpans map[ruleSpan]bool
	spans     map[span]bool
	built     map[span][]any
	failed    map[span]bool
	active    map[span]bool
	cuts      int
}

func newParseContext(p *Parser, tokens []*lexer.Token) *ParseContext {
	pc := &ParseContext{
		parser:    p,
		tokens:    tokens,
		sets:      make([]*itemSet, len(tokens)+1),
		ruleSpans: make(map[ruleSpan]bool),
		spans:     make(map[span]bool),
		built:     make(map[span][]any),
		failed:    make(map[span]bool),
		active:    make(map[span]bool),
	}
	for i := range pc.sets {
		pc.sets[i] = &itemSet{index: make(map[item]bool)}
	}
	return pc
}

func (pc *ParseContext) symbol(it item) (grammar.Symbol, bool) {
	r := pc.parser.rules[it.rule]
	if it.dot >= len(r.Symbols) {
		return grammar.Symbol{}, false
	}
	return r.Symbols[it.dot], true
}

func (pc *ParseContext) recognize(start string) error {
	n := len(pc.tokens)
	for _, ri := range pc.parser.byNonTerm[start] {
		pc.sets[0].add(item{ri, 0, 0})
	}

	for i := 0; i <= n; i++ {
		set := pc.sets[i]
		for k := 0; k < len(set.items); k++ {
			it := set.items[k]
			sym, incomplete := pc.symbol(it)
			switch {
			case !incomplete:
				pc.complete(it, i)
			case sym.IsNonTerm():
				for _, ri := range pc.parser.byNonTerm[sym.Name] {
					set.add(item{ri, 0, i})
				}
			case i < n && pc.tokens[i].Type() == sym.Term:
				pc.sets[i+1].add(item{it.rule, it.dot + 1, it.origin})
			}
		}

		if i < n && len(pc.sets[i+1].items) == 0 {
			return unexpectedTokenError(pc.tokens[i], pc.expected(i))
		}
	}

	if !pc.spans[span{start, 0, n}] {
		source := ""
		if n > 0 {
			source = pc.tokens[0].SourceName()
		}
		return unexpectedEoiError(source, pc.expected(n))
	}
	return nil
}

func (pc *ParseContext) complete(it item, end int) {
	r := pc.parser.rules[it.rule]
	pc.ruleSpans[ruleSpan{it.rule, it.origin, end}] = true
	pc.spans[span{r.NonTerm, it.origin, end}] = true

	set := pc.sets[end]
	for _, waiting := range pc.sets[it.origin].items {
		sym, incomplete := pc.symbol(waiting)
		if incomplete && sym.IsNonTerm() && sym.Name == r.NonTerm {
			set.add(item{waiting.rule, waiting.dot + 1, waiting.origin})
		}
	}
}

func (pc *ParseContext) expected(i int) []string {
	index := make(map[string]bool)
	var res []string
	for _, it := range pc.sets[i].items {
		sym, incomplete := pc.symbol(it)
		if incomplete && !sym.IsNonTerm() && !index[sym.String()] {
			index[sym.String()] = true
			res = append(res, sym.String())
		}
	}
	sort.Strings(res)
	return res
}

func (pc *ParseContext) build(name string, start, end int) ([]any, bool) {
	key := span{name, start, end}
	if res, found := pc.built[key]; found {
		return res, true
	}
	if pc.failed[key] || !pc.spans[key] {
		return nil, false
	}
	if pc.active[key] {
		pc.cuts++
		return nil, false
	}

	pc.active[key] = true
	cuts := pc.cuts
	defer delete(pc.active, key)

	for _, ri := range pc.parser.byNonTerm[name] {
		if !pc.ruleSpans[ruleSpan{ri, start, end}] {
			continue
		}

		children, ok := pc.matchSymbols(pc.parser.rules[ri].Symbols, start, end)
		if ok {
			res := append([]any{name}, children...)
			pc.built[key] = res
			return res, true
		}
	}

	if cuts == pc.cuts {
		pc.failed[key] = true
	}
	return nil, false
}

// matchSymbols splits tokens[start:end] among symbols, each symbol takes at least one token.
func (pc *ParseContext) matchSymbols(symbols []grammar.Symbol, start, end int) ([]any, bool) {
	if len(symbols) == 0 {
		return nil, start == end
	}

	sym := symbols[0]
	rest := symbols[1:]
	if !sym.IsNonTerm() {
		if start >= end || pc.tokens[start].Type() != sym.Term {
			return nil, false
		}

		tail, ok := pc.matchSymbols(rest, start+1, end)
		if !ok {
			return nil, false
		}
		return append([]any{pc.tokens[start].Text()}, tail...), true
	}

	for e := start + 1; e <= end-len(rest); e++ {
		if !pc.spans[span{sym.Name, start, e}] {
			continue
		}

		tail, ok := pc.matchSymbols(rest, e, end)
		if !ok {
			continue
		}

		child, ok := pc.build(sym.Name, start, e)
		if ok {
			return append([]any{child}, tail...), true
		}
	}
	return nil, false
}
