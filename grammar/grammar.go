// Package grammar defines the grammar structure built from notations: nonterminals, rules,
// and production metadata describing how a rule maps back to a concept.
package grammar

import (
	"regexp"
	"strings"

	"github.com/ava12/notation/template"
)

// NonTerm is the Symbol.Term value for nonterminal symbols.
const NonTerm = -1

// Symbol is a right-hand side element of a rule.
type Symbol struct {
	// Term contains tokenizer matcher ID for terminals or NonTerm.
	Term int

	// Name contains nonterminal name, literal text, or regular expression.
	Name string

	// Literal is true for literal text terminals.
	Literal bool

	re *regexp.Regexp
}

// NonTermSymbol creates a nonterminal symbol.
func NonTermSymbol(name string) Symbol {
	return Symbol{Term: NonTerm, Name: name}
}

// LiteralSymbol creates a literal text terminal symbol.
func LiteralSymbol(term int, text string) Symbol {
	return Symbol{Term: term, Name: text, Literal: true}
}

// PatternSymbol creates a regular expression terminal symbol. re must be a valid regular expression.
func PatternSymbol(term int, re string) Symbol {
	return Symbol{Term: term, Name: re, re: regexp.MustCompile(`^(?:` + re + `)$`)}
}

// IsNonTerm reports whether s is a nonterminal symbol.
func (s Symbol) IsNonTerm() bool {
	return s.Term == NonTerm
}

// Matches reports whether token text matches terminal symbol s. Always false for nonterminals.
func (s Symbol) Matches(text string) bool {
	switch {
	case s.Term == NonTerm:
		return false
	case s.Literal:
		return s.Name == text
	default:
		return s.re.MatchString(text)
	}
}

func (s Symbol) String() string {
	switch {
	case s.Term == NonTerm:
		return s.Name
	case s.Literal:
		return "'" + s.Name + "'"
	default:
		return "/" + s.Name + "/"
	}
}

// Production contains metadata of a rule created for a notation.
type Production struct {
	// Concept contains the concept name.
	Concept string

	// Template contains parsed notation, nil for terminal productions.
	Template *template.Template

	// Terminal contains the regular expression of a terminal notation or empty string.
	Terminal string

	// Variables contains variable names used to parse the template.
	Variables []string

	// Name contains optional name tag shared by notations expressing the same stylistic choice.
	Name string

	// ToCanonical maps n-th template variable slot to the index in concept type sequence.
	ToCanonical []int

	// FromCanonical maps the index in concept type sequence to template variable slot.
	FromCanonical []int

	// Seeded is true for productions created automatically, these are dropped
	// by the first explicit notation for the same concept.
	Seeded bool
}

// IsTerminal reports whether p is a terminal production.
func (p *Production) IsTerminal() bool {
	return p.Template == nil
}

// Text returns notation text: template text or terminal regular expression.
func (p *Production) Text() string {
	if p.Template == nil {
		return p.Terminal
	}
	return p.Template.Text()
}

// Rule is a grammar rule: NonTerm -> Symbols.
type Rule struct {
	NonTerm string
	Symbols []Symbol

	// Production is nil for structural rules (type chains and parent type rules).
	Production *Production
}

func (r *Rule) String() string {
	parts := make([]string, len(r.Symbols))
	for i, s := range r.Symbols {
		parts[i] = s.String()
	}
	return r.NonTerm + " = " + strings.Join(parts, ", ")
}

func (r *Rule) sameAs(nonTerm string, symbols []Symbol) bool {
	if r.NonTerm != nonTerm || len(r.Symbols) != len(symbols) {
		return false
	}

	for i, s := range symbols {
		rs := r.Symbols[i]
		if rs.Term != s.Term || rs.Name != s.Name || rs.Literal != s.Literal {
			return false
		}
	}
	return true
}

// Grammar contains rules grouped by nonterminal, each group keeps registration order.
// Grammar must not be modified concurrently with other calls.
type Grammar struct {
	start    string
	nonTerms []string
	rules    map[string][]*Rule
}

// New creates an empty grammar with given start nonterminal.
func New(start string) *Grammar {
	return &Grammar{start: start, rules: make(map[string][]*Rule)}
}

// Start returns the start nonterminal name.
func (g *Grammar) Start() string {
	return g.start
}

// AddRule appends a rule for nonTerm.
// A structural rule (nil production) identical to an existing structural rule is not added again,
// in this case AddRule returns the existing rule and false.
func (g *Grammar) AddRule(nonTerm string, symbols []Symbol, p *Production) (*Rule, bool) {
	rs, found := g.rules[nonTerm]
	if p == nil {
		for _, r := range rs {
			if r.Production == nil && r.sameAs(nonTerm, symbols) {
				return r, false
			}
		}
	}

	if !found {
		g.nonTerms = append(g.nonTerms, nonTerm)
	}
	r := &Rule{nonTerm, append([]Symbol(nil), symbols...), p}
	g.rules[nonTerm] = append(rs, r)
	return r, true
}

// RemoveRules removes all rules satisfying filter and returns the number of removed rules.
func (g *Grammar) RemoveRules(filter func(r *Rule) bool) int {
	cnt := 0
	for nt, rs := range g.rules {
		kept := rs[:0:0]
		for _, r := range rs {
			if filter(r) {
				cnt++
			} else {
				kept = append(kept, r)
			}
		}
		g.rules[nt] = kept
	}
	return cnt
}

// HasNonTerm reports whether there are rules for nonTerm.
func (g *Grammar) HasNonTerm(nonTerm string) bool {
	return len(g.rules[nonTerm]) > 0
}

// NonTerms returns nonterminal names in registration order, including ones with no rules left.
func (g *Grammar) NonTerms() []string {
	return append([]string(nil), g.nonTerms...)
}

// Rules returns rules for nonTerm in registration order.
func (g *Grammar) Rules(nonTerm string) []*Rule {
	return append([]*Rule(nil), g.rules[nonTerm]...)
}

// Productions returns productions of rules for concept nonterminal in registration order.
func (g *Grammar) Productions(concept string) []*Production {
	var res []*Production
	for _, r := range g.rules[concept] {
		if r.Production != nil && r.Production.Concept == concept {
			res = append(res, r.Production)
		}
	}
	return res
}

// AllRules returns all rules grouped by nonterminal in registration order.
func (g *Grammar) AllRules() []*Rule {
	var res []*Rule
	for _, nt := range g.nonTerms {
		res = append(res, g.rules[nt]...)
	}
	return res
}
